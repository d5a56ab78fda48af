package native

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/Lymia/PrincessEdit/native/config"
	"github.com/Lymia/PrincessEdit/native/fonts"
	"github.com/Lymia/PrincessEdit/native/handle"
	"github.com/Lymia/PrincessEdit/native/internal/hostabi"
	"github.com/Lymia/PrincessEdit/native/internal/logging"
	"github.com/Lymia/PrincessEdit/native/svg"
)

// Operation names, as the host knows them. They prefix exception messages.
const (
	opDatabaseNew     = "FontDatabase.new"
	opDatabaseDelete  = "FontDatabase.delete"
	opDatabaseAddData = "FontDatabase.addFontByData"
	opDatabaseAddPath = "FontDatabase.addFontByPath"
	opDatabaseSystem  = "FontDatabase.loadSystemFonts"
	opDatabaseDefault = "FontDatabase.setDefault"
	opDatabaseMatch   = "FontDatabase.match"
	opQueryNew        = "FontQuery.new"
	opQueryDelete     = "FontQuery.delete"
	opQueryAddFamily  = "FontQuery.addFamily"
	opQueryAddGeneric = "FontQuery.addStaticFamily"
	opQuerySetWeight  = "FontQuery.setWeight"
	opQuerySetStretch = "FontQuery.setStretch"
	opQuerySetStyle   = "FontQuery.setStyle"
	opRender          = "Resvg.render"
)

const invalidHandle = int32(handle.Invalid)

// Option configures a Bridge.
type Option func(*bridgeOptions)

type bridgeOptions struct {
	boundary []hostabi.BoundaryOption
}

// WithAbort replaces the function called when an exception cannot be
// delivered to the host. The default terminates the process.
func WithAbort(fn func(msg string)) Option {
	return func(o *bridgeOptions) {
		o.boundary = append(o.boundary, hostabi.WithAbort(fn))
	}
}

// Bridge is the process-lifetime service behind the host operations.
//
// Bridge is safe for concurrent use.
type Bridge struct {
	boundary  *hostabi.Boundary
	databases *handle.Table[fonts.Database]
	queries   *handle.Table[fonts.Query]
	renderer  *svg.Renderer
	dbOpts    []fonts.DatabaseOption
}

// New creates a Bridge configured by cfg that reports failures through t.
func New(cfg config.Config, t hostabi.Thrower, opts ...Option) *Bridge {
	var o bridgeOptions
	for _, opt := range opts {
		opt(&o)
	}
	maxHandle := handle.WithMaxHandle(handle.Handle(cfg.Handles.Max))
	b := &Bridge{
		boundary:  hostabi.NewBoundary(t, o.boundary...),
		databases: handle.New[fonts.Database]("font database", maxHandle),
		queries:   handle.New[fonts.Query]("font query", maxHandle),
		renderer: svg.New(
			svg.WithDefaultFontFamily(cfg.Render.DefaultFontFamily),
			svg.WithDefaultFontSize(cfg.Render.DefaultFontSize),
			svg.WithImageCache(cfg.Render.ImageCacheSize),
			svg.WithLanguage(cfg.Render.Language),
		),
		dbOpts: []fonts.DatabaseOption{
			fonts.WithCacheDir(cfg.Fonts.CacheDir),
			fonts.WithLoadParallelism(cfg.Fonts.LoadParallelism),
		},
	}
	logging.L().Info("native bridge created",
		slog.Int("maxHandle", int(cfg.Handles.Max)),
		slog.String("defaultFontFamily", cfg.Render.DefaultFontFamily))
	return b
}

// Live returns the number of live font database and font query handles.
func (b *Bridge) Live() (databases, queries int) {
	return b.databases.Len(), b.queries.Len()
}

func allocate[T any](tbl *handle.Table[T], v *T) (int32, error) {
	h, err := tbl.Allocate(v)
	if err != nil {
		return invalidHandle, err
	}
	logging.L().Debug("handle allocated", slog.String("table", tbl.Name()), slog.Int("handle", int(h)),
		slog.Int("live", tbl.Len()), slog.Int("slots", tbl.Cap()))
	return int32(h), nil
}

func release[T any](tbl *handle.Table[T], h int32) error {
	if err := tbl.Release(handle.Handle(h)); err != nil {
		return err
	}
	logging.L().Debug("handle released", slog.String("table", tbl.Name()), slog.Int("handle", int(h)))
	return nil
}

func decode(what string, s hostabi.String) (string, error) {
	if s.IsNil() {
		return "", fmt.Errorf("%s: %w", what, ErrNullArgument)
	}
	v, err := s.Decode()
	if err != nil {
		return "", fmt.Errorf("%s: %w", what, err)
	}
	return v, nil
}

// withDatabase resolves h and runs fn on the database.
func (b *Bridge) withDatabase(h int32, fn func(*fonts.Database) error) error {
	db, err := b.databases.Resolve(handle.Handle(h))
	if err != nil {
		return err
	}
	return fn(db)
}

func (b *Bridge) withQuery(h int32, fn func(*fonts.Query) error) error {
	q, err := b.queries.Resolve(handle.Handle(h))
	if err != nil {
		return err
	}
	return fn(q)
}

// FontDatabaseNew creates an empty font database and returns its handle,
// or -1.
func (b *Bridge) FontDatabaseNew() int32 {
	return hostabi.Call(b.boundary, opDatabaseNew, invalidHandle, func() (int32, error) {
		return allocate(b.databases, fonts.NewDatabase(b.dbOpts...))
	})
}

// FontDatabaseDelete releases a font database handle. Renders already using
// the database finish normally.
func (b *Bridge) FontDatabaseDelete(h int32) {
	b.boundary.Do(opDatabaseDelete, func() error {
		return release(b.databases, h)
	})
}

// FontDatabaseAddFontData adds every face of a font file held in memory.
func (b *Bridge) FontDatabaseAddFontData(h int32, data []byte) {
	b.boundary.Do(opDatabaseAddData, func() error {
		return b.withDatabase(h, func(db *fonts.Database) error {
			return db.AddFontData(data)
		})
	})
}

// FontDatabaseAddFontPath adds a font file, or every font file below a
// directory.
func (b *Bridge) FontDatabaseAddFontPath(h int32, path hostabi.String) {
	b.boundary.Do(opDatabaseAddPath, func() error {
		p, err := decode("path", path)
		if err != nil {
			return err
		}
		return b.withDatabase(h, func(db *fonts.Database) error {
			return db.AddFontPath(p)
		})
	})
}

// FontDatabaseLoadSystemFonts makes the fonts installed on the system
// available to the database.
func (b *Bridge) FontDatabaseLoadSystemFonts(h int32) {
	b.boundary.Do(opDatabaseSystem, func() error {
		return b.withDatabase(h, func(db *fonts.Database) error {
			return db.LoadSystemFonts()
		})
	})
}

// FontDatabaseSetDefault sets the family substituted for a generic family.
func (b *Bridge) FontDatabaseSetDefault(h int32, genericID int32, name hostabi.String) {
	b.boundary.Do(opDatabaseDefault, func() error {
		g, err := fonts.GenericFromID(genericID)
		if err != nil {
			return err
		}
		n, err := decode("family name", name)
		if err != nil {
			return err
		}
		return b.withDatabase(h, func(db *fonts.Database) error {
			db.SetDefaultFamily(g, n)
			return nil
		})
	})
}

// FontDatabaseMatch returns the family of the face the database would use
// for the first character of sample under the query, or "". An empty
// sample matches a space.
func (b *Bridge) FontDatabaseMatch(dbh, qh int32, sample hostabi.String) string {
	return hostabi.Call(b.boundary, opDatabaseMatch, "", func() (string, error) {
		s, err := decode("sample", sample)
		if err != nil {
			return "", err
		}
		r := ' '
		if s != "" {
			r, _ = utf8.DecodeRuneInString(s)
		}
		q, err := b.queries.Resolve(handle.Handle(qh))
		if err != nil {
			return "", err
		}
		db, err := b.databases.Resolve(handle.Handle(dbh))
		if err != nil {
			return "", err
		}
		m, err := db.Match(q.View(), r)
		if err != nil {
			return "", err
		}
		return m.Family, nil
	})
}

// FontQueryNew creates a font query with no families, weight 400, normal
// stretch and normal style, and returns its handle, or -1.
func (b *Bridge) FontQueryNew() int32 {
	return hostabi.Call(b.boundary, opQueryNew, invalidHandle, func() (int32, error) {
		return allocate(b.queries, fonts.NewQuery())
	})
}

// FontQueryDelete releases a font query handle.
func (b *Bridge) FontQueryDelete(h int32) {
	b.boundary.Do(opQueryDelete, func() error {
		return release(b.queries, h)
	})
}

// FontQueryAddFamily appends a named family to the query.
func (b *Bridge) FontQueryAddFamily(h int32, name hostabi.String) {
	b.boundary.Do(opQueryAddFamily, func() error {
		n, err := decode("family name", name)
		if err != nil {
			return err
		}
		return b.withQuery(h, func(q *fonts.Query) error {
			q.AddFamily(n)
			return nil
		})
	})
}

// FontQueryAddGenericFamily appends a generic family to the query.
func (b *Bridge) FontQueryAddGenericFamily(h int32, genericID int32) {
	b.boundary.Do(opQueryAddGeneric, func() error {
		g, err := fonts.GenericFromID(genericID)
		if err != nil {
			return err
		}
		return b.withQuery(h, func(q *fonts.Query) error {
			q.AddGeneric(g)
			return nil
		})
	})
}

// FontQuerySetWeight sets the weight, 1 to 65535.
func (b *Bridge) FontQuerySetWeight(h int32, weight int32) {
	b.boundary.Do(opQuerySetWeight, func() error {
		w, err := fonts.WeightFromInt(weight)
		if err != nil {
			return err
		}
		return b.withQuery(h, func(q *fonts.Query) error {
			q.SetWeight(w)
			return nil
		})
	})
}

// FontQuerySetStretch sets the stretch by id, 0 (ultra-condensed) to 8
// (ultra-expanded).
func (b *Bridge) FontQuerySetStretch(h int32, stretchID int32) {
	b.boundary.Do(opQuerySetStretch, func() error {
		s, err := fonts.StretchFromID(stretchID)
		if err != nil {
			return err
		}
		return b.withQuery(h, func(q *fonts.Query) error {
			q.SetStretch(s)
			return nil
		})
	})
}

// FontQuerySetStyle sets the style by id: 0 normal, 1 italic, 2 oblique.
func (b *Bridge) FontQuerySetStyle(h int32, styleID int32) {
	b.boundary.Do(opQuerySetStyle, func() error {
		s, err := fonts.StyleFromID(styleID)
		if err != nil {
			return err
		}
		return b.withQuery(h, func(q *fonts.Query) error {
			q.SetStyle(s)
			return nil
		})
	})
}

// Render rasterizes an SVG document to a w x h PNG using the fonts of the
// database dbh. A nil resourceDir disables relative image references.
// It returns nil on failure.
func (b *Bridge) Render(source hostabi.String, resourceDir hostabi.String, dbh int32, w, h int32) []byte {
	return hostabi.Call(b.boundary, opRender, []byte(nil), func() ([]byte, error) {
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("%w: %dx%d", svg.ErrInvalidSize, w, h)
		}
		src, err := decode("svg", source)
		if err != nil {
			return nil, err
		}
		var dir string
		if !resourceDir.IsNil() {
			if dir, err = resourceDir.Decode(); err != nil {
				return nil, fmt.Errorf("resource directory: %w", err)
			}
		}
		db, err := b.databases.Resolve(handle.Handle(dbh))
		if err != nil {
			return nil, err
		}
		return b.renderer.Render(svg.Request{
			Source:      src,
			ResourceDir: dir,
			Fonts:       db,
			Width:       int(w),
			Height:      int(h),
		})
	})
}
