package fonts

import (
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"

	"github.com/Lymia/PrincessEdit/native/internal/logging"
)

// defaultFamilies are the concrete families substituted for generic terms
// until SetDefaultFamily overrides them.
var defaultFamilies = [NumGenerics]string{
	GenericSerif:     "Times New Roman",
	GenericSansSerif: "Arial",
	GenericCursive:   "Comic Sans MS",
	GenericFantasy:   "Impact",
	GenericMonospace: "Courier New",
}

// Database is a set of font faces used for matching and rendering.
//
// Mutations take the write lock. Matching and rendering go through View,
// which holds the read lock, so any number of renders can share a database.
type Database struct {
	mu       sync.RWMutex
	entries  []entry
	system   bool
	defaults [NumGenerics]string

	// gen changes on every mutation; pooled matchers built for an older
	// generation are discarded.
	gen      uint64
	matchers sync.Pool

	opts databaseOptions
}

// NewDatabase creates an empty database.
func NewDatabase(opts ...DatabaseOption) *Database {
	o := defaultDatabaseOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Database{
		defaults: defaultFamilies,
		opts:     o,
	}
}

// AddFontData adds every face of a font file or collection held in memory.
func (db *Database) AddFontData(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyFontData
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	faces, err := parseMemory(data)
	if err != nil {
		return fmt.Errorf("fonts: parse font data: %w", err)
	}
	db.add(faces)
	logging.L().Debug("fonts: added font data", "bytes", len(data), "faces", len(faces))
	return nil
}

// AddFontPath adds a font file, or every font file below a directory.
//
// A missing path fails with ErrPathNotFound before anything is read. A file
// that cannot be parsed is an error; inside a directory such files are
// skipped.
func (db *Database) AddFontPath(path string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	info, err := statFontPath(path)
	if err != nil {
		return err
	}

	switch {
	case info.Mode().IsRegular():
		faces, err := loadFile(path, info)
		if err != nil {
			return fmt.Errorf("fonts: load %q: %w", path, err)
		}
		db.add(faces)
		logging.L().Debug("fonts: added font file", "path", path, "faces", len(faces))
	case info.IsDir():
		faces := loadDir(path, db.opts.parallelism)
		db.add(faces)
		logging.L().Debug("fonts: added font directory", "path", path, "faces", len(faces))
	default:
		return fmt.Errorf("%w: %q", ErrNotFileOrDir, path)
	}
	return nil
}

// LoadSystemFonts makes the fonts installed on the system available for
// matching. The first call in a process scans the system and writes an
// index to the cache directory; later calls reuse it.
func (db *Database) LoadSystemFonts() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	fps, err := fontscan.SystemFonts(logging.Printf("fontscan"), db.opts.cacheDir)
	if err != nil {
		return fmt.Errorf("fonts: load system fonts: %w", err)
	}
	db.system = true
	db.gen++
	logging.L().Info("fonts: system fonts loaded", "faces", len(fps))
	return nil
}

// SetDefaultFamily sets the family substituted for the generic family g.
func (db *Database) SetDefaultFamily(g Generic, name string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.defaults[g] = name
	db.gen++
}

// DefaultFamily returns the family substituted for g.
func (db *Database) DefaultFamily(g Generic) string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.defaults[g]
}

// Len returns the number of explicitly added faces. System fonts are not
// counted.
func (db *Database) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.entries)
}

// Families returns the distinct family names of the explicitly added
// faces, in the order they were added.
func (db *Database) Families() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	seen := make(map[string]bool, len(db.entries))
	var out []string
	for _, e := range db.entries {
		if seen[e.desc.Family] {
			continue
		}
		seen[e.desc.Family] = true
		out = append(out, e.desc.Family)
	}
	return out
}

// View runs fn with the read lock held. The matcher passed to fn is private
// to this call and must not be retained.
func (db *Database) View(fn func(*Matcher) error) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	m := db.matcher()
	defer db.matchers.Put(m)
	return fn(m)
}

// Match resolves the face used to draw r under the given query.
func (db *Database) Match(q QueryView, r rune) (Match, error) {
	var out Match
	err := db.View(func(m *Matcher) error {
		if m.Empty() {
			return ErrNoFonts
		}
		m.SetQuery(q)
		face := m.Resolve(r)
		if face == nil {
			return ErrNoFonts
		}
		out = m.Describe(face)
		return nil
	})
	return out, err
}

// add appends faces. Caller must hold the write lock.
func (db *Database) add(faces []entry) {
	if len(faces) == 0 {
		return
	}
	db.entries = append(db.entries, faces...)
	db.gen++
}

// matcher returns a pooled matcher for the current generation or builds a
// new one. Caller must hold the read lock.
func (db *Database) matcher() *Matcher {
	if m, ok := db.matchers.Get().(*Matcher); ok && m.gen == db.gen {
		return m
	}

	fm := fontscan.NewFontMap(logging.Printf("fontscan"))
	for _, e := range db.entries {
		fm.AddFace(font.NewFace(e.font), e.loc, e.desc)
	}
	if db.system {
		if err := fm.UseSystemFonts(db.opts.cacheDir); err != nil {
			logging.L().Warn("fonts: system fonts unavailable", "err", err)
		}
	}
	return &Matcher{
		fm:       fm,
		defaults: db.defaults,
		gen:      db.gen,
		empty:    len(db.entries) == 0 && !db.system,
	}
}
