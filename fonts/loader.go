package fonts

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"golang.org/x/sync/errgroup"

	"github.com/Lymia/PrincessEdit/native/internal/cache"
	"github.com/Lymia/PrincessEdit/native/internal/logging"
)

// entry is one parsed face. *font.Font is read-only and shared between
// databases; faces are created per matcher.
type entry struct {
	font *font.Font
	loc  fontscan.Location
	desc font.Description
}

// fileCache holds parsed font files keyed by path, size and modification
// time, so several databases loading the same directory parse it once.
var fileCache = cache.New[[]entry](256)

// memoryFonts numbers in-memory font blobs for their locations.
var memoryFonts atomic.Uint64

var fontExtensions = map[string]bool{
	".ttf": true,
	".otf": true,
	".ttc": true,
	".otc": true,
}

func isFontFile(path string) bool {
	return fontExtensions[strings.ToLower(filepath.Ext(path))]
}

// parseFaces parses every face of a font file or collection.
func parseFaces(data []byte, file string) ([]entry, error) {
	faces, err := font.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	out := make([]entry, len(faces))
	for i, f := range faces {
		out[i] = entry{
			font: f.Font,
			loc:  fontscan.Location{File: file, Index: uint16(i)}, //nolint:gosec // collections hold far fewer than 65536 faces
			desc: f.Font.Describe(),
		}
	}
	return out, nil
}

func parseMemory(data []byte) ([]entry, error) {
	name := "memory:" + strconv.FormatUint(memoryFonts.Add(1), 10)
	return parseFaces(data, name)
}

// loadFile parses a font file through the process-wide cache.
func loadFile(path string, info fs.FileInfo) ([]entry, error) {
	key := path + "\x00" + strconv.FormatInt(info.Size(), 10) + "\x00" + strconv.FormatInt(info.ModTime().UnixNano(), 10)
	return fileCache.Load(key, func() ([]entry, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		faces, err := parseFaces(data, path)
		if err != nil {
			return nil, err
		}
		logging.L().Debug("fonts: parsed font file", "path", path, "faces", len(faces))
		return faces, nil
	})
}

// loadDir walks root and parses every font file below it with at most
// parallelism files in flight. Unreadable or unparseable files are logged
// and skipped. Faces are returned in walk order.
func loadDir(root string, parallelism int) []entry {
	var paths []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.L().Warn("fonts: skipping unreadable path", "path", path, "err", err)
			return nil
		}
		if !d.IsDir() && isFontFile(path) {
			paths = append(paths, path)
		}
		return nil
	})

	results := make([][]entry, len(paths))
	var g errgroup.Group
	g.SetLimit(parallelism)
	for i, path := range paths {
		g.Go(func() error {
			info, err := os.Stat(path)
			if err == nil {
				results[i], err = loadFile(path, info)
			}
			if err != nil {
				logging.L().Warn("fonts: skipping font file", "path", path, "err", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	st := fileCache.Stats()
	logging.L().Debug("fonts: directory loaded", "path", root, "files", len(results),
		"cached", st.Len, "hits", st.Hits, "misses", st.Misses)

	var out []entry
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

func statFontPath(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info, nil
	}
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %q", ErrPathNotFound, path)
	}
	return nil, fmt.Errorf("fonts: stat %q: %w", path, err)
}
