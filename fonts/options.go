package fonts

import "runtime"

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	cacheDir    string
	parallelism int
}

func defaultDatabaseOptions() databaseOptions {
	return databaseOptions{parallelism: runtime.GOMAXPROCS(0)}
}

// WithCacheDir sets the directory holding the system font index.
// Empty selects the platform default.
func WithCacheDir(dir string) DatabaseOption {
	return func(o *databaseOptions) {
		o.cacheDir = dir
	}
}

// WithLoadParallelism bounds the number of font files parsed concurrently
// when loading a directory. Values below 1 select GOMAXPROCS.
func WithLoadParallelism(n int) DatabaseOption {
	return func(o *databaseOptions) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.parallelism = n
	}
}
