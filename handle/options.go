package handle

// Option configures a Table.
type Option func(*config)

type config struct {
	maxHandle Handle
}

func defaultConfig() config {
	return config{maxHandle: MaxHandle}
}

// WithMaxHandle sets the largest handle the table will hand out.
// Negative values become 0.
func WithMaxHandle(h Handle) Option {
	return func(c *config) {
		c.maxHandle = max(h, 0)
	}
}
