package svg

// Option configures a Renderer.
type Option func(*options)

type options struct {
	defaultFamily string
	defaultSize   float64
	imageCache    int
	language      string
}

func defaultOptions() options {
	return options{
		defaultFamily: "Liberation Sans",
		defaultSize:   12,
		imageCache:    64,
		language:      "en",
	}
}

// WithDefaultFontFamily sets the family used for text without a
// font-family property.
func WithDefaultFontFamily(name string) Option {
	return func(o *options) {
		if name != "" {
			o.defaultFamily = name
		}
	}
}

// WithDefaultFontSize sets the font size, in user units, of text without a
// font-size property.
func WithDefaultFontSize(size float64) Option {
	return func(o *options) {
		if size > 0 {
			o.defaultSize = size
		}
	}
}

// WithImageCache sets how many decoded external images are kept.
// Values below 1 keep the default.
func WithImageCache(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.imageCache = n
		}
	}
}

// WithLanguage sets the BCP 47 language used when shaping text.
func WithLanguage(lang string) Option {
	return func(o *options) {
		if lang != "" {
			o.language = lang
		}
	}
}
