// Package cache provides the LRU cache shared by the font loader and the
// SVG renderer.
//
//	c := cache.New[*image.RGBA](64)
//	img, err := c.Load(path, func() (*image.RGBA, error) {
//	    return decode(path)
//	})
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
