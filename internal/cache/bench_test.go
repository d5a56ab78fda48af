package cache

import (
	"strconv"
	"testing"
)

func BenchmarkCacheGet(b *testing.B) {
	c := New[int](1000)
	for i := 0; i < 100; i++ {
		c.Set(strconv.Itoa(i), i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("50")
	}
}

func BenchmarkCacheSet(b *testing.B) {
	c := New[int](64)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(strconv.Itoa(i%100), i)
	}
}

func BenchmarkCacheLoadParallel(b *testing.B) {
	c := New[int](1000)

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = c.Load(strconv.Itoa(i%100), func() (int, error) {
				return i, nil
			})
			i++
		}
	})
}
