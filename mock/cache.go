package mock

import "github.com/wrlin/tshiau"

var _ tshiau.PageCache = (*PageCache)(nil)

// PageCache is a mock implementation of tshiau.PageCache.
type PageCache struct {
	GetFn func(key string) (string, bool)
	PutFn func(key, html string) error
}

func (c *PageCache) Get(key string) (string, bool) {
	return c.GetFn(key)
}

func (c *PageCache) Put(key, html string) error {
	return c.PutFn(key, html)
}
