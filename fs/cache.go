// Package fs provides the on-disk page cache.
package fs

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/wrlin/tshiau"
)

// Ensure Cache implements tshiau.PageCache at compile time.
var _ tshiau.PageCache = (*Cache)(nil)

// Cache stores fetched dictionary pages as files under a base directory.
// Entries are written to a temporary sibling and renamed into place, so a
// crashed writer never leaves a partial entry that a later Get would accept.
// Each entry carries a content hash; entries that fail verification behave
// as misses.
type Cache struct {
	dir string
}

// NewCache creates a Cache rooted at dir, creating it if necessary.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// KeyToPath converts a lookup key to its cache file name. Percent escaping
// keeps the mapping injective: distinct keys never share a path.
func KeyToPath(key string) string {
	return url.PathEscape(key) + ".html"
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, KeyToPath(key))
}

// Get returns the cached page for a key. Absent, malformed, or
// hash-mismatched entries all report a miss.
func (c *Cache) Get(key string) (string, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return "", false
	}

	html, ok := parseEntry(string(data), key)
	if !ok {
		return "", false
	}
	return html, true
}

// Put writes the page for a key atomically.
func (c *Cache) Put(key, html string) error {
	path := c.path(key)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, []byte(formatEntry(key, html)), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// formatEntry frames a page with frontmatter carrying the key and a
// content hash used to reject torn or corrupt entries on read.
func formatEntry(key, html string) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("key: ")
	b.WriteString(key)
	b.WriteString("\nhash: ")
	b.WriteString(hashContent(html))
	b.WriteString("\n---\n")
	b.WriteString(html)
	return b.String()
}

func parseEntry(data, key string) (string, bool) {
	rest, ok := strings.CutPrefix(data, "---\nkey: "+key+"\nhash: ")
	if !ok {
		return "", false
	}
	hash, html, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		return "", false
	}
	if hash != hashContent(html) {
		return "", false
	}
	return html, true
}

func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
