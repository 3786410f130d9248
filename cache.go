package tshiau

// PageCache stores fetched dictionary pages on disk between runs.
// Get reports a miss for absent or unreadable entries; a corrupt entry must
// behave exactly like a miss. Put must be atomic: a crashed writer never
// leaves a partial entry that a later Get would accept.
type PageCache interface {
	Get(key string) (html string, ok bool)
	Put(key, html string) error
}
