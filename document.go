package tshiau

// EntryStatus classifies the resolution of a lookup key.
type EntryStatus int

const (
	// EntryFound means the dictionary returned a renderable entry.
	EntryFound EntryStatus = iota
	// EntryMissing means the dictionary confirmed there is no entry.
	EntryMissing
	// EntryFailed means the lookup failed for transport reasons; it is
	// distinct from EntryMissing and never triggers fallback.
	EntryFailed
)

// ResolvedEntry associates a lookup key with rendered content or an
// explicit absence/failure marker.
type ResolvedEntry struct {
	Key     string
	Status  EntryStatus
	Content string
}

// Section pairs a unit with its resolution and, for units without a
// word-level entry, the character-level fallback resolutions in
// left-to-right character order.
type Section struct {
	Unit     Unit
	Entry    ResolvedEntry
	Children []ResolvedEntry
}

// Document is the assembled result of one invocation: the original input
// and one section per unit in original segmentation order, followed by a
// fixed instruction block for the downstream consumer.
type Document struct {
	Input    string
	Sections []Section
	Prompt   string
}

// Validate returns an error if the document is structurally invalid.
func (d *Document) Validate() error {
	if d.Input == "" {
		return Errorf(EINVALID, "document input required")
	}
	if len(d.Sections) == 0 {
		return Errorf(EINVALID, "document has no sections")
	}
	return nil
}
