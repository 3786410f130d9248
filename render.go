package tshiau

// Renderer converts a raw dictionary page into a structured text block.
// An empty result means the page contains no dictionary entry, even if the
// page itself existed.
type Renderer interface {
	Render(html string) (string, error)
}
