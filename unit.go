package tshiau

// Unit is one segmentation result: a dictionary lookup key together with its
// position in the original sentence. Units are created once by segmentation
// and never mutated; their order is the document order.
type Unit struct {
	Key      string
	Position int
}

// Direction selects the script conversion direction.
type Direction int

const (
	// ToSimplified converts Traditional to Simplified Chinese (tw2s).
	ToSimplified Direction = iota
	// ToTraditional converts Simplified to Traditional Chinese (s2twp).
	ToTraditional
)

// Normalizer converts text between Traditional and Simplified Chinese.
// Conversions are pure and total: any input yields some output.
type Normalizer interface {
	Normalize(text string, dir Direction) (string, error)
}

// Segmenter splits normalized text into an ordered sequence of lookup units.
// Implementations must accept normalized (Simplified) text; converting keys
// back to the dictionary script is the caller's concern.
type Segmenter interface {
	Segment(text string) ([]Unit, error)
}

// Decompose splits a multi-character key into its constituent characters in
// left-to-right order. Callers use this for character-level fallback lookups.
func Decompose(key string) []string {
	runes := []rune(key)
	chars := make([]string, 0, len(runes))
	for _, r := range runes {
		chars = append(chars, string(r))
	}
	return chars
}

// KeyLen returns the number of characters (runes) in a key. A key with
// KeyLen 1 has no further decomposition available.
func KeyLen(key string) int {
	return len([]rune(key))
}

// DistinctKeys returns the distinct keys of units in order of first
// appearance. Deduplication happens per fetch round; positions are
// preserved separately by the unit sequence itself.
func DistinctKeys(units []Unit) []string {
	seen := make(map[string]struct{}, len(units))
	var keys []string
	for _, u := range units {
		if _, ok := seen[u.Key]; ok {
			continue
		}
		seen[u.Key] = struct{}{}
		keys = append(keys, u.Key)
	}
	return keys
}
