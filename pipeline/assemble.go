package pipeline

import "github.com/wrlin/tshiau"

// Assemble merges resolved entries back into the original segmentation
// order. Units confirmed absent at the word tier get one child per
// character, in left-to-right order; characters that also have no entry
// appear as explicit absent leaves so the reader can see what was checked.
// Output depends only on the unit sequence and the keyed resolutions,
// never on fetch completion order.
func Assemble(input string, units []tshiau.Unit, unitEntries, fallbackEntries map[string]tshiau.ResolvedEntry) *tshiau.Document {
	sections := make([]tshiau.Section, 0, len(units))

	for _, unit := range units {
		entry, ok := unitEntries[unit.Key]
		if !ok {
			entry = tshiau.ResolvedEntry{Key: unit.Key, Status: tshiau.EntryFailed}
		}

		section := tshiau.Section{Unit: unit, Entry: entry}

		if entry.Status == tshiau.EntryMissing && tshiau.KeyLen(unit.Key) > 1 {
			for _, ch := range tshiau.Decompose(unit.Key) {
				child, ok := fallbackEntries[ch]
				if !ok {
					child = tshiau.ResolvedEntry{Key: ch, Status: tshiau.EntryMissing}
				}
				section.Children = append(section.Children, child)
			}
		}

		sections = append(sections, section)
	}

	return &tshiau.Document{
		Input:    input,
		Sections: sections,
	}
}
