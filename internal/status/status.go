// Package status turns the live slot feed into a lookup keyed by slot id and
// resolves the effective status of a slot.
package status

// Unknown is the status of a slot with neither live nor embedded data.
const Unknown = "unknown"

// Record is one entry of the live feed.
type Record struct {
	SlotID      string `json:"slot_id"`
	Status      string `json:"status"`
	LastUpdated string `json:"last_updated,omitempty"`
}

// Lookup maps a slot id to the record that won the merge for it.
// A nil Lookup is valid and empty.
type Lookup map[string]Record

// Merge folds records left to right into a fresh Lookup; a later record for
// the same slot overwrites an earlier one. Status values are not validated.
func Merge(records []Record) Lookup {
	m := make(Lookup, len(records))
	for _, r := range records {
		m[r.SlotID] = r
	}
	return m
}

// Status returns the live status of a slot.
func (l Lookup) Status(slotID string) (string, bool) {
	r, ok := l[slotID]
	if !ok {
		return "", false
	}
	return r.Status, true
}

// LastUpdated returns the feed timestamp of a slot, if the feed sent one.
func (l Lookup) LastUpdated(slotID string) string {
	return l[slotID].LastUpdated
}

// Resolve picks the effective status of a slot: the live status, else the
// status embedded in the layout, else Unknown. Empty strings count as
// missing.
func Resolve(l Lookup, slotID, embedded string) string {
	if s, ok := l.Status(slotID); ok && s != "" {
		return s
	}
	if embedded != "" {
		return embedded
	}
	return Unknown
}
