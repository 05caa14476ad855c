package render

// Class is the colouring bucket of a slot.
type Class int

const (
	ClassNeutral Class = iota
	ClassOccupied
	ClassVacant
)

// Classify maps a resolved status to its colouring class. Anything that is
// not "occupied" or "vacant" is neutral.
func Classify(status string) Class {
	switch status {
	case "occupied":
		return ClassOccupied
	case "vacant":
		return ClassVacant
	}
	return ClassNeutral
}

func (c Class) String() string {
	switch c {
	case ClassOccupied:
		return "occupied"
	case ClassVacant:
		return "vacant"
	}
	return "neutral"
}

// Color is the fill colour of the class, shared by every view.
func (c Class) Color() string {
	switch c {
	case ClassOccupied:
		return "#d93025"
	case ClassVacant:
		return "#1a7f37"
	}
	return "#9e9e9e"
}

// MarshalText encodes the class by name.
func (c Class) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText is the inverse of MarshalText; unknown names are neutral.
func (c *Class) UnmarshalText(b []byte) error {
	*c = Classify(string(b))
	return nil
}
