package scan

// Sortedness declares what the caller knows about object key order.
type Sortedness uint8

const (
	// Unsorted makes no assumption; every member is scanned.
	Unsorted Sortedness = iota
	// TopLevelSorted asserts the keys of the top-level object are sorted.
	TopLevelSorted
	// RecursiveSorted asserts the keys of every object are sorted.
	RecursiveSorted
)

// Options tunes navigation. The zero value is the default lazy behavior.
type Options struct {
	// NegativeIndex resolves negative array indices from the end of the array.
	// When false a negative index never matches.
	NegativeIndex bool

	// Strict validates the whole document before navigating, so any input that
	// is not exactly one JSON value (plus whitespace) is Malformed. When false
	// only the bytes visited on the way to the addressed value are validated.
	Strict bool

	// Sorted lets key lookup stop as soon as it passes the wanted key.
	Sorted Sortedness
}

// sortedAt reports whether objects at the given depth may be treated as sorted.
func (o Options) sortedAt(depth int) bool {
	switch o.Sorted {
	case TopLevelSorted:
		return depth == 0
	case RecursiveSorted:
		return true
	default:
		return false
	}
}
