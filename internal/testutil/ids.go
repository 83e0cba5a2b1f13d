package testutil

// FixedIDGenerator returns the same session id every time.
//
// Golden snapshots and logs from two runs of the same scenario stay identical
// when every session is created with one of these.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator for id. If id is empty, Generate
// returns "test-session".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-session"
	}
	return &FixedIDGenerator{id: id}
}

// Generate implements engine.IDGenerator.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
