package domain

// Complexity is an intent's complexity tier, ordered trivial..epic.
type Complexity string

const (
	Trivial      Complexity = "trivial"
	Simple       Complexity = "simple"
	Moderate     Complexity = "moderate"
	Complex      Complexity = "complex"
	VeryComplex  Complexity = "very-complex"
	Epic         Complexity = "epic"
)

// complexityMeta carries the per-tier derivation constants (OCP - extend via
// map, not switch). Token estimates and story points are grounded on the
// original decomposer's config defaults.
var complexityMeta = map[Complexity]struct {
	Rank        int
	Tokens      int
	StoryPoints int
}{
	Trivial:     {0, 350, 1},
	Simple:      {1, 1000, 2},
	Moderate:    {2, 3500, 3},
	Complex:     {3, 8500, 5},
	VeryComplex: {4, 15000, 8},
	Epic:        {5, 35000, 13},
}

// Rank returns the tier's position in the trivial..epic order.
func (c Complexity) Rank() int {
	if m, ok := complexityMeta[c]; ok {
		return m.Rank
	}
	return -1
}

// Valid reports whether c is one of the six declared tiers.
func (c Complexity) Valid() bool {
	_, ok := complexityMeta[c]
	return ok
}

// DefaultTokens returns the default estimated-token count for the tier,
// used when an ingestion adapter does not supply one.
func (c Complexity) DefaultTokens() int {
	if m, ok := complexityMeta[c]; ok {
		return m.Tokens
	}
	return 0
}

// StoryPoints returns the Fibonacci-like story-point value derived from
// the complexity tier, per the data model's "story points... derived from
// complexity."
func (c Complexity) StoryPoints() int {
	if m, ok := complexityMeta[c]; ok {
		return m.StoryPoints
	}
	return 0
}

// Less orders complexities trivial < simple < ... < epic.
func (c Complexity) Less(other Complexity) bool {
	return c.Rank() < other.Rank()
}

// AllComplexities lists the six tiers in ascending order.
func AllComplexities() []Complexity {
	return []Complexity{Trivial, Simple, Moderate, Complex, VeryComplex, Epic}
}
