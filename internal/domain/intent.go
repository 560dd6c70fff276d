package domain

// Intent is one atomic, immutable unit of work handed to the core by an
// external decomposer or ingestion adapter.
type Intent struct {
	ID             string     `json:"id"`
	Complexity     Complexity `json:"complexity"`
	QualityFloor   float64    `json:"quality_floor"`
	EstimatedTokens int       `json:"estimated_tokens"`
	Deadline       *int       `json:"deadline,omitempty"`
	Depends        []string   `json:"depends,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	Stage          string     `json:"stage,omitempty"`
}

// StoryPoints derives the intent's story points from its complexity tier.
func (i Intent) StoryPoints() int {
	return i.Complexity.StoryPoints()
}

// HasDeadline reports whether the intent declares a bounded deadline.
func (i Intent) HasDeadline() bool {
	return i.Deadline != nil
}

// TagSet returns the intent's tags, normalized to lowercase with hyphenated
// tags also expanded into their component parts, ready for the Profile
// Router's keyword matching.
func (i Intent) TagSet() []string {
	return expandTags(i.Tags)
}
