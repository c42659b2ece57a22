package models

// Passage is a document fragment returned by the semantic index for a
// query, with its relevance score in [0,1]. Passages are consumed once
// per turn and never persisted.
type Passage struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}
