package domain

import "errors"

// ErrNotFound reports a word absent from an embedding space's vocabulary.
var ErrNotFound = errors.New("word not found")

// TranslationPair is an ordered (source word, target word) entry of a
// bilingual dictionary. In unsupervised mode both sides hold the same word.
type TranslationPair struct {
	Source string
	Target string
}

// Insertion is a queued out-of-vocabulary word together with the target-side
// word whose vector anchors it.
type Insertion struct {
	Word   string
	Anchor string
}

// Lexicon is the outcome of filtering raw dictionary entries against the two
// vocabularies: the pairs used for training, the insertion queue, and counts
// for reporting.
type Lexicon struct {
	Pairs     []TranslationPair
	Queue     []Insertion
	Malformed int
	Discarded int
}

// SearchResult is a vocabulary word ranked by similarity to a query vector.
type SearchResult struct {
	Word  string
	Score float64
}
