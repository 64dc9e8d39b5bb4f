package domain

// Space is the read surface the alignment core needs from an embedding space.
// The concrete type lives in internal/embedding; collaborators that only read
// vectors depend on this instead.
type Space interface {
	Has(word string) bool
	Vector(word string) ([]float64, error)
	Dimension() int
	Len() int
}

// MutableSpace extends Space with the two mutations the pipeline performs:
// the in-place transform and OOV insertion.
type MutableSpace interface {
	Space
	Words() []string
	ApplyTransform(t [][]float64) error
	Insert(word string, vector []float64) error
}

// Loader parses a vector file into an embedding space. Implementations may
// consult or populate a cache keyed by path.
type Loader interface {
	Load(path string) (MutableSpace, error)
}

// Exporter writes an embedding space back to the text vector format.
type Exporter interface {
	Export(space MutableSpace, path string) error
}
