package align

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"vecalign/internal/domain"
)

// Inserter adds queued out-of-vocabulary words to an aligned source space,
// anchored to their translation's vector in the target space with a small
// random perturbation so inserted words are not exact duplicates of their
// anchors.
type Inserter struct {
	scale float64
	rng   *rand.Rand
	log   zerolog.Logger
}

// NewInserter creates an inserter. Per-component noise is uniform in [-s, s]
// with s = scale·‖anchor‖₂/√D, bounding the distance from the anchor by
// scale·‖anchor‖₂. A nil rng gets a time-seeded one; no determinism contract.
func NewInserter(scale float64, rng *rand.Rand, log zerolog.Logger) *Inserter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Inserter{scale: scale, rng: rng, log: log}
}

// Insert processes the queue against the (already transformed) source space,
// reading anchors from the target space. Malformed words, unknown anchors,
// and conflicts with existing words are skipped with a warning; nothing is
// ever overwritten. Returns the number of words actually inserted.
func (in *Inserter) Insert(queue []domain.Insertion, source domain.MutableSpace, target domain.Space) int {
	inserted := 0
	for _, q := range queue {
		if strings.Contains(q.Word, " ") {
			in.log.Warn().Str("word", q.Word).Msg("skipping multi-token insertion candidate")
			continue
		}
		if source.Has(q.Word) {
			in.log.Warn().Str("word", q.Word).Msg("insertion candidate already in source space")
			continue
		}
		anchor, err := target.Vector(q.Anchor)
		if err != nil {
			in.log.Warn().Str("word", q.Word).Str("anchor", q.Anchor).Msg("anchor missing from target space")
			continue
		}
		if err := source.Insert(q.Word, in.perturb(anchor)); err != nil {
			in.log.Warn().Err(err).Str("word", q.Word).Msg("insertion rejected")
			continue
		}
		inserted++
	}
	return inserted
}

func (in *Inserter) perturb(anchor []float64) []float64 {
	norm := 0.0
	for _, v := range anchor {
		norm += v * v
	}
	s := in.scale * math.Sqrt(norm) / math.Sqrt(float64(len(anchor)))
	out := make([]float64, len(anchor))
	for i, v := range anchor {
		out[i] = v + s*(2*in.rng.Float64()-1)
	}
	return out
}
