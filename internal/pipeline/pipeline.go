// Package pipeline runs one alignment end to end: load, pair, fit, transform,
// optionally insert, export. Each stage feeds the next and any failure aborts
// the run; nothing is exported partially.
package pipeline

import (
	"fmt"

	"github.com/rs/zerolog"

	"vecalign/internal/align"
	"vecalign/internal/domain"
	"vecalign/internal/lexicon"
)

// Options selects the inputs and modes for one run.
type Options struct {
	SourcePath string
	TargetPath string
	OutputPath string
	// DictPath is the bilingual dictionary TSV; empty means none.
	DictPath string
	// Unsupervised adds an identity pair for every word shared by both
	// vocabularies.
	Unsupervised bool
	// Insert enables anchored insertion of dictionary words missing from the
	// source space.
	Insert bool
	// Normalize row-normalizes the training matrices before the SVD.
	Normalize bool
}

// Result summarizes a completed run.
type Result struct {
	Pairs     int
	Rows      int
	Queued    int
	Inserted  int
	Words     int
	Dimension int
}

// Aligner wires the collaborators around the alignment core.
type Aligner struct {
	loader   domain.Loader
	exporter domain.Exporter
	inserter *align.Inserter
	log      zerolog.Logger
}

// New assembles an Aligner from its collaborators.
func New(loader domain.Loader, exporter domain.Exporter, inserter *align.Inserter, log zerolog.Logger) *Aligner {
	return &Aligner{loader: loader, exporter: exporter, inserter: inserter, log: log}
}

// Run executes the pipeline. The source space is mutated by the transform and
// then, when enabled, by insertion; that ordering matters because insertion
// anchors to target-space vectors, which the transformed source now shares a
// geometry with.
func (a *Aligner) Run(opts Options) (*Result, error) {
	a.log.Info().Str("source", opts.SourcePath).Str("target", opts.TargetPath).Msg("load vectors")
	source, err := a.loader.Load(opts.SourcePath)
	if err != nil {
		return nil, err
	}
	target, err := a.loader.Load(opts.TargetPath)
	if err != nil {
		return nil, err
	}
	if source.Dimension() != target.Dimension() {
		return nil, fmt.Errorf("%w: source dimension %d vs target dimension %d",
			align.ErrDegenerate, source.Dimension(), target.Dimension())
	}

	builder := lexicon.NewBuilder(source.Words(), target.Words(), opts.Insert, a.log)
	var pairs []domain.TranslationPair
	var queue []domain.Insertion
	if opts.Unsupervised {
		unsup := builder.Unsupervised()
		a.log.Info().Int("count", len(unsup)).Msg("unsupervised alignments")
		pairs = append(pairs, unsup...)
	}
	if opts.DictPath != "" {
		lines, err := lexicon.ReadLines(opts.DictPath)
		if err != nil {
			return nil, err
		}
		lex := builder.Build(lines)
		a.log.Info().
			Int("count", len(lex.Pairs)).
			Int("malformed", lex.Malformed).
			Int("discarded", lex.Discarded).
			Msg("supervised alignments")
		pairs = append(pairs, lex.Pairs...)
		queue = lex.Queue
	}

	a.log.Info().Int("pairs", len(pairs)).Msg("form training matrices")
	src, tgt := align.TrainingMatrices(source, target, pairs)

	transform, err := align.LearnTransform(src, tgt, opts.Normalize)
	if err != nil {
		return nil, err
	}
	a.log.Info().Int("rows", len(src)).Msg("transform learned")
	if err := source.ApplyTransform(transform); err != nil {
		return nil, err
	}

	result := &Result{
		Pairs:     len(pairs),
		Rows:      len(src),
		Queued:    len(queue),
		Words:     source.Len(),
		Dimension: source.Dimension(),
	}
	if opts.Insert {
		result.Inserted = a.inserter.Insert(queue, source, target)
		result.Words = source.Len()
		a.log.Info().Int("inserted", result.Inserted).Int("queued", result.Queued).Msg("insertion done")
	}

	a.log.Info().Str("output", opts.OutputPath).Msg("writing aligned space")
	if err := a.exporter.Export(source, opts.OutputPath); err != nil {
		return nil, err
	}
	return result, nil
}
