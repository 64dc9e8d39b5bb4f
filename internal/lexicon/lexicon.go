// Package lexicon turns raw bilingual dictionary entries and the two
// vocabularies into the translation pairs that supervise the alignment, plus
// the queue of target-anchored words to insert afterwards.
package lexicon

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"vecalign/internal/domain"
)

// Builder filters dictionary entries against a source and target vocabulary.
type Builder struct {
	source map[string]struct{}
	target map[string]struct{}
	insert bool
	log    zerolog.Logger
}

// NewBuilder creates a builder over the two vocabularies. When insert is
// true, entries whose target side is known but whose source side is not are
// queued for insertion instead of discarded.
func NewBuilder(source, target []string, insert bool, log zerolog.Logger) *Builder {
	b := &Builder{
		source: make(map[string]struct{}, len(source)),
		target: make(map[string]struct{}, len(target)),
		insert: insert,
		log:    log,
	}
	for _, w := range source {
		b.source[w] = struct{}{}
	}
	for _, w := range target {
		b.target[w] = struct{}{}
	}
	return b
}

// Unsupervised returns one (w, w) pair for every word present in both
// vocabularies, sorted for determinism. Ordering does not affect the fit
// since rows pair by index.
func (b *Builder) Unsupervised() []domain.TranslationPair {
	var overlap []string
	for w := range b.source {
		if _, ok := b.target[w]; ok {
			overlap = append(overlap, w)
		}
	}
	sort.Strings(overlap)
	pairs := make([]domain.TranslationPair, len(overlap))
	for i, w := range overlap {
		pairs[i] = domain.TranslationPair{Source: w, Target: w}
	}
	return pairs
}

// Build filters raw dictionary lines ("source<TAB>target") into a Lexicon.
// Blank lines are skipped; lines without exactly two tab-separated fields are
// logged and counted as malformed. Duplicate pairs are kept.
func (b *Builder) Build(lines []string) domain.Lexicon {
	var lex domain.Lexicon
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			b.log.Warn().Str("line", line).Msg("dictionary entry does not split into two fields")
			lex.Malformed++
			continue
		}
		src := strings.TrimSpace(fields[0])
		tgt := strings.TrimSpace(fields[1])
		_, srcKnown := b.source[src]
		_, tgtKnown := b.target[tgt]
		switch {
		case srcKnown && tgtKnown:
			lex.Pairs = append(lex.Pairs, domain.TranslationPair{Source: src, Target: tgt})
		case tgtKnown && b.insert:
			lex.Queue = append(lex.Queue, domain.Insertion{Word: src, Anchor: tgt})
		default:
			lex.Discarded++
		}
	}
	return lex
}

// ReadLines yields the raw lines of a UTF-8 dictionary file.
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary %s: %w", path, err)
	}
	defer file.Close()

	var lines []string
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	return lines, nil
}
