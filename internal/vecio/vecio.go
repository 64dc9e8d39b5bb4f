// Package vecio reads and writes the word2vec text vector format: a header
// line "count dim" followed by one "word v1 v2 ... vD" line per word.
package vecio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"vecalign/internal/domain"
	"vecalign/internal/embedding"
)

// Load parses a vector file into a Space. Any structural problem is fatal and
// reported with the offending path.
func Load(path string) (*embedding.Space, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vectors %s: %w", path, err)
	}
	defer file.Close()

	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !sc.Scan() {
		return nil, fmt.Errorf("%s: empty vector file", path)
	}
	header := strings.Fields(sc.Text())
	if len(header) != 2 {
		return nil, fmt.Errorf("%s: malformed header %q", path, sc.Text())
	}
	count, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, fmt.Errorf("%s: bad word count %q", path, header[0])
	}
	dim, err := strconv.Atoi(header[1])
	if err != nil || dim <= 0 {
		return nil, fmt.Errorf("%s: bad dimension %q", path, header[1])
	}

	space := embedding.NewSpace(dim)
	lineNo := 1
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != dim+1 {
			return nil, fmt.Errorf("%s:%d: expected %d fields, got %d", path, lineNo, dim+1, len(fields))
		}
		vector := make([]float64, dim)
		for i, f := range fields[1:] {
			vector[i], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad value %q: %w", path, lineNo, f, err)
			}
		}
		if err := space.Insert(fields[0], vector); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read vectors %s: %w", path, err)
	}
	if space.Len() != count {
		return nil, fmt.Errorf("%s: header promises %d words, found %d", path, count, space.Len())
	}
	return space, nil
}

// Export writes a space back to the text vector format at path.
func Export(space domain.MutableSpace, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "%d %d\n", space.Len(), space.Dimension())
	for _, word := range space.Words() {
		vector, err := space.Vector(word)
		if err != nil {
			return err
		}
		w.WriteString(word)
		for _, v := range vector {
			w.WriteByte(' ')
			w.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Loader is the plain (uncached) domain.Loader.
type Loader struct{}

func (Loader) Load(path string) (domain.MutableSpace, error) {
	return Load(path)
}

// Exporter is the file-backed domain.Exporter.
type Exporter struct{}

func (Exporter) Export(space domain.MutableSpace, path string) error {
	return Export(space, path)
}
