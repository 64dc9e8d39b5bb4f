// Package cache keeps gob snapshots of loaded embedding spaces so repeated
// runs over the same large vector files skip the slow text parse. The cache
// file name is derived once — from the source path, size, and mtime — and
// used for both read and write, so an edited source file simply misses.
package cache

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"vecalign/internal/domain"
	"vecalign/internal/embedding"
	"vecalign/internal/vecio"
)

// snapshot is the on-disk form of a space.
type snapshot struct {
	Dim     int
	Words   []string
	Vectors [][]float64
}

// Loader is a domain.Loader that consults the snapshot cache before falling
// back to the text parser. Cache failures are logged and degrade to a slow
// read; they are never fatal.
type Loader struct {
	dir string
	log zerolog.Logger
}

// NewLoader creates a caching loader writing snapshots under dir.
func NewLoader(dir string, log zerolog.Logger) *Loader {
	return &Loader{dir: dir, log: log}
}

// Load returns the space for path, from the cache when possible.
func (l *Loader) Load(path string) (domain.MutableSpace, error) {
	key, err := l.key(path)
	if err != nil {
		return nil, fmt.Errorf("stat vectors %s: %w", path, err)
	}
	if space, err := l.read(key); err == nil {
		l.log.Debug().Str("path", path).Msg("cache hit")
		return space, nil
	}

	l.log.Info().Str("path", path).Msg("slow read")
	space, err := vecio.Load(path)
	if err != nil {
		return nil, err
	}
	if err := l.write(key, space); err != nil {
		l.log.Warn().Err(err).Str("path", path).Msg("caching failed")
	}
	return space, nil
}

// key derives the snapshot file path for a source file from its identity and
// current size/mtime.
func (l *Loader) key(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())))
	return filepath.Join(l.dir, hex.EncodeToString(sum[:])+".gob"), nil
}

func (l *Loader) read(key string) (*embedding.Space, error) {
	file, err := os.Open(key)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var snap snapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		return nil, err
	}
	space := embedding.NewSpace(snap.Dim)
	for i, word := range snap.Words {
		if err := space.Insert(word, snap.Vectors[i]); err != nil {
			return nil, err
		}
	}
	return space, nil
}

func (l *Loader) write(key string, space *embedding.Space) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return err
	}
	snap := snapshot{Dim: space.Dimension(), Words: space.Words()}
	snap.Vectors = make([][]float64, 0, len(snap.Words))
	for _, word := range snap.Words {
		vector, err := space.Vector(word)
		if err != nil {
			return err
		}
		snap.Vectors = append(snap.Vectors, vector)
	}
	tmp := key + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(file).Encode(&snap); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, key)
}
