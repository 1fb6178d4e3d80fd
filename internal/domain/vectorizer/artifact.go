package vectorizer

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

const (
	artifactFormat  = "crosstune.tfidf"
	artifactVersion = 1
)

type artifact struct {
	Format  string    `json:"format"`
	Version int       `json:"version"`
	Terms   []string  `json:"terms"`
	IDF     []float64 `json:"idf"`
}

// Save writes the space as a versioned JSON artifact.
func (s *Space) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(artifact{
		Format:  artifactFormat,
		Version: artifactVersion,
		Terms:   s.terms,
		IDF:     s.idf,
	})
}

// SaveFile writes the artifact to path, replacing any existing file.
func (s *Space) SaveFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close artifact: %w", cerr)
		}
	}()
	return s.Save(f)
}

// LoadSpace reads an artifact written by Save.
func LoadSpace(r io.Reader) (*Space, error) {
	var a artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidArtifact, err)
	}
	if a.Format != artifactFormat {
		return nil, fmt.Errorf("%w: format %q", ErrInvalidArtifact, a.Format)
	}
	if a.Version != artifactVersion {
		return nil, fmt.Errorf("%w: version %d", ErrInvalidArtifact, a.Version)
	}
	return NewSpace(a.Terms, a.IDF)
}

// LoadFile reads an artifact from path.
func LoadFile(path string) (*Space, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	defer func() { _ = f.Close() }()
	return LoadSpace(f)
}
