package pathcount

import (
	"context"
	"os"
)

// Source describes anything a device graph can be loaded from.
type Source interface {

	// Load reads the complete graph. Load is called once per query run; the
	// returned graph is never modified afterwards.
	Load(ctx context.Context) (*Graph, error)
}

// TextSource loads a graph from its textual description.
type TextSource struct {
	Text string
}

// Load implements Source.
func (s TextSource) Load(_ context.Context) (*Graph, error) {
	return Parse(s.Text), nil
}

// FileSource loads a graph from a text file.
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load(_ context.Context) (*Graph, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return ParseReader(f)
}
