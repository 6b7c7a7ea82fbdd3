package termtable

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitfunnel-go/termtable/pkg/config"
)

func writeCorpusFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing corpus fixture: %v", err)
	}
	return path
}

func TestCorpusSourceFallsBackToFileWithoutDB(t *testing.T) {
	path := writeCorpusFile(t, "aaaaaaaaaaaaaaaa,1,0,0.1\nbbbbbbbbbbbbbbbb,1,0,0.01\n")
	source := NewCorpusSource(nil, config.CorpusConfig{FilePath: path})

	table, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("Load() returned %d entries, want 2", table.Len())
	}
}

func TestCorpusSourceNoSourceConfigured(t *testing.T) {
	source := NewCorpusSource(nil, config.CorpusConfig{})
	if _, err := source.Load(context.Background()); err == nil {
		t.Error("Load() with no table and no file path should fail")
	}
}
