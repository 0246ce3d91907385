package config

import (
	"io/fs"
	"testing"
	"testing/fstest"
)

// mapFS adapts fstest.MapFS to the FileSystem interface.
type mapFS struct{ fstest.MapFS }

func (m mapFS) ReadFile(path string) ([]byte, error) {
	data, err := m.MapFS.ReadFile(path)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

func TestTOMLLoaderMissingFile(t *testing.T) {
	l := NewTOMLLoaderWithFS(mapFS{fstest.MapFS{}}, "absent.toml")
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("missing file should yield defaults, got %v", err)
	}
	if cfg.LineBreak.SpaceCM || len(cfg.Dictionary) != 0 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestTOMLLoaderLoad(t *testing.T) {
	doc := `
[linebreak]
space_cm = true
korean_space = true

[[dictionary]]
script = "Thai"
path = "thai.yaml"
`
	l := NewTOMLLoaderWithFS(mapFS{fstest.MapFS{
		"mtext.toml": &fstest.MapFile{Data: []byte(doc)},
	}}, "mtext.toml")
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.LineBreak.SpaceCM || !cfg.LineBreak.KoreanSpace || cfg.LineBreak.AIAsID {
		t.Errorf("linebreak options = %+v", cfg.LineBreak)
	}
	if len(cfg.Dictionary) != 1 || cfg.Dictionary[0].Script != "Thai" || cfg.Dictionary[0].Path != "thai.yaml" {
		t.Errorf("dictionary = %+v", cfg.Dictionary)
	}
}

func TestTOMLLoaderValidation(t *testing.T) {
	doc := `
[[dictionary]]
script = "Thai"
`
	l := NewTOMLLoaderWithFS(mapFS{fstest.MapFS{
		"mtext.toml": &fstest.MapFile{Data: []byte(doc)},
	}}, "mtext.toml")
	if _, err := l.Load(); err == nil {
		t.Fatal("expected validation error for dictionary without path")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvKoreanSpace, "true")
	t.Setenv(EnvAIAsID, "not-a-bool")
	cfg := Default()
	ApplyEnv(cfg)
	if !cfg.LineBreak.KoreanSpace {
		t.Error("env override not applied")
	}
	if cfg.LineBreak.AIAsID {
		t.Error("unparsable env value should be ignored")
	}
}
