package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadParsesManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agerun.yaml")
	content := `
bootstrap:
  method: echo
  version: 1.0.0
preload:
  - name: echo
    version: 1.0.0
    file: testdata/methods/echo.ar
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Bootstrap.Method != "echo" || m.Bootstrap.Version != "1.0.0" {
		t.Fatalf("unexpected bootstrap: %+v", m.Bootstrap)
	}
	if len(m.Preload) != 1 || m.Preload[0].Name != "echo" {
		t.Fatalf("unexpected preload: %+v", m.Preload)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load("/nonexistent/agerun.yaml"); err == nil {
		t.Fatal("expected an error for a missing manifest")
	}
}
