package records

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/blockberries/stdf/internal/stdftest"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func streamTypes(t *testing.T, rc io.ReadCloser) []Type {
	t.Helper()
	defer rc.Close()
	var types []Type
	s := NewStream(rc)
	for s.Next() {
		types = append(types, s.Record().Type)
	}
	return types
}

func TestOpenPlain(t *testing.T) {
	data := stdftest.Concat(stdftest.FAR(), stdftest.PIR(1, 1))
	path := writeTemp(t, "plain.stdf", data)

	rc, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	types := streamTypes(t, rc)
	if len(types) != 2 || types[0] != TypeFAR || types[1] != TypePIR {
		t.Errorf("types = %v, want [FAR PIR]", types)
	}
}

func TestOpenGzip(t *testing.T) {
	data := stdftest.Concat(stdftest.FAR(), stdftest.PIR(1, 1))
	path := filepath.Join(t.TempDir(), "file.stdf.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	rc, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	types := streamTypes(t, rc)
	if len(types) != 2 {
		t.Errorf("got %d records through gzip, want 2", len(types))
	}
}

func TestOpenZstd(t *testing.T) {
	data := stdftest.Concat(stdftest.FAR(), stdftest.PIR(1, 1))
	var buf []byte
	{
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			t.Fatal(err)
		}
		buf = enc.EncodeAll(data, nil)
	}
	path := writeTemp(t, "file.stdf.zst", buf)

	rc, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	types := streamTypes(t, rc)
	if len(types) != 2 {
		t.Errorf("got %d records through zstd, want 2", len(types))
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "absent.stdf")); err == nil {
		t.Error("Open on a missing file: err = nil")
	}
}
