package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := New(0, time.Second)
	data, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "a,b\n1,2" {
		t.Errorf("data = %q", data)
	}
}

func TestLoadFileMissing(t *testing.T) {
	l := New(0, time.Second)
	if _, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x,y\n1,2"))
	}))
	defer srv.Close()

	l := New(0, time.Second)
	data, err := l.Load(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "x,y\n1,2" {
		t.Errorf("data = %q", data)
	}
}

func TestLoadURLBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	l := New(0, time.Second)
	if _, err := l.Load(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestLoadSizeLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.csv")
	if err := os.WriteFile(path, make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}

	l := New(10, time.Second)
	_, err := l.Load(context.Background(), path)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		encoding string
		want     string
		wantErr  bool
	}{
		{
			name:  "plain utf8 passthrough",
			input: []byte("a,b\n1,2"),
			want:  "a,b\n1,2",
		},
		{
			name:  "bom stripped",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b")...),
			want:  "a,b",
		},
		{
			name:  "invalid utf8 replaced",
			input: []byte{'a', 0xFF, 'b'},
			want:  "a?b",
		},
		{
			name:     "latin1 decoded",
			input:    []byte{'n', 0xE9, 'e'}, // "née" in ISO-8859-1
			encoding: "latin1",
			want:     "née",
		},
		{
			name:     "unknown encoding rejected",
			input:    []byte("a"),
			encoding: "ebcdic",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input, tt.encoding)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Normalize = %q, want %q", got, tt.want)
			}
		})
	}
}
