// Package loader fetches raw documents by URL or filesystem path and
// normalizes their bytes before parsing.
//
// Normalization handles the usual artifacts of user-exported files: a UTF-8
// BOM from Windows tools, invalid UTF-8 sequences, and legacy single-byte
// encodings. Transport and IO failures are surfaced to the caller unchanged;
// no retries are performed here.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrTooLarge is returned when a document exceeds the configured size limit.
var ErrTooLarge = errors.New("document exceeds size limit")

// utf8BOM is the UTF-8 byte order mark commonly added by Windows programs.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader retrieves documents over HTTP or from the local filesystem.
type Loader struct {
	client   *http.Client
	maxBytes int64
}

// New creates a Loader. maxBytes <= 0 disables the size limit.
func New(maxBytes int64, timeout time.Duration) *Loader {
	return &Loader{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Load retrieves the document identified by ref: an http(s) URL or a
// filesystem path.
func (l *Loader) Load(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return l.loadURL(ctx, ref)
	}
	return l.loadFile(ref)
}

func (l *Loader) loadURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	return l.readAll(resp.Body)
}

func (l *Loader) loadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return l.readAll(f)
}

// readAll reads the document, enforcing the size limit by reading one byte
// past it: a full read at maxBytes+1 means the document was truncated.
func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	if l.maxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read document: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

// Normalize prepares raw document bytes for parsing: decodes the declared
// source encoding to UTF-8 when one is given, strips a leading BOM, and
// replaces invalid UTF-8 sequences with '?'.
func Normalize(data []byte, encoding string) ([]byte, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8", "utf-8-sig":
		// Already UTF-8 (or close enough once sanitized).
	case "latin1", "iso-8859-1":
		decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", encoding, err)
		}
		data = decoded
	case "windows-1252", "cp1252":
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", encoding, err)
		}
		data = decoded
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	return sanitizeUTF8(data), nil
}

// sanitizeUTF8 replaces invalid UTF-8 bytes with '?'. Most documents are
// valid and take the fast path; the slow path rewrites byte by byte.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			out = append(out, '?')
			i++
			continue
		}
		out = append(out, data[i:i+size]...)
		i += size
	}
	return out
}
