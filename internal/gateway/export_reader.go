package gateway

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Supported encodings of the collections text export.
const (
	EncodingLatin1 = "latin1"
	EncodingUTF8   = "utf-8"
)

// FileReader reads the collections text export from disk and decodes it to UTF-8.
type FileReader struct {
	encoding string
}

// NewFileReader creates a reader for exports in the given encoding ("latin1" or "utf-8").
func NewFileReader(encoding string) (*FileReader, error) {
	switch enc := strings.ToLower(strings.TrimSpace(encoding)); enc {
	case EncodingLatin1, "iso-8859-1", "":
		return &FileReader{encoding: EncodingLatin1}, nil
	case EncodingUTF8, "utf8":
		return &FileReader{encoding: EncodingUTF8}, nil
	default:
		return nil, fmt.Errorf("unsupported export encoding %q", encoding)
	}
}

// ReadLedgerExport returns the whole export as UTF-8 text.
func (r *FileReader) ReadLedgerExport(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read ledger export %s: %w", path, err)
	}

	if r.encoding == EncodingLatin1 {
		data, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("failed to decode ledger export %s: %w", path, err)
		}
	}
	return string(data), nil
}
