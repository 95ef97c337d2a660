package process

import (
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/asciidoc-dita/adfix/internal/config"
)

// skipError marks a per-file condition that skips the file rather than
// failing it (size ceiling, undecodable content).
type skipError struct {
	reason string
}

func (e *skipError) Error() string { return e.reason }

// document is one file's decoded content plus what is needed to write it
// back faithfully.
type document struct {
	Text   string
	Mode   fs.FileMode
	Latin1 bool // decoded via the latin-1 fallback; re-encode on write
}

// loadDocument reads and decodes a file. UTF-8 is the primary encoding;
// files that are not valid UTF-8 go through the configured fallback or are
// skipped.
func loadDocument(path string, cfg *config.Config) (*document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot stat file: %w", err)
	}
	if info.Size() > cfg.MaxFileSize {
		return nil, &skipError{reason: fmt.Sprintf("file exceeds size ceiling (%d > %d bytes)", info.Size(), cfg.MaxFileSize)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	doc := &document{Mode: info.Mode().Perm()}
	if utf8.Valid(data) {
		doc.Text = string(data)
		return doc, nil
	}

	if cfg.FallbackEncoding != "latin-1" {
		return nil, &skipError{reason: "file is not valid UTF-8 and no fallback encoding is configured"}
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, &skipError{reason: fmt.Sprintf("file could not be decoded as latin-1: %v", err)}
	}
	doc.Text = string(decoded)
	doc.Latin1 = true
	return doc, nil
}

// encode converts edited text back to the document's on-disk encoding.
func (d *document) encode(text string) ([]byte, error) {
	if !d.Latin1 {
		return []byte(text), nil
	}
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("cannot re-encode as latin-1: %w", err)
	}
	return encoded, nil
}
