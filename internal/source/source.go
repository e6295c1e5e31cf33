package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/flashread/internal/pagetree"
)

// Parser converts raw document bytes into a page tree.
type Parser interface {
	Parse(r io.Reader, filename string) (*pagetree.Tree, error)
}

// Options controls extraction.
type Options struct {
	MaxBytes             int64 // Reject files larger than this (0 = no limit)
	PDFFallbackPdftotext bool  // Retry failed PDFs with the pdftotext binary
}

// SupportedExtensions lists file extensions this tool can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".text":     true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Extract reads the file at path and returns its text as a page tree.
// Failures are *Error values wrapping ErrNotFound (the path does not
// exist), ErrRead (any other I/O failure), ErrUnsupportedFormat or ErrParse.
func Extract(path string, opts Options) (*pagetree.Tree, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(ErrNotFound, path, nil)
		}
		return nil, newError(ErrRead, path, err)
	}
	if info.IsDir() {
		return nil, newError(ErrUnsupportedFormat, path, errors.New("is a directory"))
	}
	if opts.MaxBytes > 0 && info.Size() > opts.MaxBytes {
		return nil, newError(ErrUnsupportedFormat, path,
			fmt.Errorf("file exceeds max size (%d bytes)", opts.MaxBytes))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(ErrNotFound, path, nil)
		}
		return nil, newError(ErrRead, path, err)
	}

	p, err := Detect(path, data, opts)
	if err != nil {
		return nil, newError(ErrUnsupportedFormat, path, err)
	}

	tree, err := parse(p, data, filepath.Base(path))
	if err != nil {
		return nil, newError(ErrParse, path, err)
	}
	return tree, nil
}

// parse runs p and converts decoder panics into errors. Some PDF
// decoders panic on corrupt input.
func parse(p Parser, data []byte, filename string) (tree *pagetree.Tree, err error) {
	defer func() {
		if r := recover(); r != nil {
			tree, err = nil, fmt.Errorf("decoder panic: %v", r)
		}
	}()
	return p.Parse(bytes.NewReader(data), filename)
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".text":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %q", ext)
	}
}

// Detect picks a parser by extension, sniffing the content when the
// extension is missing or unknown.
func Detect(filename string, data []byte, opts Options) (Parser, error) {
	if IsSupportedExtension(filename) {
		return ForFile(filename, opts)
	}

	ctype := http.DetectContentType(data)
	switch {
	case strings.HasPrefix(ctype, "application/pdf"):
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case strings.HasPrefix(ctype, "text/html"):
		return &HTMLParser{}, nil
	case strings.HasPrefix(ctype, "text/plain"):
		return &TextParser{}, nil
	}
	return nil, fmt.Errorf("unrecognized content type %q", ctype)
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// readerAt adapts r for decoders that need random access.
func readerAt(r io.Reader) (io.ReaderAt, int64, error) {
	if br, ok := r.(*bytes.Reader); ok {
		return br, br.Size(), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}
	return bytes.NewReader(data), int64(len(data)), nil
}
