package attachment

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Kind classifies a part by its top-level media type, which decides the
// transfer encoding used on the wire.
type Kind string

// Part kinds.
const (
	KindText   Kind = "text"
	KindImage  Kind = "image"
	KindAudio  Kind = "audio"
	KindBinary Kind = "binary"
)

// DefaultMaxSize is the size limit applied when a campaign does not
// configure one: 25 MB, the common provider ceiling.
const DefaultMaxSize int64 = 25 * 1024 * 1024

// Part is a validated attachment ready to be appended to a message.
type Part struct {
	Filename    string // basename of the source file
	ContentType string // inferred MIME type
	Kind        Kind
	Content     []byte
}

// Disposition returns the part's Content-Disposition header value.
func (p *Part) Disposition() string {
	return fmt.Sprintf("attachment; filename=%q", p.Filename)
}

// Size returns the part's content length in bytes.
func (p *Part) Size() int64 {
	return int64(len(p.Content))
}

// Build validates the file at path and reads it fully into a Part.
// maxSize <= 0 applies DefaultMaxSize.
func Build(path string, maxSize int64) (*Part, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, path)
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %s: %sMB (max: %sMB)",
			ErrTooLarge, filepath.Base(path), megabytes(info.Size()), maxMegabytes(maxSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	contentType, kind := classify(path)
	if kind == KindText {
		// Decode as UTF-8, replacing invalid sequences.
		data = []byte(strings.ToValidUTF8(string(data), "�"))
	}

	return &Part{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Kind:        kind,
		Content:     data,
	}, nil
}

// BuildAll builds every path against the same size limit, preserving
// order. The first failure aborts the whole batch.
func BuildAll(paths []string, maxSize int64) ([]*Part, error) {
	parts := make([]*Part, 0, len(paths))
	for _, path := range paths {
		part, err := Build(path, maxSize)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// classify infers the content type from the file extension and maps it to
// a part kind. Unknown or parameterized types collapse to opaque binary.
func classify(path string) (string, Kind) {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		return "application/octet-stream", KindBinary
	}

	base := contentType
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}

	switch {
	case strings.HasPrefix(base, "text/"):
		return base, KindText
	case strings.HasPrefix(base, "image/"):
		return base, KindImage
	case strings.HasPrefix(base, "audio/"):
		return base, KindAudio
	default:
		return base, KindBinary
	}
}

// megabytes formats a byte count in MB to one decimal place.
func megabytes(n int64) string {
	return strconv.FormatFloat(float64(n)/(1024*1024), 'f', 1, 64)
}

// maxMegabytes formats a limit in MB, trimming the decimal when integral.
func maxMegabytes(n int64) string {
	mb := float64(n) / (1024 * 1024)
	return strconv.FormatFloat(mb, 'f', -1, 64)
}
