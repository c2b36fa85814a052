package normalize

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// TextSource is a large-text column value as handed back by the driver:
// either already in memory or a handle that still has to be read.
type TextSource interface {
	textSource()
}

// Materialized is text the driver already returned inline.
type Materialized string

// Streaming wraps a lazily readable large-object handle. If the reader is
// also an io.Closer it is closed once drained.
type Streaming struct {
	Reader io.Reader
}

func (Materialized) textSource() {}
func (Streaming) textSource()    {}

// ResolveText turns src into a plain string. Streaming sources are drained
// completely through enc's decoder; a nil enc means UTF-8. A nil src
// resolves to nil.
func ResolveText(src TextSource, enc encoding.Encoding) (*string, error) {
	switch s := src.(type) {
	case nil:
		return nil, nil
	case Materialized:
		text := string(s)
		return &text, nil
	case Streaming:
		if s.Reader == nil {
			return nil, nil
		}
		if closer, ok := s.Reader.(io.Closer); ok {
			defer closer.Close()
		}
		if enc == nil {
			enc = unicode.UTF8
		}
		var b strings.Builder
		if _, err := io.Copy(&b, transform.NewReader(s.Reader, enc.NewDecoder())); err != nil {
			return nil, fmt.Errorf("drain large object: %w", err)
		}
		text := b.String()
		return &text, nil
	default:
		return nil, fmt.Errorf("unsupported text source %T", src)
	}
}

// LookupEncoding resolves a charset label such as "utf-8" or
// "windows-1252". An empty label means UTF-8.
func LookupEncoding(label string) (encoding.Encoding, error) {
	if strings.TrimSpace(label) == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", label, err)
	}
	return enc, nil
}
