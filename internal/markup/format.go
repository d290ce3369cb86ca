// Package markup turns raw advisory answers into display blocks.
//
// The recognized syntax is deliberately small: one block per line, lines
// starting with "•" or "-" are list items, and text between a pair of "**"
// markers is emphasized. Everything else passes through literally. Output is
// structured data, never a markup string; renderers escape text themselves.
//
// Marker pairing is left to right and non-greedy: each "**" pairs with the
// nearest following "**". A final unmatched "**" is kept as literal text, an
// empty pair ("****") is dropped without producing a span, and nested
// emphasis is not recognized (the inner opener closes the outer span).
package markup

import (
	"strings"
	"unicode"
)

// Kind is the block type
type Kind string

const (
	Paragraph Kind = "paragraph"
	ListItem  Kind = "list_item"
)

const emphasisMarker = "**"

var bulletMarkers = []string{"•", "-"}

// Span marks an emphasized byte range [Start, End) of Block.Text
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Block is one display line
type Block struct {
	Kind  Kind   `json:"kind"`
	Text  string `json:"text"`
	Spans []Span `json:"spans,omitempty"`
}

// Segment is a run of Block.Text with uniform emphasis
type Segment struct {
	Text       string
	Emphasized bool
}

// Segments splits the block text at span boundaries
func (b Block) Segments() []Segment {
	var out []Segment
	pos := 0
	for _, sp := range b.Spans {
		if sp.Start > pos {
			out = append(out, Segment{Text: b.Text[pos:sp.Start]})
		}
		out = append(out, Segment{Text: b.Text[sp.Start:sp.End], Emphasized: true})
		pos = sp.End
	}
	if pos < len(b.Text) {
		out = append(out, Segment{Text: b.Text[pos:]})
	}
	return out
}

// Format converts raw answer text into blocks. Blank lines produce no block.
func Format(raw string) []Block {
	var blocks []Block
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		kind, body := Paragraph, line
		if rest, ok := stripBullet(trimmed); ok {
			kind, body = ListItem, rest
		}

		text, spans := parseEmphasis(body)
		blocks = append(blocks, Block{Kind: kind, Text: text, Spans: spans})
	}
	return blocks
}

func stripBullet(trimmed string) (string, bool) {
	for _, m := range bulletMarkers {
		if strings.HasPrefix(trimmed, m) {
			return strings.TrimLeftFunc(trimmed[len(m):], unicode.IsSpace), true
		}
	}
	return "", false
}

func parseEmphasis(s string) (string, []Span) {
	if !strings.Contains(s, emphasisMarker) {
		return s, nil
	}

	var (
		b     strings.Builder
		spans []Span
		rest  = s
	)
	for {
		open := strings.Index(rest, emphasisMarker)
		if open < 0 {
			break
		}
		inner := rest[open+len(emphasisMarker):]
		end := strings.Index(inner, emphasisMarker)
		if end < 0 {
			break
		}

		b.WriteString(rest[:open])
		if end > 0 {
			start := b.Len()
			b.WriteString(inner[:end])
			spans = append(spans, Span{Start: start, End: b.Len()})
		}
		rest = inner[end+len(emphasisMarker):]
	}
	b.WriteString(rest)
	return b.String(), spans
}
