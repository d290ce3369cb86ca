package markup

import (
	"html"
	"strings"
)

// RenderHTML renders blocks as an HTML fragment. All text is escaped; the only
// elements emitted are p, ul, li and strong.
func RenderHTML(blocks []Block) string {
	var b strings.Builder
	inList := false
	for _, blk := range blocks {
		if blk.Kind == ListItem && !inList {
			b.WriteString("<ul>")
			inList = true
		} else if blk.Kind != ListItem && inList {
			b.WriteString("</ul>")
			inList = false
		}

		tag := "p"
		if blk.Kind == ListItem {
			tag = "li"
		}
		b.WriteString("<" + tag + ">")
		writeSegmentsHTML(&b, blk)
		b.WriteString("</" + tag + ">")
	}
	if inList {
		b.WriteString("</ul>")
	}
	return b.String()
}

func writeSegmentsHTML(b *strings.Builder, blk Block) {
	for _, seg := range blk.Segments() {
		if seg.Emphasized {
			b.WriteString("<strong>")
			b.WriteString(html.EscapeString(seg.Text))
			b.WriteString("</strong>")
			continue
		}
		b.WriteString(html.EscapeString(seg.Text))
	}
}
