// =============================================================================
// GAEB Converter - Formatted Text Handling
// =============================================================================
//
// GAEB text blocks are XHTML-like trees of <p>/<span> (plus bold/italic and
// list markup in the wild). The codec keeps two representations side by side:
// a best-effort plain-text projection for display and editing, and the
// verbatim raw fragment for lossless re-emission. Edits drop the raw fragment
// so the writer falls back to rebuilding clean <p>/<span> lines.
//
// =============================================================================

package gaebxml

import (
	"strings"

	"github.com/beevik/etree"
)

// ExtractPlainText flattens a formatted text block to plain text. Each <p>
// paragraph becomes one line; blank paragraphs are skipped. Blocks without
// any paragraph fall back to the concatenated character data of the whole
// subtree.
func ExtractPlainText(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var lines []string
	collectParagraphs(el, &lines)
	if len(lines) == 0 {
		return strings.TrimSpace(subtreeText(el))
	}
	return strings.Join(lines, "\n")
}

func collectParagraphs(el *etree.Element, lines *[]string) {
	if el.Tag == "p" {
		if line := strings.TrimSpace(subtreeText(el)); line != "" {
			*lines = append(*lines, line)
		}
		return
	}
	for _, child := range el.ChildElements() {
		collectParagraphs(child, lines)
	}
}

// subtreeText concatenates all character data beneath an element in document
// order, which covers text interleaved with inline markup.
func subtreeText(el *etree.Element) string {
	var sb strings.Builder
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			sb.WriteString(subtreeText(t))
		}
	}
	return sb.String()
}

// appendTextLines rebuilds a plain string as <p><span>line</span></p>
// children of parent, one paragraph per line.
func appendTextLines(parent *etree.Element, text string) {
	for _, line := range strings.Split(text, "\n") {
		p := parent.CreateElement("p")
		span := p.CreateElement("span")
		span.SetText(line)
	}
}

// spliceRaw re-emits a preserved raw fragment beneath parent. When the
// fragment's root tag equals the parent tag the children are spliced in
// directly, so a preserved <Text> block does not end up as <Text><Text>.
func spliceRaw(parent *etree.Element, raw *etree.Element) {
	if raw == nil {
		return
	}
	cp := raw.Copy()
	if cp.Tag != parent.Tag {
		parent.AddChild(cp)
		return
	}
	tokens := append([]etree.Token(nil), cp.Child...)
	for _, tok := range tokens {
		parent.AddChild(tok)
	}
}
