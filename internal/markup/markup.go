// Package markup turns a raw message body into renderable segments. It
// understands only the small dialect the query service emits: **bold**,
// `inline code`, and ``` fenced blocks. Unbalanced delimiters fall through
// as literal text and parsing never fails.
package markup

import "strings"

// Kind tags a parsed segment.
type Kind int

const (
	Text Kind = iota
	Break
	Bold
	Code
	CodeBlock
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Break:
		return "break"
	case Bold:
		return "bold"
	case Code:
		return "code"
	case CodeBlock:
		return "codeblock"
	default:
		return "unknown"
	}
}

// Segment is one renderable piece of a message body. Break segments carry no
// text; they mark an explicit line break inside plain text.
type Segment struct {
	Kind Kind
	Text string
}

const (
	fence      = "```"
	inlineTick = "`"
	boldMark   = "**"
)

// Parse splits body into an ordered segment list. Fenced blocks are matched
// first so their contents are never re-interpreted, then inline code, then
// bold; whatever remains is plain text with embedded newlines expanded into
// Break segments. A delimiter without its closing partner is literal text.
func Parse(body string) []Segment {
	var segs []Segment
	rest := body
	for {
		start := strings.Index(rest, fence)
		if start < 0 {
			break
		}
		length := strings.Index(rest[start+len(fence):], fence)
		if length < 0 {
			break
		}
		segs = append(segs, parseInlineCode(rest[:start])...)
		block := rest[start+len(fence) : start+len(fence)+length]
		segs = append(segs, Segment{Kind: CodeBlock, Text: trimFence(block)})
		rest = rest[start+2*len(fence)+length:]
	}
	return append(segs, parseInlineCode(rest)...)
}

func parseInlineCode(text string) []Segment {
	var segs []Segment
	rest := text
	for {
		start := strings.Index(rest, inlineTick)
		if start < 0 {
			break
		}
		length := strings.Index(rest[start+1:], inlineTick)
		if length < 0 {
			break
		}
		segs = append(segs, parseBold(rest[:start])...)
		segs = append(segs, Segment{Kind: Code, Text: rest[start+1 : start+1+length]})
		rest = rest[start+1+length+1:]
	}
	return append(segs, parseBold(rest)...)
}

func parseBold(text string) []Segment {
	var segs []Segment
	rest := text
	for {
		start := strings.Index(rest, boldMark)
		if start < 0 {
			break
		}
		length := strings.Index(rest[start+len(boldMark):], boldMark)
		if length < 0 {
			break
		}
		segs = append(segs, parsePlain(rest[:start])...)
		segs = append(segs, Segment{Kind: Bold, Text: rest[start+len(boldMark) : start+len(boldMark)+length]})
		rest = rest[start+2*len(boldMark)+length:]
	}
	return append(segs, parsePlain(rest)...)
}

func parsePlain(text string) []Segment {
	if text == "" {
		return nil
	}
	var segs []Segment
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			segs = append(segs, Segment{Kind: Break})
		}
		if line != "" {
			segs = append(segs, Segment{Kind: Text, Text: line})
		}
	}
	return segs
}

// trimFence drops the info word from a fence opener ("```sql") and a single
// surrounding newline so block text starts at the code itself.
func trimFence(block string) string {
	if nl := strings.IndexByte(block, '\n'); nl >= 0 && isFenceInfo(block[:nl]) {
		block = block[nl+1:]
	}
	return strings.TrimSuffix(block, "\n")
}

func isFenceInfo(word string) bool {
	if word == "" {
		return true
	}
	for _, r := range word {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '+':
		default:
			return false
		}
	}
	return true
}
