// Package editor implements the markdown toolbar transforms applied to a note
// buffer. Offsets are counted in code points. Browser textarea selections
// count UTF-16 units, so callers convert them before sending text that holds
// characters outside the BMP.
package editor

import (
	"strings"
	"unicode/utf8"
)

// SyntaxTag selects a markdown transform.
type SyntaxTag string

const (
	Heading1     SyntaxTag = "heading1"
	Heading2     SyntaxTag = "heading2"
	Heading3     SyntaxTag = "heading3"
	Bold         SyntaxTag = "bold"
	Italic       SyntaxTag = "italic"
	BulletList   SyntaxTag = "bulletList"
	NumberedList SyntaxTag = "numberedList"
	CodeBlock    SyntaxTag = "codeBlock"
)

// TextEditState is the buffer and selection the caller read from its editor.
type TextEditState struct {
	Content        string
	SelectionStart int
	SelectionEnd   int
}

// Edit is the result of a transform: the new buffer and where the caret goes.
type Edit struct {
	Content string
	Caret   int
}

type marker struct {
	before string
	after  string
	// caret offsets relative to the selection end (non-empty) or start (empty)
	selDelta   int
	emptyDelta int
}

var markers = map[SyntaxTag]marker{
	Heading1:     {before: "# ", selDelta: 2, emptyDelta: 2},
	Heading2:     {before: "## ", selDelta: 3, emptyDelta: 3},
	Heading3:     {before: "### ", selDelta: 4, emptyDelta: 4},
	Bold:         {before: "**", after: "**", selDelta: 4, emptyDelta: 2},
	Italic:       {before: "*", after: "*", selDelta: 2, emptyDelta: 1},
	BulletList:   {before: "- ", selDelta: 2, emptyDelta: 2},
	NumberedList: {before: "1. ", selDelta: 3, emptyDelta: 3},
	CodeBlock:    {before: "```\n", after: "\n```", selDelta: 9, emptyDelta: 4},
}

// short names sent by the web toolbar buttons
var aliases = map[string]SyntaxTag{
	"h1":       Heading1,
	"h2":       Heading2,
	"h3":       Heading3,
	"bullet":   BulletList,
	"numbered": NumberedList,
	"code":     CodeBlock,
}

// ParseTag resolves a tag name or toolbar alias. The second result reports
// whether the name is known.
func ParseTag(name string) (SyntaxTag, bool) {
	if tag, ok := aliases[name]; ok {
		return tag, true
	}
	tag := SyntaxTag(name)
	_, ok := markers[tag]
	return tag, ok
}

// Tags returns every supported tag in toolbar order.
func Tags() []SyntaxTag {
	return []SyntaxTag{Heading1, Heading2, Heading3, Bold, Italic, BulletList, NumberedList, CodeBlock}
}

// MarkerLength is the number of runes tag inserts into the buffer.
// Unknown tags insert nothing.
func MarkerLength(tag SyntaxTag) int {
	m, ok := markers[tag]
	if !ok {
		return 0
	}
	return len(m.before) + len(m.after)
}

// Apply inserts the markdown syntax for tag around the selection in state.
// Text outside the selection is never modified. Unknown tags leave the
// content unchanged and put the caret at the selection end.
//
// The selection must satisfy 0 <= start <= end <= rune count of Content;
// callers validate this upstream (see Valid).
func Apply(state TextEditState, tag SyntaxTag) Edit {
	m, ok := markers[tag]
	if !ok {
		return Edit{Content: state.Content, Caret: state.SelectionEnd}
	}

	start, end := state.SelectionStart, state.SelectionEnd
	bs := byteOffset(state.Content, 0, 0, start)
	be := byteOffset(state.Content, bs, start, end)

	var b strings.Builder
	b.Grow(len(state.Content) + len(m.before) + len(m.after))
	b.WriteString(state.Content[:bs])
	b.WriteString(m.before)
	b.WriteString(state.Content[bs:be])
	b.WriteString(m.after)
	b.WriteString(state.Content[be:])

	caret := start + m.emptyDelta
	if end > start {
		caret = end + m.selDelta
	}

	return Edit{Content: b.String(), Caret: caret}
}

// byteOffset advances from byte offset from, which sits at rune offset
// runes, to rune offset target. Invalid bytes count as one rune each.
func byteOffset(s string, from, runes, target int) int {
	i := from
	for ; runes < target && i < len(s); runes++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

// Valid reports whether the selection offsets are within the buffer.
func Valid(state TextEditState) bool {
	n := utf8.RuneCountInString(state.Content)
	return state.SelectionStart >= 0 &&
		state.SelectionStart <= state.SelectionEnd &&
		state.SelectionEnd <= n
}
