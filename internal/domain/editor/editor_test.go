package editor

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_Table(t *testing.T) {
	tests := []struct {
		name    string
		state   TextEditState
		tag     SyntaxTag
		content string
		caret   int
	}{
		{"bold selection", TextEditState{"hello world", 0, 5}, Bold, "**hello** world", 9},
		{"heading2 empty buffer", TextEditState{"", 0, 0}, Heading2, "## ", 3},
		{"heading1 selection", TextEditState{"title", 0, 5}, Heading1, "# title", 7},
		{"heading3 point", TextEditState{"ab", 1, 1}, Heading3, "a### b", 5},
		{"italic point", TextEditState{"ab", 1, 1}, Italic, "a**b", 2},
		{"italic selection", TextEditState{"a word b", 2, 6}, Italic, "a *word* b", 8},
		{"bold point", TextEditState{"x", 1, 1}, Bold, "x****", 3},
		{"bullet selection", TextEditState{"item", 0, 4}, BulletList, "- item", 6},
		{"numbered point", TextEditState{"", 0, 0}, NumberedList, "1. ", 3},
		{"code selection", TextEditState{"fmt.Println()", 0, 13}, CodeBlock, "```\nfmt.Println()\n```", 22},
		{"code point", TextEditState{"ab", 1, 1}, CodeBlock, "a```\n\n```b", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.state, tt.tag)
			assert.Equal(t, tt.content, got.Content)
			assert.Equal(t, tt.caret, got.Caret)
		})
	}
}

func TestApply_LengthGrowsByMarker(t *testing.T) {
	buffers := []string{"", "a", "hello world", "línea con acentos", "多字节文本"}
	for _, tag := range Tags() {
		for _, content := range buffers {
			n := utf8.RuneCountInString(content)
			for start := 0; start <= n; start++ {
				for end := start; end <= n; end++ {
					got := Apply(TextEditState{content, start, end}, tag)
					require.Equal(t, n+MarkerLength(tag), utf8.RuneCountInString(got.Content),
						"tag=%s content=%q sel=[%d,%d)", tag, content, start, end)
				}
			}
		}
	}
}

func TestApply_PreservesTextOutsideSelection(t *testing.T) {
	state := TextEditState{Content: "before [sel] after", SelectionStart: 7, SelectionEnd: 12}
	got := Apply(state, CodeBlock)

	assert.Equal(t, "before ```\n[sel]\n``` after", got.Content)
	assert.Equal(t, 12+9, got.Caret)
}

func TestApply_NestsExistingMarkers(t *testing.T) {
	got := Apply(TextEditState{Content: "****", SelectionStart: 2, SelectionEnd: 2}, Bold)
	assert.Equal(t, "********", got.Content)
	assert.Equal(t, 4, got.Caret)
}

func TestApply_RuneOffsets(t *testing.T) {
	got := Apply(TextEditState{Content: "héllo wörld", SelectionStart: 6, SelectionEnd: 11}, Bold)
	assert.Equal(t, "héllo **wörld**", got.Content)
	assert.Equal(t, 15, got.Caret)
}

func TestApply_CodePointsOutsideBMP(t *testing.T) {
	got := Apply(TextEditState{Content: "😀x", SelectionStart: 1, SelectionEnd: 2}, Bold)
	assert.Equal(t, "😀**x**", got.Content)
	assert.Equal(t, 6, got.Caret)

	// a UTF-16 selection of the same character runs past the end
	assert.False(t, Valid(TextEditState{"😀x", 2, 3}))
}

func TestApply_KeepsInvalidUTF8Bytes(t *testing.T) {
	tests := []struct {
		name    string
		state   TextEditState
		tag     SyntaxTag
		content string
		caret   int
	}{
		{"invalid prefix", TextEditState{"\xffab", 2, 2}, Bold, "\xffa****b", 4},
		{"invalid inside selection", TextEditState{"a\xfe\xffb", 1, 3}, Italic, "a*\xfe\xff*b", 5},
		{"invalid suffix", TextEditState{"ab\xc3", 0, 2}, Heading1, "# ab\xc3", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.state, tt.tag)
			assert.Equal(t, []byte(tt.content), []byte(got.Content))
			assert.Equal(t, tt.caret, got.Caret)
		})
	}
}

func TestApply_UnknownTagIsNoop(t *testing.T) {
	state := TextEditState{Content: "keep me", SelectionStart: 1, SelectionEnd: 4}
	got := Apply(state, SyntaxTag("strikethrough"))
	assert.Equal(t, "keep me", got.Content)
	assert.Equal(t, 4, got.Caret)
	assert.Zero(t, MarkerLength("strikethrough"))
}

func TestParseTag(t *testing.T) {
	for alias, want := range map[string]SyntaxTag{
		"h1": Heading1, "h2": Heading2, "h3": Heading3,
		"bullet": BulletList, "numbered": NumberedList, "code": CodeBlock,
		"bold": Bold, "italic": Italic, "codeBlock": CodeBlock,
	} {
		got, ok := ParseTag(alias)
		assert.True(t, ok, alias)
		assert.Equal(t, want, got, alias)
	}

	_, ok := ParseTag("underline")
	assert.False(t, ok)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(TextEditState{"abc", 0, 3}))
	assert.True(t, Valid(TextEditState{"", 0, 0}))
	assert.True(t, Valid(TextEditState{"ñ", 1, 1}))
	assert.False(t, Valid(TextEditState{"abc", 2, 1}))
	assert.False(t, Valid(TextEditState{"abc", -1, 1}))
	assert.False(t, Valid(TextEditState{"ñ", 0, 2}))
}
