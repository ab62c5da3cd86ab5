package content

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", 201))

	tests := []struct {
		name string
		raw  string
		want Stats
	}{
		{
			name: "single text node",
			raw:  `{"content":[{"type":"text","text":"hello world"}]}`,
			want: Stats{WordCount: 2, CharacterCount: 12, ReadingTime: 1},
		},
		{
			name: "nested paragraphs",
			raw: `{"type":"doc","content":[
				{"type":"paragraph","content":[{"type":"text","text":"one two"},{"type":"text","text":"three"}]},
				{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"four"}]}
			]}`,
			want: Stats{WordCount: 4, CharacterCount: 19, ReadingTime: 1},
		},
		{
			name: "non text nodes ignored",
			raw:  `{"type":"doc","content":[{"type":"image","text":"alt text"},{"type":"hardBreak"}]}`,
			want: Stats{},
		},
		{
			name: "reading time rounds up",
			raw:  `{"content":[{"type":"text","text":"` + long + `"}]}`,
			want: Stats{WordCount: 201, CharacterCount: len(long) + 1, ReadingTime: 2},
		},
		{
			name: "serialized document inside a string",
			raw:  `"{\"content\":[{\"type\":\"text\",\"text\":\"hi\"}]}"`,
			want: Stats{WordCount: 1, CharacterCount: 3, ReadingTime: 1},
		},
		{
			name: "not json",
			raw:  `not valid json-ish structure`,
			want: Stats{},
		},
		{
			name: "array instead of object",
			raw:  `[1,2,3]`,
			want: Stats{},
		},
		{
			name: "empty",
			raw:  ``,
			want: Stats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute([]byte(tt.raw)))
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	raw := []byte(`{"content":[{"type":"text","text":"Xin chào thế giới"}]}`)
	first := Compute(raw)
	second := Compute(raw)
	assert.Equal(t, first, second)
	assert.Equal(t, 4, first.WordCount)
	assert.Equal(t, 18, first.CharacterCount)
}

func TestComputeDocument_MatchesCompute(t *testing.T) {
	text := "a b c"
	doc := Node{Type: "doc", Content: []Node{{Type: "text", Text: &text}}}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	assert.Equal(t, ComputeDocument(doc), Compute(raw))
	assert.Equal(t, "a b c ", ExtractText(doc))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid([]byte(`{"type":"doc"}`)))
	assert.False(t, Valid([]byte(`{`)))
	assert.False(t, Valid(nil))
}
