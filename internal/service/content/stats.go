package content

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// WordsPerMinute is the reading speed used for ReadingTime
const WordsPerMinute = 200

// Node is one node of a structured document. Only the fields needed for
// text extraction are decoded; everything else in the document is ignored.
type Node struct {
	Type    string  `json:"type"`
	Text    *string `json:"text,omitempty"`
	Content []Node  `json:"content,omitempty"`
}

// Stats are the derived statistics of a document
type Stats struct {
	WordCount      int `json:"wordCount"`
	CharacterCount int `json:"characterCount"`
	ReadingTime    int `json:"readingTime"`
}

// Compute parses a serialized document and returns its statistics.
// Unparseable input yields zero stats. A JSON string holding a serialized
// document is unwrapped once.
func Compute(raw []byte) Stats {
	doc, ok := parseDocument(raw)
	if !ok {
		return Stats{}
	}
	return ComputeDocument(doc)
}

// ComputeDocument returns the statistics of an already decoded document
func ComputeDocument(doc Node) Stats {
	text := ExtractText(doc)
	words := len(strings.Fields(strings.TrimSpace(text)))

	return Stats{
		WordCount:      words,
		CharacterCount: utf8.RuneCountInString(text),
		ReadingTime:    (words + WordsPerMinute - 1) / WordsPerMinute,
	}
}

// ExtractText returns the text of every text node, each followed by a space
func ExtractText(doc Node) string {
	var b strings.Builder
	collectText(&doc, &b)
	return b.String()
}

func collectText(n *Node, b *strings.Builder) {
	if n.Type == "text" && n.Text != nil {
		b.WriteString(*n.Text)
		b.WriteByte(' ')
	}
	for i := range n.Content {
		collectText(&n.Content[i], b)
	}
}

func parseDocument(raw []byte) (Node, bool) {
	var doc Node
	if len(raw) == 0 {
		return doc, false
	}
	if err := json.Unmarshal(raw, &doc); err == nil {
		return doc, true
	}

	var wrapped string
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return doc, false
	}
	if err := json.Unmarshal([]byte(wrapped), &doc); err != nil {
		return Node{}, false
	}
	return doc, true
}

// Valid reports whether raw decodes as a document object
func Valid(raw []byte) bool {
	_, ok := parseDocument(raw)
	return ok
}
