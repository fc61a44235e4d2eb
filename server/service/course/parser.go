package course

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// conceptsPrefix marks an optional metadata line at the top of a unit body
// listing the concept slugs the card exercises, comma separated.
const conceptsPrefix = "concepts:"

// Unit is one quiz-able chunk of lesson content: a level-2 heading and the
// body that follows it, up to the next heading.
type Unit struct {
	Question string
	Answer   string
	Concepts []string
}

// ParseLesson splits lesson markdown into units. Content before the first
// level-2 heading is ignored; a heading with an empty body still produces a
// unit so step indexes stay aligned with the source document.
func ParseLesson(content string) []Unit {
	source := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	units := make([]Unit, 0)
	var current *Unit
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Answer, current.Concepts = splitConcepts(body)
		units = append(units, *current)
		current = nil
		body = nil
	}

	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		if heading, ok := child.(*ast.Heading); ok && heading.Level == 2 {
			flush()
			current = &Unit{Question: strings.TrimSpace(nodeText(heading, source))}
			continue
		}
		if current == nil {
			continue
		}
		if block := nodeText(child, source); block != "" {
			body = append(body, block)
		}
	}
	flush()

	return units
}

// splitConcepts pulls the optional concepts line off the body.
func splitConcepts(body []string) (string, []string) {
	if len(body) == 0 {
		return "", nil
	}
	first := strings.TrimSpace(body[0])
	if !strings.HasPrefix(strings.ToLower(first), conceptsPrefix) {
		return strings.Join(body, "\n\n"), nil
	}

	concepts := make([]string, 0)
	for _, c := range strings.Split(first[len(conceptsPrefix):], ",") {
		if c = strings.TrimSpace(c); c != "" {
			concepts = append(concepts, c)
		}
	}
	return strings.Join(body[1:], "\n\n"), concepts
}

// nodeText collects the raw source text of a block node, recursing into
// container blocks such as lists that carry no line segments themselves.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	collectText(n, source, &sb)
	return strings.TrimSpace(sb.String())
}

func collectText(n ast.Node, source []byte, sb *strings.Builder) {
	if lines := n.Lines(); lines.Len() > 0 {
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(source))
		}
		return
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		collectText(child, source, sb)
	}
}
