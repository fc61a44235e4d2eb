package course

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLesson(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Unit
	}{
		{
			name:    "empty content",
			content: "",
			want:    []Unit{},
		},
		{
			name:    "no headings",
			content: "Just some prose without structure.",
			want:    []Unit{},
		},
		{
			name:    "single unit",
			content: "## What is a goroutine?\n\nA lightweight thread managed by the Go runtime.",
			want: []Unit{
				{Question: "What is a goroutine?", Answer: "A lightweight thread managed by the Go runtime."},
			},
		},
		{
			name: "multiple units",
			content: "## First question\n\nFirst answer.\n\n## Second question\n\nSecond answer.",
			want: []Unit{
				{Question: "First question", Answer: "First answer."},
				{Question: "Second question", Answer: "Second answer."},
			},
		},
		{
			name:    "preamble before first heading is ignored",
			content: "Lesson intro text.\n\n## Question\n\nAnswer.",
			want: []Unit{
				{Question: "Question", Answer: "Answer."},
			},
		},
		{
			name:    "level-1 and level-3 headings are body text boundaries, not units",
			content: "# Lesson title\n\n## Question\n\nAnswer paragraph.\n\n### Detail\n\nMore detail.",
			want: []Unit{
				{Question: "Question", Answer: "Answer paragraph.\n\nDetail\n\nMore detail."},
			},
		},
		{
			name:    "empty body keeps step alignment",
			content: "## Orphan heading\n\n## Real question\n\nReal answer.",
			want: []Unit{
				{Question: "Orphan heading", Answer: ""},
				{Question: "Real question", Answer: "Real answer."},
			},
		},
		{
			name:    "concepts line",
			content: "## Question\n\nconcepts: pointers, memory-model\n\nThe answer.",
			want: []Unit{
				{Question: "Question", Answer: "The answer.", Concepts: []string{"pointers", "memory-model"}},
			},
		},
		{
			name:    "multi paragraph answer",
			content: "## Question\n\nFirst paragraph.\n\nSecond paragraph.",
			want: []Unit{
				{Question: "Question", Answer: "First paragraph.\n\nSecond paragraph."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLesson(tt.content)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				require.Equal(t, tt.want[i].Question, got[i].Question)
				require.Equal(t, tt.want[i].Answer, got[i].Answer)
				require.Equal(t, tt.want[i].Concepts, got[i].Concepts)
			}
		})
	}
}

func TestParseLessonListBody(t *testing.T) {
	content := "## Steps\n\n- first\n- second\n"
	got := ParseLesson(content)
	require.Len(t, got, 1)
	require.Contains(t, got[0].Answer, "first")
	require.Contains(t, got[0].Answer, "second")
}
