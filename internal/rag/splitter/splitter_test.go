package splitter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/akolanti/SDKAssistant/internal/domain/commonModels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const changelog = `Changelog
=========


v2.2.0
-------------------

🐛 Bug Fixes
^^^^^^^^^^^
- fix: correct typing for moderations

v2.1.1
-------------------

- docs: update examples

v2.1.0
-------------------

🚀 Features / Enhancements
^^^^^^^^^^^^^^^^^^^^^^^^^^
- feat(langchain): add streaming support
`

func concat(splits []commonModels.Split) string {
	var sb strings.Builder
	for _, s := range splits {
		sb.WriteString(s.Content)
	}
	return sb.String()
}

// page builds a documentation page of roughly size characters with n underlined sections.
func page(sections int, sectionSize int) string {
	var sb strings.Builder
	sb.WriteString("Intro line\r\nwith windows endings\n")
	for i := 0; i < sections; i++ {
		fmt.Fprintf(&sb, "Section %d\n", i)
		sb.WriteString(strings.Repeat("-", 10) + "\n")
		body := strings.Repeat(fmt.Sprintf("body text of section %d. ", i), sectionSize/20+1)
		sb.WriteString(body[:sectionSize] + "\n\n")
	}
	sb.WriteString("no trailing newline")
	return sb.String()
}

func TestSplitSections(t *testing.T) {
	sections := SplitSections(changelog, DefaultMarkers)
	require.Len(t, sections, 4)
	assert.True(t, strings.HasPrefix(sections[1], "v2.2.0\n"))
	assert.True(t, strings.HasPrefix(sections[2], "v2.1.1\n"))
	assert.True(t, strings.HasPrefix(sections[3], "v2.1.0\n"))
	assert.Equal(t, changelog, strings.Join(sections, ""))
}

func TestSplitSections_Markers(t *testing.T) {
	withEquals := SplitSections(changelog, "-=")
	// "=========" sits under line 0 which is a boundary anyway
	assert.Len(t, withEquals, 4)

	withCarets := SplitSections(changelog, "-^")
	assert.Len(t, withCarets, 6)
	assert.Equal(t, changelog, strings.Join(withCarets, ""))
}

func TestSplitSections_EdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 1},
		{"no markers", "a\nb\nc", 1},
		{"marker on first line", "---\ntext\n", 1},
		{"consecutive markers", "title\n---\n---\nrest\n", 2},
		{"blank line is not a marker", "a\n   \nb\n", 1},
		{"mixed characters are not a marker", "title\n-=-=\n", 1},
		{"dash list item is not a marker", "title\n- item\n", 1},
		{"carriage return line ends", "Title\r-----\rbody\rSecond\r------\rmore", 2},
		{"crlf line ends", "Intro\r\nTitle\r\n-----\r\nbody", 2},
		{"form feed and unicode separators", "a\fTitle\u2028---\u2029b", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := SplitSections(tt.content, DefaultMarkers)
			assert.Len(t, sections, tt.want)
			assert.Equal(t, tt.content, strings.Join(sections, ""))
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a\r\n", "b\r", "c\n", "d"}, splitLines("a\r\nb\rc\nd"))
	assert.Equal(t, []string{"x\u0085", "y\v", "z\x1e"}, splitLines("x\u0085y\vz\x1e"))
}

func TestSplitDocument_Lossless(t *testing.T) {
	docs := []string{
		changelog,
		page(2, 4400),
		page(6, 3000),
		page(20, 700),
		strings.Repeat("x", 9000),
		strings.Repeat("line\n---\n", 1500),
	}
	for i, content := range docs {
		for _, minLength := range []int{-1, 0, 1, 100, 2000, 5000, 20000} {
			s := Splitter{Threshold: 8000, MinLength: minLength, Markers: DefaultMarkers}
			doc := commonModels.Document{SourceURL: fmt.Sprintf("doc-%d", i), Content: content}

			splits := s.SplitDocument(doc)

			require.NotEmpty(t, splits)
			assert.Equal(t, content, concat(splits), "doc %d min %d", i, minLength)
			for part, split := range splits {
				assert.Equal(t, part, split.SplitPart)
				assert.Equal(t, doc.SourceURL, split.SourceURL)
			}
		}
	}
}

func TestSplitDocument_ShortDocumentUnchanged(t *testing.T) {
	doc := commonModels.Document{Content: changelog, DocumentationURL: "https://docs/changelog.html", Type: commonModels.Documentation}

	splits := New().SplitDocument(doc)

	require.Len(t, splits, 1)
	assert.Equal(t, doc, splits[0].Document)
	assert.Equal(t, 0, splits[0].SplitPart)
}

func TestSplitDocument_MergesSections(t *testing.T) {
	// two sections of ~4400 chars each, both below 5000 alone
	content := page(2, 4400)
	require.Greater(t, len(content), 8000)

	merged := Splitter{Threshold: 8000, MinLength: 5000}.SplitDocument(commonModels.Document{Content: content})
	unmerged := Splitter{Threshold: 8000, MinLength: 0}.SplitDocument(commonModels.Document{Content: content})

	assert.Len(t, merged, 1)
	assert.Len(t, unmerged, 3)
	assert.Equal(t, content, concat(merged))
}

func TestMergeSmallSections(t *testing.T) {
	tests := []struct {
		name      string
		sections  []string
		minLength int
		want      []string
	}{
		{"disabled", []string{"a", "b"}, 0, []string{"a", "b"}},
		{"flush on threshold", []string{"aa", "bb", "cc"}, 2, []string{"aa", "bb", "cc"}},
		{"accumulate", []string{"a", "b", "c", "d"}, 2, []string{"ab", "cd"}},
		{"tail goes to previous", []string{"aaa", "b"}, 3, []string{"aaab"}},
		{"lone short tail", []string{"a"}, 3, []string{"a"}},
		{"counts characters not bytes", []string{"éé", "é"}, 2, []string{"ééé"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeSmallSections(tt.sections, tt.minLength))
		})
	}
}
