package splitter

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/commonModels"
)

// DefaultMarkers are the characters whose runs underline a section heading.
const DefaultMarkers = "-"

type Splitter struct {
	// Threshold is the content length in characters above which a document is split
	Threshold int
	// MinLength is the minimum merged split length, values <= 0 disable merging
	MinLength int
	Markers   string
}

func New() Splitter {
	return Splitter{
		Threshold: config.SplitDocumentsLongerThanNChars,
		MinLength: config.MinSplitLengthChars,
		Markers:   DefaultMarkers,
	}
}

// SplitDocument returns the document as one split when it is short, otherwise its merged sections.
func (s Splitter) SplitDocument(doc commonModels.Document) []commonModels.Split {
	if utf8.RuneCountInString(doc.Content) <= s.Threshold {
		return []commonModels.Split{{Document: doc, SplitPart: 0}}
	}
	return s.SplitLongDocument(doc)
}

func (s Splitter) SplitLongDocument(doc commonModels.Document) []commonModels.Split {
	sections := SplitSections(doc.Content, s.markers())
	merged := MergeSmallSections(sections, s.MinLength)

	splits := make([]commonModels.Split, 0, len(merged))
	for i, content := range merged {
		part := doc
		part.Content = content
		splits = append(splits, commonModels.Split{Document: part, SplitPart: i})
	}
	return splits
}

func (s Splitter) SplitAll(docs []commonModels.Document) []commonModels.Split {
	var out []commonModels.Split
	for _, doc := range docs {
		out = append(out, s.SplitDocument(doc)...)
	}
	return out
}

func (s Splitter) markers() string {
	if s.Markers == "" {
		return DefaultMarkers
	}
	return s.Markers
}

// SplitSections cuts content before every heading line, i.e. the line preceding an underline.
// Line terminators stay attached so the sections concatenate back to content.
func SplitSections(content string, markers string) []string {
	lines := splitLines(content)
	if len(lines) == 0 {
		return []string{content}
	}

	boundarySet := map[int]struct{}{0: {}}
	for i, line := range lines {
		if i > 0 && isUnderline(line, markers) {
			boundarySet[i-1] = struct{}{}
		}
	}
	boundaries := make([]int, 0, len(boundarySet))
	for b := range boundarySet {
		boundaries = append(boundaries, b)
	}
	sort.Ints(boundaries)

	sections := make([]string, 0, len(boundaries))
	for i, start := range boundaries {
		end := len(lines)
		if i+1 < len(boundaries) {
			end = boundaries[i+1]
		}
		sections = append(sections, strings.Join(lines[start:end], ""))
	}
	return sections
}

// splitLines breaks after every line boundary Python's str.splitlines knows: \r\n, \n, \r,
// \v, \f, the file/group/record separators, NEL and the unicode line and paragraph separators.
func splitLines(content string) []string {
	var lines []string
	start := 0
	for i, r := range content {
		switch r {
		case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				continue
			}
		default:
			continue
		}
		end := i + utf8.RuneLen(r)
		lines = append(lines, content[start:end])
		start = end
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}

func isUnderline(line string, markers string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(trimmed)
	if !strings.ContainsRune(markers, first) {
		return false
	}
	for _, r := range trimmed {
		if r != first {
			return false
		}
	}
	return true
}

// MergeSmallSections joins consecutive sections until each reaches minLength characters.
// A short tail is appended to the previous merged section.
func MergeSmallSections(sections []string, minLength int) []string {
	if minLength <= 0 {
		return sections
	}
	var merged []string
	var pending strings.Builder
	pendingLength := 0
	for _, section := range sections {
		pending.WriteString(section)
		pendingLength += utf8.RuneCountInString(section)
		if pendingLength >= minLength {
			merged = append(merged, pending.String())
			pending.Reset()
			pendingLength = 0
		}
	}
	if pending.Len() > 0 {
		if len(merged) > 0 {
			merged[len(merged)-1] += pending.String()
		} else {
			merged = append(merged, pending.String())
		}
	}
	return merged
}
