package rewrite

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// edit replaces source[start:end] with text. start == end inserts.
type edit struct {
	start uint
	end   uint
	text  string
}

// applyEdits applies edits to text, whose first byte sits at offset base in
// the source. Edits may touch but must not overlap.
func applyEdits(text string, base uint, edits []edit) (string, error) {
	sorted := make([]edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start < sorted[j].start
		}
		return sorted[i].end < sorted[j].end
	})

	var b strings.Builder
	cursor := base
	limit := base + uint(len(text))
	for _, e := range sorted {
		if e.start < cursor || e.end > limit || e.end < e.start {
			return "", fmt.Errorf("overlapping edit at byte %d", e.start)
		}
		b.WriteString(text[cursor-base : e.start-base])
		b.WriteString(e.text)
		cursor = e.end
	}
	b.WriteString(text[cursor-base:])
	return b.String(), nil
}

// removals turns the spans of removed attributes, each running from the end
// of the preceding sibling to the end of the attribute, into delete edits.
// Touching spans are merged. When a span starts a line and other attributes
// follow on that line, the line break and indentation are kept and the
// spaces after the span go instead.
func removals(source []byte, spans []edit) []edit {
	var merged []edit
	for _, s := range spans {
		if n := len(merged); n > 0 && merged[n-1].end == s.start {
			merged[n-1].end = s.end
			continue
		}
		merged = append(merged, s)
	}

	for i, m := range merged {
		rest := m.end
		for rest < uint(len(source)) && (source[rest] == ' ' || source[rest] == '\t') {
			rest++
		}
		if rest >= uint(len(source)) {
			continue
		}
		switch source[rest] {
		case '\n', '\r', '>', '/':
			continue
		}

		gap := m.start
		for gap < m.end && isSpace(source[gap]) {
			gap++
		}
		if !bytes.ContainsRune(source[m.start:gap], '\n') {
			continue
		}
		merged[i] = edit{start: gap, end: rest}
	}
	return merged
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// normalizeIndent re-prefixes the first line with lead, strips the common
// leading whitespace and indents every non-blank line with indent.
func normalizeIndent(text, lead, indent string) string {
	lines := strings.Split(text, "\n")
	lines[0] = lead + lines[0]

	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}
	if common < 0 {
		common = 0
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = indent + strings.TrimRight(line[common:], " \t")
	}
	return strings.Join(lines, "\n")
}

// linePrefix returns the text between the start of the line holding offset
// and offset, with every non-whitespace byte blanked.
func linePrefix(source []byte, offset uint) string {
	start := offset
	for start > 0 && source[start-1] != '\n' {
		start--
	}
	prefix := []byte(string(source[start:offset]))
	for i, c := range prefix {
		if c != ' ' && c != '\t' {
			prefix[i] = ' '
		}
	}
	return string(prefix)
}

// lineIndent returns the leading whitespace of the line holding offset.
func lineIndent(source []byte, offset uint) string {
	start := offset
	for start > 0 && source[start-1] != '\n' {
		start--
	}
	end := start
	for end < uint(len(source)) && (source[end] == ' ' || source[end] == '\t') {
		end++
	}
	return string(source[start:end])
}
