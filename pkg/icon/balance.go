package icon

import (
	"regexp"
	"strings"
)

// Balanced reports whether braces, parentheses and brackets in text nest
// correctly: no prefix closes more than it opened and the text ends at
// depth zero. String literals and comments are skipped; template literal
// substitutions are checked like ordinary code.
func Balanced(text string) bool {
	var stack []byte
	// templates tracks, per open template literal, the stack depth at which
	// its current substitution started.
	var templates []int

	closer := map[byte]byte{')': '(', ']': '[', '}': '{'}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '\'', '"':
			i = skipQuoted(text, i, c)
			if i < 0 {
				return false
			}
		case '`':
			end, sub := skipTemplate(text, i+1)
			if end < 0 {
				return false
			}
			i = end
			if sub {
				templates = append(templates, len(stack))
				stack = append(stack, '{')
			}
		case '/':
			if i+1 < len(text) && text[i+1] == '/' {
				for i < len(text) && text[i] != '\n' {
					i++
				}
			} else if i+1 < len(text) && text[i+1] == '*' {
				end := indexFrom(text, "*/", i+2)
				if end < 0 {
					return false
				}
				i = end + 1
			}
		case '(', '[', '{':
			stack = append(stack, c)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != closer[c] {
				return false
			}
			stack = stack[:len(stack)-1]
			if c == '}' && len(templates) > 0 && templates[len(templates)-1] == len(stack) {
				templates = templates[:len(templates)-1]
				end, sub := skipTemplate(text, i+1)
				if end < 0 {
					return false
				}
				i = end
				if sub {
					templates = append(templates, len(stack))
					stack = append(stack, '{')
				}
			}
		}
	}
	return len(stack) == 0 && len(templates) == 0
}

// skipQuoted returns the index of the closing quote, or -1.
func skipQuoted(text string, start int, quote byte) int {
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case quote:
			return i
		case '\n':
			return -1
		}
	}
	return -1
}

// skipTemplate scans template literal text from start. It returns the index
// of the closing backtick (sub=false) or of the '{' opening a substitution
// (sub=true), or -1 when the literal never ends.
func skipTemplate(text string, start int) (int, bool) {
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '`':
			return i, false
		case '$':
			if i+1 < len(text) && text[i+1] == '{' {
				return i + 1, true
			}
		}
	}
	return -1, false
}

func indexFrom(text, sub string, from int) int {
	for i := from; i+len(sub) <= len(text); i++ {
		if text[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

var closingSVGTag = regexp.MustCompile(`</\s*(?:motion\.)?svg\s*>$`)

// Closed reports whether markup is one complete svg element: either a
// self-closing root tag and nothing after it, or text ending in the root's
// closing tag.
func Closed(markup string) bool {
	text := strings.TrimSpace(markup)
	end := openTagEnd(text)
	if end < 0 {
		return false
	}
	if text[end-1] == '/' {
		return strings.TrimSpace(text[end+1:]) == ""
	}
	return closingSVGTag.MatchString(text)
}

// openTagEnd returns the index of the '>' ending the first tag in text,
// skipping quoted attribute values and {...} expressions, or -1.
func openTagEnd(text string) int {
	if !strings.HasPrefix(text, "<") {
		return -1
	}
	depth := 0
	var quote byte
	for i := 1; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
		case '>':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
