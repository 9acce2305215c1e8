package subtitle

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// styling tags such as <i> or <font color="red">
	tagRegex = regexp.MustCompile(`<.*?>`)
	// override blocks such as {\an8}
	braceRegex = regexp.MustCompile(`\{.*?\}`)
	// escape codes such as \N or \h, kept when glued to a following word
	escapeRegex = regexp.MustCompile(`\\[a-zA-Z]+`)
)

// Clean strips presentation markup from one line of cue text.
func Clean(line string) string {
	line = tagRegex.ReplaceAllString(line, "")
	line = braceRegex.ReplaceAllString(line, "")
	line = stripEscapes(line)
	return strings.TrimSpace(line)
}

// stripEscapes removes escape codes that end at a word boundary. Go's \b
// only knows ASCII, so the boundary is checked against the next rune.
func stripEscapes(line string) string {
	matches := escapeRegex.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return line
	}

	var sb strings.Builder
	sb.Grow(len(line))
	last := 0
	for _, m := range matches {
		next, _ := utf8.DecodeRuneInString(line[m[1]:])
		if m[1] < len(line) && isWordRune(next) {
			continue
		}
		sb.WriteString(line[last:m[0]])
		last = m[1]
	}
	sb.WriteString(line[last:])
	return sb.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

// CleanLines cleans each line and drops the ones left empty.
func CleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if cleaned := Clean(line); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
