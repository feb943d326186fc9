package syntax

import "strings"

// Line is one significant source line.
type Line struct {
	Number int    // 1-based
	Text   string // raw text without the line terminator
}

// Source holds the significant lines of a script.
type Source struct {
	Lines []Line
	// OpenComment is the line where an unterminated block comment starts, or 0.
	OpenComment int
}

// Split breaks src into lines, dropping blank lines, "//" comments and
// "/* ... */" block comments. Both LF and CRLF terminators are accepted.
func Split(src string) Source {
	var out Source
	inComment := false
	for i, raw := range strings.Split(src, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		number := i + 1
		trimmed := strings.TrimSpace(raw)

		if inComment {
			if strings.Contains(raw, "*/") {
				inComment = false
				out.OpenComment = 0
			}
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		if strings.HasPrefix(trimmed, "/*") {
			if !strings.Contains(trimmed[2:], "*/") {
				inComment = true
				out.OpenComment = number
			}
			continue
		}
		out.Lines = append(out.Lines, Line{Number: number, Text: raw})
	}
	return out
}
