// pkg/util/text.go

package util

import (
	"strconv"
	"strings"
)

// WrapText wraps the provided text string to the given column limit,
// returning the wrapped string and the number of lines it became.
// indent gives the amount to indent wrapped lines. By default, lines
// that start with a space are assumed to be preformatted and are not
// wrapped; providing a true value for wrapAll overrides that behavior.
func WrapText(s string, columnLimit int, indent int, wrapAll bool) (string, int) {
	var accum, result strings.Builder

	var wrapLine bool
	column := 0
	lines := 1

	flush := func() {
		if wrapLine && column > columnLimit {
			result.WriteRune('\n')
			lines++
			for i := 0; i < indent; i++ {
				result.WriteRune(' ')
			}
			column = indent + accum.Len()
		}
		result.WriteString(accum.String())
		accum.Reset()
	}

	for _, ch := range s {
		if column == 0 {
			wrapLine = wrapAll || ch != ' '
		}

		accum.WriteRune(ch)
		column++

		if ch == '\n' {
			flush()
			column = 0
			lines++
		} else if ch == ' ' {
			flush()
		}
	}

	flush()
	return result.String(), lines
}

// Atof parses a floating point value, trimming surrounding whitespace
// first.
func Atof(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
