package account

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseID reads a path id the lenient way clients have always been served:
// leading whitespace is skipped, an optional sign and the longest run of
// decimal digits are taken, anything after is ignored. Zero is rejected along
// with unparsable input.
//
// TODO: decide with API consumers whether Id 0 should become addressable; the
// store never assigns it today.
func ParseID(raw string) (int64, bool) {
	s := strings.TrimLeftFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	id, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
