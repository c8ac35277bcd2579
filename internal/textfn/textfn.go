package textfn

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// placeholder is the letter stripped from nth-style tokens before parsing.
const placeholder = "n"

// InvalidArgumentError reports a text function called with a disallowed argument.
type InvalidArgumentError struct {
	Func   string
	Arg    string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid argument %s: %s", e.Func, e.Arg, e.Reason)
}

// StringReplace replaces every non-overlapping occurrence of needle in
// haystack with replacement. An empty needle is rejected.
func StringReplace(needle, replacement, haystack string) (string, error) {
	if needle == "" {
		return "", &InvalidArgumentError{Func: NameStringReplace, Arg: "needle", Reason: "must not be empty"}
	}
	return strings.ReplaceAll(haystack, needle, replacement), nil
}

// ExtractLeadingInteger strips every "n" from token and returns the leading
// base-10 integer of what remains. Leading whitespace and a single sign are
// allowed; anything after the digits is ignored, so "3n+1" yields 3. When
// no digits lead the remainder the result is 0. Digit runs beyond the int
// range saturate at math.MaxInt or math.MinInt. See Library for a strict
// mode that reports lossy coercions.
func ExtractLeadingInteger(token string) int {
	n, _ := extractLeadingInteger(token)
	return n
}

// extractLeadingInteger also reports whether the stripped remainder was an
// integer in its entirety.
func extractLeadingInteger(token string) (int, bool) {
	rest := strings.ReplaceAll(token, placeholder, "")
	trimmed := strings.TrimLeft(rest, " \t\n\r\f\v")

	i := 0
	if i < len(trimmed) && (trimmed[i] == '+' || trimmed[i] == '-') {
		i++
	}
	start := i
	for i < len(trimmed) && '0' <= trimmed[i] && trimmed[i] <= '9' {
		i++
	}
	if i == start {
		return 0, false
	}

	n, err := strconv.Atoi(trimmed[:i])
	if errors.Is(err, strconv.ErrRange) {
		if trimmed[0] == '-' {
			return math.MinInt, false
		}
		return math.MaxInt, false
	}
	if err != nil {
		return 0, false
	}
	return n, i == len(trimmed) && len(trimmed) == len(rest)
}
