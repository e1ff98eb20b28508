package lessons

import (
	"math/big"
	"strconv"
	"strings"
)

// CheckPracticeAnswer reports whether the learner's input matches the
// practice question's answer. Comparison is numeric per answer type, so
// "042" matches an integer 42, "3.50" matches a decimal 3.5, and "2/4"
// matches the fraction 1/2. Unknown answer types fall back to an exact
// string match after trimming.
func CheckPracticeAnswer(q PracticeQuestion, learnerAnswer string) bool {
	got := strings.TrimSpace(learnerAnswer)
	want := strings.TrimSpace(q.Answer)
	if got == "" {
		return false
	}

	switch q.AnswerType {
	case "integer":
		g, errG := strconv.ParseInt(got, 10, 64)
		w, errW := strconv.ParseInt(want, 10, 64)
		return errG == nil && errW == nil && g == w
	case "decimal":
		g, errG := strconv.ParseFloat(got, 64)
		w, errW := strconv.ParseFloat(want, 64)
		return errG == nil && errW == nil && g == w
	case "fraction":
		g, okG := parseRat(got)
		w, okW := parseRat(want)
		return okG && okW && g.Cmp(w) == 0
	default:
		return got == want
	}
}

// parseRat parses "a/b" into a rational, rejecting zero denominators.
// big.Rat reduces to lowest terms and normalizes sign, so equivalent
// fractions compare equal.
func parseRat(s string) (*big.Rat, bool) {
	numStr, denStr, found := strings.Cut(s, "/")
	if !found {
		return nil, false
	}
	num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return nil, false
	}
	den, err := strconv.ParseInt(strings.TrimSpace(denStr), 10, 64)
	if err != nil || den == 0 {
		return nil, false
	}
	return big.NewRat(num, den), true
}
