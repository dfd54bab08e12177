package answer

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisek/practicekit/internal/question"
)

// thousandsRe matches a number whose commas group digits by three.
var thousandsRe = regexp.MustCompile(`^[-+]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// ParseNumber parses s as an integer, decimal, "n/d" fraction or mixed
// number ("1 1/2"). A leading "$" is ignored, as are commas that separate
// thousands ("1,250"); any other comma does not parse.
// A zero denominator does not parse.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	if strings.Contains(s, ",") {
		if !thousandsRe.MatchString(s) {
			return 0, false
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	if s == "" {
		return 0, false
	}

	if whole, frac, ok := strings.Cut(s, " "); ok {
		w, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, false
		}
		f, ok := parseFraction(strings.TrimSpace(frac))
		if !ok || f < 0 || f >= 1 {
			return 0, false
		}
		if w < 0 || strings.HasPrefix(whole, "-") {
			return float64(w) - f, true
		}
		return float64(w) + f, true
	}

	if strings.Contains(s, "/") {
		return parseFraction(s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseFraction(s string) (float64, bool) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

// ParsePoint parses "(x, y)" or "x, y".
func ParsePoint(s string) (question.Point, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	xs, ys, ok := strings.Cut(s, ",")
	if !ok || strings.Contains(ys, ",") {
		return question.Point{}, false
	}
	x, ok := ParseNumber(xs)
	if !ok {
		return question.Point{}, false
	}
	y, ok := ParseNumber(ys)
	if !ok {
		return question.Point{}, false
	}
	return question.Point{X: x, Y: y}, true
}

// ParseLine parses a linear equation in x and y such as "2x + 3y = 12" or
// "y = 2x - 1" into the form Ax + By = C.
func ParseLine(s string) (question.Line, bool) {
	s = strings.ToLower(strings.ReplaceAll(s, " ", ""))
	lhs, rhs, ok := strings.Cut(s, "=")
	if !ok || strings.Contains(rhs, "=") {
		return question.Line{}, false
	}
	lx, ly, lk, ok := parseSide(lhs)
	if !ok {
		return question.Line{}, false
	}
	rx, ry, rk, ok := parseSide(rhs)
	if !ok {
		return question.Line{}, false
	}
	l := question.Line{A: lx - rx, B: ly - ry, C: rk - lk}
	if l.A == 0 && l.B == 0 {
		return question.Line{}, false
	}
	return l, true
}

// parseSide sums the x, y and constant terms of one side of an equation.
func parseSide(s string) (x, y, k float64, ok bool) {
	if s == "" {
		return 0, 0, 0, false
	}
	for _, term := range splitTerms(s) {
		sign := 1.0
		switch term[0] {
		case '-':
			sign = -1
			term = term[1:]
		case '+':
			term = term[1:]
		}
		if term == "" {
			return 0, 0, 0, false
		}

		v := term[len(term)-1]
		if v != 'x' && v != 'y' {
			c, err := strconv.ParseFloat(term, 64)
			if err != nil {
				return 0, 0, 0, false
			}
			k += sign * c
			continue
		}

		coef := 1.0
		if body := strings.TrimSuffix(term[:len(term)-1], "*"); body != "" {
			c, err := strconv.ParseFloat(body, 64)
			if err != nil {
				return 0, 0, 0, false
			}
			coef = c
		}
		if v == 'x' {
			x += sign * coef
		} else {
			y += sign * coef
		}
	}
	return x, y, k, true
}

// splitTerms splits "2x-3y+4" into ["2x", "-3y", "+4"].
func splitTerms(s string) []string {
	var terms []string
	start := 0
	for i := 1; i < len(s); i++ {
		if s[i] == '+' || s[i] == '-' {
			terms = append(terms, s[start:i])
			start = i
		}
	}
	return append(terms, s[start:])
}

// normalize lowercases s, trims it and collapses inner whitespace.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
