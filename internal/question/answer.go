package question

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the shape of an Answer.
type Kind string

const (
	KindText     Kind = "text"     // categorical, e.g. "triangle", ">"
	KindNumber   Kind = "number"   // integer or decimal, e.g. "42", "3.5"
	KindFraction Kind = "fraction" // {numerator, denominator}
	KindPoint    Kind = "point"    // {x, y}
	KindLine     Kind = "line"     // any point on Ax + By = C
	KindTable    Kind = "table"    // row index -> cell answer
)

// Fraction is a numerator/denominator pair.
type Fraction struct {
	Num int64 `json:"numerator"`
	Den int64 `json:"denominator"`
}

// String formats the fraction as "n/d", or "n" when the denominator is 1.
func (f Fraction) String() string {
	if f.Den == 1 {
		return strconv.FormatInt(f.Num, 10)
	}
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// Point is an (x, y) coordinate pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// String formats the point as "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", FormatNumber(p.X), FormatNumber(p.Y))
}

// Line is the equation A*x + B*y = C.
type Line struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

// String formats the line as "2x + 3y = 12".
func (l Line) String() string {
	var b strings.Builder
	b.WriteString(coefficient(l.A, "x"))
	if l.B < 0 {
		b.WriteString(" - ")
		b.WriteString(coefficient(-l.B, "y"))
	} else {
		b.WriteString(" + ")
		b.WriteString(coefficient(l.B, "y"))
	}
	b.WriteString(" = ")
	b.WriteString(FormatNumber(l.C))
	return b.String()
}

// Contains reports whether p lies on the line within tol.
func (l Line) Contains(p Point, tol float64) bool {
	return math.Abs(l.A*p.X+l.B*p.Y-l.C) <= tol
}

func coefficient(c float64, v string) string {
	switch c {
	case 1:
		return v
	case -1:
		return "-" + v
	}
	return FormatNumber(c) + v
}

// Answer is the canonical answer for a question. Kind selects which of the
// remaining fields is meaningful.
type Answer struct {
	Kind     Kind
	Value    string // KindText, KindNumber
	Fraction Fraction
	Point    Point
	Line     Line
	Cells    map[int]Answer // KindTable
}

// Text returns a categorical answer.
func Text(s string) Answer { return Answer{Kind: KindText, Value: s} }

// Number returns a numeric answer.
func Number(v float64) Answer { return Answer{Kind: KindNumber, Value: FormatNumber(v)} }

// Integer returns a numeric answer for an integer value.
func Integer(v int) Answer { return Answer{Kind: KindNumber, Value: strconv.Itoa(v)} }

// Frac returns a fraction answer.
func Frac(num, den int64) Answer {
	return Answer{Kind: KindFraction, Fraction: Fraction{Num: num, Den: den}}
}

// PointAt returns a coordinate answer.
func PointAt(x, y float64) Answer { return Answer{Kind: KindPoint, Point: Point{X: x, Y: y}} }

// OnLine returns an answer satisfied by any point on a*x + b*y = c.
func OnLine(a, b, c float64) Answer { return Answer{Kind: KindLine, Line: Line{A: a, B: b, C: c}} }

// Table returns a table answer keyed by row index.
func Table(cells map[int]Answer) Answer { return Answer{Kind: KindTable, Cells: cells} }

// String returns the canonical display form of the answer.
func (a Answer) String() string {
	switch a.Kind {
	case KindFraction:
		return a.Fraction.String()
	case KindPoint:
		return a.Point.String()
	case KindLine:
		return a.Line.String()
	case KindTable:
		rows := make([]int, 0, len(a.Cells))
		for i := range a.Cells {
			rows = append(rows, i)
		}
		sort.Ints(rows)
		parts := make([]string, len(rows))
		for i, r := range rows {
			parts[i] = a.Cells[r].String()
		}
		return strings.Join(parts, "; ")
	default:
		return a.Value
	}
}

// IsZero reports whether the answer is unset.
func (a Answer) IsZero() bool { return a.Kind == "" }

func (a Answer) clone() Answer {
	if a.Cells == nil {
		return a
	}
	cells := make(map[int]Answer, len(a.Cells))
	for k, v := range a.Cells {
		cells[k] = v.clone()
	}
	a.Cells = cells
	return a
}

// FormatNumber formats v without trailing zeros, rounded to 2 decimal places.
func FormatNumber(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// answerWire is the JSON shape of Answer.
type answerWire struct {
	Kind        Kind           `json:"kind"`
	Value       string         `json:"value,omitempty"`
	Numerator   *int64         `json:"numerator,omitempty"`
	Denominator *int64         `json:"denominator,omitempty"`
	X           *float64       `json:"x,omitempty"`
	Y           *float64       `json:"y,omitempty"`
	A           *float64       `json:"a,omitempty"`
	B           *float64       `json:"b,omitempty"`
	C           *float64       `json:"c,omitempty"`
	Cells       map[int]Answer `json:"cells,omitempty"`
}

func (a Answer) MarshalJSON() ([]byte, error) {
	w := answerWire{Kind: a.Kind}
	switch a.Kind {
	case KindFraction:
		w.Numerator, w.Denominator = &a.Fraction.Num, &a.Fraction.Den
	case KindPoint:
		w.X, w.Y = &a.Point.X, &a.Point.Y
	case KindLine:
		w.A, w.B, w.C = &a.Line.A, &a.Line.B, &a.Line.C
	case KindTable:
		w.Cells = a.Cells
	default:
		w.Value = a.Value
	}
	return json.Marshal(w)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var w answerWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*a = Answer{Kind: w.Kind, Value: w.Value}
	switch w.Kind {
	case KindFraction:
		if w.Numerator == nil || w.Denominator == nil {
			return fmt.Errorf("fraction answer needs numerator and denominator")
		}
		a.Fraction = Fraction{Num: *w.Numerator, Den: *w.Denominator}
	case KindPoint:
		a.Point = Point{X: deref(w.X), Y: deref(w.Y)}
	case KindLine:
		a.Line = Line{A: deref(w.A), B: deref(w.B), C: deref(w.C)}
	case KindTable:
		a.Cells = w.Cells
	case KindText, KindNumber:
	default:
		return fmt.Errorf("unknown answer kind %q", w.Kind)
	}
	return nil
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
