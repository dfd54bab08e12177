package answer

import (
	"testing"

	"github.com/abhisek/practicekit/internal/question"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" 042 ", 42, true},
		{"-7", -7, true},
		{"3.50", 3.5, true},
		{"$12.25", 12.25, true},
		{"1,250", 1250, true},
		{"-12,345.5", -12345.5, true},
		{"$1,000,000", 1000000, true},
		{"3,2", 0, false},
		{"1,2,3", 0, false},
		{"12,34", 0, false},
		{"1,2345", 0, false},
		{"1/2", 0.5, true},
		{"-3/4", -0.75, true},
		{"1 1/2", 1.5, true},
		{"-2 1/4", -2.25, true},
		{"1/0", 0, false},
		{"2 5/4", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseNumber(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseNumber(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in   string
		want question.Point
		ok   bool
	}{
		{"(3, 2)", question.Point{X: 3, Y: 2}, true},
		{"3,2", question.Point{X: 3, Y: 2}, true},
		{"( -1.5 , 1/2 )", question.Point{X: -1.5, Y: 0.5}, true},
		{"(1, 2, 3)", question.Point{}, false},
		{"(1)", question.Point{}, false},
		{"(a, b)", question.Point{}, false},
	}
	for _, tc := range tests {
		got, ok := ParsePoint(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParsePoint(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		in   string
		want question.Line
		ok   bool
	}{
		{"2x + 3y = 12", question.Line{A: 2, B: 3, C: 12}, true},
		{"x - y = 4", question.Line{A: 1, B: -1, C: 4}, true},
		{"y = 2x + 1", question.Line{A: -2, B: 1, C: 1}, true},
		{"-x + 2*y = -3", question.Line{A: -1, B: 2, C: -3}, true},
		{"3 = 3", question.Line{}, false},
		{"2x + 3y", question.Line{}, false},
		{"2x + = 4", question.Line{}, false},
		{"2z = 4", question.Line{}, false},
	}
	for _, tc := range tests {
		got, ok := ParseLine(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseLine(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		user, canonical string
		variant         question.Variant
		want            bool
	}{
		{"1/2", "0.5", question.VariantFraction, true},
		{"0.51", "0.5", question.VariantDefault, true},
		{"0.52", "0.5", question.VariantDefault, true},
		{"0.53", "0.5", question.VariantDefault, false},
		{"0.6", "0.5", question.VariantDefault, false},
		{"0.51", "0.5", question.VariantFraction, true},
		{"0.6", "0.5", question.VariantFraction, false},
		{"3,2", "32", question.VariantDefault, false},
		{"1,250", "1250", question.VariantDefault, true},
		{"Triangle", "triangle", question.VariantDefault, true},
		{"  right   angle ", "Right Angle", question.VariantDefault, true},
		{"Square", "Triangle", question.VariantDefault, false},
		{">", ">", question.VariantDefault, true},
		{"", "", question.VariantDefault, false},
		{"(3, 2)", "2x + 3y = 12", question.VariantCoordinate, true},
		{"(0, 4)", "2x + 3y = 12", question.VariantCoordinate, true},
		{"(1, 1)", "2x + 3y = 12", question.VariantCoordinate, false},
		{"(3, 2)", "(3, 2)", question.VariantCoordinate, true},
		{"(2, 3)", "(3, 2)", question.VariantCoordinate, false},
		{"(3, 2)", "not a point", question.VariantCoordinate, false},
		{"3; (1, 2); 1/2", "3; (1, 2); 0.5", question.VariantTable, true},
		{"3; (1, 3); 1/2", "3; (1, 2); 0.5", question.VariantTable, false},
	}
	for _, tc := range tests {
		if got := IsCorrect(tc.user, tc.canonical, tc.variant); got != tc.want {
			t.Errorf("IsCorrect(%q, %q, %q) = %v, want %v", tc.user, tc.canonical, tc.variant, got, tc.want)
		}
	}
}

func TestIsCorrect_Idempotent(t *testing.T) {
	for i := 0; i < 3; i++ {
		if !IsCorrect("1/2", "0.5", question.VariantFraction) {
			t.Fatalf("call %d: expected correct", i)
		}
	}
}

func TestMatch_Structured(t *testing.T) {
	tests := []struct {
		name string
		a    question.Answer
		user string
		want bool
	}{
		{"fraction equivalent", question.Frac(1, 2), "2/4", true},
		{"fraction decimal", question.Frac(3, 4), "0.75", true},
		{"fraction wrong", question.Frac(3, 4), "3/5", false},
		{"fraction zero den", question.Answer{Kind: question.KindFraction, Fraction: question.Fraction{Num: 1}}, "1", false},
		{"point", question.PointAt(-2, 5), "(-2, 5)", true},
		{"point swapped", question.PointAt(-2, 5), "(5, -2)", false},
		{"line", question.OnLine(2, 3, 12), "(6, 0)", true},
		{"line off", question.OnLine(2, 3, 12), "(6, 1)", false},
		{"line garbage", question.OnLine(2, 3, 12), "six", false},
		{"text", question.Text("cube"), "CUBE", true},
		{"number", question.Number(12.5), "12.50", true},
		{"empty", question.Integer(0), " ", false},
		{"table", question.Table(map[int]question.Answer{0: question.Integer(1)}), "1", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Match(tc.a, tc.user); got != tc.want {
				t.Errorf("Match(%v, %q) = %v, want %v", tc.a, tc.user, got, tc.want)
			}
		})
	}
}
