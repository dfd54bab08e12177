package curriculum

import (
	g "github.com/abhisek/practicekit/internal/generator"
)

var catalog = []Grade{
	{
		ID:    "1",
		Title: "Grade 1",
		Topics: []Topic{
			{"Number Sense / Counting Forwards", g.Counting{Start: g.R(0, 50), Step: g.R(1, 1)}},
			{"Number Sense / Counting Backwards", g.Counting{Start: g.R(5, 30), Step: g.R(1, 1), Descending: true}},
			{"Number Sense / Comparing Numbers", g.Compare{A: g.R(0, 20)}},
			{"Addition / Single-Digit", g.BinaryOp{Op: g.Add, A: g.R(0, 9), B: g.R(0, 9)}},
			{"Addition / Single-Digit Recall", g.BinaryOp{Op: g.Add, A: g.R(0, 9), B: g.R(0, 9), Format: g.FreeText}},
			{"Subtraction / Within 20", g.BinaryOp{Op: g.Sub, A: g.R(0, 20), B: g.R(0, 10)}},
			{"Geometry / Shapes", g.Shape{MaxSides: 6}},
		},
	},
	{
		ID:    "2",
		Title: "Grade 2",
		Topics: []Topic{
			{"Number Sense / Skip Counting", g.Counting{Start: g.R(0, 20), Step: g.R(2, 10)}},
			{"Number Sense / Counting Backwards", g.Counting{Start: g.R(20, 100), Step: g.R(1, 5), Descending: true}},
			{"Number Sense / Place Value", g.PlaceValue{Digits: g.R(2, 3)}},
			{"Number Sense / Comparing Numbers", g.Compare{A: g.R(10, 999)}},
			{"Addition / Two-Digit", g.BinaryOp{Op: g.Add, A: g.R(10, 99), B: g.R(10, 99)}},
			{"Subtraction / Two-Digit", g.BinaryOp{Op: g.Sub, A: g.R(10, 99), B: g.R(10, 99)}},
			{"Money / Adding Prices", g.Money{Kind: g.MoneyTotal, Cents: g.R(5, 200)}},
			{"Measurement / Perimeter", g.Measure{Kind: g.Perimeter, Side: g.R(1, 10), Unit: "cm"}},
		},
	},
	{
		ID:    "3",
		Title: "Grade 3",
		Topics: []Topic{
			{"Number Sense / Place Value", g.PlaceValue{Digits: g.R(3, 4)}},
			{"Addition / Three-Digit", g.BinaryOp{Op: g.Add, A: g.R(100, 999), B: g.R(100, 999), Format: g.FreeText}},
			{"Multiplication / Facts", g.BinaryOp{Op: g.Mul, A: g.R(0, 10), B: g.R(0, 10)}},
			{"Division / Facts", g.BinaryOp{Op: g.Div, A: g.R(1, 10), B: g.R(1, 10)}},
			{"Fractions / Equivalent Fractions", g.Fraction{Kind: g.Equivalent, Den: g.R(2, 6)}},
			{"Fractions / Fraction of a Number", g.Fraction{Kind: g.OfQuantity, Den: g.R(2, 6)}},
			{"Measurement / Area", g.Measure{Kind: g.Area, Side: g.R(1, 12), Unit: "cm"}},
			{"Measurement / Perimeter", g.Measure{Kind: g.Perimeter, Side: g.R(2, 20), Unit: "m"}},
			{"Money / Making Change", g.Money{Kind: g.MoneyChange, Cents: g.R(10, 999)}},
		},
	},
	{
		ID:    "4",
		Title: "Grade 4",
		Topics: []Topic{
			{"Number Sense / Place Value", g.PlaceValue{Digits: g.R(5, 7)}},
			{"Multiplication / Multi-Digit", g.BinaryOp{Op: g.Mul, A: g.R(10, 99), B: g.R(2, 9)}},
			{"Division / Long Division", g.BinaryOp{Op: g.Div, A: g.R(10, 99), B: g.R(2, 9), Format: g.FreeText}},
			{"Fractions / Like Denominators", g.Fraction{Kind: g.AddLike, Den: g.R(2, 12), Format: g.FreeText}},
			{"Fractions / Equivalent Fraction Tables", g.FunctionTable{Kind: g.EquivalentFractions, Rows: 3, Den: g.R(2, 6)}},
			{"Money / Buying Several", g.Money{Kind: g.MoneyMultiply, Cents: g.R(25, 500)}},
			{"Geometry / Polygons", g.Shape{}},
			{"Measurement / Area", g.Measure{Kind: g.Area, Side: g.R(5, 25), Unit: "m"}},
		},
	},
	{
		ID:    "5",
		Title: "Grade 5",
		Topics: []Topic{
			{"Fractions / Unlike Denominators", g.Fraction{Kind: g.AddUnlike, Den: g.R(2, 10), Format: g.FreeText}},
			{"Fractions / Adding Fractions", g.Fraction{Kind: g.AddUnlike, Den: g.R(2, 6)}},
			{"Multiplication / Multi-Digit", g.BinaryOp{Op: g.Mul, A: g.R(100, 999), B: g.R(10, 99), Format: g.FreeText}},
			{"Division / Long Division", g.BinaryOp{Op: g.Div, A: g.R(10, 200), B: g.R(2, 12)}},
			{"Algebra / Function Tables", g.FunctionTable{Kind: g.LinearRule, M: g.R(1, 5), B: g.R(0, 10), X: g.R(0, 5)}},
			{"Algebra / Coordinate Tables", g.FunctionTable{Kind: g.Coordinates, Rows: 3, M: g.R(1, 3), B: g.R(0, 5), X: g.R(0, 3)}},
			{"Algebra / Solve for x", g.LinearEquation{Kind: g.SolveForX, Coef: g.R(1, 9), Value: g.R(0, 12)}},
			{"Money / Making Change", g.Money{Kind: g.MoneyChange, Cents: g.R(100, 2000), Format: g.FreeText}},
		},
	},
	{
		ID:    "sat",
		Title: "SAT Math",
		Topics: []Topic{
			{"Algebra / Linear Equations", g.LinearEquation{Kind: g.SolveForX, Coef: g.R(-9, 9), Value: g.R(-20, 20)}},
			{"Algebra / Points on a Line", g.LinearEquation{Kind: g.PointOnLine, Coef: g.R(-6, 6), Value: g.R(-8, 8)}},
			{"Algebra / Coordinate Tables", g.FunctionTable{Kind: g.Coordinates, M: g.R(-4, 4), B: g.R(-10, 10), X: g.R(-3, 3)}},
			{"Arithmetic / Negative Numbers", g.BinaryOp{Op: g.Sub, A: g.R(-20, 20), B: g.R(0, 30), AllowNegative: true}},
			{"Fractions / Unlike Denominators", g.Fraction{Kind: g.AddUnlike, Den: g.R(2, 12)}},
			{"Geometry / Area", g.Measure{Kind: g.Area, Side: g.R(5, 30), Unit: "in"}},
			{"Number Sense / Comparing Numbers", g.Compare{A: g.R(-100, 100), EqualOneIn: 8}},
		},
	},
}
