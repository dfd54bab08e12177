package question

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespond_OnlyOnce(t *testing.T) {
	q := validMCQ()
	require.False(t, q.Answered())

	require.NoError(t, q.Respond(Response{Value: "61"}))
	assert.True(t, q.Answered())

	err := q.Respond(Response{Value: "62"})
	assert.True(t, errors.Is(err, ErrAlreadyAnswered))
	assert.Equal(t, "61", q.UserAnswer.Value)
}

func TestClone_DropsResponseAndCopiesCells(t *testing.T) {
	q := validTable()
	require.NoError(t, q.Respond(Response{Cells: map[int]string{0: "3"}}))

	c := q.Clone()
	assert.Nil(t, c.UserAnswer)
	c.Answer.Cells[0] = Integer(100)
	c.Rows[0].Label = "changed"

	assert.Equal(t, "3", q.Answer.Cells[0].Value)
	assert.Equal(t, "x = 1", q.Rows[0].Label)
}

func TestOptionIndex(t *testing.T) {
	q := validMCQ()
	assert.Equal(t, 1, q.OptionIndex("61"))
	assert.Equal(t, -1, q.OptionIndex("70"))
}

func TestParseVariant(t *testing.T) {
	assert.Equal(t, VariantFraction, ParseVariant("fraction"))
	assert.Equal(t, VariantCoordinate, ParseVariant("coordinate"))
	assert.Equal(t, VariantTable, ParseVariant("table"))
	assert.Equal(t, VariantDefault, ParseVariant(""))
	assert.Equal(t, VariantDefault, ParseVariant("bogus"))
}

func TestAnswerString(t *testing.T) {
	tests := []struct {
		a    Answer
		want string
	}{
		{Text("triangle"), "triangle"},
		{Number(3.5), "3.5"},
		{Number(2.006), "2.01"},
		{Number(-0.001), "0"},
		{Integer(42), "42"},
		{Frac(3, 4), "3/4"},
		{Frac(5, 1), "5"},
		{PointAt(3, -2), "(3, -2)"},
		{OnLine(2, 3, 12), "2x + 3y = 12"},
		{OnLine(1, -1, 4), "x - y = 4"},
		{Table(map[int]Answer{1: Integer(5), 0: Integer(3)}), "3; 5"},
	}
	for _, tc := range tests {
		if got := tc.a.String(); got != tc.want {
			t.Errorf("%#v.String() = %q, want %q", tc.a, got, tc.want)
		}
	}
}

func TestLineContains(t *testing.T) {
	l := Line{A: 2, B: 3, C: 12}
	assert.True(t, l.Contains(Point{X: 3, Y: 2}, 0.02))
	assert.True(t, l.Contains(Point{X: 0, Y: 4}, 0.02))
	assert.False(t, l.Contains(Point{X: 1, Y: 1}, 0.02))
}

func TestAnswerJSON_Shape(t *testing.T) {
	data, err := json.Marshal(Frac(1, 2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"fraction","numerator":1,"denominator":2}`, string(data))

	data, err = json.Marshal(Table(map[int]Answer{0: PointAt(1, 2)}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"table","cells":{"0":{"kind":"point","x":1,"y":2}}}`, string(data))
}

func TestAnswerJSON_Rejects(t *testing.T) {
	var a Answer
	assert.Error(t, json.Unmarshal([]byte(`{"kind":"fraction","numerator":1}`), &a))
	assert.Error(t, json.Unmarshal([]byte(`{"kind":"vector"}`), &a))
	assert.NoError(t, json.Unmarshal([]byte(`{"kind":"point","x":0,"y":3}`), &a))
	assert.Equal(t, Point{X: 0, Y: 3}, a.Point)
}
