package generator

import (
	"fmt"

	"github.com/abhisek/practicekit/internal/question"
)

// MoneyKind selects a money word problem.
type MoneyKind int

const (
	// MoneyTotal adds the prices of two items.
	MoneyTotal MoneyKind = iota
	// MoneyChange subtracts a price from the amount paid.
	MoneyChange
	// MoneyMultiply prices several of the same item.
	MoneyMultiply
)

var shopItems = []string{
	"pencil", "notebook", "juice box", "sticker pack",
	"ruler", "apple", "comic book", "eraser", "muffin", "yo-yo",
}

// Money generates decimal money word problems. Cents bounds each item's
// price in cents; answers are dollars rounded to 2 places.
type Money struct {
	Kind   MoneyKind
	Cents  Range
	Format Format
}

func (t Money) Bind(r Rand) Generator {
	return func() *question.Question {
		price := drawAtLeast(r, t.Cents, 1)
		item := Pick(r, shopItems)

		var ans float64
		var prompt, explanation string
		var distractors []float64

		switch t.Kind {
		case MoneyChange:
			paid := (price/100 + 1 + r.IntRange(0, 4)) * 100
			ans = cents(paid - price)
			prompt = fmt.Sprintf("You buy %s for %s and pay with %s. How much change do you get?",
				withArticle(item), Dollars(cents(price)), Dollars(cents(paid)))
			explanation = fmt.Sprintf("%s - %s = %s", Dollars(cents(paid)), Dollars(cents(price)), Dollars(ans))
			distractors = []float64{cents(price), ans + 1, ans - 0.1, ans + 0.1}
		case MoneyMultiply:
			n := r.IntRange(2, 6)
			ans = cents(price * n)
			prompt = fmt.Sprintf("One %s costs %s. How much do %d of them cost?", item, Dollars(cents(price)), n)
			explanation = fmt.Sprintf("%d × %s = %s", n, Dollars(cents(price)), Dollars(ans))
			distractors = []float64{cents(price * (n + 1)), cents(price + n), cents(price * (n - 1)), ans + 1}
		default:
			other := Pick(r, shopItems)
			for i := 0; other == item && i < maxRedraws; i++ {
				other = Pick(r, shopItems)
			}
			price2 := drawAtLeast(r, t.Cents, 1)
			ans = cents(price + price2)
			prompt = fmt.Sprintf("%s costs %s and %s costs %s. How much do they cost together?",
				capitalize(withArticle(item)), Dollars(cents(price)), withArticle(other), Dollars(cents(price2)))
			explanation = fmt.Sprintf("%s + %s = %s", Dollars(cents(price)), Dollars(cents(price2)), Dollars(ans))
			distractors = []float64{ans + 1, ans - 0.1, ans + 0.1, ans - 1}
		}

		q := &question.Question{
			Type:        t.Format.questionType(),
			Variant:     question.VariantDefault,
			Prompt:      prompt,
			Answer:      question.Number(ans),
			Explanation: explanation,
		}
		if t.Format == MultipleChoice {
			q.Options = NumberOptions(r, ans, distractors, Positive, Dollars)
		}
		return q
	}
}

func cents(c int) float64 { return float64(c) / 100 }

func withArticle(noun string) string {
	switch noun[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + noun
	}
	return "a " + noun
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
