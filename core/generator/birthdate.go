package generator

import (
	"time"

	"github.com/passforge/passforge/core/apperr"
)

// BirthDate draws a birth year uniformly from [Year-MaxAge, Year-MinAge]
// (so Year minus the birth year lies between MinAge and MaxAge), then a
// month and a day within that month, each uniformly, and renders the date
// with Format (a Go reference-time layout, e.g. "2006-01-02" — a
// deliberate idiomatic departure from strftime-style directives, since this
// is a generalization the original spec leaves unpinned rather than an
// ambiguity it resolves).
type BirthDate struct {
	Year   int
	MinAge int
	MaxAge int
	Format string
}

func (b BirthDate) Kind() Kind { return KindBirthDate }

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (b BirthDate) Materialize(env *Env) (string, error) {
	if b.MinAge < 0 || b.MaxAge < b.MinAge {
		return "", apperr.New(apperr.BadRecipe, "", "birth_date: invalid age range [%d, %d]", b.MinAge, b.MaxAge)
	}
	format := b.Format
	if format == "" {
		format = "2006-01-02"
	}

	yearSpan := b.MaxAge - b.MinAge + 1
	yearOffset, err := env.Budget.Intn(yearSpan)
	if err != nil {
		return "", err
	}
	birthYear := b.Year - b.MaxAge + yearOffset

	month, err := env.Budget.Intn(12)
	if err != nil {
		return "", err
	}
	month++ // 1..12

	dim := daysInMonth(birthYear, month)
	day, err := env.Budget.Intn(dim)
	if err != nil {
		return "", err
	}
	day++ // 1..dim

	return time.Date(birthYear, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(format), nil
}
