// Package puzzle resolves which daily puzzle a run targets.
package puzzle

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// FirstYear is the first year the puzzle event ran.
const FirstYear = 2015

// LastDay is the final puzzle day of an event.
const LastDay = 25

// Date identifies a single daily puzzle.
type Date struct {
	Year int `validate:"gte=2015"`
	Day  int `validate:"gte=1,lte=25"`
}

// New builds a Date from explicit values and validates it.
func New(year, day int) (Date, error) {
	d := Date{Year: year, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// FromTime derives the puzzle date from a wall-clock time.
// No range check is applied; the clock is trusted.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Day: t.Day()}
}

// Validate checks that the year and day fall inside the event range.
func (d Date) Validate() error {
	validate := validator.New()
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid puzzle date %d/%d: day must be 1-%d and year %d or later: %w",
			d.Year, d.Day, LastDay, FirstYear, err)
	}
	return nil
}

// PaddedDay returns the two-digit zero-padded day, e.g. "07".
func (d Date) PaddedDay() string {
	return fmt.Sprintf("%02d", d.Day)
}

// Entry returns the entry identifier used for the crate directory,
// the manifest member and the template substitution, e.g. "day07".
func (d Date) Entry() string {
	return "day" + d.PaddedDay()
}

func (d Date) String() string {
	return fmt.Sprintf("%d day %d", d.Year, d.Day)
}
