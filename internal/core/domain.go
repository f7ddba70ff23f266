package core

import (
	"errors"
	"strings"
	"time"
)

// You is the fixed first participant of every split.
const You = "You"

// SplitWays is the number of people an expense is divided between.
const SplitWays = 3

const (
	CategoryFood          Category = "food"
	CategoryTravel        Category = "travel"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryOther         Category = "other"
)

const dateLayout = "2006-01-02"

type (
	Category string

	// Date is a calendar date with no time component, kept at UTC midnight.
	Date struct {
		time.Time
	}

	// Expense is a stored ledger entry. Entries are never edited in place;
	// they can only be removed.
	Expense struct {
		ID           int64     `json:"id"`
		Description  string    `json:"description"`
		Amount       float64   `json:"amount"`
		Date         Date      `json:"date"`
		Category     Category  `json:"category"`
		Participants [3]string `json:"friends"`
		SplitAmount  float64   `json:"splitAmount"`
		Notes        string    `json:"notes"`
		CreatedAt    time.Time `json:"timestamp"`
	}

	// ExpenseInput carries the raw entry-form fields as typed by the user.
	ExpenseInput struct {
		Description string
		Amount      string
		Date        string
		Category    string
		Friend1     string
		Friend2     string
		Notes       string
	}

	// Draft is a validated ExpenseInput, ready to receive an id.
	Draft struct {
		Description string
		Amount      float64
		Date        Date
		Category    Category
		Friends     [2]string
		Notes       string
	}
)

var (
	ErrInvalidAmount   = errors.New("amount must be a positive number")
	ErrInvalidCategory = errors.New("unknown category")
	ErrInvalidDate     = errors.New("invalid date")
)

// Categories returns the selectable categories in display order.
func Categories() []Category {
	return []Category{CategoryFood, CategoryTravel, CategoryUtilities, CategoryEntertainment, CategoryOther}
}

// ParseCategory maps form text onto a known category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// IsValid reports whether c is one of the fixed categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryTravel, CategoryUtilities, CategoryEntertainment, CategoryOther:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String renders the date as YYYY-MM-DD, the value an HTML date input expects.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Split returns one participant's equal share of amount.
func Split(amount float64) float64 {
	return amount / SplitWays
}

// Validate checks that every required field is present and that the amount
// is a positive number. It never mutates anything; the returned error is a
// *ValidationError.
func (in ExpenseInput) Validate() (Draft, error) {
	desc := strings.TrimSpace(in.Description)
	amountText := strings.TrimSpace(in.Amount)
	dateText := strings.TrimSpace(in.Date)
	f1 := strings.TrimSpace(in.Friend1)
	f2 := strings.TrimSpace(in.Friend2)

	var missing []string
	if desc == "" {
		missing = append(missing, "description")
	}
	if amountText == "" {
		missing = append(missing, "amount")
	}
	if dateText == "" {
		missing = append(missing, "date")
	}
	if f1 == "" {
		missing = append(missing, "friend1")
	}
	if f2 == "" {
		missing = append(missing, "friend2")
	}
	if len(missing) > 0 {
		return Draft{}, &ValidationError{Field: strings.Join(missing, ","), Reason: ReasonRequired}
	}

	amount, err := ParseAmount(amountText)
	if err != nil {
		return Draft{}, &ValidationError{Field: "amount", Reason: "must be a positive number", Err: err}
	}

	date, err := ParseDate(dateText)
	if err != nil {
		return Draft{}, &ValidationError{Field: "date", Reason: "must be a YYYY-MM-DD date", Err: err}
	}

	category, err := ParseCategory(in.Category)
	if err != nil {
		return Draft{}, &ValidationError{Field: "category", Reason: "is not a known category", Err: err}
	}

	return Draft{
		Description: desc,
		Amount:      amount,
		Date:        date,
		Category:    category,
		Friends:     [2]string{f1, f2},
		Notes:       strings.TrimSpace(in.Notes),
	}, nil
}

// Expense stamps the draft with its id and creation time and computes the
// stored split.
func (d Draft) Expense(id int64, createdAt time.Time) Expense {
	return Expense{
		ID:           id,
		Description:  d.Description,
		Amount:       d.Amount,
		Date:         d.Date,
		Category:     d.Category,
		Participants: [3]string{You, d.Friends[0], d.Friends[1]},
		SplitAmount:  Split(d.Amount),
		Notes:        d.Notes,
		CreatedAt:    createdAt,
	}
}
