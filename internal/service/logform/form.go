package logform

import (
	"strings"
	"time"

	"github.com/mamadbah2/ecolog/internal/domain/models"
	"github.com/mamadbah2/ecolog/internal/emissions"
)

// Stage is the furthest field the form currently offers.
type Stage int

const (
	StageChooseCategory Stage = iota
	StageChooseActivity
	StageEnterQuantity
	StageReady
)

func (s Stage) String() string {
	switch s {
	case StageChooseCategory:
		return "choose_category"
	case StageChooseActivity:
		return "choose_activity"
	case StageEnterQuantity:
		return "enter_quantity"
	default:
		return "ready"
	}
}

// Form is the log activity state machine. Fields unlock in order
// category, activity type, quantity; changing the category clears everything
// after it. Date is independent and defaults to today.
type Form struct {
	category     models.Category
	activityType string
	quantity     string
	date         string
	preview      *float64
}

// New returns an empty form dated on the given day.
func New(today time.Time) *Form {
	return &Form{date: today.Format(models.DateLayout)}
}

// Values is the raw field input, as carried by a query string or a post.
type Values struct {
	Category string
	Activity string
	Quantity string
	Date     string

	// PreviousCategory is the category the form was rendered with. When it is
	// set and differs from Category, the user changed the category and the
	// stale activity and quantity are discarded.
	PreviousCategory string
}

// FromValues replays the inputs through the state machine in field order.
// Inputs for locked fields are dropped.
func FromValues(v Values, today time.Time) *Form {
	f := New(today)
	f.SetCategory(v.Category)
	if v.PreviousCategory == "" || v.PreviousCategory == v.Category {
		f.SetActivity(v.Activity)
		f.SetQuantity(v.Quantity)
	}
	if strings.TrimSpace(v.Date) != "" {
		f.SetDate(v.Date)
	}
	return f
}

// SetCategory selects a category and resets the activity type, the quantity
// and the preview. An unknown category leaves the form at the first stage.
func (f *Form) SetCategory(value string) {
	category, _ := models.ParseCategory(strings.TrimSpace(value))
	f.category = category
	f.activityType = ""
	f.quantity = ""
	f.preview = nil
}

// SetActivity selects the activity type. It is ignored until a category is set.
func (f *Form) SetActivity(value string) {
	if f.category == "" {
		return
	}
	f.activityType = strings.TrimSpace(value)
	if f.activityType == "" {
		f.quantity = ""
	}
	f.recompute()
}

// SetQuantity records the quantity text. It is ignored until an activity type
// is set.
func (f *Form) SetQuantity(value string) {
	if f.activityType == "" {
		return
	}
	f.quantity = strings.TrimSpace(value)
	f.recompute()
}

// SetDate records the occurrence date.
func (f *Form) SetDate(value string) {
	f.date = strings.TrimSpace(value)
}

func (f *Form) recompute() {
	f.preview = nil
	if f.category == "" || f.activityType == "" || f.quantity == "" {
		return
	}
	qty, ok := emissions.ParseQuantity(f.quantity)
	if !ok {
		return
	}
	if co2, ok := emissions.Calculate(f.category, f.activityType, qty); ok {
		f.preview = &co2
	}
}

// Stage reports which fields are currently offered.
func (f *Form) Stage() Stage {
	switch {
	case f.category == "":
		return StageChooseCategory
	case f.activityType == "":
		return StageChooseActivity
	case f.quantity == "":
		return StageEnterQuantity
	default:
		return StageReady
	}
}

func (f *Form) Category() models.Category { return f.category }

func (f *Form) Activity() string { return f.activityType }

func (f *Form) Quantity() string { return f.quantity }

func (f *Form) Date() string { return f.date }

// Preview returns the live estimate. It is absent until category, activity
// and quantity are set and a factor exists for the pair.
func (f *Form) Preview() (float64, bool) {
	if f.preview == nil {
		return 0, false
	}
	return *f.preview, true
}

// Unit is the quantity unit for the selected category.
func (f *Form) Unit() string {
	return emissions.Unit(f.category)
}

// Options lists the activity types for the selected category.
func (f *Form) Options() []string {
	if f.category == "" {
		return nil
	}
	return emissions.Options(f.category)
}

// CanSubmit requires every field and a computed preview.
func (f *Form) CanSubmit() bool {
	_, ok := f.Preview()
	return f.category != "" && f.activityType != "" && f.quantity != "" && ok
}

// Details builds the description stored with the activity, e.g. "Car (20 km)".
func (f *Form) Details() string {
	return Capitalize(f.activityType) + " (" + f.quantity + " " + f.Unit() + ")"
}

// Values returns the raw inputs, for re-rendering the form.
func (f *Form) Values() Values {
	return Values{
		Category: string(f.category),
		Activity: f.activityType,
		Quantity: f.quantity,
		Date:     f.date,
	}
}

// Capitalize upper-cases the first letter.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
