package mangiato

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/nonibytes/mangiato/mangiato/model"
)

var emailRe = regexp.MustCompile(`^[A-Za-z0-9.!#$%&'*+/=?^_{|}~-]+@[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?)+$`)

// normalizeEmail trims and lowercases s. Filters lowercase their input, so
// stored addresses are lowercase too.
func normalizeEmail(field, s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRe.MatchString(s) {
		return "", ValidationError(field, "Enter a valid email address.")
	}
	return s, nil
}

func validateDate(s string) (string, error) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", ValidationError("date", "Date has wrong format. Use YYYY-MM-DD.")
	}
	return t.Format(model.DateLayout), nil
}

func validateTime(s string) (string, error) {
	t, err := time.Parse(model.TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return "", ValidationError("time", "Time has wrong format. Use hh:mm:ss.")
	}
	return t.Format(model.TimeLayout), nil
}

func validateCalories(v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return ValidationError("calories", "Ensure this value is greater than or equal to 0.")
	}
	return nil
}

func validateMaxCalories(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return ValidationError("maximum_calories", "Ensure this value is greater than 0.")
	}
	return nil
}

// validateMeal normalizes in and reports the first invalid field.
func validateMeal(in MealInput) (MealInput, error) {
	date, err := validateDate(in.Date)
	if err != nil {
		return in, err
	}
	tm, err := validateTime(in.Time)
	if err != nil {
		return in, err
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return in, ValidationError("description", "This field may not be blank.")
	}
	if err := validateCalories(in.Calories); err != nil {
		return in, err
	}
	return MealInput{Date: date, Time: tm, Description: desc, Calories: in.Calories}, nil
}
