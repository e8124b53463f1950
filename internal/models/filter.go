package models

import "time"

// DateRange bounds a history view. A nil From disables filtering; a nil To
// leaves the range open-ended.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// DummyDateRange receives the range from query parameters before parsing.
type DummyDateRange struct {
	From string `validate:"omitempty,datetime=2006-01-02"`
	To   string `validate:"omitempty,datetime=2006-01-02"`
}
