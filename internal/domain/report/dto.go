package report

import (
	"github.com/gama-center/ponto-backend-go/internal/domain/punch"
	"github.com/gama-center/ponto-backend-go/internal/pkg/validator"
)

// Period selects the reporting window. "all" is the bank-of-hours mode: the
// range runs from the first record to the last exit punch.
type Period string

const (
	PeriodToday Period = "today"
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

func (p Period) IsValid() bool {
	switch p {
	case PeriodToday, PeriodDay, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return true
	}
	return false
}

type ReportFilter struct {
	Period Period
	// Date anchors day/week/month/year periods, format 2006-01-02.
	// Empty means today.
	Date string
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	if !f.Period.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must be one of today, day, week, month, year, all",
		})
	}

	if f.Date != "" {
		if _, ok := validator.IsValidDate(f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReportResponse struct {
	TotalWorkedHours float64 `json:"total_worked_hours"`
	BusinessDays     int     `json:"business_days"`
	DaysWorked       int     `json:"days_worked"`
	ExpectedHours    float64 `json:"expected_hours"`
	Balance          float64 `json:"balance"`
	LastRecordDate   *string `json:"last_record_date,omitempty"`
}

type HistoryFilter struct {
	Period Period
	Date   string
	// Kind filters the listing to a single punch kind; empty means all.
	Kind punch.Kind
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	switch f.Period {
	case PeriodToday, PeriodDay, PeriodWeek, PeriodMonth:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must be one of today, day, week, month",
		})
	}

	if f.Date != "" {
		if _, ok := validator.IsValidDate(f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Kind != "" && !f.Kind.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "unknown punch kind",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryResponse struct {
	Records []punch.PunchResponse `json:"records"`
}
