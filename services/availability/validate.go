package availability

import (
	"sort"
	"time"

	"slotbook/models"
	"slotbook/services/timeofday"
)

// Rule names the validation check a declaration failed.
type Rule string

const (
	RuleDateRequired   Rule = "date_required"
	RuleDateFormat     Rule = "date_format"
	RuleWindowRequired Rule = "window_required"
	RuleTimeFormat     Rule = "time_format"
	RuleWindowOrder    Rule = "window_order"
	RuleBreakFormat    Rule = "break_format"
	RuleBreakOrder     Rule = "break_order"
	RuleBreakInWindow  Rule = "break_within_window"
	RuleBreakOverlap   Rule = "break_overlap"
)

// ValidationError reports the first rule a declaration violated.
type ValidationError struct {
	Rule    Rule
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(rule Rule, msg string) error {
	return &ValidationError{Rule: rule, Message: msg}
}

// Validate checks req and returns the normalized declaration. Rules run in
// order and the first failure wins. An unavailable day is normalized to
// empty times and no breaks; accepted breaks are sorted by start.
func Validate(req models.AvailabilityRequest) (*models.Availability, error) {
	if req.Date == "" {
		return nil, invalid(RuleDateRequired, "Date is required")
	}
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return nil, invalid(RuleDateFormat, "Date must be formatted as YYYY-MM-DD")
	}

	if req.IsAvailable != nil && !*req.IsAvailable {
		return &models.Availability{
			Date:        date,
			IsAvailable: false,
			Breaks:      []models.Break{},
		}, nil
	}

	if req.StartTime == "" || req.EndTime == "" {
		return nil, invalid(RuleWindowRequired, "Start and end time required")
	}
	start, err := timeofday.ToMinutes(req.StartTime)
	if err != nil {
		return nil, invalid(RuleTimeFormat, "Start time must be in HH:mm format")
	}
	end, err := timeofday.ToMinutes(req.EndTime)
	if err != nil {
		return nil, invalid(RuleTimeFormat, "End time must be in HH:mm format")
	}
	if start >= end {
		return nil, invalid(RuleWindowOrder, "Start time must be before end time")
	}

	type span struct {
		brk        models.Break
		start, end int
	}
	spans := make([]span, 0, len(req.Breaks))
	for _, br := range req.Breaks {
		bs, err1 := timeofday.ToMinutes(br.StartTime)
		be, err2 := timeofday.ToMinutes(br.EndTime)
		if err1 != nil || err2 != nil {
			return nil, invalid(RuleBreakFormat, "Break times must be in HH:mm format")
		}
		if bs >= be {
			return nil, invalid(RuleBreakOrder, "Break start must be before break end")
		}
		if bs < start || be > end {
			return nil, invalid(RuleBreakInWindow, "Break must be within working hours")
		}
		spans = append(spans, span{brk: br, start: bs, end: be})
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	breaks := make([]models.Break, len(spans))
	for i, sp := range spans {
		if i > 0 && spans[i-1].end > sp.start {
			return nil, invalid(RuleBreakOverlap, "Breaks cannot overlap")
		}
		breaks[i] = sp.brk
	}

	return &models.Availability{
		Date:        date,
		IsAvailable: true,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Breaks:      breaks,
	}, nil
}
