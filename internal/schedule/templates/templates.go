// Package templates generates complete WeeklyHours documents from named presets.
package templates

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Names of the recognised templates
const (
	WeekdaysSplit      = "weekdays-split"
	WeekdaysContinuous = "weekdays-continuous"
	FullWeek           = "full-week"
)

var workdays = []domain.Weekday{
	domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday,
}

var presets = map[string]func() map[domain.Weekday][]domain.TimeRange{
	WeekdaysSplit: func() map[domain.Weekday][]domain.TimeRange {
		days := make(map[domain.Weekday][]domain.TimeRange)
		for _, d := range workdays {
			days[d] = []domain.TimeRange{
				domain.MustTimeRange("09:00", "14:00"),
				domain.MustTimeRange("17:00", "20:00"),
			}
		}
		days[domain.Saturday] = []domain.TimeRange{domain.MustTimeRange("09:00", "14:00")}
		return days
	},
	WeekdaysContinuous: func() map[domain.Weekday][]domain.TimeRange {
		days := make(map[domain.Weekday][]domain.TimeRange)
		for _, d := range workdays {
			days[d] = []domain.TimeRange{domain.MustTimeRange("09:00", "18:00")}
		}
		return days
	},
	FullWeek: func() map[domain.Weekday][]domain.TimeRange {
		days := make(map[domain.Weekday][]domain.TimeRange)
		for _, d := range domain.AllWeekdays {
			days[d] = []domain.TimeRange{domain.MustTimeRange("10:00", "20:00")}
		}
		return days
	},
}

// Apply returns a fresh document for the named template. The result always replaces
// the whole schedule, it is never merged into existing hours.
func Apply(name string) (domain.WeeklyHours, error) {
	build, ok := presets[name]
	if !ok {
		return domain.WeeklyHours{}, fmt.Errorf("%w: %q", domain.ErrUnknownTemplate, name)
	}
	return domain.NewWeeklyHours(build()), nil
}

// Names returns the recognised template names, sorted
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
