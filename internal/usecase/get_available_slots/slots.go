package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// applyBookingNotice убирает слоты, которые начинаются раньше now + minNotice.
// Для будущих дат ничего не меняется.
func applyBookingNotice(slots []domain.Slot, date, now time.Time, minNoticeMinutes int) []domain.Slot {
	if !domain.SameDate(date, now) {
		return slots
	}

	earliest := now.Add(time.Duration(minNoticeMinutes) * time.Minute)
	out := slots[:0]
	for _, s := range slots {
		if !s.Time.On(date).Before(earliest) {
			out = append(out, s)
		}
	}
	return out
}

// filterSlots оставляет слоты одного мастера и/или только свободные
func filterSlots(slots []domain.Slot, professionalID *int64, freeOnly bool) []domain.Slot {
	if professionalID == nil && !freeOnly {
		return slots
	}

	out := slots[:0]
	for _, s := range slots {
		if professionalID != nil && s.ProfessionalID != *professionalID {
			continue
		}
		if freeOnly && !s.IsFree() {
			continue
		}
		out = append(out, s)
	}
	return out
}
