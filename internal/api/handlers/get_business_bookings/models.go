package get_business_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// from/to принимают дату (YYYY-MM-DD) или RFC 3339; дата в to означает конец этого дня.
func ToServiceRequest(businessID int64, professionalID *int64, query url.Values, loc *time.Location) (*models.GetBusinessBookingsRequest, error) {
	req := &models.GetBusinessBookingsRequest{
		BusinessID:     businessID,
		ProfessionalID: professionalID,
	}

	if raw := query.Get("from"); raw != "" {
		from, _, err := parseBound(raw, loc)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, dateOnly, err := parseBound(raw, loc)
		if err != nil {
			return nil, err
		}
		if dateOnly {
			to = to.AddDate(0, 0, 1)
		}
		req.To = &to
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}
	if raw := query.Get("kind"); raw != "" {
		req.Kind = &raw
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

func parseBound(raw string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(domain.DateFormat, raw, loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	return t, false, err
}
