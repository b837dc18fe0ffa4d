package update_business_hours

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/hours/models"
)

type HoursService interface {
	Replace(ctx context.Context, businessID int64, req *models.ReplaceHoursRequest) (*models.HoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
