package edit_business_hours

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/hours/models"
)

type HoursService interface {
	Edit(ctx context.Context, businessID int64, day domain.Weekday, req *models.EditDayRequest) (*models.HoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
