package models

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Операции редактирования одного дня
const (
	OpSetActive   = "set_active"
	OpAddRange    = "add_range"
	OpRemoveRange = "remove_range"
	OpSetBound    = "set_bound"
	OpSetRange    = "set_range"
)

// ReplaceHoursRequest запрос на замену документа целиком: либо Hours, либо Template
type ReplaceHoursRequest struct {
	UserID         int64               `json:"-"`
	ProfessionalID *int64              `json:"professionalId,omitempty"`
	Hours          *domain.WeeklyHours `json:"hours,omitempty"`
	Template       *string             `json:"template,omitempty"`
}

// EditDayRequest одна операция редактора над днем недели
type EditDayRequest struct {
	UserID         int64  `json:"-"`
	ProfessionalID *int64 `json:"professionalId,omitempty"`
	Op             string `json:"op"`
	Active         *bool  `json:"active,omitempty"` // set_active
	Index          *int   `json:"index,omitempty"`  // remove_range, set_bound, set_range
	Bound          string `json:"bound,omitempty"`  // set_bound: start|end
	Value          string `json:"value,omitempty"`  // set_bound: HH:MM
	Start          string `json:"start,omitempty"`  // add_range, set_range
	End            string `json:"end,omitempty"`    // add_range, set_range
}

// HoursResponse документ часов работы
type HoursResponse struct {
	BusinessID     int64              `json:"businessId"`
	ProfessionalID *int64             `json:"professionalId,omitempty"`
	Hours          domain.WeeklyHours `json:"hours"`
	IsDefault      bool               `json:"isDefault"` // документ еще не сохранялся
}

// TemplatesResponse список доступных шаблонов
type TemplatesResponse struct {
	Templates []string `json:"templates"`
}
