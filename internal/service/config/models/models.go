package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// UpdateConfigRequest запрос на обновление конфигурации слотов.
// Все поля опциональны - обновляются только переданные значения.
type UpdateConfigRequest struct {
	UserID                  int64 `json:"userId"`
	SlotDurationMinutes     *int  `json:"slotDurationMinutes,omitempty"`
	AdvanceBookingDays      *int  `json:"advanceBookingDays,omitempty"`
	MinBookingNoticeMinutes *int  `json:"minBookingNoticeMinutes,omitempty"`
}

// IsEmpty возвращает true, если не передано ни одного поля
func (r *UpdateConfigRequest) IsEmpty() bool {
	return r.SlotDurationMinutes == nil && r.AdvanceBookingDays == nil && r.MinBookingNoticeMinutes == nil
}

// ApplyTo применяет изменения к конфигурации
func (r *UpdateConfigRequest) ApplyTo(c *domain.BusinessSlotsConfig) {
	if r.SlotDurationMinutes != nil {
		c.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.AdvanceBookingDays != nil {
		c.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MinBookingNoticeMinutes != nil {
		c.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
}

// ConfigResponse ответ с данными конфигурации слотов
type ConfigResponse struct {
	BusinessID              int64      `json:"businessId"`
	SlotDurationMinutes     int        `json:"slotDurationMinutes"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"` // 0 = без ограничений
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	IsDefault               bool       `json:"isDefault"`
	CreatedAt               *time.Time `json:"createdAt,omitempty"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainConfig конвертирует domain модель в DTO.
// Несохраненная конфигурация (значения по умолчанию) помечается IsDefault.
func FromDomainConfig(c *domain.BusinessSlotsConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		BusinessID:              c.BusinessID,
		SlotDurationMinutes:     c.SlotDurationMinutes,
		AdvanceBookingDays:      c.AdvanceBookingDays,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
		IsDefault:               c.CreatedAt.IsZero(),
	}
	if !c.CreatedAt.IsZero() {
		createdAt, updatedAt := c.CreatedAt, c.UpdatedAt
		resp.CreatedAt = &createdAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
