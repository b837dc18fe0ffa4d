package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модель запроса на получение сетки слотов
type Request struct {
	BusinessID     int64     // ID бизнеса
	ProfessionalID *int64    // Только слоты этого мастера (опционально)
	Date           time.Time // Дата (время суток игнорируется)
	FreeOnly       bool      // Только свободные слоты
}

// Response модель ответа с сеткой слотов
type Response struct {
	Date            time.Time     // Дата в часовом поясе бизнеса
	BusinessID      int64         // ID бизнеса
	DurationMinutes int           // Шаг сетки
	Slots           []domain.Slot // Слоты по мастерам, затем по времени
}
