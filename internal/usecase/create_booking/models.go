package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования или блокировки времени
type Request struct {
	UserID         int64      // ID пользователя из заголовка X-User-ID
	BusinessID     int64      // ID бизнеса
	ProfessionalID *int64     // ID мастера, для блокировки может быть пустым (весь бизнес)
	ServiceID      *int64     // ID услуги
	ClientID       *int64     // ID клиента, по умолчанию UserID
	ClientName     string     // Имя клиента
	ServiceName    string     // Название услуги
	Start          time.Time  // Начало интервала
	End            *time.Time // Конец интервала, по умолчанию Start + шаг сетки
	Kind           string     // reservation (по умолчанию) или block
	Notes          *string    // Дополнительные заметки (опционально)
}
