package availability

import "errors"

var (
	// ErrAvailabilityNotFound возвращается, когда исключение не найдено
	ErrAvailabilityNotFound = errors.New("availability not found")

	// ErrInvalidRange возвращается, когда начало окна не раньше конца
	ErrInvalidRange = errors.New("invalid availability range")

	// ErrOverlap возвращается при пересечении с другим окном мастера в ту же дату
	ErrOverlap = errors.New("availability overlaps another window")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
