package hours

import "errors"

var (
	// ErrInvalidHours возвращается, когда изменение нарушает инварианты расписания
	// (начало не раньше конца, пересечение интервалов, удаление последнего интервала)
	ErrInvalidHours = errors.New("invalid hours")

	// ErrUnknownTemplate возвращается для неизвестного шаблона
	ErrUnknownTemplate = errors.New("unknown hours template")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
