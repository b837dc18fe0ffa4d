package ingest

import "errors"

var (
	// ErrInvalidRecord запись экспорта не удалось привести к доменной сущности
	ErrInvalidRecord = errors.New("ingest: invalid record")
	// ErrMissingID у записи нет ни id, ни professional_id
	ErrMissingID = errors.New("ingest: record has no identifier")
	// ErrUnknownScheme неизвестная схема нумерации дней недели
	ErrUnknownScheme = errors.New("ingest: unknown weekday scheme")
)
