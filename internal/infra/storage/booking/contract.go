package booking

import "github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД.
// Поддерживает *dbmetrics.DB и транзакцию из контекста.
type DBExecutor = dbmetrics.DBExecutor
