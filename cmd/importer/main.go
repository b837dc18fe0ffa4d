package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-ScheduleService/internal/config"
	availabilityRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	hoursRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/hours"
	managersRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/managers"
	"github.com/m04kA/SMC-ScheduleService/internal/ingest"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "путь к конфигурации")
	exportPath := flag.String("file", "", "JSON выгрузка одного бизнеса")
	dryRun := flag.Bool("dry-run", false, "только разобрать выгрузку, без записи в БД")
	flag.Parse()

	if *exportPath == "" {
		fmt.Println("Usage: importer -file export.json [-config config.toml] [-dry-run]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	// 1. Разбираем выгрузку во временной зоне бизнеса
	f, err := os.Open(*exportPath)
	if err != nil {
		log.Fatal("Failed to open export %s: %v", *exportPath, err)
	}
	defer f.Close()

	snapshot, err := ingest.NewNormalizer(cfg.Schedule.Location()).Decode(f)
	if err != nil {
		log.Fatal("Failed to normalize export %s: %v", *exportPath, err)
	}
	log.Info("Export parsed: business=%d managers=%d professionals=%d exceptions=%d bookings=%d",
		snapshot.BusinessID, len(snapshot.ManagerIDs), len(snapshot.ProfessionalHours),
		len(snapshot.Exceptions), len(snapshot.Bookings))

	if *dryRun {
		return
	}

	// 2. Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	wrappedDB := dbmetrics.Wrap(db, nil)
	loader := ingest.NewLoader(
		hoursRepo.NewRepository(wrappedDB),
		availabilityRepo.NewRepository(wrappedDB),
		bookingRepo.NewRepository(wrappedDB),
		managersRepo.NewRepository(wrappedDB),
		txmanager.NewTransactionManager(wrappedDB),
		log,
	)

	// 3. Записываем одной транзакцией
	if _, err := loader.Load(ctx, snapshot); err != nil {
		log.Fatal("Import failed: %v", err)
	}
	log.Info("Import finished: business=%d", snapshot.BusinessID)
}
