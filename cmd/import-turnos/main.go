package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/turnos-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/turnos-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/turnos-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/turnos-scheduler/internal/importer"
	"github.com/BruksfildServices01/turnos-scheduler/internal/logger"
	"github.com/BruksfildServices01/turnos-scheduler/internal/timezone"
)

func main() {
	file := flag.String("file", "turnos.json", "legacy turnos.json to import")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("opening legacy file")
	}
	defer f.Close()

	db := dbpkg.NewDB(cfg)
	repo := infraRepo.NewTurnoGormRepository(db)

	im := importer.New(repo, timezone.Location(cfg.Timezone), cfg.HoldWindow)

	report, err := im.Import(context.Background(), f)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	log.Info().
		Int("imported", report.Imported).
		Int("skipped", report.Skipped).
		Int("without_timestamp", report.NoTimestamps).
		Msg("legacy import finished")
}
