// Command extract runs a document extractor over a local file and prints
// the resulting record as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/JaviLianes8/RealTajoFCBack/internal/config"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/service"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
)

func main() {
	var (
		kind    = flag.String("kind", "", "document kind: classification, schedule, matchday, results, calendar, top_scorers")
		file    = flag.String("file", "", "path to the PDF, HTML or XLSX document")
		team    = flag.String("team", "REAL TAJO", "tracked team")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	if err := config.SetupLogging(config.LogConfig{Level: level, Format: "console"}, os.Stderr); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logging")
	}

	if *file == "" || !league.Kind(*kind).Valid() {
		flag.Usage()
		os.Exit(2)
	}

	record, err := run(context.Background(), league.Kind(*kind), *file, *team)
	if err != nil {
		log.Error().Err(err).Str("file", *file).Str("kind", *kind).Msg("Extraction failed")
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		log.Fatal().Err(err).Msg("Failed to encode record")
	}
}

func run(ctx context.Context, kind league.Kind, path, team string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	// The services persist what they extract; a scratch store keeps this
	// command free of side effects.
	scratch, err := os.MkdirTemp("", "realtajo-extract-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(scratch)
	fs, err := store.NewFileStore(scratch)
	if err != nil {
		return nil, err
	}

	services := service.New(service.Deps{Store: fs, Team: team})
	u := service.Upload{Filename: filepath.Base(path), Data: data}

	switch kind {
	case league.KindClassification:
		table, err := services.Classification.Process(ctx, u)
		if err != nil {
			return nil, err
		}
		return table.View(), nil
	case league.KindSchedule:
		return services.Schedule.Process(ctx, u)
	case league.KindMatchday:
		return services.Matchdays.Process(ctx, u)
	case league.KindResults:
		return services.Results.Process(ctx, u)
	case league.KindCalendar:
		return services.Calendar.Process(ctx, u)
	case league.KindTopScorers:
		table, err := services.TopScorers.Process(ctx, u)
		if err != nil {
			return nil, err
		}
		return table.View(), nil
	}
	return nil, fmt.Errorf("unsupported kind %q", kind)
}
