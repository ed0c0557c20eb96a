package data

import (
	"context"
	"fmt"

	"github.com/rcmonumento/agenda-go/internal/agenda"
	"github.com/rcmonumento/agenda-go/internal/logger"
	"github.com/rcmonumento/agenda-go/internal/storage"
)

// Seed loads the static grid and calendar into an empty store. Each data
// set is skipped when rows already exist, so restarts never clobber edits
// made through the API.
func Seed(ctx context.Context, repo storage.Repository, log *logger.Logger) error {
	log = log.WithModule("seed")

	count, err := repo.CountPrograms(ctx)
	if err != nil {
		return fmt.Errorf("count programs: %w", err)
	}
	if count == 0 {
		programs := make([]*agenda.Program, len(Programs))
		for i := range Programs {
			programs[i] = &Programs[i]
		}
		if err := repo.SaveProgramsBatch(ctx, programs); err != nil {
			return fmt.Errorf("seed programs: %w", err)
		}
		log.Info("program grid seeded", "programs", len(programs))
	}

	for month, events := range Efemerides {
		existing, err := repo.GetEfemeridesByMonth(ctx, month)
		if err != nil {
			return fmt.Errorf("read efemerides for %s: %w", month, err)
		}
		if len(existing) > 0 {
			continue
		}
		if err := repo.SaveEfemeridesBatch(ctx, month, events); err != nil {
			return fmt.Errorf("seed efemerides for %s: %w", month, err)
		}
	}

	for month, comms := range Conmemoraciones {
		existing, err := repo.GetConmemoracionesByMonth(ctx, month)
		if err != nil {
			return fmt.Errorf("read conmemoraciones for %s: %w", month, err)
		}
		if len(existing) > 0 {
			continue
		}
		for _, comm := range comms {
			if err := repo.SaveConmemoracion(ctx, month, comm); err != nil {
				return fmt.Errorf("seed conmemoraciones for %s: %w", month, err)
			}
		}
	}

	log.Info("calendar data verified")
	return nil
}
