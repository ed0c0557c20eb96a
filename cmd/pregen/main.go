// Package main implements the pregen tool: it bulk-generates the
// editorial agenda for whole months ahead of time, so editors open a
// fully populated week instead of waiting on on-demand generation.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rcmonumento/agenda-go/internal/agenda"
	"github.com/rcmonumento/agenda-go/internal/config"
	"github.com/rcmonumento/agenda-go/internal/data"
	domerrors "github.com/rcmonumento/agenda-go/internal/errors"
	"github.com/rcmonumento/agenda-go/internal/logger"
	"github.com/rcmonumento/agenda-go/internal/planner"
	"github.com/rcmonumento/agenda-go/internal/storage"
)

var (
	monthsFlag  = flag.String("months", "", "Comma-separated month names to generate (empty = all twelve)")
	yearFlag    = flag.Int("year", 0, "Calendar year to generate (0 = configured year)")
	workersFlag = flag.Int("workers", 4, "Concurrent week generations")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("Starting pregen tool")

	ctx := context.Background()

	db, err := storage.New(ctx, cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Error("Failed to connect to database")
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	if err := data.Seed(ctx, db, log); err != nil {
		log.WithError(err).Error("Failed to seed database")
		os.Exit(1)
	}

	year := *yearFlag
	if year == 0 {
		year = cfg.Year
	}

	months, err := parseMonths(*monthsFlag)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	pln := planner.New(db, nil, nil, log, year)

	var weeksDone, contentDone, failures int64
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*workersFlag)

	for _, month := range months {
		_, weeks, err := pln.Weeks(month, year)
		if err != nil {
			log.WithError(err).WithField("month", month).Error("Failed to resolve month")
			atomic.AddInt64(&failures, 1)
			continue
		}
		for _, week := range weeks {
			month, weekID := month, week.ID
			g.Go(func() error {
				result, err := pln.GenerateWeek(gctx, month, weekID, year)
				if err != nil {
					log.WithError(err).
						WithField("month", month).
						WithField("week", weekID).
						Error("Week generation failed")
					atomic.AddInt64(&failures, 1)
					return nil
				}
				atomic.AddInt64(&weeksDone, 1)
				atomic.AddInt64(&contentDone, int64(result.ContentCount))
				return nil
			})
		}
	}

	_ = g.Wait()
	duration := time.Since(start).Round(time.Millisecond)

	if atomic.LoadInt64(&failures) > 0 {
		log.WithField("failures", failures).WithField("duration", duration).Error("Pregen completed with errors")
		_, _ = fmt.Fprintf(os.Stderr, "Pregen completed with %d errors: %d weeks, %d content entries in %v\n",
			failures, weeksDone, contentDone, duration)
		os.Exit(1)
	}

	log.WithField("weeks", weeksDone).
		WithField("content_entries", contentDone).
		WithField("duration", duration).
		Info("Pregen complete")
	fmt.Printf("Pregen complete: %d weeks, %d content entries in %v\n", weeksDone, contentDone, duration)
}

// parseMonths resolves a comma-separated month list to canonical names.
// An empty input selects the whole year in calendar order.
func parseMonths(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return agenda.MonthNames[:], nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		month, ok := agenda.ParseMonth(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domerrors.ErrUnknownMonth, name)
		}
		result = append(result, month)
	}
	if len(result) == 0 {
		return nil, errors.New("no months selected")
	}
	return result, nil
}
