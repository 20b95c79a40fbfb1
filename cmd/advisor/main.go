package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/smukkama/weather-advisor/internal/analysis"
	"github.com/smukkama/weather-advisor/internal/events"
	"github.com/smukkama/weather-advisor/internal/forecast"
	"github.com/smukkama/weather-advisor/internal/history"
	"github.com/smukkama/weather-advisor/internal/journal"
	"github.com/smukkama/weather-advisor/internal/notification"
	"github.com/smukkama/weather-advisor/internal/report"
	"github.com/smukkama/weather-advisor/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runID := uuid.New().String()
	now := time.Now()
	localDate, _ := analysis.ReferenceDates(now, cfg.Location.UTCOffset)

	fmt.Printf("Starting weather advisor run %s for %s (%s)\n", runID, cfg.Location.Label, localDate)

	// Duplicate-send guard: skip the run entirely when today's advisory
	// already went out (e.g. a cron retry after a partial failure).
	var sendJournal *journal.Journal
	if cfg.Redis.Enabled() {
		sendJournal = journal.New(cfg.Redis)
		defer sendJournal.Close()

		sent, err := sendJournal.AlreadySent(ctx, localDate)
		if err != nil {
			log.Printf("Journal check failed, continuing without guard: %v", err)
		} else if sent {
			fmt.Printf("Advisory for %s was already sent, nothing to do\n", localDate)
			return
		}
	}

	// Fetch the short-range forecast
	client := forecast.NewClient(cfg.OpenWeather)
	set, err := client.Fetch(ctx, cfg.Location.Latitude, cfg.Location.Longitude)
	if err != nil {
		log.Fatalf("Failed to fetch forecast: %v", err)
	}
	if set.Location == "" {
		set.Location = cfg.Location.Label
	}
	fmt.Printf("Fetched %d forecast samples for %s\n", len(set.Points), set.Location)

	// Analyze
	analyzer := analysis.NewAnalyzer(cfg.Location.UTCOffset, cfg.Thresholds)
	rec, err := analyzer.Analyze(set, now)
	if err != nil {
		// Insufficient data is an expected outcome, not a fault: report
		// it and leave retry-or-skip to the scheduler.
		if errors.Is(err, analysis.ErrEmptyForecast) ||
			errors.Is(err, analysis.ErrNoDataToday) ||
			errors.Is(err, analysis.ErrNoTemperature) {
			fmt.Printf("No advisory today: %v\n", err)
			return
		}
		log.Fatalf("Analysis failed: %v", err)
	}

	fmt.Printf("Recommendation: drying=%s umbrella=%s (min %.1f°C / max %.1f°C / mean %.1f°C)\n",
		rec.Drying, rec.Umbrella, rec.TempMin, rec.TempMax, rec.TempMean)

	// Render and send
	msg, err := report.Render(rec, cfg.Location, now)
	if err != nil {
		log.Fatalf("Failed to render advisory: %v", err)
	}

	notifier := notification.NewEmailNotifier(&cfg.SMTP)
	if err := notifier.SendAdvisory(msg, runID); err != nil {
		log.Fatalf("Failed to send advisory: %v", err)
	}

	if sendJournal != nil {
		if err := sendJournal.MarkSent(ctx, localDate, runID); err != nil {
			log.Printf("Failed to mark advisory as sent: %v", err)
		}
	}

	recordRun(cfg, rec, runID, localDate, set.Location)
	publishAdvisory(ctx, cfg, rec, runID, localDate, set.Location)

	fmt.Printf("Run %s completed\n", runID)
}

// recordRun appends the run to the optional Postgres history. Failures
// are logged, not fatal: the advisory already went out.
func recordRun(cfg *config.Config, rec *analysis.Recommendation, runID, localDate, location string) {
	if !cfg.Database.Enabled() {
		return
	}

	db, err := history.Connect(cfg.Database.ConnectionString())
	if err != nil {
		log.Printf("Failed to connect to history database: %v", err)
		return
	}
	defer db.Close()

	if err := db.EnsureSchema(); err != nil {
		log.Printf("Failed to ensure history schema: %v", err)
		return
	}

	run := &history.Run{
		RunID:     runID,
		LocalDate: localDate,
		Location:  location,
		TempMin:   rec.TempMin,
		TempMax:   rec.TempMax,
		TempMean:  rec.TempMean,
		RainToday: rec.HasRain,
		Drying:    rec.Drying,
		Umbrella:  rec.Umbrella,
		EmailSent: true,
	}
	if err := db.InsertRun(run); err != nil {
		log.Printf("Failed to record run: %v", err)
		return
	}
	fmt.Printf("Run recorded in history (id=%d)\n", run.ID)
}

// publishAdvisory emits the optional Kafka event for downstream
// consumers. Failures are logged, not fatal.
func publishAdvisory(ctx context.Context, cfg *config.Config, rec *analysis.Recommendation, runID, localDate, location string) {
	if !cfg.Kafka.Enabled() {
		return
	}

	publisher := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer publisher.Close()

	advisory := events.NewAdvisory(rec, runID, localDate, location)
	if err := publisher.Publish(ctx, advisory); err != nil {
		log.Printf("Failed to publish advisory event: %v", err)
		return
	}
	fmt.Printf("Advisory event published to %s\n", cfg.Kafka.Topic)
}
