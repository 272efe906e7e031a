package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"pragati/config"
	"pragati/models"
	"pragati/services"

	"github.com/rs/zerolog"
)

// Polls the feedback stats endpoint and prints the aggregates, the terminal
// stand-in for the admin feedback view.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	api := services.NewAPIClient(cfg.APIBaseURL, cfg.HTTPTimeout, log)
	ctx := context.Background()

	// The backend may still be coming up; retry the first fetch a few times.
	var overview *models.FeedbackOverview
	for i := 0; i < 3; i++ {
		overview, err = api.GetFeedbackStats(ctx)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("feedback stats fetch failed")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("could not reach the feedback service")
	}

	printOverview(overview)

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		overview, err := api.GetFeedbackStats(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("feedback stats refresh failed")
			continue
		}
		printOverview(overview)
	}
}

func printOverview(overview *models.FeedbackOverview) {
	fmt.Printf("\n--- Feedback overview @ %s ---\n", time.Now().Format("15:04:05"))
	fmt.Printf("Total feedback: %d, average rating: %.1f\n", overview.Stats.TotalCount, overview.Stats.AverageRating)

	statuses := make([]string, 0, len(overview.Stats.ImplementationBreakdown))
	for status := range overview.Stats.ImplementationBreakdown {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		fmt.Printf("  %-22s %d\n", status, overview.Stats.ImplementationBreakdown[status])
	}

	if len(overview.RecentFeedback) > 0 {
		fmt.Println("Recent feedback:")
		for i, fb := range overview.RecentFeedback {
			if i == 5 {
				break
			}
			fmt.Printf("  [%d/5] %-22s %s\n", fb.Rating, fb.ImplementationStatus, fb.Comments)
		}
	}

	if len(overview.RecentQueries) > 0 {
		fmt.Println("Recent challenges:")
		for i, q := range overview.RecentQueries {
			if i == 5 {
				break
			}
			fmt.Printf("  %s: %s\n", q.Topic, q.Content)
		}
	}
}
