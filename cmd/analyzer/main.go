package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/Blimabru/league-of-legends-predictor/internal/analysis"
	"github.com/Blimabru/league-of-legends-predictor/internal/cache"
	"github.com/Blimabru/league-of-legends-predictor/internal/config"
	"github.com/Blimabru/league-of-legends-predictor/internal/dataset"
	"github.com/Blimabru/league-of-legends-predictor/internal/riot"
)

func main() {
	riotID := flag.String("riot-id", "", "Riot ID to analyze (e.g., 'Player#BR1')")
	matchCount := flag.Int("count", 20, "Number of recent matches to analyze (10-100)")
	noCache := flag.Bool("no-cache", false, "Disable the on-disk match cache")
	flag.Parse()

	if *riotID == "" || !strings.Contains(*riotID, "#") {
		fmt.Println("Usage:")
		fmt.Println("  analyzer --riot-id='Player#TAG' [--count=20] [--no-cache]")
		fmt.Println()
		fmt.Println("Fetches the player's recent matches, trains a win-probability")
		fmt.Println("model on them and prints the scenario predictions.")
		fmt.Println()
		fmt.Println("RIOT_API_KEY and CONTINENT are read from the environment or .env")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	gameName, tagLine, _ := strings.Cut(*riotID, "#")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nAborting...")
		cancel()
	}()

	client, err := riot.NewClient(cfg.APIKey, cfg.Continent,
		riot.WithRequestDelay(cfg.FetchDelay),
		riot.WithLogger(logger.Sugar()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "riot client: %v\n", err)
		os.Exit(1)
	}

	opts := []analysis.SessionOption{
		analysis.WithLogger(logger.Sugar()),
		analysis.WithForestSize(cfg.ForestTrees),
	}
	if !*noCache && cfg.MatchCachePath != "" {
		store, err := cache.OpenMatchStore(cfg.MatchCachePath)
		if err != nil {
			logger.Sugar().Warnw("match cache disabled", "error", err)
		} else {
			defer store.Close()
			opts = append(opts, analysis.WithMatchStore(store))
		}
	}

	session := analysis.NewSession(client, opts...)

	fmt.Printf("Analyzing %s#%s over %d matches (this takes ~1s per uncached match)\n\n",
		gameName, tagLine, *matchCount)

	result, err := session.Run(ctx, gameName, tagLine, *matchCount, consoleProgress())
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nanalysis failed: %v\n", err)
		os.Exit(1)
	}

	printResult(result)
}

// consoleProgress renders the sink as a simple percentage line.
func consoleProgress() dataset.ProgressSink {
	last := -1
	return dataset.ProgressFunc(func(fraction float64) {
		pct := int(fraction * 100)
		if pct != last {
			fmt.Printf("\rProgress: %3d%%", pct)
			last = pct
		}
		if pct >= 100 {
			fmt.Println()
		}
	})
}

func printResult(r *analysis.Result) {
	ds := r.Dataset

	fmt.Println("\n=== General Stats ===")
	fmt.Printf("Matches analyzed: %d\n", len(ds))
	fmt.Printf("Win rate:         %.0f%%\n", ds.WinRate()*100)
	fmt.Printf("Mean KDA:         %.2f\n", ds.MeanKDA())
	fmt.Printf("Mean duration:    %.1f min\n", ds.MeanDuration())
	if skipped := r.SkippedFetchFailures + r.SkippedPlayerMissing + r.SkippedDuplicateIDs; skipped > 0 {
		fmt.Printf("Matches skipped:  %d (%d fetch failures, %d player missing, %d duplicates)\n",
			skipped, r.SkippedFetchFailures, r.SkippedPlayerMissing, r.SkippedDuplicateIDs)
	}

	fmt.Println("\n=== Model Evaluation ===")
	fmt.Printf("Train/test split: %d/%d\n", len(r.Split.XTrain), len(r.Split.XTest))
	fmt.Printf("Test accuracy:    %.0f%%\n", r.Evaluation.Accuracy*100)
	fmt.Printf("Confusion matrix: TP=%d TN=%d FP=%d FN=%d\n",
		r.Evaluation.TruePositives, r.Evaluation.TrueNegatives,
		r.Evaluation.FalsePositives, r.Evaluation.FalseNegatives)

	fmt.Println("\n=== Top Feature Importances ===")
	importances := make([]analysis.Importance, len(r.Importances))
	copy(importances, r.Importances)
	sort.SliceStable(importances, func(i, j int) bool {
		return importances[i].Value > importances[j].Value
	})
	for i, imp := range importances {
		if i >= 10 || imp.Value == 0 {
			break
		}
		fmt.Printf("%-24s %.3f\n", imp.Column, imp.Value)
	}

	fmt.Println("\n=== Win Rate by Champion ===")
	rates := ds.ChampionWinRates()
	counts := ds.ChampionCounts()
	for _, champ := range ds.Champions() {
		fmt.Printf("%-16s %3.0f%% over %d matches\n", champ, rates[champ]*100, counts[champ])
	}

	fmt.Println("\n=== Win Probability by Most Played ===")
	for _, sc := range r.Scenarios {
		fmt.Printf("%-16s as %-8s -> %5.1f%%\n", sc.Champion, sc.RoleName, sc.WinProbabilityPercent)
	}
}
