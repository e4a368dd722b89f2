package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/assapir/jobflow/internal/app"
	"github.com/assapir/jobflow/internal/config"
	"github.com/assapir/jobflow/internal/scraper"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const maxParallelSearches = 2

var (
	queries  []string
	location string
	asJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one or more searches and print the listings",
	Example: `  scraper search -q "golang developer" -l "Tel Aviv"
  scraper search -q backend -q devops --json`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringArrayVarP(&queries, "query", "q", nil, "search keywords (repeatable)")
	searchCmd.Flags().StringVarP(&location, "location", "l", "", "location filter applied to every query")
	searchCmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	_ = searchCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(searchCmd)
}

type queryResult struct {
	Query  string               `json:"query"`
	Result scraper.SearchResult `json:"result"`
	Error  string               `json:"error,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	results := make([]queryResult, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelSearches)
	for i, q := range queries {
		g.Go(func() error {
			results[i].Query = q
			result, err := a.Service.SearchJobs(gctx, q, location)
			if err != nil {
				//one failed query never stops the others
				results[i].Error = err.Error()
				return nil
			}
			results[i].Result = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		printResults(cmd, results)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d searches failed", failed, len(results))
	}
	log.Printf("✅ Completed %d searches", len(results))
	return nil
}

func printResults(cmd *cobra.Command, results []queryResult) {
	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(out, "❌ %s: %s\n", r.Query, r.Error)
			continue
		}
		fmt.Fprintf(out, "🔍 %s: %d jobs\n", r.Query, r.Result.TotalResults)
		printJobs(cmd, r.Result.Jobs)
	}
}

func printJobs(cmd *cobra.Command, jobs []scraper.JobListing) {
	out := cmd.OutOrStdout()
	for i, job := range jobs {
		fmt.Fprintf(out, "  %2d. %s @ %s", i+1, job.Title, job.Company)
		if job.Location != "" {
			fmt.Fprintf(out, " (%s)", job.Location)
		}
		if job.PostedDate != "" {
			fmt.Fprintf(out, " [%s]", job.PostedDate)
		}
		fmt.Fprintf(out, "\n      %s\n", job.URL)
	}
}
