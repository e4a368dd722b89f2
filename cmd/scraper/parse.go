package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/assapir/jobflow/internal/scraper"
	"github.com/assapir/jobflow/internal/scraper/linkedin"
	"github.com/spf13/cobra"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse <file.html>",
	Short: "Extract listings from a saved results page",
	Long:  "Reads a results page saved to disk (e.g. by the debug snapshot) and runs the listing extractor on it. No browser is started.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print results as JSON")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	cards, err := linkedin.CardsFromHTML(f)
	if err != nil {
		return err
	}
	result := scraper.NewSearchResult(linkedin.Extract(cards))

	if parseJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "📄 %d cards, %d jobs\n", len(cards), result.TotalResults)
	printJobs(cmd, result.Jobs)
	return nil
}
