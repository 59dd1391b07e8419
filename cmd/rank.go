package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hh-matcher/internal/filtering"
	"github.com/spigell/hh-matcher/internal/logger"
	"github.com/spigell/hh-matcher/internal/matching"
	"github.com/spigell/hh-matcher/internal/report"
)

const (
	PromptShowRanking         = "Show ranking"
	PromptReportByCompanies   = "Report by companies"
	PromptInspect             = "Inspect a posting"
	PromptAppendToExcludeFile = "Append all postings to exclude file"
	PromptResultsToFile       = "Dump results to file"
	PromptExportXLSX          = "Export results to xlsx"
	PromptExit                = "Exit"
	PromptBack                = "back"

	outputText = "text"
	outputJSON = "json"
)

var errExit = errors.New("exit requested")

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank postings from the catalog against the candidate profile",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().BoolP("yes", "y", false, "print the ranking and exit without the interactive menu")
	rankCmd.Flags().StringP("output", "o", outputText, "output format for non-interactive mode: text or json")
	rankCmd.Flags().IntP("limit", "n", 0, "keep only the first N postings. Default is unlimited.")
	rankCmd.Flags().StringP("exclude-file", "e", "", "special file with postings to exclude. Default is unset.")
	rankCmd.Flags().StringSlice("skip-filter", nil, "names of filters to skip: employers, exclude_file, applied_history, minimum_match")

	viper.BindPFlag("exclude-file", rankCmd.Flags().Lookup("exclude-file"))
}

// rank is the main command for the cli.
func rank(cmd *cobra.Command) {
	ctx := context.Background()

	output, _ := cmd.Flags().GetString("output")
	if output != outputText && output != outputJSON {
		log.Fatalf("unsupported output format %q", output)
	}

	// Keep stdout clean for machine readable output.
	logOutput := ""
	if output == outputJSON {
		logOutput = "stderr"
	}

	lg, err := logger.New(logger.Options{
		JSON:   viper.GetBool("json"),
		Debug:  viper.GetBool("debug"),
		Output: logOutput,
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	lg.Info("starting the hh-matcher", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	lg.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	hh, err := newHeadhunter(config, lg)
	if err != nil {
		lg.Fatal("loading headhunter token", zap.Error(err))
	}

	candidate, described, err := loadCandidate(ctx, config, hh, lg)
	if err != nil {
		lg.Fatal("loading candidate profile", zap.Error(err))
	}

	lg = logger.WithCommonFields(lg, config.Catalog.Source, described)

	repo, closeCatalog, err := buildCatalog(ctx, config, hh, lg)
	if err != nil {
		lg.Fatal("preparing the catalog", zap.Error(err))
	}
	defer closeCatalog()

	engine := matching.NewEngine(newScorer(config), repo, config.Matching.Workers, lg)

	results, err := engine.RankCatalog(ctx, candidate)
	if err != nil {
		lg.Fatal("ranking postings", zap.Error(err))
	}

	if len(results) == 0 {
		lg.Info("exiting", zap.String("reason", "no postings found"))
		if err := emit(stdout, output, results); err != nil {
			lg.Fatal("printing results", zap.Error(err))
		}
		return
	}

	deps := filtering.Deps{Logger: lg}
	if hh != nil {
		deps.HH = hh
	}

	steps := filtering.Default()
	skipped, _ := cmd.Flags().GetStringSlice("skip-filter")
	for _, name := range skipped {
		filtering.DisableByName(steps, name, "skipped by flag")
	}

	results, err = filtering.Run(ctx, config.Filters, deps, steps, results)
	if err != nil {
		lg.Fatal("filtering failed", zap.Error(err))
	}

	for _, status := range filtering.Describe(steps) {
		lg.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	if yes, _ := cmd.Flags().GetBool("yes"); yes || output == outputJSON {
		if err := emit(stdout, output, results); err != nil {
			lg.Fatal("printing results", zap.Error(err))
		}
		return
	}

	if len(results) == 0 {
		lg.Info("exiting", zap.String("reason", "no postings left after filters"))
		return
	}

	items := []string{
		PromptShowRanking, PromptReportByCompanies, PromptInspect,
		PromptResultsToFile, PromptExportXLSX,
	}
	if config.ExcludeFile != "" {
		items = append(items, PromptAppendToExcludeFile)
	}

	menu := promptui.Select{
		Label: "What next?",
		Items: append(items, PromptExit),
	}

	for {
		_, action, err := menu.Run()
		if err != nil {
			lg.Fatal("exiting", zap.Error(err))
		}

		lg.Info("current list of postings", zap.Int("count", len(results)))

		results, err = handleAction(action, lg, config, results)
		if err != nil {
			if errors.Is(err, errExit) {
				return
			}
			lg.Fatal("exiting", zap.Error(err))
		}
	}
}

// handleAction returns the results the menu should continue with.
func handleAction(action string, log *zap.Logger, config *Config, results []matching.MatchResult) ([]matching.MatchResult, error) {
	switch action {
	case PromptShowRanking:
		return results, printRanking(stdout, results)
	case PromptExit:
		log.Info("exiting", zap.String("reason", "got exit from prompt"))
		return results, errExit
	case PromptReportByCompanies:
		pretty, _ := json.MarshalIndent(report.ByCompany(results), "", "  ")
		log.Info(string(pretty), zap.Int("postings count", len(results)))
		return results, nil
	case PromptInspect:
		return results, inspect(results)
	case PromptResultsToFile:
		filename, err := report.DumpToTmpFile(results)
		if err != nil {
			return results, fmt.Errorf("dump results to file: %w", err)
		}
		log.Info("dumping result to file", zap.String("filename", filename))
		return results, nil
	case PromptExportXLSX:
		return results, exportXLSX(log, results)
	case PromptAppendToExcludeFile:
		added, err := filtering.AppendToFile(config.ExcludeFile, results, time.Now())
		if err != nil {
			return results, err
		}
		log.Info("appended to exclude file",
			zap.String("filename", config.ExcludeFile),
			zap.Int("added", added),
		)
		log.Info("exiting", zap.String("reason", "all postings are excluded now"))
		return nil, errExit
	default:
		return results, fmt.Errorf("invalid action: %s", action)
	}
}

func inspect(results []matching.MatchResult) error {
	for {
		items := make([]string, 0, len(results)+1)
		for i, r := range results {
			items = append(items, fmt.Sprintf("%d. %s %s / %s / %d%%",
				i+1, r.Posting.ID, r.Posting.Title, r.Posting.Company, r.MatchPercentage,
			))
		}

		postingPrompt := promptui.Select{
			Label: "Choose a posting and press ENTER",
			Items: append(items, PromptBack),
			Size:  10,
		}

		idx, selected, err := postingPrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		printDetails(stdout, results[idx])
	}
}

func exportXLSX(log *zap.Logger, results []matching.MatchResult) error {
	pathPrompt := promptui.Prompt{
		Label:   "Workbook path",
		Default: fmt.Sprintf("ranking-%s.xlsx", time.Now().Format("20060102-150405")),
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("path is required")
			}
			return nil
		},
	}

	path, err := pathPrompt.Run()
	if err != nil {
		return err
	}

	written, err := report.ExportXLSX(results, strings.TrimSpace(path))
	if err != nil {
		return fmt.Errorf("export results: %w", err)
	}

	log.Info("results exported", zap.String("filename", written))
	return nil
}
