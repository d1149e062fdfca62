package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tablint/tablint/formatter"
	"github.com/tablint/tablint/internal/checker"
	tt "github.com/tablint/tablint/internal/types"
	"github.com/tablint/tablint/lint"
)

var (
	ignoreRules    string
	lintJSONOutput bool
	outPath        string
	watchMode      bool
	failOn         string
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Run the normal lint process",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(2)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := lint.New(cfgFile)
		if err != nil {
			logger.Error("Failed to initialize lint engine", zap.Error(err))
			os.Exit(2)
		}

		if ignoreRules != "" {
			for _, rule := range strings.Split(ignoreRules, ",") {
				engine.IgnoreRule(strings.TrimSpace(rule))
			}
		}

		if watchMode {
			runWatch(ctx, engine, args)
			return
		}

		runNormalLintProcess(ctx, logger, engine, args, lintJSONOutput, outPath)
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	lintCmd.Flags().BoolVar(&lintJSONOutput, "json", false, "Output issues in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	lintCmd.Flags().BoolVar(&watchMode, "watch", false, "Re-lint files as they change")
	lintCmd.Flags().StringVar(&failOn, "fail-on", "warning", "Lowest severity that causes a non-zero exit (info, warning, error)")
}

func runNormalLintProcess(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, isJSON bool, jsonOutput string) {
	issues, err := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(2)
	}

	printIssues(logger, issues, isJSON, jsonOutput)

	threshold := tt.ParseSeverity(failOn)
	for _, issue := range issues {
		if issue.Severity >= threshold {
			os.Exit(1)
		}
	}
}

func runWatch(ctx context.Context, engine lint.LintEngine, paths []string) {
	fmt.Println("watching for changes... (ctrl-c to stop)")
	err := lint.Watch(ctx, logger, engine, paths, func(filename string, issues []tt.Issue) {
		if len(issues) == 0 {
			fmt.Printf("%s: clean\n", filename)
			return
		}
		printIssues(logger, issues, false, "")
	})
	if err != nil && err != context.Canceled && err != context.DeadlineExceeded {
		logger.Error("watch stopped", zap.Error(err))
		os.Exit(2)
	}
}

func printIssues(logger *zap.Logger, issues []tt.Issue, isJSON bool, jsonOutput string) {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	if !isJSON {
		for _, filename := range sortedFiles {
			fileIssues := issuesByFile[filename]
			sourceCode, err := checker.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				continue
			}
			output := formatter.GenerateFormattedIssue(fileIssues, sourceCode)
			fmt.Println(output)
		}
		return
	}

	d, err := formatter.GenerateJSONOutput(issuesByFile)
	if err != nil {
		logger.Error("Error marshalling issues to JSON", zap.Error(err))
		return
	}
	if jsonOutput == "" {
		fmt.Println(string(d))
		return
	}
	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}
