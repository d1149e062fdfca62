package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tablint/tablint/internal/format"
	"github.com/tablint/tablint/lint"
)

var (
	fmtCheck bool
	fmtDiff  bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [paths...]",
	Short: "Format files in place",
	Long: `Format files in place. With --check, only report which files would
change; with --diff, print a unified diff instead of rewriting.

Exit codes: 0 when nothing changed, 1 when files changed (or would
change), 2 on errors.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(2)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		config, err := lint.LoadConfig(cfgFile)
		if err != nil {
			logger.Error("Failed to load configuration", zap.Error(err))
			os.Exit(2)
		}
		engine := format.NewEngine(config.Format)

		mode := lint.ModeWrite
		switch {
		case fmtCheck:
			mode = lint.ModeCheck
		case fmtDiff:
			mode = lint.ModeDiff
		}

		results, err := lint.FormatFiles(ctx, logger, engine, args, mode)
		if err != nil {
			logger.Error("Error formatting files", zap.Error(err))
			os.Exit(2)
		}

		changed := 0
		failed := 0
		for _, r := range results {
			switch {
			case r.Err != nil:
				fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
				failed++
			case !r.Changed:
				// untouched files stay silent
			case mode == lint.ModeCheck:
				fmt.Printf("would reformat %s\n", r.Path)
				changed++
			case mode == lint.ModeDiff:
				fmt.Print(r.Diff)
				changed++
			default:
				fmt.Printf("reformatted %s\n", r.Path)
				changed++
			}
		}

		switch {
		case failed > 0:
			os.Exit(2)
		case changed > 0 && mode != lint.ModeWrite:
			os.Exit(1)
		}
	},
}

func init() {
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Report files that would change without rewriting them")
	fmtCmd.Flags().BoolVar(&fmtDiff, "diff", false, "Print a unified diff instead of rewriting")
	fmtCmd.MarkFlagsMutuallyExclusive("check", "diff")
}
