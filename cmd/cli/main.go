package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"bootstat/adapters/excel"
	"bootstat/domain/bootstrap"
	"bootstat/domain/run"
	"bootstat/internal/engine"
	"bootstat/internal/report"
	"bootstat/internal/statistics"
)

func main() {
	// Optional .env for default alpha/resamples overrides
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "bootstat-cli",
		Short: "Bootstrap assertion tests for samples stored in Excel or CSV files",
	}

	rootCmd.AddCommand(
		newTestCmd(),
		newStatisticsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newTestCmd() *cobra.Command {
	var (
		file      string
		column    string
		statistic string
		reference float64
		alpha     float64
		resamples int
		seed      int64
		seeded    bool
		markdown  bool
	)

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run a bootstrap test against a column of a data file",
		Long: `Run a bootstrap test of a named statistic over one numeric column.

Example: bootstat-cli test --file draws.xlsx --column price --statistic mean --reference 10 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" || column == "" {
				return fmt.Errorf("--file and --column are required")
			}

			fn, err := statistics.Lookup(statistic)
			if err != nil {
				return err
			}

			sample, err := excel.NewDataReader(file).ReadColumn(column)
			if err != nil {
				return err
			}

			e := engine.New()
			e.SetAlpha(alpha)
			e.SetResamples(resamples)
			if seeded {
				e.SetSeed(seed)
			}

			result, err := e.TestScalar(sample, fn, reference)
			if err != nil && !bootstrap.IsTestError(err) {
				return err
			}

			record := run.NewRecord("", column, statistic, result)
			if markdown {
				fmt.Println(report.BuildMarkdown(record))
			} else {
				printSummary(record)
			}

			if !result.Passed() {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "xlsx or csv file holding the sample")
	cmd.Flags().StringVar(&column, "column", "", "column name to test")
	cmd.Flags().StringVar(&statistic, "statistic", "mean", "statistic to bootstrap ("+strings.Join(statistics.Names(), ", ")+")")
	cmd.Flags().Float64Var(&reference, "reference", 0, "theoretical reference value")
	cmd.Flags().Float64Var(&alpha, "alpha", engine.DefaultAlpha, "significance level")
	cmd.Flags().IntVar(&resamples, "resamples", engine.DefaultResamples, "number of bootstrap resamples")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for reproducible runs")
	cmd.Flags().BoolVar(&seeded, "seeded", false, "use the --seed value instead of process randomness")
	cmd.Flags().BoolVar(&markdown, "report", false, "print the full markdown report")

	return cmd
}

func newStatisticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statistics",
		Short: "List the built-in statistics",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("scalar:", strings.Join(statistics.Names(), ", "))
			fmt.Println("row:   ", strings.Join(statistics.RowNames(), ", "))
		},
	}
}

func printSummary(record *run.Record) {
	result := record.Result
	verdict := "PASSED"
	if !record.Passed {
		verdict = "FAILED"
	}
	fmt.Printf("%s: %s of %q (n=%d, B=%d, alpha=%g)\n",
		verdict, record.Statistic, record.Name, result.SampleSize, result.Resamples, result.Alpha)
	for i := 0; i < result.Components(); i++ {
		c := result.Component(i)
		fmt.Printf("  reference %.6g vs [%.6g, %.6g], median %.6g, iqr %.6g, z %.3f\n",
			c.Reference, c.Lower, c.Upper, c.Median, c.IQR, c.ZScore)
	}
}
