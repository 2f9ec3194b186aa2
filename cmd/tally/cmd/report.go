package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"tally/internal/adapters/sqlite"
	"tally/internal/adapters/tui"
	"tally/internal/application/commands"
	"tally/internal/domain"
)

var todayInteractive bool

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print statistics for today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := runReport(domain.Period{Kind: domain.PeriodToday})
		if err != nil {
			return err
		}
		ledger := report.Days[0].Ledger
		if ledger == nil {
			ledger = &domain.Ledger{Date: env.Today}
		}
		if todayInteractive {
			return tui.Run(ledger, env.Store.Path(env.Today), out, env.Now)
		}
		fmt.Print(out.Day(ledger, env.Now, true))
		return nil
	},
}

var dayCmd = &cobra.Command{
	Use:   "day <date>",
	Short: "Print statistics for a specific day (YYYY-MM-DD)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := domain.ParseDate(args[0])
		if err != nil {
			return err
		}
		report, err := runReport(domain.Period{Kind: domain.PeriodDay, Day: date})
		if err != nil {
			return err
		}
		printSingleDay(report)
		return nil
	},
}

var yesterdayCmd = &cobra.Command{
	Use:   "yesterday [n]",
	Short: "Print statistics for yesterday (or n days back)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := countArg(args, 1)
		if err != nil {
			return err
		}
		report, err := runReport(domain.Period{Kind: domain.PeriodYesterday, Count: count})
		if err != nil {
			return err
		}
		printSingleDay(report)
		return nil
	},
}

var lastdayCmd = &cobra.Command{
	Use:   "lastday",
	Short: "Print statistics for the most recent day with any entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := runReport(domain.Period{Kind: domain.PeriodLastDay})
		if err != nil {
			return err
		}
		printSingleDay(report)
		return nil
	},
}

var weekCmd = &cobra.Command{
	Use:   "week [n]",
	Short: "Print statistics for the trailing 7 days (or n weeks)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := countArg(args, 1)
		if err != nil {
			return err
		}
		report, err := runReport(domain.Period{Kind: domain.PeriodWeek, Count: count})
		if err != nil {
			return err
		}
		fmt.Println(out.ChartHeader(27))
		for _, day := range report.Days {
			fmt.Println(out.DayRow(day.Date, day.Ledger))
		}
		fmt.Println()
		fmt.Print(out.Summary(report.Summary, len(report.Days)))
		return nil
	},
}

var yearCmd = &cobra.Command{
	Use:   "year [n]",
	Short: "Print statistics for the trailing 365 days (or n years)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := countArg(args, 1)
		if err != nil {
			return err
		}

		// A year of day files is served from the stats index.
		index, err := sqlite.New(env.Store, filepath.Join(cfg.DataDir, ".stats-index.db"))
		if err != nil {
			return err
		}
		defer index.Close()
		env.Index = index

		report, err := runReport(domain.Period{Kind: domain.PeriodYear, Count: count})
		if err != nil {
			return err
		}
		days := count * 365
		fmt.Print(out.Summary(report.Summary, days))
		return nil
	},
}

// runReport executes a report command, downgrading "no data" to an empty
// report message so the command still exits cleanly.
func runReport(period domain.Period) (*commands.Report, error) {
	report, err := commands.NewReportCommand(env, period).Execute()
	if errors.Is(err, domain.ErrNoData) {
		fmt.Println(err)
		return &commands.Report{Period: period, Summary: domain.NewSummary()}, nil
	}
	return report, err
}

func printSingleDay(report *commands.Report) {
	if len(report.Days) == 0 {
		return
	}
	day := report.Days[0]
	if day.Ledger == nil {
		fmt.Printf("%s: no data\n", day.Date)
		return
	}
	fmt.Printf("%s\n", day.Date)
	fmt.Print(out.Day(day.Ledger, env.Now, false))
}

func countArg(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid repeat count %q", args[0])
	}
	return n, nil
}

func init() {
	todayCmd.Flags().BoolVarP(&todayInteractive, "interactive", "i", false, "browse the day in an interactive timeline")
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(yesterdayCmd)
	rootCmd.AddCommand(lastdayCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(yearCmd)
}
