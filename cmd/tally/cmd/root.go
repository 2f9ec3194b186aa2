package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tally/internal/adapters/filesystem"
	"tally/internal/adapters/gitlog"
	"tally/internal/adapters/prompt"
	"tally/internal/application"
	"tally/internal/application/commands"
	"tally/internal/config"
	"tally/internal/render"
)

var (
	configPath string
	cfg        *config.Config
	env        application.Env
	out        *render.Renderer
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Personal slot-based time accounting",
	Long: `tally records how each day was spent as a sequence of timed entries,
each tagged with one configured activity, and reports aggregate
statistics over arbitrary date ranges.

Run with no arguments to fill the gap since the last recorded entry.

Note: tally assumes a single user and a single running invocation;
concurrent runs against the same data directory may race.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return initEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewFillCommand(env).Execute()
		if err != nil {
			return err
		}
		printFillResult(result)
		return nil
	},
}

func initEnv() error {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	var err error
	cfg, err = config.Load(path)
	if errors.Is(err, config.ErrMissing) {
		if werr := config.WriteExample(path); werr != nil {
			return werr
		}
		fmt.Printf("Created a new config file at %s\n", path)
		fmt.Println("Please edit it (add your activities) and run tally again.")
		os.Exit(0)
	}
	if err != nil {
		return err
	}

	now := time.Now()
	store := filesystem.NewRepository(cfg.DataDir)
	env = application.Env{
		Store:   store,
		Prompt:  prompt.New(cfg.ActivitySet()),
		Acts:    cfg.ActivitySet(),
		Quantum: cfg.Quantum(),
		Target:  cfg.ProductiveTargetHours,
		Horizon: cfg.LookbackDays,
		Now:     now,
		Today:   cfg.Today(now),
	}
	if cfg.GitReposDir != "" {
		env.Feed = gitlog.New(cfg.Git, cfg.GitReposDir)
	}
	out = render.New(env.Acts, env.Quantum, env.Target, cfg.DayStartHour)
	return nil
}

func printFillResult(result *application.FillResult) {
	switch {
	case result.UpToDate:
		fmt.Println("Up to date, nothing to record.")
	case result.Cancelled && len(result.Added) == 0:
		fmt.Println("Cancelled, nothing recorded.")
	default:
		for _, e := range result.Added {
			fmt.Println(out.Entry(e))
		}
		if !result.Remaining.IsZero() {
			fmt.Printf("Still open: %s-%s\n",
				result.Remaining.Start.Format("15:04"), result.Remaining.End.Format("15:04"))
		}
	}
}

// Execute runs the root command. A leading repeat count ("tally 3 week") is
// rewritten to the trailing form cobra can parse.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file")
	cobra.OnInitialize()
	rootCmd.SetArgs(rewriteLeadingCount(os.Args[1:]))
}

// rewriteLeadingCount turns {"3", "week"} into {"week", "3"}.
func rewriteLeadingCount(args []string) []string {
	if len(args) < 2 {
		return args
	}
	if _, err := strconv.Atoi(args[0]); err != nil {
		return args
	}
	out := make([]string, 0, len(args))
	out = append(out, args[1], args[0])
	out = append(out, args[2:]...)
	return out
}
