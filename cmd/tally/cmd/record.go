package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/application/commands"
)

var splitCmd = &cobra.Command{
	Use:   "split [n]",
	Short: "Split the open gap into n intervals (default 2), one prompt each",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := countArg(args, 2)
		if err != nil {
			return err
		}
		result, err := commands.NewSplitCommand(env, n).Execute()
		if err != nil {
			return err
		}
		printFillResult(result)
		return nil
	},
}

var untilCmd = &cobra.Command{
	Use:   "until",
	Short: "Fill the gap up to a chosen time, leaving the rest open",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewUntilCommand(env).Execute()
		if err != nil {
			return err
		}
		printFillResult(result)
		return nil
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Record an activity for an explicit start and end time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewSpanCommand(env).Execute()
		if err != nil {
			return err
		}
		if result.Cancelled {
			fmt.Println("Cancelled, nothing recorded.")
			return nil
		}
		for _, e := range result.Added {
			fmt.Println(out.Entry(e))
		}
		return nil
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Add a comment to the last recorded entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := commands.NewCommentCommand(env).Execute()
		if err != nil {
			return err
		}
		fmt.Println(out.Entry(entry))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(untilCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(commentCmd)
}
