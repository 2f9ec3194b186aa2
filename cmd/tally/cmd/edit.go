package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"tally/internal/adapters/editor"
	"tally/internal/application/commands"
	"tally/internal/domain"
)

var editCmd = &cobra.Command{
	Use:     "edit [date]",
	Aliases: []string{"edittoday"},
	Short:   "Edit a day's entries in your text editor",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := env.Today
		if len(args) == 1 {
			var err error
			if date, err = domain.ParseDate(args[0]); err != nil {
				return err
			}
		}
		opener := editor.NewOpener(cfg.Editor)
		ledger, err := commands.NewEditCommand(env, opener, date).Execute()
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", ledger.Date)
		fmt.Print(out.Day(ledger, env.Now, false))
		return nil
	},
}

var copyPath bool

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print today's data file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := env.Store.Path(env.Today)
		fmt.Println(path)
		if copyPath {
			if err := clipboard.WriteAll(path); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
		}
		return nil
	},
}

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear [date]",
	Short: "Delete a day's ledger file (default: today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := env.Today
		if len(args) == 1 {
			var err error
			if date, err = domain.ParseDate(args[0]); err != nil {
				return err
			}
		}
		if !clearForce {
			yes, err := env.Prompt.Confirm(fmt.Sprintf("Delete all entries for %s?", date))
			if err != nil {
				return err
			}
			if !yes {
				fmt.Println("Kept.")
				return nil
			}
		}
		if err := commands.NewClearCommand(env, date).Execute(); err != nil {
			return err
		}
		fmt.Printf("Cleared %s\n", date)
		return nil
	},
}

func init() {
	pathCmd.Flags().BoolVar(&copyPath, "copy", false, "also copy the path to the clipboard")
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(clearCmd)
}
