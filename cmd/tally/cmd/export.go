package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/application/commands"
)

var jsonCmd = &cobra.Command{
	Use:     "json [n]",
	Aliases: []string{"export"},
	Short:   "Export per-activity daily hours for the trailing year as JSON",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := countArg(args, 1)
		if err != nil {
			return err
		}
		series, err := commands.NewExportCommand(env, count).Execute()
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(series, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jsonCmd)
}
