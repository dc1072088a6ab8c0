package cmd

import (
	"fmt"

	"github.com/rogeecn/nchc-wrapper/internal/upstream"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "列出可用模型",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, _ []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tDESCRIPTION")
	for _, model := range upstream.ListModels() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", model.ID, model.Name, model.Description)
	}
	return nil
}
