package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:           "nchc-wrapper",
	Short:         "NCHC 大型語言模型 API 包裝服務",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}
