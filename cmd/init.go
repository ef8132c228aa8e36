package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OscarLawrence/UCP/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ucp configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure ucp for your project and generates a .ucp.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
