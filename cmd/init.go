package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weberbot/weber/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long:  `Writes a weber.yml with defaults. Tokens are left empty; fill them in or supply them via WEBER_* environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgFile)
		}

		cfg := config.DefaultConfig()
		if err := cfg.Save(cfgFile); err != nil {
			return err
		}

		fmt.Printf("wrote %s\n", cfgFile)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
