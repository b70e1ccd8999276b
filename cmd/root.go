package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "weber",
	Short: "Messenger travel-assistant webhook bridge",
	Long: `Weber bridges a Messenger page to travel data: it receives webhook
events, routes them by intent (commands, postback codes, or NLU small
talk), looks up businesses and weather, and sends formatted replies
back through the platform's Send API.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "weber.yml", "config file path")
}
