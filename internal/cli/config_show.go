package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage kyuko-api configuration",
	Long: `Manage kyuko-api configuration.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (KYUKO_*)
3. Config file (~/.kyuko-api/config.yaml or /etc/kyuko-api/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Display the configuration after defaults, config file and environment variables have been merged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		fmt.Print(string(yamlData))

		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Credentials are read from the environment only:")
		fmt.Fprintln(os.Stderr, "  TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID")
		fmt.Fprintln(os.Stderr, "  TWITTER_API_KEY, TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN, TWITTER_ACCESS_SECRET")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}
