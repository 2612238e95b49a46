package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sst/growingtext/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the growtext configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the default settings",
	Long: `init writes the default settings as TOML to path, or to
$HOME/.growtext.toml when no path is given. An existing file is never
overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}

		if err := config.SaveConfig(path, config.Default()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
