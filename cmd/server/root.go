package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/proshopcms/internal/config"
)

// newRootCmd 构造命令树。配置在子命令执行前统一加载。
func newRootCmd() *cobra.Command {
	var cfg config.AppConfig
	var configFile string

	root := &cobra.Command{
		Use:          "proshop",
		Short:        "Daikin Proshop content service",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if configFile != "" {
				if err := os.Setenv("CONFIG_FILE", configFile); err != nil {
					return err
				}
			}
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file (overrides CONFIG_FILE)")

	root.AddCommand(
		newServeCmd(&cfg),
		newMigrateCmd(&cfg),
		newInitUserCmd(&cfg),
	)
	return root
}
