// Package cli wires the advisor components and exposes the cobra commands.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"advisor/internal/config"
	"advisor/internal/logger"
)

var (
	cfgPath string
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "advisor — вопросно-ответная система по стипендиальным документам",
	Long: "advisor отвечает на вопросы о стипендиях, находя похожие фрагменты\n" +
		"в проиндексированных документах и извлекая из них ответ.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger.SetVerbose(verbose)

		var err error
		if cfgPath == "" {
			var path string
			cfg, path, err = config.LoadDefault()
			if err == nil {
				logger.Debug("using config %s", path)
			}
		} else {
			cfg, err = config.Load(cfgPath)
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "путь к YAML-конфигурации (по умолчанию ~/.config/advisor/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "подробный вывод этапов пайплайна")
	rootCmd.AddCommand(indexCmd, chatCmd, askCmd)
}
