package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"advisor/internal/loader"
)

var indexCmd = &cobra.Command{
	Use:   "index <файлы...>",
	Short: "Проиндексировать документы (полная пересборка индекса)",
	Long: "Читает указанные файлы (.txt, .html, .pdf), разбивает их на абзацы,\n" +
		"считает эмбеддинги и целиком заменяет содержимое векторного индекса.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		advisor, err := buildAdvisor(cfg)
		if err != nil {
			return err
		}
		docs, err := loader.New().Load(args)
		if err != nil {
			return err
		}
		if err := advisor.RebuildIndex(cmd.Context(), docs); err != nil {
			return fmt.Errorf("rebuild index: %w", err)
		}
		fmt.Printf("Проиндексировано %d абзацев\n", len(docs))
		return nil
	},
}
