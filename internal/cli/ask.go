package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"advisor/internal/loader"
)

var askCmd = &cobra.Command{
	Use:   "ask <вопрос> [файлы...]",
	Short: "Задать один вопрос и напечатать ответ",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		advisor, err := buildAdvisor(cfg)
		if err != nil {
			return err
		}
		if len(args) > 1 {
			docs, err := loader.New().Load(args[1:])
			if err != nil {
				return err
			}
			if err := advisor.RebuildIndex(cmd.Context(), docs); err != nil {
				return fmt.Errorf("rebuild index: %w", err)
			}
		}

		resp := advisor.ProcessQuery(cmd.Context(), args[0])
		fmt.Println(resp.Answer)
		fmt.Printf("\nУверенность: %.2f\n", resp.Confidence)
		for i, src := range resp.Sources {
			source := "неизвестный источник"
			if v, ok := src.Document.Metadata["source"].(string); ok {
				source = v
			}
			fmt.Printf("%d. %s (сходство %.2f)\n", i+1, source, src.Similarity())
		}
		return nil
	},
}
