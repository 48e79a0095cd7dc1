package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"advisor/internal/loader"
	"advisor/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat [файлы...]",
	Short: "Интерактивный чат с советником",
	Long: "Запускает терминальный чат. Если указаны файлы, индекс сначала\n" +
		"пересобирается из них; без файлов используется уже существующий\n" +
		"индекс (например, в Qdrant).",
	RunE: func(cmd *cobra.Command, args []string) error {
		advisor, err := buildAdvisor(cfg)
		if err != nil {
			return err
		}
		corpusInfo := "Индекс загружен. Задайте вопрос."
		if len(args) > 0 {
			docs, err := loader.New().Load(args)
			if err != nil {
				return err
			}
			if err := advisor.RebuildIndex(cmd.Context(), docs); err != nil {
				return fmt.Errorf("rebuild index: %w", err)
			}
			corpusInfo = fmt.Sprintf("Проиндексировано %d абзацев. Задайте вопрос.", len(docs))
		}
		model := tui.New(advisor, corpusInfo)
		_, err = tea.NewProgram(model).Run()
		return err
	},
}
