package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"advisor/internal/domain"
)

// AdvisorPort is the TUI-facing subset of the advisor service.
type AdvisorPort interface {
	ProcessQuery(ctx context.Context, text string) *domain.Response
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	advisor  AdvisorPort
	input    textinput.Model
	viewport viewport.Model
	response *domain.Response
	status   string
	ready    bool
}

// New creates a new TUI model instance.
func New(advisor AdvisorPort, corpusInfo string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Задайте вопрос о стипендиях и нажмите Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		advisor:  advisor,
		input:    ti,
		viewport: vp,
		status:   corpusInfo,
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := answerBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + qh + 1 // header + status + input box + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderResponse())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.response = m.advisor.ProcessQuery(context.Background(), q)
				m.status = fmt.Sprintf("Ответ на %q", q)
				m.input.SetValue("")
				m.viewport.SetContent(m.renderResponse())
				m.viewport.GotoTop()
				return m, nil
			}
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and the current answer.
func (m Model) View() string {
	if !m.ready {
		return "Загрузка..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Умный советник по стипендиям")
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	answer := answerBoxStyle.Render(m.viewport.View())
	return header + "\n" + answer + "\n" + input + "\n" + status
}

func (m Model) renderResponse() string {
	if m.response == nil {
		return "Пока нет ответов. Задайте вопрос, например: «Что такое социальная стипендия?»"
	}
	var sb strings.Builder
	sb.WriteString(m.response.Answer)
	sb.WriteString("\n\n")
	sb.WriteString(confidenceBadge(m.response.Confidence))
	if len(m.response.Sources) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(sourceHeaderStyle.Render("Источники:"))
		for i, src := range m.response.Sources {
			source := "неизвестный источник"
			if v, ok := src.Document.Metadata["source"].(string); ok {
				source = v
			}
			sb.WriteString(fmt.Sprintf("\n%d. %s (сходство %.2f)", i+1, source, src.Similarity()))
		}
	}
	return sb.String()
}

// confidenceBadge mirrors the thresholds the chat front-end shows users:
// high above 0.7, medium above 0.4, low otherwise.
func confidenceBadge(confidence float64) string {
	switch {
	case confidence > 0.7:
		return "✅ Уверенность в ответе: Высокая"
	case confidence > 0.4:
		return "⚠️ Уверенность в ответе: Средняя"
	default:
		return "❌ Уверенность в ответе: Низкая"
	}
}

var (
	answerBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	sourceHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
