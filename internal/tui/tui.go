// Package tui is an interactive inbox viewer for one disposable
// mailbox: a summary list refreshed on a poll tick, and a reading
// view that hydrates the selected message on demand.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/knvi/tempmail/internal/message"
	"github.com/knvi/tempmail/internal/tempmail"

	tea "github.com/charmbracelet/bubbletea"
)

type viewState int

const (
	viewInbox viewState = iota
	viewMessage
)

// summariesMsg carries a fresh mailbox listing.
type summariesMsg []message.Summary

// messageMsg carries one hydrated message.
type messageMsg *message.Message

// errMsg carries a failed fetch.
type errMsg struct{ err error }

// pollTickMsg asks for the next listing refresh.
type pollTickMsg struct{}

func fetchSummariesCmd(svc *tempmail.Service) tea.Cmd {
	return func() tea.Msg {
		sums, err := svc.ListSummaries(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return summariesMsg(sums)
	}
}

func readCmd(svc *tempmail.Service, sum message.Summary) tea.Cmd {
	return func() tea.Msg {
		msg, err := svc.Read(context.Background(), sum)
		if err != nil {
			return errMsg{err}
		}
		return messageMsg(msg)
	}
}

func pollTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

// Model is the bubbletea model for the inbox viewer.
type Model struct {
	svc          *tempmail.Service
	pollInterval time.Duration

	summaries []message.Summary
	selected  int
	current   *message.Message

	view          viewState
	width, height int
	status        string
	statusIsError bool
}

// NewModel returns the initial model for the given mailbox service.
func NewModel(svc *tempmail.Service, pollInterval time.Duration) Model {
	return Model{
		svc:          svc,
		pollInterval: pollInterval,
		view:         viewInbox,
		status:       "loading inbox...",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchSummariesCmd(m.svc), pollTickCmd(m.pollInterval))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case summariesMsg:
		m.summaries = msg
		if m.selected >= len(m.summaries) {
			m.selected = 0
		}
		m.setStandardStatus()

	case messageMsg:
		m.current = msg
		m.view = viewMessage
		m.setStandardStatus()

	case errMsg:
		m.status = msg.err.Error()
		m.statusIsError = true

	case pollTickMsg:
		return m, tea.Batch(fetchSummariesCmd(m.svc), pollTickCmd(m.pollInterval))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		if m.view == viewMessage {
			m.view = viewInbox
			m.current = nil
		}
	case "r":
		m.status = "refreshing..."
		m.statusIsError = false
		return m, fetchSummariesCmd(m.svc)
	case "up", "k":
		if m.view == viewInbox && m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.view == viewInbox && m.selected < len(m.summaries)-1 {
			m.selected++
		}
	case "enter":
		if m.view == viewInbox && m.selected < len(m.summaries) {
			m.status = "reading..."
			m.statusIsError = false
			return m, readCmd(m.svc, m.summaries[m.selected])
		}
	}
	return m, nil
}

func (m *Model) setStandardStatus() {
	m.status = fmt.Sprintf("%d messages | poll %v | q:quit r:refresh enter:read esc:back",
		len(m.summaries), m.pollInterval)
	m.statusIsError = false
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.svc.Identity().Address()))
	b.WriteString("\n\n")

	if m.view == viewMessage && m.current != nil {
		m.renderMessage(&b)
	} else {
		m.renderInbox(&b)
	}

	b.WriteString("\n")
	style := statusNormalStyle
	if m.statusIsError {
		style = statusErrorStyle
	}
	b.WriteString(style.Render(m.status))
	return b.String()
}

func (m Model) renderInbox(b *strings.Builder) {
	if len(m.summaries) == 0 {
		b.WriteString(secondaryTextStyle.Render("  (empty mailbox)"))
		b.WriteString("\n")
		return
	}
	for i, sum := range m.summaries {
		line := fmt.Sprintf("%s  %s  %s",
			sum.Date.Format("Jan 02 15:04"), sum.From, sum.Subject)
		if i == m.selected {
			b.WriteString(selectedListItemStyle.Render(line))
		} else {
			b.WriteString(listItemStyle.Render(line))
		}
		b.WriteString("\n")
	}
}

func (m Model) renderMessage(b *strings.Builder) {
	msg := m.current
	fmt.Fprintf(b, "%s %s\n", headerKeyStyle.Render("From:"), msg.From)
	fmt.Fprintf(b, "%s %s\n", headerKeyStyle.Render("Subject:"), msg.Subject)
	fmt.Fprintf(b, "%s %s\n", headerKeyStyle.Render("Date:"), msg.Date.Format(time.RFC1123))
	if len(msg.Attachments) > 0 {
		names := make([]string, len(msg.Attachments))
		for i, a := range msg.Attachments {
			names[i] = fmt.Sprintf("%s (%s, %d bytes)", a.Filename, a.ContentType, a.Size)
		}
		fmt.Fprintf(b, "%s %s\n", headerKeyStyle.Render("Attachments:"), strings.Join(names, ", "))
	}
	body := msg.TextBody
	if body == "" {
		body = msg.Body
	}
	b.WriteString(bodyStyle.Render(body))
	b.WriteString("\n")
}

// Run starts the inbox viewer and blocks until the user quits.
func Run(svc *tempmail.Service, pollInterval time.Duration) error {
	_, err := tea.NewProgram(NewModel(svc, pollInterval), tea.WithAltScreen()).Run()
	return err
}
