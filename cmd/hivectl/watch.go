package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/osse101/BuzzHive_Go/internal/client"
	"github.com/osse101/BuzzHive_Go/internal/domain"
)

const maxWatchNotes = 5

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(12)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("214")).Padding(0, 1)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

func newWatchCmd(opts *options) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch <hive-id>",
		Short: "Live dashboard for a hive",
		Long: `Poll a hive and show its holdings live. Keys: b bonus, u upgrade,
w buy one worker bee, s sell all honey, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newWatchModel(cmd.Context(), opts.client(), args[0], interval)
			_, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Second, "Refresh interval")
	return cmd
}

type (
	tickMsg   struct{}
	stateMsg  domain.HiveState
	actionMsg client.ActionResponse
	errMsg    struct{ err error }
)

// hiveAPI is the part of the API client the dashboard drives
type hiveAPI interface {
	GetHive(ctx context.Context, hiveID string) (domain.Hive, error)
	Bonus(ctx context.Context, hiveID string) (client.ActionResponse, error)
	Upgrade(ctx context.Context, hiveID string) (client.ActionResponse, error)
	AddWorkers(ctx context.Context, hiveID string, count int) (client.ActionResponse, error)
	Sell(ctx context.Context, hiveID, resource string, amount float64) (client.ActionResponse, error)
}

type watchModel struct {
	ctx      context.Context
	api      hiveAPI
	hiveID   string
	interval time.Duration

	state  domain.HiveState
	loaded bool
	notes  []domain.Notification
	err    error
}

func newWatchModel(ctx context.Context, api hiveAPI, hiveID string, interval time.Duration) watchModel {
	if ctx == nil {
		ctx = context.Background()
	}
	return watchModel{ctx: ctx, api: api, hiveID: hiveID, interval: interval}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.tick())
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m watchModel) fetch() tea.Cmd {
	return func() tea.Msg {
		h, err := m.api.GetHive(m.ctx, m.hiveID)
		if err != nil {
			return errMsg{err}
		}
		return stateMsg(h.State)
	}
}

func (m watchModel) act(fn func() (client.ActionResponse, error)) tea.Cmd {
	return func() tea.Msg {
		resp, err := fn()
		if err != nil {
			return errMsg{err}
		}
		return actionMsg(resp)
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "b":
			return m, m.act(func() (client.ActionResponse, error) { return m.api.Bonus(m.ctx, m.hiveID) })
		case "u":
			return m, m.act(func() (client.ActionResponse, error) { return m.api.Upgrade(m.ctx, m.hiveID) })
		case "w":
			return m, m.act(func() (client.ActionResponse, error) { return m.api.AddWorkers(m.ctx, m.hiveID, 1) })
		case "s":
			amount := float64(int64(m.state.Honey*100)) / 100
			return m, m.act(func() (client.ActionResponse, error) {
				return m.api.Sell(m.ctx, m.hiveID, string(domain.ResourceHoney), amount)
			})
		}

	case tickMsg:
		return m, tea.Batch(m.fetch(), m.tick())

	case stateMsg:
		m.state = domain.HiveState(msg)
		m.loaded = true
		m.err = nil

	case actionMsg:
		m.state = msg.State
		m.loaded = true
		m.err = nil
		m.notes = append(m.notes, msg.Notifications...)
		if len(m.notes) > maxWatchNotes {
			m.notes = m.notes[len(m.notes)-maxWatchNotes:]
		}

	case errMsg:
		m.err = msg.err
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Hive "+m.hiveID) + "\n")

	if !m.loaded {
		b.WriteString("Loading...\n")
	} else {
		s := m.state
		line := func(label, value string) {
			b.WriteString(labelStyle.Render(label) + value + "\n")
		}
		line("Honey", fmt.Sprintf("%.2f  (+%.2f/h)", s.Honey, s.HoneyPerHour))
		line("Pollen", fmt.Sprintf("%.0f  (+%.2f/h)", s.Pollen, s.PollenPerHour))
		line("Propolis", fmt.Sprintf("%.0f  (+%.2f/h)", s.Propolis, s.PropolisPerHour))
		line("BeeCoins", fmt.Sprintf("%.0f", s.Currency))
		line("Level", fmt.Sprintf("%d", s.HiveLevel))
		line("Bees", fmt.Sprintf("%d/%d", s.WorkerBeeCount, s.MaxWorkerBeeCapacity))
		line("Queen", queenText(s))
		line("Prices", fmt.Sprintf("honey %.0f  pollen %.0f  propolis %.0f", s.Prices.Honey, s.Prices.Pollen, s.Prices.Propolis))
	}

	out := boxStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"

	for _, n := range m.notes {
		style := okStyle
		if n.Variant == domain.VariantDestructive {
			style = errStyle
		}
		out += style.Render(n.Title) + " " + n.Description + "\n"
	}
	if m.err != nil {
		out += errStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	return out + helpStyle.Render("b bonus • u upgrade • w +1 bee • s sell honey • q quit") + "\n"
}
