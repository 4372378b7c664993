package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmcrae/zonectl/internal/discovery"
)

// Messages for async operations
type scanCompleteMsg struct {
	players []*discovery.ZonePlayer
	err     error
}

// playerItem wraps a ZonePlayer for use with bubbles/list
type playerItem struct {
	player *discovery.ZonePlayer
}

// FilterValue implements list.Item; players filter by UID or address
func (p playerItem) FilterValue() string {
	return p.player.UID + " " + p.player.IP
}

// Title returns the player identity for list display
func (p playerItem) Title() string {
	if p.player.UID != "" {
		return p.player.UID
	}
	return p.player.IP
}

// Description returns player details for list display
func (p playerItem) Description() string {
	return fmt.Sprintf("%s:%d", p.player.IP, p.player.Port)
}

// PickerModel is the interactive player picker: it scans the network while
// showing a spinner, then lists the discovered players for selection.
type PickerModel struct {
	manager  *discovery.Manager
	scanning bool
	err      error
	selected *discovery.ZonePlayer

	playerList list.Model
	spinner    spinner.Model
	width      int
	height     int
}

// NewPicker creates a picker backed by the given discovery manager
func NewPicker(manager *discovery.Manager) PickerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	delegate := list.NewDefaultDelegate()
	playerList := list.New([]list.Item{}, delegate, 0, 0)
	playerList.Title = "Discovered Players"
	playerList.SetShowStatusBar(false)
	playerList.SetFilteringEnabled(true)
	playerList.Styles.Title = titleStyle

	return PickerModel{
		manager:    manager,
		scanning:   true,
		playerList: playerList,
		spinner:    s,
	}
}

// scanCmd runs discovery and reports the result as a message
func (m PickerModel) scanCmd() tea.Cmd {
	return func() tea.Msg {
		players, err := m.manager.Players(context.Background())
		return scanCompleteMsg{players: players, err: err}
	}
}

// Init starts scanning immediately
func (m PickerModel) Init() tea.Cmd {
	return tea.Batch(m.scanCmd(), m.spinner.Tick)
}

// Update handles messages and updates the model
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "enter":
			if item, ok := m.playerList.SelectedItem().(playerItem); ok {
				m.selected = item.player
				return m, tea.Quit
			}

		case "r":
			if !m.scanning {
				m.scanning = true
				m.err = nil
				m.playerList.SetItems([]list.Item{})
				m.manager.Reset()
				return m, tea.Batch(m.scanCmd(), m.spinner.Tick)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.playerList.SetWidth(msg.Width - 4)
		m.playerList.SetHeight(msg.Height - 6)

	case scanCompleteMsg:
		m.scanning = false
		m.err = msg.err
		items := make([]list.Item, len(msg.players))
		for i, player := range msg.players {
			items[i] = playerItem{player: player}
		}
		m.playerList.SetItems(items)

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if !m.scanning {
		m.playerList, cmd = m.playerList.Update(msg)
	}

	return m, cmd
}

// View renders the picker screen
func (m PickerModel) View() string {
	if m.scanning {
		return fmt.Sprintf("\n  %s Searching for Sonos players...\n\n%s",
			m.spinner.View(),
			helpStyle.Render("  q quit"))
	}

	if m.err != nil {
		return fmt.Sprintf("\n  %s\n\n%s",
			errorStyle.Render(fmt.Sprintf("Discovery failed: %v", m.err)),
			helpStyle.Render("  r retry • q quit"))
	}

	if len(m.playerList.Items()) == 0 {
		return fmt.Sprintf("\n  %s\n\n%s",
			warningStyle.Render("No players found on your network"),
			helpStyle.Render("  r rescan • q quit"))
	}

	return "\n" + m.playerList.View() + "\n" +
		helpStyle.Render("  enter select • r rescan • q quit")
}

// Selected returns the player chosen by the user, or nil if none
func (m PickerModel) Selected() *discovery.ZonePlayer {
	return m.selected
}

// Run launches the picker and blocks until the user selects a player or
// quits. Returns nil when no player was selected.
func Run(manager *discovery.Manager) (*discovery.ZonePlayer, error) {
	program := tea.NewProgram(NewPicker(manager), tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("picker failed: %w", err)
	}

	model, ok := final.(PickerModel)
	if !ok {
		return nil, nil
	}
	return model.Selected(), nil
}
