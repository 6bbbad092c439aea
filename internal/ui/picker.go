package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lorawan-tools/gwprov/internal/wifi"
)

// pickerKeyMap defines key bindings for the network picker
type pickerKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	Open    key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.All, k.Open, k.Confirm, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.All, k.Open, k.Confirm, k.Quit},
	}
}

// networkItem wraps a scanned network for use with bubbles/list
type networkItem struct {
	network  wifi.Network
	selected bool
}

func (n networkItem) FilterValue() string {
	return n.network.SSID
}

func (n networkItem) Title() string {
	marker := "[ ]"
	if n.selected {
		marker = "[x]"
	}
	return fmt.Sprintf("%s %s", marker, n.network.SSID)
}

func (n networkItem) Description() string {
	security := n.network.Security
	if n.network.Open() {
		security = OpenSecurityStyle.Render(security)
	} else {
		security = SecuredSecurityStyle.Render(security)
	}
	return fmt.Sprintf("Signal: %s • Security: %s", n.network.Signal, security)
}

// PickerModel is an interactive multi-select over scanned gateway
// networks. An alternative to the line-based selection prompt.
type PickerModel struct {
	networks  list.Model
	keys      pickerKeyMap
	help      help.Model
	confirmed bool
	width     int
}

// NewPickerModel builds the picker over the scanned networks, in scan
// order.
func NewPickerModel(networks []wifi.Network) PickerModel {
	items := make([]list.Item, len(networks))
	for i, network := range networks {
		items[i] = networkItem{network: network}
	}

	keys := pickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "select open only"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	networkList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	networkList.Title = "Gateway Networks"
	networkList.SetShowStatusBar(false)
	networkList.SetFilteringEnabled(true)
	networkList.Styles.Title = TitleStyle

	return PickerModel{
		networks: networkList,
		keys:     keys,
		help:     help.New(),
	}
}

// Init implements tea.Model
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.networks.SetWidth(msg.Width - 4)
		m.networks.SetHeight(msg.Height - 6)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Confirm):
			m.confirmed = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			m.toggleCurrent()
			return m, nil

		case key.Matches(msg, m.keys.All):
			m.selectWhere(func(wifi.Network) bool { return true })
			return m, nil

		case key.Matches(msg, m.keys.Open):
			m.selectWhere(wifi.Network.Open)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.networks, cmd = m.networks.Update(msg)
	return m, cmd
}

func (m *PickerModel) toggleCurrent() {
	index := m.networks.Index()
	items := m.networks.Items()
	if index < 0 || index >= len(items) {
		return
	}
	item := items[index].(networkItem)
	item.selected = !item.selected
	m.networks.SetItem(index, item)
}

func (m *PickerModel) selectWhere(match func(wifi.Network) bool) {
	items := m.networks.Items()
	for i, raw := range items {
		item := raw.(networkItem)
		item.selected = match(item.network)
		m.networks.SetItem(i, item)
	}
}

// View implements tea.Model
func (m PickerModel) View() string {
	return m.networks.View() + "\n" + m.help.View(m.keys)
}

// Choices returns the selected SSIDs in scan order. Empty when the
// picker was quit without confirming.
func (m PickerModel) Choices() []string {
	if !m.confirmed {
		return nil
	}
	var ssids []string
	for _, raw := range m.networks.Items() {
		item := raw.(networkItem)
		if item.selected {
			ssids = append(ssids, item.network.SSID)
		}
	}
	return ssids
}

// RunPicker runs the interactive picker and returns the chosen SSIDs.
func RunPicker(networks []wifi.Network) ([]string, error) {
	program := tea.NewProgram(NewPickerModel(networks))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("network picker failed: %w", err)
	}
	model, ok := final.(PickerModel)
	if !ok {
		return nil, fmt.Errorf("network picker returned unexpected model")
	}
	return model.Choices(), nil
}
