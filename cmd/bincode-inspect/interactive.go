package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bincode "github.com/wippyai/bincode"
	"github.com/wippyai/bincode/internal/corpus"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectEntry modelState = iota
	stateInputHex
	stateShowResult
)

type inspectModel struct {
	err      error
	entries  []corpus.Entry
	configs  []string
	input    textinput.Model
	result   string
	selected int
	cfgIdx   int
	state    modelState
}

func newInspectModel() *inspectModel {
	names := make([]string, 0, len(corpus.Configs()))
	for name := range corpus.Configs() {
		names = append(names, name)
	}
	sort.Strings(names)

	ti := textinput.New()
	ti.Placeholder = "hex bytes, e.g. 05416c6963651e01"
	ti.CharLimit = 4096
	ti.Width = 64

	return &inspectModel{
		entries: corpus.Entries(),
		configs: names,
		input:   ti,
		state:   stateSelectEntry,
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		if m.state == stateSelectEntry || keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.state {
	case stateSelectEntry:
		switch keyMsg.String() {
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.entries)-1 {
				m.selected++
			}
		case "c":
			m.cfgIdx = (m.cfgIdx + 1) % len(m.configs)
		case "enter":
			m.state = stateInputHex
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		case "e":
			// Encode the selected entry's sample value instead of
			// decoding pasted bytes.
			m.showEncoded()
			m.state = stateShowResult
		}

	case stateInputHex:
		switch keyMsg.String() {
		case "esc":
			m.state = stateSelectEntry
		case "enter":
			m.decodeInput()
			m.state = stateShowResult
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	case stateShowResult:
		switch keyMsg.String() {
		case "esc", "enter", "q":
			m.err = nil
			m.result = ""
			m.state = stateSelectEntry
		}
	}

	return m, nil
}

func (m *inspectModel) config() bincode.Config {
	return corpus.Configs()[m.configs[m.cfgIdx]]
}

func (m *inspectModel) showEncoded() {
	entry := m.entries[m.selected]
	buf := make([]byte, 1<<20)
	end, err := bincode.Encode(entry.Desc, entry.Value, buf, 0, m.config())
	if err != nil {
		m.err = err
		return
	}
	m.result = fmt.Sprintf("%d bytes\n%s\n\n%s",
		end, hex.EncodeToString(buf[:end]), renderValue(entry.Value, 0))
}

func (m *inspectModel) decodeInput() {
	entry := m.entries[m.selected]
	data, err := hex.DecodeString(strings.TrimSpace(m.input.Value()))
	if err != nil {
		m.err = fmt.Errorf("bad hex: %w", err)
		return
	}
	value, end, err := bincode.Decode(entry.Desc, data, 0, m.config())
	if err != nil {
		m.err = err
		return
	}
	m.result = fmt.Sprintf("consumed %d of %d bytes\n\n%s",
		end, len(data), renderValue(value, 0))
}

func (m *inspectModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("bincode inspect"))
	b.WriteString("  ")
	b.WriteString(descStyle.Render("config: " + m.configs[m.cfgIdx]))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectEntry:
		for i, entry := range m.entries {
			line := fmt.Sprintf("%-16s %s", entry.Name, entry.Desc.String())
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteByte('\n')
		}
		b.WriteString(helpStyle.Render("\n↑/↓ select · enter decode hex · e encode sample · c cycle config · q quit"))

	case stateInputHex:
		entry := m.entries[m.selected]
		b.WriteString(descStyle.Render(entry.Name+" : "+entry.Desc.String()) + "\n\n")
		b.WriteString(m.input.View())
		b.WriteString(helpStyle.Render("\n\nenter decode · esc back"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(m.err.Error()))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString(helpStyle.Render("\n\nenter/esc back"))
	}

	return b.String()
}

func runInteractive() error {
	_, err := tea.NewProgram(newInspectModel()).Run()
	return err
}

// renderValue prints a decoded value as an indented tree.
func renderValue(v any, depth int) string {
	pad := strings.Repeat("  ", depth)
	switch val := v.(type) {
	case nil:
		return pad + "none"
	case bincode.Variant:
		if val.Payload == nil {
			return pad + val.Name
		}
		return pad + val.Name + "\n" + renderValue(val.Payload, depth+1)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for i, k := range keys {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(pad + k + ":")
			inner := renderValue(val[k], depth+1)
			if strings.ContainsRune(inner, '\n') {
				b.WriteString("\n" + inner)
			} else {
				b.WriteString(" " + strings.TrimLeft(inner, " "))
			}
		}
		return b.String()
	case []any:
		if len(val) == 0 {
			return pad + "[]"
		}
		var b strings.Builder
		for i, item := range val {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(renderValue(item, depth))
		}
		return b.String()
	case []byte:
		return pad + hex.EncodeToString(val)
	case *big.Int:
		return pad + val.String()
	case string:
		return pad + fmt.Sprintf("%q", val)
	default:
		if bincode.IsNone(v) {
			return pad + "none"
		}
		return pad + fmt.Sprintf("%v", val)
	}
}
