package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"typegen/internal/pack"
	"typegen/internal/program"
	"typegen/internal/resolve"
	"typegen/internal/typewalk"
)

var (
	inspectTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1)

	inspectHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#767676"))

	inspectBodyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#04B575"))
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Browse fixture scenarios and their compiled programs interactively",
	Long: `inspect opens a split view listing every fixture scenario in
pkg/hostapi/fixture; selecting one compiles it and shows its disassembly and
encoded wire string on the right.`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

type scenarioItem struct {
	name string
}

func (s scenarioItem) Title() string       { return s.name }
func (s scenarioItem) Description() string { return "fixture scenario" }
func (s scenarioItem) FilterValue() string { return s.name }

type inspectModel struct {
	list   list.Model
	body   string
	width  int
	height int
}

func newInspectModel() inspectModel {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]list.Item, len(names))
	for i, name := range names {
		items[i] = scenarioItem{name: name}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "typegen scenarios"
	l.Styles.Title = inspectTitleStyle

	m := inspectModel{list: l}
	if len(names) > 0 {
		m.body = compileScenarioBody(names[0])
	}
	return m
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width/3, msg.Height-2)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(scenarioItem); ok {
				m.body = compileScenarioBody(item.name)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if item, ok := m.list.SelectedItem().(scenarioItem); ok {
		m.body = compileScenarioBody(item.name)
	}
	return m, cmd
}

func (m inspectModel) View() string {
	left := m.list.View()
	right := inspectBodyStyle.Render(m.body)
	help := inspectHelpStyle.Render("\n↑/↓ select · enter refresh · q quit")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right) + help
}

func compileScenarioBody(name string) string {
	build, ok := scenarios[name]
	if !ok {
		return "unknown scenario"
	}
	host, sf := build()
	decl := lastDeclaration(sf)
	if decl == nil {
		return "scenario has no top-level declaration to walk"
	}

	prog := program.New()
	resolver := resolve.New(host, host)
	walker := typewalk.New(prog, resolver, sf.FileName)
	walker.WalkDeclarationBody(decl)
	prog.Finalize()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", sf.FileName)
	pack.NewDisassembler(prog.Pack, &sb).Disassemble()
	fmt.Fprintf(&sb, "\nwire: %s\n", prog.Pack.Encode())
	return sb.String()
}

func runInspect(_ *cobra.Command, _ []string) error {
	p := tea.NewProgram(newInspectModel())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	return nil
}
