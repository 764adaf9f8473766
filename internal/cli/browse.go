package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/codemap/pkg/diagram"
	"github.com/matzehuels/codemap/pkg/integrations/github"
	"github.com/matzehuels/codemap/pkg/tree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// previewHeight is the number of diagram lines shown below the tree.
const previewHeight = 10

// browseCommand creates the interactive tree browser command.
func (c *CLI) browseCommand() *cobra.Command {
	opts := mapOpts{mode: "mindmap", timeout: defaultFetchTimeout}

	cmd := &cobra.Command{
		Use:   "browse <owner/repo>",
		Short: "Browse a repository tree interactively",
		Long: `Browse a repository file tree in an interactive terminal UI.

Navigate with the arrow keys, expand or collapse directories with enter,
and switch the previewed diagram dialect with m (mindmap) or g (graph).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := github.ParseRepoRef(args[0])
			if err != nil {
				return err
			}
			src, err := c.newGitHubSource(&opts)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(opts.timeout)*time.Second)
			defer cancel()

			sp := newSpinner(ctx, fmt.Sprintf("Fetching tree for %s/%s", owner, repo))
			sp.Start()
			root, err := src.Tree(ctx, owner, repo)
			sp.Stop()
			if err != nil {
				return err
			}

			model := NewBrowseModel(root)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the tree cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached trees")
	cmd.Flags().IntVar(&opts.timeout, "timeout", opts.timeout, "fetch timeout in seconds")

	return cmd
}

// browseRow is one visible line in the tree listing.
type browseRow struct {
	node  *tree.Node
	depth int
}

// BrowseModel is the bubbletea model for the tree browser.
type BrowseModel struct {
	Root     *tree.Node
	Mode     diagram.Mode
	Cursor   int
	Height   int
	Offset   int
	expanded map[*tree.Node]bool
	rows     []browseRow
	preview  []string
}

// NewBrowseModel creates a browser with the root expanded.
func NewBrowseModel(root *tree.Node) BrowseModel {
	m := BrowseModel{
		Root:     root,
		Mode:     diagram.ModeMindmap,
		Height:   15,
		expanded: map[*tree.Node]bool{root: true},
	}
	m.rebuild()
	m.refreshPreview()
	return m
}

// rebuild flattens the expanded portion of the tree into visible rows.
func (m *BrowseModel) rebuild() {
	m.rows = m.rows[:0]
	m.appendRows(m.Root, 0)
	if m.Cursor >= len(m.rows) {
		m.Cursor = len(m.rows) - 1
	}
}

func (m *BrowseModel) appendRows(n *tree.Node, depth int) {
	m.rows = append(m.rows, browseRow{node: n, depth: depth})
	if !m.expanded[n] {
		return
	}
	for _, child := range n.Children {
		m.appendRows(child, depth+1)
	}
}

func (m *BrowseModel) refreshPreview() {
	text, err := diagram.Generate(m.Root, m.Mode)
	if err != nil {
		m.preview = []string{err.Error()}
		return
	}
	m.preview = strings.Split(strings.TrimRight(text, "\n"), "\n")
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			n := m.rows[m.Cursor].node
			if n.IsDir() {
				m.expanded[n] = !m.expanded[n]
				m.rebuild()
			}
		case "m":
			m.Mode = diagram.ModeMindmap
			m.refreshPreview()
		case "g":
			m.Mode = diagram.ModeGraph
			m.refreshPreview()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - previewHeight - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse " + m.Root.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand/collapse  m/g dialect  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.Offset; i < end; i++ {
		row := m.rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		marker := "  "
		if row.node.IsDir() {
			marker = "+ "
			if m.expanded[row.node] {
				marker = "- "
			}
		}

		line := cursor + strings.Repeat("  ", row.depth) + marker + row.node.Name
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case row.node.IsDir():
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("preview (%s)", m.Mode)))
	b.WriteString("\n")
	for i, line := range m.preview {
		if i >= previewHeight {
			b.WriteString(listDimStyle.Render("  …"))
			b.WriteString("\n")
			break
		}
		b.WriteString(listDimStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))

	return b.String()
}
