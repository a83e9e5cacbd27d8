package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/graphcore/corestore/pkg/catalog"
	"github.com/graphcore/corestore/pkg/csr"
	"github.com/graphcore/corestore/pkg/graphstore"
	"github.com/graphcore/corestore/pkg/idmap"
	"github.com/graphcore/corestore/pkg/labelinfo"
	"github.com/graphcore/corestore/pkg/logging"
	"github.com/graphcore/corestore/pkg/memest"
	"github.com/graphcore/corestore/pkg/metrics"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	treeBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FFFF00")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

type view int

const (
	listView view = iota
	detailView
)

type keyMap struct {
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding
	Up    key.Binding
	Down  key.Binding
}

var keys = keyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "inspect graph"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back to list"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Back, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Enter, k.Back, k.Quit}}
}

type model struct {
	cat     *catalog.Catalog
	entries []*catalog.CatalogEntry
	table   table.Model
	help    help.Model
	view    view
	errMsg  string
}

func newModel(cat *catalog.Catalog) model {
	entries := cat.GraphStores(nil)

	columns := []table.Column{
		{Title: "User", Width: 12},
		{Title: "Database", Width: 12},
		{Title: "Graph", Width: 16},
		{Title: "Nodes", Width: 10},
		{Title: "Memory", Width: 12},
	}

	rows := make([]table.Row, 0, len(entries))
	for _, entry := range entries {
		nodes := "-"
		if counter, ok := entry.GraphStore.(interface{ NodeCount() int64 }); ok {
			nodes = fmt.Sprintf("%d", counter.NodeCount())
		}
		rows = append(rows, table.Row{
			entry.Config.Username,
			entry.Config.DatabaseId,
			entry.Config.GraphName,
			nodes,
			formatBytes(entry.GraphStore.MemoryUsageBytes()),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	return model{cat: cat, entries: entries, table: t, help: help.New()}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Enter):
			if m.view == listView && len(m.entries) > 0 {
				m.view = detailView
			}
			return m, nil
		case key.Matches(msg, keys.Back):
			m.view = listView
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.view == listView {
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("corestore graph catalog"))
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	switch m.view {
	case listView:
		b.WriteString(m.table.View())
	case detailView:
		b.WriteString(m.detailView())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(keys)))
	return b.String()
}

func (m model) detailView() string {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return errorStyle.Render("no graph selected")
	}
	entry := m.entries[idx]

	stats := fmt.Sprintf("graph:    %s\nuser:     %s\ndatabase: %s\nmemory:   %s",
		entry.Config.GraphName,
		entry.Config.Username,
		entry.Config.DatabaseId,
		formatBytes(entry.GraphStore.MemoryUsageBytes()),
	)
	if dist, ok := entry.GetDegreeDistribution(); ok {
		stats += fmt.Sprintf("\n\ndegrees:  min %d / max %d / mean %.2f\n          p50 %.0f / p90 %.0f / p99 %.0f",
			dist.Min, dist.Max, dist.Mean, dist.P50, dist.P90, dist.P99)
	}

	tree := estimationTreeFor(entry)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		statsBoxStyle.Render(stats),
		treeBoxStyle.Render(tree),
	)
}

// estimationTreeFor renders the memory-estimation tree for an entry's
// dimensions, so the detail pane shows predicted alongside actual cost.
func estimationTreeFor(entry *catalog.CatalogEntry) string {
	store, ok := entry.GraphStore.(*graphstore.CSRGraphStore)
	if !ok {
		return "no estimation available"
	}

	dims := memest.GraphDimensions{
		NodeCount:             store.NodeCount(),
		RelationshipCount:     store.RelationshipCount(),
		RelationshipTypeCount: len(store.Schema().SupportedTypes()),
		LabelCount:            1,
	}
	estimation := memest.GraphStoreEstimation(
		map[string]bool{"REL": true},
		map[string]bool{},
		map[string]int64{},
	)
	return estimation.Estimate(dims, memest.Concurrency(entry.Config.Concurrency)).Render()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// buildDemoStore runs the full projection pipeline — id map allocation,
// label bitsets, CSR assembly — over a small synthetic
// edge list, so the TUI browses real stores rather than stubs.
func buildDemoStore(databaseId string, originalIds []int64, edges [][2]int64) (*graphstore.CSRGraphStore, error) {
	idBuilder, err := idmap.NewBuilder()
	if err != nil {
		return nil, err
	}
	allocator, err := idBuilder.Allocate(int64(len(originalIds)))
	if err != nil {
		return nil, err
	}
	if err := allocator.Insert(originalIds); err != nil {
		return nil, err
	}

	labelBuilder := labelinfo.NewBuilder()
	for _, id := range originalIds {
		labelBuilder.Add(labelinfo.NodeLabel("Node"), id)
	}

	var highest int64
	for _, id := range originalIds {
		if id > highest {
			highest = id
		}
	}

	idMap := idBuilder.Build(func(remap idmap.LabelRemapper) {
		labelBuilder.Build(int64(len(originalIds)), remap)
	}, highest, 1)

	csrBuilder := csr.NewBuilder()
	for _, edge := range edges {
		source := idMap.ToMappedNodeId(edge[0])
		target := idMap.ToMappedNodeId(edge[1])
		csrBuilder.Add(source, target)
	}
	adjacency := csrBuilder.Build(idMap.NodeCount(), false)

	relType := graphstore.RelationshipType("REL")
	schema := graphstore.NewGraphSchema([]graphstore.RelationshipType{relType}, nil)
	topologies := map[graphstore.RelationshipType]*graphstore.Topology{
		relType: {RelType: relType, Adjacency: adjacency},
	}

	store := graphstore.NewCSRGraphStore(idMap, schema, nil, topologies, nil)
	store.SetDatabaseId(databaseId)
	return store, nil
}

func seedCatalog(logger logging.Log) (*catalog.Catalog, error) {
	cat := catalog.NewCatalog(logger)
	cat.AddListener(metrics.NewCatalogListener(metrics.DefaultRegistry()))

	type seed struct {
		user, db, name string
		ids            []int64
		edges          [][2]int64
	}
	seeds := []seed{
		{
			user: "alice", db: "db1", name: "social",
			ids:   []int64{100, 200, 300, 400},
			edges: [][2]int64{{100, 200}, {100, 300}, {200, 300}, {300, 400}, {400, 100}},
		},
		{
			user: "alice", db: "db1", name: "roads",
			ids:   []int64{10, 20, 30},
			edges: [][2]int64{{10, 20}, {20, 30}, {30, 10}},
		},
		{
			user: "bob", db: "db2", name: "citations",
			ids:   []int64{1, 2, 3, 4, 5},
			edges: [][2]int64{{1, 2}, {1, 3}, {2, 4}, {3, 4}, {4, 5}, {1, 5}},
		},
	}

	for _, s := range seeds {
		store, err := buildDemoStore(s.db, s.ids, s.edges)
		if err != nil {
			return nil, err
		}
		config := catalog.GraphProjectConfig{
			Username:    s.user,
			DatabaseId:  s.db,
			GraphName:   s.name,
			Concurrency: 1,
		}
		if err := cat.Set(config, store, nil); err != nil {
			return nil, err
		}

		if graph, err := store.Graph(); err == nil {
			if entry, err := cat.Get(catalog.NewCatalogRequest(s.db, s.user), s.name); err == nil {
				dist := catalog.ComputeDegreeDistribution(graph)
				entry.SetDegreeDistribution(&dist)
			}
		}
	}

	return cat, nil
}

func main() {
	logFile, err := os.OpenFile("catalog-tui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("open log file: %v", err)
	}
	defer logFile.Close()
	logger := logging.NewJSONLogger(logFile, logging.InfoLevel)

	cat, err := seedCatalog(logger)
	if err != nil {
		log.Fatalf("seed catalog: %v", err)
	}

	if _, err := tea.NewProgram(newModel(cat), tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("tui: %v", err)
	}
}
