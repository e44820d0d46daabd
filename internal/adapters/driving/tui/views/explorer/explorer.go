// Package explorer provides the vault browsing view component for the TUI.
package explorer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driving"
)

// inputMode tracks which input owns the keyboard.
type inputMode int

const (
	modeList inputMode = iota
	modeSearch
	modeNewFolder
)

// sortCycle is the order the sort key steps through.
var sortCycle = []domain.SortField{
	domain.SortByUpdatedAt,
	domain.SortByName,
	domain.SortBySize,
	domain.SortBySecurity,
	domain.SortByRelevance,
}

// View is the vault browsing view: breadcrumbs, the most-cited strip,
// an optional navigation tree pane and the filtered, sorted item list.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	explorer driving.ExplorerService

	items     []domain.ExplorerItem
	mostCited []domain.ExplorerItem
	crumbs    []domain.Folder
	tree      []domain.TreeNode

	selected     int
	treeSelected int
	scrollOffset int
	showTree     bool
	treeFocused  bool
	mode         inputMode
	input        textinput.Model

	width   int
	height  int
	ready   bool
	loading bool
	err     error
}

// NewView creates a new explorer view.
func NewView(s *styles.Styles, km *keymap.KeyMap, explorer driving.ExplorerService) *View {
	input := textinput.New()
	input.Placeholder = "filter by name"
	input.CharLimit = 128

	return &View{
		styles:   s,
		keymap:   km,
		explorer: explorer,
		input:    input,
	}
}

// Init initialises the view and starts the first refresh.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.refresh()
}

// refresh returns a command that refetches the catalog.
func (v *View) refresh() tea.Cmd {
	return func() tea.Msg {
		return messages.CatalogRefreshed{Err: v.explorer.Refresh(context.Background())}
	}
}

// Reload recomputes the derived collections from the service.
func (v *View) Reload() {
	v.items = v.explorer.Items()
	v.mostCited = v.explorer.MostCited()
	v.crumbs = v.explorer.Breadcrumbs()
	v.tree = v.explorer.Tree()
	if v.selected >= len(v.items) {
		v.selected = len(v.items) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
	if v.treeSelected >= len(v.tree) {
		v.treeSelected = 0
	}
}

// Update handles messages for the explorer view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case modeSearch:
			return v.handleSearchKeyMsg(msg)
		case modeNewFolder:
			return v.handleNewFolderKeyMsg(msg)
		default:
			return v.handleKeyMsg(msg)
		}

	case messages.CatalogRefreshed:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.Reload()
		}
		return v, nil

	case messages.CachedCatalogLoaded:
		if msg.Err == nil {
			v.loading = false
			v.Reload()
		}
		return v, nil

	case messages.TierChanged, messages.IndexingToggled, messages.FolderCreated, messages.DocumentMoved:
		// Fire-and-refetch: the service already refetched on success,
		// so the derived collections just need recomputing.
		v.Reload()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
//
//nolint:gocyclo // central key dispatch
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.treeFocused {
			if v.treeSelected > 0 {
				v.treeSelected--
			}
		} else if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}

	case keymap.Matches(keyStr, v.keymap.Down):
		if v.treeFocused {
			if v.treeSelected < len(v.tree)-1 {
				v.treeSelected++
			}
		} else if v.selected < len(v.items)-1 {
			v.selected++
			v.adjustScroll()
		}

	case keymap.Matches(keyStr, v.keymap.Select):
		return v.handleSelect()

	case keymap.Matches(keyStr, v.keymap.Back):
		return v.handleBack()

	case keymap.Matches(keyStr, v.keymap.Search):
		v.mode = modeSearch
		v.input.Placeholder = "filter by name"
		v.input.SetValue(v.explorer.Search())
		return v, v.input.Focus()

	case keymap.Matches(keyStr, v.keymap.Refresh):
		v.loading = true
		return v, v.refresh()

	case keymap.Matches(keyStr, v.keymap.Star):
		if item, ok := v.SelectedItem(); ok && item.Type == domain.ItemDocument {
			v.explorer.ToggleStar(item.ID)
			v.Reload()
		}

	case keymap.Matches(keyStr, v.keymap.Starred):
		v.toggleQuickFilter(domain.QuickStarred)

	case keymap.Matches(keyStr, v.keymap.Recent):
		v.toggleQuickFilter(domain.QuickRecent)

	case keymap.Matches(keyStr, v.keymap.Sort):
		v.cycleSort()

	case keymap.Matches(keyStr, v.keymap.SortDir):
		field, asc := v.explorer.Sort()
		v.explorer.SetSort(field, !asc)
		v.Reload()

	case keymap.Matches(keyStr, v.keymap.Tree):
		v.showTree = !v.showTree
		v.treeFocused = v.showTree

	case keymap.Matches(keyStr, v.keymap.Expand):
		if v.treeFocused && v.treeSelected < len(v.tree) {
			v.explorer.ToggleExpand(v.tree[v.treeSelected].Folder.ID)
			v.Reload()
		}

	case keymap.Matches(keyStr, v.keymap.NewFolder):
		v.mode = modeNewFolder
		v.input.Placeholder = "folder name"
		v.input.SetValue("")
		return v, v.input.Focus()

	case keymap.Matches(keyStr, v.keymap.TierUp):
		return v, v.changeTier(1)

	case keymap.Matches(keyStr, v.keymap.TierDown):
		return v, v.changeTier(-1)

	case keymap.Matches(keyStr, v.keymap.Index):
		if item, ok := v.SelectedItem(); ok && item.Type == domain.ItemDocument {
			return v, v.toggleIndexing(item)
		}
	}

	return v, nil
}

// handleSelect opens a folder or inspects a document.
func (v *View) handleSelect() (*View, tea.Cmd) {
	if v.treeFocused && v.treeSelected < len(v.tree) {
		v.explorer.EnterFolder(v.tree[v.treeSelected].Folder.ID)
		v.treeFocused = false
		v.selected = 0
		v.scrollOffset = 0
		v.Reload()
		return v, nil
	}

	item, ok := v.SelectedItem()
	if !ok {
		return v, nil
	}

	if item.Type == domain.ItemFolder {
		v.explorer.EnterFolder(item.ID)
		v.selected = 0
		v.scrollOffset = 0
		v.Reload()
		return v, nil
	}

	selected := item
	return v, func() tea.Msg {
		return messages.ItemSelected{Item: selected}
	}
}

// handleBack leaves the current folder, stepping up one breadcrumb.
func (v *View) handleBack() (*View, tea.Cmd) {
	if v.treeFocused {
		v.treeFocused = false
		return v, nil
	}
	if len(v.crumbs) == 0 {
		return v, nil
	}

	parent := ""
	if len(v.crumbs) > 1 {
		parent = v.crumbs[len(v.crumbs)-2].ID
	}
	v.explorer.EnterFolder(parent)
	v.selected = 0
	v.scrollOffset = 0
	v.Reload()
	return v, nil
}

// handleSearchKeyMsg handles key presses while the filter input is focused.
func (v *View) handleSearchKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		if msg.Type == tea.KeyEsc {
			v.input.SetValue("")
			v.explorer.SetSearch("")
		}
		v.mode = modeList
		v.input.Blur()
		v.Reload()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.explorer.SetSearch(v.input.Value())
	v.Reload()
	return v, cmd
}

// handleNewFolderKeyMsg handles key presses while naming a new folder.
func (v *View) handleNewFolderKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.mode = modeList
		v.input.Blur()
		v.input.SetValue("")
		return v, nil

	case tea.KeyEnter:
		name := v.input.Value()
		v.mode = modeList
		v.input.Blur()
		v.input.SetValue("")
		return v, func() tea.Msg {
			folder, err := v.explorer.CreateFolder(context.Background(), name)
			return messages.FolderCreated{Folder: folder, Err: err}
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// toggleQuickFilter flips a quick-access filter on or off.
func (v *View) toggleQuickFilter(filter domain.QuickFilter) {
	if v.explorer.QuickFilter() == filter {
		v.explorer.SetQuickFilter(domain.QuickNone)
	} else {
		v.explorer.SetQuickFilter(filter)
	}
	v.selected = 0
	v.scrollOffset = 0
	v.Reload()
}

// cycleSort steps to the next sort field.
func (v *View) cycleSort() {
	current, asc := v.explorer.Sort()
	next := sortCycle[0]
	for i, field := range sortCycle {
		if field == current {
			next = sortCycle[(i+1)%len(sortCycle)]
			break
		}
	}
	v.explorer.SetSort(next, asc)
	v.Reload()
}

// changeTier raises or lowers the selected document's tier by one level.
func (v *View) changeTier(delta int) tea.Cmd {
	item, ok := v.SelectedItem()
	if !ok || item.Type != domain.ItemDocument {
		return nil
	}

	level := item.Security.Level() + delta
	if level < domain.TierGeneral.Level() || level > domain.TierSovereign.Level() {
		return nil
	}
	tier := domain.TierFromLevel(level)

	return func() tea.Msg {
		err := v.explorer.SetTier(context.Background(), item.ID, tier)
		return messages.TierChanged{ItemID: item.ID, Tier: tier, Err: err}
	}
}

// toggleIndexing flips the selected document in or out of the index.
func (v *View) toggleIndexing(item domain.ExplorerItem) tea.Cmd {
	indexed := !item.Indexed
	return func() tea.Msg {
		err := v.explorer.SetIndexing(context.Background(), item.ID, indexed)
		return messages.IndexingToggled{ItemID: item.ID, Indexed: indexed, Err: err}
	}
}

// adjustScroll keeps the selected item visible.
func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

// visibleItemCount returns the number of list rows that fit.
func (v *View) visibleItemCount() int {
	// Reserve lines for breadcrumbs, strip, input, help and padding
	reserved := 10
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the explorer.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.renderBreadcrumbs())
	b.WriteString("\n")
	b.WriteString(v.renderMostCited())
	b.WriteString("\n")

	if v.mode != modeList {
		b.WriteString(v.styles.InputField.Render(v.input.View()))
		b.WriteString("\n")
	}

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading vault..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	}

	if v.showTree {
		b.WriteString(v.renderTreeAndList())
	} else {
		b.WriteString(v.renderList())
	}

	b.WriteString("\n")
	b.WriteString(v.renderSortLine())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderBreadcrumbs renders the current folder path, root first.
func (v *View) renderBreadcrumbs() string {
	parts := []string{v.styles.Breadcrumb.Render("vault")}
	for _, crumb := range v.crumbs {
		parts = append(parts, v.styles.Breadcrumb.Render(crumb.Name))
	}
	line := strings.Join(parts, v.styles.Muted.Render(" / "))

	if filter := v.explorer.QuickFilter(); filter != domain.QuickNone {
		line += "  " + v.styles.Subtitle.Render("["+string(filter)+"]")
	}
	return line
}

// renderMostCited renders the ranked highlight strip.
func (v *View) renderMostCited() string {
	if len(v.mostCited) == 0 {
		return v.styles.Muted.Render("no cited documents yet")
	}

	parts := make([]string, 0, len(v.mostCited))
	for _, item := range v.mostCited {
		parts = append(parts, fmt.Sprintf("%s (%d)", item.Name, item.Citations))
	}
	return v.styles.Muted.Render("most cited: ") + v.styles.Normal.Render(strings.Join(parts, "  "))
}

// renderList renders the item list.
func (v *View) renderList() string {
	if len(v.items) == 0 {
		return v.styles.Muted.Render("This folder is empty.")
	}

	var b strings.Builder
	visible := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.items) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderItem(i, &v.items[i]))
		b.WriteString("\n")
	}

	if len(v.items) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			minInt(v.scrollOffset+visible, len(v.items)),
			len(v.items))))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTreeAndList renders the tree pane beside the list.
func (v *View) renderTreeAndList() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Folders"))
	b.WriteString("\n")

	for i, node := range v.tree {
		marker := "  "
		if node.HasChildren {
			marker = "+ "
			if node.Expanded {
				marker = "- "
			}
		}
		line := strings.Repeat("  ", node.Depth) + marker + node.Folder.Name
		if v.treeFocused && i == v.treeSelected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderList())
	return b.String()
}

// renderItem renders a single list row.
func (v *View) renderItem(index int, item *domain.ExplorerItem) string {
	indicator := "  "
	if index == v.selected && !v.treeFocused {
		indicator = "> "
	}

	star := " "
	if item.Starred {
		star = v.styles.Starred.Render("*")
	}

	var kind string
	if item.Type == domain.ItemFolder {
		kind = v.styles.Subtitle.Render("dir")
	} else if item.Indexed {
		kind = v.styles.Success.Render("idx")
	} else {
		kind = v.styles.Muted.Render("doc")
	}

	name := item.Name
	maxName := v.width - 40
	if maxName < 16 {
		maxName = 16
	}
	if len(name) > maxName {
		name = name[:maxName-3] + "..."
	}

	tier := v.styles.Tier(item.Security).Render(item.Security.String())
	meta := v.styles.Muted.Render(fmt.Sprintf("%8s  %s",
		formatSize(item.Size), item.UpdatedAt.Format("2006-01-02")))

	line := fmt.Sprintf("%s%s %s  %-*s %s  %s", indicator, star, kind, maxName, name, tier, meta)
	if index == v.selected && !v.treeFocused {
		return v.styles.Selected.Render(line)
	}
	return line
}

// renderSortLine shows the active sort field and direction.
func (v *View) renderSortLine() string {
	field, asc := v.explorer.Sort()
	dir := "natural"
	if asc {
		dir = "reversed"
	}
	return v.styles.Muted.Render(fmt.Sprintf("sort: %s (%s)", field, dir))
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render(
		"[enter] open  [/] search  [s] star  [f] starred  [g] recent  [o] sort  [t] tree  [n] folder  [r] refresh")
}

// InputActive reports whether a text input owns the keyboard.
func (v *View) InputActive() bool {
	return v.mode != modeList
}

// SelectedItem returns the currently selected item.
func (v *View) SelectedItem() (domain.ExplorerItem, bool) {
	if v.selected >= 0 && v.selected < len(v.items) {
		return v.items[v.selected], true
	}
	return domain.ExplorerItem{}, false
}

// Items returns the current item list.
func (v *View) Items() []domain.ExplorerItem {
	return v.items
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// formatSize renders a byte count in a compact human unit.
func formatSize(size int64) string {
	switch {
	case size >= 1<<30:
		return fmt.Sprintf("%.1fG", float64(size)/float64(1<<30))
	case size >= 1<<20:
		return fmt.Sprintf("%.1fM", float64(size)/float64(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1fK", float64(size)/float64(1<<10))
	default:
		return fmt.Sprintf("%dB", size)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
