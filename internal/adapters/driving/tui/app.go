package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/views/explorer"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/views/inspector"
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driven"
	"github.com/custodia-labs/sovereign-explorer/internal/core/services"
)

// noticeDisplay is how long a status bar notice stays visible.
const noticeDisplay = 4 * time.Second

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// bridge feeds core notifications into the message loop.
	bridge *NoticeBridge

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the key bindings.
	keymap *keymap.KeyMap

	// explorerView is the vault browsing view component.
	explorerView *explorer.View

	// inspectorView is the item detail panel component.
	inspectorView *inspector.View

	// statusBar shows notices, catalog context and key hints.
	statusBar *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// inspectorOpen tracks whether the detail panel covers the explorer.
	inspectorOpen bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports. The bridge
// must be the same instance the core services were constructed with so
// their notifications reach the status bar.
func NewApp(ports *Ports, bridge *NoticeBridge) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if bridge == nil {
		bridge = NewNoticeBridge()
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		bridge:        bridge,
		styles:        s,
		keymap:        km,
		explorerView:  explorer.NewView(s, km, ports.Explorer),
		inspectorView: inspector.NewView(s, km, ports.Inspector),
		statusBar:     status.NewBar(s, km),
		currentView:   messages.ViewExplorer,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model. The cached snapshot renders first; the
// live refresh replaces it when the backend answers.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("sovereign - Vault Explorer"),
		a.loadCached(),
		a.explorerView.Init(),
		a.bridge.WaitForNotice(),
	)
}

// loadCached hydrates the explorer from the offline snapshot.
func (a *App) loadCached() tea.Cmd {
	return func() tea.Msg {
		age, err := a.ports.Explorer.LoadCached(a.ctx)
		return messages.CachedCatalogLoaded{Age: age, Err: err}
	}
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.explorerView.SetDimensions(msg.Width, msg.Height-1)
		a.inspectorView.SetDimensions(msg.Width, msg.Height-1)
		a.statusBar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.CatalogRefreshed:
		a.explorerView, cmd = a.explorerView.Update(msg)
		if msg.Err == nil {
			a.statusBar.SetOffline(false)
			a.reconcileInspector()
		}
		a.statusBar.SetItemCount(len(a.explorerView.Items()))
		return a, cmd

	case messages.CachedCatalogLoaded:
		a.explorerView, cmd = a.explorerView.Update(msg)
		if msg.Err == nil {
			a.statusBar.SetOffline(true)
		}
		a.statusBar.SetItemCount(len(a.explorerView.Items()))
		return a, cmd

	case messages.ItemSelected:
		a.inspectorOpen = true
		return a, a.inspectorView.Open(msg.Item)

	case messages.InspectorUpdated:
		a.inspectorView, cmd = a.inspectorView.Update(msg)
		return a, cmd

	case messages.TierChanged, messages.IndexingToggled,
		messages.FolderCreated, messages.DocumentMoved:
		a.explorerView, cmd = a.explorerView.Update(msg)
		a.statusBar.SetItemCount(len(a.explorerView.Items()))
		return a, cmd

	case messages.DownloadResolved:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		if err := services.OpenURL(msg.URL); err != nil {
			a.bridge.Notify(driven.NotifyError, "could not open download link")
			return a, nil
		}
		a.bridge.Notify(driven.NotifyInfo, "opening download link")
		return a, nil

	case messages.Notice:
		a.statusBar, _ = a.statusBar.Update(msg)
		issueID := msg.IssueID
		expire := tea.Tick(noticeDisplay, func(time.Time) tea.Msg {
			return messages.NoticeExpired{IssueID: issueID}
		})
		return a, tea.Batch(a.bridge.WaitForNotice(), expire)

	case messages.NoticeExpired:
		a.statusBar, _ = a.statusBar.Update(msg)
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.explorerView, cmd = a.explorerView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view.
	if a.inspectorOpen {
		a.inspectorView, cmd = a.inspectorView.Update(msg)
	} else {
		a.explorerView, cmd = a.explorerView.Update(msg)
	}
	return a, cmd
}

// handleKeyMsg routes key presses to the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	keyStr := msg.String()

	// Global quit with ctrl+c
	if keyStr == "ctrl+c" {
		return a, tea.Quit
	}

	if a.currentView == messages.ViewHelp {
		if msg.Type == tea.KeyEsc || keymap.Matches(keyStr, a.keymap.Quit) {
			a.currentView = messages.ViewExplorer
		}
		return a, nil
	}

	if a.inspectorOpen {
		if msg.Type == tea.KeyEsc {
			a.inspectorView.Close()
			a.inspectorOpen = false
			return a, nil
		}
		a.inspectorView, cmd = a.inspectorView.Update(msg)
		return a, cmd
	}

	if !a.explorerView.InputActive() {
		if keymap.Matches(keyStr, a.keymap.Quit) {
			return a, tea.Quit
		}
		if keymap.Matches(keyStr, a.keymap.Help) {
			a.currentView = messages.ViewHelp
			return a, nil
		}
	}

	a.explorerView, cmd = a.explorerView.Update(msg)
	return a, cmd
}

// reconcileInspector closes the panel when its item no longer exists.
func (a *App) reconcileInspector() {
	a.ports.Inspector.ReconcileSelection(func(itemID string) bool {
		if _, ok := a.ports.Explorer.Document(itemID); ok {
			return true
		}
		_, ok := a.ports.Explorer.Folder(itemID)
		return ok
	})
	if !a.ports.Inspector.State().Open {
		a.inspectorOpen = false
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch {
	case a.currentView == messages.ViewHelp:
		body = a.viewHelp()
	case a.inspectorOpen:
		body = a.inspectorView.View()
	default:
		body = a.explorerView.View()
	}

	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  j/k, ↑/↓    Move selection
  enter       Open folder / inspect document
  esc         Up one folder, or close panel
  t           Toggle folder tree
  tab         Expand/collapse tree folder

Catalog:
  /           Filter by name
  f           Starred only
  g           Recent only
  o / O       Cycle sort field / flip direction
  r           Refresh from backend

Documents:
  s           Star / unstar
  + / -       Raise / lower security tier
  i           Index / remove from index
  n           New folder
  d           Download (in panel)
  v           Verify integrity (in panel)

  q, ctrl+c   Quit

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// InspectorOpen reports whether the detail panel is showing.
func (a *App) InspectorOpen() bool {
	return a.inspectorOpen
}

// Explorer returns the explorer view component.
func (a *App) Explorer() *explorer.View {
	return a.explorerView
}

// StatusBar returns the status bar component.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.explorerView.SetDimensions(width, height-1)
	a.inspectorView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
}
