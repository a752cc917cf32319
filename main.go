// docchat TUI - a terminal client for the DocChat RAG backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/docchat/docchat/internal/api"
	"github.com/docchat/docchat/internal/cli"
	"github.com/docchat/docchat/internal/config"
	"github.com/docchat/docchat/internal/connectivity"
	"github.com/docchat/docchat/internal/logging"
	"github.com/docchat/docchat/internal/session"
	"github.com/docchat/docchat/internal/share"
	"github.com/docchat/docchat/internal/state"
	"github.com/docchat/docchat/internal/transcript"
	"github.com/docchat/docchat/internal/ui/chat"
	"github.com/docchat/docchat/internal/ui/components"
	"github.com/docchat/docchat/internal/ui/features"
	"github.com/docchat/docchat/internal/ui/history"
	"github.com/docchat/docchat/internal/ui/styles"
	uploadsui "github.com/docchat/docchat/internal/ui/uploads"
	"github.com/docchat/docchat/internal/upload"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdUpload:
		exitOnError(cli.HandleUpload(args))
	case cli.CmdSessions:
		exitOnError(cli.HandleSessions(args))
	case cli.CmdHistory:
		exitOnError(cli.HandleHistory(args))
	case cli.CmdDelete:
		exitOnError(cli.HandleDelete(args))
	case cli.CmdExport:
		exitOnError(cli.HandleExport(args))
	case cli.CmdShare:
		exitOnError(cli.HandleShare(args))
	case cli.CmdStatus:
		exitOnError(cli.HandleStatus(args))
	case cli.CmdFeatures:
		exitOnError(cli.HandleFeatures(args))
	case cli.CmdConfig:
		exitOnError(cli.HandleConfig(args))
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI starts the TUI interface.
func runTUI(args cli.Args) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if args.Backend != "" {
		cfg.Backend.URL = args.Backend
	}
	if args.Language != "" {
		if !config.IsSupportedLanguage(args.Language) {
			fmt.Fprintf(os.Stderr, "Error: unsupported language %q\n", args.Language)
			os.Exit(1)
		}
		cfg.Chat.Language = args.Language
	}

	if dir, err := config.ConfigDir(); err == nil {
		// Logging failures are not fatal, the TUI works without a log file
		_, _ = logging.Setup(dir, cfg.Log.Level)
	}

	statePath, err := state.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	store, err := state.NewStore(statePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening state: %v\n", err)
		os.Exit(1)
	}

	ident, err := session.Initialize(store, args.Session)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:       cfg.Backend.URL,
		Timeout:       time.Duration(cfg.Backend.RequestTimeoutSecs) * time.Second,
		UploadTimeout: time.Duration(cfg.Backend.UploadTimeoutSecs) * time.Second,
	})

	// Persisted preferences win over config file defaults, CLI flags
	// win over both.
	persisted := store.Get()
	themeName := cfg.UI.Theme
	if persisted.Theme != "" {
		themeName = persisted.Theme
	}
	language := cfg.Chat.Language
	if persisted.Language != "" && args.Language == "" {
		language = persisted.Language
	}

	theme := styles.NewTheme(themeName)
	ctrl := transcript.NewController(client, ident, language)
	monitor := connectivity.NewMonitor(client,
		time.Duration(cfg.Backend.ProbeIntervalSecs)*time.Second,
		time.Duration(cfg.Backend.ProbeTimeoutSecs)*time.Second)
	manager := upload.NewManager(client, store)

	app := newApp(cfg, theme, store, client, ctrl, monitor, manager)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Live-reload the config file while the TUI runs
	if cfgPath, err := config.ConfigPathTOML(); err == nil {
		if w, werr := config.NewWatcher(cfgPath, func(c *config.Config) {
			p.Send(configReloadedMsg{cfg: c})
		}); werr == nil {
			if werr := w.Watch(); werr == nil {
				defer w.Close()
			}
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running docchat: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// View identifies the active tab.
type View int

const (
	ViewChat View = iota
	ViewSessions
	ViewDocuments
	ViewFeatures
)

var tabNames = []string{"Chat", "Sessions", "Documents", "Features"}

// Name returns the tab label for the view.
func (v View) Name() string {
	if int(v) < len(tabNames) {
		return tabNames[v]
	}
	return "Chat"
}

// Internal messages.
type (
	flashClearMsg     struct{}
	configReloadedMsg struct{ cfg *config.Config }
)

// App is the root Bubble Tea model. It owns the tab views and routes
// messages between them.
type App struct {
	cfg     *config.Config
	theme   *styles.Theme
	store   *state.Store
	client  *api.Client
	monitor *connectivity.Monitor

	header    *components.Header
	statusBar *components.StatusBar

	chatView     chat.Model
	sessionsView history.Model
	docsView     uploadsui.Model
	featuresView features.Model

	active View
	width  int
	height int

	// flash is a transient status line notice
	flash string
}

func newApp(
	cfg *config.Config,
	theme *styles.Theme,
	store *state.Store,
	client *api.Client,
	ctrl *transcript.Controller,
	monitor *connectivity.Monitor,
	manager *upload.Manager,
) *App {
	app := &App{
		cfg:          cfg,
		theme:        theme,
		store:        store,
		client:       client,
		monitor:      monitor,
		header:       components.NewHeader(theme),
		statusBar:    components.NewStatusBar(theme),
		chatView:     chat.New(ctrl, theme),
		sessionsView: history.New(client, theme),
		docsView:     uploadsui.New(manager, store, theme),
		featuresView: features.New(client, theme),
		active:       ViewChat,
	}
	app.sessionsView.SetActiveSession(ctrl.SessionID())
	return app
}

// Init starts the initial history load and the connectivity probe loop.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.chatView.Init(),
		a.monitor.ProbeCmd(),
		a.monitor.TickCmd(),
	)
}

// Update routes messages to the owning view.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.header.SetWidth(msg.Width)
		a.statusBar.SetWidth(msg.Width)
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.chatView, cmd = a.chatView.Update(msg)
		cmds = append(cmds, cmd)
		a.sessionsView, cmd = a.sessionsView.Update(msg)
		cmds = append(cmds, cmd)
		a.docsView, cmd = a.docsView.Update(msg)
		cmds = append(cmds, cmd)
		a.featuresView, cmd = a.featuresView.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		return a.handleKey(msg)

	case connectivity.ProbeResultMsg:
		a.monitor.Apply(msg)
		return a, nil

	case connectivity.TickMsg:
		return a, tea.Batch(a.monitor.ProbeCmd(), a.monitor.TickCmd())

	case configReloadedMsg:
		return a.applyConfig(msg.cfg)

	case flashClearMsg:
		a.flash = ""
		return a, nil

	case history.OpenSessionMsg:
		cmd, err := a.chatView.SwitchTo(msg.SessionID)
		if err != nil {
			return a, a.setFlash(fmt.Sprintf("Cannot open session: %v", err))
		}
		a.active = ViewChat
		a.sessionsView.SetActiveSession(msg.SessionID)
		return a, cmd

	case history.DeletedMsg:
		if msg.Err == nil && msg.SessionID == a.chatView.Controller().SessionID() {
			a.chatView.ClearActive()
		}
		var cmd tea.Cmd
		a.sessionsView, cmd = a.sessionsView.Update(msg)
		return a, cmd

	case transcript.HistoryLoadedMsg, transcript.ChatResultMsg, spinner.TickMsg:
		var cmd tea.Cmd
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case history.SessionsLoadedMsg:
		var cmd tea.Cmd
		a.sessionsView, cmd = a.sessionsView.Update(msg)
		return a, cmd

	case upload.ResultMsg:
		var cmd tea.Cmd
		a.docsView, cmd = a.docsView.Update(msg)
		return a, cmd

	case features.LoadedMsg:
		var cmd tea.Cmd
		a.featuresView, cmd = a.featuresView.Update(msg)
		return a, cmd
	}

	return a.routeToActive(msg)
}

// handleKey processes global shortcuts before view-local keys.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "tab":
		return a.switchView(View((int(a.active) + 1) % len(tabNames)))

	case "shift+tab":
		return a.switchView(View((int(a.active) + len(tabNames) - 1) % len(tabNames)))

	case "ctrl+n":
		if err := a.chatView.NewChat(); err != nil {
			return a, a.setFlash(fmt.Sprintf("Cannot start new chat: %v", err))
		}
		a.active = ViewChat
		a.sessionsView.SetActiveSession(a.chatView.Controller().SessionID())
		return a, a.setFlash("Started a new chat")

	case "ctrl+t":
		a.theme = a.theme.Toggle()
		a.applyTheme()
		// Persist failures only cost the preference, not the session
		_ = a.store.SetTheme(a.theme.Name)
		return a, a.setFlash(fmt.Sprintf("Theme: %s", a.theme.Name))

	case "ctrl+l":
		ctrl := a.chatView.Controller()
		next := config.NextLanguage(ctrl.Language())
		ctrl.SetLanguage(next)
		_ = a.store.SetLanguage(next)
		return a, a.setFlash(fmt.Sprintf("Language: %s", config.LanguageDisplayName(next)))

	case "ctrl+e":
		return a.exportTranscript()

	case "ctrl+s":
		ctrl := a.chatView.Controller()
		if ctrl.Transcript().IsEmpty() {
			return a, a.setFlash("Nothing to share yet")
		}
		link := share.Link(a.cfg.ShareBase(), ctrl.SessionID())
		return a, a.setFlash("Share link: " + link)

	case "ctrl+r":
		// Immediate re-probe instead of waiting for the next tick
		return a, a.monitor.ProbeCmd()
	}

	return a.routeToActive(msg)
}

// switchView activates a tab and kicks off its refresh.
func (a *App) switchView(v View) (tea.Model, tea.Cmd) {
	if a.active == ViewDocuments && v != ViewDocuments {
		a.docsView.Blur()
	}
	a.active = v

	switch v {
	case ViewSessions:
		a.sessionsView.SetActiveSession(a.chatView.Controller().SessionID())
		return a, a.sessionsView.Refresh()
	case ViewDocuments:
		return a, a.docsView.Focus()
	case ViewFeatures:
		return a, a.featuresView.Refresh()
	}
	return a, nil
}

// routeToActive forwards a message to the active view only.
func (a *App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case ViewSessions:
		a.sessionsView, cmd = a.sessionsView.Update(msg)
	case ViewDocuments:
		a.docsView, cmd = a.docsView.Update(msg)
	case ViewFeatures:
		a.featuresView, cmd = a.featuresView.Update(msg)
	}
	return a, cmd
}

// exportTranscript writes the current conversation to a text file in
// the working directory.
func (a *App) exportTranscript() (tea.Model, tea.Cmd) {
	t := a.chatView.Controller().Transcript()
	if t.IsEmpty() {
		return a, a.setFlash("Nothing to export yet")
	}
	path, err := share.ExportToFile(t, share.TextExporter{}, ".")
	if err != nil {
		return a, a.setFlash(fmt.Sprintf("Export failed: %v", err))
	}
	return a, a.setFlash("Exported to " + path)
}

// applyConfig picks up a live config reload.
func (a *App) applyConfig(cfg *config.Config) (tea.Model, tea.Cmd) {
	a.cfg = cfg

	// Theme changes apply unless the user has a persisted preference
	if a.store.Get().Theme == "" && cfg.UI.Theme != a.theme.Name {
		a.theme = styles.NewTheme(cfg.UI.Theme)
		a.applyTheme()
	}
	if a.store.Get().Language == "" {
		a.chatView.Controller().SetLanguage(cfg.Chat.Language)
	}
	return a, a.setFlash("Configuration reloaded")
}

func (a *App) applyTheme() {
	a.header.SetTheme(a.theme)
	a.statusBar.SetTheme(a.theme)
	a.chatView.SetTheme(a.theme)
	a.sessionsView.SetTheme(a.theme)
	a.docsView.SetTheme(a.theme)
	a.featuresView.SetTheme(a.theme)
}

// setFlash shows a transient notice in the status bar.
func (a *App) setFlash(text string) tea.Cmd {
	a.flash = text
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return flashClearMsg{}
	})
}

// View renders the header, active tab, and status bar.
func (a *App) View() string {
	header := a.header.Render(tabNames, a.active.Name())

	banner := ""
	if a.monitor.Status() == connectivity.StatusDisconnected {
		banner = a.theme.WarningBanner.Render(connectivity.DisconnectedMessage) + "\n"
	}

	var body string
	switch a.active {
	case ViewChat:
		body = a.chatView.View()
	case ViewSessions:
		body = a.sessionsView.View()
	case ViewDocuments:
		body = a.docsView.View()
	case ViewFeatures:
		body = a.featuresView.View()
	}

	hints := a.hints()
	if a.flash != "" {
		hints = []string{a.flash}
	}
	ctrl := a.chatView.Controller()
	status := a.statusBar.Render(
		a.monitor.Status(),
		ctrl.SessionID(),
		config.LanguageDisplayName(ctrl.Language()),
		hints,
	)

	return header + "\n" + banner + body + "\n" + status
}

// hints returns the shortcut hints for the active view.
func (a *App) hints() []string {
	common := []string{"tab views", "ctrl+n new", "ctrl+c quit"}
	if a.monitor.Status() == connectivity.StatusDisconnected {
		common = append([]string{"ctrl+r retry"}, common...)
	}
	switch a.active {
	case ViewChat:
		return append([]string{"enter send", "ctrl+e export", "ctrl+s share"}, common...)
	case ViewSessions:
		return append([]string{"enter open", "d delete", "r refresh"}, common...)
	case ViewDocuments:
		return append([]string{"enter upload"}, common...)
	default:
		return common
	}
}
