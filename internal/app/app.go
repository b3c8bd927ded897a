// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/charcode/internal/charcode"
	"github.com/zjrosen/charcode/internal/config"
	"github.com/zjrosen/charcode/internal/document"
	"github.com/zjrosen/charcode/internal/keys"
	"github.com/zjrosen/charcode/internal/log"
	"github.com/zjrosen/charcode/internal/pubsub"
	"github.com/zjrosen/charcode/internal/status"
	"github.com/zjrosen/charcode/internal/tracing"
	"github.com/zjrosen/charcode/internal/ui/editor"
	"github.com/zjrosen/charcode/internal/ui/help"
	"github.com/zjrosen/charcode/internal/ui/logoverlay"
	"github.com/zjrosen/charcode/internal/ui/picker"
	"github.com/zjrosen/charcode/internal/ui/statusbar"
	"github.com/zjrosen/charcode/internal/ui/toaster"
	"github.com/zjrosen/charcode/internal/watcher"
)

const shutdownTimeout = 2 * time.Second

// Options holds everything the root model needs. Only Document is required.
type Options struct {
	Config     config.Config
	ConfigPath string // where remembered encodings are written

	Document      *document.Document
	FilePath      string // reload source; empty disables reload and watching
	InputEncoding document.InputEncoding

	Status  *status.Service   // nil builds an uncached service
	Tracing *tracing.Provider // shut down on Close when set
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	keys       keys.KeyMap

	doc           *document.Document
	filePath      string
	inputEncoding document.InputEncoding
	encoding      charcode.Encoding
	status        *status.Service
	tracing       *tracing.Provider

	width         int
	height        int
	showStatusBar bool

	editor     editor.Model
	statusBar  statusbar.Model
	picker     picker.Model
	showPicker bool
	help       help.Model
	showHelp   bool
	toaster    toaster.Model
	logOverlay logoverlay.Model

	ctx         context.Context
	cancel      context.CancelFunc
	logListener *log.LogListener

	// File watcher for auto-reload (pubsub-based)
	watcherHandle   *watcher.Watcher
	watcherListener *pubsub.ContinuousListener[watcher.FileEvent]
}

// New creates the root model and resolves the status for the initial caret.
func New(opts Options) Model {
	cfg := opts.Config
	enc, err := charcode.ParseEncoding(cfg.Encoding)
	if err != nil {
		enc = charcode.DefaultEncoding
	}

	svc := opts.Status
	if svc == nil {
		svc = status.NewDefaultService(0, nil)
	}

	inputEncoding := opts.InputEncoding
	if inputEncoding == "" {
		inputEncoding = document.InputUTF8
	}

	ctx, cancel := context.WithCancel(context.Background())
	km := keys.DefaultKeyMap()

	m := Model{
		cfg:           cfg,
		configPath:    opts.ConfigPath,
		keys:          km,
		doc:           opts.Document,
		filePath:      opts.FilePath,
		inputEncoding: inputEncoding,
		encoding:      enc,
		status:        svc,
		tracing:       opts.Tracing,
		showStatusBar: cfg.UI.ShowStatusBar,
		editor:        editor.New(),
		statusBar:     statusbar.New().SetFile(opts.Document.Name()),
		help:          help.New(km, cfg.UI.MarkdownStyle),
		toaster:       toaster.New(),
		logOverlay:    logoverlay.New(),
		ctx:           ctx,
		cancel:        cancel,
		logListener:   log.NewListener(ctx),
	}

	if cfg.Watch && opts.FilePath != "" {
		m.startWatcher()
	}

	m.refreshStatus()
	return m
}

func (m *Model) startWatcher() {
	w, err := watcher.New(watcher.DefaultConfig(m.filePath))
	if err != nil {
		log.Warn(log.CatWatcher, "Watcher unavailable", "error", err)
		return
	}
	if err := w.Start(); err != nil {
		log.Warn(log.CatWatcher, "Watcher failed to start", "path", m.filePath, "error", err)
		_ = w.Stop()
		return
	}
	m.watcherHandle = w
	m.watcherListener = pubsub.NewContinuousListener(m.ctx, w.Broker())
}

// Init implements tea.Model. It starts the watcher and log listeners.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.ListenLatest())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Encoding returns the selected encoding.
func (m Model) Encoding() charcode.Encoding { return m.encoding }

// StatusText returns the text currently shown in the status item.
func (m Model) StatusText() string { return m.statusBar.Status() }

// Document returns the open document.
func (m Model) Document() *document.Document { return m.doc }

// PickerVisible reports whether the encoding picker is open.
func (m Model) PickerVisible() bool { return m.showPicker }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case log.LogEvent:
		m.logOverlay = m.logOverlay.Refresh()
		if m.logListener == nil {
			return m, nil
		}
		return m, m.logListener.Listen()

	case pubsub.Event[watcher.FileEvent]:
		return m.handleFileEvent(msg)

	case picker.SelectMsg:
		m.showPicker = false
		enc, err := charcode.ParseEncoding(msg.Option.Value)
		if err != nil {
			log.ErrorErr(log.CatUI, "Unknown picker value", err, "value", msg.Option.Value)
			return m, nil
		}
		return m.selectEncoding(enc)

	case picker.CancelMsg:
		m.showPicker = false
		return m, nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case logoverlay.CloseMsg:
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Logs) && !m.logOverlay.Visible() {
		m.logOverlay = m.logOverlay.Toggle()
		return m, nil
	}
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}

	if m.showPicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.PickEncoding):
		m.openPicker()
		return m, nil
	case key.Matches(msg, m.keys.NextEncoding):
		return m.selectEncoding(m.encoding.Next())
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	case key.Matches(msg, m.keys.ToggleStatus):
		m.showStatusBar = !m.showStatusBar
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.toaster = m.toaster.Hide()
		return m, nil
	}

	if m.moveCaret(msg) {
		m.refreshStatus()
	}
	return m, nil
}

// moveCaret applies a motion key and reports whether one matched.
func (m Model) moveCaret(msg tea.KeyMsg) bool {
	page := max(m.editor.Height()-1, 1)
	switch {
	case key.Matches(msg, m.keys.Up):
		m.doc.MoveUp(1)
	case key.Matches(msg, m.keys.Down):
		m.doc.MoveDown(1)
	case key.Matches(msg, m.keys.Left):
		m.doc.MoveLeft()
	case key.Matches(msg, m.keys.Right):
		m.doc.MoveRight()
	case key.Matches(msg, m.keys.PageUp):
		m.doc.MoveUp(page)
	case key.Matches(msg, m.keys.PageDown):
		m.doc.MoveDown(page)
	case key.Matches(msg, m.keys.LineStart):
		m.doc.LineStart()
	case key.Matches(msg, m.keys.LineEnd):
		m.doc.LineEnd()
	case key.Matches(msg, m.keys.Top):
		m.doc.DocumentStart()
	case key.Matches(msg, m.keys.Bottom):
		m.doc.DocumentEnd()
	default:
		return false
	}
	return true
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.logOverlay.Visible() || m.showHelp {
		return m, nil
	}
	if m.showPicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	switch {
	case m.showStatusBar && m.statusBar.StatusClicked(msg):
		m.openPicker()
	case msg.Button == tea.MouseButtonWheelUp:
		m.doc.MoveUp(1)
		m.refreshStatus()
	case msg.Button == tea.MouseButtonWheelDown:
		m.doc.MoveDown(1)
		m.refreshStatus()
	}
	return m, nil
}

func (m Model) handleFileEvent(msg pubsub.Event[watcher.FileEvent]) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.Type {
	case pubsub.ChangedEvent:
		log.Debug(log.CatWatcher, "File changed, reloading", "path", msg.Payload.Path)
		var model tea.Model
		model, cmd = m.reload()
		m = model.(Model)
	case pubsub.ErrorEvent:
		log.Warn(log.CatWatcher, "Watcher error received", "error", msg.Payload.Err)
	}

	if m.watcherListener == nil {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.watcherListener.ListenLatest())
}

// reload rereads the file, keeping the caret where it can.
func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.filePath == "" {
		return m, nil
	}
	lines, err := document.ReadLines(m.filePath, m.inputEncoding)
	if err != nil {
		log.ErrorErr(log.CatDocument, "Reload failed", err, "path", m.filePath)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(fmt.Sprintf("Reload failed: %v", err), toaster.StyleError)
		return m, cmd
	}
	m.doc.Reload(lines)
	log.Info(log.CatDocument, "Reloaded", "path", m.filePath, "lines", len(lines))
	m.refreshStatus()
	return m, nil
}

func (m *Model) openPicker() {
	m.picker = picker.NewEncodingPicker(m.encoding).SetSize(m.width, m.height)
	m.showPicker = true
}

// selectEncoding switches the target encoding and re-resolves the status.
func (m Model) selectEncoding(enc charcode.Encoding) (tea.Model, tea.Cmd) {
	m.encoding = enc
	log.Info(log.CatUI, "select charset "+enc.String())
	m.refreshStatus()

	if m.cfg.UI.RememberEncoding && m.configPath != "" {
		if err := config.SaveEncoding(m.configPath, enc); err != nil {
			log.ErrorErr(log.CatConfig, "Saving encoding failed", err, "path", m.configPath)
			var cmd tea.Cmd
			m.toaster, cmd = m.toaster.Show("Could not save encoding: "+err.Error(), toaster.StyleError)
			return m, cmd
		}
		m.cfg.Encoding = enc.String()
	}

	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show("Encoding: "+enc.String(), toaster.StyleSuccess)
	return m, cmd
}

// refreshStatus resolves the caret text and updates the bar. A failed
// resolution hides the status item.
func (m *Model) refreshStatus() {
	res, err := m.status.Refresh(m.ctx, m.doc.CaretText(), m.encoding)
	if err != nil {
		log.ErrorErr(log.CatResolve, "Status refresh failed", err, "encoding", m.encoding)
		res = charcode.Resolution{}
	}

	caret := m.doc.Caret()
	m.statusBar = m.statusBar.
		SetPosition(caret.Line+1, caret.Col+1).
		SetStatus(res.Status)
	m.editor = m.editor.Follow(m.doc)
}

func (m *Model) resize() {
	bodyHeight := m.height
	if m.showStatusBar {
		bodyHeight--
	}
	m.editor = m.editor.SetSize(m.width, max(bodyHeight, 0)).Follow(m.doc)
	m.statusBar = m.statusBar.SetWidth(m.width)
	m.picker = m.picker.SetSize(m.width, m.height)
	m.help = m.help.SetSize(m.width, m.height)
	m.toaster = m.toaster.SetSize(m.width, m.height)
	m.logOverlay = m.logOverlay.SetSize(m.width, m.height)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	view := m.editor.View(m.doc)
	if m.showStatusBar {
		view += "\n" + m.statusBar.View()
	}

	if m.showHelp {
		view = m.help.Overlay(view)
	}
	if m.showPicker {
		view = m.picker.Overlay(view)
	}
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view)
	}
	if m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}

	return zone.Scan(view)
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.cancel()

	if m.watcherHandle != nil {
		if dropped := m.watcherHandle.Broker().Dropped(); dropped > 0 {
			log.Debug(log.CatWatcher, "Watcher events dropped", "count", dropped)
		}
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	stats := m.status.Stats()
	log.Debug(log.CatCache, "Status cache stats", "hits", stats.Hits, "misses", stats.Misses, "failures", stats.Failures)
	if err := m.status.Flush(ctx); err != nil {
		log.Warn(log.CatCache, "Failed to flush status cache", "error", err)
	}
	if m.tracing != nil {
		if err := m.tracing.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutting down tracing: %w", err)
		}
	}
	return nil
}
