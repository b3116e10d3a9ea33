// ============================================================================
// cplx - Complex number toolkit
// ============================================================================
//
// Package:     repl
// Description: Main Bubbletea model for the interactive evaluator
// Author:      msto63
// Created:     2026-10-06
// License:     MIT
// ============================================================================

package repl

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
	"github.com/msto63/cplx/foundation/core/errors"
	"github.com/msto63/cplx/foundation/core/validation"
	"github.com/msto63/cplx/foundation/utils/stringx"
	"github.com/msto63/cplx/internal/calc"
	"github.com/msto63/cplx/internal/history"
	"github.com/msto63/cplx/pkg/core/version"
)

// Config holds REPL configuration
type Config struct {
	Evaluator    *calc.Evaluator
	Store        history.Store // nil disables :history
	SessionID    string
	Format       byte
	Precision    int
	HistoryLimit int
	MaxLines     int
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Format:       'g',
		Precision:    -1,
		HistoryLimit: 20,
		MaxLines:     1000,
	}
}

var commands = []string{":help", ":funcs", ":history", ":clear", ":quit"}

// Model is the main Bubbletea model for the REPL
type Model struct {
	// State
	width  int
	height int
	ready  bool
	busy   bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Scrollback and input recall
	lines     []Line
	recall    []string
	recallPos int
	evals     int

	evaluator    *calc.Evaluator
	store        history.Store
	sessionID    string
	format       byte
	precision    int
	historyLimit int
	maxLines     int
}

// New creates a new REPL model
func New(cfg Config) Model {
	def := DefaultConfig()
	if cfg.Format == 0 {
		cfg.Format = def.Format
		cfg.Precision = def.Precision
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = def.HistoryLimit
	}
	if cfg.MaxLines <= 0 {
		cfg.MaxLines = def.MaxLines
	}
	if cfg.SessionID == "" {
		cfg.SessionID = history.NewSessionID()
	}
	if cfg.Evaluator == nil {
		cfg.Evaluator = calc.NewEvaluator(nil, calc.Options{})
	}

	ti := textinput.New()
	ti.Prompt = Prompt
	ti.PromptStyle = PromptStyle
	ti.Placeholder = "sin 1+2i   (:help for commands)"
	ti.CharLimit = 512
	ti.Focus()

	m := Model{
		input:        ti,
		evaluator:    cfg.Evaluator,
		store:        cfg.Store,
		sessionID:    cfg.SessionID,
		format:       cfg.Format,
		precision:    cfg.Precision,
		historyLimit: cfg.HistoryLimit,
		maxLines:     cfg.MaxLines,
	}
	m.appendLine(LineInfo, fmt.Sprintf("cplx %s, %d functions. Type :help for commands.",
		version.Toolkit, m.evaluator.Registry().Len()))
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyUp:
			m.recallStep(-1)
			return m, nil
		case tea.KeyDown:
			m.recallStep(1)
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3 // title panel
		footerHeight := 6 // input panel + status + help
		viewportHeight := msg.Height - headerHeight - footerHeight - 2
		if viewportHeight < 3 {
			viewportHeight = 3
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 8
		m.updateViewportContent()

	case evalResultMsg:
		m.busy = false
		m.evals++
		if msg.err != nil {
			m.appendLine(LineError, errorText(msg.err))
		} else {
			m.appendLine(LineResult, fmt.Sprintf("%s  %s",
				msg.result.Format(m.format, m.precision),
				DurationStyle.Render(history.FormatDuration(msg.duration))))
		}
		m.updateViewportContent()

	case historyLoadedMsg:
		m.busy = false
		switch {
		case msg.err != nil:
			m.appendLine(LineError, errorText(msg.err))
		case len(msg.entries) == 0:
			m.appendLine(LineInfo, "no history yet")
		default:
			// entries arrive newest first
			for i := len(msg.entries) - 1; i >= 0; i-- {
				m.appendLine(LineInfo, formatEntry(msg.entries[i]))
			}
		}
		m.updateViewportContent()
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit handles the enter key
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" || m.busy {
		return m, nil
	}
	m.recall = append(m.recall, line)
	m.recallPos = len(m.recall)

	if strings.HasPrefix(line, ":") {
		cmd := m.runCommand(line)
		m.updateViewportContent()
		return m, cmd
	}

	m.appendLine(LineInput, line)
	m.busy = true
	m.updateViewportContent()
	return m, m.evaluate(line)
}

// runCommand executes a colon command
func (m *Model) runCommand(line string) tea.Cmd {
	fields := strings.Fields(line)
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case ":help", ":h", ":?":
		m.showHelp()
	case ":funcs", ":f":
		m.showFunctions(args)
	case ":history", ":hist":
		return m.loadHistory(args)
	case ":clear":
		m.lines = nil
	case ":quit", ":q", ":exit":
		return tea.Quit
	default:
		msg := fmt.Sprintf("unknown command %s", name)
		if s := stringx.Closest(name, commands, 2, 1); len(s) > 0 {
			msg += fmt.Sprintf(" (did you mean %s?)", s[0])
		}
		m.appendLine(LineError, msg)
	}
	return nil
}

func (m *Model) showHelp() {
	help := []string{
		"Enter a function name followed by its arguments:",
		"  add 1+2i 3-i     pow (1, 1) 2     sqrt -1     polar 1 pi",
		"Arguments: a, bi, a+bi, (a, b), a/b and the constants pi, tau, e, phi.",
		"Commands:",
		"  :funcs [category|name]   list functions",
		"  :history [all] [n]       show recent evaluations",
		"  :clear                   clear the scrollback",
		"  :quit                    leave the REPL",
	}
	for _, h := range help {
		m.appendLine(LineInfo, h)
	}
}

// showFunctions lists functions grouped by category. An argument filters
// by category name or function name prefix.
func (m *Model) showFunctions(args []string) {
	filter := ""
	if len(args) > 0 {
		filter = strings.ToLower(args[0])
	}

	reg := m.evaluator.Registry()
	shown := 0
	for _, cat := range calc.Categories() {
		var rows []string
		for _, fn := range reg.ByCategory(cat) {
			if filter != "" && !strings.HasPrefix(string(cat), filter) && !strings.HasPrefix(fn.Name, filter) {
				continue
			}
			rows = append(rows, "  "+stringx.PadRight(fn.Signature(), 34, ' ')+
				stringx.Truncate(fn.Description, 60, "…"))
		}
		if len(rows) == 0 {
			continue
		}
		m.appendLine(LineInfo, CategoryStyle.Render(string(cat)))
		for _, r := range rows {
			m.appendLine(LineInfo, r)
		}
		shown += len(rows)
	}
	if shown == 0 {
		m.appendLine(LineError, fmt.Sprintf("no functions match %q", filter))
	}
}

// loadHistory queries the store for this session, or all sessions with "all"
func (m *Model) loadHistory(args []string) tea.Cmd {
	if m.store == nil {
		m.appendLine(LineInfo, "history is disabled")
		return nil
	}

	filter := history.Filter{SessionID: m.sessionID, Limit: m.historyLimit}
	for _, a := range args {
		if strings.EqualFold(a, "all") {
			filter.SessionID = ""
			continue
		}
		n, err := strconv.Atoi(a)
		if err != nil || n <= 0 {
			m.appendLine(LineError, errorText(errors.InvalidInput(errors.ModuleRepl, "history", a, "a positive count or \"all\"")))
			return nil
		}
		filter.Limit = n
	}

	m.busy = true
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entries, err := store.Query(ctx, filter)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

// evaluate runs one input line off the UI goroutine
func (m Model) evaluate(line string) tea.Cmd {
	e := m.evaluator
	ctx := validation.WithSessionID(context.Background(), m.sessionID)
	ctx = validation.WithRequestID(ctx, strconv.Itoa(m.evals+1))
	return func() tea.Msg {
		start := time.Now()
		call, res, err := e.EvaluateLine(ctx, line)
		return evalResultMsg{
			line:     line,
			call:     call,
			result:   res,
			duration: time.Since(start),
			err:      err,
		}
	}
}

// recallStep moves through previously submitted lines
func (m *Model) recallStep(delta int) {
	if len(m.recall) == 0 {
		return
	}
	m.recallPos += delta
	if m.recallPos < 0 {
		m.recallPos = 0
	}
	if m.recallPos >= len(m.recall) {
		m.recallPos = len(m.recall)
		m.input.Reset()
		return
	}
	m.input.SetValue(m.recall[m.recallPos])
	m.input.CursorEnd()
}

func (m *Model) appendLine(kind LineKind, text string) {
	m.lines = append(m.lines, Line{Kind: kind, Text: text, Timestamp: time.Now()})
	if over := len(m.lines) - m.maxLines; over > 0 {
		m.lines = m.lines[over:]
	}
}

// updateViewportContent renders the scrollback into the viewport
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	var content strings.Builder
	for _, l := range m.lines {
		content.WriteString(RenderLine(l))
		content.WriteString("\n")
	}
	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Starting cplx REPL..."
	}

	var b strings.Builder
	b.WriteString(TitlePanelStyle.Width(m.width - 4).Render(LogoStyle.Render(Logo)))
	b.WriteString("\n")
	b.WriteString(ScrollPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(InputPanelStyle.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderStatusBar() string {
	left := HelpDescStyle.Render(fmt.Sprintf("session %s  evaluations %d",
		stringx.Truncate(m.sessionID, 8, ""), m.evals))

	right := HelpDescStyle.Render(fmt.Sprintf("format %c/%d", m.format, m.precision))
	if m.evaluator.Strict() {
		right = StrictStyle.Render("STRICT") + "  " + right
	}
	if m.busy {
		right = StrictStyle.Render("…") + "  " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 2 {
		gap = 2
	}
	return StatusBarStyle.Width(m.width - 2).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("Enter", "Evaluate"),
		RenderKeyHint("↑/↓", "Recall"),
		RenderKeyHint("PgUp/PgDn", "Scroll"),
		RenderKeyHint(":help", "Commands"),
		RenderKeyHint("Ctrl+C", "Quit"),
	}
	return HelpStyle.Render(strings.Join(items, "  "))
}

// errorText renders an error with its code and suggestions
func errorText(err error) string {
	text := err.Error()
	if code := cplxerror.GetCode(err); code != cplxerror.CodeUnknown {
		text = string(code) + ": " + text
	}
	if s, ok := errors.ExtractDetails(err)["suggestions"].([]string); ok && len(s) > 0 {
		text += fmt.Sprintf(" (did you mean %s?)", strings.Join(s, ", "))
	}
	return text
}

func formatEntry(e *history.Entry) string {
	out := e.Result
	if e.Failed() {
		out = "! " + e.ErrorCode
	}
	return fmt.Sprintf("%s  %s = %s",
		e.Timestamp.Format("15:04:05"),
		stringx.Truncate(e.Expression(), 48, "…"),
		out)
}

// Run starts the REPL TUI
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
