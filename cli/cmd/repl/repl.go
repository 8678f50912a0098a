package repl

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cjhanks/appconf/lang"
)

// reloadMsg carries the result of a reload or edit.
type reloadMsg struct {
	cfg *lang.Config
	err error
}

const (
	queryPrompt = "➜ "
	ctrlPrompt  = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help         Print this message
  list [PATH]  List the keys of the root or of section PATH
  macros       List macros defined at root scope
  files        List the files that were read
  reload       Read the configuration again
  edit         Edit the source file in $VISUAL or $EDITOR, then reload
  clear        Clear screen
  quit         Exit REPL

Usage:
  Type a dotted key (db.primary.port) and press Enter to print its value
  Completions appear as you type; press . to browse a section's keys
  Press Tab / Shift-Tab to cycle through candidates
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeQuery inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// echo formats the submitted line with its prompt.
func echo(mode inputMode, input string) string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
	}

	return promptStyle.Render(queryPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctx          context.Context
	opts         options
	cfg          *lang.Config
	input        textinput.Model
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	saved        [2]string // input of the inactive mode
}

// Run browses cfg interactively until the user quits or ctx is done.
func Run(ctx context.Context, cfg *lang.Config, opts ...Option) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	history := NewHistory(o.history)
	if err := history.Load(); err != nil {
		o.logger.WarnContext(ctx, "could not load history",
			slog.String("path", o.history),
			slog.Any("error", err))
	}

	o.logger.TraceContext(ctx, "repl start",
		slog.Int("keys", cfg.Len()),
		slog.Int("history", history.Len()))

	popts := []tea.ProgramOption{tea.WithContext(ctx)}
	if o.tty {
		popts = append(popts, tea.WithInputTTY())
	}

	_, err = tea.NewProgram(newModel(ctx, cfg, history, o), popts...).Run()

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, cfg *lang.Config, history *History, o options) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(queryPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctx:        ctx,
		opts:       o,
		cfg:        cfg,
		input:      ti,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeQuery,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(queryPrompt) - 2

		return m, nil

	case reloadMsg:
		if msg.err != nil {
			return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
		}

		m.cfg = msg.cfg
		m.opts.logger.TraceContext(m.ctx, "repl reload", slog.Int("keys", m.cfg.Len()))

		return m, tea.Println(resultStyle.Render(
			fmt.Sprintf("reloaded %d files, digest %016x", len(m.cfg.Files()), m.cfg.Digest())))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(m.input.Value()) == "":
		hint := "Type a dotted key or press Esc for commands"
		if m.mode == modeCtrl {
			hint = "Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1), nil

	case tea.KeyDown:
		return m.historyStep(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.switchToMode(1 - m.mode), nil

	case tea.KeyRunes:
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Any other key (backspace, delete, arrows) edits without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step, completing immediately when only
// one candidate remains.
func (m model) cycle(step int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + n) % n
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0

		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word in the input with replacement
// and moves the cursor after it.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes fuzzy matches for the current input. With
// autoConfirm, a word that already equals the sole candidate is accepted.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.saved = [2]string{}
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(input, m.mode); err != nil {
		m.opts.logger.WarnContext(m.ctx, "could not save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	m.opts.logger.TraceContext(m.ctx, "repl input",
		slog.String("input", input),
		slog.Int("mode", int(m.mode)))

	echoCmd := tea.Println(echo(m.mode, input))

	if m.mode == modeCtrl {
		return m.executeCommand(echoCmd, input)
	}

	out, err := describe(m.ctx, m.cfg, input)
	if err != nil {
		return m, tea.Sequence(echoCmd, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return m, tea.Sequence(echoCmd, tea.Println(resultStyle.Render(out)))
}

func (m model) executeCommand(echoCmd tea.Cmd, input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	cmd, args := parts[0], parts[1:]

	show := func(s string, err error) tea.Cmd {
		if err != nil {
			return tea.Sequence(echoCmd, tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		return tea.Sequence(echoCmd, tea.Println(s))
	}

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, show(helpMessage(), nil)

	case "l", "list":
		return m, show(listing(m.cfg, strings.Join(args, "")))

	case "m", "macros":
		return m, show(macroListing(m.cfg), nil)

	case "f", "files":
		return m, show(strings.Join(m.cfg.Files(), "\n"), nil)

	case "r", "reload":
		if m.opts.reload == nil {
			return m, show("", ErrNoReload)
		}

		reload, ctx := m.opts.reload, m.ctx

		return m, tea.Sequence(echoCmd, func() tea.Msg {
			cfg, err := reload(ctx)

			return reloadMsg{cfg: cfg, err: err}
		})

	case "e", "edit":
		c, err := m.editCommand()
		if err != nil {
			return m, show("", err)
		}

		return m, tea.Sequence(echoCmd, c)

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Println(errorStyle.Render("Unknown command: " + cmd + " (try 'help')"))
	}
}

// historyStep moves through history by step, switching modes to match the
// recalled entry. Stepping past the newest entry clears the input.
func (m model) historyStep(step int) model {
	i := m.historyIdx + step
	if i < 0 {
		return m
	}

	if i >= m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)

		return m
	}

	entry, err := m.history.Entry(i)
	if err != nil {
		return m
	}

	m.historyIdx = i

	if m.mode != entry.Mode {
		m = m.switchToMode(entry.Mode)
	}

	m.input.SetValue(entry.Line)
	m.input.SetCursor(len(entry.Line))
	refreshMatches(&m, false)

	return m
}

// switchToMode switches to mode, keeping each mode's unsubmitted input.
func (m model) switchToMode(mode inputMode) model {
	if mode == m.mode {
		return m
	}

	m.saved[m.mode] = m.input.Value()
	m.mode = mode

	if mode == modeQuery {
		m.input.Prompt = promptStyle.Render(queryPrompt)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
	}

	m.input.SetValue(m.saved[mode])
	m.input.CursorEnd()
	m.tabActive = false
	refreshMatches(&m, false)

	return m
}

// describe renders the value at a dotted path: a leaf as "KIND value", a
// section in native syntax.
func describe(ctx context.Context, cfg *lang.Config, path string) (string, error) {
	v, err := cfg.Value(strings.Split(path, ".")...)
	if err != nil {
		return "", err
	}

	switch v := v.(type) {
	case *lang.Leaf:
		return v.Kind().String() + " " + v.String(), nil

	case *lang.Section:
		var buf bytes.Buffer
		if err := v.Format(ctx, &buf, 2); err != nil {
			return "", err
		}

		return strings.TrimRight(buf.String(), "\n"), nil
	}

	return "", nil
}

// listing renders the children of the root, or of the section at a dotted
// path, one per line with a preview.
func listing(cfg *lang.Config, path string) (string, error) {
	sec := cfg.Root()

	if path != "" {
		v, err := cfg.Value(strings.Split(path, ".")...)
		if err != nil {
			return "", err
		}

		s, ok := v.(*lang.Section)
		if !ok {
			return "  " + preview(v), nil
		}

		sec = s
	}

	var b strings.Builder

	for name, v := range sec.All() {
		fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render(preview(v)))
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// macroListing renders root-scope macros as define directives.
func macroListing(cfg *lang.Config) string {
	macros := cfg.Macros()

	var b strings.Builder

	for _, name := range slices.Sorted(maps.Keys(macros)) {
		fmt.Fprintf(&b, "  define %s %s\n", name, strconv.Quote(macros[name]))
	}

	return strings.TrimRight(b.String(), "\n")
}
