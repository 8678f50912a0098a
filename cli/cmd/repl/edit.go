package repl

import (
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultEditor = "vi"

// editor returns the user's preferred editor command.
func editor() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}

	return defaultEditor
}

// editCommand suspends the REPL, opens the source file in the user's editor
// and reloads the configuration once the editor exits.
func (m model) editCommand() (tea.Cmd, error) {
	if m.opts.path == "" {
		return nil, ErrNoEditPath
	}

	if m.opts.reload == nil {
		return nil, ErrNoReload
	}

	reload, ctx := m.opts.reload, m.ctx

	// The editor string may carry arguments ("code --wait"), so it is run
	// through the shell with the path passed as a positional parameter.
	c := exec.CommandContext(ctx, "sh", "-c", editor()+` "$1"`, "sh", m.opts.path)

	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			return reloadMsg{err: err}
		}

		cfg, err := reload(ctx)

		return reloadMsg{cfg: cfg, err: err}
	}), nil
}
