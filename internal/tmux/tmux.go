// Package tmux opens terminal applications in tmux windows through a
// control-mode client.
package tmux

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// ErrNoSession is returned when no tmux session can be targeted.
var ErrNoSession = errors.New("tmux: no current session")

type tmuxClient interface {
	ListClients() ([]*gotmux.Client, error)
	DisplayMessage(target, format string) (string, error)
	Command(parts ...string) (string, error)
	Close() error
}

var newTmux = func(socketPath string) (tmuxClient, error) {
	if socketPath != "" {
		return gotmux.NewTmux(socketPath)
	}
	return gotmux.DefaultTmux()
}

// WindowOptions describes a window to open.
type WindowOptions struct {
	Name    string
	Dir     string
	Command []string
}

// Inside reports whether the process runs inside a tmux client.
func Inside() bool {
	return strings.TrimSpace(os.Getenv("TMUX")) != ""
}

// ResolveSocketPath picks the server socket: the flag, then
// PIE_LAUNCHER_TMUX_SOCKET, then the socket of the surrounding tmux, then the
// default socket of the current user.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("PIE_LAUNCHER_TMUX_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

// CurrentSession returns the session the launcher's pane belongs to, or the
// session of the first attached non-control client.
func CurrentSession(socketPath string) (string, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return "", err
	}
	defer client.Close()
	if name := currentSessionName(client); name != "" {
		return name, nil
	}
	return "", ErrNoSession
}

func currentSessionName(client tmuxClient) string {
	if pane := strings.TrimSpace(os.Getenv("TMUX_PANE")); pane != "" {
		if name, err := client.DisplayMessage(pane, "#{session_name}"); err == nil {
			if name = strings.TrimSpace(name); name != "" {
				return name
			}
		}
	}
	if clients, err := client.ListClients(); err == nil {
		for _, c := range clients {
			if c != nil && !c.ControlMode && c.Session != "" {
				return c.Session
			}
		}
	}
	return ""
}

// NewWindow opens a window running opts.Command in the current session.
func NewWindow(socketPath string, opts WindowOptions) error {
	if len(opts.Command) == 0 {
		return errors.New("tmux: empty window command")
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()

	session := currentSessionName(client)
	if session == "" {
		return ErrNoSession
	}
	if _, err := client.Command(newWindowArgs(session, opts)...); err != nil {
		return fmt.Errorf("new-window in %s: %w", session, err)
	}
	return nil
}

func newWindowArgs(session string, opts WindowOptions) []string {
	args := []string{"new-window", "-t", session + ":"}
	if name := strings.TrimSpace(opts.Name); name != "" {
		args = append(args, "-n", name)
	}
	if opts.Dir != "" {
		args = append(args, "-c", opts.Dir)
	}
	args = append(args, "--")
	return append(args, quoteArgs(opts.Command)...)
}

// quoteArgs single-quotes each word so tmux hands the command to the shell
// unchanged.
func quoteArgs(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		if w != "" && !strings.ContainsAny(w, " \t\n'\"\\$`;&|<>(){}*?[]#~") {
			out[i] = w
			continue
		}
		out[i] = "'" + strings.ReplaceAll(w, "'", `'\''`) + "'"
	}
	return out
}
