package hostcli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

// XdotoolSink drives script execution through the xdotool/xsel
// command-line tools on X11, the same "shell out to an external
// executable named in settings" pattern core/git and cli/dashboard_cmd.go
// use for git plumbing and browser launching. Paths to the executables
// come from core.Settings so a host without xdotool installed can point
// at a compatible fork.
type XdotoolSink struct {
	Xdotool string // defaults to "xdotool"
	Xsel    string // defaults to "xsel"
}

func NewXdotoolSink(xdotool, xsel string) *XdotoolSink {
	return &XdotoolSink{Xdotool: orDefault(xdotool, "xdotool"), Xsel: orDefault(xsel, "xsel")}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func (s *XdotoolSink) Type(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	return exec.CommandContext(ctx, s.Xdotool, "type", "--clearmodifiers", "--", text).Run()
}

func (s *XdotoolSink) Tab(ctx context.Context) error {
	return exec.CommandContext(ctx, s.Xdotool, "key", "Tab").Run()
}

func (s *XdotoolSink) Return(ctx context.Context) error {
	return exec.CommandContext(ctx, s.Xdotool, "key", "Return").Run()
}

// Paste issues Ctrl+V and carries no payload of its own: it pastes
// whatever the clipboard already holds, e.g. text staged with ClipboardSet.
func (s *XdotoolSink) Paste(ctx context.Context) error {
	return exec.CommandContext(ctx, s.Xdotool, "key", "ctrl+v").Run()
}

func (s *XdotoolSink) Remind(ctx context.Context, msg string) error {
	return notify(ctx, "passforge", msg)
}

func (s *XdotoolSink) Sleep(ctx context.Context, seconds float64) error {
	t := time.NewTimer(time.Duration(seconds * float64(time.Second)))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ClipboardSet copies text to the system clipboard using the clipboard
// tool appropriate to the host OS, mirroring cli/dashboard_cmd.go's
// runtime.GOOS dispatch over external executables.
func ClipboardSet(ctx context.Context, xsel, text string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "pbcopy")
	case "windows":
		cmd = exec.CommandContext(ctx, "clip")
	default:
		cmd = exec.CommandContext(ctx, orDefault(xsel, "xsel"), "--clipboard", "--input")
	}
	cmd.Stdin = bytes.NewReader([]byte(text))
	return cmd.Run()
}

// notify surfaces msg through the host's desktop notifier, falling back
// to stderr when none is available (e.g. over SSH or in CI).
func notify(ctx context.Context, title, msg string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", msg, title)
		cmd = exec.CommandContext(ctx, "osascript", "-e", script)
	case "linux":
		if _, err := exec.LookPath("notify-send"); err == nil {
			cmd = exec.CommandContext(ctx, "notify-send", title, msg)
		}
	}
	if cmd == nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", title, msg)
		return nil
	}
	return cmd.Run()
}

// StdoutSink types scripts to stdout instead of a live window, for
// previewing a script or driving it over a remote session with no X11
// display — the "echo instead of act" sink cli/show_cmd.go's --json flag
// plays the same role for, rendering instead of acting on findings.
type StdoutSink struct {
	out *os.File
}

func NewStdoutSink() *StdoutSink { return &StdoutSink{out: os.Stdout} }

func (s *StdoutSink) Type(_ context.Context, text string) error {
	_, err := fmt.Fprint(s.out, text)
	return err
}

func (s *StdoutSink) Tab(_ context.Context) error {
	_, err := fmt.Fprint(s.out, "\t")
	return err
}

func (s *StdoutSink) Return(_ context.Context) error {
	_, err := fmt.Fprintln(s.out)
	return err
}

func (s *StdoutSink) Paste(_ context.Context) error {
	_, err := fmt.Fprint(s.out, "[paste]")
	return err
}

func (s *StdoutSink) Remind(_ context.Context, msg string) error {
	_, err := fmt.Fprintf(s.out, "\n[remind: %s]\n", msg)
	return err
}

func (s *StdoutSink) Sleep(ctx context.Context, seconds float64) error {
	t := time.NewTimer(time.Duration(seconds * float64(time.Second)))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
