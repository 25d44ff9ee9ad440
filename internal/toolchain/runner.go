package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/creack/pty"

	"robotblocks/internal/domain"
)

// Runner invokes robot.py with a subcommand inside an output directory.
type Runner struct {
	Launcher []string
	// OnOutput receives interpreter stdout as it arrives. May be nil.
	OnOutput func(data []byte)
}

// NewRunner creates a runner for the given launcher argv prefix.
func NewRunner(launcher []string, onOutput func(data []byte)) *Runner {
	return &Runner{Launcher: launcher, OnOutput: onOutput}
}

// Run executes "<launcher> robot.py <sub>" in dir and waits for it. Stdout is
// streamed through a pseudo-terminal when one is available; stderr is
// collected, and any stderr output makes the run fail with *ToolchainError.
func (r *Runner) Run(ctx context.Context, dir string, sub domain.Subcommand) error {
	if len(r.Launcher) == 0 {
		return errors.New("run robot.py: empty launcher")
	}

	var stderr bytes.Buffer
	cmd := r.command(ctx, dir, sub, &stderr)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		slog.Debug("pty unavailable, using pipes", "err", err)
		stderr.Reset()
		cmd = r.command(ctx, dir, sub, &stderr)
		cmd.Stdout = outputWriter(r.OnOutput)
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("start interpreter: %w", err)
		}
	} else {
		r.pump(ptmx)
		ptmx.Close()
	}

	waitErr := cmd.Wait()
	if msg := strings.TrimRight(stderr.String(), "\n"); msg != "" {
		return &ToolchainError{Subcommand: sub, Stderr: msg}
	}
	if waitErr != nil {
		// Only stderr output counts as failure; a bare exit status is logged.
		slog.Warn("interpreter exited", "subcommand", sub, "err", waitErr)
	}
	return nil
}

func (r *Runner) command(ctx context.Context, dir string, sub domain.Subcommand, stderr io.Writer) *exec.Cmd {
	args := append(append([]string{}, r.Launcher[1:]...), domain.RobotFileName, string(sub))
	cmd := exec.CommandContext(ctx, r.Launcher[0], args...)
	cmd.Dir = dir
	cmd.Stderr = stderr
	return cmd
}

// pump copies pty output to OnOutput until the child closes its side.
func (r *Runner) pump(ptmx io.Reader) {
	buf := make([]byte, 32768)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 && r.OnOutput != nil {
			data := make([]byte, n)
			copy(data, buf[:n])
			r.OnOutput(data)
		}
		if err != nil {
			return
		}
	}
}

type outputWriter func(data []byte)

func (w outputWriter) Write(p []byte) (int, error) {
	if w != nil {
		data := make([]byte, len(p))
		copy(data, p)
		w(data)
	}
	return len(p), nil
}
