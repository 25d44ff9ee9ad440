package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"robotblocks/internal/config"
	mcpserver "robotblocks/internal/mcp"
	"robotblocks/internal/service"
	"robotblocks/internal/toolchain"
)

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no
// GUI. Stdout belongs to the protocol, so nothing else may write to it.
func ServeMCP(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmds := cfg.Commands()
	builds := service.NewBuildService(service.NewSession(), toolchain.NewRunner(cmds.Launcher, nil), cmds.Pip)
	srv := mcpserver.New(mcpserver.Deps{Builds: builds})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ServeStdio() }()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
	case <-ctx.Done():
		slog.Info("mcp: interrupted")
	}
	return nil
}
