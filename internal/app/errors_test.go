package app

import (
	"errors"
	"fmt"
	"testing"

	"robotblocks/internal/domain"
	"robotblocks/internal/service"
	"robotblocks/internal/toolchain"
)

func TestOpenFailure(t *testing.T) {
	tests := []struct {
		err        error
		title, msg string
	}{
		{service.ErrNoFileSelected, "Error", "No file selected."},
		{service.ErrNotJSON, "Error", "File selected is not a JSON file."},
		{errors.New("read project: permission denied"), "Open Error", "read project: permission denied"},
	}
	for _, tt := range tests {
		title, msg := openFailure(tt.err)
		if title != tt.title || msg != tt.msg {
			t.Errorf("openFailure(%v) = %q, %q", tt.err, title, msg)
		}
	}
}

func TestRunFailure(t *testing.T) {
	stderr := &toolchain.ToolchainError{Subcommand: domain.SubcommandSimulate, Stderr: "Traceback ..."}
	tests := []struct {
		sub        domain.Subcommand
		err        error
		title, msg string
	}{
		{domain.SubcommandDeploy, service.ErrNoProject, "Deploy Unavailable", "Project directory not open."},
		{domain.SubcommandSimulate, service.ErrNoProject, "Simulation Unavailable", "Project directory not open."},
		{domain.SubcommandDeploy, service.ErrRobotPyMissing, "Deploy Unavailable", "RobotPy install not detected."},
		{domain.SubcommandSimulate, service.ErrShuttingDown, "Simulation Unavailable", "The application is shutting down."},
		{domain.SubcommandSimulate, fmt.Errorf("run: %w", stderr), "Simulation Error", "Traceback ..."},
		{domain.SubcommandDeploy, errors.New("write generated code: disk full"), "Deploy Error", "write generated code: disk full"},
	}
	for _, tt := range tests {
		title, msg := runFailure(tt.sub, tt.err)
		if title != tt.title || msg != tt.msg {
			t.Errorf("runFailure(%s, %v) = %q, %q", tt.sub, tt.err, title, msg)
		}
	}
}

func TestDetectionMessage(t *testing.T) {
	if got := detectionMessage(fmt.Errorf("%w: exec: not found", toolchain.ErrPythonMissing)); got != "Python 3 install not detected." {
		t.Errorf("got %q", got)
	}
	if got := detectionMessage(service.ErrRobotPyMissing); got != "RobotPy install not detected." {
		t.Errorf("got %q", got)
	}
}
