package toolchain

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"robotblocks/internal/domain"
)

//go:embed templates/robot.py
var templates embed.FS

// ErrPythonMissing is returned by Detect when the package listing command
// cannot be run at all.
var ErrPythonMissing = errors.New("python 3 not found")

// ToolchainError carries what the interpreter wrote to stderr.
type ToolchainError struct {
	Subcommand domain.Subcommand
	Stderr     string
}

func (e *ToolchainError) Error() string {
	return fmt.Sprintf("robot.py %s: %s", e.Subcommand, e.Stderr)
}

// Commands are the argv prefixes used to reach Python.
type Commands struct {
	// Launcher runs a script: "<launcher...> robot.py deploy".
	Launcher []string
	// Pip lists installed packages.
	Pip []string
}

// DefaultCommands returns the platform's stock commands.
func DefaultCommands() Commands {
	return commandsFor(runtime.GOOS)
}

func commandsFor(goos string) Commands {
	if goos == "windows" {
		return Commands{
			Launcher: []string{"py", "-3"},
			Pip:      []string{"py", "-3", "-m", "pip", "list"},
		}
	}
	return Commands{
		Launcher: []string{"python3"},
		Pip:      []string{"pip3", "list"},
	}
}

// RobotTemplate returns the bundled robot.py.
func RobotTemplate() ([]byte, error) {
	return templates.ReadFile("templates/robot.py")
}

// OutputDir is the python directory beside the project file.
func OutputDir(projectPath string) string {
	return filepath.Join(filepath.Dir(projectPath), domain.OutputDirName)
}

// WriteOutput writes code to python/generated.py beside projectPath and copies
// robot.py next to it. It returns the output directory.
func WriteOutput(projectPath, code string) (string, error) {
	dir := OutputDir(projectPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, domain.GeneratedFileName), []byte(code), 0644); err != nil {
		return "", fmt.Errorf("write generated code: %w", err)
	}
	robot, err := RobotTemplate()
	if err != nil {
		return "", fmt.Errorf("read robot template: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, domain.RobotFileName), robot, 0644); err != nil {
		return "", fmt.Errorf("copy robot.py: %w", err)
	}
	return dir, nil
}
