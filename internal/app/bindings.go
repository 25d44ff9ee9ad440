package app

import (
	"log/slog"

	"robotblocks/internal/domain"
	"robotblocks/internal/registry"
	"robotblocks/internal/service"
)

// ============================================================
// Project
// ============================================================

// OpenProject asks for a project file and returns its document. Failures are
// shown as dialogs and yield nil.
func (a *App) OpenProject() *service.OpenedProject {
	p, err := a.projects.Open(a.ctx)
	if err != nil {
		a.showError(openFailure(err))
		return nil
	}
	a.watchProject()
	return p
}

// CreateProject asks for a directory and returns the new project path, or ""
// if the user cancelled.
func (a *App) CreateProject() string {
	path, err := a.projects.Create(a.ctx)
	if err != nil {
		a.showError(titleError, err.Error())
		return ""
	}
	if path != "" {
		a.watchProject()
	}
	return path
}

// SaveProject writes the serialized workspace. It returns false when nothing
// was written.
func (a *App) SaveProject(document string) bool {
	saved, err := a.projects.Save(a.ctx, []byte(document))
	if err != nil {
		a.showError(titleSaveError, err.Error())
		return false
	}
	if saved {
		a.watchProject()
	}
	return saved
}

// ProjectPath returns the tracked project file, or "".
func (a *App) ProjectPath() string {
	return a.session.ProjectPath()
}

// ============================================================
// Code generation and toolchain
// ============================================================

// GenerateCode renders the workspace document to Python for the preview pane.
func (a *App) GenerateCode(document string) (string, error) {
	return a.builds.Generate([]byte(document))
}

// ValidateDocument lists field values outside their declared constraints.
func (a *App) ValidateDocument(document string) ([]registry.Violation, error) {
	v, err := a.builds.Validate([]byte(document))
	if v == nil {
		v = []registry.Violation{}
	}
	return v, err
}

// Deploy generates code and runs "robot.py deploy".
func (a *App) Deploy(document string) bool {
	return a.run(document, domain.SubcommandDeploy)
}

// Simulate generates code and runs "robot.py sim".
func (a *App) Simulate(document string) bool {
	return a.run(document, domain.SubcommandSimulate)
}

// ToolchainRunning reports whether robot.py is running for the open project.
func (a *App) ToolchainRunning() bool {
	return a.builds.Running()
}

// RobotPyDetected reports the outcome of the startup probe.
func (a *App) RobotPyDetected() bool {
	return a.session.RobotPyDetected()
}

func (a *App) run(document string, sub domain.Subcommand) bool {
	if err := a.builds.Run(a.ctx, []byte(document), sub); err != nil {
		slog.Error("robot.py failed", "subcommand", sub, "err", err)
		a.showError(runFailure(sub, err))
		return false
	}
	return true
}

// ============================================================
// Block registry
// ============================================================

// BlockDefinitions returns the Blockly JSON definitions of the custom blocks.
func (a *App) BlockDefinitions() []registry.Definition {
	return registry.Definitions()
}

// Toolbox returns the category toolbox.
func (a *App) Toolbox() registry.ToolboxItem {
	return registry.Toolbox()
}
