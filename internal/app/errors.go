package app

import (
	"errors"

	"robotblocks/internal/domain"
	"robotblocks/internal/service"
	"robotblocks/internal/toolchain"
)

// Dialog titles and messages for failed operations.
const (
	titleError         = "Error"
	titleOpenError     = "Open Error"
	titleSaveError     = "Save Error"
	titleDeployNA      = "Deploy Unavailable"
	titleSimulateNA    = "Simulation Unavailable"
	titleDeployError   = "Deploy Error"
	titleSimulateError = "Simulation Error"
	msgPythonMissing   = "Python 3 install not detected."
	msgRobotPyMissing  = "RobotPy install not detected."
	msgNoProject       = "Project directory not open."
	msgNoFileSelected  = "No file selected."
	msgNotJSON         = "File selected is not a JSON file."
	msgRunInProgress   = "robot.py is already running for this project."
	msgShuttingDown    = "The application is shutting down."
)

// openFailure returns the dialog for a failed OpenProject.
func openFailure(err error) (title, message string) {
	switch {
	case errors.Is(err, service.ErrNoFileSelected):
		return titleError, msgNoFileSelected
	case errors.Is(err, service.ErrNotJSON):
		return titleError, msgNotJSON
	}
	return titleOpenError, err.Error()
}

// runFailure returns the dialog for a failed Deploy or Simulate.
func runFailure(sub domain.Subcommand, err error) (title, message string) {
	unavailable, failed := titleDeployNA, titleDeployError
	if sub == domain.SubcommandSimulate {
		unavailable, failed = titleSimulateNA, titleSimulateError
	}

	var tcErr *toolchain.ToolchainError
	switch {
	case errors.Is(err, service.ErrNoProject):
		return unavailable, msgNoProject
	case errors.Is(err, service.ErrRobotPyMissing):
		return unavailable, msgRobotPyMissing
	case errors.Is(err, service.ErrRunInProgress):
		return unavailable, msgRunInProgress
	case errors.Is(err, service.ErrShuttingDown):
		return unavailable, msgShuttingDown
	case errors.As(err, &tcErr):
		return failed, tcErr.Stderr
	}
	return failed, err.Error()
}

// detectionMessage returns the startup warning for a failed RobotPy probe.
func detectionMessage(err error) string {
	if service.IsPythonMissing(err) {
		return msgPythonMissing
	}
	return msgRobotPyMissing
}
