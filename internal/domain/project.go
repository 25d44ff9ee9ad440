package domain

// ProjectFileName is the document name used when a project is created in a
// directory rather than opened from an existing file.
const ProjectFileName = "blockly.json"

// Output layout written beside the project file.
const (
	OutputDirName     = "python"
	GeneratedFileName = "generated.py"
	RobotFileName     = "robot.py"
)

// Subcommand is the positional argument passed to robot.py.
type Subcommand string

const (
	SubcommandDeploy   Subcommand = "deploy"
	SubcommandSimulate Subcommand = "sim"
)
