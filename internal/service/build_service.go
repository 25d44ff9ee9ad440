package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"robotblocks/internal/codegen"
	"robotblocks/internal/document"
	"robotblocks/internal/domain"
	"robotblocks/internal/registry"
	"robotblocks/internal/toolchain"
)

// Runner runs robot.py with a subcommand inside the output directory.
type Runner interface {
	Run(ctx context.Context, dir string, sub domain.Subcommand) error
}

// DetectFunc reports whether RobotPy is installed using the pip command.
type DetectFunc func(ctx context.Context, pip []string) (bool, error)

// BuildService turns the workspace into Python and drives the toolchain.
type BuildService struct {
	session *Session
	runner  Runner
	pip     []string
	detect  DetectFunc
	decode  DecodeFunc
	guard   runGuard
}

// NewBuildService creates a BuildService using the given toolchain commands.
func NewBuildService(session *Session, runner Runner, pip []string) *BuildService {
	return &BuildService{
		session: session,
		runner:  runner,
		pip:     pip,
		detect:  toolchain.Detect,
		decode:  document.Decode,
	}
}

// WithDetector replaces the RobotPy probe.
func (s *BuildService) WithDetector(detect DetectFunc) *BuildService {
	s.detect = detect
	return s
}

// WithDecoder replaces the workspace parser.
func (s *BuildService) WithDecoder(decode DecodeFunc) *BuildService {
	s.decode = decode
	return s
}

// Generate renders the Python for a workspace document.
func (s *BuildService) Generate(doc []byte) (string, error) {
	ws, err := s.decode(doc)
	if err != nil {
		return "", fmt.Errorf("parse workspace: %w", err)
	}
	return codegen.Generate(ws), nil
}

// Normalize re-encodes doc in the editor's serialization. Blocks written
// without an id get one, so the result loads as a project file.
func (s *BuildService) Normalize(doc []byte) ([]byte, error) {
	ws, err := s.decode(doc)
	if err != nil {
		return nil, fmt.Errorf("parse workspace: %w", err)
	}
	out, err := document.Encode(ws)
	if err != nil {
		return nil, fmt.Errorf("encode workspace: %w", err)
	}
	return out, nil
}

// Validate reports field values outside their block's declared constraints.
func (s *BuildService) Validate(doc []byte) ([]registry.Violation, error) {
	ws, err := s.decode(doc)
	if err != nil {
		return nil, fmt.Errorf("parse workspace: %w", err)
	}
	return registry.Validate(ws), nil
}

// Run generates code for doc, writes it beside the project and runs
// "robot.py <sub>". Preconditions are checked before anything is written.
func (s *BuildService) Run(ctx context.Context, doc []byte, sub domain.Subcommand) error {
	path := s.session.ProjectPath()
	if path == "" {
		return ErrNoProject
	}
	if !s.session.RobotPyDetected() {
		return ErrRobotPyMissing
	}
	if !s.guard.TryAcquire(path) {
		if s.guard.Closing() {
			return ErrShuttingDown
		}
		return ErrRunInProgress
	}
	defer s.guard.Release(path)

	code, err := s.Generate(doc)
	if err != nil {
		return err
	}
	dir, err := toolchain.WriteOutput(path, code)
	if err != nil {
		return err
	}

	slog.Info("running robot.py", "subcommand", sub, "dir", dir)
	if err := s.runner.Run(ctx, dir, sub); err != nil {
		return err
	}
	slog.Info("robot.py finished", "subcommand", sub)
	return nil
}

// Running reports whether a run is in flight for the open project.
func (s *BuildService) Running() bool {
	path := s.session.ProjectPath()
	return path != "" && s.guard.Busy(path)
}

// Detect probes for RobotPy and records the result in the session. It
// returns toolchain.ErrPythonMissing (wrapped) when Python cannot be run and
// ErrRobotPyMissing when the package is absent.
func (s *BuildService) Detect(ctx context.Context) error {
	ok, err := s.detect(ctx, s.pip)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRobotPyMissing
	}
	s.session.SetRobotPyDetected(true)
	slog.Info("robotpy detected")
	return nil
}

// Wait refuses further runs and blocks until in-flight runs finish or ctx
// is done.
func (s *BuildService) Wait(ctx context.Context) {
	s.guard.Wait(ctx)
}

// IsPythonMissing reports whether err came from a failed Python probe.
func IsPythonMissing(err error) bool {
	return errors.Is(err, toolchain.ErrPythonMissing)
}
