package service

import (
	"bytes"
	"errors"
	"sync"
)

var (
	ErrNoFileSelected = errors.New("no file selected")
	ErrNotJSON        = errors.New("file selected is not a json file")
	ErrNoProject      = errors.New("project directory not open")
	ErrRobotPyMissing = errors.New("robotpy install not detected")
	ErrRunInProgress  = errors.New("robot.py already running for this project")
	ErrShuttingDown   = errors.New("application is shutting down")
)

// ─────────────────────────────────────────────────────────────
// Session: per-process project state
// ─────────────────────────────────────────────────────────────
//
// NoProject until a project is opened, created or first saved; ProjectOpen
// afterwards. Bindings and startup detection run on separate goroutines, so
// every field is read and written under mu.

type Session struct {
	mu              sync.Mutex
	path            string
	robotPyDetected bool
	lastDocument    []byte

	// pending is the document a save is writing right now, so the watcher
	// does not report it before SetProject records it.
	pendingPath     string
	pendingDocument []byte
}

func NewSession() *Session {
	return &Session{}
}

// ProjectPath returns the tracked project file path, or "" when no project
// is open.
func (s *Session) ProjectPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// HasProject reports whether a project path is tracked.
func (s *Session) HasProject() bool {
	return s.ProjectPath() != ""
}

// SetProject tracks path and the document last read from or written to it.
func (s *Session) SetProject(path string, document []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
	s.lastDocument = bytes.Clone(document)
}

func (s *Session) RobotPyDetected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.robotPyDetected
}

func (s *Session) SetRobotPyDetected(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.robotPyDetected = v
}

// expectWrite marks document as about to be written to path.
func (s *Session) expectWrite(path string, document []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingPath = path
	s.pendingDocument = bytes.Clone(document)
}

// endWrite clears the mark set by expectWrite.
func (s *Session) endWrite() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingPath, s.pendingDocument = "", nil
}

// observe records document as the current on-disk content of path and
// reports whether it differs from what the session last saw. Content for a
// path other than the tracked one is ignored.
func (s *Session) observe(path string, document []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" || path != s.path {
		return false
	}
	if bytes.Equal(s.lastDocument, document) {
		return false
	}
	if path == s.pendingPath && bytes.Equal(s.pendingDocument, document) {
		return false
	}
	s.lastDocument = bytes.Clone(document)
	return true
}
