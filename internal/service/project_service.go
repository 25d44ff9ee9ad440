package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"robotblocks/internal/document"
	"robotblocks/internal/domain"
)

// Dialogs are the native pickers the project operations need. An empty
// path with a nil error means the user cancelled.
type Dialogs interface {
	ChooseProjectFile(ctx context.Context, defaultDir string) (string, error)
	ChooseDirectory(ctx context.Context, defaultDir string) (string, error)
}

// DirMemory remembers the last directory used in a project dialog.
type DirMemory interface {
	LastDir() string
	SaveLastDir(dir string) error
}

// DecodeFunc parses a workspace document.
type DecodeFunc func(data []byte) (*domain.Workspace, error)

// OpenedProject is returned to the frontend after a successful open.
type OpenedProject struct {
	Path     string `json:"path"`
	Document string `json:"document"`
}

// ProjectChanged is the payload of EventProjectChanged.
type ProjectChanged struct {
	Path     string `json:"path"`
	Document string `json:"document"`
}

// ProjectService opens, creates and saves the project file.
type ProjectService struct {
	session *Session
	dialogs Dialogs
	dirs    DirMemory
	emitter EventEmitter
	decode  DecodeFunc
}

// NewProjectService creates a ProjectService. dirs may be nil.
func NewProjectService(session *Session, dialogs Dialogs, dirs DirMemory, emitter EventEmitter) *ProjectService {
	return &ProjectService{
		session: session,
		dialogs: dialogs,
		dirs:    dirs,
		emitter: emitter,
		decode:  document.Decode,
	}
}

// WithDecoder replaces the workspace parser.
func (s *ProjectService) WithDecoder(decode DecodeFunc) *ProjectService {
	s.decode = decode
	return s
}

// Open asks for a project file, reads it and makes it the tracked project.
// Nothing changes on failure.
func (s *ProjectService) Open(ctx context.Context) (*OpenedProject, error) {
	path, err := s.dialogs.ChooseProjectFile(ctx, s.lastDir())
	if err != nil {
		return nil, fmt.Errorf("open dialog: %w", err)
	}
	if path == "" {
		return nil, ErrNoFileSelected
	}
	if !strings.HasSuffix(path, "json") {
		return nil, ErrNotJSON
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	if _, err := s.decode(data); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}

	s.session.SetProject(path, data)
	s.rememberDir(filepath.Dir(path))
	slog.Info("project opened", "path", path)
	return &OpenedProject{Path: path, Document: string(data)}, nil
}

// Create asks for a directory and tracks <dir>/blockly.json. Nothing is
// written until the first save. Cancelling returns "" and a nil error.
func (s *ProjectService) Create(ctx context.Context) (string, error) {
	dir, err := s.dialogs.ChooseDirectory(ctx, s.lastDir())
	if err != nil {
		return "", fmt.Errorf("directory dialog: %w", err)
	}
	if dir == "" {
		return "", nil
	}

	path := filepath.Join(dir, domain.ProjectFileName)
	s.session.SetProject(path, nil)
	s.rememberDir(dir)
	slog.Info("project created", "path", path)
	return path, nil
}

// Save writes doc verbatim to the tracked project, asking for a directory
// first when there is none. It reports false when the user cancelled.
func (s *ProjectService) Save(ctx context.Context, doc []byte) (bool, error) {
	path := s.session.ProjectPath()
	if path == "" {
		dir, err := s.dialogs.ChooseDirectory(ctx, s.lastDir())
		if err != nil {
			return false, fmt.Errorf("directory dialog: %w", err)
		}
		if dir == "" {
			return false, nil
		}
		path = filepath.Join(dir, domain.ProjectFileName)
		s.rememberDir(dir)
	}

	s.session.expectWrite(path, doc)
	defer s.session.endWrite()
	if err := writeFileAtomic(path, doc); err != nil {
		return false, fmt.Errorf("write project: %w", err)
	}
	s.session.SetProject(path, doc)
	slog.Debug("project saved", "path", path, "bytes", len(doc))
	return true, nil
}

// ExternalChange is fed by the file watcher. When content differs from what
// the session last read or wrote, the frontend is told to reload. Empty
// content is a truncation in progress and is skipped.
func (s *ProjectService) ExternalChange(ctx context.Context, path string, content []byte) {
	if len(bytes.TrimSpace(content)) == 0 {
		return
	}
	if !s.session.observe(path, content) {
		return
	}
	if _, err := s.decode(content); err != nil {
		slog.Warn("external project edit does not parse", "path", path, "err", err)
		return
	}
	slog.Info("project changed on disk", "path", path)
	s.emitter.Emit(ctx, EventProjectChanged, ProjectChanged{Path: path, Document: string(content)})
}

// writeFileAtomic replaces path through a temp file in the same directory,
// so readers never see a truncated project.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".blockly-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func (s *ProjectService) lastDir() string {
	if s.dirs == nil {
		return ""
	}
	return s.dirs.LastDir()
}

func (s *ProjectService) rememberDir(dir string) {
	if s.dirs == nil {
		return
	}
	if err := s.dirs.SaveLastDir(dir); err != nil {
		slog.Warn("remember project dir", "err", err)
	}
}
