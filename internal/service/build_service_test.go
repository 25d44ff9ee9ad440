package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"robotblocks/internal/domain"
	"robotblocks/internal/service"
	"robotblocks/internal/toolchain"
)

type fakeRunner struct {
	calls   int
	dir     string
	sub     domain.Subcommand
	err     error
	started chan struct{}
	release chan struct{}
}

func (r *fakeRunner) Run(_ context.Context, dir string, sub domain.Subcommand) error {
	r.calls++
	r.dir, r.sub = dir, sub
	if r.started != nil {
		close(r.started)
		<-r.release
	}
	return r.err
}

func detected(ok bool, err error) service.DetectFunc {
	return func(context.Context, []string) (bool, error) { return ok, err }
}

func readyBuild(t *testing.T, runner *fakeRunner) (*service.BuildService, string) {
	t.Helper()
	session := service.NewSession()
	path := filepath.Join(t.TempDir(), "blockly.json")
	session.SetProject(path, nil)
	session.SetRobotPyDetected(true)
	return service.NewBuildService(session, runner, nil), path
}

func TestGenerate_EndToEnd(t *testing.T) {
	svc := service.NewBuildService(service.NewSession(), &fakeRunner{}, nil)
	code, err := svc.Generate([]byte(pwmDoc))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	if !strings.HasPrefix(lines[0], "def ") {
		t.Fatalf("expected def line first, got %q", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], "0.5") {
		t.Errorf("expected 0.5 in statement line, got %q", lines[len(lines)-1])
	}
}

func TestValidate_ReportsOutOfRange(t *testing.T) {
	svc := service.NewBuildService(service.NewSession(), &fakeRunner{}, nil)
	v, err := svc.Validate([]byte(`{"blocks":{"blocks":[{"type":"set_pwm","id":"p","fields":{"ID":1,"VALUE":2}}]}}`))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(v) != 1 || v[0].Field != "VALUE" {
		t.Errorf("unexpected violations %+v", v)
	}
}

func TestRun_WritesOutputAndRuns(t *testing.T) {
	runner := &fakeRunner{}
	svc, path := readyBuild(t, runner)

	if err := svc.Run(context.Background(), []byte(pwmDoc), domain.SubcommandSimulate); err != nil {
		t.Fatalf("Run: %v", err)
	}
	outDir := filepath.Join(filepath.Dir(path), "python")
	if runner.calls != 1 || runner.dir != outDir || runner.sub != domain.SubcommandSimulate {
		t.Fatalf("unexpected runner call %+v", runner)
	}
	code, err := os.ReadFile(filepath.Join(outDir, "generated.py"))
	if err != nil {
		t.Fatalf("generated.py: %v", err)
	}
	want, _ := svc.Generate([]byte(pwmDoc))
	if string(code) != want {
		t.Errorf("generated.py = %q, want %q", code, want)
	}
	if !exists(filepath.Join(outDir, "robot.py")) {
		t.Error("robot.py not copied")
	}
}

func TestRun_PreconditionsBeforeSideEffects(t *testing.T) {
	t.Run("no project", func(t *testing.T) {
		runner := &fakeRunner{}
		session := service.NewSession()
		session.SetRobotPyDetected(true)
		svc := service.NewBuildService(session, runner, nil)
		if err := svc.Run(context.Background(), []byte(pwmDoc), domain.SubcommandDeploy); !errors.Is(err, service.ErrNoProject) {
			t.Fatalf("expected ErrNoProject, got %v", err)
		}
		if runner.calls != 0 {
			t.Error("runner called")
		}
	})

	t.Run("robotpy missing", func(t *testing.T) {
		runner := &fakeRunner{}
		session := service.NewSession()
		path := filepath.Join(t.TempDir(), "blockly.json")
		session.SetProject(path, nil)
		svc := service.NewBuildService(session, runner, nil)
		if err := svc.Run(context.Background(), []byte(pwmDoc), domain.SubcommandDeploy); !errors.Is(err, service.ErrRobotPyMissing) {
			t.Fatalf("expected ErrRobotPyMissing, got %v", err)
		}
		if runner.calls != 0 || exists(filepath.Join(filepath.Dir(path), "python")) {
			t.Error("side effects before precondition failure")
		}
	})
}

func TestRun_ToolchainErrorPassesThrough(t *testing.T) {
	runner := &fakeRunner{err: &toolchain.ToolchainError{Subcommand: domain.SubcommandDeploy, Stderr: "no roboRIO"}}
	svc, _ := readyBuild(t, runner)

	err := svc.Run(context.Background(), []byte(pwmDoc), domain.SubcommandDeploy)
	var tcErr *toolchain.ToolchainError
	if !errors.As(err, &tcErr) || tcErr.Stderr != "no roboRIO" {
		t.Fatalf("expected ToolchainError, got %v", err)
	}
}

func TestRun_SecondRunRejectedWhileBusy(t *testing.T) {
	runner := &fakeRunner{started: make(chan struct{}), release: make(chan struct{})}
	svc, _ := readyBuild(t, runner)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx, []byte(pwmDoc), domain.SubcommandDeploy) }()
	<-runner.started

	if !svc.Running() {
		t.Error("expected Running while robot.py runs")
	}
	if err := svc.Run(ctx, []byte(pwmDoc), domain.SubcommandSimulate); !errors.Is(err, service.ErrRunInProgress) {
		t.Fatalf("expected ErrRunInProgress, got %v", err)
	}
	close(runner.release)
	if err := <-done; err != nil {
		t.Fatalf("first run: %v", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	svc.Wait(waitCtx)
	if svc.Running() {
		t.Error("run should have finished")
	}
}

func TestRun_RefusedAfterWait(t *testing.T) {
	runner := &fakeRunner{}
	svc, path := readyBuild(t, runner)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	svc.Wait(ctx)

	if err := svc.Run(ctx, []byte(pwmDoc), domain.SubcommandDeploy); !errors.Is(err, service.ErrShuttingDown) {
		t.Fatalf("expected ErrShuttingDown, got %v", err)
	}
	if runner.calls != 0 || exists(filepath.Join(filepath.Dir(path), "python")) {
		t.Error("run started during shutdown")
	}
}

func TestNormalize_FillsMissingIDs(t *testing.T) {
	svc := service.NewBuildService(service.NewSession(), &fakeRunner{}, nil)
	doc := `{"blocks":{"blocks":[{"type":"robot_init","inputs":{"DO":{"block":{"type":"set_pwm","fields":{"ID":1,"VALUE":0.5}}}}}]}}`
	out, err := svc.Normalize([]byte(doc))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if strings.Count(string(out), `"id":`) != 2 || strings.Contains(string(out), `"id":""`) {
		t.Errorf("expected two filled ids, got %s", out)
	}
	want, _ := svc.Generate([]byte(doc))
	if got, _ := svc.Generate(out); got != want {
		t.Errorf("code changed: %q vs %q", got, want)
	}
	if _, err := svc.Normalize([]byte(`{"blocks":`)); err == nil {
		t.Error("expected parse error")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name          string
		detect        service.DetectFunc
		wantDetected  bool
		pythonMissing bool
		robotMissing  bool
	}{
		{"installed", detected(true, nil), true, false, false},
		{"robotpy missing", detected(false, nil), false, false, true},
		{"python missing", detected(false, toolchain.ErrPythonMissing), false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := service.NewSession()
			svc := service.NewBuildService(session, &fakeRunner{}, []string{"pip3", "list"}).WithDetector(tt.detect)
			err := svc.Detect(context.Background())
			if session.RobotPyDetected() != tt.wantDetected {
				t.Errorf("detected = %v", session.RobotPyDetected())
			}
			if service.IsPythonMissing(err) != tt.pythonMissing {
				t.Errorf("IsPythonMissing(%v) = %v", err, !tt.pythonMissing)
			}
			if errors.Is(err, service.ErrRobotPyMissing) != tt.robotMissing {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}
