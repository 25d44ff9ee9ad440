package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"robotblocks/internal/document"
	"robotblocks/internal/domain"
	"robotblocks/internal/service"
)

// ─────────────────────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────────────────────

type fakeDialogs struct {
	file      string
	dir       string
	err       error
	fileCalls int
	dirCalls  int
}

func (d *fakeDialogs) ChooseProjectFile(_ context.Context, _ string) (string, error) {
	d.fileCalls++
	return d.file, d.err
}

func (d *fakeDialogs) ChooseDirectory(_ context.Context, _ string) (string, error) {
	d.dirCalls++
	return d.dir, d.err
}

type memoryDirs struct{ dir string }

func (m *memoryDirs) LastDir() string { return m.dir }

func (m *memoryDirs) SaveLastDir(dir string) error {
	m.dir = dir
	return nil
}

// countingDecoder wraps document.Decode and counts calls.
func countingDecoder(n *int) service.DecodeFunc {
	return func(data []byte) (*domain.Workspace, error) {
		*n++
		return document.Decode(data)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

const pwmDoc = `{"blocks":{"languageVersion":0,"blocks":[
	{"type":"robot_init","id":"init","x":10,"y":10,"inputs":{"DO":{"block":
		{"type":"set_pwm","id":"pwm","fields":{"ID":1,"VALUE":0.5}}}}}]}}`

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ─────────────────────────────────────────────────────────────
// runGuard tests
// ─────────────────────────────────────────────────────────────

func TestRunGuard_TryAcquire(t *testing.T) {
	var g service.ExportedRunGuard

	if !g.TryAcquire("/a/blockly.json") {
		t.Fatal("expected first TryAcquire to succeed")
	}
	if g.TryAcquire("/a/blockly.json") {
		t.Fatal("expected second TryAcquire for same key to fail")
	}
	if !g.Busy("/a/blockly.json") || g.Busy("/b/blockly.json") {
		t.Fatal("unexpected Busy result")
	}
	if !g.TryAcquire("/b/blockly.json") {
		t.Fatal("expected TryAcquire for different key to succeed")
	}
	g.Release("/a/blockly.json")
	g.Release("/b/blockly.json")

	if !g.TryAcquire("/a/blockly.json") {
		t.Fatal("expected TryAcquire to succeed after release")
	}
	g.Release("/a/blockly.json")
}

func TestRunGuard_Wait(t *testing.T) {
	var g service.ExportedRunGuard
	g.TryAcquire("job")

	done := make(chan struct{})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		g.Wait(ctx)
		close(done)
	}()
	go func() {
		time.Sleep(20 * time.Millisecond)
		g.Release("job")
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait timed out")
	}
}

func TestRunGuard_WaitRefusesNewRuns(t *testing.T) {
	var g service.ExportedRunGuard
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	g.Wait(ctx)

	if !g.Closing() {
		t.Fatal("expected Closing after Wait")
	}
	if g.TryAcquire("job") {
		t.Fatal("expected TryAcquire to fail once closing")
	}
	if g.Busy("job") {
		t.Fatal("refused key should not be busy")
	}
}

// ─────────────────────────────────────────────────────────────
// Session / MockEmitter tests
// ─────────────────────────────────────────────────────────────

func TestSession_Lifecycle(t *testing.T) {
	s := service.NewSession()
	if s.HasProject() || s.RobotPyDetected() {
		t.Fatal("new session should be empty")
	}
	s.SetProject(filepath.Join("robot", "blockly.json"), nil)
	s.SetRobotPyDetected(true)
	if !s.HasProject() || !s.RobotPyDetected() {
		t.Fatal("session did not record state")
	}
}

func TestMockEmitter_Named(t *testing.T) {
	m := &service.MockEmitter{}
	ctx := context.Background()

	m.Emit(ctx, service.EventToolchainOutput, "a")
	m.Emit(ctx, service.EventProjectChanged, nil)
	m.Emit(ctx, service.EventToolchainOutput, "b")

	if len(m.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(m.Events))
	}
	out := m.Named(service.EventToolchainOutput)
	if len(out) != 2 || out[1].Data != "b" {
		t.Errorf("unexpected filtered events %+v", out)
	}
}
