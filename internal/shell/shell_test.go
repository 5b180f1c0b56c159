package shell

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"syscall"
	"testing"

	"github.com/pablasso/fwtask/internal/testutil"
)

func TestCommand_String(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"shell script", Sh("cargo build --release"), "cargo build --release"},
		{"argv", Argv("cargo", "clean"), "cargo clean"},
		{"argv without args", Argv("make"), "make"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommand_Empty(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want bool
	}{
		{"zero value", Command{}, true},
		{"blank script", Sh("   "), true},
		{"empty program", Command{Args: []string{""}}, true},
		{"script", Sh("true"), false},
		{"argv", Argv("true"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExec_Success(t *testing.T) {
	var stdout bytes.Buffer
	e := &Exec{Stdout: &stdout}

	res := e.Execute(context.Background(), Sh("echo hello"))
	if !res.Succeeded() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if got := strings.TrimSpace(stdout.String()); got != "hello" {
		t.Errorf("stdout = %q, want %q", got, "hello")
	}
}

func TestExec_ArgvIsNotShellInterpreted(t *testing.T) {
	var stdout bytes.Buffer
	e := &Exec{Stdout: &stdout}

	res := e.Execute(context.Background(), Argv("echo", "$HOME"))
	if !res.Succeeded() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "$HOME" {
		t.Errorf("stdout = %q, want literal $HOME", got)
	}
}

func TestExec_NonZeroExit(t *testing.T) {
	e := &Exec{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	res := e.Execute(context.Background(), Sh("exit 3"))
	if res.Succeeded() {
		t.Fatal("expected failure for non-zero exit")
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}

	var exitErr *ExitError
	if !errors.As(res.Err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T", res.Err)
	}
	if exitErr.Code != 3 {
		t.Errorf("ExitError.Code = %d, want 3", exitErr.Code)
	}
	if !strings.Contains(exitErr.Error(), `"exit 3"`) || !strings.Contains(exitErr.Error(), "code 3") {
		t.Errorf("unexpected message: %q", exitErr.Error())
	}
}

func TestExec_KilledBySignal(t *testing.T) {
	e := &Exec{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	res := e.Execute(context.Background(), Sh("kill -9 $$"))
	if res.Succeeded() {
		t.Fatal("expected failure for a killed process")
	}

	var exitErr *ExitError
	if !errors.As(res.Err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T", res.Err)
	}
	if exitErr.Signal != syscall.SIGKILL {
		t.Errorf("Signal = %v, want %v", exitErr.Signal, syscall.SIGKILL)
	}
	if !strings.Contains(exitErr.Error(), "killed by signal 9") {
		t.Errorf("unexpected message: %q", exitErr.Error())
	}
	if strings.Contains(exitErr.Error(), "exited with code") {
		t.Errorf("a killed process should not be reported as an exit code: %q", exitErr.Error())
	}
}

func TestExec_SpawnFailure(t *testing.T) {
	e := &Exec{}

	res := e.Execute(context.Background(), Argv("fwtask-no-such-program-xyz", "--release"))
	if res.Succeeded() {
		t.Fatal("expected failure for missing program")
	}

	var spawnErr *SpawnError
	if !errors.As(res.Err, &spawnErr) {
		t.Fatalf("expected *SpawnError, got %T: %v", res.Err, res.Err)
	}
	var exitErr *ExitError
	if errors.As(res.Err, &exitErr) {
		t.Error("spawn failure must not be reported as an exit failure")
	}
	if spawnErr.Command.String() != "fwtask-no-such-program-xyz --release" {
		t.Errorf("unexpected command in error: %q", spawnErr.Command.String())
	}
}

func TestExec_EmptyCommand(t *testing.T) {
	originalCommandContext := CommandContext
	defer func() {
		CommandContext = originalCommandContext
	}()

	recorder := testutil.NewCommandRecorder(nil)
	CommandContext = recorder.Func()

	res := (&Exec{}).Execute(context.Background(), Command{})
	if !errors.Is(res.Err, ErrEmptyCommand) {
		t.Fatalf("expected ErrEmptyCommand, got %v", res.Err)
	}
	if len(recorder.Recorded()) != 0 {
		t.Errorf("no process should be created for an empty command, got %v", recorder.Recorded())
	}
}

func TestExec_UsesCommandContext(t *testing.T) {
	originalCommandContext := CommandContext
	defer func() {
		CommandContext = originalCommandContext
	}()

	recorder := testutil.NewCommandRecorder(map[string]int{"cargo clean": 101})
	CommandContext = recorder.Func()

	e := &Exec{}
	if res := e.Execute(context.Background(), Sh("cargo build")); !res.Succeeded() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	res := e.Execute(context.Background(), Argv("cargo", "clean"))
	if res.ExitCode != 101 {
		t.Errorf("ExitCode = %d, want 101", res.ExitCode)
	}

	calls := recorder.Recorded()
	want := []string{"cargo build", "cargo clean"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestDryRun(t *testing.T) {
	var out bytes.Buffer
	d := &DryRun{Out: &out}

	res := d.Execute(context.Background(), Sh("cargo build --release"))
	if !res.Succeeded() {
		t.Fatalf("dry run should always succeed, got %v", res.Err)
	}
	if out.String() != "$ cargo build --release\n" {
		t.Errorf("output = %q", out.String())
	}

	if res := d.Execute(context.Background(), Command{}); !errors.Is(res.Err, ErrEmptyCommand) {
		t.Errorf("expected ErrEmptyCommand for empty command, got %v", res.Err)
	}
}

func TestExec_MockedCommands(t *testing.T) {
	originalCommandContext := CommandContext
	defer func() {
		CommandContext = originalCommandContext
	}()

	t.Run("output is streamed to stdout", func(t *testing.T) {
		CommandContext = testutil.MockCommandFunc("Finished release target")

		var stdout bytes.Buffer
		res := (&Exec{Stdout: &stdout}).Execute(context.Background(), Argv("cargo", "build"))
		if !res.Succeeded() {
			t.Fatalf("expected success, got %v", res.Err)
		}
		if stdout.String() != "Finished release target" {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("exit code is reported", func(t *testing.T) {
		CommandContext = testutil.MockCommandFuncFail(4)

		res := (&Exec{}).Execute(context.Background(), Argv("srec_cat", "in", "-binary"))
		var exitErr *ExitError
		if !errors.As(res.Err, &exitErr) || exitErr.Code != 4 {
			t.Fatalf("expected exit code 4, got %v", res.Err)
		}
		if exitErr.Command.String() != "srec_cat in -binary" {
			t.Errorf("error should name the original command, got %q", exitErr.Command.String())
		}
	})
}
