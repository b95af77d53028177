package commands_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"simpletodo/internal/commands"
	"simpletodo/internal/config"
	"simpletodo/internal/exitcode"
	"simpletodo/internal/service"
	"simpletodo/internal/task"
	"simpletodo/internal/testutil"
)

// runCommand is a helper to run a command against svc.
func runCommand(t *testing.T, cmd commands.Command, svc service.Service, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

var (
	walkDog = task.Task{ID: "0192a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b", Text: "Walk dog", CreatedAt: testutil.Now.UnixMilli()}
	buyMilk = task.Task{ID: "0192a1b2-c3d4-7e5f-8a9b-000000000001", Text: "Buy milk", Completed: true, CreatedAt: testutil.Now.Add(-time.Hour).UnixMilli()}
)

// Tests for version command
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "todo add <text...>", "(alias: ls)", "--ephemeral"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

func TestHelpText_UsesRegistry(t *testing.T) {
	reg := commands.NewRegistry()
	if err := reg.Register(&commands.VersionCmd{}); err != nil {
		t.Fatal(err)
	}

	text := commands.HelpText(reg)
	if !strings.Contains(text, "todo version") {
		t.Errorf("missing registered command:\n%s", text)
	}
	if strings.Contains(text, "todo add") {
		t.Errorf("lists unregistered command:\n%s", text)
	}
}

func TestRegistry_RejectsDuplicateAlias(t *testing.T) {
	reg := commands.NewRegistry()
	if err := reg.Register(&commands.RmCmd{}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(&commands.RmCmd{}); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if cmd, ok := reg.Find("delete"); !ok || cmd.Name() != "rm" {
		t.Error("alias lookup failed")
	}
}

// Tests for list command
func TestListCommand_WithTasks(t *testing.T) {
	svc, _ := testutil.NewService(t, walkDog, buyMilk)

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "   1  [ ] Walk dog\n   2  [x] Buy milk\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Long(t *testing.T) {
	svc, _ := testutil.NewService(t, walkDog, buyMilk)

	cmd := &commands.ListCmd{}
	cmd.SetLong(true)
	cmd.SetLocation(time.UTC)
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.Golden(t, "list_long", stdout)
}

func TestListCommand_Empty(t *testing.T) {
	svc, _ := testutil.NewService(t)

	stdout, _, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)
	if code != exitcode.Success || stdout != "no tasks found\n" {
		t.Errorf("got %d %q", code, stdout)
	}

	stdout, _, _ = runCommand(t, &commands.ListCmd{}, svc, nil, true)
	if stdout != "" {
		t.Errorf("expected no output with quiet, got %q", stdout)
	}
}

func TestListCommand_UnexpectedArgument(t *testing.T) {
	svc, _ := testutil.NewService(t)

	_, stderr, code := runCommand(t, &commands.ListCmd{}, svc, []string{"extra"}, false)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unexpected argument: extra\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc, slot := testutil.NewService(t, walkDog)

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Buy", " milk "}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}

	saved := testutil.Saved(t, svc, slot)
	if len(saved) != 2 || saved[0].Text != "Buy  milk" || saved[1].ID != walkDog.ID {
		t.Errorf("unexpected saved tasks: %+v", saved)
	}
}

func TestAddCommand_Blank(t *testing.T) {
	svc, _ := testutil.NewService(t)

	for _, args := range [][]string{nil, {"   "}} {
		_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, args, false)
		if code != exitcode.UserError {
			t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
		}
		if stderr != "error: text required\n" {
			t.Errorf("unexpected stderr: %q", stderr)
		}
	}
	if len(svc.Tasks()) != 0 {
		t.Error("blank add created a task")
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	svc, _ := testutil.NewService(t)

	stdout, _, code := runCommand(t, &commands.AddCmd{}, svc, []string{"x"}, true)
	if code != exitcode.Success || stdout != "" {
		t.Errorf("got %d %q", code, stdout)
	}
}

// Tests for edit command
func TestEditCommand(t *testing.T) {
	svc, _ := testutil.NewService(t, walkDog, buyMilk)

	stdout, stderr, code := runCommand(t, &commands.EditCmd{}, svc, []string{"2", "Buy", "oat", "milk"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	got := svc.Tasks()
	if got[1].Text != "Buy oat milk" || !got[1].Completed || got[1].CreatedAt != buyMilk.CreatedAt {
		t.Errorf("unexpected task after edit: %+v", got[1])
	}
}

func TestEditCommand_ByIDPrefix(t *testing.T) {
	svc, _ := testutil.NewService(t, walkDog, buyMilk)

	_, stderr, code := runCommand(t, &commands.EditCmd{}, svc, []string{"0192a1b2-c3d4-7e5f-8a9b-0c", "Walk the dog"}, false)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}
	if got := svc.Tasks()[0].Text; got != "Walk the dog" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestEditCommand_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{"no ref", nil, "error: task reference required\n"},
		{"no text", []string{"1"}, "error: text required\n"},
		{"blank text", []string{"1", "  "}, "error: text required\n"},
		{"out of range", []string{"3", "x"}, "error: task number out of range: 3\n"},
		{"unknown id", []string{"ffffffff", "x"}, "error: task not found: ffffffff\n"},
		{"ambiguous", []string{"0192", "x"}, "error: ambiguous task reference: 0192\n"},
		{"invalid ref", []string{"ab", "x"}, "error: invalid task reference: ab\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := testutil.NewService(t, walkDog, buyMilk)

			_, stderr, code := runCommand(t, &commands.EditCmd{}, svc, tt.args, false)
			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.wantStderr {
				t.Errorf("expected %q, got %q", tt.wantStderr, stderr)
			}
			if !svc.Tasks().Equal(task.Collection{walkDog, buyMilk}) {
				t.Errorf("tasks changed: %+v", svc.Tasks())
			}
		})
	}
}

// Tests for toggle command
func TestToggleCommand(t *testing.T) {
	svc, _ := testutil.NewService(t, walkDog, buyMilk)

	stdout, _, code := runCommand(t, &commands.ToggleCmd{}, svc, []string{"1"}, false)
	if code != exitcode.Success || stdout != "ok: completed\n" {
		t.Errorf("got %d %q", code, stdout)
	}

	stdout, _, code = runCommand(t, &commands.ToggleCmd{}, svc, []string{"2"}, false)
	if code != exitcode.Success || stdout != "ok: reopened\n" {
		t.Errorf("got %d %q", code, stdout)
	}

	got := svc.Tasks()
	if !got[0].Completed || got[1].Completed {
		t.Errorf("unexpected completion state: %+v", got)
	}
}

func TestToggleCommand_NotFound(t *testing.T) {
	svc, slot := testutil.NewService(t)

	_, stderr, code := runCommand(t, &commands.ToggleCmd{}, svc, []string{"1"}, false)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number out of range: 1\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if saved := testutil.Saved(t, svc, slot); saved != nil {
		t.Errorf("expected nothing saved, got %+v", saved)
	}
}

// Tests for rm command
func TestRmCommand(t *testing.T) {
	svc, slot := testutil.NewService(t, walkDog, buyMilk)

	stdout, _, code := runCommand(t, &commands.RmCmd{}, svc, []string{walkDog.ID}, false)
	if code != exitcode.Success || stdout != "ok\n" {
		t.Errorf("got %d %q", code, stdout)
	}

	saved := testutil.Saved(t, svc, slot)
	if !saved.Equal(task.Collection{buyMilk}) {
		t.Errorf("unexpected saved tasks: %+v", saved)
	}
}

func TestRmCommand_DigitPrefixIsNotAPosition(t *testing.T) {
	tasks := make([]task.Task, 200)
	for i := range tasks {
		tasks[i] = task.Task{ID: fmt.Sprintf("task-%03d", i), Text: "x"}
	}
	tasks[5].ID = "0192a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"
	svc, _ := testutil.NewService(t, tasks...)

	_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"0192"}, false)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}

	got := svc.Tasks()
	if len(got) != 199 {
		t.Fatalf("expected 199 tasks, got %d", len(got))
	}
	if _, ok := got.Find(tasks[5].ID); ok {
		t.Error("task with the matching id was not deleted")
	}
	if _, ok := got.Find(tasks[191].ID); !ok {
		t.Error("task at position 192 was deleted")
	}
}

// Tests for clear command
func TestClearCommand(t *testing.T) {
	tests := []struct {
		name       string
		tasks      []task.Task
		all        bool
		force      bool
		wantCode   int
		wantStdout string
		wantStderr string
		wantLeft   int
	}{
		{"empty", nil, false, true, exitcode.Success, "no tasks to delete\n", "", 0},
		{"completed needs force", []task.Task{walkDog, buyMilk}, false, false, exitcode.UserError, "", "error: would delete 1 completed task (use --force)\n", 2},
		{"completed", []task.Task{walkDog, buyMilk}, false, true, exitcode.Success, "deleted 1 task\n", "", 1},
		{"falls back to all", []task.Task{walkDog}, false, false, exitcode.UserError, "", "error: would delete the only task (use --force)\n", 1},
		{"all needs force", []task.Task{walkDog, buyMilk}, true, false, exitcode.UserError, "", "error: would delete all 2 tasks (use --force)\n", 2},
		{"all", []task.Task{walkDog, buyMilk}, true, true, exitcode.Success, "deleted 2 tasks\n", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := testutil.NewService(t, tt.tasks...)

			cmd := &commands.ClearCmd{}
			cmd.SetAll(tt.all)
			cmd.SetForce(tt.force)
			stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d", tt.wantCode, code)
			}
			if stdout != tt.wantStdout {
				t.Errorf("expected stdout %q, got %q", tt.wantStdout, stdout)
			}
			if stderr != tt.wantStderr {
				t.Errorf("expected stderr %q, got %q", tt.wantStderr, stderr)
			}
			if n := len(svc.Tasks()); n != tt.wantLeft {
				t.Errorf("expected %d tasks left, got %d", tt.wantLeft, n)
			}
		})
	}
}

// Tests for ui command
func TestUICommand_UnexpectedArgument(t *testing.T) {
	svc, _ := testutil.NewService(t)

	_, stderr, code := runCommand(t, &commands.UICmd{In: strings.NewReader("")}, svc, []string{"x"}, false)
	if code != exitcode.UserError || stderr != "error: unexpected argument: x\n" {
		t.Errorf("got %d %q", code, stderr)
	}
}

func TestUICommand_QuitKey(t *testing.T) {
	svc, _ := testutil.NewService(t, walkDog)

	_, stderr, code := runCommand(t, &commands.UICmd{In: strings.NewReader("q")}, svc, nil, false)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
}
