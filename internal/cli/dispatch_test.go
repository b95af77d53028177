package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"simpletodo/internal/backend/local"
	"simpletodo/internal/cli"
	"simpletodo/internal/commands"
	"simpletodo/internal/config"
	"simpletodo/internal/exitcode"
	"simpletodo/internal/service"
	"simpletodo/internal/storage"
	"simpletodo/internal/task"
	"simpletodo/internal/testutil"
)

// testFactory creates a service factory that returns svc.
func testFactory(svc service.Service) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
		return svc, nil
	}
}

// run dispatches args with an empty config directory.
func run(t *testing.T, factory cli.ServiceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvDataDir, "")
	t.Setenv(config.EnvLogLevel, "")

	var outBuf, errBuf bytes.Buffer
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	svc, _ := testutil.NewService(t)
	_, stderr, code := run(t, testFactory(svc), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	svc, _ := testutil.NewService(t)
	_, stderr, code := run(t, testFactory(svc), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.HasPrefix(stdout, "Usage:") {
		t.Error("expected help output to start with 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, nil, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	_, stderr, code := run(t, nil, "version", "--config")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -config\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_CommandHelpFlag(t *testing.T) {
	stdout, stderr, code := run(t, nil, "add", "-h")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "Usage: todo add <text...>\n" {
		t.Errorf("unexpected usage: %q", stdout)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	svc, _ := testutil.NewService(t,
		task.Task{ID: "b", Text: "Walk dog"},
		task.Task{ID: "a", Text: "Buy milk", Completed: true},
	)
	stdout, stderr, code := run(t, testFactory(svc))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	expected := "   1  [ ] Walk dog\n   2  [x] Buy milk\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestDispatcher_SavesBeforeReturning(t *testing.T) {
	svc, slot := testutil.NewService(t)
	_, stderr, code := run(t, testFactory(svc), "add", "Buy", "milk")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	raw, ok := slot.Value(storage.DefaultKey)
	if !ok {
		t.Fatal("expected collection saved when dispatch returns")
	}
	if !strings.Contains(raw, `"text":"Buy milk"`) {
		t.Errorf("unexpected saved value: %s", raw)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
		return nil, errors.New("disk on fire")
	}
	_, stderr, code := run(t, factory, "list")

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	expected := "error: storage error: disk on fire\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("colour = \"blue\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := run(t, nil, "version", "--config", dir)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.Contains(stderr, "unknown keys: colour") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	svc, _ := testutil.NewService(t)
	_, stderr, code := run(t, testFactory(svc), "list", "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "dispatching") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
}

func TestDispatcher_LocalBackendRoundTrip(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	factory := func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
		return local.New(ctx, cfg, logger)
	}

	if _, stderr, code := run(t, factory, "add", "Buy milk"); code != exitcode.Success {
		t.Fatalf("add failed: %q", stderr)
	}
	if _, stderr, code := run(t, factory, "toggle", "1"); code != exitcode.Success {
		t.Fatalf("toggle failed: %q", stderr)
	}

	stdout, _, _ := run(t, factory, "list")
	if stdout != "   1  [x] Buy milk\n" {
		t.Errorf("unexpected listing: %q", stdout)
	}

	stdout, _, _ = run(t, factory, "list", "--ephemeral")
	if stdout != "no tasks found\n" {
		t.Errorf("ephemeral run should start empty: %q", stdout)
	}
}
