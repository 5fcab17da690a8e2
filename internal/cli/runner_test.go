package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/idilsaglam/todo-cli/internal/model"
	"github.com/idilsaglam/todo-cli/internal/store/jsonstore"
	"github.com/idilsaglam/todo-cli/internal/ui"
)

type harness struct {
	store    *jsonstore.Store
	out, err *bytes.Buffer
	opt      Options
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store: jsonstore.New(filepath.Join(t.TempDir(), ".todo-cli.json")),
		out:   &bytes.Buffer{},
		err:   &bytes.Buffer{},
	}
	h.opt = Options{
		Store: h.store,
		UI:    ui.NewPrinter(h.out, h.err, ui.ColorNever, ui.ThemeByName("classic")),
	}
	return h
}

// run resets captured output and executes one invocation.
func (h *harness) run(args ...string) int {
	h.out.Reset()
	h.err.Reset()
	return Run(args, h.opt)
}

func (h *harness) tasks(t *testing.T) []model.Task {
	t.Helper()
	tasks, err := h.store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return tasks
}

func TestEndToEndScenario(t *testing.T) {
	h := newHarness(t)

	if code := h.run("add", "buy milk"); code != ExitOK {
		t.Fatalf("add exit = %d, stderr %q", code, h.err.String())
	}
	if got := h.out.String(); got != "✓ added\n" {
		t.Errorf("add output = %q", got)
	}
	want := []model.Task{{ID: 1, Text: "buy milk", Done: false}}
	if got := h.tasks(t); !reflect.DeepEqual(got, want) {
		t.Fatalf("store = %#v, want %#v", got, want)
	}

	if code := h.run("list"); code != ExitOK {
		t.Fatalf("list exit = %d", code)
	}
	if got := h.out.String(); got != "  1. [ ] buy milk\n" {
		t.Errorf("list output = %q", got)
	}

	if code := h.run("done", "1"); code != ExitOK {
		t.Fatalf("done exit = %d", code)
	}
	if got := h.out.String(); got != "✓ marked as done\n" {
		t.Errorf("done output = %q", got)
	}
	if got := h.tasks(t); !got[0].Done {
		t.Errorf("task 1 should be done, got %#v", got)
	}

	if code := h.run("list"); code != ExitOK || h.out.String() != "  1. [✔] buy milk\n" {
		t.Errorf("list after done = %d %q", code, h.out.String())
	}

	if code := h.run("rm", "2"); code != ExitOK {
		t.Fatalf("rm exit = %d", code)
	}
	if got := h.out.String(); got != "no task with id 2\n" {
		t.Errorf("rm output = %q", got)
	}
	if got := h.tasks(t); len(got) != 1 {
		t.Errorf("rm of unknown id changed the store: %#v", got)
	}

	if code := h.run("clear"); code != ExitOK || h.out.String() != "✓ cleared\n" {
		t.Fatalf("clear = %d %q", code, h.out.String())
	}
	if got := h.tasks(t); len(got) != 0 {
		t.Errorf("store should be empty, got %#v", got)
	}

	if code := h.run("list"); code != ExitOK {
		t.Fatalf("list exit = %d", code)
	}
	if got := h.out.String(); got != "(no tasks)\n" {
		t.Errorf("empty list output = %q", got)
	}
}

func TestListEmptyStoreWithoutFile(t *testing.T) {
	h := newHarness(t)

	if code := h.run("list"); code != ExitOK {
		t.Fatalf("exit = %d", code)
	}
	if h.out.String() != "(no tasks)\n" {
		t.Errorf("got %q", h.out.String())
	}
	if _, err := os.Stat(h.store.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("list must not create the store file")
	}
}

func TestListFormatting(t *testing.T) {
	h := newHarness(t)
	seed := []model.Task{
		{ID: 1, Text: "a", Done: true},
		{ID: 42, Text: "", Done: false},
		{ID: 1000, Text: "wide id", Done: false},
	}
	if err := h.store.Save(seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	h.run("list")
	want := "  1. [✔] a\n 42. [ ] \n1000. [ ] wide id\n"
	if got := h.out.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDeletedIDsAreNotReused(t *testing.T) {
	h := newHarness(t)
	h.run("add", "a")
	h.run("add", "b")
	h.run("rm", "1")
	if h.out.String() != "✓ removed\n" {
		t.Errorf("rm output = %q", h.out.String())
	}
	h.run("add", "c")

	want := []model.Task{{ID: 2, Text: "b"}, {ID: 3, Text: "c"}}
	if got := h.tasks(t); !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestAddAssignsIncreasingIDs(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 5; i++ {
		if code := h.run("add", "task"); code != ExitOK {
			t.Fatalf("add #%d exit = %d", i, code)
		}
	}
	for i, task := range h.tasks(t) {
		if task.ID != uint32(i+1) {
			t.Errorf("task %d has id %d, want %d", i, task.ID, i+1)
		}
	}
}

func TestAddAcceptsTextVerbatim(t *testing.T) {
	tests := []string{"", "  padded  ", "line\nbreak", "\x07bell", strings.Repeat("x", 10000)}
	for _, text := range tests {
		h := newHarness(t)
		if code := h.run("add", text); code != ExitOK {
			t.Fatalf("add %q exit = %d", text, code)
		}
		if got := h.tasks(t); len(got) != 1 || got[0].Text != text {
			t.Errorf("stored %#v, want text %q", got, text)
		}
	}
}

func TestDoneTwiceSucceeds(t *testing.T) {
	h := newHarness(t)
	h.run("add", "a")

	for i := 0; i < 2; i++ {
		if code := h.run("done", "1"); code != ExitOK {
			t.Fatalf("done #%d exit = %d", i, code)
		}
		if h.out.String() != "✓ marked as done\n" {
			t.Errorf("done #%d output = %q", i, h.out.String())
		}
	}
	if got := h.tasks(t); !got[0].Done {
		t.Errorf("task should stay done")
	}
}

func TestNotFoundDoesNotSave(t *testing.T) {
	h := newHarness(t)
	h.run("add", "a")
	before, _ := os.ReadFile(h.store.Path())

	for _, verb := range []string{"done", "rm"} {
		if code := h.run(verb, "7"); code != ExitOK {
			t.Errorf("%s exit = %d", verb, code)
		}
		if h.out.String() != "no task with id 7\n" {
			t.Errorf("%s output = %q", verb, h.out.String())
		}
	}
	after, _ := os.ReadFile(h.store.Path())
	if !bytes.Equal(before, after) {
		t.Errorf("store changed on not-found")
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"no args", nil, "Usage:"},
		{"unknown", []string{"frobnicate"}, "unknown subcommand: frobnicate"},
		{"add without text", []string{"add"}, "usage: todo add <text>"},
		{"add with two args", []string{"add", "a", "b"}, "usage: todo add <text>"},
		{"done without id", []string{"done"}, "usage: todo done <id>"},
		{"done non-numeric", []string{"done", "abc"}, "done: not a valid id: abc"},
		{"rm negative", []string{"rm", "-1"}, "rm: not a valid id: -1"},
		{"rm too large", []string{"rm", "4294967296"}, "rm: not a valid id: 4294967296"},
		{"list extra arg", []string{"list", "x"}, "usage: todo list"},
		{"list bad flag", []string{"list", "-z"}, "usage: todo list"},
		{"clear extra arg", []string{"clear", "now"}, "usage: todo clear"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			// A corrupt store proves parsing happens before any load.
			if err := os.WriteFile(h.store.Path(), []byte("garbage"), 0o644); err != nil {
				t.Fatal(err)
			}

			if code := h.run(tt.args...); code != ExitUsage {
				t.Errorf("exit = %d, want %d", code, ExitUsage)
			}
			if !strings.Contains(h.err.String(), tt.wantMsg) {
				t.Errorf("stderr %q does not contain %q", h.err.String(), tt.wantMsg)
			}
			if strings.Contains(h.err.String(), "load:") {
				t.Errorf("store was loaded on a usage error: %q", h.err.String())
			}
		})
	}
}

func TestHelp(t *testing.T) {
	for _, arg := range []string{"help", "-h", "--help"} {
		h := newHarness(t)
		if code := h.run(arg); code != ExitOK {
			t.Errorf("%s exit = %d", arg, code)
		}
		if !strings.Contains(h.out.String(), "Subcommands:") {
			t.Errorf("%s output missing help: %q", arg, h.out.String())
		}
	}
}

func TestCorruptStoreBlocksEveryCommand(t *testing.T) {
	commands := [][]string{
		{"add", "x"},
		{"list"},
		{"list", "-i"},
		{"done", "1"},
		{"rm", "1"},
		{"clear"},
	}
	for _, args := range commands {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			h := newHarness(t)
			h.opt.Interactive = func([]model.Task, ui.Theme) ([]model.Task, bool, error) {
				t.Fatal("interactive list must not start on a corrupt store")
				return nil, false, nil
			}
			corrupt := []byte(`"just a string"`)
			if err := os.WriteFile(h.store.Path(), corrupt, 0o644); err != nil {
				t.Fatal(err)
			}

			if code := h.run(args...); code != ExitError {
				t.Errorf("exit = %d, want %d", code, ExitError)
			}
			if !strings.Contains(h.err.String(), "corrupt JSON database") {
				t.Errorf("stderr = %q", h.err.String())
			}
			if !strings.Contains(h.err.String(), h.store.Path()) {
				t.Errorf("stderr should name the path: %q", h.err.String())
			}
			after, _ := os.ReadFile(h.store.Path())
			if !bytes.Equal(after, corrupt) {
				t.Errorf("corrupt file was modified: %q", after)
			}
		})
	}
}

type failingStore struct {
	tasks   []model.Task
	saveErr error
	saves   int
}

func (f *failingStore) Load() ([]model.Task, error) { return append([]model.Task(nil), f.tasks...), nil }
func (f *failingStore) Save([]model.Task) error {
	f.saves++
	return f.saveErr
}

func TestSaveFailureIsFatal(t *testing.T) {
	var out, errw bytes.Buffer
	fs := &failingStore{
		tasks:   []model.Task{{ID: 1, Text: "a"}},
		saveErr: &jsonstore.IOError{Op: "write", Path: "/ro/.todo-cli.json", Err: os.ErrPermission},
	}
	opt := Options{Store: fs, UI: ui.NewPrinter(&out, &errw, ui.ColorNever, ui.ThemeByName(""))}

	for _, args := range [][]string{{"add", "b"}, {"done", "1"}, {"rm", "1"}, {"clear"}} {
		out.Reset()
		errw.Reset()
		if code := Run(args, opt); code != ExitError {
			t.Errorf("%v exit = %d, want %d", args, code, ExitError)
		}
		if !strings.Contains(errw.String(), "save: failed to write /ro/.todo-cli.json") {
			t.Errorf("%v stderr = %q", args, errw.String())
		}
		if out.Len() != 0 {
			t.Errorf("%v should not confirm on failure, got %q", args, out.String())
		}
	}
	if fs.saves != 4 {
		t.Errorf("expected exactly one save per mutating command, got %d", fs.saves)
	}
}

func TestAddWhenIDsExhausted(t *testing.T) {
	h := newHarness(t)
	if err := h.store.Save([]model.Task{{ID: 4294967295, Text: "last"}}); err != nil {
		t.Fatal(err)
	}
	if code := h.run("add", "one more"); code != ExitError {
		t.Errorf("exit = %d, want %d", code, ExitError)
	}
	if !strings.Contains(h.err.String(), "task ids exhausted") {
		t.Errorf("stderr = %q", h.err.String())
	}
}

func TestInteractiveListSavesChanges(t *testing.T) {
	h := newHarness(t)
	h.run("add", "a")
	h.run("add", "b")

	var gotTheme string
	h.opt.Interactive = func(tasks []model.Task, theme ui.Theme) ([]model.Task, bool, error) {
		gotTheme = theme.Name
		tasks[0].Done = true
		return tasks[:1], true, nil
	}
	if code := h.run("list", "--interactive"); code != ExitOK {
		t.Fatalf("exit = %d, stderr %q", code, h.err.String())
	}
	if h.out.String() != "✓ saved\n" {
		t.Errorf("output = %q", h.out.String())
	}
	if gotTheme != "classic" {
		t.Errorf("theme = %q", gotTheme)
	}
	want := []model.Task{{ID: 1, Text: "a", Done: true}}
	if got := h.tasks(t); !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestInteractiveListUnchangedSkipsSave(t *testing.T) {
	h := newHarness(t)
	h.opt.Interactive = func(tasks []model.Task, _ ui.Theme) ([]model.Task, bool, error) {
		return tasks, false, nil
	}
	if code := h.run("list", "-i"); code != ExitOK {
		t.Fatalf("exit = %d", code)
	}
	if _, err := os.Stat(h.store.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("unchanged interactive session must not write the store")
	}
}

func TestInteractiveListError(t *testing.T) {
	h := newHarness(t)
	h.opt.Interactive = func([]model.Task, ui.Theme) ([]model.Task, bool, error) {
		return nil, false, errors.New("no tty")
	}
	if code := h.run("list", "-i"); code != ExitError {
		t.Errorf("exit = %d", code)
	}
	if !strings.Contains(h.err.String(), "tui: no tty") {
		t.Errorf("stderr = %q", h.err.String())
	}
}
