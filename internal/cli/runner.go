// Package cli parses one subcommand per invocation and drives the task store.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo-cli/internal/model"
	"github.com/idilsaglam/todo-cli/internal/store/jsonstore"
	"github.com/idilsaglam/todo-cli/internal/ui"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// TaskStore is the persistence the commands need.
type TaskStore interface {
	Load() ([]model.Task, error)
	Save([]model.Task) error
}

// InteractiveFunc runs the interactive list over tasks and returns the
// edited list and whether anything changed.
type InteractiveFunc func(tasks []model.Task, theme ui.Theme) ([]model.Task, bool, error)

// Options carries the collaborators a command runs against.
type Options struct {
	Store       TaskStore
	UI          *ui.Printer
	Logger      *log.Logger
	Interactive InteractiveFunc // nil uses the Bubble Tea list
}

type command struct {
	verb        string
	text        string
	id          uint32
	interactive bool
}

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

// Run dispatches a subcommand and returns an exit code (0 ok, 1 error, 2 usage).
// Arguments are fully validated before the store is touched.
func Run(args []string, opt Options) int {
	if opt.Logger == nil {
		opt.Logger = log.New(io.Discard)
	}
	cmd, err := parse(args)
	if err != nil {
		var ue *usageError
		if errors.As(err, &ue) && ue.msg != "" {
			opt.UI.Fail(ue.msg)
			fmt.Fprintln(opt.UI.Err)
		}
		PrintHelp(opt.UI.Err)
		return ExitUsage
	}
	opt.Logger.Debug("dispatch", "command", cmd.verb)

	switch cmd.verb {
	case "help":
		PrintHelp(opt.UI.Out)
		return ExitOK
	case "add":
		return doAdd(opt, cmd.text)
	case "list":
		if cmd.interactive {
			return doInteractiveList(opt)
		}
		return doList(opt)
	case "done":
		return doDone(opt, cmd.id)
	case "rm":
		return doRemove(opt, cmd.id)
	case "clear":
		return doClear(opt)
	}
	return ExitUsage
}

func parse(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, &usageError{}
	}
	verb, a := args[0], args[1:]

	switch verb {
	case "help", "-h", "--help":
		return command{verb: "help"}, nil

	case "add":
		if len(a) != 1 {
			return command{}, &usageError{"usage: todo add <text>"}
		}
		return command{verb: verb, text: a[0]}, nil

	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		interactive := fs.Bool("i", false, "interactive list")
		fs.BoolVar(interactive, "interactive", false, "interactive list")
		if err := fs.Parse(a); err != nil || fs.NArg() != 0 {
			return command{}, &usageError{"usage: todo list [-i]"}
		}
		return command{verb: verb, interactive: *interactive}, nil

	case "done", "rm":
		if len(a) != 1 {
			return command{}, &usageError{fmt.Sprintf("usage: todo %s <id>", verb)}
		}
		n, err := strconv.ParseUint(a[0], 10, 32)
		if err != nil {
			return command{}, &usageError{fmt.Sprintf("%s: not a valid id: %s", verb, a[0])}
		}
		return command{verb: verb, id: uint32(n)}, nil

	case "clear":
		if len(a) != 0 {
			return command{}, &usageError{"usage: todo clear"}
		}
		return command{verb: verb}, nil
	}

	return command{}, &usageError{"unknown subcommand: " + verb}
}

// PrintHelp writes the usage text to w.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todo - tiny todo CLI

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  add <text>     Add a new task (quote multi-word text)
  list [-i]      List tasks (-i opens the interactive list)
  done <id>      Mark a task done by id
  rm <id>        Remove a task by id
  clear          Remove all tasks

Flags:
  --config <path>   Settings file (default ~/.todo-cli.toml)
  --theme <name>    classic, neon or mono
  --no-color        Disable colored output
  --debug           Log store activity to stderr

Examples:
  todo add "buy milk"
  todo list
  todo done 2
  todo rm 3
`)
}

// -------------- subcommand impls ----------------

func load(opt Options) ([]model.Task, bool) {
	tasks, err := opt.Store.Load()
	if err != nil {
		opt.UI.Fail("load: " + err.Error())
		return nil, false
	}
	return tasks, true
}

func save(opt Options, tasks []model.Task) bool {
	if err := opt.Store.Save(tasks); err != nil {
		opt.UI.Fail("save: " + err.Error())
		return false
	}
	return true
}

func doAdd(opt Options, text string) int {
	tasks, ok := load(opt)
	if !ok {
		return ExitError
	}
	id, err := jsonstore.NextID(tasks)
	if err != nil {
		opt.UI.Fail("add: " + err.Error())
		return ExitError
	}
	tasks = append(tasks, model.Task{ID: id, Text: text})
	if !save(opt, tasks) {
		return ExitError
	}
	opt.Logger.Debug("task added", "id", id)
	opt.UI.OK("added")
	return ExitOK
}

func doList(opt Options) int {
	tasks, ok := load(opt)
	if !ok {
		return ExitError
	}
	if len(tasks) == 0 {
		opt.UI.Muted("(no tasks)")
		return ExitOK
	}
	for _, t := range tasks {
		opt.UI.Info(formatTask(opt.UI, t))
	}
	return ExitOK
}

func formatTask(p *ui.Printer, t model.Task) string {
	mark := " "
	if t.Done {
		mark = p.Success("✔")
	}
	return fmt.Sprintf("%3d. [%s] %s", t.ID, mark, t.Text)
}

func doDone(opt Options, id uint32) int {
	tasks, ok := load(opt)
	if !ok {
		return ExitError
	}
	if !jsonstore.MarkDone(tasks, id) {
		opt.UI.Info(notFound(id))
		return ExitOK
	}
	if !save(opt, tasks) {
		return ExitError
	}
	opt.UI.OK("marked as done")
	return ExitOK
}

func doRemove(opt Options, id uint32) int {
	tasks, ok := load(opt)
	if !ok {
		return ExitError
	}
	tasks, removed := jsonstore.Remove(tasks, id)
	if !removed {
		opt.UI.Info(notFound(id))
		return ExitOK
	}
	if !save(opt, tasks) {
		return ExitError
	}
	opt.UI.OK("removed")
	return ExitOK
}

func doClear(opt Options) int {
	if _, ok := load(opt); !ok {
		return ExitError
	}
	if !save(opt, []model.Task{}) {
		return ExitError
	}
	opt.UI.OK("cleared")
	return ExitOK
}

func doInteractiveList(opt Options) int {
	tasks, ok := load(opt)
	if !ok {
		return ExitError
	}
	run := opt.Interactive
	if run == nil {
		run = runInteractiveList
	}
	out, changed, err := run(tasks, opt.UI.Theme)
	if err != nil {
		opt.UI.Fail("tui: " + err.Error())
		return ExitError
	}
	if !changed {
		return ExitOK
	}
	if !save(opt, out) {
		return ExitError
	}
	opt.UI.OK("saved")
	return ExitOK
}

func notFound(id uint32) string { return fmt.Sprintf("no task with id %d", id) }
