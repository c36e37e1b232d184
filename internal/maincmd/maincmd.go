// Package maincmd wires the CLI surface described in spec.md §6 onto the
// compiler and VM: a single optional script-path argument, a REPL when no
// path is given, and an optional --tracing switch, plus two devtool
// subcommands (tokenize, disassemble) that expose the earlier pipeline
// stages for inspection.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "lox"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<path>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<path>]
       %[1]s tokenize <path>...
       %[1]s disassemble <path>...
       %[1]s -h|--help
       %[1]s -v|--version

Compiler and virtual machine for the %[1]s programming language.

With a <path>, compiles and runs that script. Without one, starts a REPL
that reads and interprets one line at a time from standard input.

The devtool subcommands:
       tokenize <path>...        Run only the scanner and print the
                                 resulting tokens.
       disassemble <path>...     Compile and print the resulting bytecode
                                 without running it.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --tracing                 Trace every instruction the VM executes
                                 to standard error.
       --no-ternary              Disable the "?:" conditional expression.

More information on the %[1]s repository:
       https://github.com/mna/loxvm
`, binName)
)

// Cmd is the flag- and argument-parsed state of one CLI invocation, built
// by mainer.Parser's struct-tag-driven reflection.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Tracing   bool `flag:"tracing"`
	NoTernary bool `flag:"no-ternary"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string)          { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

// devtoolCommands are dispatched through buildCmds; any other invocation
// shape falls through to the spec-mandated run/REPL behavior.
var devtoolCommands = map[string]bool{"tokenize": true, "disassemble": true}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) > 0 && devtoolCommands[c.args[0]] {
		cmdName := c.args[0]
		commands := buildCmds(c)
		c.cmdFn = commands[cmdName]
		if c.cmdFn == nil {
			return fmt.Errorf("unknown command: %s", cmdName)
		}
		if len(c.args[1:]) == 0 {
			return fmt.Errorf("%s: at least one file must be provided", cmdName)
		}
		return nil
	}

	if len(c.args) > 1 {
		return errors.New("expected at most one script path")
	}
	return nil
}

// Exit codes, per spec.md §6.
const (
	exitSuccess       mainer.ExitCode = 0
	exitCompileError  mainer.ExitCode = 65
	exitRuntimeError  mainer.ExitCode = 70
	exitInternalError mainer.ExitCode = 1
	exitIOError       mainer.ExitCode = 74
)

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return exitSuccess
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return exitSuccess
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	if len(c.args) > 0 && devtoolCommands[c.args[0]] {
		if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
			return exitCompileError
		}
		return exitSuccess
	}

	if len(c.args) == 1 {
		return c.runFile(ctx, stdio, c.args[0])
	}
	return c.repl(ctx, stdio)
}

// buildCmds exposes every zero-value-returning-error method of v taking
// (context.Context, mainer.Stdio, []string) as a lowercase-named command.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
