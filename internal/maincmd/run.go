package maincmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/mna/mainer"

	"github.com/mna/loxvm/lang/compiler"
	"github.com/mna/loxvm/lang/vm"
)

// newVM builds the VM a runFile or repl invocation interprets with, wired up
// from the flags mainer parsed onto c.
func (c *Cmd) newVM(stdio mainer.Stdio) *vm.VM {
	env := loadEnvConfig()
	return vm.New(stdio.Stdout, stdio.Stderr, vm.Options{
		Compiler:      compiler.Options{EnableTernary: !c.NoTernary},
		Tracing:       c.Tracing,
		StackCapacity: env.StackCapacity,
	})
}

// runFile reads path, interprets it as a whole script, and maps the result
// to the exit codes spec.md §6 defines.
func (c *Cmd) runFile(ctx context.Context, stdio mainer.Stdio, path string) mainer.ExitCode {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return exitIOError
	}

	machine := c.newVM(stdio)
	if err := machine.Interpret(src); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return exitCodeFor(err)
	}
	return exitSuccess
}

// repl reads one line at a time from stdio.Stdin and interprets each
// independently against a single, persistent VM, so declarations made on one
// line are visible on the next (spec.md §6). A line that fails to compile or
// run does not end the session; only EOF or a read error on stdin does.
func (c *Cmd) repl(ctx context.Context, stdio mainer.Stdio) mainer.ExitCode {
	machine := c.newVM(stdio)
	scan := bufio.NewScanner(stdio.Stdin)

	for {
		fmt.Fprint(stdio.Stdout, "> ")
		if !scan.Scan() {
			fmt.Fprintln(stdio.Stdout)
			if err := scan.Err(); err != nil && !errors.Is(err, io.EOF) {
				fmt.Fprintf(stdio.Stderr, "%s\n", err)
				return exitIOError
			}
			return exitSuccess
		}

		line := scan.Text()
		if err := machine.Interpret([]byte(line)); err != nil {
			fmt.Fprintf(stdio.Stderr, "%s\n", err)
		}
	}
}

// exitCodeFor classifies an error returned by vm.VM.Interpret into the exit
// code spec.md §6 assigns it.
func exitCodeFor(err error) mainer.ExitCode {
	// compiler.Compile reports every diagnostic through a *multierror.Error,
	// even when there is exactly one (spec.md §4.3.4).
	var merr *multierror.Error
	if errors.As(err, &merr) {
		return exitCompileError
	}

	var rerr *vm.RuntimeError
	if errors.As(err, &rerr) {
		return exitRuntimeError
	}

	var ierr *vm.InternalError
	if errors.As(err, &ierr) {
		return exitInternalError
	}

	return exitInternalError
}
