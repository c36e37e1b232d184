package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/loxvm/lang/compiler"
	"github.com/mna/loxvm/lang/value"
)

// internForDisassembly backs a throwaway intern table: disassembling a file
// never runs it, so there is no VM around to own the canonical strings.
func internForDisassembly() compiler.InternFunc {
	seen := make(map[string]*value.ObjString)
	return func(s string) *value.ObjString {
		if obj, ok := seen[s]; ok {
			return obj
		}
		obj := &value.ObjString{Value: s, Hash: value.HashString(s)}
		seen[s] = obj
		return obj
	}
}

// Disassemble compiles each file in args without running it and prints the
// resulting bytecode listing.
func (c *Cmd) Disassemble(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return DisassembleFiles(stdio, compiler.Options{EnableTernary: !c.NoTernary}, args...)
}

// DisassembleFiles compiles each of files without running it and writes the
// resulting bytecode listing to stdio.Stdout, or any compile error to
// stdio.Stderr.
func DisassembleFiles(stdio mainer.Stdio, opts compiler.Options, files ...string) error {
	for _, path := range files {
		if err := disassembleFile(stdio, opts, path); err != nil {
			return err
		}
	}
	return nil
}

func disassembleFile(stdio mainer.Stdio, opts compiler.Options, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return err
	}

	fn, err := compiler.Compile(src, opts, internForDisassembly())
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return err
	}

	fn.Chunk.Disassemble(stdio.Stdout, path)
	return nil
}
