package vm

import (
	"strings"

	"github.com/mna/loxvm/lang/chunk"
)

// traceInstruction logs the stack and the instruction about to execute,
// gated behind Options.Tracing (the "--tracing" CLI switch, spec.md §6).
// Grounded on the ecosystem convention of routing optional VM tracing
// through logrus at debug level rather than writing straight to stderr.
func (vm *VM) traceInstruction(chk *chunk.Chunk, ip int) {
	var sb strings.Builder
	sb.WriteString("          ")
	for _, v := range vm.stack {
		sb.WriteString("[ ")
		sb.WriteString(v.String())
		sb.WriteString(" ]")
	}

	var listing strings.Builder
	chk.DisassembleInstruction(&listing, ip)

	vm.log.WithFields(map[string]any{
		"stack": sb.String(),
	}).Debug(strings.TrimSuffix(listing.String(), "\n"))
}
