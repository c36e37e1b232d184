package maincmd_test

import (
	"bytes"
	"flag"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"

	"github.com/mna/loxvm/internal/filetest"
	"github.com/mna/loxvm/internal/maincmd"
	"github.com/mna/loxvm/lang/compiler"
)

var testUpdateDisassembleTests = flag.Bool("test.update-disassemble-tests", false, "If set, replace expected disassemble test results with actual results.")

func TestDisassembleFiles(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "disassemble", "in"), filepath.Join("testdata", "disassemble", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".lox") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

			_ = maincmd.DisassembleFiles(stdio, compiler.DefaultOptions(), filepath.Join(srcDir, fi.Name()))
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateDisassembleTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateDisassembleTests)
		})
	}
}
