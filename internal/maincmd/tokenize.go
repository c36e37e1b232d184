package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/loxvm/lang/scanner"
	"github.com/mna/loxvm/lang/token"
)

// Tokenize runs only the scanner over each file in args and prints the
// resulting tokens, one per line, in the form "<line>: <kind> '<lexeme>'".
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(stdio, args...)
}

// TokenizeFiles scans each of files and writes its tokens to stdio.Stdout,
// or any read error to stdio.Stderr.
func TokenizeFiles(stdio mainer.Stdio, files ...string) error {
	for _, path := range files {
		if err := tokenizeFile(stdio, path); err != nil {
			return err
		}
	}
	return nil
}

func tokenizeFile(stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return err
	}

	var sc scanner.Scanner
	sc.Init(src)
	for {
		tok := sc.Scan()
		fmt.Fprintf(stdio.Stdout, "%4d: %-12s '%s'\n", tok.Line, tok.Kind, tok.Lexeme)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}
