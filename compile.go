package main

import (
	"fmt"
	"os"
)

// CompileFile runs the whole pipeline for one source file: read, tokenize,
// parse statement by statement, emit assembly, write the listing.
func CompileFile(inputPath, outputPath string) error {
	source, err := ReadSourceFile(inputPath)
	if err != nil {
		return err
	}

	tokens, err := NewLexer(source, inputPath).Tokenize()
	if err != nil {
		return err
	}
	if VerboseMode {
		fmt.Fprintf(os.Stderr, "%s: %d token(s)\n", inputPath, len(tokens))
	}

	prog, err := ParseProgram(tokens, inputPath)
	if err != nil {
		return err
	}

	listing, err := NewAssembler(prog.Namespace).EmitProgram(prog)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, []byte(listing), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", outputPath, err)
	}
	if VerboseMode {
		fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", outputPath, len(listing))
	}
	return nil
}
