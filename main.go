package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/xyproto/env/v2"
)

// A tiny compiler that turns Slate source files into x86-64 assembly

const versionString = "slatec 0.4.0"

// VerboseMode enables tracing to stderr; it defaults to the
// SLATEC_VERBOSE environment variable and can be forced with -v.
var VerboseMode = env.Bool("SLATEC_VERBOSE")

func main() {
	var (
		outputPath  string
		verbose     bool
		watchMode   bool
		showVersion bool
	)
	flag.StringVar(&outputPath, "o", "", "output path for the assembly listing (single input only)")
	flag.BoolVar(&verbose, "v", false, "verbose mode")
	flag.BoolVar(&watchMode, "watch", false, "recompile the input files whenever they change")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(versionString)
		return
	}

	if verbose {
		VerboseMode = true
	}
	useColor := !env.Bool("NO_COLOR")

	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintf(os.Stderr, "%s: fatal error: no input files\n", os.Args[0])
		os.Exit(1)
	}
	if outputPath != "" && len(inputs) > 1 {
		fmt.Fprintf(os.Stderr, "%s: fatal error: -o cannot be used with multiple input files\n", os.Args[0])
		os.Exit(1)
	}

	// Every input must be a readable .slt file before any parsing starts.
	for _, input := range inputs {
		if err := ValidateSourcePath(input); err != nil {
			fmt.Fprintf(os.Stderr, "%s: fatal error: %v\n", os.Args[0], err)
			os.Exit(1)
		}
	}

	if watchMode {
		if err := watchAndCompile(inputs, outputPath, useColor); err != nil {
			reportError(err, useColor)
			os.Exit(1)
		}
		return
	}

	for _, input := range inputs {
		if err := CompileFile(input, outputFor(input, outputPath)); err != nil {
			reportError(err, useColor)
			os.Exit(1)
		}
	}
}

func outputFor(input, override string) string {
	if override != "" {
		return override
	}
	return OutputPathFor(input)
}

// reportError prints a compile error with source context when available.
func reportError(err error, useColor bool) {
	if ce, ok := err.(*CompilerError); ok {
		fmt.Fprint(os.Stderr, ce.Format(useColor))
		return
	}
	fmt.Fprintf(os.Stderr, "%s: fatal error: %v\n", os.Args[0], err)
}

// watchAndCompile compiles every input once, then recompiles a file each
// time it changes on disk. Compile errors are reported but do not stop the
// watch loop.
func watchAndCompile(inputs []string, outputPath string, useColor bool) error {
	recompile := func(input string) {
		if err := CompileFile(input, outputFor(input, outputPath)); err != nil {
			reportError(err, useColor)
			return
		}
		fmt.Fprintf(os.Stderr, "recompiled %s\n", input)
	}

	for _, input := range inputs {
		if err := CompileFile(input, outputFor(input, outputPath)); err != nil {
			reportError(err, useColor)
		}
	}

	fw, err := NewFileWatcher(recompile)
	if err != nil {
		return err
	}
	defer fw.Close()

	for _, input := range inputs {
		if err := fw.AddFile(input); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "watching %d file(s), press Ctrl-C to stop\n", len(inputs))
	fw.Watch() // blocks
	return nil
}
