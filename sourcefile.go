package main

import (
	"fmt"
	"os"
	"strings"
)

// SourceFileExt is the required extension for Slate source files.
const SourceFileExt = ".slt"

// ValidateSourcePath checks the extension and that the file exists and is
// readable. All inputs are validated up front so a bad argument is a fatal
// diagnostic before any parsing occurs.
func ValidateSourcePath(path string) error {
	if !strings.HasSuffix(path, SourceFileExt) || len(path) == len(SourceFileExt) {
		return fmt.Errorf("invalid file: %s (source files must end in %s)", path, SourceFileExt)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
		return fmt.Errorf("failed to read from file: %s: %v", path, err)
	}
	return f.Close()
}

// ReadSourceFile validates a source path and returns its contents.
func ReadSourceFile(path string) (string, error) {
	if err := ValidateSourcePath(path); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", path)
		}
		return "", fmt.Errorf("failed to read from file: %s: %v", path, err)
	}
	return string(data), nil
}

// OutputPathFor derives the assembly output path for a source file.
func OutputPathFor(inputPath string) string {
	return strings.TrimSuffix(inputPath, SourceFileExt) + ".s"
}
