package output

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ConsoleOutput writes status lines for the CLI. Results go through a
// Formatter; ConsoleOutput is for everything around them.
type ConsoleOutput struct {
	mu      sync.Mutex
	writer  io.Writer
	errors  io.Writer
	verbose bool
}

// ConsoleConfig configures console output behavior
type ConsoleConfig struct {
	// Verbose enables Info lines
	Verbose bool

	// Writer is the output destination (default: os.Stderr)
	Writer io.Writer

	// ErrorWriter receives Error lines (default: os.Stderr)
	ErrorWriter io.Writer
}

// NewConsoleOutput creates a new console output handler
func NewConsoleOutput(config ConsoleConfig) *ConsoleOutput {
	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}
	errWriter := config.ErrorWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}

	return &ConsoleOutput{
		writer:  writer,
		errors:  errWriter,
		verbose: config.Verbose,
	}
}

// Info writes an informational message when verbose
func (c *ConsoleOutput) Info(format string, args ...any) {
	if !c.verbose {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.writer, "[INFO] %s\n", fmt.Sprintf(format, args...))
}

// Error writes an error message
func (c *ConsoleOutput) Error(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.errors, "[ERROR] %s\n", fmt.Sprintf(format, args...))
}
