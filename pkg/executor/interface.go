package executor

import "context"

// Command describes one external tool invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

// Output is the captured result of a finished command.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor defines the interface for executing external commands
type Executor interface {
	Run(ctx context.Context, cmd Command) (Output, error)
	LookPath(name string) (string, error)
}
