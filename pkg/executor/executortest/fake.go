// Package executortest provides a scriptable Executor for tests.
package executortest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/lecture-flow/pkg/executor"
)

// Handler answers one command.
type Handler func(cmd executor.Command) (executor.Output, error)

// Fake records every command and dispatches it to Handle.
type Fake struct {
	mu       sync.Mutex
	Commands []executor.Command
	Handle   Handler
	Missing  map[string]bool
}

// Run records cmd and calls Handle, or succeeds with empty output.
func (f *Fake) Run(ctx context.Context, cmd executor.Command) (executor.Output, error) {
	f.mu.Lock()
	f.Commands = append(f.Commands, cmd)
	h := f.Handle
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return executor.Output{}, err
	}
	if h == nil {
		return executor.Output{}, nil
	}
	return h(cmd)
}

// LookPath fails for names listed in Missing.
func (f *Fake) LookPath(name string) (string, error) {
	if f.Missing[name] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}

// Calls returns the commands recorded for name.
func (f *Fake) Calls(name string) []executor.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []executor.Command
	for _, c := range f.Commands {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Fail builds a non-zero exit result with stderr.
func Fail(name, stderr string) (executor.Output, error) {
	out := executor.Output{Stderr: stderr, ExitCode: 1}
	return out, &executor.ExitError{Name: name, ExitCode: 1, Stderr: stderr, Err: fmt.Errorf("exit status 1")}
}

// FlagValue returns the value of "--flag=value" or "--flag value" in args.
func FlagValue(args []string, flag string) string {
	for i, a := range args {
		if strings.HasPrefix(a, flag+"=") {
			return strings.TrimPrefix(a, flag+"=")
		}
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
