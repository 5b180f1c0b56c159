package shell

import (
	"strings"
)

// Command is a single external invocation. Exactly one of Script or Args is set:
// Script is handed to the host shell, Args is executed directly.
type Command struct {
	Script string
	Args   []string
}

// Sh returns a command interpreted by the host shell.
func Sh(script string) Command {
	return Command{Script: script}
}

// Argv returns a command that runs program with args, no shell involved.
func Argv(program string, args ...string) Command {
	return Command{Args: append([]string{program}, args...)}
}

// Empty reports whether there is nothing to run.
func (c Command) Empty() bool {
	if c.Script != "" {
		return strings.TrimSpace(c.Script) == ""
	}
	return len(c.Args) == 0 || c.Args[0] == ""
}

// String returns the command as it would be typed at a prompt.
func (c Command) String() string {
	if c.Script != "" {
		return c.Script
	}
	return strings.Join(c.Args, " ")
}

// argv returns the program and arguments to hand to exec.
func (c Command) argv() (string, []string) {
	if c.Script != "" {
		return "sh", []string{"-c", c.Script}
	}
	return c.Args[0], c.Args[1:]
}
