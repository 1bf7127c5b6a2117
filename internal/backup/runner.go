package backup

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	apperrors "smartfinance/internal/errors"
)

// Command is one invocation of an external database tool.
type Command struct {
	Name string
	Args []string
	// Env is appended to the child environment only.
	Env        []string
	StdinFile  string
	StdoutFile string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands as child processes and reports a non-zero exit
// as an ExternalToolError carrying the captured stderr.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Env = append(os.Environ(), c.Env...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if c.StdinFile != "" {
		in, err := os.Open(c.StdinFile)
		if err != nil {
			return fmt.Errorf("opening %s input: %w", c.Name, err)
		}
		defer in.Close()
		cmd.Stdin = in
	}

	if c.StdoutFile != "" {
		out, err := os.OpenFile(c.StdoutFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("creating %s output: %w", c.Name, err)
		}
		defer out.Close()
		cmd.Stdout = out
	}

	if err := cmd.Run(); err != nil {
		return apperrors.NewExternalToolError(c.Name, strings.TrimSpace(stderr.String()), err)
	}
	return nil
}
