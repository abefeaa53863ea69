package cmd

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/gitoverit/internal/log"
)

// Error is a failed command whose message is its stderr output.
// It unwraps to the underlying [exec.ExitError] so callers can inspect the
// exit code.
type Error struct {
	Stderr string
	Err    error
}

func (e *Error) Error() string { return e.Stderr }

func (e *Error) Unwrap() error { return e.Err }

// RunContext executes name with args in dir, returning stderr as the error
// message if it fails. A cancelled context is reported as ctx.Err() so
// callers can tell an abort apart from a failing command.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := OutputContext(ctx, dir, name, args...)
	return err
}

// RunContextEnv is RunContext with extra environment variables
// ("KEY=value") appended to the inherited environment.
func RunContextEnv(ctx context.Context, dir string, env []string, name string, args ...string) error {
	_, err := output(ctx, dir, env, name, args...)
	return err
}

// OutputContext executes name with args in dir and returns stdout, with
// stderr in the error if it fails.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return output(ctx, dir, nil, name, args...)
}

func output(ctx context.Context, dir string, env []string, name string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	if len(env) > 0 {
		c.Env = append(os.Environ(), env...)
	}

	var stderr bytes.Buffer
	c.Stderr = &stderr

	output, err := c.Output()
	done(time.Since(start))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return nil, &Error{Stderr: errMsg, Err: err}
		}
		return nil, err
	}
	return output, nil
}
