// internal/providers/ollamacli/provider.go
// Package ollamacli provides an AnswerProvider backed by a local model runner
// invoked as a subprocess (ollama-compatible "run" interface).
package ollamacli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/probeworks/veritas/internal/appconfig"
	"github.com/probeworks/veritas/internal/logging"
	"github.com/probeworks/veritas/internal/providers"
)

const (
	maxStdoutBytes = 1 << 20
	maxStderrBytes = 64 << 10
)

// Provider runs the configured model binary once per query.
type Provider struct {
	binary  string
	model   string
	timeout time.Duration
}

// New constructs a Provider from the application configuration.
func New(cfg *appconfig.Config) *Provider {
	return &Provider{
		binary:  cfg.ModelBinary(),
		model:   cfg.Model.Name,
		timeout: cfg.ModelTimeout(),
	}
}

// System reports the benchmarked system this provider represents.
func (p *Provider) System() providers.System { return providers.SystemLLM }

// Answer invokes the model runner with the query as its prompt. The domain tag
// is not part of the runner's contract and is ignored.
func (p *Provider) Answer(ctx context.Context, query, _ string) (providers.Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := []string{"run", p.model, query}
	logging.LogRequest("VERITAS->LLM", string(p.System()), p.binary, strings.Join(args[:2], " "))

	start := time.Now()
	stdout, stderr, exitCode, err := runCommand(ctx, p.binary, args, maxStdoutBytes, maxStderrBytes)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return providers.Answer{Elapsed: elapsed}, fmt.Errorf("model invocation timed out after %s: %w", p.timeout, context.DeadlineExceeded)
		}
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			detail := strings.TrimSpace(stderr)
			if detail == "" {
				detail = err.Error()
			}
			return providers.Answer{Elapsed: elapsed}, fmt.Errorf("model runner exited with status %d: %s", exitCode, detail)
		}
		return providers.Answer{Elapsed: elapsed}, fmt.Errorf("model invocation failed: %w", err)
	}

	text := strings.TrimSpace(stdout)
	logging.LogRequest("LLM->VERITAS", string(p.System()), p.binary, text)
	return providers.Answer{Text: text, Elapsed: elapsed}, nil
}

// runCommand executes a subprocess with bounded stdout/stderr capture.
func runCommand(ctx context.Context, bin string, args []string, maxStdout, maxStderr int64) (stdout, stderr string, exitCode int, err error) {
	cmd := exec.CommandContext(ctx, bin, args...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return "", "", 127, err
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", "", 127, err
	}

	if err := cmd.Start(); err != nil {
		return "", "", 127, err
	}

	var outBuf, errBuf bytes.Buffer
	outDone := make(chan error, 1)
	errDone := make(chan error, 1)

	go func() {
		_, e := io.Copy(&outBuf, io.LimitReader(stdoutPipe, maxStdout))
		outDone <- e
	}()
	go func() {
		_, e := io.Copy(&errBuf, io.LimitReader(stderrPipe, maxStderr))
		errDone <- e
	}()

	// Drain both pipes before Wait closes them.
	<-outDone
	<-errDone
	waitErr := cmd.Wait()

	stdout = outBuf.String()
	stderr = errBuf.String()

	if waitErr != nil {
		return stdout, stderr, exitStatus(waitErr), waitErr
	}
	return stdout, stderr, 0, nil
}

func exitStatus(err error) int {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return 1
}
