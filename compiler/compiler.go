// Package compiler implements the native syntactic validator spec §4.5
// names as an external collaborator: a C++17 toolchain invocation
// bounded by a timeout, writing and cleaning up its own scratch files.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ErrTimeout is returned (wrapped) when the compiler does not finish
// within the configured timeout.
var ErrTimeout = errors.New("compiler: timed out")

// DefaultTimeout is the wall-clock bound spec §4.5 assigns to the
// native validator call.
const DefaultTimeout = 30 * time.Second

// Validator shells out to a C++17 toolchain to syntax-check source
// (spec §4.5 "The native validator call").
type Validator struct {
	binary  string // "" means no compiler was found on PATH
	timeout time.Duration
	tmpDir  string
	logger  *slog.Logger
}

// New locates a C++ compiler and returns a Validator bound to it.
// binaryOverride, if non-empty, is used as-is (spec §6 "COMPILER_PATH");
// otherwise PATH is searched, preferring g++ and falling back to
// clang++. A Validator with no compiler found still works: Validate
// degrades to always-ok, logged at info level, so the rest of the
// engine stays testable without a toolchain installed (spec.md §12
// supplemented behavior).
func New(binaryOverride string, timeout time.Duration, logger *slog.Logger) *Validator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	v := &Validator{timeout: timeout, tmpDir: os.TempDir(), logger: logger}
	if binaryOverride != "" {
		v.binary = binaryOverride
		return v
	}
	for _, candidate := range []string{"g++", "clang++"} {
		if path, err := exec.LookPath(candidate); err == nil {
			v.binary = path
			return v
		}
	}
	logger.Info("no C++ compiler found on PATH; syntax validation disabled")
	return v
}

// Validate compiles source with `-fsyntax-only -std=c++17` under a
// bounded timeout and reports whether it is syntactically valid,
// returning the combined stdout+stderr diagnostic on failure (spec
// §4.5). Its scratch file is UUID-scoped and removed on every exit path
// (spec §5 "Resource lifecycle").
func (v *Validator) Validate(ctx context.Context, source string) (ok bool, diagnostics string, err error) {
	if v.binary == "" {
		return true, "", nil
	}

	srcPath := filepath.Join(v.tmpDir, fmt.Sprintf("trace-%s.cpp", uuid.NewString()))
	if werr := os.WriteFile(srcPath, []byte(source), 0600); werr != nil {
		return false, "", fmt.Errorf("compiler: writing scratch source: %w", werr)
	}
	defer os.Remove(srcPath)

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, v.binary, "-std=c++17", "-fsyntax-only", srcPath)
	out, runErr := cmd.CombinedOutput()

	if ctx.Err() == context.DeadlineExceeded {
		return false, fmt.Sprintf("compilation timed out after %s", v.timeout), fmt.Errorf("%w", ErrTimeout)
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return false, string(out), nil
		}
		return false, "", fmt.Errorf("compiler: invoking %s: %w", v.binary, runErr)
	}
	return true, "", nil
}
