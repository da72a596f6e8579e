package cmd

import (
	"context"
	"io"
	"os"
)

type (
	ioKey          struct{}
	errorFormatKey struct{}
)

type ioState struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func withIO(ctx context.Context, in io.Reader, out, err io.Writer) context.Context {
	return context.WithValue(ctx, ioKey{}, ioState{in: in, out: out, err: err})
}

func ioFromContext(ctx context.Context) (ioState, bool) {
	if ctx == nil {
		return ioState{}, false
	}
	state, ok := ctx.Value(ioKey{}).(ioState)
	return state, ok
}

func stdinFromContext(ctx context.Context) io.Reader {
	if state, ok := ioFromContext(ctx); ok && state.in != nil {
		return state.in
	}
	return os.Stdin
}

func stdoutFromContext(ctx context.Context) io.Writer {
	if state, ok := ioFromContext(ctx); ok && state.out != nil {
		return state.out
	}
	return os.Stdout
}

func stderrFromContext(ctx context.Context) io.Writer {
	if state, ok := ioFromContext(ctx); ok && state.err != nil {
		return state.err
	}
	return os.Stderr
}

// WithErrorFormat stores the --error-format value in the context.
func WithErrorFormat(ctx context.Context, format string) context.Context {
	return context.WithValue(ctx, errorFormatKey{}, format)
}

// ErrorFormatFromContext retrieves the --error-format value.
func ErrorFormatFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(errorFormatKey{}).(string); ok {
		return v
	}
	return ""
}
