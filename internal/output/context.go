package output

import "context"

// Context keys are private struct types so other packages cannot
// collide with them.
type (
	formatKey  struct{}
	queryKey   struct{}
	optionsKey struct{}
)

// options carries the agent-facing list and prompt flags through
// context as one value.
type options struct {
	yes      bool
	quiet    bool
	limit    int
	sortBy   string
	sortDesc bool
}

func optionsFromContext(ctx context.Context) options {
	if ctx == nil {
		return options{}
	}
	opts, _ := ctx.Value(optionsKey{}).(options)
	return opts
}

func withOptions(ctx context.Context, mutate func(*options)) context.Context {
	opts := optionsFromContext(ctx)
	mutate(&opts)
	return context.WithValue(ctx, optionsKey{}, opts)
}

// WithFormat returns a new context with the output format attached.
func WithFormat(ctx context.Context, format Format) context.Context {
	return context.WithValue(ctx, formatKey{}, format)
}

// FormatFromContext retrieves the output format from the context,
// defaulting to FormatText.
func FormatFromContext(ctx context.Context) Format {
	if v, ok := ctx.Value(formatKey{}).(Format); ok {
		return v
	}
	return FormatText
}

// WithQuery adds a jq query string to context.
func WithQuery(ctx context.Context, query string) context.Context {
	return context.WithValue(ctx, queryKey{}, query)
}

// QueryFromContext retrieves the jq query from context.
func QueryFromContext(ctx context.Context) string {
	if q, ok := ctx.Value(queryKey{}).(string); ok {
		return q
	}
	return ""
}

// WithYes sets the --yes flag in context.
func WithYes(ctx context.Context, yes bool) context.Context {
	return withOptions(ctx, func(o *options) { o.yes = yes })
}

// YesFromContext returns true if the --yes flag is set.
func YesFromContext(ctx context.Context) bool {
	return optionsFromContext(ctx).yes
}

// WithQuiet sets the --quiet flag in context.
func WithQuiet(ctx context.Context, quiet bool) context.Context {
	return withOptions(ctx, func(o *options) { o.quiet = quiet })
}

// QuietFromContext returns true if the --quiet flag is set.
func QuietFromContext(ctx context.Context) bool {
	return optionsFromContext(ctx).quiet
}

// WithLimit sets the --result-limit value in context.
func WithLimit(ctx context.Context, limit int) context.Context {
	return withOptions(ctx, func(o *options) { o.limit = limit })
}

// LimitFromContext returns the --result-limit value (0 = unlimited).
func LimitFromContext(ctx context.Context) int {
	return optionsFromContext(ctx).limit
}

// WithSort sets the sort field and direction in context.
func WithSort(ctx context.Context, field string, desc bool) context.Context {
	return withOptions(ctx, func(o *options) {
		o.sortBy = field
		o.sortDesc = desc
	})
}

// SortFromContext returns the sort field and direction.
func SortFromContext(ctx context.Context) (field string, desc bool) {
	opts := optionsFromContext(ctx)
	return opts.sortBy, opts.sortDesc
}
