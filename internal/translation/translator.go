package translation

import "context"

// Translator turns source text into target-language text.
// Implementations may be slow or fail; callers treat any error as recoverable.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// HealthChecker is implemented by backends that can verify, before a run,
// that they are reachable and serve the configured language pair.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// Func adapts a plain function to the Translator interface.
type Func func(ctx context.Context, text string) (string, error)

// Translate calls f.
func (f Func) Translate(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}
