package llm

import "context"

type purposeKey struct{}

// WithPurpose tags the context with what this request is for ("lesson",
// "grading"). The logging decorator records the tag on each event.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom reads the purpose tag, or "unknown" when the caller never
// set one.
func PurposeFrom(ctx context.Context) string {
	if purpose, ok := ctx.Value(purposeKey{}).(string); ok {
		return purpose
	}
	return "unknown"
}
