// Package ptr helps filling optional fields such as the measurements of a profile request.
package ptr

// Ref returns a pointer to a copy of v.
func Ref[T any](v T) *T {
	return &v
}
