package utils

// Value dereferences v, giving T's zero value for a nil pointer.
func Value[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// Ptr returns a pointer to a copy of v, for optional fields such as a VIP expiry.
func Ptr[T any](v T) *T {
	return &v
}
