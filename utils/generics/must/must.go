package must

// Must panics when err is non-nil. For static initialization only.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
