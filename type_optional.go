package rentcheck

// Optional holds a value that may be absent from the input table.
// Its zero value is absent.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, set: true} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.set }

// IsSet reports whether the value is present.
func (o Optional[T]) IsSet() bool { return o.set }

// Or returns the value if present, def otherwise.
func (o Optional[T]) Or(def T) T {
	if o.set {
		return o.value
	}
	return def
}
