package forms

// Draft is an immutable form value. Edits never mutate a draft in place:
// Apply copies the record, runs the edit over the copy and returns the
// result as a new draft, so a failed submit can always fall back to the
// value it started from.
type Draft[T any] struct {
	value T
}

// Seeded starts a draft from a fully-defaulted record (empty for create,
// a Seed* value for edit).
func Seeded[T any](value T) Draft[T] {
	return Draft[T]{value: value}
}

// Apply produces the next draft. The receiver is left untouched.
func (d Draft[T]) Apply(fn func(*T)) Draft[T] {
	next := d.value
	fn(&next)
	return Draft[T]{value: next}
}

func (d Draft[T]) Value() T {
	return d.value
}
