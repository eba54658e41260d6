package sync

import "time"

// assign writes v into dst and bumps the change counter when the stored value
// differs. This is the field reconciliation primitive: an entity is saved
// only when its counter moved.
func assign[T comparable](dst *T, v T, changed *int) {
	if *dst != v {
		*dst = v
		*changed++
	}
}

// assignTime compares instants, not representations, so a time round-tripped
// through the store does not count as a change.
func assignTime(dst *time.Time, v time.Time, changed *int) {
	if !dst.Equal(v) {
		*dst = v
		*changed++
	}
}

// assignRef reconciles an optional foreign key by value.
func assignRef(dst **uint, v *uint, changed *int) {
	switch {
	case *dst == nil && v == nil:
		return
	case *dst != nil && v != nil && **dst == *v:
		return
	}
	*dst = v
	*changed++
}
