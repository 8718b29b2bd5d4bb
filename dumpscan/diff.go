package dumpscan

import (
	"math"
	"reflect"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

// Diff returns every field of updated whose value is not identical to
// the corresponding field of base. Fields absent from base are always
// included; fields present only in base are ignored. Comparison is
// shallow: a nested composite is included whole unless it is the same
// reference as in base.
//
// Identity uses same-value semantics, not ordinary equality: NaN is
// equal to itself, and +0 and -0 are distinct.
func Diff(base, updated map[string]any) map[string]any {
	delta := map[string]any{}
	for k, v := range updated {
		old, ok := base[k]
		if !ok || !sameValue(old, v) {
			delta[k] = v
		}
	}
	return delta
}

// DiffOrdered is Diff over insertion-ordered records. The result keeps
// updated's enumeration order for the changed fields.
func DiffOrdered(base, updated *sequencedmap.Map[string, any]) *sequencedmap.Map[string, any] {
	delta := sequencedmap.New[string, any]()
	if updated == nil {
		return delta
	}
	for k, v := range updated.All() {
		if base != nil {
			if old, ok := base.Get(k); ok && sameValue(old, v) {
				continue
			}
		}
		delta.Set(k, v)
	}
	return delta
}

// sameValue reports identity between two dump values: same-value
// numeric comparison for floats, reference identity for maps, slices
// and pointers, ordinary strict equality for the remaining comparable
// scalars.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := a.(float64); ok {
		fb, ok := b.(float64)
		if !ok {
			return false
		}
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb && math.Signbit(fa) == math.Signbit(fb)
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ra.Kind() {
	case reflect.Map, reflect.Ptr, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return ra.Kind() == rb.Kind() && ra.Type() == rb.Type() && ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return rb.Kind() == reflect.Slice && ra.Type() == rb.Type() &&
			ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	}
	if ra.Type() != rb.Type() || !ra.Type().Comparable() {
		return false
	}
	return a == b
}
