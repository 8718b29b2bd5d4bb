package dumpscan

import (
	"iter"
	"reflect"
)

// IsIterable reports whether v can be iterated element by element.
// Slices and arrays qualify; strings, maps, nil values and all other
// scalars do not.
func IsIterable(v any) bool {
	switch v.(type) {
	case nil, string:
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		return !rv.IsNil()
	case reflect.Array:
		return true
	}
	return false
}

// All returns an iterator over the non-iterable leaves of v in
// depth-first order, expanding nested iterables lazily as the consumer
// pulls. A non-iterable v yields nothing; inside the recursion a
// non-iterable element is a leaf and is yielded as-is.
//
// There is no cycle protection: a self-referential iterable recurses
// until the stack limit. Callers feeding untrusted graphs must bound
// them before flattening.
func All(v any) iter.Seq[any] {
	return func(yield func(any) bool) {
		if !IsIterable(v) {
			return
		}
		flattenInto(v, yield)
	}
}

// Flatten collects All(v) into a concrete slice. A non-iterable input
// produces nil.
func Flatten(v any) []any {
	var leaves []any
	for leaf := range All(v) {
		leaves = append(leaves, leaf)
	}
	return leaves
}

func flattenInto(v any, yield func(any) bool) bool {
	rv := reflect.ValueOf(v)
	for i := 0; i < rv.Len(); i++ {
		el := rv.Index(i).Interface()
		if IsIterable(el) {
			if !flattenInto(el, yield) {
				return false
			}
			continue
		}
		if !yield(el) {
			return false
		}
	}
	return true
}
