package dumpscan

import (
	"iter"
	"reflect"
	"sort"
	"strconv"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

// Kind classifies a dynamic dump value. The check is evaluated once per
// value instead of probing capabilities at every use site.
type Kind uint8

const (
	KindNull Kind = iota
	KindScalar
	KindSequence
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Object is implemented by foreign containers that want to expose their
// fields to the scanner. Keys reports field names in enumeration order;
// Value returns the field for a key. Implementations are allowed to
// panic on malformed state; Search recovers per subtree.
type Object interface {
	Keys() []string
	Value(key string) any
}

// KindOf classifies v. Records are insertion-ordered maps, plain string
// maps and Object implementations; sequences are slices and arrays.
// Strings are scalars, never sequences. Nil values of any shape are
// KindNull.
func KindOf(v any) Kind {
	switch t := v.(type) {
	case nil:
		return KindNull
	case *sequencedmap.Map[string, any]:
		if t == nil {
			return KindNull
		}
		return KindRecord
	case map[string]any:
		if t == nil {
			return KindNull
		}
		return KindRecord
	case string:
		return KindScalar
	case Object:
		return KindRecord
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return KindNull
		}
		return KindSequence
	case reflect.Array:
		return KindSequence
	}
	return KindScalar
}

func isComposite(v any) bool {
	k := KindOf(v)
	return k == KindRecord || k == KindSequence
}

// Keys returns the direct key names of a composite value in enumeration
// order: insertion order for ordered records, sorted order for plain Go
// maps (which carry no insertion order), and decimal indices for
// sequences. Non-composite values have no keys.
func Keys(v any) []string {
	switch t := v.(type) {
	case *sequencedmap.Map[string, any]:
		if t == nil {
			return nil
		}
		var keys []string
		for k := range t.All() {
			keys = append(keys, k)
		}
		return keys
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	case Object:
		return t.Keys()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		keys := make([]string, rv.Len())
		for i := range keys {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	}
	return nil
}

// fields iterates the direct key/value pairs of a composite in the same
// order Keys reports them.
func fields(v any) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		switch t := v.(type) {
		case *sequencedmap.Map[string, any]:
			if t == nil {
				return
			}
			for k, child := range t.All() {
				if !yield(k, child) {
					return
				}
			}
		case map[string]any:
			keys := make([]string, 0, len(t))
			for k := range t {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if !yield(k, t[k]) {
					return
				}
			}
		case Object:
			for _, k := range t.Keys() {
				if !yield(k, t.Value(k)) {
					return
				}
			}
		default:
			rv := reflect.ValueOf(v)
			if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				return
			}
			for i := 0; i < rv.Len(); i++ {
				if !yield(strconv.Itoa(i), rv.Index(i).Interface()) {
					return
				}
			}
		}
	}
}

// handle is the identity of one composite node. Two nodes are the same
// only if they are the same underlying reference, never by structural
// equality, so structurally equal but distinct nodes stay distinct and
// true aliases collapse.
type handle struct {
	ptr  uintptr
	len  int
	kind reflect.Kind
}

// identityOf returns the identity handle for v. Only reference shapes
// (maps, slices, pointers) have one; value shapes report ok=false and
// are treated as always-fresh, which is safe because value copies
// cannot form reference cycles.
func identityOf(v any) (handle, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Ptr, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return handle{ptr: rv.Pointer(), kind: rv.Kind()}, true
	case reflect.Slice:
		return handle{ptr: rv.Pointer(), len: rv.Len(), kind: reflect.Slice}, true
	}
	return handle{}, false
}
