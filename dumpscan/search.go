package dumpscan

// Search walks the object graph under root and collects, for every
// nested composite whose key in its parent equals targetKey, that
// node's own key names in enumeration order. Multiple matches are all
// retained, in traversal order, without deduplication.
//
// The walk is depth-first and descends into a child before running the
// key-match test for that child's pair, so when a matched node itself
// contains further matches those descendant entries appear in the
// result before the node's own entry. Downstream consumers depend on
// this ordering.
//
// A visited set keyed by reference identity, seeded with root, prevents
// re-descent into nodes already entered, so the walk terminates on
// cyclic and shared-reference graphs. Suppressing descent does not
// suppress the match test: every edge that reaches an already-visited
// node under targetKey still contributes an entry.
//
// If root is nil or not composite, Search returns nil.
func Search(root any, targetKey string) [][]string {
	if !isComposite(root) {
		return nil
	}
	seen := make(map[handle]struct{})
	if h, ok := identityOf(root); ok {
		seen[h] = struct{}{}
	}
	var out [][]string
	// The root frame goes through descend too: a fault while iterating
	// the root's own fields must yield the partial result, not a panic.
	descend(root, targetKey, seen, &out)
	return out
}

func searchNode(node any, targetKey string, seen map[handle]struct{}, out *[][]string) {
	for k, v := range fields(node) {
		if isComposite(v) {
			if h, ok := identityOf(v); ok {
				if _, entered := seen[h]; !entered {
					seen[h] = struct{}{}
					descend(v, targetKey, seen, out)
				}
			} else {
				descend(v, targetKey, seen, out)
			}
		}
		if k == targetKey && isComposite(v) {
			*out = append(*out, Keys(v))
		}
	}
}

// descend recovers a panic raised anywhere under one subtree and keeps
// the parent's iteration going, so one malformed node in a live runtime
// dump costs only its own subtree's results, not the whole scan.
func descend(v any, targetKey string, seen map[handle]struct{}, out *[][]string) {
	defer func() {
		_ = recover()
	}()
	searchNode(v, targetKey, seen, out)
}
