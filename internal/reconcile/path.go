package reconcile

import (
	"regexp"
	"strconv"
	"strings"
)

var indexSegRe = regexp.MustCompile(`^(\w+)\[(\d+)\]$`)

// Get resolves a dotted path against a decoded JSON value.
//
// Segment forms: "key", "key[n]" (array index), "key[]" (wildcard: maps the
// remaining path across every element, returning one resolved value per
// element; with no remaining path, returns the array itself).
//
// The second return is false when any intermediate value is missing, nil,
// or an array segment addresses a non-array. Get never panics on absent
// keys.
func Get(root any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	return resolve(root, strings.Split(path, "."))
}

func resolve(cur any, segs []string) (any, bool) {
	for i, seg := range segs {
		if cur == nil {
			return nil, false
		}

		if key, isWild := strings.CutSuffix(seg, "[]"); isWild {
			obj, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			arr, ok := obj[key].([]any)
			if !ok {
				return nil, false
			}
			rest := segs[i+1:]
			if len(rest) == 0 {
				return arr, true
			}
			out := make([]any, len(arr))
			for j, el := range arr {
				if v, ok := resolve(el, rest); ok {
					out[j] = v
				}
			}
			return out, true
		}

		if m := indexSegRe.FindStringSubmatch(seg); m != nil {
			obj, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			arr, ok := obj[m[1]].([]any)
			if !ok {
				return nil, false
			}
			idx, _ := strconv.Atoi(m[2])
			if idx >= len(arr) {
				return nil, false
			}
			cur = arr[idx]
			continue
		}

		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := obj[seg]
		if !ok {
			return nil, false
		}
		cur = v
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// Set assigns value at a dotted path, creating empty objects for missing
// intermediate keys. Array segments are not supported on the write side;
// callers needing array containers must pre-shape them.
func Set(root map[string]any, path string, value any) {
	segs := strings.Split(path, ".")
	cur := root
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
	cur[segs[len(segs)-1]] = value
}
