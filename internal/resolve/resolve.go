// Package resolve evaluates parsed path expressions against a JSON document.
//
// Resolution never fails. A missing key, a segment applied to the wrong kind
// of value or an out-of-range position contributes a single null at that
// point of the sequence and leaves sibling branches untouched.
package resolve

import (
	"github.com/agentic-research/ketl/internal/jsonv"
	"github.com/agentic-research/ketl/internal/lang"
)

// Sequence is the ordered list of values one column contributes, one per
// candidate row, in document traversal order.
type Sequence []jsonv.Value

// frame is the context captured by a fan-out step for $key and $index.
type frame struct {
	key jsonv.Value // member key, or element index for arrays
	pos int
}

type walker struct {
	path lang.Path
	out  Sequence
}

// Resolve walks doc along p and returns every value the path reaches.
// It is a pure function of its arguments.
func Resolve(doc jsonv.Value, p lang.Path) Sequence {
	w := &walker{path: p, out: Sequence{}}
	w.walk(doc, 0, nil, nil)
	return w.out
}

func (w *walker) emit(v jsonv.Value) {
	w.out = append(w.out, v)
}

// walk resolves segment i against cur. keys is the key path taken so far and
// frames the stack of enclosing fan-outs, innermost last.
func (w *walker) walk(cur jsonv.Value, i int, keys []jsonv.Value, frames []frame) {
	if i == w.path.Len() {
		if w.path.NodeName() && len(keys) > 0 {
			w.emit(keys[len(keys)-1])
			return
		}
		w.emit(cur)
		return
	}

	seg := w.path.At(i)
	switch seg.Kind {
	case lang.Literal:
		next, ok := cur.Get(seg.Key)
		if !ok {
			w.emit(jsonv.Null())
			return
		}
		w.walk(next, i+1, append(keys, jsonv.String(seg.Key)), frames)

	case lang.Wildcard:
		if !cur.IsObject() && !cur.IsArray() {
			w.emit(jsonv.Null())
			return
		}
		terminal := i == w.path.Len()-1
		for pos := 0; pos < cur.Len(); pos++ {
			key, next, _ := member(cur, pos)
			if terminal {
				// One entry per member, without descending.
				if w.path.NodeName() {
					w.emit(key)
				} else {
					w.emit(next)
				}
				continue
			}
			w.walk(next, i+1, append(keys, key), append(frames, frame{key: key, pos: pos}))
		}

	case lang.InnerNode:
		pos := seg.N - 1
		key, next, ok := member(cur, pos)
		if !ok {
			w.emit(jsonv.Null())
			return
		}
		w.walk(next, i+1, append(keys, key), append(frames, frame{key: key, pos: pos}))

	case lang.KeyToken:
		if len(frames) == 0 {
			w.emit(jsonv.Null())
			return
		}
		w.emit(frames[len(frames)-1].key)

	case lang.IndexToken:
		if len(frames) == 0 {
			w.emit(jsonv.Null())
			return
		}
		w.emit(jsonv.Int(frames[len(frames)-1].pos))

	case lang.ValueToken:
		w.emit(cur)

	default:
		w.emit(jsonv.Null())
	}
}

// member returns the key and value at position pos of an object (insertion
// order) or array (index order). Array keys are their index.
func member(v jsonv.Value, pos int) (jsonv.Value, jsonv.Value, bool) {
	switch {
	case v.IsObject():
		m, ok := v.Object().At(pos)
		if !ok {
			return jsonv.Null(), jsonv.Null(), false
		}
		return jsonv.String(m.Key), m.Value, true
	case v.IsArray():
		e, ok := v.Index(pos)
		if !ok {
			return jsonv.Null(), jsonv.Null(), false
		}
		return jsonv.Int(pos), e, true
	}
	return jsonv.Null(), jsonv.Null(), false
}
