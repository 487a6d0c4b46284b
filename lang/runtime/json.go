package runtime

import (
	"bytes"
	"encoding/json"

	"github.com/mna/slang/lang/ast"
)

// ToJSON converts a fully-reduced Value into a plain Go value suitable for
// encoding/json: scalars map to their native Go equivalent, arrays to
// []interface{}, namespaces to a map[string]interface{} (ToJSON walks Defs
// in order and a later entry overwrites an earlier map key, the same
// last-wins behavior as Namespace's Lookup; definition order is not kept),
// and functions to the literal string "function" since they have no JSON
// representation.
func ToJSON(v Value) interface{} {
	switch n := v.(type) {
	case Int:
		return n.Val
	case Float:
		return n.Val
	case Bool:
		return n.Val
	case String:
		return n.Val
	case *Array:
		out := make([]interface{}, len(n.Elems))
		for i, e := range n.Elems {
			out[i] = ToJSON(e.(Value))
		}
		return out
	case *Namespace:
		out := make(map[string]interface{}, len(n.Defs))
		for _, d := range n.Defs {
			out[d.Name] = ToJSON(d.Value.(Value))
		}
		return out
	case *ast.FunctionDef:
		return "function"
	}
	return nil
}

// WriteJSON writes v's JSON text to buf directly, without routing
// namespaces through a Go map: encoding/json always sorts map keys, which
// would silently reorder a namespace's fields, so this walks Defs itself
// and emits each distinct name once, in first-definition order, holding
// its last-defined value — the same behavior Python's dict-comprehension
// for_json gives the original implementation, since reassigning an
// existing key updates the value in place without moving it.
func WriteJSON(buf *bytes.Buffer, v Value) error {
	switch n := v.(type) {
	case Int:
		return marshalTo(buf, n.Val)
	case Float:
		return marshalTo(buf, n.Val)
	case Bool:
		return marshalTo(buf, n.Val)
	case String:
		return marshalTo(buf, n.Val)

	case *Array:
		buf.WriteByte('[')
		for i, e := range n.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := WriteJSON(buf, e.(Value)); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case *Namespace:
		buf.WriteByte('{')
		seen := make(map[string]bool, len(n.Defs))
		first := true
		for _, d := range n.Defs {
			if seen[d.Name] {
				continue
			}
			seen[d.Name] = true
			val, _ := n.Lookup(d.Name)
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := marshalTo(buf, d.Name); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := WriteJSON(buf, val.(Value)); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case *ast.FunctionDef:
		buf.WriteString(`"function"`)
		return nil
	}
	return nil
}

func marshalTo(buf *bytes.Buffer, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
