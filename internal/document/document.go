// Package document models the per-workbook result document: a tree whose
// nodes are scalar values, flat records, or keyed subtrees.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"bestest-extract/internal/table"
)

// Kind tags the variant of a Node.
type Kind uint8

const (
	KindValue Kind = iota + 1
	KindRecord
	KindTree
)

// Node is one of Value, Record or *Tree.
type Node interface {
	Kind() Kind
}

// ErrKeyConflict is matched by every *ConflictError.
var ErrKeyConflict = errors.New("document key already populated")

// ConflictError reports a merge that would overwrite an existing key.
type ConflictError struct {
	Path []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %s", ErrKeyConflict, strings.Join(e.Path, "/"))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrKeyConflict
}

type scalar uint8

const (
	scalarNull scalar = iota
	scalarNumber
	scalarString
)

// Value is a leaf scalar: null, a number or a string.
type Value struct {
	kind scalar
	num  float64
	str  string
}

func (Value) Kind() Kind { return KindValue }

// Number returns a numeric leaf
func Number(f float64) Value { return Value{kind: scalarNumber, num: f} }

// String returns a string leaf
func String(s string) Value { return Value{kind: scalarString, str: s} }

// Null returns the null leaf
func Null() Value { return Value{} }

// FromCell converts a cleansed table cell to a leaf
func FromCell(c table.Cell) Value {
	switch c.Kind {
	case table.Number:
		return Number(c.Num)
	case table.Text:
		return String(c.Text)
	default:
		return Null()
	}
}

// IsNull reports whether v is the null leaf
func (v Value) IsNull() bool { return v.kind == scalarNull }

// Float returns the numeric value, if v is a number
func (v Value) Float() (float64, bool) { return v.num, v.kind == scalarNumber }

// Text returns the string value, if v is a string
func (v Value) Text() (string, bool) { return v.str, v.kind == scalarString }

func (v Value) String() string {
	switch v.kind {
	case scalarNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case scalarString:
		return v.str
	default:
		return "null"
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case scalarNumber:
		return json.Marshal(v.num)
	case scalarString:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}

// Record is a flat mapping of field names to leaves.
type Record map[string]Value

func (Record) Kind() Kind { return KindRecord }

// Tree is a keyed subtree. The zero value is not usable; call NewTree.
type Tree struct {
	children map[string]Node
}

func (*Tree) Kind() Kind { return KindTree }

// NewTree returns an empty tree
func NewTree() *Tree {
	return &Tree{children: make(map[string]Node)}
}

// Len returns the number of direct children
func (t *Tree) Len() int { return len(t.children) }

// Keys returns the child keys in sorted order
func (t *Tree) Keys() []string {
	keys := make([]string, 0, len(t.children))
	for k := range t.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Child returns the direct child under key
func (t *Tree) Child(key string) (Node, bool) {
	n, ok := t.children[key]
	return n, ok
}

// Merge adds n under key. Subtrees merge recursively and records merge field by
// field; any key that is already populated is a *ConflictError and t is left with
// whatever was merged before the conflict was found.
func (t *Tree) Merge(key string, n Node) error {
	existing, ok := t.children[key]
	if !ok {
		t.children[key] = n
		return nil
	}

	switch e := existing.(type) {
	case *Tree:
		if nt, ok := n.(*Tree); ok {
			if err := e.MergeTree(nt); err != nil {
				return prefix(key, err)
			}
			return nil
		}
	case Record:
		if nr, ok := n.(Record); ok {
			for _, field := range sortedFields(nr) {
				if _, dup := e[field]; dup {
					return &ConflictError{Path: []string{key, field}}
				}
			}
			for field, v := range nr {
				e[field] = v
			}
			return nil
		}
	}
	return &ConflictError{Path: []string{key}}
}

// MergeTree merges every child of other into t
func (t *Tree) MergeTree(other *Tree) error {
	for _, k := range other.Keys() {
		if err := t.Merge(k, other.children[k]); err != nil {
			return err
		}
	}
	return nil
}

func prefix(key string, err error) error {
	var c *ConflictError
	if errors.As(err, &c) {
		return &ConflictError{Path: append([]string{key}, c.Path...)}
	}
	return err
}

// Get walks path from t. The final step may select a field of a Record.
func (t *Tree) Get(path ...string) (Node, bool) {
	var cur Node = t
	for _, key := range path {
		switch n := cur.(type) {
		case *Tree:
			next, ok := n.children[key]
			if !ok {
				return nil, false
			}
			cur = next
		case Record:
			v, ok := n[key]
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, true
}

// Lookup is Get restricted to leaves
func (t *Tree) Lookup(path ...string) (Value, bool) {
	n, ok := t.Get(path...)
	if !ok {
		return Value{}, false
	}
	v, ok := n.(Value)
	return v, ok
}

func (t *Tree) MarshalJSON() ([]byte, error) {
	if t == nil || t.children == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(t.children)
}

// UnmarshalJSON rebuilds a tree from a persisted document. An object whose members
// are all scalars becomes a Record; any other object becomes a Tree.
func (t *Tree) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t.children = make(map[string]Node, len(raw))
	for k, msg := range raw {
		n, err := decode(msg)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		t.children[k] = n
	}
	return nil
}

func decode(msg json.RawMessage) (Node, error) {
	var v interface{}
	if err := json.Unmarshal(msg, &v); err != nil {
		return nil, err
	}
	return fromInterface(v)
}

func fromInterface(v interface{}) (Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case float64:
		return Number(x), nil
	case string:
		return String(x), nil
	case map[string]interface{}:
		if rec, ok := asRecord(x); ok {
			return rec, nil
		}
		tree := NewTree()
		for k, child := range x {
			n, err := fromInterface(child)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			tree.children[k] = n
		}
		return tree, nil
	default:
		return nil, fmt.Errorf("unsupported JSON value %T", v)
	}
}

func asRecord(m map[string]interface{}) (Record, bool) {
	if len(m) == 0 {
		return nil, false
	}
	rec := make(Record, len(m))
	for k, v := range m {
		switch x := v.(type) {
		case nil:
			rec[k] = Null()
		case float64:
			rec[k] = Number(x)
		case string:
			rec[k] = String(x)
		default:
			return nil, false
		}
	}
	return rec, true
}

func sortedFields(r Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
