// Package tree defines the uniform field-sequence view of decoded records.
//
// Decoders expose what they decoded as an ordered list of Fields; how the
// list is shown (indented text, JSON, a UI tree) is up to the caller.
package tree

// Field is one labelled value of a decoded record. Composite values carry
// their parts in Children.
type Field struct {
	Label       string  `json:"label"`
	Value       any     `json:"value,omitempty"`
	Description string  `json:"description,omitempty"`
	Children    []Field `json:"children,omitempty"`
}

// Node is implemented by every decoded record.
type Node interface {
	Fields() []Field
}

// Value builds a leaf field.
func Value(label string, value any) Field {
	return Field{Label: label, Value: value}
}

// Described builds a leaf field with a human-readable description.
func Described(label string, value any, description string) Field {
	return Field{Label: label, Value: value, Description: description}
}

// Group wraps a node's fields under one label.
func Group(label string, n Node) Field {
	return Field{Label: label, Children: n.Fields()}
}

// List builds a composite field holding one child group per item. The
// list's value is its length.
func List[T Node](label, itemLabel string, items []T) Field {
	f := Field{Label: label, Value: len(items)}
	for _, item := range items {
		f.Children = append(f.Children, Group(itemLabel, item))
	}
	return f
}

// Walk visits fields depth first, passing each field's nesting depth.
func Walk(fields []Field, fn func(depth int, f Field)) {
	walk(fields, 0, fn)
}

func walk(fields []Field, depth int, fn func(int, Field)) {
	for _, f := range fields {
		fn(depth, f)
		walk(f.Children, depth+1, fn)
	}
}

// Find returns the first top-level field with the given label.
func Find(fields []Field, label string) (Field, bool) {
	for _, f := range fields {
		if f.Label == label {
			return f, true
		}
	}
	return Field{}, false
}
