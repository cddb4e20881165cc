// SPDX-FileCopyrightText: © 2021 The jsxml authors <https://github.com/golangee/jsxml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package markup

import "github.com/golangee/jsxml/token"

// Attribute represents a single attribute of an element.
type Attribute struct {
	Key   string
	Value string
	// Range spans from the key to the end of the value.
	Range token.Position
}

// AttributeList keeps the attributes of an element in document order.
type AttributeList struct {
	attributes []Attribute
}

// NewAttributeList creates an empty AttributeList.
func NewAttributeList() AttributeList {
	return AttributeList{}
}

// Len returns the number of attributes in the list
func (l *AttributeList) Len() int {
	return len(l.attributes)
}

// Add the attribute to the list.
func (l *AttributeList) Add(attr Attribute) {
	l.attributes = append(l.attributes, attr)
}

// Set the given attribute if it already exists or append it otherwise.
// Returns true if an existing attribute got overwritten.
func (l *AttributeList) Set(attr Attribute) bool {
	for i := range l.attributes {
		if l.attributes[i].Key == attr.Key {
			l.attributes[i] = attr
			return true
		}
	}

	l.Add(attr)

	return false
}

// Get returns an attribute for a given key, or nil if it does not exist.
func (l *AttributeList) Get(key string) *Attribute {
	for i := range l.attributes {
		if l.attributes[i].Key == key {
			a := l.attributes[i]
			return &a
		}
	}

	return nil
}

// Lookup returns the value for key and whether the key is defined at all.
func (l *AttributeList) Lookup(key string) (string, bool) {
	if a := l.Get(key); a != nil {
		return a.Value, true
	}

	return "", false
}

// List returns a copy of all attributes in document order.
func (l *AttributeList) List() []Attribute {
	return append([]Attribute(nil), l.attributes...)
}
