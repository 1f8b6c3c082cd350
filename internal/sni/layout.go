package sni

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const menuInterface = "com.canonical.dbusmenu"

// LayoutNode is one node of a dbusmenu layout tree as returned by GetLayout.
// The node's properties are raw wire values keyed by the dbusmenu property
// names ("label", "type", "enabled", "toggle-type", "toggle-state", …).
type LayoutNode struct {
	ID         int32
	Properties map[string]any
	Children   []*LayoutNode
}

// ParseLayout decodes the layout argument of a GetLayout reply,
// a recursive [<id>, <properties>, <children>] structure.
func ParseLayout(data any) (*LayoutNode, error) {
	arr, ok := data.([]any)
	if !ok || len(arr) != 3 {
		return nil, fmt.Errorf("menu layout: invalid node format")
	}

	id, ok := arr[0].(int32)
	if !ok {
		return nil, fmt.Errorf("menu layout: invalid node id")
	}

	props, ok := arr[1].(map[string]dbus.Variant)
	if !ok {
		return nil, fmt.Errorf("menu layout: invalid node properties")
	}

	children, ok := arr[2].([]dbus.Variant)
	if !ok {
		return nil, fmt.Errorf("menu layout: invalid node children")
	}

	node := &LayoutNode{
		ID:         id,
		Properties: make(map[string]any, len(props)),
		Children:   make([]*LayoutNode, 0, len(children)),
	}

	for key, value := range props {
		node.Properties[key] = value.Value()
	}

	for _, child := range children {
		childNode, err := ParseLayout(child.Value())
		if err != nil {
			continue
		}
		node.Children = append(node.Children, childNode)
	}

	return node, nil
}

// StringProp returns the named property as a string, or "" when absent or
// of a different type.
func (n *LayoutNode) StringProp(key string) string {
	v, _ := n.Properties[key].(string)
	return v
}

// BoolProp returns the named property as a bool, or def when absent.
func (n *LayoutNode) BoolProp(key string, def bool) bool {
	v, ok := n.Properties[key].(bool)
	if !ok {
		return def
	}
	return v
}

// IntProp returns the named property as an int32, or def when absent.
func (n *LayoutNode) IntProp(key string, def int32) int32 {
	v, ok := n.Properties[key].(int32)
	if !ok {
		return def
	}
	return v
}
