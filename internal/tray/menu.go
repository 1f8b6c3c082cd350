package tray

import (
	"strings"

	"github.com/spinualexandru/clammy/internal/sni"
)

// maxMenuDepth bounds recursion over wire menu trees. A peer sending a
// deeper tree gets its excess levels truncated instead of overflowing the
// stack.
const maxMenuDepth = 64

// MenuItem is one node of an item's context menu in render-agnostic form.
type MenuItem struct {
	// ID is the dbusmenu node id, unique within one item's menu, used for
	// activation.
	ID int32

	Label     string
	Enabled   bool
	Separator bool
	Checkable bool
	Checked   bool
	Children  []MenuItem
}

// ConvertMenu flattens a wire menu layout into the internal model. The
// returned slice holds the root's children in wire order; the root node
// itself is a container and carries nothing renderable.
func ConvertMenu(root *sni.LayoutNode) []MenuItem {
	if root == nil {
		return nil
	}
	items := make([]MenuItem, 0, len(root.Children))
	for _, child := range root.Children {
		items = append(items, convertNode(child, 1))
	}
	return items
}

func convertNode(node *sni.LayoutNode, depth int) MenuItem {
	item := MenuItem{
		ID:        node.ID,
		Enabled:   node.BoolProp("enabled", true),
		Separator: node.StringProp("type") == "separator",
		Checkable: node.StringProp("toggle-type") != "",
		Checked:   node.IntProp("toggle-state", 0) == 1,
	}

	// Separators carry no label and are never activatable.
	if !item.Separator {
		item.Label = CleanLabel(node.StringProp("label"))
	}

	if depth < maxMenuDepth && len(node.Children) > 0 {
		item.Children = make([]MenuItem, 0, len(node.Children))
		for _, child := range node.Children {
			item.Children = append(item.Children, convertNode(child, depth+1))
		}
	}

	return item
}

// CleanLabel strips underscore access-key markers from a menu label,
// turning "_File" into "File". Absent labels come through as "".
func CleanLabel(label string) string {
	return strings.ReplaceAll(label, "_", "")
}
