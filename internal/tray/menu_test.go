package tray

import (
	"testing"

	"github.com/spinualexandru/clammy/internal/sni"
)

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{name: "access key marker stripped", label: "_Open File", want: "Open File"},
		{name: "no markers unchanged", label: "No Markers", want: "No Markers"},
		{name: "empty", label: "", want: ""},
		{name: "marker mid-word", label: "E_xit", want: "Exit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanLabel(tt.label); got != tt.want {
				t.Errorf("CleanLabel(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func node(id int32, props map[string]any, children ...*sni.LayoutNode) *sni.LayoutNode {
	if props == nil {
		props = map[string]any{}
	}
	return &sni.LayoutNode{ID: id, Properties: props, Children: children}
}

func TestConvertMenu(t *testing.T) {
	root := node(0, nil,
		node(1, map[string]any{"label": "_Quit"}),
		node(2, map[string]any{"type": "separator", "label": "ignored"}),
		node(3, map[string]any{"label": "Disabled", "enabled": false}),
		node(4, map[string]any{
			"label":        "Mute",
			"toggle-type":  "checkmark",
			"toggle-state": int32(1),
		}),
		node(5, map[string]any{"label": "More"},
			node(6, map[string]any{"label": "Nested"}),
		),
	)

	items := ConvertMenu(root)
	if len(items) != 5 {
		t.Fatalf("ConvertMenu() returned %d items, want 5", len(items))
	}

	if items[0].Label != "Quit" || !items[0].Enabled || items[0].Separator {
		t.Errorf("item 0 = %+v, want enabled non-separator labeled Quit", items[0])
	}
	if !items[1].Separator {
		t.Errorf("item 1 = %+v, want separator", items[1])
	}
	if items[1].Label != "" {
		t.Errorf("separator label = %q, want empty", items[1].Label)
	}
	if items[2].Enabled {
		t.Errorf("item 2 enabled = true, want false")
	}
	if !items[3].Checkable || !items[3].Checked {
		t.Errorf("item 3 = %+v, want checkable and checked", items[3])
	}
	if len(items[4].Children) != 1 || items[4].Children[0].Label != "Nested" {
		t.Errorf("item 4 children = %+v, want one Nested child", items[4].Children)
	}
	if items[4].Children[0].ID != 6 {
		t.Errorf("nested id = %d, want 6", items[4].Children[0].ID)
	}
}

func TestConvertMenuNilRoot(t *testing.T) {
	if items := ConvertMenu(nil); items != nil {
		t.Errorf("ConvertMenu(nil) = %v, want nil", items)
	}
}

func TestConvertMenuDepthCap(t *testing.T) {
	// A 100-deep chain from a hostile peer must be truncated, not
	// recursed into indefinitely.
	leaf := node(100, map[string]any{"label": "leaf"})
	chain := leaf
	for i := int32(99); i >= 1; i-- {
		chain = node(i, map[string]any{"label": "n"}, chain)
	}
	root := node(0, nil, chain)

	items := ConvertMenu(root)
	depth := 0
	for cur := items; len(cur) > 0; cur = cur[0].Children {
		depth++
	}
	if depth != maxMenuDepth {
		t.Errorf("converted chain depth = %d, want %d", depth, maxMenuDepth)
	}
}
