package model

import "time"

// Node is one box of the hierarchy: root, a category, or an instrument
// leaf. Internal node values are derived, never assigned independently:
// after the conservation pass a parent's Value is exactly the sum of its
// children's. ColorMetric is display-only and not conserved.
type Node struct {
	ID          string  `json:"id"`
	ParentID    string  `json:"parent_id,omitempty"`
	Label       string  `json:"label"`
	Category    string  `json:"category,omitempty"`
	Value       float64 `json:"value"`
	ColorMetric float64 `json:"color_metric"`
	Children    []*Node `json:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Walk visits the node and its whole subtree depth-first.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Snapshot is the fully computed state for one sampled date: the metric
// records of every eligible entity plus the hierarchy tree. The ordered
// list of snapshots is the unit handed to the rendering side.
type Snapshot struct {
	Date    time.Time      `json:"date"`
	Records []MetricRecord `json:"records"`
	Tree    *Node          `json:"tree"`
}
