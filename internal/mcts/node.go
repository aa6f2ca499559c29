// Package mcts implements the Monte Carlo Tree Search controller that
// drives the agent Coordinator over a Blackboard.
package mcts

import (
	"github.com/minnanWei/ARIADNE/internal/board"
)

// Node is one point in the search tree: a candidate program paired with the
// Blackboard state that produced it.
type Node struct {
	Code        string
	Blackboard  *board.Blackboard
	Parent      *Node
	Children    []*Node
	ActionTaken string
	N           int
	Xbar        float64
}

// NewNode constructs a root node.
func NewNode(code string, bb *board.Blackboard) *Node {
	return &Node{Code: code, Blackboard: bb}
}

// AddChild appends child to node's children, setting its parent.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}
