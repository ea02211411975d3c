package java

import (
	"errors"
	"fmt"
)

// ErrTraversal reports a broken entry/exit pairing during a walk. It means
// the walker itself is defective, not that the input was bad: the walk of
// the current unit stops and is not retried.
var ErrTraversal = errors.New("traversal stack imbalance")

// Visitor receives callbacks during a Walk. Pre runs before a node's
// children, with the node's ancestors (root first, parent last); returning
// an error aborts the walk. Post runs after the children. Either may be nil.
type Visitor struct {
	Pre  func(n *Node, ancestors []*Node) error
	Post func(n *Node)
}

// Walk traverses the tree rooted at root depth-first in pre-order. It keeps
// an explicit context stack: every node entry pushes exactly one frame and
// every exit pops the matching one. Any mismatch aborts with ErrTraversal.
func Walk(root *Node, v Visitor) error {
	if root == nil {
		return nil
	}
	w := walker{visitor: v}
	if err := w.walk(root); err != nil {
		return err
	}
	if len(w.stack) != 0 {
		return fmt.Errorf("%w: %d frames left after walk", ErrTraversal, len(w.stack))
	}
	return nil
}

type walker struct {
	visitor Visitor
	stack   []*Node
}

func (w *walker) walk(n *Node) error {
	if w.visitor.Pre != nil {
		if err := w.visitor.Pre(n, w.stack); err != nil {
			return err
		}
	}
	w.stack = append(w.stack, n)
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		if err := w.walk(child); err != nil {
			return err
		}
	}
	if len(w.stack) == 0 {
		return fmt.Errorf("%w: pop on empty stack at %s", ErrTraversal, n.Kind)
	}
	top := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	if top != n {
		return fmt.Errorf("%w: popped %s while exiting %s", ErrTraversal, top.Kind, n.Kind)
	}
	if w.visitor.Post != nil {
		w.visitor.Post(n)
	}
	return nil
}
