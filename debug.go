package htmlgen

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// DumpNode returns a tree view of the element structure for debugging.
func DumpNode(n Node) string {
	tree := treeprint.New()
	dumpNode(tree, n)
	return tree.String()
}

func dumpNode(branch treeprint.Tree, n Node) {
	switch t := n.(type) {
	case Text:
		branch.AddNode(fmt.Sprintf("%q", string(t)))
	case *Element:
		label := "<" + t.Tag + renderAttributes(t) + ">"
		if len(t.children) == 0 {
			branch.AddNode(label)
			return
		}
		sub := branch.AddBranch(label)
		for _, c := range t.children {
			dumpNode(sub, c)
		}
	case Sequence:
		for _, c := range t {
			dumpNode(branch, c)
		}
	}
}

// DumpStylesheet returns a tree view of the nested rule structure for
// debugging.
func DumpStylesheet(s *Stylesheet) string {
	tree := treeprint.New()
	for _, r := range s.Rules {
		dumpRule(tree, r)
	}
	return tree.String()
}

func dumpRule(branch treeprint.Tree, r *Rule) {
	sub := branch.AddBranch(r.Selector)
	for _, d := range r.declarations {
		sub.AddNode(d.Property + ": " + d.Value)
	}
	for _, c := range r.children {
		dumpRule(sub, c)
	}
}
