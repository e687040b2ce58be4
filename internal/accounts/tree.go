package accounts

import "sort"

// TreeNode is an account with its resolved children.
type TreeNode struct {
	Account
	Children []*TreeNode
}

// BuildTree assembles a forest from a flat account list. The whole set is
// indexed in memory first so no per-level fetches are ever needed. Children
// are ordered by code at every level; accounts whose parent is missing from
// the input are treated as roots so the output always contains every input
// account exactly once.
func BuildTree(accounts []Account) []*TreeNode {
	nodes := make(map[int64]*TreeNode, len(accounts))
	for _, a := range accounts {
		nodes[a.ID] = &TreeNode{Account: a}
	}

	var roots []*TreeNode
	for _, a := range accounts {
		node := nodes[a.ID]
		if a.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*a.ParentID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	var sortNodes func(list []*TreeNode)
	sortNodes = func(list []*TreeNode) {
		sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
		for _, n := range list {
			sortNodes(n.Children)
		}
	}
	sortNodes(roots)
	return roots
}

// Flatten returns the accounts of a forest in depth-first order.
func Flatten(roots []*TreeNode) []Account {
	var out []Account
	var walk func(n *TreeNode)
	walk = func(n *TreeNode) {
		out = append(out, n.Account)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}

// hasAncestor reports whether walking the parent chain up from startID ever
// reaches targetID. The chain is resolved through the in-memory index so the
// check issues no queries; a missing parent terminates the walk.
func hasAncestor(byID map[int64]Account, startID, targetID int64) bool {
	seen := make(map[int64]struct{})
	current := startID
	for {
		if current == targetID {
			return true
		}
		if _, dup := seen[current]; dup {
			return false
		}
		seen[current] = struct{}{}
		acct, ok := byID[current]
		if !ok || acct.ParentID == nil {
			return false
		}
		current = *acct.ParentID
	}
}
