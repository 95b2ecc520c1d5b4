package domain

// ChildDelta describes the outcome of one child set commit.
type ChildDelta struct {
	// Parent is the node owning the child set.
	Parent InternedString
	// Added holds identities present after the commit but not before.
	Added []InternedString
	// Removed holds identities present before the commit but not after.
	Removed []InternedString
	// Changed holds surviving identities whose sort position moved.
	Changed []InternedString
	// Err is the error stored by the commit, nil on success.
	Err error
}

// Empty reports whether the commit changed no membership or order.
func (d ChildDelta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// ParentSnapshot is a read-only view of one parent and its ordered children,
// taken on the dispatcher thread for rendering.
type ParentSnapshot struct {
	ID       InternedString
	Label    string
	Kind     NodeKind
	Err      error
	Pending  bool
	Children []Node
}

// Snapshot is a read-only view of the whole tree.
type Snapshot struct {
	Parents []ParentSnapshot
}
