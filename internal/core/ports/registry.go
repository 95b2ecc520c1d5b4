package ports

import "go.trai.ch/tcfview/internal/core/domain"

// NodeRegistry is the model-wide table of live nodes keyed by identity.
type NodeRegistry interface {
	// Node returns the live node with the given identity.
	Node(id domain.InternedString) (domain.Node, bool)
	// Register adds a node. Registering an identity twice is a contract violation.
	Register(node domain.Node)
	// Unregister removes a node.
	Unregister(id domain.InternedString)
}
