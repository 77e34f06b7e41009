package wt

// Node is a child entry returned by a Provider listing. It is either a
// FolderNode or a DocumentNode; the provider adapter decides which once,
// when it reads the remote record.
type Node interface {
	NodeID() string
	NodeName() string
	node()
}

// FolderNode is a remote folder.
type FolderNode struct {
	ID   string
	Name string
}

func (n FolderNode) NodeID() string   { return n.ID }
func (n FolderNode) NodeName() string { return n.Name }
func (FolderNode) node()              {}

// DocumentNode is a remote text document.
type DocumentNode struct {
	ID   string
	Name string
}

func (n DocumentNode) NodeID() string   { return n.ID }
func (n DocumentNode) NodeName() string { return n.Name }
func (DocumentNode) node()              {}
