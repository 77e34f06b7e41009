package testutil

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"wordtrack/internal/wt"
)

type fakeNode struct {
	id       string
	name     string
	parent   string
	isFolder bool
	text     string
	version  int64
}

// FakeProvider is an in-memory remote tree. Children are listed in the
// order they were added. Every document edit bumps its version, which is
// reported as the change marker. Safe for concurrent use.
type FakeProvider struct {
	mu       sync.Mutex
	nodes    map[string]*fakeNode
	children map[string][]string

	listErr   map[string]error
	nameErr   map[string]error
	exportErr map[string]error
	markerErr map[string]error

	exports map[string]int
}

// NewFakeProvider creates a tree holding only the root folder.
func NewFakeProvider(rootID, rootName string) *FakeProvider {
	p := &FakeProvider{
		nodes:     make(map[string]*fakeNode),
		children:  make(map[string][]string),
		listErr:   make(map[string]error),
		nameErr:   make(map[string]error),
		exportErr: make(map[string]error),
		markerErr: make(map[string]error),
		exports:   make(map[string]int),
	}
	p.nodes[rootID] = &fakeNode{id: rootID, name: rootName, isFolder: true}
	return p
}

// AddFolder adds a folder under parentID.
func (p *FakeProvider) AddFolder(parentID, id, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nodes[id] = &fakeNode{id: id, name: name, parent: parentID, isFolder: true}
	p.children[parentID] = append(p.children[parentID], id)
}

// AddDocument adds a document under parentID with version 1.
func (p *FakeProvider) AddDocument(parentID, id, name, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nodes[id] = &fakeNode{id: id, name: name, parent: parentID, text: text, version: 1}
	p.children[parentID] = append(p.children[parentID], id)
}

// SetText replaces a document's text and bumps its version.
func (p *FakeProvider) SetText(id, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := p.mustNode(id)
	n.text = text
	n.version++
}

// SetTextKeepVersion replaces a document's text without bumping its version,
// simulating a provider whose marker lags behind the content.
func (p *FakeProvider) SetTextKeepVersion(id, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mustNode(id).text = text
}

// Rename changes the display name of a folder or document.
func (p *FakeProvider) Rename(id, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mustNode(id).name = name
}

// Move re-parents a folder or document.
func (p *FakeProvider) Move(id, newParentID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := p.mustNode(id)
	p.detach(n)
	n.parent = newParentID
	p.children[newParentID] = append(p.children[newParentID], id)
}

// Remove deletes a node from its parent's listing.
func (p *FakeProvider) Remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := p.mustNode(id)
	p.detach(n)
	delete(p.nodes, id)
}

// Link lists an existing node under a second parent as well, as Drive allows.
func (p *FakeProvider) Link(id, extraParentID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mustNode(id)
	p.children[extraParentID] = append(p.children[extraParentID], id)
}

// FailList makes ListChildren of folderID fail with err. A nil err clears it.
func (p *FakeProvider) FailList(folderID string, err error) { p.setErr(p.listErr, folderID, err) }

// FailName makes GetName of folderID fail with err.
func (p *FakeProvider) FailName(folderID string, err error) { p.setErr(p.nameErr, folderID, err) }

// FailExport makes ExportText of docID fail with err.
func (p *FakeProvider) FailExport(docID string, err error) { p.setErr(p.exportErr, docID, err) }

// FailMarker makes GetChangeMarker of docID fail with err.
func (p *FakeProvider) FailMarker(docID string, err error) { p.setErr(p.markerErr, docID, err) }

// Exports returns how many times docID was exported.
func (p *FakeProvider) Exports(docID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exports[docID]
}

func (p *FakeProvider) ListChildren(ctx context.Context, folderID string) ([]wt.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.listErr[folderID]; err != nil {
		return nil, err
	}

	var out []wt.Node
	for _, id := range p.children[folderID] {
		n, ok := p.nodes[id]
		if !ok {
			continue
		}
		if n.isFolder {
			out = append(out, wt.FolderNode{ID: n.id, Name: n.name})
		} else {
			out = append(out, wt.DocumentNode{ID: n.id, Name: n.name})
		}
	}
	return out, nil
}

func (p *FakeProvider) GetName(ctx context.Context, folderID string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.nameErr[folderID]; err != nil {
		return "", err
	}
	n, ok := p.nodes[folderID]
	if !ok {
		return "", fmt.Errorf("not found: %s", folderID)
	}
	return n.name, nil
}

func (p *FakeProvider) ExportText(ctx context.Context, docID string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exports[docID]++
	if err := p.exportErr[docID]; err != nil {
		return "", err
	}
	n, ok := p.nodes[docID]
	if !ok || n.isFolder {
		return "", fmt.Errorf("not a document: %s", docID)
	}
	return n.text, nil
}

func (p *FakeProvider) GetChangeMarker(ctx context.Context, docID string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.markerErr[docID]; err != nil {
		return "", err
	}
	n, ok := p.nodes[docID]
	if !ok || n.isFolder {
		return "", fmt.Errorf("not a document: %s", docID)
	}
	return strconv.FormatInt(n.version, 10), nil
}

func (p *FakeProvider) setErr(m map[string]error, id string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err == nil {
		delete(m, id)
		return
	}
	m[id] = err
}

func (p *FakeProvider) mustNode(id string) *fakeNode {
	n, ok := p.nodes[id]
	if !ok {
		panic("testutil: unknown node " + id)
	}
	return n
}

func (p *FakeProvider) detach(n *fakeNode) {
	siblings := p.children[n.parent]
	for i, id := range siblings {
		if id == n.id {
			p.children[n.parent] = append(siblings[:i:i], siblings[i+1:]...)
			return
		}
	}
}

var _ wt.Provider = (*FakeProvider)(nil)
