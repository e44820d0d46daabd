package domain

import "sort"

// ExpandSet tracks which folder ids are expanded in the navigation tree.
// It is UI-only state and is never persisted.
type ExpandSet map[string]struct{}

// NewExpandSet creates an empty expand set.
func NewExpandSet() ExpandSet {
	return make(ExpandSet)
}

// Has reports whether the folder is expanded.
func (e ExpandSet) Has(folderID string) bool {
	_, ok := e[folderID]
	return ok
}

// Toggle flips the expand state of a folder and reports the new state.
func (e ExpandSet) Toggle(folderID string) bool {
	if e.Has(folderID) {
		delete(e, folderID)
		return false
	}
	e[folderID] = struct{}{}
	return true
}

// FolderIndex is an arena of folder records keyed by id plus a derived
// parent-to-children index. The index is rebuilt from ParentID links on
// every load; the backend's denormalised ChildIDs arrays are ignored, which
// sidesteps dangling and cyclic child edges entirely. A child whose parent
// id is unknown is treated as a root rather than dropped.
type FolderIndex struct {
	folders  map[string]Folder
	children map[string][]string
	roots    []string
}

// NewFolderIndex builds the index from a folder collection.
func NewFolderIndex(folders map[string]Folder) *FolderIndex {
	idx := &FolderIndex{
		folders:  folders,
		children: make(map[string][]string),
	}

	for id, folder := range folders {
		parent := folder.ParentID
		if parent != "" {
			if _, ok := folders[parent]; !ok {
				parent = ""
			}
		}
		if parent == "" {
			idx.roots = append(idx.roots, id)
			continue
		}
		idx.children[parent] = append(idx.children[parent], id)
	}

	idx.sortByName(idx.roots)
	for _, ids := range idx.children {
		idx.sortByName(ids)
	}
	return idx
}

// sortByName orders folder ids by display name, id as tiebreak.
func (idx *FolderIndex) sortByName(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := idx.folders[ids[i]], idx.folders[ids[j]]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}

// Get returns a folder by id.
func (idx *FolderIndex) Get(id string) (Folder, bool) {
	f, ok := idx.folders[id]
	return f, ok
}

// Roots returns the folders with no parent, ordered by name.
func (idx *FolderIndex) Roots() []Folder {
	return idx.resolve(idx.roots)
}

// Children returns the direct child folders of id, ordered by name.
func (idx *FolderIndex) Children(id string) []Folder {
	return idx.resolve(idx.children[id])
}

// HasChildren reports whether the folder has at least one child folder.
func (idx *FolderIndex) HasChildren(id string) bool {
	return len(idx.children[id]) > 0
}

// resolve maps ids through the arena, pruning any id not found.
func (idx *FolderIndex) resolve(ids []string) []Folder {
	folders := make([]Folder, 0, len(ids))
	for _, id := range ids {
		if f, ok := idx.folders[id]; ok {
			folders = append(folders, f)
		}
	}
	return folders
}

// TreeNode is one visible row of the navigation tree.
type TreeNode struct {
	// Folder is the folder at this row.
	Folder Folder

	// Depth is the nesting depth, zero for roots.
	Depth int

	// Expanded reports whether this row's children are listed below it.
	Expanded bool

	// HasChildren reports whether the row can be expanded at all.
	HasChildren bool
}

// VisibleNodes flattens the tree into the rows the navigation pane shows:
// depth-first, children listed only under expanded folders. Recursion depth
// is bounded by the tree's actual depth.
func (idx *FolderIndex) VisibleNodes(expanded ExpandSet) []TreeNode {
	var nodes []TreeNode
	var walk func(folders []Folder, depth int)
	walk = func(folders []Folder, depth int) {
		for _, f := range folders {
			open := expanded.Has(f.ID)
			nodes = append(nodes, TreeNode{
				Folder:      f,
				Depth:       depth,
				Expanded:    open,
				HasChildren: idx.HasChildren(f.ID),
			})
			if open {
				walk(idx.Children(f.ID), depth+1)
			}
		}
	}
	walk(idx.Roots(), 0)
	return nodes
}
