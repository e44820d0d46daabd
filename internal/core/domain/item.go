package domain

import "time"

// ItemType distinguishes folders from documents in the explorer list.
type ItemType string

const (
	// ItemFolder is a navigable folder row.
	ItemFolder ItemType = "folder"
	// ItemDocument is a document row.
	ItemDocument ItemType = "document"
)

// ExplorerItem is the normalised, display-ready projection of a document
// or folder. Items are ephemeral: they are recomputed from the underlying
// collections on every relevant state change and never mutated in place.
type ExplorerItem struct {
	// ID matches the source document or folder id.
	ID string

	// Name is the display name.
	Name string

	// Type is folder or document.
	Type ItemType

	// UpdatedAt is the last modification time. Zero for folders.
	UpdatedAt time.Time

	// Size is the size in bytes. Always zero for folders.
	Size int64

	// Security is the classification tier. Always TierGeneral for folders.
	Security SecurityTier

	// Indexed reports embedding availability. Always true for folders.
	Indexed bool

	// Starred marks quick-access membership. Always false for folders.
	Starred bool

	// Citations is the citation count. Zero unless the item is an
	// indexed document.
	Citations int

	// Relevance is the retrieval relevance in [0,1]. Zero unless the
	// item is an indexed document.
	Relevance float64
}

// ProjectDocument maps a document record to its explorer item.
// Citations and relevance are forced to zero for non-indexed documents;
// that identity is the one contract the engagement metrics must keep.
func ProjectDocument(doc Document) ExplorerItem {
	item := ExplorerItem{
		ID:        doc.ID,
		Name:      doc.Name,
		Type:      ItemDocument,
		UpdatedAt: doc.UpdatedAt,
		Size:      doc.Size,
		Security:  TierFromLevel(doc.SecurityLevel),
		Indexed:   doc.Status.IsIndexed(),
		Starred:   doc.Starred,
	}
	if item.Indexed {
		item.Citations = doc.Citations
		item.Relevance = doc.Relevance
	}
	return item
}

// ProjectFolder maps a folder record to its explorer item.
// Folders carry no document-level metadata: every derived field is the
// fixed folder shape (zero size, general tier, indexed, not starred).
func ProjectFolder(folder Folder) ExplorerItem {
	return ExplorerItem{
		ID:       folder.ID,
		Name:     folder.Name,
		Type:     ItemFolder,
		Security: TierGeneral,
		Indexed:  true,
	}
}
