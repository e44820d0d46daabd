package domain

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField selects the comparison key for the explorer list.
type SortField string

const (
	// SortByName orders by display name.
	SortByName SortField = "name"
	// SortBySecurity orders by classification tier.
	SortBySecurity SortField = "security"
	// SortByUpdatedAt orders by last modification time.
	SortByUpdatedAt SortField = "updatedAt"
	// SortBySize orders by size in bytes.
	SortBySize SortField = "size"
	// SortByRelevance orders by retrieval relevance.
	SortByRelevance SortField = "relevanceScore"
)

// QuickFilter is a named cross-cutting filter over the item list.
type QuickFilter string

const (
	// QuickNone applies no quick-access filtering.
	QuickNone QuickFilter = ""
	// QuickStarred keeps only starred items.
	QuickStarred QuickFilter = "starred"
	// QuickRecent keeps only items modified within RecentWindow.
	QuickRecent QuickFilter = "recent"
)

// RecentWindow is how far back the "recent" quick-access view reaches.
const RecentWindow = 7 * 24 * time.Hour

// MostCitedLimit is the length of the ranked highlight strip.
const MostCitedLimit = 5

// ListQuery captures every input of the list pipeline. Items are a pure
// function of the query plus the document/folder collections, which keeps
// the pipeline trivially unit-testable.
type ListQuery struct {
	// FolderID scopes the listing to one folder. Empty is the vault root.
	FolderID string

	// Filter is the active quick-access filter. Quick-access views select
	// across the whole vault, not within FolderID.
	Filter QuickFilter

	// Search is a case-insensitive substring match on names. Empty is a
	// pass-through.
	Search string

	// Sort is the comparison key.
	Sort SortField

	// Ascending flips the field's natural direction for every field
	// except name, which always orders ascending.
	Ascending bool

	// Now anchors the "recent" window. The zero value means time.Now.
	Now time.Time
}

// ListItems runs the pipeline: scope, quick-access filter, search, then a
// stable multi-key sort. Input slice order is the tiebreak order for equal
// sort keys, so callers should pass collections in a deterministic order.
func ListItems(q ListQuery, docs []Document, folders []Folder) []ExplorerItem {
	items := scopeItems(q, docs, folders)
	items = filterQuickAccess(q, items)
	items = filterSearch(q.Search, items)
	sortItems(q, items)
	return items
}

// scopeItems projects the folders and documents visible for the query.
// A quick-access view ignores folder scope: it answers "show me starred
// things", which spans the whole vault, so it selects every document and
// no folders (folders are never starred and carry no timestamps).
func scopeItems(q ListQuery, docs []Document, folders []Folder) []ExplorerItem {
	var items []ExplorerItem

	if q.Filter == QuickNone {
		for _, f := range folders {
			if f.ParentID == q.FolderID {
				items = append(items, ProjectFolder(f))
			}
		}
		for _, d := range docs {
			if d.FolderID == q.FolderID {
				items = append(items, ProjectDocument(d))
			}
		}
		return items
	}

	for _, d := range docs {
		items = append(items, ProjectDocument(d))
	}
	return items
}

// filterQuickAccess narrows to starred or recently-updated items.
func filterQuickAccess(q ListQuery, items []ExplorerItem) []ExplorerItem {
	switch q.Filter {
	case QuickStarred:
		return keep(items, func(it ExplorerItem) bool {
			return it.Starred
		})
	case QuickRecent:
		now := q.Now
		if now.IsZero() {
			now = time.Now()
		}
		cutoff := now.Add(-RecentWindow)
		return keep(items, func(it ExplorerItem) bool {
			return it.UpdatedAt.After(cutoff)
		})
	default:
		return items
	}
}

// filterSearch keeps items whose name contains the query, case-insensitively.
// Search is a filter, never a reorder.
func filterSearch(query string, items []ExplorerItem) []ExplorerItem {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	return keep(items, func(it ExplorerItem) bool {
		return strings.Contains(strings.ToLower(it.Name), query)
	})
}

// keep filters a slice in place, preserving order.
func keep(items []ExplorerItem, pred func(ExplorerItem) bool) []ExplorerItem {
	kept := items[:0]
	for _, it := range items {
		if pred(it) {
			kept = append(kept, it)
		}
	}
	return kept
}

// sortItems applies the stable multi-key sort. Folders always precede
// documents regardless of field. Each field's comparator encodes its
// natural direction (name ascending, updatedAt/size/relevance newest,
// largest and highest first, security general-to-sovereign); Ascending
// negates that for every field except name.
func sortItems(q ListQuery, items []ExplorerItem) {
	coll := collate.New(language.Und)

	compare := func(a, b ExplorerItem) int {
		if a.Type != b.Type {
			if a.Type == ItemFolder {
				return -1
			}
			return 1
		}

		var cmp int
		switch q.Sort {
		case SortBySecurity:
			cmp = int(a.Security) - int(b.Security)
		case SortByUpdatedAt:
			cmp = b.UpdatedAt.Compare(a.UpdatedAt)
		case SortBySize:
			cmp = compareInt64(b.Size, a.Size)
		case SortByRelevance:
			cmp = compareFloat64(b.Relevance, a.Relevance)
		default:
			// Name ignores the ascending flag.
			return coll.CompareString(a.Name, b.Name)
		}

		if q.Ascending {
			cmp = -cmp
		}
		return cmp
	}

	sort.SliceStable(items, func(i, j int) bool {
		return compare(items[i], items[j]) < 0
	})
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MostCited returns the ranked highlight strip: the non-folder items with
// at least one citation, ordered by citation count descending, truncated
// to MostCitedLimit. It is independent of the main list's filter and sort.
func MostCited(docs []Document) []ExplorerItem {
	var items []ExplorerItem
	for _, d := range docs {
		item := ProjectDocument(d)
		if item.Citations > 0 {
			items = append(items, item)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Citations > items[j].Citations
	})

	if len(items) > MostCitedLimit {
		items = items[:MostCitedLimit]
	}
	return items
}
