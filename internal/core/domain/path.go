package domain

// BuildPath resolves the breadcrumb path for a folder by walking ParentID
// links upward, prepending each id. The returned sequence is ordered from
// the vault root down to folderID.
//
// Resolution never fails:
//   - an empty folderID is the vault root and yields an empty path
//   - a folderID missing from the map yields just that id
//   - a broken parent link truncates the path at the last known folder
//   - a cyclic parent chain terminates where the cycle closes
func BuildPath(folderID string, folders map[string]Folder) []string {
	if folderID == "" {
		return nil
	}

	var path []string
	seen := make(map[string]bool)
	for id := folderID; id != "" && !seen[id]; {
		seen[id] = true
		path = append([]string{id}, path...)
		folder, ok := folders[id]
		if !ok {
			break
		}
		id = folder.ParentID
	}
	return path
}
