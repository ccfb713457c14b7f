package models

// FileEntry represents a regular file found while traversing a tree
type FileEntry struct {
	// Path is the root-joined path shown to the user (e.g. "src/sub/a.txt")
	Path string `json:"path"`

	// RelativePath is the path relative to the traversal root
	RelativePath string `json:"relative_path"`

	// Size in bytes, as seen during traversal
	Size int64 `json:"size"`

	// Cost is the progress estimate for fingerprinting this file
	Cost int64 `json:"-"`
}

// TotalCost sums the cost estimates of the given entries
func TotalCost(entries []FileEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Cost
	}
	return total
}

// TotalSize sums the byte sizes of the given entries
func TotalSize(entries []FileEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Size
	}
	return total
}
