package models

// PendingDir is the path segment that holds change requests awaiting review.
const PendingDir = "_pending_approvals"

// StoredFile locates a published record in the blob store.
type StoredFile struct {
	// Folder is the battery code folder (e.g. "48").
	Folder string `json:"folder"`
	// Subfolder is derived from the block tag (e.g. "temp").
	Subfolder string `json:"subfolder"`
	// Filename is "{tag}_{timestamp}_{key}.json".
	Filename string `json:"filename"`
}

// Path returns the live blob path.
func (f StoredFile) Path() string {
	return f.Folder + "/" + f.Subfolder + "/" + f.Filename
}

// PendingPath returns the path of the change request for this file.
func (f StoredFile) PendingPath() string {
	return f.Folder + "/" + f.Subfolder + "/" + PendingDir + "/" + f.Filename
}

// PendingItem describes one change request listed for review.
type PendingItem struct {
	// Path is the pending blob path.
	Path string `json:"path"`
	// Tag is the data type owning the subfolder.
	Tag Tag `json:"tag"`
	// Filename is the final path element.
	Filename string `json:"filename"`
}
