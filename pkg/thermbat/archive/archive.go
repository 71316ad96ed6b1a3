// Package archive maps data blocks onto blob paths and finds builds that were
// already published.
//
// Layout of the archive:
//
//	{battery}/{subfolder}/{tag}_{YYYYMMDD_HHMMSS}_{key}.json
//	{battery}/{subfolder}/_pending_approvals/{same filename}
package archive

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/store"
)

const (
	// UnknownFolder holds blocks whose key names no battery.
	UnknownFolder = "Unknown"
	// MiscSubfolder holds blocks with an unmapped tag.
	MiscSubfolder = "misc"
	// TimestampLayout formats the upload batch time inside filenames.
	TimestampLayout = "20060102_150405"

	batteryPrefix = "Battery-"
	pendingSeg    = models.PendingDir + "/"
)

var subfolders = map[models.Tag]string{
	models.TagDesignData:           "design_data",
	models.TagCustomerSpecs:        "customer_spec",
	models.TagDischargeProfileSpec: "discharge_profile_spec",
	models.TagTempData:             "temp",
	models.TagDischargeData:        "discharge_data",
}

// Subfolder returns the storage subfolder for tag, or "misc".
func Subfolder(tag models.Tag) string {
	if s, ok := subfolders[tag]; ok {
		return s
	}
	return MiscSubfolder
}

// SubfolderTag is the reverse of Subfolder.
func SubfolderTag(subfolder string) (models.Tag, bool) {
	for tag, s := range subfolders {
		if s == subfolder {
			return tag, true
		}
	}
	return "", false
}

// Folder extracts the battery code from a key such as "Battery-48_Build-7".
// When several segments carry the prefix the last one wins.
func Folder(key string) string {
	folder := UnknownFolder
	for _, part := range strings.Split(key, "_") {
		if strings.Contains(part, batteryPrefix) {
			folder = strings.ReplaceAll(part, batteryPrefix, "")
		}
	}
	return folder
}

// Resolve returns the battery folder and subfolder a block is stored under.
func Resolve(tag models.Tag, key string) (folder, subfolder string) {
	return Folder(key), Subfolder(tag)
}

// UniqueToken returns the final "_" segment of key ("Build-7", "Spec").
func UniqueToken(key string) string {
	if i := strings.LastIndex(key, "_"); i >= 0 {
		return key[i+1:]
	}
	return key
}

// Filename names the blob for a block uploaded at ts.
func Filename(tag models.Tag, ts time.Time, key string) string {
	return fmt.Sprintf("%s_%s_%s.json", tag, ts.Format(TimestampLayout), key)
}

// StoredFileFor locates the live blob of a block uploaded at ts.
func StoredFileFor(tag models.Tag, key string, ts time.Time) models.StoredFile {
	folder, subfolder := Resolve(tag, key)
	return models.StoredFile{
		Folder:    folder,
		Subfolder: subfolder,
		Filename:  Filename(tag, ts, key),
	}
}

// Prefix returns the listing prefix "folder/subfolder/".
func Prefix(folder, subfolder string) string {
	return folder + "/" + subfolder + "/"
}

// Exists reports whether some live blob under folder/subfolder has a full
// path containing token. Matching is by substring, so "Build-1" also matches
// a stored "Build-10".
func Exists(ctx context.Context, s store.Store, folder, subfolder, token string) (bool, error) {
	prefix := Prefix(folder, subfolder)
	paths, err := s.List(ctx, prefix)
	if err != nil {
		return false, err
	}
	for _, p := range paths {
		if IsPending(p) {
			continue
		}
		if strings.Contains(p, token) {
			return true, nil
		}
	}
	return false, nil
}

// IsPending reports whether p is inside a pending-approvals folder.
func IsPending(p string) bool {
	return strings.Contains("/"+p, "/"+pendingSeg)
}

// PendingPath inserts the pending-approvals segment before the filename:
// "48/temp/File.json" becomes "48/temp/_pending_approvals/File.json".
func PendingPath(live string) string {
	dir, file := path.Split(live)
	return dir + pendingSeg + file
}

// LivePath strips the pending-approvals segment from p.
func LivePath(pending string) string {
	return strings.Replace(pending, pendingSeg, "", 1)
}

// Parse splits a live or pending blob path into its parts.
func Parse(p string) (models.StoredFile, bool) {
	parts := strings.Split(LivePath(p), "/")
	if len(parts) != 3 {
		return models.StoredFile{}, false
	}
	for _, part := range parts {
		if part == "" {
			return models.StoredFile{}, false
		}
	}
	return models.StoredFile{Folder: parts[0], Subfolder: parts[1], Filename: parts[2]}, true
}
