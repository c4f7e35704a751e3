package storage

import "strings"

// refScheme marks payload references that live in object storage. Records
// keep the reference; fetchable links are built with Storage.URL on read.
const refScheme = "storage://"

// Ref returns the stored reference for an object at path.
func Ref(path string) string {
	return refScheme + path
}

// PathOf returns the object path behind ref. ok is false for references
// that are not in object storage, such as data URLs.
func PathOf(ref string) (path string, ok bool) {
	path, ok = strings.CutPrefix(ref, refScheme)
	return path, ok && path != ""
}
