package domain

import "strings"

// Namespace is the top-level images/ path segment distinguishing upload
// contexts. Originals live at images/<namespace>/<basefilename>.
type Namespace string

const (
	NamespaceEditor   Namespace = "editor"
	NamespaceOriginal Namespace = "original"
)

var Namespaces = []Namespace{NamespaceEditor, NamespaceOriginal}

// DerivativeSize is one entry of the fixed ordered size set. Derivatives
// live at images/<namespace>/<size>/<basefilename>.
type DerivativeSize struct {
	Name  string
	Width int
}

var DerivativeSizes = []DerivativeSize{
	{Name: "thumbnail", Width: 320},
	{Name: "medium", Width: 768},
	{Name: "large", Width: 1600},
}

const (
	ImagesPrefix = "images/"

	// Derivatives are re-encoded to a single fixed format.
	DerivativeContentType = "image/jpeg"
	DerivativeJPEGQuality = 85
)

func IsKnownNamespace(s string) bool {
	for _, ns := range Namespaces {
		if s == string(ns) {
			return true
		}
	}
	return false
}

func IsKnownSize(s string) bool {
	for _, size := range DerivativeSizes {
		if s == size.Name {
			return true
		}
	}
	return false
}

func OriginalKey(ns Namespace, basefilename string) string {
	return ImagesPrefix + string(ns) + "/" + basefilename
}

func DerivativeKey(ns Namespace, size, basefilename string) string {
	return ImagesPrefix + string(ns) + "/" + size + "/" + basefilename
}

// LegacyKey is the flat layout that predates namespaces:
// images/<size>/<basefilename>.
func LegacyKey(size, basefilename string) string {
	return ImagesPrefix + size + "/" + basefilename
}

// IsDerivativeKey reports whether the key contains a known size segment.
// Derivative writes must never be treated as fresh originals.
func IsDerivativeKey(key string) bool {
	for _, seg := range strings.Split(key, "/") {
		if IsKnownSize(seg) {
			return true
		}
	}
	return false
}

// OriginalSegment is the size-position path segment marking an original in
// the current template: images/<namespace>/original/<basefilename>.
const OriginalSegment = "original"

// VariantKeys lists every object a basefilename may occupy: each size plus
// the original segment in both namespaces, both bare original locations,
// and the legacy flat layout. An original and its derivative set are always
// deleted together as a unit.
func VariantKeys(basefilename string) []string {
	keys := make([]string, 0, len(Namespaces)*(len(DerivativeSizes)+2)+len(DerivativeSizes))
	for _, ns := range Namespaces {
		for _, size := range DerivativeSizes {
			keys = append(keys, DerivativeKey(ns, size.Name, basefilename))
		}
		keys = append(keys, DerivativeKey(ns, OriginalSegment, basefilename))
		keys = append(keys, OriginalKey(ns, basefilename))
	}
	for _, size := range DerivativeSizes {
		keys = append(keys, LegacyKey(size.Name, basefilename))
	}
	return keys
}

// StorageEvent is one object-finalize notification, delivered at least once
// and in no particular order across objects.
type StorageEvent struct {
	Key         string `json:"key"`
	ContentType string `json:"contentType,omitempty"`
}
