// Package refs extracts image references from rich-text content and maps
// public image URLs back to the basefilename that groups their size
// variants. Both operations are pure and deterministic.
package refs

import (
	"net/url"
	"regexp"
	"strings"

	"cms-backend/internal/domain"
)

// Matches the src attribute inside an <img> tag (double or single quoted,
// tag and attribute case-insensitive) and the URL of Markdown image syntax
// ![alt](url). Matching is deliberately non-validating: anything the
// pattern captures is returned as-is.
var imageRefPattern = regexp.MustCompile(`(?i)<img[^>]*?src\s*=\s*(?:"([^"]*)"|'([^']*)')|!\[[^\]]*\]\(([^)\s]+)\)`)

// ExtractImageURLs returns every image URL referenced in content, in first
// occurrence order, duplicates included. Empty content yields nil.
func ExtractImageURLs(content string) []string {
	if content == "" {
		return nil
	}

	matches := imageRefPattern.FindAllStringSubmatchIndex(content, -1)
	if matches == nil {
		return nil
	}

	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		// Groups: 1 double-quoted src, 2 single-quoted src, 3 markdown URL.
		// Exactly one participates per match.
		for g := 1; g <= 3; g++ {
			start, end := m[2*g], m[2*g+1]
			if start >= 0 {
				urls = append(urls, content[start:end])
				break
			}
		}
	}

	return urls
}

// ResolveBaseFileName maps a public image URL to the basefilename shared by
// the original and all of its derivatives. It recognizes the current path
// template images/<namespace>/<size-or-original>/<basefilename> and the
// legacy flat template images/<size-or-original>/<basefilename>, both
// percent-encoded as they appear in public URLs. URLs that match neither
// template (external images, third-party CDNs) resolve to false and must
// never reach a delete operation. Percent-encoding is reversed exactly once.
func ResolveBaseFileName(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	escaped := u.EscapedPath()
	idx := strings.Index(strings.ToLower(escaped), "images%2f")
	if idx < 0 {
		return "", false
	}

	decoded, err := url.PathUnescape(escaped[idx:])
	if err != nil {
		return "", false
	}

	segments := strings.Split(decoded, "/")
	if segments[0] != "images" {
		return "", false
	}

	switch len(segments) {
	case 4:
		// images/<namespace>/<size-or-original>/<basefilename>
		if domain.IsKnownNamespace(segments[1]) && isSizeOrOriginal(segments[2]) && segments[3] != "" {
			return segments[3], true
		}
	case 3:
		// Either a current-template original (images/<namespace>/<basefilename>)
		// or a legacy entry (images/<size-or-original>/<basefilename>).
		if (domain.IsKnownNamespace(segments[1]) || isSizeOrOriginal(segments[1])) && segments[2] != "" {
			return segments[2], true
		}
	}

	return "", false
}

func isSizeOrOriginal(s string) bool {
	return domain.IsKnownSize(s) || s == domain.OriginalSegment
}
