package youtube

import (
	"fmt"
	"regexp"
	"strings"
)

var idPattern = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)

// ValidateID reports whether s is a well-formed video reference.
func ValidateID(s string) bool {
	return idPattern.MatchString(s)
}

// ExtractVideoID pulls the video reference out of a watch URL's "v" query
// parameter: everything between "v=" and the next "&". Deliberately
// permissive about the rest of the URL.
func ExtractVideoID(sourceURL string) (string, error) {
	_, after, ok := strings.Cut(sourceURL, "v=")
	if !ok {
		return "", fmt.Errorf("no video reference in url %q", sourceURL)
	}

	id, _, _ := strings.Cut(after, "&")
	if !ValidateID(id) {
		return "", fmt.Errorf("malformed video reference %q", id)
	}

	return id, nil
}
