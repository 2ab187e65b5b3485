package drive

import (
	"regexp"

	"github.com/custodia-labs/driveimg/internal/core/domain"
)

// URL shapes that carry a Drive file ID, tried in order.
var fileIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https://drive\.google\.com/open\?id=([^/?]+)`),
	regexp.MustCompile(`^https://docs\.google\.com/drawings/d/([^/?]+)(?:/edit.*)?`),
}

// FileIDFromURL extracts the Drive file ID from a sharing URL.
// The second return value is false when url is not a Drive reference.
func FileIDFromURL(url string) (string, bool) {
	for _, re := range fileIDPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// NewRemoteImageRef classifies url into a RemoteImageRef.
func NewRemoteImageRef(url string) (domain.RemoteImageRef, bool) {
	id, ok := FileIDFromURL(url)
	if !ok {
		return domain.RemoteImageRef{}, false
	}
	return domain.RemoteImageRef{FileID: id, SourceURL: url}, true
}
