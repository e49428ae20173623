package file

import (
	"net/url"
	"strings"
)

// URLBuilder maps bucket/key pairs to the gateway's public preview URL.
type URLBuilder struct {
	base string
}

// NewURLBuilder returns a builder rooted at protocol://endpoint/storage/.
func NewURLBuilder(protocol, endpoint string) *URLBuilder {
	return &URLBuilder{base: protocol + "://" + strings.TrimRight(endpoint, "/") + "/storage/"}
}

// URL returns the externally reachable address of bucket/key. Each key
// segment is path-escaped; "/" separators are kept so virtual folders stay
// readable.
func (b *URLBuilder) URL(bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return b.base + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}
