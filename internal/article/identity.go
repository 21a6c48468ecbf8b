package article

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

// CanonicalKey normalizes a natural key before it is hashed. URL keys
// get a lowercased scheme and host and lose any trailing slash, so
// "https://Example.com/a/" and "https://example.com/a" map to the same
// article. Non-URL keys (site-specific slugs) are only trimmed.
func CanonicalKey(naturalKey string) string {
	key := strings.TrimSpace(naturalKey)

	u, err := url.Parse(key)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return key
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String()
}

// ID derives the opaque article ID from a natural key. The mapping is
// the lowercase hex MD5 of the canonical key's UTF-8 bytes: pure,
// stable across processes, and free of any locale normalization.
func ID(naturalKey string) string {
	sum := md5.Sum([]byte(CanonicalKey(naturalKey)))
	return hex.EncodeToString(sum[:])
}
