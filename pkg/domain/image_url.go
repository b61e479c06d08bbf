package domain

import "net/url"

// ImageURL is a URL-shaped resource locator for a card's avatar image.
//
// NormalizeImageURL re-encodes the input through net/url when it parses, which
// canonicalizes escaping, but it never rejects input: a value that does not
// parse is carried through as given. Callers that need strict validation do it
// at their own boundary.
func NormalizeImageURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.String()
}
