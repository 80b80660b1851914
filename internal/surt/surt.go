// Package surt implements the SurtEncoder: a pure function turning a URL
// into its Sort-friendly URI Reordering Transform, the first field of
// every CDXJ line.
package surt

import "strings"

// Encode turns u into its CDXJ search key. It returns ok=false for urn:
// URLs and anything else that does not begin with "http://" or
// "https://" — such URLs have no SURT key and are omitted from CDXJ
// output by the caller.
func Encode(u string) (key string, ok bool) {
	var rest string
	switch {
	case strings.HasPrefix(u, "https://"):
		rest = u[8:]
	case strings.HasPrefix(u, "http://"):
		rest = u[7:]
	default:
		return "", false
	}

	host, path, found := strings.Cut(rest, "/")
	if !found {
		path = ""
	}

	segments := strings.Split(host, ".")
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}

	key = strings.ToLower(strings.Join(segments, ",") + ")/" + path)
	return key, true
}
