package util

import (
	"encoding/base64"
	"net/http"
	"strings"
)

var imageEncodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// DecodeBase64MaybeDataURL decodes an uploaded image given as bare base64
// (padded or not, standard or URL alphabet) or as a data: URL. For a data: URL
// the declared MIME type is returned as well.
func DecodeBase64MaybeDataURL(s string) ([]byte, string, error) {
	payload, declared := splitDataURL(strings.TrimSpace(s))

	var firstErr error
	for _, enc := range imageEncodings {
		b, err := enc.DecodeString(payload)
		if err == nil {
			return b, declared, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, "", firstErr
}

// splitDataURL returns the payload of "data:<mime>[;params],<payload>" and its
// MIME type. Any other input comes back unchanged with an empty type.
func splitDataURL(s string) (payload, mime string) {
	if len(s) < 5 || !strings.EqualFold(s[:5], "data:") {
		return s, ""
	}
	meta, payload, ok := strings.Cut(s[5:], ",")
	if !ok {
		return s, ""
	}
	mime, _, _ = strings.Cut(meta, ";")
	return payload, strings.TrimSpace(mime)
}

// PickMIME prefers an explicit type, then the data URL hint, then sniffing.
// Unrecognised bytes fall back to image/jpeg.
func PickMIME(explicit, hint string, data []byte) string {
	if exp := strings.TrimSpace(explicit); exp != "" {
		return exp
	}
	if h := strings.TrimSpace(hint); h != "" {
		return h
	}
	if len(data) > 0 {
		if ct := http.DetectContentType(data); strings.HasPrefix(ct, "image/") {
			return ct
		}
	}
	return "image/jpeg"
}
