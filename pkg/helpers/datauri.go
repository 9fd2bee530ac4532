package helpers

import (
	"encoding/base64"
	"errors"
	"mime"
	"strings"
)

var ErrInvalidDataURI = errors.New("invalid data uri")

// DecodeDataURI decodes a base64 "data:<mime>;base64,<payload>" string as sent by
// browser file readers. A bare base64 payload is accepted as application/octet-stream.
func DecodeDataURI(s string) (contentType string, data []byte, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil, ErrInvalidDataURI
	}
	payload := s
	contentType = "application/octet-stream"
	if strings.HasPrefix(s, "data:") {
		head, body, ok := strings.Cut(s[len("data:"):], ",")
		if !ok || !strings.HasSuffix(head, ";base64") {
			return "", nil, ErrInvalidDataURI
		}
		if mt := strings.TrimSuffix(head, ";base64"); mt != "" {
			contentType = mt
		}
		payload = body
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return "", nil, ErrInvalidDataURI
	}
	return contentType, data, nil
}

// ExtensionFor returns a file extension for contentType, or "" when unknown.
func ExtensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}
