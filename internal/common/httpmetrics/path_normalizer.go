package httpmetrics

import (
	"regexp"
	"strings"
)

var uuidRegex = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// Segments that name an operation rather than a resource.
var actionSegments = map[string]struct{}{
	"login":          {},
	"create":         {},
	"delete":         {},
	"changePassword": {},
	"changeAlias":    {},
	"changeUsername": {},
}

// NormalizePath collapses app ids and usernames so metric labels stay bounded.
// /apps/<uuid>/bob/changePassword becomes /apps/{id}/{param}/changePassword.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}

	normalized := uuidRegex.ReplaceAllString(path, "{id}")

	parts := strings.Split(normalized, "/")
	afterID := false
	for i, part := range parts {
		if part == "" {
			continue
		}
		if part == "{id}" {
			afterID = true
			continue
		}
		if _, isAction := actionSegments[part]; isAction {
			continue
		}
		if afterID || isNumeric(part) {
			parts[i] = "{param}"
		}
	}

	result := strings.Join(parts, "/")
	if result == "" {
		return "/"
	}

	return result
}

func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
