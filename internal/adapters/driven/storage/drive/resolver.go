package drive

import (
	"net/url"
	"strings"
)

// ResolveFolderID extracts a Drive folder ID from operator input, which
// may be a bare ID or a folder URL copied from the browser. Unparseable
// input is returned as-is and fails later at the API.
func ResolveFolderID(input string) string {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, "/") {
		return input
	}

	u, err := url.Parse(input)
	if err != nil {
		return input
	}

	// https://drive.google.com/drive/folders/{id} and the u/0 variant.
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, part := range parts {
		if part == "folders" && i+1 < len(parts) {
			return parts[i+1]
		}
	}

	// https://drive.google.com/open?id={id}
	if id := u.Query().Get("id"); id != "" {
		return id
	}

	return input
}
