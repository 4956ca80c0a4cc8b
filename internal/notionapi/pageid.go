package notionapi

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidPageID indicates no page id could be found in the input.
var ErrInvalidPageID = errors.New("invalid page id or url")

// trailingID matches a dashed or undashed id at the end of a URL slug.
var trailingID = regexp.MustCompile(`(?i)([0-9a-f]{8}-?[0-9a-f]{4}-?[0-9a-f]{4}-?[0-9a-f]{4}-?[0-9a-f]{12})$`)

// ExtractPageID accepts a 32-hex id, a dashed UUID or a page URL and returns
// the dashed form.
func ExtractPageID(urlOrID string) (string, error) {
	s := strings.TrimSpace(urlOrID)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPageID)
	}

	if id, err := uuid.Parse(s); err == nil {
		return id.String(), nil
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPageID, urlOrID)
	}

	// Peeked pages carry the id in ?p=.
	if p := u.Query().Get("p"); p != "" {
		if id, err := uuid.Parse(p); err == nil {
			return id.String(), nil
		}
	}

	slug := path.Base(strings.TrimRight(u.Path, "/"))
	if m := trailingID.FindString(slug); m != "" {
		if id, err := uuid.Parse(m); err == nil {
			return id.String(), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPageID, urlOrID)
}
