package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/angelmondragon/droptracker-backend/pkg/errors"
)

// ParseQueryString returns the trimmed query value, or defaultVal when the
// key is absent or blank. Values longer than maxLen are rejected.
func ParseQueryString(r *http.Request, key, defaultVal string, maxLen int) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	if maxLen > 0 && len(raw) > maxLen {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "query parameter too long").WithDetails(map[string]any{"field": key, "max": maxLen})
	}
	return raw, nil
}
