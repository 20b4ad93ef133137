package httputil

import (
	"errors"
	"net/http"
	"strings"
)

// TokenFromRequest extracts the resume token from a request. The
// Authorization header wins; the token query parameter is the fallback
// for websocket upgrades, where browsers cannot set headers.
func TokenFromRequest(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header != "" {
		// Support "Bearer <token>" format
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimPrefix(header, "Bearer "), nil
		}
		return header, nil
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	return "", errors.New("no auth token found in header or query")
}
