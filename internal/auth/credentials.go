package auth

import "strings"

// ResolveToken extracts the candidate session token from the request
// credentials. The cookie wins when present; otherwise a Bearer
// Authorization header is accepted for non-browser clients. Returns the
// empty string when neither source yields a token.
func ResolveToken(cookieValue, authorizationHeader string) string {
	if cookieValue != "" {
		return cookieValue
	}
	return parseBearer(authorizationHeader)
}

func parseBearer(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	token := strings.TrimSpace(parts[1])
	return token
}
