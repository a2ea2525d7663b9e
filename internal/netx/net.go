// Package netx contains HTTP helpers shared by the server and the client.
package netx

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/taskmanager/internal/common"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively; an empty token or
// any other scheme yields ok == false.
func BearerToken(header string) (token string, ok bool) {
	scheme, rest, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(rest)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

// SetBearerToken attaches token to req using the bearer scheme.
func SetBearerToken(req *http.Request, token string) {
	req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
}
