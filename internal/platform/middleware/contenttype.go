package middleware

import (
	"mime"
	"net/http"

	dErrors "propertyguard/pkg/domain-errors"
	"propertyguard/pkg/platform/httputil"
)

// ContentTypeJSON rejects request bodies that are not declared as JSON.
// Bodyless requests (GET, DELETE) pass through untouched.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 {
			contentType := r.Header.Get("Content-Type")
			mediaType, _, err := mime.ParseMediaType(contentType)
			if err != nil || mediaType != "application/json" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Content-Type must be application/json"))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
