package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"portfolio/internal/httputil"
)

// pathID returns the {id} path value when it is a UUID. Anything else can't
// name a stored row, so it is answered with 404 and ok is false.
func pathID(w http.ResponseWriter, r *http.Request, resource string) (string, bool) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		httputil.RespondError(w, http.StatusNotFound, fmt.Sprintf("%s %s not found", resource, id))
		return "", false
	}
	return id, true
}

// checkBodyID rejects a non-UUID reference supplied in a request body or
// query string. Nil and blank values mean "not set" and pass.
func checkBodyID(field string, id *string) error {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	if _, err := uuid.Parse(strings.TrimSpace(*id)); err != nil {
		return fmt.Errorf("%s must be a UUID", field)
	}
	return nil
}
