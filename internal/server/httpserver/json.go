package httpserver

import (
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/goccy/go-json"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.logger.Error(r.Context(), "encode response", "error", err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

// decodeJSON reads a single JSON value from the request body into dst.
// Anything malformed yields common.ErrInvalidBody.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidBody, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidBody, err)
	}
	return nil
}

// decodePatch decodes a PATCH body into dst after checking that every key
// is in allowed. A disallowed key yields common.ErrInvalidUpdates and dst is
// left untouched.
func decodePatch(r *http.Request, allowed []string, dst any) error {
	var raw map[string]json.RawMessage
	if err := decodeJSON(r, &raw); err != nil {
		return err
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	if err := models.CheckAllowed(keys, allowed); err != nil {
		return err
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidBody, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidBody, err)
	}
	return nil
}
