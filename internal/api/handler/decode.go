package handler

import (
	"encoding/json"
	"net/http"

	"faculty_api/internal/common"
	"faculty_api/internal/platform/logging"
)

const (
	maxBodyBytes   = 1 << 20
	invalidPayload = "Invalid request payload"
)

// decodeJSON reads a JSON body into dst and answers 400 itself when it can't.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logging.FromContext(r.Context()).Debug().Err(err).Msg("rejected request body")
		common.RespondWithError(w, http.StatusBadRequest, invalidPayload)
		return false
	}
	return true
}
