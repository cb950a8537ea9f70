package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lunamart/lunamart/pkg/authapi"
)

// validate is shared across handlers; the validator caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// maxBodyBytes caps request bodies. Auth payloads are tiny.
const maxBodyBytes = 1 << 16

// decodeJSON decodes and validates a JSON request body into dst. Returns
// false after writing the error response itself.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		writeInvalidRequest(w, "request body must be valid JSON")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeInvalidRequest(w, "invalid field: "+strings.ToLower(verrs[0].Field()))
			return false
		}
		writeInvalidRequest(w, authapi.ErrInvalidRequest.Description)
		return false
	}

	return true
}

func writeInvalidRequest(w http.ResponseWriter, description string) {
	e := *authapi.ErrInvalidRequest
	e.Description = description
	e.WriteError(w)
}
