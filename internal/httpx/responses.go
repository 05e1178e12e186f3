package httpx

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   ErrorResponseBody `json:"error"`
	Meta    interface{}       `json:"meta,omitempty"`
}

type ErrorResponseBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func buildMeta(r *http.Request, customMeta interface{}) interface{} {
	requestID := RequestIDFrom(r)
	if requestID == "" && customMeta == nil {
		return nil
	}
	meta := make(map[string]interface{})
	if requestID != "" {
		meta["request_id"] = requestID
	}
	if customMeta != nil {
		if customMap, ok := customMeta.(map[string]interface{}); ok {
			for k, v := range customMap {
				meta[k] = v
			}
		} else {
			meta["custom"] = customMeta
		}
	}
	return meta
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func JSONSuccess(r *http.Request, w http.ResponseWriter, data interface{}, customMeta interface{}) {
	writeJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    buildMeta(r, customMeta),
	})
}

func JSONSuccessCreated(r *http.Request, w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    buildMeta(r, nil),
	})
}

func JSONError(r *http.Request, w http.ResponseWriter, statusCode int, code string, message string, details []ErrorDetail) {
	writeJSON(w, statusCode, ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: buildMeta(r, nil),
	})
}

// DecodeJSON reads the request body into v. Unknown keys are ignored.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
