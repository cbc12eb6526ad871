package registry

import (
	"encoding/json"
	"net/http"

	"peerid/internal/util/logx"
)

// JSONResponse is the envelope every registry response uses.
type JSONResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	body, err := json.Marshal(payload)
	if err != nil {
		logx.Error(err, "Error encoding JSON response", "http_status", status)
		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func respondSuccess(w http.ResponseWriter, data any) {
	respondJSON(w, http.StatusOK, JSONResponse{Code: 0, Message: "success", Data: data})
}

func respondError(w http.ResponseWriter, e *CustomError) {
	if e == nil {
		e = NewError(ErrUnknown)
	}
	respondJSON(w, e.Status, JSONResponse{Code: e.Code, Message: e.Message})
}
