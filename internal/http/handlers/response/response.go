package response

import (
	"encoding/json"
	"net/http"
)

const Details = "Check terminal for more information."

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

func RenderMethodNotAllowed(rw http.ResponseWriter) {
	RenderError(rw, "Method Not Allowed", http.StatusMethodNotAllowed)
}

func RenderNotFound(rw http.ResponseWriter) {
	RenderError(rw, "Not Found", http.StatusNotFound)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderErrorWithDetails(rw, "Internal Server Error", "", http.StatusInternalServerError)
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	Render(rw, errorResponse{Error: msg}, status)
}

// RenderErrorWithDetails points the caller at the server logs. code is
// omitted when empty.
func RenderErrorWithDetails(rw http.ResponseWriter, msg string, code string, status int) {
	Render(rw, errorResponse{Error: msg, Details: Details, Code: code}, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
