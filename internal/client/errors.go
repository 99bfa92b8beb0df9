package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody bounds how much of a failed response is read.
const maxErrorBody = 64 << 10

// SubmissionError is a non-2xx answer from the API. Message is the server's
// "error" field and may be empty.
type SubmissionError struct {
	Status  int
	Code    string
	Message string
}

func (e *SubmissionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

// UserMessage is the text the wizard shows for this failure.
func (e *SubmissionError) UserMessage() string { return e.Message }

func decodeError(resp *http.Response) *SubmissionError {
	serr := &SubmissionError{Status: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return serr
	}
	var payload struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}
	// Non-JSON bodies (proxies, HTML error pages) leave Message empty.
	if json.Unmarshal(body, &payload) == nil {
		serr.Code = payload.Code
		serr.Message = payload.Error
	}
	return serr
}
