package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

const fallbackMessage = "An unexpected error occurred"

// ErrorResponse is the body the gateway service writes for a failed request.
// Gateway declines are not errors and never use it; they come back as an
// envelope with ok=false.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail carries the caller facing hint and the reportable details
// attached along the chain, for example the gateway and operation names.
type ErrorDetail struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewErrorResponse renders err for an HTTP caller. Only hints and reportable
// details leave the process; the wrapped error text stays in the logs.
func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Message: DisplayMessage(err),
			Details: ReportableDetails(err),
		},
	}
}

// DisplayMessage returns the innermost non-empty hint
func DisplayMessage(err error) string {
	// GetAllHints is a post-order traversal
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return fallbackMessage
}

// ReportableDetails merges every payload added with WithReportableDetails
func ReportableDetails(err error) map[string]any {
	details := make(map[string]any)

	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			raw, ok := strings.CutPrefix(payload, reportablePrefix)
			if !ok {
				continue
			}
			var fields map[string]any
			if err := json.Unmarshal([]byte(raw), &fields); err != nil {
				continue
			}
			for k, v := range fields {
				details[k] = v
			}
		}
	}

	if len(details) == 0 {
		return nil
	}
	return details
}
