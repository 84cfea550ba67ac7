package verifysdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes returned in ErrorResponse.Error.
const (
	ErrorCodeValidation         = "validation_error"
	ErrorCodeUnauthenticated    = "unauthenticated"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeMFARequired        = "mfa_required"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeAlreadyPending     = "already_pending"
	ErrorCodeAlreadyVerified    = "already_verified"
	ErrorCodeNotPending         = "not_pending"
	ErrorCodeSlotExpired        = "slot_expired"
	ErrorCodeInvalidContentType = "invalid_content_type"
	ErrorCodeChallengeExpired   = "challenge_expired"
	ErrorCodeInvalidCode        = "invalid_code"
	ErrorCodeTooManyAttempts    = "too_many_attempts"
	ErrorCodeResendTooSoon      = "resend_too_soon"
	ErrorCodeAccountSuspended   = "account_suspended"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
	ErrorCodeUnavailable        = "dependency_unavailable"
	ErrorCodeServerError        = "server_error"
)

// APIError is a decoded error response.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Description)
}

// parseErrorResponse returns nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
