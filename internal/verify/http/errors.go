package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/pkg/httpx"
	"github.com/aussiebroadwan/hireproof/pkg/slogx"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(k domain.Kind) int {
	switch k {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthenticated, domain.KindChallengeExpired:
		return http.StatusUnauthorized
	case domain.KindUnauthorized, domain.KindMFARequired:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindStateConflict:
		return http.StatusConflict
	case domain.KindSlotExpired:
		return http.StatusGone
	case domain.KindInvalidContentType:
		return http.StatusUnsupportedMediaType
	case domain.KindTooManyAttempts, domain.KindRateLimited:
		return http.StatusTooManyRequests
	case domain.KindDependencyUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError renders err from a service call. Only the message of
// a domain error reaches the client; anything else is a 500 and logged
// with its cause.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var de *domain.Error
	if !errors.As(err, &de) {
		log.Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
		return
	}

	status := statusFor(de.Kind)
	switch {
	case status >= http.StatusInternalServerError:
		log.Error("dependency failure", "code", de.Code, "err", err)
	case status == http.StatusBadRequest:
		log.Debug("rejected request", "code", de.Code, "err", err)
	default:
		log.Warn("request refused", "code", de.Code, "err", err)
	}
	if de.Kind == domain.KindTooManyAttempts || de.Kind == domain.KindRateLimited {
		w.Header().Set("Retry-After", "60")
	}
	httpx.WriteError(w, status, de.Code, de.Message)
}
