package httpx

import (
	"errors"
	"net/http"

	apperrors "github.com/stylehaus/ui-api/internal/errors"
)

// WriteAppError renders an application error as a JSON response, mapping the
// error code taxonomy onto HTTP status codes. Unknown errors render as 500
// without leaking internals.
func WriteAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "internal_error",
			Err:     errors.New("internal server error"),
		})
		return
	}

	status, errCode := statusForCode(appErr.Code)
	WriteError(w, ErrorParams{Code: status, ErrCode: errCode, Err: errors.New(appErr.Message)})
}

func statusForCode(code apperrors.ErrorCode) (int, string) {
	switch code {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest, "validation_failed"
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized, "invalid_session"
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden, "insufficient_permissions"
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound, "not_found"
	case apperrors.ErrCodeConflict:
		return http.StatusConflict, "conflict"
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
