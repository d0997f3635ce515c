package http

import (
	"errors"
	"net/http"

	"jobdispatch/internal/core/application/dispatch"

	"github.com/labstack/echo/v4"
)

var statusByKind = map[dispatch.ErrorKind]int{
	dispatch.KindNotFound:        http.StatusNotFound,
	dispatch.KindInvalidState:    http.StatusConflict,
	dispatch.KindOfferExpired:    http.StatusGone,
	dispatch.KindAlreadyAccepted: http.StatusConflict,
	dispatch.KindInvalid:         http.StatusBadRequest,
	dispatch.KindForbidden:       http.StatusForbidden,
	dispatch.KindGateway:         http.StatusBadGateway,
	dispatch.KindInternal:        http.StatusInternalServerError,
}

// StatusForKind returns the HTTP status reported for a facade error kind.
func StatusForKind(kind dispatch.ErrorKind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeError(ctx echo.Context, err error) error {
	var facadeErr *dispatch.Error
	if !errors.As(err, &facadeErr) {
		facadeErr = &dispatch.Error{Kind: dispatch.KindInternal, Message: "internal error"}
	}

	status := StatusForKind(facadeErr.Kind)
	return ctx.JSON(status, Error{
		Code:    status,
		Kind:    string(facadeErr.Kind),
		Message: facadeErr.Message,
		Channel: facadeErr.Channel,
	})
}

func writeBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Kind:    string(dispatch.KindInvalid),
		Message: message,
	})
}
