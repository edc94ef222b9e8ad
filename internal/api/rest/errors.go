package rest

import (
	"errors"
	"net/http"

	"github.com/KevinKickass/SunSpecBridge/internal/devices"
	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
	"github.com/KevinKickass/SunSpecBridge/internal/types"
	"github.com/gin-gonic/gin"
)

// errorStatus maps session errors to HTTP status and API error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, sunspec.ErrUnknownRegister), errors.Is(err, devices.ErrNotWritable):
		return http.StatusNotFound, types.CodeUnknownRegister
	case errors.Is(err, sunspec.ErrNoSuchDevice):
		return http.StatusNotFound, types.CodeNoSuchDevice
	case errors.Is(err, sunspec.ErrValueRange):
		return http.StatusBadRequest, types.CodeValueRange
	case errors.Is(err, sunspec.ErrWriteFailed):
		return http.StatusBadGateway, types.CodeWriteFailed
	case errors.Is(err, devices.ErrNotConnected), errors.Is(err, sunspec.ErrSessionClosed):
		return http.StatusServiceUnavailable, types.CodeNotConnected
	case errors.Is(err, sunspec.ErrTransport), errors.Is(err, sunspec.ErrShortRead),
		errors.Is(err, sunspec.ErrNotSunSpec), errors.Is(err, sunspec.ErrChainTooLong),
		errors.Is(err, sunspec.ErrUnknownFamily), errors.Is(err, devices.ErrUnknownTransform):
		return http.StatusBadGateway, types.CodeDeviceError
	default:
		return http.StatusInternalServerError, types.CodeInternal
	}
}

func respondError(c *gin.Context, message string, err error) {
	status, code := errorStatus(err)
	c.JSON(status, types.NewErrorResponse(code, message, err.Error()))
}
