package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Xfhreall/armaso-pos/services"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/gin-gonic/gin"
)

var errInternal = errors.New("internal server error")

// statusFor maps service sentinels to HTTP status codes. Zero means unknown.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrMenuNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrVoucherNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrMenuInUse),
		errors.Is(err, services.ErrVoucherCodeTaken),
		errors.Is(err, services.ErrVoucherAlreadyApplied),
		errors.Is(err, services.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, services.ErrVoucherInactive),
		errors.Is(err, services.ErrVoucherExpired),
		errors.Is(err, services.ErrVoucherExhausted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized
	}
	return 0
}

// respondServiceError writes err with its mapped status. Unknown errors are logged and
// hidden behind a generic 500.
func respondServiceError(c *gin.Context, err error) {
	if code := statusFor(err); code != 0 {
		utils.RespondError(c, code, err)
		return
	}
	utils.ErrorLogger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	utils.RespondError(c, http.StatusInternalServerError, errInternal)
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid id"))
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return false
	}
	return true
}
