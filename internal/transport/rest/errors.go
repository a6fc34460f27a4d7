package rest

import (
	"errors"
	"net/http"

	"checkout-service/internal/dto"
	"checkout-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// toHTTPError maps service errors to a status code and response body.
func toHTTPError(err error) (int, dto.BaseError) {
	switch {
	case errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrDuplicateLineItem),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidProductName),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidStock),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidRole):
		return http.StatusBadRequest, dto.NewValidationError(err.Error(), nil)

	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, dto.NewNotFoundError(err.Error())

	case errors.Is(err, service.ErrUserInactiveOrNotFound),
		errors.Is(err, service.ErrTotalOverflow):
		return http.StatusUnprocessableEntity, dto.NewUnprocessableError(err.Error())

	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidStatusTransition),
		errors.Is(err, service.ErrSKUAlreadyExists),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrProductReferenced),
		errors.Is(err, service.ErrUserHasOrders):
		return http.StatusConflict, dto.NewConflictError(err.Error())

	case errors.Is(err, service.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, dto.NewStorageUnavailableError()
	}
	return http.StatusInternalServerError, dto.NewInternalError("")
}

func writeError(c *gin.Context, log *zap.Logger, err error) {
	code, body := toHTTPError(err)
	if code >= http.StatusInternalServerError {
		log.Error("Ошибка обработки запроса", zap.String("path", c.FullPath()), zap.Error(err))
		if code == http.StatusServiceUnavailable {
			c.Header("Retry-After", "1")
		}
	} else {
		log.Warn("Запрос отклонён", zap.String("path", c.FullPath()), zap.Int("status", code), zap.Error(err))
	}
	c.JSON(code, body)
}

func badRequest(c *gin.Context, log *zap.Logger, msg string, err error) {
	log.Warn("Неверный запрос", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadRequest, dto.NewValidationError(msg, nil))
}
