package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop_service/internal/domain"
)

type Response struct {
	Status  string      `json:"Status"`
	Message string      `json:"Message"`
	Data    interface{} `json:"Data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
	})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPrecondition), errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// failWith writes the mapped status. Internal errors are not echoed to the client.
func failWith(c *gin.Context, prefix string, err error) {
	status := mapErrorToStatus(err)
	_ = c.Error(err)
	if status == http.StatusInternalServerError {
		ErrorResponse(c, status, prefix+": internal server error")
		return
	}
	ErrorResponse(c, status, prefix+": "+err.Error())
}
