package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yourname/habittracker/internal"
	"github.com/yourname/habittracker/internal/response"
	"github.com/yourname/habittracker/internal/service"
	"github.com/yourname/habittracker/internal/storage"
)

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(msg + ": " + err.Error())
	case 404:
		resp = response.NotFound(msg + ": " + err.Error())
	case 500:
		resp = response.InternalError(msg + ": " + err.Error())
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}

// HandleServiceError maps the service error taxonomy onto HTTP statuses:
// validation 400, unknown record 404, anything else a store failure 500.
func HandleServiceError(c *gin.Context, logger internal.Logger, err error, msg string) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		HandleError(c, logger, err, 400, msg)
	case errors.Is(err, storage.ErrNotFound):
		HandleError(c, logger, err, 404, msg)
	default:
		HandleError(c, logger, err, 500, msg)
	}
}

func HandleSuccess(c *gin.Context, logger internal.Logger, status int, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(status, response.Success(data, meta))
}
