package util

import (
	"dating_app_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}

// StatusFor 业务错误对应的 HTTP 状态码，未知错误为 500
func StatusFor(err error) int {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrRequestNotFound),
		errors.Is(err, ErrNoActiveMatch),
		errors.Is(err, ErrMessageNotFound),
		errors.Is(err, ErrNoSearchResults):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, ErrPermissionDenied),
		errors.Is(err, ErrNotMatched),
		errors.Is(err, ErrAlreadyRead):
		return http.StatusForbidden
	case errors.Is(err, ErrSelfTarget),
		errors.Is(err, ErrDuplicatePending),
		errors.Is(err, ErrAlreadyMatched),
		errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrEmptyText),
		errors.Is(err, ErrNoFile),
		errors.Is(err, ErrUnsupportedType):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUpstream):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// HandleError 把 service 层错误转换为统一响应
func HandleError(c *gin.Context, err error) {
	status := StatusFor(err)

	var verr *ValidationError
	if errors.As(err, &verr) {
		c.JSON(status, Response{
			Code:    status,
			Message: verr.Error(),
			Errors:  verr.Fields,
		})
		return
	}

	if errors.Is(err, ErrUpstream) {
		logger.Log.Error("Upstream failure", zap.String("path", c.FullPath()), zap.Error(err))
		Error(c, status, ErrUpstream.Error())
		return
	}

	if status == http.StatusInternalServerError {
		LogInternalError(c, err)
		return
	}

	Error(c, status, err.Error())
}
