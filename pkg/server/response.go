package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	academyerr "github.com/easyops/context-academy-go/pkg/core/errors"
)

// APIError 是错误响应体
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope 包装错误响应
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// 错误码
const (
	CodeInvalidRequest   = "invalid_request"
	CodeScenarioNotFound = "scenario_not_found"
	CodeUnknownComponent = "unknown_component"
	CodeEmptyCatalog     = "empty_catalog"
	CodeInvalidCatalog   = "invalid_catalog"
	CodeInternal         = "internal_error"
)

// RespondError 写入错误响应
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondOK 写入成功响应
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondDomainError 将领域错误映射为 HTTP 状态码和错误码
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, academyerr.ErrScenarioNotFound):
		RespondError(c, http.StatusNotFound, CodeScenarioNotFound, err)
	case errors.Is(err, academyerr.ErrUnknownComponentReference):
		RespondError(c, http.StatusBadRequest, CodeUnknownComponent, err)
	case errors.Is(err, academyerr.ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
	case errors.Is(err, academyerr.ErrEmptyCatalog):
		RespondError(c, http.StatusInternalServerError, CodeEmptyCatalog, err)
	case academyerr.IsFatal(err):
		// 场景目录本身有编写错误，不是请求的问题
		RespondError(c, http.StatusInternalServerError, CodeInvalidCatalog, err)
	default:
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
	}
}
