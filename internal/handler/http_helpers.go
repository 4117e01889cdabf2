package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proshopcms/internal/content"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return value
}

// contentErrorStatus 把内容层的错误类别映射为 HTTP 状态码。
func contentErrorStatus(err error) int {
	switch content.KindOf(err) {
	case content.ErrValidation, content.ErrNoDraft:
		return http.StatusBadRequest
	case content.ErrUpload:
		return http.StatusBadGateway
	case content.ErrNotFound:
		return http.StatusNotFound
	case content.ErrConstraint, content.ErrBusy:
		return http.StatusConflict
	case content.ErrTransport:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorKindLabel(err error) string {
	switch content.KindOf(err) {
	case content.ErrValidation, content.ErrNoDraft:
		return "validation"
	case content.ErrUpload:
		return "upload"
	case content.ErrNotFound:
		return "not_found"
	case content.ErrConstraint:
		return "constraint"
	case content.ErrBusy:
		return "busy"
	case content.ErrTransport:
		return "transport"
	default:
		return "write"
	}
}

// respondContentError 输出内容操作的错误。上传失败时原样带上存储后端的消息，并提示检查存储桶配置。
func (a *API) respondContentError(c *gin.Context, err error) {
	status := contentErrorStatus(err)
	message := content.Message(err)
	if errors.Is(err, content.ErrUpload) {
		message = fmt.Sprintf("Error uploading image: %s\n\nPastikan storage bucket %q sudah dibuat dan policies sudah diatur.", message, a.bucketName)
	}
	if status >= http.StatusInternalServerError {
		a.logger.Error("content operation failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.Error(err)
	}
	c.JSON(status, gin.H{"error": message, "kind": errorKindLabel(err)})
}
