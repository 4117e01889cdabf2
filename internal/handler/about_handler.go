package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proshopcms/internal/content"
	"github.com/proshopcms/internal/service"
)

// GetAbout 返回关于页内容，exists 为 false 表示尚未保存过。
func (a *API) GetAbout(c *gin.Context) {
	about, exists, err := a.about.Get(c.Request.Context())
	if err != nil {
		a.respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": about, "exists": exists})
}

// SaveAbout 保存关于页，支持 multipart（payload + image）或 JSON。
func (a *API) SaveAbout(c *gin.Context) {
	raw, upload, err := a.readContentRequest(c)
	if err != nil {
		a.respondContentError(c, err)
		return
	}

	current, _, err := a.about.Get(c.Request.Context())
	if err != nil {
		a.respondContentError(c, err)
		return
	}
	input := service.AboutInput{
		Content:       current.Content,
		Vision:        current.Vision,
		ProjectsCount: current.ProjectsCount,
	}
	if err := overlayPayload(raw, &input); err != nil {
		a.respondContentError(c, err)
		return
	}

	saved, err := a.about.Save(c.Request.Context(), input, upload)
	if err != nil {
		a.respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": saved})
}

// PreviewImage 校验图片并返回本地预览，不写入存储。
func (a *API) PreviewImage(c *gin.Context) {
	fh, err := c.FormFile(imageFormField)
	if err != nil {
		a.respondContentError(c, &content.FieldError{Field: imageFormField, Reason: "required"})
		return
	}
	upload, err := content.StageFile(fh, a.maxUploadBytes)
	if err != nil {
		a.respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"preview":      upload.Preview(),
		"content_type": upload.ContentType,
		"size":         upload.Size,
		"width":        upload.Width,
		"height":       upload.Height,
	})
}
