package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/proshopcms/internal/content"
	"github.com/proshopcms/internal/service"
)

const (
	defaultAdminPerPage = 20
	payloadFormField    = "payload"
	imageFormField      = "image"
)

// 客户端不能写入的字段：主键与时间戳由服务端分配，图片地址只能来自上传。
var serverOwnedFields = []string{"id", "created_at", "updated_at", "image_url", "image_path"}

// contentResource 是单个内容类型的后台 CRUD 接口。
type contentResource[T content.Entity] struct {
	api        *API
	collection *service.Collection[T]
}

func registerContentResource[T content.Entity](group *gin.RouterGroup, api *API, collection *service.Collection[T]) {
	res := &contentResource[T]{api: api, collection: collection}
	path := "/" + collection.Kind().Name
	group.GET(path, res.list)
	group.GET(path+"/:id", res.get)
	group.POST(path, res.create)
	group.PUT(path+"/:id", res.update)
	group.DELETE(path+"/:id", res.delete)
}

// RegisterContentRoutes 为六类内容注册后台接口。
func (a *API) RegisterContentRoutes(group *gin.RouterGroup) {
	registerContentResource(group, a, a.catalog.Products)
	registerContentResource(group, a, a.catalog.Portfolios)
	registerContentResource(group, a, a.catalog.Articles)
	registerContentResource(group, a, a.catalog.Awards)
	registerContentResource(group, a, a.catalog.Testimonials)
	registerContentResource(group, a, a.catalog.FAQs)
}

func (r *contentResource[T]) list(c *gin.Context) {
	if _, err := r.collection.List(c.Request.Context()); err != nil {
		r.api.respondContentError(c, err)
		return
	}

	view := r.collection.View()
	filtered := view.ApplyFilter(c.Query("category"))
	window := content.Paginate(filtered, queryInt(c, "page"), queryInt(c, "per_page"), defaultAdminPerPage)

	response := gin.H{
		"items":       window.Items,
		"page":        window.Page,
		"per_page":    window.PerPage,
		"total":       window.Total,
		"total_pages": window.TotalPages,
	}
	if r.collection.Kind().HasCategory() {
		response["categories"] = view.Categories()
		response["counts"] = view.CountByCategory()
	}
	c.JSON(http.StatusOK, response)
}

func (r *contentResource[T]) get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	record, err := r.collection.Get(c.Request.Context(), id)
	if err != nil {
		r.api.respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": record})
}

func (r *contentResource[T]) create(c *gin.Context) {
	ctx := c.Request.Context()
	form := r.collection.NewForm()
	if _, err := form.New(ctx); err != nil {
		r.api.respondContentError(c, err)
		return
	}
	if !r.fill(c, form) {
		return
	}

	saved, err := form.Submit(ctx)
	if err != nil {
		r.api.respondContentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": saved})
}

func (r *contentResource[T]) update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	record, err := r.collection.Get(ctx, id)
	if err != nil {
		r.api.respondContentError(c, err)
		return
	}

	form := r.collection.NewForm()
	if err := form.Edit(*record); err != nil {
		r.api.respondContentError(c, err)
		return
	}
	if !r.fill(c, form) {
		return
	}

	saved, err := form.Submit(ctx)
	if err != nil {
		r.api.respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": saved})
}

func (r *contentResource[T]) delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := r.collection.Delete(c.Request.Context(), id); err != nil {
		r.api.respondContentError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// fill 把请求中的字段覆盖到草稿上，并暂存可选的图片。
func (r *contentResource[T]) fill(c *gin.Context, form *content.Form[T]) bool {
	raw, upload, err := r.api.readContentRequest(c)
	if err != nil {
		r.api.respondContentError(c, err)
		return false
	}

	var decodeErr error
	if err := form.Change(func(draft *T) {
		decodeErr = overlayPayload(raw, draft)
	}); err != nil {
		r.api.respondContentError(c, err)
		return false
	}
	if decodeErr != nil {
		r.api.respondContentError(c, decodeErr)
		return false
	}

	if upload != nil {
		if err := form.Stage(upload); err != nil {
			r.api.respondContentError(c, err)
			return false
		}
	}
	return true
}

// readContentRequest 支持两种请求体：multipart（payload 字段为 JSON，image 为文件）或纯 JSON。
func (a *API) readContentRequest(c *gin.Context) ([]byte, *content.PendingUpload, error) {
	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if mediaType != "multipart/form-data" {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, a.maxUploadBytes+1))
		if err != nil {
			return nil, nil, &content.FieldError{Field: payloadFormField, Reason: "unreadable"}
		}
		if int64(len(body)) > a.maxUploadBytes {
			return nil, nil, &content.FieldError{Field: payloadFormField, Reason: "too large"}
		}
		return body, nil, nil
	}

	raw := []byte(c.PostForm(payloadFormField))
	fh, err := c.FormFile(imageFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return raw, nil, nil
		}
		return nil, nil, &content.FieldError{Field: imageFormField, Reason: "unreadable"}
	}
	upload, err := content.StageFile(fh, a.maxUploadBytes)
	if err != nil {
		return nil, nil, err
	}
	return raw, upload, nil
}

// overlayPayload 将 JSON 中出现的字段覆盖到 draft，未出现的字段保持不变。
func overlayPayload[T any](raw []byte, draft *T) error {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return &content.FieldError{Field: payloadFormField, Reason: "not a JSON object"}
	}
	for _, key := range serverOwnedFields {
		delete(fields, key)
	}
	normalizeListField(fields, "features")
	normalizeDateField(fields, "published_at")

	cleaned, err := json.Marshal(fields)
	if err != nil {
		return &content.FieldError{Field: payloadFormField, Reason: "invalid"}
	}
	if err := json.Unmarshal(cleaned, draft); err != nil {
		return &content.FieldError{Field: payloadFormField, Reason: "invalid: " + err.Error()}
	}
	return nil
}

// normalizeListField 接受逗号分隔的字符串写法，例如 "Inverter, Quiet"。
func normalizeListField(fields map[string]json.RawMessage, key string) {
	var text string
	if err := json.Unmarshal(fields[key], &text); err != nil {
		return
	}
	items := make([]string, 0)
	for _, part := range strings.Split(text, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if encoded, err := json.Marshal(items); err == nil {
		fields[key] = encoded
	}
}

// normalizeDateField 接受日期输入框的 "2006-01-02" 写法。
func normalizeDateField(fields map[string]json.RawMessage, key string) {
	var text string
	if err := json.Unmarshal(fields[key], &text); err != nil {
		return
	}
	day, err := time.Parse(time.DateOnly, strings.TrimSpace(text))
	if err != nil {
		return
	}
	if encoded, err := json.Marshal(day); err == nil {
		fields[key] = encoded
	}
}
