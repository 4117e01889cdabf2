package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/proshopcms/internal/content"
	"github.com/proshopcms/internal/db"
	"github.com/proshopcms/internal/handler"
	"github.com/proshopcms/internal/router"
	"github.com/proshopcms/internal/service"
	"github.com/proshopcms/internal/storage"
)

const (
	adminEmail    = "admin@proshop.example"
	adminPassword = "admin-secret"
)

type e2eSuite struct {
	handler   http.Handler
	public    httpClient
	admin     httpClient
	baseURL   string
	uploadDir string
	mailbox   *mailbox
}

// mailbox 记录最近一次发出的账号链接。
type mailbox struct {
	email string
	link  string
}

func (m *mailbox) SendPasswordReset(_ context.Context, email, link string) error {
	m.email, m.link = email, link
	return nil
}

func (m *mailbox) SendSignUpConfirmation(_ context.Context, email, link string) error {
	m.email, m.link = email, link
	return nil
}

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

type productBody struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Slug      string   `json:"slug"`
	Category  string   `json:"category"`
	ImageURL  string   `json:"image_url"`
	ImagePath string   `json:"image_path"`
	Features  []string `json:"features"`
}

func TestE2E_AllInterfaces(t *testing.T) {
	suite := newE2ESuite(t)

	t.Run("public samples on empty database", suite.testPublicSamples)
	t.Run("admin requires session", suite.testAdminRequiresSession)
	suite.login(t)
	t.Run("product lifecycle", suite.testProductLifecycle)
	t.Run("faq validation and ordering", suite.testFAQs)
	t.Run("about singleton", suite.testAbout)
	t.Run("ai copy without key", suite.testCopyWithoutKey)
	t.Run("media preview", suite.testMediaPreview)
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	return newE2ESuiteWithSignup(t, false)
}

func newE2ESuiteWithSignup(t *testing.T, allowSignup bool) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:e2e-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(db.DriverSQLite, dsn, true)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	if err := db.EnsureUser(gdb, adminEmail, adminPassword); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	uploadDir := t.TempDir()
	media := content.NewMediaManager(storage.NewLocalBucket(uploadDir, "/static/uploads"))
	t.Cleanup(media.Wait)

	opts := service.CatalogOptions{SaveTimeout: 5 * time.Second}
	settings := service.NewSystemSettingService(gdb, service.SystemSettings{})
	box := &mailbox{}
	api := handler.NewAPI(handler.Options{
		DB:          gdb,
		Catalog:     service.NewCatalog(gdb, media, opts),
		About:       service.NewAboutService(gdb, media, opts),
		Auth:        service.NewAuthService(gdb, "e2e-secret", box),
		System:      settings,
		Copywriter:  service.NewCopywriterService(settings, nil),
		AllowSignup: allowSignup,
	})

	r := router.SetupRouter(api, router.Config{
		SessionSecret: "e2e-secret",
		UploadDir:     uploadDir,
		UploadURLPath: "/static/uploads",
	})

	return &e2eSuite{
		handler:   r,
		public:    newLocalClient(r, false),
		admin:     newLocalClient(r, true),
		baseURL:   "http://proshop.test",
		uploadDir: uploadDir,
		mailbox:   box,
	}
}

func (s *e2eSuite) login(t *testing.T) {
	t.Helper()
	resp := s.mustRequestJSON(t, s.admin, http.MethodPost, "/admin/api/auth/login", map[string]interface{}{
		"email":    adminEmail,
		"password": adminPassword,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed, status %d: %s", resp.StatusCode, readBody(t, resp))
	}
}

func (s *e2eSuite) testPublicSamples(t *testing.T) {
	resp := s.mustRequest(t, s.public, http.MethodGet, "/api/products?lang=en", nil, nil)
	var list struct {
		Items      []productBody `json:"items"`
		Categories []string      `json:"categories"`
		Language   string        `json:"language"`
		Sample     bool          `json:"sample"`
	}
	decodeJSON(t, resp, &list)
	if !list.Sample || len(list.Items) == 0 {
		t.Fatalf("expected sample products, got %+v", list)
	}
	if list.Language != "en" {
		t.Fatalf("expected en, got %q", list.Language)
	}
	if len(list.Categories) == 0 || list.Categories[0] != "All" {
		t.Fatalf("expected categories starting with All, got %v", list.Categories)
	}

	resp = s.mustRequest(t, s.public, http.MethodGet, "/api/articles/does-not-exist", nil, nil)
	var detail struct {
		Fallback bool `json:"fallback"`
		Sample   bool `json:"sample"`
	}
	decodeJSON(t, resp, &detail)
	if !detail.Fallback || !detail.Sample {
		t.Fatalf("expected sample fallback for unknown slug, got %+v", detail)
	}
}

func (s *e2eSuite) testAdminRequiresSession(t *testing.T) {
	resp := s.mustRequest(t, s.public, http.MethodGet, "/admin/api/products", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", resp.StatusCode)
	}
}

func TestE2E_AnonymousSignUpCannotReachAdmin(t *testing.T) {
	suite := newE2ESuite(t)
	visitor := newLocalClient(suite.handler, true)

	resp := suite.mustRequestJSON(t, visitor, http.MethodPost, "/admin/api/auth/signup", map[string]interface{}{
		"email":    "intruder@proshop.example",
		"password": "intruder-secret",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 when sign up is disabled, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	if len(resp.Cookies()) != 0 {
		t.Fatalf("expected no session cookie, got %v", resp.Cookies())
	}
	resp.Body.Close()

	suite.expectLockedOut(t, visitor)

	resp = suite.mustRequestJSON(t, visitor, http.MethodPost, "/admin/api/auth/login", map[string]interface{}{
		"email":    "intruder@proshop.example",
		"password": "intruder-secret",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected refused sign up to leave no account, got %d", resp.StatusCode)
	}
}

func TestE2E_AdminCreatesAccount(t *testing.T) {
	suite := newE2ESuite(t)
	suite.login(t)

	resp := suite.mustRequestJSON(t, suite.admin, http.MethodPost, "/admin/api/auth/signup", map[string]interface{}{
		"email":    "editor@proshop.example",
		"password": "editor-secret",
	})
	var created struct {
		Email     string `json:"email"`
		Confirmed bool   `json:"confirmed"`
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 for admin created account, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	decodeJSON(t, resp, &created)
	if created.Email != "editor@proshop.example" || !created.Confirmed {
		t.Fatalf("unexpected account %+v", created)
	}

	resp = suite.mustRequest(t, suite.admin, http.MethodGet, "/admin/api/auth/session", nil, nil)
	var session struct {
		Authenticated bool   `json:"authenticated"`
		Email         string `json:"email"`
	}
	decodeJSON(t, resp, &session)
	if !session.Authenticated || session.Email != adminEmail {
		t.Fatalf("expected admin session to be kept, got %+v", session)
	}

	editor := newLocalClient(suite.handler, true)
	resp = suite.mustRequestJSON(t, editor, http.MethodPost, "/admin/api/auth/login", map[string]interface{}{
		"email":    "editor@proshop.example",
		"password": "editor-secret",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected created account to log in, got %d", resp.StatusCode)
	}
}

func TestE2E_SelfSignUpNeedsConfirmation(t *testing.T) {
	suite := newE2ESuiteWithSignup(t, true)
	visitor := newLocalClient(suite.handler, true)
	credentials := map[string]interface{}{
		"email":    "dealer@proshop.example",
		"password": "dealer-secret",
	}

	resp := suite.mustRequestJSON(t, visitor, http.MethodPost, "/admin/api/auth/signup", credentials)
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202 for self sign up, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	if len(resp.Cookies()) != 0 {
		t.Fatalf("expected no session cookie for unconfirmed account, got %v", resp.Cookies())
	}
	resp.Body.Close()

	suite.expectLockedOut(t, visitor)

	resp = suite.mustRequestJSON(t, visitor, http.MethodPost, "/admin/api/auth/login", credentials)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for unconfirmed login, got %d", resp.StatusCode)
	}
	suite.expectLockedOut(t, visitor)

	link, err := url.Parse(suite.mailbox.link)
	if err != nil {
		t.Fatalf("parse confirmation link: %v", err)
	}
	resp = suite.mustRequestJSON(t, visitor, http.MethodPost, "/admin/api/auth/signup/confirm", map[string]interface{}{
		"token": link.Query().Get("token"),
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected confirmation to succeed, got %d", resp.StatusCode)
	}
	suite.expectLockedOut(t, visitor)

	resp = suite.mustRequestJSON(t, visitor, http.MethodPost, "/admin/api/auth/login", credentials)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected confirmed account to log in, got %d", resp.StatusCode)
	}
	resp = suite.mustRequest(t, visitor, http.MethodGet, "/admin/api/products", nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected admin access after login, got %d", resp.StatusCode)
	}
}

// expectLockedOut 确认 client 不能读写任何后台接口。
func (s *e2eSuite) expectLockedOut(t *testing.T, client httpClient) {
	t.Helper()
	resp := s.mustRequest(t, client, http.MethodGet, "/admin/api/products", nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 listing products, got %d", resp.StatusCode)
	}
	resp = s.mustRequestJSON(t, client, http.MethodPost, "/admin/api/faqs", map[string]interface{}{
		"question": "Who am I?",
		"answer":   "Nobody",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 creating faq, got %d", resp.StatusCode)
	}
	resp = s.mustRequest(t, client, http.MethodGet, "/admin/api/dashboard", nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 on dashboard, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testProductLifecycle(t *testing.T) {
	// 缺少图片的新产品会被拒绝。
	resp := s.mustRequestJSON(t, s.admin, http.MethodPost, "/admin/api/products", map[string]interface{}{
		"name": "VRV X",
	})
	var failure struct {
		Kind string `json:"kind"`
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for product without image, got %d", resp.StatusCode)
	}
	decodeJSON(t, resp, &failure)
	if failure.Kind != "validation" {
		t.Fatalf("expected validation kind, got %q", failure.Kind)
	}

	resp = s.uploadProduct(t, map[string]interface{}{
		"name":        "VRV X",
		"category":    "VRV",
		"description": "Variable refrigerant volume",
		"features":    "Inverter, Quiet ,",
		"image_url":   "https://evil.example/x.png",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var created struct {
		Item productBody `json:"item"`
	}
	decodeJSON(t, resp, &created)
	product := created.Item
	if product.ID == 0 || product.Slug != "vrv-x" {
		t.Fatalf("unexpected product %+v", product)
	}
	if !strings.HasPrefix(product.ImageURL, "/static/uploads/products/") {
		t.Fatalf("expected uploaded image url, got %q", product.ImageURL)
	}
	if len(product.Features) != 2 || product.Features[0] != "Inverter" {
		t.Fatalf("unexpected features %v", product.Features)
	}

	resp = s.mustRequest(t, s.public, http.MethodGet, product.ImageURL, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected uploaded image to be served, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = s.mustRequest(t, s.public, http.MethodGet, "/api/products", nil, nil)
	var list struct {
		Items  []productBody `json:"items"`
		Sample bool          `json:"sample"`
	}
	decodeJSON(t, resp, &list)
	if list.Sample || len(list.Items) != 1 {
		t.Fatalf("expected the stored product only, got %+v", list)
	}

	resp = s.mustRequest(t, s.public, http.MethodGet, "/api/products/vrv-x", nil, nil)
	var detail struct {
		Item     productBody `json:"item"`
		Fallback bool        `json:"fallback"`
	}
	decodeJSON(t, resp, &detail)
	if detail.Fallback || detail.Item.ID != product.ID {
		t.Fatalf("expected exact slug match, got %+v", detail)
	}

	resp = s.mustRequestJSON(t, s.admin, http.MethodPut, "/admin/api/products/"+idStr(product.ID), map[string]interface{}{
		"description": "Updated description",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var updated struct {
		Item productBody `json:"item"`
	}
	decodeJSON(t, resp, &updated)
	if updated.Item.Name != "VRV X" || updated.Item.ImageURL != product.ImageURL {
		t.Fatalf("expected untouched fields to survive update, got %+v", updated.Item)
	}

	resp = s.mustRequest(t, s.admin, http.MethodGet, "/admin/api/products?category=VRV", nil, nil)
	var adminList struct {
		Total      int            `json:"total"`
		Categories []string       `json:"categories"`
		Counts     map[string]int `json:"counts"`
	}
	decodeJSON(t, resp, &adminList)
	if adminList.Total != 1 || adminList.Counts["VRV"] != 1 {
		t.Fatalf("unexpected admin listing %+v", adminList)
	}

	resp = s.mustRequest(t, s.admin, http.MethodGet, "/admin/api/dashboard", nil, nil)
	var dashboard struct {
		Counts map[string]int `json:"counts"`
	}
	decodeJSON(t, resp, &dashboard)
	if dashboard.Counts["products"] != 1 {
		t.Fatalf("expected dashboard to count one product, got %v", dashboard.Counts)
	}

	resp = s.mustRequest(t, s.admin, http.MethodDelete, "/admin/api/products/"+idStr(product.ID), nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 on delete, got %d", resp.StatusCode)
	}
	if _, err := os.Stat(filepath.Join(s.uploadDir, filepath.FromSlash(product.ImagePath))); !os.IsNotExist(err) {
		t.Fatalf("expected image file removed, stat err=%v", err)
	}

	resp = s.mustRequest(t, s.admin, http.MethodGet, "/admin/api/products/"+idStr(product.ID), nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testFAQs(t *testing.T) {
	resp := s.mustRequestJSON(t, s.admin, http.MethodPost, "/admin/api/faqs", map[string]interface{}{
		"answer": "No question",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without question, got %d", resp.StatusCode)
	}

	for _, question := range []string{"First?", "Second?"} {
		resp = s.mustRequestJSON(t, s.admin, http.MethodPost, "/admin/api/faqs", map[string]interface{}{
			"question": question,
			"answer":   "Yes",
		})
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201 for %s, got %d", question, resp.StatusCode)
		}
	}

	resp = s.mustRequest(t, s.public, http.MethodGet, "/api/faqs", nil, nil)
	var list struct {
		Items []struct {
			Question string `json:"question"`
			Order    int    `json:"order"`
		} `json:"items"`
		Sample bool `json:"sample"`
	}
	decodeJSON(t, resp, &list)
	if list.Sample || len(list.Items) != 2 {
		t.Fatalf("expected two stored faqs, got %+v", list)
	}
	if list.Items[0].Question != "First?" || list.Items[0].Order != 1 || list.Items[1].Order != 2 {
		t.Fatalf("unexpected faq order %+v", list.Items)
	}
}

func (s *e2eSuite) testAbout(t *testing.T) {
	resp := s.mustRequest(t, s.admin, http.MethodGet, "/admin/api/about", nil, nil)
	var current struct {
		Exists bool `json:"exists"`
	}
	decodeJSON(t, resp, &current)
	if current.Exists {
		t.Fatal("expected no about record yet")
	}

	resp = s.mustRequestJSON(t, s.admin, http.MethodPut, "/admin/api/about", map[string]interface{}{
		"content":        "About Proshop",
		"vision":         "Comfort for every building",
		"projects_count": "",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 saving about, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()

	resp = s.mustRequest(t, s.public, http.MethodGet, "/api/about", nil, nil)
	var public struct {
		About struct {
			Content       string `json:"content"`
			ProjectsCount string `json:"projects_count"`
		} `json:"about"`
	}
	decodeJSON(t, resp, &public)
	if public.About.Content != "About Proshop" {
		t.Fatalf("expected saved about content, got %q", public.About.Content)
	}
	if public.About.ProjectsCount != "0" {
		t.Fatalf("expected projects count to default to 0, got %q", public.About.ProjectsCount)
	}
}

func (s *e2eSuite) testCopyWithoutKey(t *testing.T) {
	resp := s.mustRequestJSON(t, s.admin, http.MethodPost, "/admin/api/ai/generate", map[string]interface{}{
		"title": "Choosing a VRV system",
	})
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without api key, got %d", resp.StatusCode)
	}
	var body struct {
		HTML string `json:"html"`
	}
	decodeJSON(t, resp, &body)
	if body.HTML != service.AIUnavailableMessage {
		t.Fatalf("unexpected html %q", body.HTML)
	}
}

func (s *e2eSuite) testMediaPreview(t *testing.T) {
	body, contentType := imageForm(t, nil)
	resp := s.mustRequest(t, s.admin, http.MethodPost, "/admin/api/media/preview", body, map[string]string{"Content-Type": contentType})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var preview struct {
		Preview     string `json:"preview"`
		ContentType string `json:"content_type"`
		Width       int    `json:"width"`
		Height      int    `json:"height"`
	}
	decodeJSON(t, resp, &preview)
	if !strings.HasPrefix(preview.Preview, "data:image/png;base64,") {
		t.Fatalf("unexpected preview %q", preview.Preview)
	}
	if preview.Width != 4 || preview.Height != 4 {
		t.Fatalf("unexpected dimensions %dx%d", preview.Width, preview.Height)
	}

	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() == "about" {
			continue
		}
		sub, _ := os.ReadDir(filepath.Join(s.uploadDir, entry.Name()))
		if len(sub) != 0 {
			t.Fatalf("expected preview to store nothing, found files under %s", entry.Name())
		}
	}
}

func (s *e2eSuite) uploadProduct(t *testing.T, payload map[string]interface{}) *http.Response {
	t.Helper()
	body, contentType := imageForm(t, payload)
	return s.mustRequest(t, s.admin, http.MethodPost, "/admin/api/products", body, map[string]string{"Content-Type": contentType})
}

// imageForm 构造 multipart 请求体：可选的 payload JSON 与一张 4x4 PNG。
func imageForm(t *testing.T, payload map[string]interface{}) (*bytes.Buffer, string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		if err := writer.WriteField("payload", string(data)); err != nil {
			t.Fatalf("failed to write payload: %v", err)
		}
	}
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", `form-data; name="image"; filename="unit.png"`)
	partHeader.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(buf.Bytes()); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func (s *e2eSuite) mustRequest(t *testing.T, client httpClient, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		t.Fatalf("failed to build request %s %s: %v", method, path, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func (s *e2eSuite) mustRequestJSON(t *testing.T, client httpClient, method, path string, payload map[string]interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	headers := map[string]string{"Content-Type": "application/json"}
	return s.mustRequest(t, client, method, path, bytes.NewReader(data), headers)
}

func decodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	body := readBody(t, resp)
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		t.Fatalf("failed to decode json: %v\nbody=%s", err, body)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(data)
}

func idStr(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
