package service

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	// 正文只允许嵌入 YouTube 播放器。
	videoEmbedSrcPattern = regexp.MustCompile(`^https://(?:www\.)?(?:youtube\.com/embed/|youtube-nocookie\.com/embed/)`)

	articlePolicy  = buildArticlePolicy()
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
)

func buildArticlePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("iframe")
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^ql-[a-z0-9-]+( ql-[a-z0-9-]+)*$`)).Globally()
	policy.AllowAttrs("src").Matching(videoEmbedSrcPattern).OnElements("iframe")
	policy.AllowAttrs("title", "allow", "allowfullscreen", "frameborder", "loading", "referrerpolicy").OnElements("iframe")
	return policy
}

// SanitizeArticleHTML 清理富文本编辑器提交的 HTML，保留编辑器样式类与 YouTube 嵌入。
func SanitizeArticleHTML(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return strings.TrimSpace(articlePolicy.Sanitize(raw))
}

var htmlBlockPattern = regexp.MustCompile(`(?is)^\s*<(p|h[1-6]|ul|ol|div|blockquote|section|table)[\s>]`)

// RenderCopy 把模型返回的文本转换为安全的 HTML。
// 模型有时会返回 Markdown 或带代码围栏的 HTML，这里统一处理。
func RenderCopy(text string) (string, error) {
	trimmed := stripCodeFence(strings.TrimSpace(text))
	if trimmed == "" {
		return "", nil
	}
	if htmlBlockPattern.MatchString(trimmed) {
		return SanitizeArticleHTML(trimmed), nil
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(trimmed), &buf); err != nil {
		return "", err
	}
	return SanitizeArticleHTML(buf.String()), nil
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return strings.Trim(text, "`")
	}
	lines = lines[1:]
	if last := strings.TrimSpace(lines[len(lines)-1]); strings.HasPrefix(last, "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
