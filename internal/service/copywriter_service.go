package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/proshopcms/internal/metrics"
)

const (
	// AIUnavailableMessage 是未配置 API Key 时返回给编辑器的固定文本。
	AIUnavailableMessage = "AI Service Unavailable (Missing Configuration)"
	// AIFailedMessage 是模型调用失败时返回给编辑器的固定文本。
	AIFailedMessage = "Failed to generate content. Please try again later."
	// AIEmptyMessage 是模型未返回正文时的固定文本。
	AIEmptyMessage = "No content generated."

	defaultCopyType          = "Article Content"
	defaultCopyMaxTokens     = 2048
	defaultCopyTemperature   = 0.7
	maxCopyExistingRuneCount = 12000
)

var (
	// ErrAIUnavailable 表示文案助手未配置。
	ErrAIUnavailable = errors.New("ai service unavailable")
	// ErrCopyTitleRequired 表示缺少标题。
	ErrCopyTitleRequired = errors.New("please enter an article title first")
	// ErrCopyFailed 表示模型调用失败。
	ErrCopyFailed = errors.New("copy generation failed")
)

// CopyRequest 描述一次文案生成。
type CopyRequest struct {
	Type            string `json:"type"`
	Title           string `json:"title"`
	ExistingContent string `json:"existing_content"`
}

// CopyResult 为生成结果。HTML 在出错时也会带上可直接展示的提示文本。
type CopyResult struct {
	HTML             string `json:"html"`
	Provider         string `json:"provider"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
}

// Copywriter 是可替换的文案能力。
type Copywriter interface {
	Generate(ctx context.Context, req CopyRequest) (CopyResult, error)
}

// CopywriterService 调用大模型为文章撰写或润色正文。
type CopywriterService struct {
	client *aiChatClient
	logger *zap.Logger
}

// NewCopywriterService 构造 CopywriterService。
func NewCopywriterService(settings *SystemSettingService, logger *zap.Logger) *CopywriterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CopywriterService{
		client: newAIChatClient(settings),
		logger: logger,
	}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，主要用于测试。
func (s *CopywriterService) SetHTTPClient(client httpDoer) {
	s.client.SetHTTPClient(client)
}

// SetBaseURL 覆盖某个平台的接口地址。
func (s *CopywriterService) SetBaseURL(provider, base string) {
	s.client.SetBaseURL(provider, base)
}

// Generate 生成 HTML 正文。没有 Key 时返回 ErrAIUnavailable 与固定提示文本，不发起请求。
func (s *CopywriterService) Generate(ctx context.Context, req CopyRequest) (CopyResult, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return CopyResult{}, ErrCopyTitleRequired
	}

	existing, placeholders := compressImageSources(strings.TrimSpace(req.ExistingContent))
	existing = truncateRunes(existing, maxCopyExistingRuneCount)
	prompt := buildCopyPrompt(orDefault(req.Type, defaultCopyType), title, existing)
	logAIExchange(s.logger, "copywriter", "prompt", prompt)

	response, err := s.client.call(ctx, aiChatRequest{
		UserPrompt:  prompt,
		MaxTokens:   defaultCopyMaxTokens,
		Temperature: defaultCopyTemperature,
	})
	if err != nil {
		if errors.Is(err, ErrAIAPIKeyMissing) {
			s.logger.Warn("copywriter not configured")
			metrics.CopywriterRequests.WithLabelValues(response.Provider, "unavailable").Inc()
			return CopyResult{HTML: AIUnavailableMessage, Provider: response.Provider}, ErrAIUnavailable
		}
		s.logger.Error("copywriter request failed", zap.Error(err))
		metrics.CopywriterRequests.WithLabelValues(response.Provider, "error").Inc()
		return CopyResult{HTML: AIFailedMessage}, fmt.Errorf("%w: %v", ErrCopyFailed, err)
	}
	logAIExchange(s.logger, "copywriter", "response", response.Content)

	result := CopyResult{
		Provider:         response.Provider,
		PromptTokens:     response.PromptTokens,
		CompletionTokens: response.CompletionTokens,
	}

	rendered, err := RenderCopy(placeholders.Restore(response.Content))
	if err != nil {
		metrics.CopywriterRequests.WithLabelValues(response.Provider, "error").Inc()
		return CopyResult{HTML: AIFailedMessage}, fmt.Errorf("%w: render: %v", ErrCopyFailed, err)
	}
	if rendered == "" {
		rendered = AIEmptyMessage
	}
	result.HTML = rendered

	metrics.CopywriterRequests.WithLabelValues(response.Provider, "ok").Inc()
	return result, nil
}

func buildCopyPrompt(copyType, title, existing string) string {
	var builder strings.Builder
	builder.WriteString("You are a luxury copywriter for Daikin Proshop, an elite HVAC service provider.\n")
	builder.WriteString(fmt.Sprintf("Task: Write or refine a %s for %q.\n", copyType, title))
	builder.WriteString("Tone: Professional, Exclusive, Elite, Technical yet accessible.\n")
	builder.WriteString("Context: Daikin is the world's leading air conditioning manufacturer.\n")
	builder.WriteString("Current content: ")
	builder.WriteString(existing)
	builder.WriteString("\nOutput should be in HTML format (paragraphs, lists).\n")
	builder.WriteString("Do not include markdown backticks.")
	return builder.String()
}
