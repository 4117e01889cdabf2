package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/proshopcms/internal/content"
	"github.com/proshopcms/internal/db"
	"github.com/proshopcms/internal/locale"
)

// PublicList 为公开列表的返回结构。Sample 表示展示的是内置样例。
type PublicList[T any] struct {
	Items      []T      `json:"items"`
	Categories []string `json:"categories,omitempty"`
	Language   string   `json:"language"`
	Sample     bool     `json:"sample"`
}

// PublicDetail 为公开详情的返回结构。
type PublicDetail[T any] struct {
	Item     T      `json:"item"`
	Language string `json:"language"`
	Sample   bool   `json:"sample"`
	// Fallback 表示请求的 slug 不存在，返回的是替代内容。
	Fallback bool `json:"fallback"`
}

// PublicAbout 为公开的关于页内容。
type PublicAbout struct {
	About    db.About   `json:"about"`
	Awards   []db.Award `json:"awards"`
	Language string     `json:"language"`
}

// PublicService 为营销站点提供只读内容。读取失败或没有数据时回退到样例，页面不会报错。
type PublicService struct {
	catalog *Catalog
	about   *AboutService
	logger  *zap.Logger
}

// NewPublicService 构造 PublicService。
func NewPublicService(catalog *Catalog, about *AboutService, logger *zap.Logger) *PublicService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicService{catalog: catalog, about: about, logger: logger}
}

// Products 返回产品列表，category 为空或 "All" 时不过滤。
func (s *PublicService) Products(ctx context.Context, language, category string) PublicList[db.Product] {
	return publicList(ctx, s.logger, s.catalog.Products, language, category, sampleProducts(language))
}

// Product 按 slug 返回产品详情。
func (s *PublicService) Product(ctx context.Context, language, slug string) PublicDetail[db.Product] {
	return publicDetail(ctx, s.logger, s.catalog.Products, language, slug, sampleProducts(language))
}

// Portfolios 返回项目案例列表。
func (s *PublicService) Portfolios(ctx context.Context, language, category string) PublicList[db.Portfolio] {
	return publicList(ctx, s.logger, s.catalog.Portfolios, language, category, samplePortfolios(language))
}

// Portfolio 按 slug 返回项目案例详情。
func (s *PublicService) Portfolio(ctx context.Context, language, slug string) PublicDetail[db.Portfolio] {
	return publicDetail(ctx, s.logger, s.catalog.Portfolios, language, slug, samplePortfolios(language))
}

// Articles 返回文章列表，按发布日期倒序。
func (s *PublicService) Articles(ctx context.Context, language, category string) PublicList[db.Article] {
	return publicList(ctx, s.logger, s.catalog.Articles, language, category, sampleArticles(language))
}

// Article 按 slug 返回文章详情。
func (s *PublicService) Article(ctx context.Context, language, slug string) PublicDetail[db.Article] {
	return publicDetail(ctx, s.logger, s.catalog.Articles, language, slug, sampleArticles(language))
}

// Awards 返回奖项列表。
func (s *PublicService) Awards(ctx context.Context, language string) PublicList[db.Award] {
	return publicList(ctx, s.logger, s.catalog.Awards, language, "", sampleAwards())
}

// Testimonials 返回客户评价列表。
func (s *PublicService) Testimonials(ctx context.Context, language string) PublicList[db.Testimonial] {
	return publicList(ctx, s.logger, s.catalog.Testimonials, language, "", sampleTestimonials())
}

// FAQs 返回常见问题列表。
func (s *PublicService) FAQs(ctx context.Context, language string) PublicList[db.FAQ] {
	return publicList(ctx, s.logger, s.catalog.FAQs, language, "", sampleFAQs(language))
}

// About 返回关于页内容及最近的三个奖项。
func (s *PublicService) About(ctx context.Context, language string) PublicAbout {
	language = resolveLanguage(language)
	about, _, err := s.about.Get(ctx)
	if err != nil {
		s.logger.Warn("load about failed, using defaults", zap.Error(err))
		about = db.About{ProjectsCount: "0"}
	}

	awards := s.Awards(ctx, language).Items
	if len(awards) > 3 {
		awards = awards[:3]
	}
	return PublicAbout{About: about, Awards: awards, Language: language}
}

func publicList[T content.Entity](ctx context.Context, logger *zap.Logger, c *Collection[T], language, category string, samples []T) PublicList[T] {
	kind := c.Kind()
	result := PublicList[T]{Language: resolveLanguage(language)}

	items, err := c.Repository().List(ctx)
	if err != nil {
		logger.Warn("public list failed, using samples", zap.String("kind", kind.Name), zap.Error(err))
	}
	if len(items) == 0 {
		items = samples
		result.Sample = true
	}

	if kind.HasCategory() {
		result.Categories = content.Categories(items, kind.Category)
	}
	result.Items = content.FilterByCategory(items, category, kind.Category)
	return result
}

func publicDetail[T content.Entity](ctx context.Context, logger *zap.Logger, c *Collection[T], language, slug string, samples []T) PublicDetail[T] {
	kind := c.Kind()
	result := PublicDetail[T]{Language: resolveLanguage(language)}
	slug = strings.TrimSpace(slug)

	record, err := c.Repository().GetBySlug(ctx, slug)
	if err == nil {
		result.Item = *record
		return result
	}
	if !errors.Is(err, content.ErrNotFound) {
		logger.Warn("public detail failed", zap.String("kind", kind.Name), zap.String("slug", slug), zap.Error(err))
	}

	result.Fallback = true
	for i := range samples {
		if *kind.Slug(&samples[i]) == slug {
			result.Item = samples[i]
			result.Sample = true
			return result
		}
	}

	if items, listErr := c.Repository().List(ctx); listErr == nil && len(items) > 0 {
		result.Item = items[0]
		return result
	}
	if len(samples) > 0 {
		result.Item = samples[0]
		result.Sample = true
	}
	return result
}

func resolveLanguage(language string) string {
	if normalized := locale.NormalizeLanguage(language); normalized != "" {
		return normalized
	}
	return locale.LanguageIndonesian
}
