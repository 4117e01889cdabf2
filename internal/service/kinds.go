package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/proshopcms/internal/content"
	"github.com/proshopcms/internal/db"
)

const (
	DefaultProductCategory   = "Single-Split"
	DefaultPortfolioCategory = "Residential"
	DefaultArticleCategory   = "Education"
	DefaultArticleAuthor     = "Admin"

	wordsPerMinute = 200
)

// Kind names, also used as the admin route segment.
const (
	KindProducts     = "products"
	KindPortfolios   = "portfolios"
	KindArticles     = "articles"
	KindAwards       = "awards"
	KindTestimonials = "testimonials"
	KindFAQs         = "faqs"
)

// ProductKind 描述产品的字段、默认排序与草稿默认值。
func ProductKind() *content.Kind[db.Product] {
	return &content.Kind[db.Product]{
		Name:         KindProducts,
		Folder:       "products",
		TitleField:   "name",
		DefaultOrder: []content.Order{content.Asc("id")},
		Columns: []string{
			"name", "slug", "category", "description", "image_url", "image_path",
			"features", "detailed_features", "ideal_applications",
		},
		Title:    func(p *db.Product) string { return p.Name },
		Slug:     func(p *db.Product) *string { return &p.Slug },
		Category: func(p *db.Product) string { return p.Category },
		Image:    func(p *db.Product) (*string, *string) { return &p.ImageURL, &p.ImagePath },
		NewDraft: func(content.DraftContext) db.Product {
			return db.Product{Category: DefaultProductCategory, Features: []string{}}
		},
		Prepare: func(p *db.Product, _ content.DraftContext) {
			p.Name = strings.TrimSpace(p.Name)
			p.Category = orDefault(p.Category, DefaultProductCategory)
			p.Features = compactStrings(p.Features)
		},
	}
}

// PortfolioKind 描述项目案例，默认按最新创建排在最前。
func PortfolioKind() *content.Kind[db.Portfolio] {
	return &content.Kind[db.Portfolio]{
		Name:         KindPortfolios,
		Folder:       "portfolios",
		TitleField:   "title",
		DefaultOrder: []content.Order{content.Desc("id")},
		Columns: []string{
			"title", "slug", "category", "location", "products_used", "image_url", "image_path",
			"summary", "challenge", "solution", "impact",
		},
		Title:    func(p *db.Portfolio) string { return p.Title },
		Slug:     func(p *db.Portfolio) *string { return &p.Slug },
		Category: func(p *db.Portfolio) string { return p.Category },
		Image:    func(p *db.Portfolio) (*string, *string) { return &p.ImageURL, &p.ImagePath },
		NewDraft: func(content.DraftContext) db.Portfolio {
			return db.Portfolio{Category: DefaultPortfolioCategory}
		},
		Prepare: func(p *db.Portfolio, _ content.DraftContext) {
			p.Title = strings.TrimSpace(p.Title)
			p.Category = orDefault(p.Category, DefaultPortfolioCategory)
		},
	}
}

// ArticleKind 描述文章。保存前净化正文 HTML 并推导阅读时长。
func ArticleKind() *content.Kind[db.Article] {
	return &content.Kind[db.Article]{
		Name:         KindArticles,
		Folder:       "articles",
		TitleField:   "title",
		DefaultOrder: []content.Order{content.Desc("published_at")},
		Columns: []string{
			"title", "slug", "excerpt", "content", "image_url", "image_path",
			"category", "author", "published_at", "read_time",
		},
		Title:    func(a *db.Article) string { return a.Title },
		Slug:     func(a *db.Article) *string { return &a.Slug },
		Category: func(a *db.Article) string { return a.Category },
		Image:    func(a *db.Article) (*string, *string) { return &a.ImageURL, &a.ImagePath },
		NewDraft: func(dc content.DraftContext) db.Article {
			return db.Article{
				Category:    DefaultArticleCategory,
				Author:      DefaultArticleAuthor,
				PublishedAt: startOfDay(dc.Now),
			}
		},
		Prepare: func(a *db.Article, dc content.DraftContext) {
			a.Title = strings.TrimSpace(a.Title)
			a.Category = orDefault(a.Category, DefaultArticleCategory)
			a.Author = orDefault(a.Author, DefaultArticleAuthor)
			if a.PublishedAt.IsZero() {
				a.PublishedAt = startOfDay(dc.Now)
			}
			a.Content = SanitizeArticleHTML(a.Content)
			a.ReadTime = ReadTime(a.Content)
		},
	}
}

// AwardKind 描述奖项，年份、名称与颁发机构均为必填。
func AwardKind() *content.Kind[db.Award] {
	return &content.Kind[db.Award]{
		Name:         KindAwards,
		TitleField:   "name",
		DefaultOrder: []content.Order{content.Desc("year")},
		Columns:      []string{"year", "name", "institution"},
		Title:        func(a *db.Award) string { return a.Name },
		NewDraft: func(dc content.DraftContext) db.Award {
			return db.Award{Year: strconv.Itoa(dc.Now.Year())}
		},
		Prepare: func(a *db.Award, _ content.DraftContext) {
			a.Year = strings.TrimSpace(a.Year)
			a.Name = strings.TrimSpace(a.Name)
			a.Institution = strings.TrimSpace(a.Institution)
		},
		Validate: func(a *db.Award) error {
			if strings.TrimSpace(a.Year) == "" {
				return &content.FieldError{Field: "year", Reason: "required"}
			}
			if strings.TrimSpace(a.Institution) == "" {
				return &content.FieldError{Field: "institution", Reason: "required"}
			}
			return nil
		},
	}
}

// TestimonialKind 描述客户评价。
func TestimonialKind() *content.Kind[db.Testimonial] {
	return &content.Kind[db.Testimonial]{
		Name:         KindTestimonials,
		Folder:       "testimonials",
		TitleField:   "name",
		DefaultOrder: []content.Order{content.Asc("id")},
		Columns:      []string{"name", "role", "company", "content", "image_url", "image_path"},
		Title:        func(t *db.Testimonial) string { return t.Name },
		Image:        func(t *db.Testimonial) (*string, *string) { return &t.ImageURL, &t.ImagePath },
		Prepare: func(t *db.Testimonial, _ content.DraftContext) {
			t.Name = strings.TrimSpace(t.Name)
		},
	}
}

// FAQKind 描述常见问题。新草稿排在末尾，order 可重复；编辑时保留原有 order。
func FAQKind() *content.Kind[db.FAQ] {
	return &content.Kind[db.FAQ]{
		Name:         KindFAQs,
		TitleField:   "question",
		DefaultOrder: []content.Order{content.Asc("sort_order")},
		Columns:      []string{"question", "answer", "sort_order"},
		Title:        func(f *db.FAQ) string { return f.Question },
		NewDraft: func(dc content.DraftContext) db.FAQ {
			return db.FAQ{Order: int(dc.Count) + 1}
		},
		Prepare: func(f *db.FAQ, dc content.DraftContext) {
			if dc.Creating && f.Order <= 0 {
				f.Order = int(dc.Count) + 1
			}
		},
	}
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// ReadTime 估算阅读时长：去掉标签后按空白切词，每分钟 200 词向上取整。
// 空正文按一个词计，结果为 "1 min"。
func ReadTime(html string) string {
	text := htmlTagPattern.ReplaceAllString(html, "")
	words := len(strings.Fields(text))
	if words == 0 {
		words = 1
	}
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	return strconv.Itoa(minutes) + " min"
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func compactStrings(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func startOfDay(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
