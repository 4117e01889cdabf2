package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/proshopcms/internal/content"
	"github.com/proshopcms/internal/db"
)

// Collection 为单一内容类型绑定仓储与管理器。
type Collection[T content.Entity] struct {
	*content.Manager[T]
	repo *content.Repository[T]
}

func newCollection[T content.Entity](gdb *gorm.DB, kind *content.Kind[T], media *content.MediaManager, opts ...content.ManagerOption) *Collection[T] {
	repo := content.NewRepository(gdb, kind)
	if !kind.HasImage() {
		media = nil
	}
	return &Collection[T]{
		Manager: content.NewManager(kind, content.Store[T](repo), media, opts...),
		repo:    repo,
	}
}

// Repository 返回底层仓储，供公开页面按 slug 查询。
func (c *Collection[T]) Repository() *content.Repository[T] {
	return c.repo
}

// Get 读取单条记录。
func (c *Collection[T]) Get(ctx context.Context, id uint) (*T, error) {
	return c.repo.Get(ctx, id)
}

// Catalog 汇总六类内容的集合，以及它们共享的媒体管理器。
type Catalog struct {
	Products     *Collection[db.Product]
	Portfolios   *Collection[db.Portfolio]
	Articles     *Collection[db.Article]
	Awards       *Collection[db.Award]
	Testimonials *Collection[db.Testimonial]
	FAQs         *Collection[db.FAQ]

	media *content.MediaManager
}

// CatalogOptions 控制表单保存超时与日志。
type CatalogOptions struct {
	Logger      *zap.Logger
	SaveTimeout time.Duration
}

// NewCatalog 构造 Catalog。
func NewCatalog(gdb *gorm.DB, media *content.MediaManager, opts CatalogOptions) *Catalog {
	managerOpts := []content.ManagerOption{
		content.WithLogger(opts.Logger),
		content.WithFormTimeout(opts.SaveTimeout),
	}
	return &Catalog{
		Products:     newCollection(gdb, ProductKind(), media, managerOpts...),
		Portfolios:   newCollection(gdb, PortfolioKind(), media, managerOpts...),
		Articles:     newCollection(gdb, ArticleKind(), media, managerOpts...),
		Awards:       newCollection(gdb, AwardKind(), media, managerOpts...),
		Testimonials: newCollection(gdb, TestimonialKind(), media, managerOpts...),
		FAQs:         newCollection(gdb, FAQKind(), media, managerOpts...),
		media:        media,
	}
}

// Media 返回共享的媒体管理器。
func (c *Catalog) Media() *content.MediaManager {
	return c.media
}
