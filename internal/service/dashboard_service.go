package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DashboardCounts 为后台首页的各类内容数量。
type DashboardCounts struct {
	Products     int64 `json:"products"`
	Portfolios   int64 `json:"portfolios"`
	Articles     int64 `json:"articles"`
	Awards       int64 `json:"awards"`
	Testimonials int64 `json:"testimonials"`
	FAQs         int64 `json:"faqs"`
}

// DashboardService 只做计数查询，不加载任何行。
type DashboardService struct {
	catalog *Catalog
}

// NewDashboardService 构造 DashboardService。
func NewDashboardService(catalog *Catalog) *DashboardService {
	return &DashboardService{catalog: catalog}
}

// Counts 并发统计六张内容表。
func (s *DashboardService) Counts(ctx context.Context) (DashboardCounts, error) {
	var counts DashboardCounts
	group, gctx := errgroup.WithContext(ctx)

	count := func(dst *int64, counter func(context.Context) (int64, error)) {
		group.Go(func() error {
			total, err := counter(gctx)
			if err != nil {
				return err
			}
			*dst = total
			return nil
		})
	}

	count(&counts.Products, s.catalog.Products.Repository().Count)
	count(&counts.Portfolios, s.catalog.Portfolios.Repository().Count)
	count(&counts.Articles, s.catalog.Articles.Repository().Count)
	count(&counts.Awards, s.catalog.Awards.Repository().Count)
	count(&counts.Testimonials, s.catalog.Testimonials.Repository().Count)
	count(&counts.FAQs, s.catalog.FAQs.Repository().Count)

	if err := group.Wait(); err != nil {
		return DashboardCounts{}, fmt.Errorf("dashboard counts: %w", err)
	}
	return counts, nil
}
