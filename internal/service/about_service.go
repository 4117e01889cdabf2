package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/proshopcms/internal/content"
	"github.com/proshopcms/internal/db"
)

// AboutKind 描述关于页单例。图片可选，存放在 about/ 目录。
func AboutKind() *content.Kind[db.About] {
	return &content.Kind[db.About]{
		Name:          "about",
		Folder:        "about",
		DefaultOrder:  []content.Order{content.Asc("id")},
		Columns:       []string{"content", "vision", "image_url", "image_path", "projects_count"},
		ImageOptional: true,
		Image:         func(a *db.About) (*string, *string) { return &a.ImageURL, &a.ImagePath },
		NewDraft: func(content.DraftContext) db.About {
			return db.About{ProjectsCount: "0"}
		},
		Prepare: func(a *db.About, _ content.DraftContext) {
			a.Content = strings.TrimSpace(a.Content)
			a.Vision = strings.TrimSpace(a.Vision)
			a.ProjectsCount = orDefault(a.ProjectsCount, "0")
		},
	}
}

// AboutInput 为关于页可编辑的文本字段。
type AboutInput struct {
	Content       string `json:"content"`
	Vision        string `json:"vision"`
	ProjectsCount string `json:"projects_count"`
}

// AboutService 维护关于页单例：有记录则更新第一条，否则新建。
type AboutService struct {
	repo    *content.Repository[db.About]
	media   *content.MediaManager
	logger  *zap.Logger
	timeout time.Duration
}

// NewAboutService 构造 AboutService。
func NewAboutService(gdb *gorm.DB, media *content.MediaManager, opts CatalogOptions) *AboutService {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AboutService{
		repo:    content.NewRepository(gdb, AboutKind()),
		media:   media,
		logger:  logger,
		timeout: opts.SaveTimeout,
	}
}

// Get 返回当前关于页内容；尚无记录时返回默认草稿，exists 为 false。
func (s *AboutService) Get(ctx context.Context) (about db.About, exists bool, err error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return db.About{}, false, err
	}
	if len(items) == 0 {
		return db.About{ProjectsCount: "0"}, false, nil
	}
	return items[0], true, nil
}

// Save 写入关于页。staged 为 nil 时保留原图片。
func (s *AboutService) Save(ctx context.Context, input AboutInput, staged *content.PendingUpload) (*db.About, error) {
	current, exists, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	form := content.NewForm(AboutKind(), content.Store[db.About](s.repo), s.media,
		content.WithFormLogger(s.logger),
		content.WithSaveTimeout(s.timeout),
	)
	if exists {
		if err := form.Edit(current); err != nil {
			return nil, err
		}
	} else if _, err := form.New(ctx); err != nil {
		return nil, err
	}

	if err := form.Change(func(a *db.About) {
		a.Content = input.Content
		a.Vision = input.Vision
		a.ProjectsCount = input.ProjectsCount
	}); err != nil {
		return nil, err
	}
	if staged != nil {
		if err := form.Stage(staged); err != nil {
			return nil, err
		}
	}
	return form.Submit(ctx)
}
