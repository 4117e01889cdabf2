package content

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Manager ties together the store, media and cached list of one entity kind.
type Manager[T Entity] struct {
	kind        *Kind[T]
	store       Store[T]
	media       *MediaManager
	view        *ListView[T]
	logger      *zap.Logger
	saveTimeout time.Duration
}

// ManagerOption configures a Manager.
type ManagerOption func(*managerOptions)

type managerOptions struct {
	logger      *zap.Logger
	saveTimeout time.Duration
}

// WithLogger sets the manager logger, shared with the forms it creates.
func WithLogger(logger *zap.Logger) ManagerOption {
	return func(o *managerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFormTimeout bounds every submission of forms created by the manager.
func WithFormTimeout(d time.Duration) ManagerOption {
	return func(o *managerOptions) { o.saveTimeout = d }
}

// NewManager builds a manager. media may be nil when the kind has no image.
func NewManager[T Entity](kind *Kind[T], store Store[T], media *MediaManager, opts ...ManagerOption) *Manager[T] {
	o := managerOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager[T]{
		kind:        kind,
		store:       store,
		media:       media,
		view:        NewListView(kind, store),
		logger:      o.logger,
		saveTimeout: o.saveTimeout,
	}
}

// Kind returns the kind descriptor.
func (m *Manager[T]) Kind() *Kind[T] { return m.kind }

// Store returns the underlying store.
func (m *Manager[T]) Store() Store[T] { return m.store }

// View returns the cached list.
func (m *Manager[T]) View() *ListView[T] { return m.view }

// List reloads the view and returns its items.
func (m *Manager[T]) List(ctx context.Context) ([]T, error) {
	if err := m.view.Reload(ctx); err != nil {
		return nil, err
	}
	return m.view.Items(), nil
}

// NewForm returns an idle form that refreshes the manager's view after saving.
func (m *Manager[T]) NewForm() *Form[T] {
	return NewForm(m.kind, m.store, m.media,
		WithReloader(m.view),
		WithFormLogger(m.logger),
		WithSaveTimeout(m.saveTimeout),
	)
}

// Delete removes the record's image first, then the record itself, then refreshes the view.
// A failed image removal is logged and does not stop the delete.
func (m *Manager[T]) Delete(ctx context.Context, id uint) error {
	record, err := m.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if m.kind.HasImage() && m.media != nil {
		if ref := m.kind.ImageRef(record); !ref.IsZero() {
			_ = m.media.Remove(ctx, ref)
		}
	}

	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}

	if err := m.view.Reload(ctx); err != nil {
		m.logger.Warn("list refresh after delete failed", zap.String("kind", m.kind.Name), zap.Error(err))
	}
	return nil
}
