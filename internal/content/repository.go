package content

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/proshopcms/internal/metrics"
)

// Store is the persistence contract the form controller and manager work against.
type Store[T Entity] interface {
	List(ctx context.Context, orders ...Order) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, draft *T) (*T, error)
	Update(ctx context.Context, id uint, patch *T, fields []string) (*T, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// Repository is the gorm-backed Store of one entity kind.
type Repository[T Entity] struct {
	db   *gorm.DB
	kind *Kind[T]
}

// NewRepository binds a kind to a database handle.
func NewRepository[T Entity](gdb *gorm.DB, kind *Kind[T]) *Repository[T] {
	return &Repository[T]{db: gdb, kind: kind}
}

// List returns every row in the requested order, falling back to the kind's default order.
// id ascending is always appended as the final tie-breaker.
func (r *Repository[T]) List(ctx context.Context, orders ...Order) ([]T, error) {
	if len(orders) == 0 {
		orders = r.kind.DefaultOrder
	}

	query := r.db.WithContext(ctx).Model(new(T))
	hasID := false
	for _, order := range orders {
		if !r.kind.sortable(order.Column) {
			return nil, r.observe("list", &FieldError{Field: "order", Reason: fmt.Sprintf("not sortable by %q", order.Column)})
		}
		if order.Column == "id" {
			hasID = true
		}
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: order.Column}, Desc: order.Desc})
	}
	if !hasID {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}

	var items []T
	if err := query.Find(&items).Error; err != nil {
		return nil, r.observe("list", err)
	}
	r.observe("list", nil)
	return items, nil
}

// Get loads one row by id.
func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var record T
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, r.observe("get", err)
	}
	r.observe("get", nil)
	return &record, nil
}

// GetBySlug loads the row with the given slug. When titles collided, the oldest row wins.
func (r *Repository[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	if r.kind.Slug == nil {
		return nil, r.observe("get_by_slug", &FieldError{Field: "slug", Reason: "not supported"})
	}
	var record T
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		First(&record).Error
	if err != nil {
		return nil, r.observe("get_by_slug", err)
	}
	r.observe("get_by_slug", nil)
	return &record, nil
}

// Create inserts draft and returns it with its assigned id.
func (r *Repository[T]) Create(ctx context.Context, draft *T) (*T, error) {
	if draft == nil {
		return nil, r.observe("create", ErrNoDraft)
	}
	if (*draft).PrimaryKey() != 0 {
		return nil, r.observe("create", &FieldError{Field: "id", Reason: "assigned by the server"})
	}
	if err := r.db.WithContext(ctx).Select(r.kind.Columns).Create(draft).Error; err != nil {
		return nil, r.observe("create", err)
	}
	r.observe("create", nil)
	return draft, nil
}

// Update writes exactly the given fields of patch to row id (all writable columns when
// fields is empty) and returns the stored row. Concurrent edits are last-write-wins.
func (r *Repository[T]) Update(ctx context.Context, id uint, patch *T, fields []string) (*T, error) {
	if patch == nil {
		return nil, r.observe("update", ErrNoDraft)
	}
	if len(fields) == 0 {
		fields = r.kind.Columns
	}

	tx := r.db.WithContext(ctx)
	if err := tx.Model(new(T)).Where("id = ?", id).Select(fields).Updates(patch).Error; err != nil {
		return nil, r.observe("update", err)
	}

	// mysql reports changed rows only, so existence is checked by reading back.
	var stored T
	if err := tx.First(&stored, "id = ?", id).Error; err != nil {
		return nil, r.observe("update", err)
	}
	r.observe("update", nil)
	return &stored, nil
}

// Delete removes row id.
func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return r.observe("delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.observe("delete", gorm.ErrRecordNotFound)
	}
	r.observe("delete", nil)
	return nil
}

// Count returns the number of rows without loading them.
func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return 0, r.observe("count", err)
	}
	r.observe("count", nil)
	return total, nil
}

func (r *Repository[T]) observe(op string, err error) error {
	wrapped := wrapStoreError(r.kind.Name+"."+op, err)
	result := "ok"
	if wrapped != nil {
		result = resultLabel(wrapped)
	}
	metrics.RepositoryOperations.WithLabelValues(r.kind.Name, op, result).Inc()
	return wrapped
}

func resultLabel(err error) string {
	switch KindOf(err) {
	case nil:
		return "ok"
	case ErrValidation:
		return "validation"
	case ErrNotFound:
		return "not_found"
	case ErrConstraint:
		return "constraint"
	case ErrTransport:
		return "transport"
	case ErrUpload:
		return "upload"
	case ErrBusy:
		return "busy"
	default:
		return "write"
	}
}
