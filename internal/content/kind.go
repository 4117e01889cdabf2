package content

import (
	"strings"
	"time"
)

// Entity is a record with a server-assigned numeric identity.
type Entity interface {
	PrimaryKey() uint
}

// Order is one ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

// Asc and Desc build Order terms.
func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// DraftContext is what a kind may consult when seeding or finishing a draft.
// Count is only known while creating; Creating is false when an existing record is saved.
type DraftContext struct {
	Now      time.Time
	Count    int64
	Creating bool
}

// Kind describes one entity kind to the generic repository, form and list code.
// Optional accessors are nil when the kind lacks the concept (no slug, no category, no image).
type Kind[T Entity] struct {
	Name         string
	Folder       string
	TitleField   string
	DefaultOrder []Order
	// Columns lists the writable columns; updates send exactly these unless told otherwise.
	Columns []string
	// ImageOptional lifts the image requirement on create.
	ImageOptional bool

	Title    func(*T) string
	Slug     func(*T) *string
	Category func(*T) string
	// Image returns pointers to the public URL and object path fields.
	Image    func(*T) (url *string, path *string)
	NewDraft func(DraftContext) T
	Prepare  func(*T, DraftContext)
	Validate func(*T) error
}

// HasImage reports whether records of this kind carry an image.
func (k *Kind[T]) HasImage() bool {
	return k.Image != nil
}

// HasCategory reports whether records of this kind are grouped by category.
func (k *Kind[T]) HasCategory() bool {
	return k.Category != nil
}

// ImageRef reads the image reference of record.
func (k *Kind[T]) ImageRef(record *T) MediaRef {
	if k.Image == nil || record == nil {
		return MediaRef{}
	}
	url, path := k.Image(record)
	return MediaRef{URL: *url, Path: *path}
}

// SetImageRef stores ref on record.
func (k *Kind[T]) SetImageRef(record *T, ref MediaRef) {
	if k.Image == nil || record == nil {
		return
	}
	url, path := k.Image(record)
	*url = ref.URL
	*path = ref.Path
}

func (k *Kind[T]) newDraft(dc DraftContext) T {
	if k.NewDraft == nil {
		var zero T
		return zero
	}
	return k.NewDraft(dc)
}

// validate runs the synchronous checks done before any network call.
func (k *Kind[T]) validate(draft *T, creating, staged bool) error {
	if k.Title != nil && strings.TrimSpace(k.Title(draft)) == "" {
		field := k.TitleField
		if field == "" {
			field = "title"
		}
		return requiredField(field)
	}
	if k.HasImage() && !k.ImageOptional && creating && !staged {
		return requiredField("image")
	}
	if k.Validate != nil {
		return k.Validate(draft)
	}
	return nil
}

// prepare derives the slug and any kind-specific fields right before a write.
func (k *Kind[T]) prepare(draft *T, dc DraftContext) {
	if k.Slug != nil && k.Title != nil {
		*k.Slug(draft) = Slugify(k.Title(draft))
	}
	if k.Prepare != nil {
		k.Prepare(draft, dc)
	}
}

func (k *Kind[T]) sortable(column string) bool {
	switch column {
	case "id", "created_at", "updated_at":
		return true
	}
	for _, c := range k.Columns {
		if c == column {
			return true
		}
	}
	return false
}
