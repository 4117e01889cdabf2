package content

import (
	"context"
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/proshopcms/internal/metrics"
)

// State is the editing state of a Form.
type State int

const (
	StateIdle State = iota
	StateCreating
	StateEditing
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateCreating:
		return "creating"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	default:
		return "idle"
	}
}

// Reloader refreshes a cached view after a successful write.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Form is the create/edit controller of one entity kind.
//
// Idle -> Creating|Editing -> Saving -> Idle on success, or back to the editing state
// with the draft intact on failure. Only one save runs at a time.
type Form[T Entity] struct {
	kind    *Kind[T]
	store   Store[T]
	media   *MediaManager
	view    Reloader
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time

	mu        sync.Mutex
	state     State
	resume    State
	draft     T
	original  T
	staged    *PendingUpload
	count     int64
	lastError error
}

// FormOption configures a Form.
type FormOption func(*formOptions)

type formOptions struct {
	view    Reloader
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time
}

// WithReloader refreshes view after every successful save.
func WithReloader(view Reloader) FormOption {
	return func(o *formOptions) { o.view = view }
}

// WithFormLogger sets the form logger.
func WithFormLogger(logger *zap.Logger) FormOption {
	return func(o *formOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSaveTimeout bounds a whole submission. Zero disables the bound.
func WithSaveTimeout(d time.Duration) FormOption {
	return func(o *formOptions) { o.timeout = d }
}

// WithFormClock replaces time.Now for draft defaults.
func WithFormClock(now func() time.Time) FormOption {
	return func(o *formOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewForm builds an idle form. media may be nil for kinds without images.
func NewForm[T Entity](kind *Kind[T], store Store[T], media *MediaManager, opts ...FormOption) *Form[T] {
	o := formOptions{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Form[T]{
		kind:    kind,
		store:   store,
		media:   media,
		view:    o.view,
		logger:  o.logger,
		timeout: o.timeout,
		now:     o.now,
	}
}

// State returns the current state.
func (f *Form[T]) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err returns the error of the last failed submission, cleared by the next transition.
func (f *Form[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastError
}

// Draft returns a copy of the working draft.
func (f *Form[T]) Draft() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Staged returns the pending image selection, if any.
func (f *Form[T]) Staged() *PendingUpload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.staged
}

// New starts a creation with the kind's defaults.
func (f *Form[T]) New(ctx context.Context) (T, error) {
	count, err := f.store.Count(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSaving {
		var zero T
		return zero, ErrBusy
	}
	f.count = count
	f.draft = f.kind.newDraft(DraftContext{Now: f.now(), Count: count, Creating: true})
	f.original = f.draft
	f.staged = nil
	f.lastError = nil
	f.state = StateCreating
	return f.draft, nil
}

// Edit starts editing a copy of record.
func (f *Form[T]) Edit(record T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSaving {
		return ErrBusy
	}
	f.draft = record
	f.original = record
	f.staged = nil
	f.lastError = nil
	f.state = StateEditing
	return nil
}

// SetDraft replaces the working draft.
func (f *Form[T]) SetDraft(draft T) error {
	return f.Change(func(current *T) { *current = draft })
}

// Change applies fn to the working draft.
func (f *Form[T]) Change(fn func(*T)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case StateSaving:
		return ErrBusy
	case StateIdle:
		return ErrNoDraft
	}
	fn(&f.draft)
	return nil
}

// Stage attaches a pending image. Nothing is uploaded until Submit.
func (f *Form[T]) Stage(upload *PendingUpload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case StateSaving:
		return ErrBusy
	case StateIdle:
		return ErrNoDraft
	}
	if !f.kind.HasImage() {
		return &FieldError{Field: "image", Reason: "not supported"}
	}
	f.staged = upload
	return nil
}

// Dirty reports whether the draft differs from what the form started with.
func (f *Form[T]) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateIdle {
		return false
	}
	return f.staged != nil || !reflect.DeepEqual(f.draft, f.original)
}

// Cancel discards the draft and any staged image.
func (f *Form[T]) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSaving {
		return ErrBusy
	}
	f.reset()
	return nil
}

// Submit validates, commits the staged image, writes the record and refreshes the view.
// The replaced image is released in the background only after the write succeeded.
func (f *Form[T]) Submit(ctx context.Context) (*T, error) {
	f.mu.Lock()
	switch f.state {
	case StateSaving:
		f.mu.Unlock()
		return nil, ErrBusy
	case StateIdle:
		f.mu.Unlock()
		return nil, ErrNoDraft
	}

	creating := f.state == StateCreating
	draft := f.draft
	original := f.original
	staged := f.staged
	count := f.count
	if err := f.kind.validate(&draft, creating, staged != nil); err != nil {
		f.lastError = err
		f.mu.Unlock()
		metrics.FormSaveDuration.WithLabelValues(f.kind.Name, resultLabel(err)).Observe(0)
		return nil, err
	}
	f.resume = f.state
	f.state = StateSaving
	f.lastError = nil
	f.mu.Unlock()

	start := time.Now()
	saved, err := f.save(ctx, draft, original, staged, creating, count)
	metrics.FormSaveDuration.WithLabelValues(f.kind.Name, resultLabel(err)).Observe(time.Since(start).Seconds())

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = f.resume
		f.lastError = err
		return nil, err
	}
	f.reset()
	return saved, nil
}

func (f *Form[T]) save(ctx context.Context, draft, original T, staged *PendingUpload, creating bool, count int64) (*T, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	// Image fields only ever hold committed references.
	previous := f.kind.ImageRef(&original)
	f.kind.SetImageRef(&draft, previous)

	var committed MediaRef
	if staged != nil {
		ref, err := f.media.Commit(ctx, staged, f.kind.Folder)
		if err != nil {
			return nil, err
		}
		committed = ref
		f.kind.SetImageRef(&draft, ref)
	}

	f.kind.prepare(&draft, DraftContext{Now: f.now(), Count: count, Creating: creating})

	var (
		saved *T
		err   error
	)
	if creating {
		saved, err = f.store.Create(ctx, &draft)
	} else {
		saved, err = f.store.Update(ctx, draft.PrimaryKey(), &draft, nil)
	}
	if err != nil {
		if !committed.IsZero() {
			f.media.ReleasePrevious(committed)
		}
		return nil, err
	}

	if f.view != nil {
		if err := f.view.Reload(ctx); err != nil {
			f.logger.Warn("list refresh after save failed", zap.String("kind", f.kind.Name), zap.Error(err))
		}
	}
	if !committed.IsZero() && !previous.IsZero() {
		f.media.ReleasePrevious(previous)
	}
	return saved, nil
}

func (f *Form[T]) reset() {
	var zero T
	f.draft = zero
	f.original = zero
	f.staged = nil
	f.count = 0
	f.lastError = nil
	f.state = StateIdle
}
