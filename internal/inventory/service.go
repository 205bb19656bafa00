// Package inventory is the stock-keeping core of Складец: the product
// catalog, the operation ledger that moves stock quantities, and the read
// side (search, reports) used by the HTTP handlers in this package.
package inventory

import (
	"errors"
	"sort"
	"strings"
	"time"

	"skladets/internal/store"

	"go.uber.org/zap"
)

// PageSize is the fixed number of products per page in SearchProducts.
const PageSize = 20

var (
	ErrProductNotFound      = errors.New("товар не найден")
	ErrSupplierNotFound     = errors.New("поставщик не найден")
	ErrInvalidOperationType = errors.New("неизвестный тип операции")
	ErrInvalidQuantity      = errors.New("количество должно быть не меньше 1")
	ErrInvalidMinStock      = errors.New("минимальный остаток не может быть отрицательным")
	ErrRequiredField        = errors.New("обязательное поле")
)

// ValidationError carries per-field messages for re-rendering a form.
// errors.Is matches the sentinel errors of the failed fields.
type ValidationError struct {
	Fields map[string]string
	errs   []error
}

func (e *ValidationError) add(field string, sentinel error, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
	e.errs = append(e.errs, sentinel)
}

func (e *ValidationError) empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "ошибка валидации: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error { return e.errs }

type Service struct {
	repo store.Repository
	log  *zap.Logger
	now  func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now as the source of default operation dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo store.Repository, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{repo: repo, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
