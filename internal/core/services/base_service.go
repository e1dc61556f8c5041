package services

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DefaultCurrencyScale is the number of decimal places of the ledger currency when none is configured.
const DefaultCurrencyScale int32 = 2

// BaseService provides common functionality for all services
type BaseService struct {
	clock         func() time.Time
	currencyScale int32
	validate      *validator.Validate
}

// ServiceOption is a functional option shared by every service constructor
type ServiceOption func(*BaseService)

// WithClock replaces the clock used for audit timestamps and default reference dates.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

// WithCurrencyScale sets the number of decimal places amounts may carry.
func WithCurrencyScale(scale int32) ServiceOption {
	return func(s *BaseService) {
		s.currencyScale = scale
	}
}

// WithValidator shares one validator instance, which caches struct metadata, between services.
func WithValidator(v *validator.Validate) ServiceOption {
	return func(s *BaseService) {
		s.validate = v
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{
		clock:         time.Now,
		currencyScale: DefaultCurrencyScale,
	}
	for _, option := range options {
		option(&base)
	}
	if base.validate == nil {
		base.validate = NewValidator()
	}
	return base
}

// NewValidator creates a validator reporting fields by their json names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// now returns the current instant in UTC.
func (s *BaseService) now() time.Time {
	return s.clock().UTC()
}

// validateRequest runs the struct tags of req and converts failures into apperrors.ValidationErrors.
func (s *BaseService) validateRequest(ctx context.Context, req any) error {
	err := s.validate.StructCtx(ctx, req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("request", "%v", err)
	}

	out := make(apperrors.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		out = append(out, apperrors.NewValidationError(field, "failed on '%s' rule", fe.Tag()))
	}
	return out
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()), slog.String("kind", apperrors.Kind(err)))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// requireReason rejects blank reasons for reject, fail and cancel transitions.
func requireReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return apperrors.NewValidationError("reason", "a non-blank reason is required")
	}
	return nil
}

// requirePositive rejects zero and negative amounts.
func requirePositive(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.NewValidationError(field, "amount must be greater than zero")
	}
	return nil
}

// checkScale rejects amounts with more decimal places than the ledger currency allows.
func (s *BaseService) checkScale(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(s.currencyScale)) {
		return apperrors.NewValidationError(field, "amount %s has more than %d decimal places", amount.String(), s.currencyScale)
	}
	return nil
}

func containsStatus[S ~string](allowed []S, status S) bool {
	for _, a := range allowed {
		if a == status {
			return true
		}
	}
	return false
}
