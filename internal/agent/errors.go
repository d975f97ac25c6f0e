package agent

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ErrStepLimit - модель не вызвала done за отведенное число шагов.
var ErrStepLimit = errors.New("достигнут лимит шагов")

type ErrorType int

const (
	ErrorTypeTemporary ErrorType = iota
	ErrorTypeCritical
	ErrorTypeRetryable
)

func (e ErrorType) String() string {
	switch e {
	case ErrorTypeTemporary:
		return "temporary"
	case ErrorTypeCritical:
		return "critical"
	case ErrorTypeRetryable:
		return "retryable"
	default:
		return "unknown"
	}
}

type ActionError struct {
	Type    ErrorType
	Action  string
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Action, e.Message)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func classifyError(action string, err error) *ActionError {
	if err == nil {
		return nil
	}

	newErr := func(t ErrorType) *ActionError {
		return &ActionError{Type: t, Action: action, Message: err.Error(), Err: err}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrCircuitOpen) {
		return newErr(ErrorTypeCritical)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests, apiErr.HTTPStatusCode >= 500:
			return newErr(ErrorTypeRetryable)
		default:
			return newErr(ErrorTypeCritical)
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode >= 500 {
		return newErr(ErrorTypeRetryable)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return newErr(ErrorTypeRetryable)
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "econnrefused") {
		return newErr(ErrorTypeRetryable)
	}

	if strings.Contains(errStr, "not found") ||
		strings.Contains(errStr, "element") ||
		strings.Contains(errStr, "detached") {
		return newErr(ErrorTypeTemporary)
	}

	return newErr(ErrorTypeCritical)
}

func isCriticalError(err error) bool {
	return classifyError("", err).Type == ErrorTypeCritical
}

// retryAction повторяет fn с экспоненциальной задержкой, пока ошибка не критичная.
func retryAction(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(float64(baseDelay) * math.Pow(2, float64(attempt-1)))
			if delay > 30*time.Second {
				delay = 30 * time.Second
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if isCriticalError(err) {
			return err
		}
	}

	return fmt.Errorf("после %d попыток: %w", maxRetries, lastErr)
}
