package usecase

import (
	"errors"
	"net/http"

	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// repositoryのエラーをHTTPのステータスに読み替える。
// ErrTransientはロック待ち等なのでリトライ可能として503を返す。
func mapRepoError(err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, repo.ErrTransient):
		return NewHTTPError(http.StatusServiceUnavailable, "busy, retry later")
	default:
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
}
