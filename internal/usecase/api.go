package usecase

import (
	"context"
	"io"

	"dermassist/internal/apiclient"
	"dermassist/internal/domain/entity"
	"dermassist/pkg/response"
	"dermassist/pkg/validator"
)

// API is the subset of the HTTP client wrapper the usecases depend on.
type API interface {
	Get(ctx context.Context, path string, params interface{}, out interface{}) (*response.Meta, error)
	Post(ctx context.Context, path string, body, out interface{}) error
	Patch(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string) error
	Upload(ctx context.Context, path, field, filename, contentType string, content io.Reader, out interface{}) error
}

// Session is the local session the usecases read the current user from.
type Session interface {
	Save(ctx context.Context, token string, user *entity.User) error
	SaveUser(ctx context.Context, user *entity.User) error
	CurrentUser(ctx context.Context) (*entity.User, error)
	Clear(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)
}

var (
	ErrNotAuthenticated = apiclient.NewError(apiclient.KindUnauthorized, "Please log in to continue.")
	ErrNotDermatologist = apiclient.NewError(apiclient.KindForbidden, "Only dermatologists can review requests.")
)

// validate runs the form validator and converts failures into a field-level
// validation error.
func validate(v *validator.CustomValidator, req interface{}) error {
	if err := v.Validate(req); err != nil {
		return apiclient.NewValidationError(v.FormatValidationErrors(err))
	}
	return nil
}
