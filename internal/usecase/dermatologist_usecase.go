package usecase

import (
	"context"
	"strings"

	"dermassist/internal/delivery/dto"
	"dermassist/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

type DermatologistUsecase interface {
	Search(ctx context.Context, query string) ([]entity.User, error)
}

type dermatologistUsecase struct {
	log *logrus.Logger
	api API
}

func NewDermatologistUsecase(log *logrus.Logger, api API) DermatologistUsecase {
	return &dermatologistUsecase{log: log, api: api}
}

// Search lists dermatologists whose name, username, specialization or clinic
// matches query. An empty query lists all of them.
func (u *dermatologistUsecase) Search(ctx context.Context, query string) ([]entity.User, error) {
	var dermatologists []entity.User
	params := dto.DermatologistSearchQuery{Search: strings.TrimSpace(query)}
	if _, err := u.api.Get(ctx, "/dermatologists", params, &dermatologists); err != nil {
		u.log.Warnf("Failed to search dermatologists: %+v", err)
		return nil, err
	}
	return dermatologists, nil
}
