package services

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"

	"github.com/google/uuid"
)

type CategoryMarketplaceService struct {
	Repo repositories.CategoryMarketplaceRepository
	DB   *sql.DB
}

func (s CategoryMarketplaceService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s CategoryMarketplaceService) repo() repositories.CategoryMarketplaceRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.CategoryMarketplaceRepository{DB: s.db()}
}

func (s CategoryMarketplaceService) List(p domain.ListParams) ([]models.CategoryMarketplace, int, error) {
	items, total, err := s.repo().List(p)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return items, total, nil
}

func (s CategoryMarketplaceService) Get(id string) (models.CategoryMarketplace, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return models.CategoryMarketplace{}, domain.ValidationError{Field: "id", Msg: "invalid id", Err: err}
	}
	cm, err := s.repo().FindByID(cid)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CategoryMarketplace{}, domain.NotFoundError{Resource: "marketplace category", Err: err}
	}
	if err != nil {
		return models.CategoryMarketplace{}, domain.InternalError{Err: err}
	}
	return cm, nil
}

func (s CategoryMarketplaceService) Create(rc domain.RequestContext, in CategoryInput) (models.CategoryMarketplace, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.CategoryMarketplace{}, domain.ValidationError{Field: "name", Msg: "name is required"}
	}

	taken, err := s.repo().ExistsName(name)
	if err != nil {
		return models.CategoryMarketplace{}, domain.InternalError{Err: err}
	}
	if taken {
		return models.CategoryMarketplace{}, domain.ConflictError{Resource: "marketplace category", Msg: "name already exists"}
	}

	createdBy := rc.UserID
	cm, err := s.repo().Create(models.CategoryMarketplace{
		Name:        name,
		Description: in.Description,
		Audit:       models.Audit{CreatedBy: &createdBy},
	})
	if err != nil {
		return models.CategoryMarketplace{}, domain.InternalError{Err: err}
	}
	return cm, nil
}

func (s CategoryMarketplaceService) Update(rc domain.RequestContext, id string, in CategoryInput) (models.CategoryMarketplace, error) {
	cm, err := s.Get(id)
	if err != nil {
		return models.CategoryMarketplace{}, err
	}

	if name := strings.TrimSpace(in.Name); name != "" && name != cm.Name {
		taken, err := s.repo().ExistsName(name)
		if err != nil {
			return models.CategoryMarketplace{}, domain.InternalError{Err: err}
		}
		if taken {
			return models.CategoryMarketplace{}, domain.ConflictError{Resource: "marketplace category", Msg: "name already exists"}
		}
		cm.Name = name
	}
	if in.Description != nil {
		cm.Description = in.Description
	}

	updatedBy := rc.UserID
	cm.UpdatedBy = &updatedBy
	if err := s.repo().Update(cm); err != nil {
		return models.CategoryMarketplace{}, domain.InternalError{Err: err}
	}
	return s.Get(id)
}

func (s CategoryMarketplaceService) Delete(rc domain.RequestContext, id string) error {
	cm, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.repo().SoftDelete(cm.ID, rc.UserID); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
