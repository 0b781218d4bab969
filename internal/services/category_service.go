package services

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
)

type CategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type CategoryService struct {
	Repo repositories.CategoryRepository
	DB   *sql.DB
}

func (s CategoryService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s CategoryService) repo() repositories.CategoryRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.CategoryRepository{DB: s.db()}
}

func (s CategoryService) List(p domain.ListParams) ([]models.Category, int, error) {
	items, total, err := s.repo().List(p)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return items, total, nil
}

func (s CategoryService) Get(id string) (models.Category, error) {
	cid, err := strconv.ParseInt(id, 10, 64)
	if err != nil || cid <= 0 {
		return models.Category{}, domain.ValidationError{Field: "id", Msg: "invalid id", Err: err}
	}
	c, err := s.repo().FindByID(cid)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, domain.NotFoundError{Resource: "category", Err: err}
	}
	if err != nil {
		return models.Category{}, domain.InternalError{Err: err}
	}
	return c, nil
}

func (s CategoryService) Create(rc domain.RequestContext, in CategoryInput) (models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Category{}, domain.ValidationError{Field: "name", Msg: "name is required"}
	}

	taken, err := s.repo().ExistsName(name)
	if err != nil {
		return models.Category{}, domain.InternalError{Err: err}
	}
	if taken {
		return models.Category{}, domain.ConflictError{Resource: "category", Msg: "name already exists"}
	}

	createdBy := rc.UserID
	c, err := s.repo().Create(models.Category{
		Name:        name,
		Description: in.Description,
		Audit:       models.Audit{CreatedBy: &createdBy},
	})
	if err != nil {
		return models.Category{}, domain.InternalError{Err: err}
	}
	return c, nil
}

func (s CategoryService) Update(rc domain.RequestContext, id string, in CategoryInput) (models.Category, error) {
	c, err := s.Get(id)
	if err != nil {
		return models.Category{}, err
	}

	if name := strings.TrimSpace(in.Name); name != "" && name != c.Name {
		taken, err := s.repo().ExistsName(name)
		if err != nil {
			return models.Category{}, domain.InternalError{Err: err}
		}
		if taken {
			return models.Category{}, domain.ConflictError{Resource: "category", Msg: "name already exists"}
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = in.Description
	}

	updatedBy := rc.UserID
	c.UpdatedBy = &updatedBy
	if err := s.repo().Update(c); err != nil {
		return models.Category{}, domain.InternalError{Err: err}
	}
	return s.Get(id)
}

func (s CategoryService) Delete(rc domain.RequestContext, id string) error {
	c, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.repo().SoftDelete(c.ID, rc.UserID); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
