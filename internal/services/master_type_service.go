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

type MasterTypeInput struct {
	GroupCode   string  `json:"group_code"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type MasterTypeService struct {
	Repo repositories.MasterTypeRepository
	DB   *sql.DB
}

func (s MasterTypeService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s MasterTypeService) repo() repositories.MasterTypeRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.MasterTypeRepository{DB: s.db()}
}

func (s MasterTypeService) List(p domain.ListParams) ([]models.MasterType, int, error) {
	items, total, err := s.repo().List(p)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return items, total, nil
}

func (s MasterTypeService) Get(id string) (models.MasterType, error) {
	mid, err := uuid.Parse(id)
	if err != nil {
		return models.MasterType{}, domain.ValidationError{Field: "id", Msg: "invalid id", Err: err}
	}
	mt, err := s.repo().FindByID(mid)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MasterType{}, domain.NotFoundError{Resource: "master type", Err: err}
	}
	if err != nil {
		return models.MasterType{}, domain.InternalError{Err: err}
	}
	return mt, nil
}

func (s MasterTypeService) Create(rc domain.RequestContext, in MasterTypeInput) (models.MasterType, error) {
	groupCode := strings.ToUpper(strings.TrimSpace(in.GroupCode))
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	name := strings.TrimSpace(in.Name)

	if groupCode == "" {
		return models.MasterType{}, domain.ValidationError{Field: "group_code", Msg: "group code is required"}
	}
	if code == "" {
		return models.MasterType{}, domain.ValidationError{Field: "code", Msg: "code is required"}
	}
	if name == "" {
		return models.MasterType{}, domain.ValidationError{Field: "name", Msg: "name is required"}
	}

	taken, err := s.repo().ExistsCode(code)
	if err != nil {
		return models.MasterType{}, domain.InternalError{Err: err}
	}
	if taken {
		return models.MasterType{}, domain.ConflictError{Resource: "master type", Msg: "code already exists"}
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	createdBy := rc.UserID
	mt, err := s.repo().Create(models.MasterType{
		GroupCode:   groupCode,
		Code:        code,
		Name:        name,
		Description: in.Description,
		IsActive:    active,
		Audit:       models.Audit{CreatedBy: &createdBy},
	})
	if err != nil {
		return models.MasterType{}, domain.InternalError{Err: err}
	}
	return mt, nil
}

func (s MasterTypeService) Update(rc domain.RequestContext, id string, in MasterTypeInput) (models.MasterType, error) {
	mt, err := s.Get(id)
	if err != nil {
		return models.MasterType{}, err
	}

	if groupCode := strings.ToUpper(strings.TrimSpace(in.GroupCode)); groupCode != "" {
		mt.GroupCode = groupCode
	}
	if code := strings.ToUpper(strings.TrimSpace(in.Code)); code != "" && code != mt.Code {
		taken, err := s.repo().ExistsCode(code)
		if err != nil {
			return models.MasterType{}, domain.InternalError{Err: err}
		}
		if taken {
			return models.MasterType{}, domain.ConflictError{Resource: "master type", Msg: "code already exists"}
		}
		mt.Code = code
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		mt.Name = name
	}
	if in.Description != nil {
		mt.Description = in.Description
	}
	if in.IsActive != nil {
		mt.IsActive = *in.IsActive
	}

	updatedBy := rc.UserID
	mt.UpdatedBy = &updatedBy
	if err := s.repo().Update(mt); err != nil {
		return models.MasterType{}, domain.InternalError{Err: err}
	}
	return s.Get(id)
}

func (s MasterTypeService) Delete(rc domain.RequestContext, id string) error {
	mt, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.repo().SoftDelete(mt.ID, rc.UserID); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
