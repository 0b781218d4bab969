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

type OrderSecretInput struct {
	OrderSecretID         string  `json:"order_secret_id"`
	CategoryMarketplaceID string  `json:"category_marketplace_id"`
	Message               *string `json:"message,omitempty"`
	Emotional             *string `json:"emotional,omitempty"`
	FromName              *string `json:"from_name,omitempty"`
}

type OrderSecretService struct {
	Repo            repositories.OrderSecretRepository
	MarketplaceRepo repositories.CategoryMarketplaceRepository
	DB              *sql.DB
}

func (s OrderSecretService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s OrderSecretService) repo() repositories.OrderSecretRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.OrderSecretRepository{DB: s.db()}
}

func (s OrderSecretService) marketplaces() repositories.CategoryMarketplaceRepository {
	if s.MarketplaceRepo.DB != nil {
		return s.MarketplaceRepo
	}
	return repositories.CategoryMarketplaceRepository{DB: s.db()}
}

func (s OrderSecretService) List(p domain.ListParams) ([]models.OrderSecret, int, error) {
	items, total, err := s.repo().List(p)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return items, total, nil
}

// Get looks up by the public order secret id, the key marketplaces use.
func (s OrderSecretService) Get(orderSecretID string) (models.OrderSecret, error) {
	orderSecretID = strings.TrimSpace(orderSecretID)
	if orderSecretID == "" {
		return models.OrderSecret{}, domain.ValidationError{Field: "order_secret_id", Msg: "id is required"}
	}
	os, err := s.repo().FindByOrderSecretID(orderSecretID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.OrderSecret{}, domain.NotFoundError{Resource: "order secret", Err: err}
	}
	if err != nil {
		return models.OrderSecret{}, domain.InternalError{Err: err}
	}
	return os, nil
}

func (s OrderSecretService) Create(rc domain.RequestContext, in OrderSecretInput) (models.OrderSecret, error) {
	publicID := strings.TrimSpace(in.OrderSecretID)
	if publicID == "" {
		return models.OrderSecret{}, domain.ValidationError{Field: "order_secret_id", Msg: "id is required"}
	}
	cmID, err := uuid.Parse(strings.TrimSpace(in.CategoryMarketplaceID))
	if err != nil {
		return models.OrderSecret{}, domain.ValidationError{Field: "category_marketplace_id", Msg: "invalid id", Err: err}
	}

	if _, err := s.marketplaces().FindByID(cmID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.OrderSecret{}, domain.NotFoundError{Resource: "marketplace category", Err: err}
		}
		return models.OrderSecret{}, domain.InternalError{Err: err}
	}

	taken, err := s.repo().ExistsOrderSecretID(publicID)
	if err != nil {
		return models.OrderSecret{}, domain.InternalError{Err: err}
	}
	if taken {
		return models.OrderSecret{}, domain.ConflictError{Resource: "order secret", Msg: "order secret id already exists"}
	}

	createdBy := rc.UserID
	os, err := s.repo().Create(models.OrderSecret{
		OrderSecretID:         publicID,
		CategoryMarketplaceID: cmID,
		Message:               in.Message,
		Emotional:             in.Emotional,
		FromName:              in.FromName,
		Audit:                 models.Audit{CreatedBy: &createdBy},
	})
	if err != nil {
		return models.OrderSecret{}, domain.InternalError{Err: err}
	}
	return os, nil
}

func (s OrderSecretService) Update(rc domain.RequestContext, orderSecretID string, in OrderSecretInput) (models.OrderSecret, error) {
	os, err := s.Get(orderSecretID)
	if err != nil {
		return models.OrderSecret{}, err
	}

	if raw := strings.TrimSpace(in.CategoryMarketplaceID); raw != "" {
		cmID, err := uuid.Parse(raw)
		if err != nil {
			return models.OrderSecret{}, domain.ValidationError{Field: "category_marketplace_id", Msg: "invalid id", Err: err}
		}
		if _, err := s.marketplaces().FindByID(cmID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.OrderSecret{}, domain.NotFoundError{Resource: "marketplace category", Err: err}
			}
			return models.OrderSecret{}, domain.InternalError{Err: err}
		}
		os.CategoryMarketplaceID = cmID
	}
	if in.Message != nil {
		os.Message = in.Message
	}
	if in.Emotional != nil {
		os.Emotional = in.Emotional
	}
	if in.FromName != nil {
		os.FromName = in.FromName
	}

	updatedBy := rc.UserID
	os.UpdatedBy = &updatedBy
	if err := s.repo().Update(os); err != nil {
		return models.OrderSecret{}, domain.InternalError{Err: err}
	}
	return s.Get(orderSecretID)
}

func (s OrderSecretService) Delete(rc domain.RequestContext, orderSecretID string) error {
	os, err := s.Get(orderSecretID)
	if err != nil {
		return err
	}
	if err := s.repo().SoftDelete(os.ID, rc.UserID); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
