package services

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
	"backoffice/internal/sequence"
	"backoffice/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Business codes come from the shared naming series.
const (
	businessCodePrefix  = "BIZ"
	businessCodePadding = 12
)

type RegisterBusinessInput struct {
	BusinessName   string  `json:"business_name"`
	ShopName       string  `json:"shop_name"`
	NameOwner      string  `json:"name_owner"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	Address        *string `json:"address,omitempty"`
	BusinessTypeID string  `json:"business_type_id"`

	// Owner account created alongside the business.
	UserName     string `json:"user_name"`
	UserEmail    string `json:"user_email"`
	UserUsername string `json:"user_username"`
	UserPassword string `json:"user_password"`
}

type RegisterBusinessResult struct {
	Business models.Business `json:"business"`
	User     models.User     `json:"user"`
}

type UpdateBusinessInput struct {
	BusinessName   string  `json:"business_name"`
	ShopName       string  `json:"shop_name"`
	NameOwner      string  `json:"name_owner"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	Address        *string `json:"address,omitempty"`
	BusinessTypeID string  `json:"business_type_id"`
	Status         string  `json:"status"`
}

type BusinessService struct {
	BusinessRepo   repositories.BusinessRepository
	UserRepo       repositories.UserRepository
	MasterTypeRepo repositories.MasterTypeRepository
	DB             *sql.DB
}

func (s BusinessService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BusinessService) businesses() repositories.BusinessRepository {
	if s.BusinessRepo.DB != nil {
		return s.BusinessRepo
	}
	return repositories.BusinessRepository{DB: s.db()}
}

func (s BusinessService) users() repositories.UserRepository {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepository{DB: s.db()}
}

func (s BusinessService) masterTypes() repositories.MasterTypeRepository {
	if s.MasterTypeRepo.DB != nil {
		return s.MasterTypeRepo
	}
	return repositories.MasterTypeRepository{DB: s.db()}
}

// Register creates the merchant account and the business in one
// transaction. The business code comes from the BIZ naming series, so
// a rollback also releases the allocated number and the sequence stays
// gap-free.
func (s BusinessService) Register(requestID string, in RegisterBusinessInput) (RegisterBusinessResult, error) {
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.ShopName = strings.TrimSpace(in.ShopName)
	in.NameOwner = strings.TrimSpace(in.NameOwner)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.UserName = strings.TrimSpace(in.UserName)
	in.UserEmail = strings.ToLower(strings.TrimSpace(in.UserEmail))
	in.UserUsername = strings.ToLower(strings.TrimSpace(in.UserUsername))

	if in.BusinessName == "" {
		return RegisterBusinessResult{}, domain.ValidationError{Field: "business_name", Msg: "business name is required"}
	}
	if in.ShopName == "" {
		return RegisterBusinessResult{}, domain.ValidationError{Field: "shop_name", Msg: "shop name is required"}
	}
	if in.NameOwner == "" {
		return RegisterBusinessResult{}, domain.ValidationError{Field: "name_owner", Msg: "owner name is required"}
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return RegisterBusinessResult{}, domain.ValidationError{Field: "email", Msg: "valid email is required"}
	}
	if in.UserEmail == "" || !strings.Contains(in.UserEmail, "@") {
		return RegisterBusinessResult{}, domain.ValidationError{Field: "user_email", Msg: "valid email is required"}
	}
	if in.UserUsername == "" {
		return RegisterBusinessResult{}, domain.ValidationError{Field: "user_username", Msg: "username is required"}
	}
	if len(in.UserPassword) < 8 {
		return RegisterBusinessResult{}, domain.ValidationError{Field: "user_password", Msg: "password must be at least 8 characters"}
	}
	typeID, err := uuid.Parse(strings.TrimSpace(in.BusinessTypeID))
	if err != nil {
		return RegisterBusinessResult{}, domain.ValidationError{Field: "business_type_id", Msg: "invalid id", Err: err}
	}

	if _, err := s.masterTypes().FindByID(typeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RegisterBusinessResult{}, domain.NotFoundError{Resource: "business type", Err: err}
		}
		return RegisterBusinessResult{}, domain.InternalError{Err: err}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return RegisterBusinessResult{}, domain.InternalError{Err: err}
	}

	var result RegisterBusinessResult
	err = intdb.WithinTx(s.db(), func(tx *sql.Tx) error {
		taken, err := s.users().ExistsByEmailOrUsername(tx, in.UserEmail, in.UserUsername)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		if taken {
			return domain.ConflictError{Resource: "user", Msg: "email or username already registered"}
		}

		user, err := s.users().Create(tx, models.User{
			Name:     in.UserName,
			Email:    in.UserEmail,
			Username: in.UserUsername,
			Password: string(hash),
			Role:     models.RoleMerchant,
		})
		if err != nil {
			return domain.InternalError{Err: err}
		}

		code, err := sequence.NextCode(tx, businessCodePrefix, businessCodePadding, "Business registration code series")
		if err != nil {
			return domain.InternalError{Err: err}
		}

		createdBy := user.ID.String()
		business, err := s.businesses().Create(tx, models.Business{
			BusinessCode:   code,
			BusinessName:   in.BusinessName,
			ShopName:       in.ShopName,
			NameOwner:      in.NameOwner,
			Phone:          in.Phone,
			Email:          in.Email,
			Address:        in.Address,
			UserID:         user.ID,
			BusinessTypeID: typeID,
			Status:         models.BusinessStatusTrial,
			Audit:          models.Audit{CreatedBy: &createdBy},
		})
		if err != nil {
			return domain.InternalError{Err: err}
		}

		result = RegisterBusinessResult{Business: business, User: user}
		return nil
	})
	if err != nil {
		return RegisterBusinessResult{}, err
	}

	utils.LogEvent(requestID, "business", "register", "registered "+result.Business.BusinessCode)
	return result, nil
}

// List returns businesses through the dynamic query with joined owner
// and type rows.
func (s BusinessService) List(p domain.ListParams) ([]models.Business, int, error) {
	items, total, err := s.businesses().List(p)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return items, total, nil
}

// ListMine returns all businesses owned by the caller.
func (s BusinessService) ListMine(rc domain.RequestContext) ([]models.Business, error) {
	userID, err := uuid.Parse(rc.UserID)
	if err != nil {
		return nil, domain.UnauthorizedError{Msg: "invalid token subject", Err: err}
	}
	items, err := s.businesses().FindAllByUser(userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return items, nil
}

// Get loads one business the caller may see: admins see any, everyone
// else only their own.
func (s BusinessService) Get(rc domain.RequestContext, id string) (models.Business, error) {
	bid, err := uuid.Parse(id)
	if err != nil {
		return models.Business{}, domain.ValidationError{Field: "id", Msg: "invalid id", Err: err}
	}

	var b models.Business
	if rc.Role == models.RoleAdmin {
		b, err = s.businesses().FindByID(bid)
	} else {
		var userID uuid.UUID
		userID, err = uuid.Parse(rc.UserID)
		if err != nil {
			return models.Business{}, domain.UnauthorizedError{Msg: "invalid token subject", Err: err}
		}
		b, err = s.businesses().FindByIDAndUser(bid, userID)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return models.Business{}, domain.NotFoundError{Resource: "business", Err: err}
	}
	if err != nil {
		return models.Business{}, domain.InternalError{Err: err}
	}
	return b, nil
}

// Update rewrites the mutable business fields. The business code never
// changes.
func (s BusinessService) Update(rc domain.RequestContext, id string, in UpdateBusinessInput) (models.Business, error) {
	b, err := s.Get(rc, id)
	if err != nil {
		return models.Business{}, err
	}

	if name := strings.TrimSpace(in.BusinessName); name != "" {
		b.BusinessName = name
	}
	if shop := strings.TrimSpace(in.ShopName); shop != "" {
		b.ShopName = shop
	}
	if owner := strings.TrimSpace(in.NameOwner); owner != "" {
		b.NameOwner = owner
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		b.Phone = phone
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		if !strings.Contains(email, "@") {
			return models.Business{}, domain.ValidationError{Field: "email", Msg: "valid email is required"}
		}
		b.Email = email
	}
	if in.Address != nil {
		b.Address = in.Address
	}
	if raw := strings.TrimSpace(in.BusinessTypeID); raw != "" {
		typeID, err := uuid.Parse(raw)
		if err != nil {
			return models.Business{}, domain.ValidationError{Field: "business_type_id", Msg: "invalid id", Err: err}
		}
		if _, err := s.masterTypes().FindByID(typeID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.Business{}, domain.NotFoundError{Resource: "business type", Err: err}
			}
			return models.Business{}, domain.InternalError{Err: err}
		}
		b.BusinessTypeID = typeID
	}
	if status := strings.TrimSpace(in.Status); status != "" {
		switch status {
		case models.BusinessStatusTrial, models.BusinessStatusActive, models.BusinessStatusSuspended:
			// Only admins flip status.
			if rc.Role != models.RoleAdmin {
				return models.Business{}, domain.UnauthorizedError{Msg: "only admins may change status"}
			}
			b.Status = status
		default:
			return models.Business{}, domain.ValidationError{Field: "status", Msg: "unknown status"}
		}
	}

	updatedBy := rc.UserID
	b.UpdatedBy = &updatedBy
	if err := s.businesses().Update(b); err != nil {
		return models.Business{}, domain.InternalError{Err: err}
	}
	return s.Get(rc, id)
}

// Delete soft-deletes a business the caller owns (or any, for admins).
func (s BusinessService) Delete(rc domain.RequestContext, id string) error {
	b, err := s.Get(rc, id)
	if err != nil {
		return err
	}
	if err := s.businesses().SoftDelete(b.ID, rc.UserID); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
