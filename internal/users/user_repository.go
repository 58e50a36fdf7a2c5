package users

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/wongivan852/asset-movement-tracking-system/internal/repository"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/roles"
)

type CreateUserRequest struct {
	Username string     `json:"username" binding:"required"`
	Fullname string     `json:"fullname" binding:"required"`
	Password string     `json:"password" binding:"required,min=8"`
	Role     roles.Role `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Fullname *string     `json:"fullname"`
	Password *string     `json:"password"`
	Role     *roles.Role `json:"role"`
	Active   *bool       `json:"active"`
}

type UserChanges struct {
	Fullname     *string
	PasswordHash *string
	Role         *string
	Active       *bool
}

func (c *UserChanges) HasChanges() bool {
	return c.Fullname != nil || c.PasswordHash != nil || c.Role != nil || c.Active != nil
}

type UserRepository interface {
	PersistUser(req CreateUserRequest, hashedPassword []byte) (int, error)
	UpdateUser(id int, changes *UserChanges) error
	GetUser(id int) (*models.User, error)
	GetUsers() ([]models.User, error)
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}

func (r *userRepositoryImpl) PersistUser(req CreateUserRequest, hashedPassword []byte) (int, error) {
	query := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"username":      req.Username,
			"fullname":      req.Fullname,
			"password_hash": string(hashedPassword),
			"role":          req.Role,
			"is_superuser":  false,
			"active":        true,
		}).
		Returning("id")

	var userID int
	if _, err := query.Executor().ScanVal(&userID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, apperrors.WrapDBError(fmt.Sprintf("username %s", req.Username), string(pqErr.Code))
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	return userID, nil
}

func (r *userRepositoryImpl) UpdateUser(id int, changes *UserChanges) error {
	record := goqu.Record{}
	if changes.Fullname != nil {
		record["fullname"] = *changes.Fullname
	}
	if changes.PasswordHash != nil {
		record["password_hash"] = *changes.PasswordHash
	}
	if changes.Role != nil {
		record["role"] = *changes.Role
	}
	if changes.Active != nil {
		record["active"] = *changes.Active
	}

	query := r.repository.GoquDBWrapper.Update("users").
		Set(record).
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &apperrors.NotFoundError{Resource: "user", ID: id}
	}

	return nil
}

func (r *userRepositoryImpl) GetUser(id int) (*models.User, error) {
	var user models.User

	query := r.repository.GoquDBWrapper.
		Select("id", "username", "fullname", "role", "is_superuser", "active").
		From("users").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, &apperrors.NotFoundError{Resource: "user", ID: id}
	}

	return &user, nil
}

func (r *userRepositoryImpl) GetUsers() ([]models.User, error) {
	var users []models.User

	query := r.repository.GoquDBWrapper.
		Select("id", "username", "fullname", "role", "is_superuser", "active").
		From("users").
		Order(goqu.I("username").Asc())

	if err := query.Executor().ScanStructs(&users); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return users, nil
}
