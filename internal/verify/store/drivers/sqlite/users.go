package sqlite

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/store"
	"github.com/aussiebroadwan/hireproof/internal/verify/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	status := u.Status
	if status == "" {
		status = domain.UserActive
	}
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Status:       string(status),
		CreatedAt:    toUnix(u.CreatedAt),
	})
	return mapUniqueViolation(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CountUsersByRole(ctx context.Context, role domain.Role) (int, error) {
	n, err := r.q.CountUsersByRole(ctx, string(role))
	return int(n), err
}

func (r *usersRepo) UpdateUserStatus(ctx context.Context, id string, status domain.UserStatus, now time.Time) (domain.User, error) {
	row, err := r.q.UpdateUserStatus(ctx, gen.UpdateUserStatusParams{
		Status:    string(status),
		UpdatedAt: toUnix(now),
		ID:        id,
	})
	if err == nil {
		return mapUser(row), nil
	}
	if !errors.Is(mapNotFound(err), store.ErrNotFound) {
		return domain.User{}, err
	}

	// No row matched: either the user is missing or already has status.
	if _, getErr := r.q.GetUserByID(ctx, id); getErr != nil {
		return domain.User{}, mapNotFound(getErr)
	}
	return domain.User{}, store.ErrConflict
}
