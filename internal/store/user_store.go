package store

import (
	"context"

	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/rowstore"
)

type UserStore struct {
	db rowstore.Store
}

func NewUserStore(db rowstore.Store) *UserStore {
	return &UserStore{db: db}
}

func userFromRow(r rowstore.Row) *model.User {
	return &model.User{
		UserID:   r.Get("userId"),
		Username: r.Get("username"),
		Avatar:   r.Get("avatar"),
		ClanID:   r.Get("clanId"),
		ClanRole: model.ClanRole(r.Get("clanRole")),
		SiteRole: model.SiteRole(r.Get("siteRole")),
	}
}

func userFields(u *model.User) map[string]string {
	return map[string]string{
		"userId":   u.UserID,
		"username": u.Username,
		"avatar":   u.Avatar,
		"clanId":   u.ClanID,
		"clanRole": string(u.ClanRole),
		"siteRole": string(u.SiteRole),
	}
}

func (s *UserStore) GetUser(ctx context.Context, userID string) (*model.User, error) {
	rows, err := s.db.Scan(ctx, TableUsers)
	if err != nil {
		return nil, err
	}
	row := findByKey(rows, "userId", userID)
	if row == nil {
		return nil, ErrNotFound
	}
	return userFromRow(row), nil
}

func (s *UserStore) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.Scan(ctx, TableUsers)
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, *userFromRow(r))
	}
	return users, nil
}

func (s *UserStore) CreateUser(ctx context.Context, u *model.User) error {
	return s.db.Append(ctx, TableUsers, userFields(u))
}

// UpdateUser overwrites only the supplied columns of the user's row.
func (s *UserStore) UpdateUser(ctx context.Context, userID string, fields map[string]string) error {
	rows, err := s.db.Scan(ctx, TableUsers)
	if err != nil {
		return err
	}
	row := findByKey(rows, "userId", userID)
	if row == nil {
		return ErrNotFound
	}
	for k, v := range fields {
		row.Set(k, v)
	}
	return row.Save(ctx)
}
