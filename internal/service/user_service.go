package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/markbates/goth"

	"github.com/scrimhub/scrimhub/internal/httputil"
	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/store"
)

type UserService struct {
	users *store.UserStore
}

func NewUserService(users *store.UserStore) *UserService {
	return &UserService{users: users}
}

// FindOrCreateFromOAuth looks the user up by provider identity, creating the
// row on first login and refreshing username/avatar on later ones.
func (s *UserService) FindOrCreateFromOAuth(ctx context.Context, gothUser goth.User) (*model.User, error) {
	user, err := s.users.GetUser(ctx, gothUser.UserID)
	if err == nil {
		if user.Username != gothUser.Name || user.Avatar != gothUser.AvatarURL {
			user.Username = gothUser.Name
			user.Avatar = gothUser.AvatarURL
			if err := s.users.UpdateUser(ctx, user.UserID, map[string]string{
				"username": user.Username,
				"avatar":   user.Avatar,
			}); err != nil {
				return nil, err
			}
		}
		return user, nil
	}

	if errors.Is(err, store.ErrNotFound) {
		newUser := &model.User{
			UserID:   gothUser.UserID,
			Username: gothUser.Name,
			Avatar:   gothUser.AvatarURL,
		}
		if err := s.users.CreateUser(ctx, newUser); err != nil {
			return nil, err
		}
		return newUser, nil
	}

	return nil, err
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %s", httputil.ErrNotFound, userID)
	}
	return user, err
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.ListUsers(ctx)
}

// UpdateSiteRole grants or revokes the admin site role.
func (s *UserService) UpdateSiteRole(ctx context.Context, userID string, role model.SiteRole) error {
	if role != model.SiteRoleNone && role != model.SiteRoleAdmin {
		return fmt.Errorf("%w: unknown site role %q", httputil.ErrBadRequest, role)
	}
	err := s.users.UpdateUser(ctx, userID, map[string]string{"siteRole": string(role)})
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: user %s", httputil.ErrNotFound, userID)
	}
	return err
}
