package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/scrimhub/scrimhub/internal/httputil"
	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/store"
)

type ClanService struct {
	clans *store.ClanStore
	users *store.UserStore
}

func NewClanService(clans *store.ClanStore, users *store.UserStore) *ClanService {
	return &ClanService{clans: clans, users: users}
}

type CreateClanInput struct {
	ClanName string `json:"clanName"`
	ClanTag  string `json:"clanTag"`
	ClanLogo string `json:"clanLogo"`
}

// CreateClan makes the caller captain and leader of a new clan. It is
// rejected when the caller already belongs to one, regardless of payload.
func (s *ClanService) CreateClan(ctx context.Context, userID string, input CreateClanInput) (*model.Clan, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ClanID != "" {
		return nil, fmt.Errorf("%w: user already belongs to a clan", httputil.ErrBadRequest)
	}
	if input.ClanName == "" || input.ClanTag == "" {
		return nil, fmt.Errorf("%w: clanName and clanTag are required", httputil.ErrBadRequest)
	}

	clan := &model.Clan{
		ClanID:      uuid.NewString(),
		ClanName:    input.ClanName,
		ClanTag:     input.ClanTag,
		ClanLogo:    input.ClanLogo,
		CaptainID:   user.UserID,
		CaptainName: user.Username,
		Roster:      user.Username,
	}
	if err := s.clans.CreateClan(ctx, clan); err != nil {
		return nil, err
	}

	if err := s.users.UpdateUser(ctx, user.UserID, map[string]string{
		"clanId":   clan.ClanID,
		"clanRole": string(model.ClanRoleLeader),
	}); err != nil {
		return nil, err
	}
	return clan, nil
}

// CreateJoinRequest files a pending request to join a clan. A user with a
// clan, or with another pending request, is rejected.
func (s *ClanService) CreateJoinRequest(ctx context.Context, userID, clanID string) (*model.ClanRequest, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ClanID != "" {
		return nil, fmt.Errorf("%w: user already belongs to a clan", httputil.ErrBadRequest)
	}

	clan, err := s.clans.GetClan(ctx, clanID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: clan %s", httputil.ErrNotFound, clanID)
	}
	if err != nil {
		return nil, err
	}

	requests, err := s.clans.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range requests {
		if r.UserID == userID && r.Status == model.RequestPending {
			return nil, fmt.Errorf("%w: a pending join request already exists", httputil.ErrBadRequest)
		}
	}

	req := &model.ClanRequest{
		RequestID: uuid.NewString(),
		ClanID:    clan.ClanID,
		ClanName:  clan.ClanName,
		UserID:    user.UserID,
		Username:  user.Username,
		Status:    model.RequestPending,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.clans.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *ClanService) GetRequest(ctx context.Context, requestID string) (*model.ClanRequest, error) {
	req, err := s.clans.GetRequest(ctx, requestID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: request %s", httputil.ErrNotFound, requestID)
	}
	return req, err
}

func (s *ClanService) ListRequests(ctx context.Context) ([]model.ClanRequest, error) {
	return s.clans.ListRequests(ctx)
}

// ProcessRequest moves a pending request to approved or denied. The
// transition is terminal; reprocessing is rejected. Approval puts the user in
// the clan as a member and appends their display name to the roster if it is
// not already there.
func (s *ClanService) ProcessRequest(ctx context.Context, requestID string, approve bool) (*model.ClanRequest, error) {
	req, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != model.RequestPending {
		return nil, fmt.Errorf("%w: request already %s", httputil.ErrBadRequest, req.Status)
	}

	status := model.RequestDenied
	if approve {
		status = model.RequestApproved
	}
	if err := s.clans.UpdateRequestStatus(ctx, requestID, status); err != nil {
		return nil, err
	}
	req.Status = status

	if !approve {
		return req, nil
	}

	if err := s.users.UpdateUser(ctx, req.UserID, map[string]string{
		"clanId":   req.ClanID,
		"clanRole": string(model.ClanRoleMember),
	}); err != nil {
		return nil, err
	}

	clan, err := s.clans.GetClan(ctx, req.ClanID)
	if err != nil {
		return nil, err
	}
	if clan.AddMember(req.Username) {
		if err := s.clans.UpdateClan(ctx, clan.ClanID, map[string]string{"roster": clan.Roster}); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func (s *ClanService) GetClan(ctx context.Context, clanID string) (*model.Clan, error) {
	clan, err := s.clans.GetClan(ctx, clanID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: clan %s", httputil.ErrNotFound, clanID)
	}
	return clan, err
}

func (s *ClanService) ListClans(ctx context.Context) ([]model.Clan, error) {
	return s.clans.ListClans(ctx)
}
