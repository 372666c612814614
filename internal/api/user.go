package api

import (
	"fmt"
	"net/http"

	"github.com/scrimhub/scrimhub/internal/auth"
	"github.com/scrimhub/scrimhub/internal/httputil"
	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/service"
	"github.com/scrimhub/scrimhub/internal/token"
)

func (s *Server) getUser(r *http.Request, claims *token.Claims) (any, error) {
	return s.users.GetUser(r.Context(), claims.UserID)
}

type userProfile struct {
	User     *model.User         `json:"user"`
	Clan     *model.Clan         `json:"clan,omitempty"`
	Requests []model.ClanRequest `json:"requests"`
}

func (s *Server) getUserProfile(r *http.Request, claims *token.Claims) (any, error) {
	user, err := s.users.GetUser(r.Context(), claims.UserID)
	if err != nil {
		return nil, err
	}

	profile := userProfile{User: user, Requests: []model.ClanRequest{}}
	if user.ClanID != "" {
		clan, err := s.clans.GetClan(r.Context(), user.ClanID)
		if err != nil {
			return nil, err
		}
		profile.Clan = clan
	}

	requests, err := s.clans.ListRequests(r.Context())
	if err != nil {
		return nil, err
	}
	for _, req := range requests {
		if req.UserID == user.UserID {
			profile.Requests = append(profile.Requests, req)
		}
	}
	return profile, nil
}

func (s *Server) createClan(r *http.Request, claims *token.Claims) (any, error) {
	var input service.CreateClanInput
	if err := decodeBody(r, &input); err != nil {
		return nil, err
	}
	return s.clans.CreateClan(r.Context(), claims.UserID, input)
}

func (s *Server) createClanRequest(r *http.Request, claims *token.Claims) (any, error) {
	var payload struct {
		ClanID string `json:"clanId"`
	}
	if err := decodeBody(r, &payload); err != nil {
		return nil, err
	}
	if payload.ClanID == "" {
		return nil, fmt.Errorf("%w: clanId is required", httputil.ErrBadRequest)
	}
	return s.clans.CreateJoinRequest(r.Context(), claims.UserID, payload.ClanID)
}

func (s *Server) registerForTournament(r *http.Request, claims *token.Claims) (any, error) {
	var payload struct {
		ScrimID string `json:"scrimId"`
	}
	if err := decodeBody(r, &payload); err != nil {
		return nil, err
	}
	if payload.ScrimID == "" {
		return nil, fmt.Errorf("%w: scrimId is required", httputil.ErrBadRequest)
	}
	return s.tournaments.Register(r.Context(), claims.UserID, payload.ScrimID)
}

type requestDecision struct {
	RequestID string `json:"requestId"`
	Decision  string `json:"decision"`
}

func (d requestDecision) approve() (bool, error) {
	switch d.Decision {
	case "approve":
		return true, nil
	case "deny":
		return false, nil
	default:
		return false, fmt.Errorf("%w: decision must be approve or deny", httputil.ErrBadRequest)
	}
}

// manageClanRequest lets a clan leader decide requests targeting their own
// clan; requests for any other clan are forbidden.
func (s *Server) manageClanRequest(r *http.Request, claims *token.Claims) (any, error) {
	var payload requestDecision
	if err := decodeBody(r, &payload); err != nil {
		return nil, err
	}
	if payload.RequestID == "" {
		return nil, fmt.Errorf("%w: requestId is required", httputil.ErrBadRequest)
	}
	approve, err := payload.approve()
	if err != nil {
		return nil, err
	}

	req, err := s.clans.GetRequest(r.Context(), payload.RequestID)
	if err != nil {
		return nil, err
	}
	if err := auth.OwnsClan(claims, req.ClanID); err != nil {
		return nil, err
	}
	return s.clans.ProcessRequest(r.Context(), payload.RequestID, approve)
}
