package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/scrimhub/scrimhub/internal/httputil"
	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/store"
	"github.com/scrimhub/scrimhub/internal/token"
)

func (s *Server) addTournament(r *http.Request, _ *token.Claims) (any, error) {
	var input model.Tournament
	if err := decodeBody(r, &input); err != nil {
		return nil, err
	}
	t, err := s.tournaments.CreateTournament(r.Context(), input)
	if err != nil {
		return nil, err
	}

	// Bot announcement is a secondary side effect; a failure here must not
	// fail the stored tournament.
	if s.notifier != nil {
		if err := s.notifier.TournamentCreated(r.Context(), t); err != nil {
			slog.Warn("tournament webhook notification failed", "scrimId", t.ScrimID, "error", err)
		}
	}
	return t, nil
}

func (s *Server) updateTournament(r *http.Request, _ *token.Claims) (any, error) {
	var payload map[string]any
	if err := decodeBody(r, &payload); err != nil {
		return nil, err
	}
	scrimID, _ := payload["scrimId"].(string)
	if scrimID == "" {
		return nil, fmt.Errorf("%w: scrimId is required", httputil.ErrBadRequest)
	}
	fields := fieldsFromPayload(payload,
		"name", "game", "status", "slots", "prizePool", "banner",
		"startDate", "endDate", "rules", "pointTable")
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields in payload", httputil.ErrBadRequest)
	}
	if err := s.tournaments.UpdateTournament(r.Context(), scrimID, fields); err != nil {
		return nil, err
	}
	return s.tournaments.GetTournament(r.Context(), scrimID)
}

func (s *Server) deleteTournament(r *http.Request, _ *token.Claims) (any, error) {
	var payload struct {
		ScrimID string `json:"scrimId"`
	}
	if err := decodeBody(r, &payload); err != nil {
		return nil, err
	}
	if payload.ScrimID == "" {
		return nil, fmt.Errorf("%w: scrimId is required", httputil.ErrBadRequest)
	}
	if err := s.tournaments.DeleteTournament(r.Context(), payload.ScrimID); err != nil {
		return nil, err
	}
	return map[string]bool{"deleted": true}, nil
}

func (s *Server) getUsers(r *http.Request, _ *token.Claims) (any, error) {
	return s.users.ListUsers(r.Context())
}

func (s *Server) updateUserRole(r *http.Request, _ *token.Claims) (any, error) {
	var payload struct {
		UserID   string `json:"userId"`
		SiteRole string `json:"siteRole"`
	}
	if err := decodeBody(r, &payload); err != nil {
		return nil, err
	}
	if payload.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", httputil.ErrBadRequest)
	}
	if err := s.users.UpdateSiteRole(r.Context(), payload.UserID, model.SiteRole(payload.SiteRole)); err != nil {
		return nil, err
	}
	return s.users.GetUser(r.Context(), payload.UserID)
}

func (s *Server) getClanRequests(r *http.Request, _ *token.Claims) (any, error) {
	return s.clans.ListRequests(r.Context())
}

func (s *Server) processClanRequest(r *http.Request, _ *token.Claims) (any, error) {
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
	return s.clans.ProcessRequest(r.Context(), payload.RequestID, approve)
}

func (s *Server) getRegistrations(r *http.Request, _ *token.Claims) (any, error) {
	return s.tournaments.ListRegistrations(r.Context())
}

func (s *Server) getMessages(r *http.Request, _ *token.Claims) (any, error) {
	return s.messages.ListMessages(r.Context())
}

func (s *Server) addPartner(r *http.Request, _ *token.Claims) (any, error) {
	var input model.Partner
	if err := decodeBody(r, &input); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", httputil.ErrBadRequest)
	}
	input.PartnerID = uuid.NewString()
	if err := s.partners.CreatePartner(r.Context(), &input); err != nil {
		return nil, err
	}
	return input, nil
}

func (s *Server) updatePartner(r *http.Request, _ *token.Claims) (any, error) {
	var payload map[string]any
	if err := decodeBody(r, &payload); err != nil {
		return nil, err
	}
	partnerID, _ := payload["partnerId"].(string)
	if partnerID == "" {
		return nil, fmt.Errorf("%w: partnerId is required", httputil.ErrBadRequest)
	}
	fields := fieldsFromPayload(payload, "name", "logo", "link", "description")
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields in payload", httputil.ErrBadRequest)
	}
	if err := s.partners.UpdatePartner(r.Context(), partnerID, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: partner %s", httputil.ErrNotFound, partnerID)
		}
		return nil, err
	}
	return map[string]bool{"updated": true}, nil
}

func (s *Server) deletePartner(r *http.Request, _ *token.Claims) (any, error) {
	var payload struct {
		PartnerID string `json:"partnerId"`
	}
	if err := decodeBody(r, &payload); err != nil {
		return nil, err
	}
	if payload.PartnerID == "" {
		return nil, fmt.Errorf("%w: partnerId is required", httputil.ErrBadRequest)
	}
	if err := s.partners.DeletePartner(r.Context(), payload.PartnerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: partner %s", httputil.ErrNotFound, payload.PartnerID)
		}
		return nil, err
	}
	return map[string]bool{"deleted": true}, nil
}

func (s *Server) updateLeaderboard(r *http.Request, _ *token.Claims) (any, error) {
	var payload map[string]any
	if err := decodeBody(r, &payload); err != nil {
		return nil, err
	}
	clanID, _ := payload["clanId"].(string)
	fields := fieldsFromPayload(payload,
		"clanName", "clanTag", "clanLogo", "totalPoints", "avgRank")
	if err := s.tournaments.UpdateLeaderboard(r.Context(), clanID, fields); err != nil {
		return nil, err
	}
	return map[string]bool{"updated": true}, nil
}
