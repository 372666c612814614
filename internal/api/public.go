package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/scrimhub/scrimhub/internal/httputil"
	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/token"
)

func (s *Server) getTournaments(r *http.Request, _ *token.Claims) (any, error) {
	return s.tournaments.ListTournaments(r.Context())
}

type tournamentDetail struct {
	Tournament    *model.Tournament    `json:"tournament"`
	Registrations []model.Registration `json:"registrations"`
}

func (s *Server) getTournamentDetail(r *http.Request, _ *token.Claims) (any, error) {
	scrimID := r.URL.Query().Get("scrimId")
	if scrimID == "" {
		return nil, fmt.Errorf("%w: scrimId is required", httputil.ErrBadRequest)
	}
	t, err := s.tournaments.GetTournament(r.Context(), scrimID)
	if err != nil {
		return nil, err
	}

	all, err := s.tournaments.ListRegistrations(r.Context())
	if err != nil {
		return nil, err
	}
	regs := make([]model.Registration, 0)
	for _, reg := range all {
		if reg.ScrimID == scrimID {
			regs = append(regs, reg)
		}
	}
	return tournamentDetail{Tournament: t, Registrations: regs}, nil
}

func (s *Server) getClans(r *http.Request, _ *token.Claims) (any, error) {
	return s.clans.ListClans(r.Context())
}

type clanDetail struct {
	Clan    *model.Clan `json:"clan"`
	Members []string    `json:"members"`
}

func (s *Server) getClanDetail(r *http.Request, _ *token.Claims) (any, error) {
	clanID := r.URL.Query().Get("clanId")
	if clanID == "" {
		return nil, fmt.Errorf("%w: clanId is required", httputil.ErrBadRequest)
	}
	clan, err := s.clans.GetClan(r.Context(), clanID)
	if err != nil {
		return nil, err
	}
	return clanDetail{Clan: clan, Members: clan.RosterMembers()}, nil
}

func (s *Server) getLeaderboard(r *http.Request, _ *token.Claims) (any, error) {
	return s.tournaments.Leaderboard(r.Context())
}

func (s *Server) getPartners(r *http.Request, _ *token.Claims) (any, error) {
	return s.partners.ListPartners(r.Context())
}

func (s *Server) submitMessage(r *http.Request, _ *token.Claims) (any, error) {
	var payload struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := decodeBody(r, &payload); err != nil {
		return nil, err
	}
	if payload.Name == "" || payload.Email == "" || payload.Body == "" {
		return nil, fmt.Errorf("%w: name, email and body are required", httputil.ErrBadRequest)
	}

	msg := &model.Message{
		MessageID: uuid.NewString(),
		Name:      payload.Name,
		Email:     payload.Email,
		Subject:   payload.Subject,
		Body:      payload.Body,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.messages.CreateMessage(r.Context(), msg); err != nil {
		return nil, err
	}

	// Mail relay is a secondary side effect; its failure never fails the
	// stored submission.
	if s.mailer != nil {
		if err := s.mailer.Send(r.Context(), msg); err != nil {
			slog.Warn("contact mail relay failed", "messageId", msg.MessageID, "error", err)
		}
	}
	return msg, nil
}
