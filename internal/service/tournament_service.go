package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/scrimhub/scrimhub/internal/httputil"
	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/store"
)

type TournamentService struct {
	tournaments *store.TournamentStore
	clans       *store.ClanStore
	users       *store.UserStore
}

func NewTournamentService(tournaments *store.TournamentStore, clans *store.ClanStore, users *store.UserStore) *TournamentService {
	return &TournamentService{tournaments: tournaments, clans: clans, users: users}
}

func (s *TournamentService) GetTournament(ctx context.Context, scrimID string) (*model.Tournament, error) {
	t, err := s.tournaments.GetTournament(ctx, scrimID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: tournament %s", httputil.ErrNotFound, scrimID)
	}
	return t, err
}

func (s *TournamentService) ListTournaments(ctx context.Context) ([]model.Tournament, error) {
	return s.tournaments.ListTournaments(ctx)
}

// CreateTournament stores a new tournament under a generated scrimId.
func (s *TournamentService) CreateTournament(ctx context.Context, t model.Tournament) (*model.Tournament, error) {
	if t.Name == "" || t.Game == "" {
		return nil, fmt.Errorf("%w: name and game are required", httputil.ErrBadRequest)
	}
	t.ScrimID = uuid.NewString()
	if t.Status == "" {
		t.Status = "upcoming"
	}
	if err := s.tournaments.CreateTournament(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TournamentService) UpdateTournament(ctx context.Context, scrimID string, fields map[string]string) error {
	err := s.tournaments.UpdateTournament(ctx, scrimID, fields)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: tournament %s", httputil.ErrNotFound, scrimID)
	}
	return err
}

func (s *TournamentService) DeleteTournament(ctx context.Context, scrimID string) error {
	err := s.tournaments.DeleteTournament(ctx, scrimID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: tournament %s", httputil.ErrNotFound, scrimID)
	}
	return err
}

// Register signs the caller's clan up for a tournament. Exactly one
// registration per clan per scrim; a second attempt is rejected.
func (s *TournamentService) Register(ctx context.Context, userID, scrimID string) (*model.Registration, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ClanID == "" {
		return nil, fmt.Errorf("%w: user has no clan", httputil.ErrBadRequest)
	}

	if _, err := s.GetTournament(ctx, scrimID); err != nil {
		return nil, err
	}

	clan, err := s.clans.GetClan(ctx, user.ClanID)
	if err != nil {
		return nil, err
	}

	exists, err := s.tournaments.HasRegistration(ctx, scrimID, clan.ClanID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: clan already registered for this tournament", httputil.ErrBadRequest)
	}

	reg := &model.Registration{
		RegistrationID: uuid.NewString(),
		ScrimID:        scrimID,
		ClanID:         clan.ClanID,
		ClanName:       clan.ClanName,
		ClanTag:        clan.ClanTag,
		ClanLogo:       clan.ClanLogo,
		Roster:         clan.Roster,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.tournaments.CreateRegistration(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *TournamentService) ListRegistrations(ctx context.Context) ([]model.Registration, error) {
	return s.tournaments.ListRegistrations(ctx)
}

// Leaderboard returns entries ranked by total points descending, ties broken
// by ascending average rank.
func (s *TournamentService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	entries, err := s.tournaments.ListLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].AvgRank < entries[j].AvgRank
	})
	return entries, nil
}

func (s *TournamentService) UpdateLeaderboard(ctx context.Context, clanID string, fields map[string]string) error {
	if clanID == "" {
		return fmt.Errorf("%w: clanId is required", httputil.ErrBadRequest)
	}
	return s.tournaments.UpsertLeaderboardEntry(ctx, clanID, fields)
}
