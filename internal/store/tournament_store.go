package store

import (
	"context"
	"strconv"

	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/rowstore"
)

// TournamentStore covers tournaments, their registrations and the leaderboard.
type TournamentStore struct {
	db rowstore.Store
}

func NewTournamentStore(db rowstore.Store) *TournamentStore {
	return &TournamentStore{db: db}
}

func tournamentFromRow(r rowstore.Row) *model.Tournament {
	return &model.Tournament{
		ScrimID:    r.Get("scrimId"),
		Name:       r.Get("name"),
		Game:       r.Get("game"),
		Status:     r.Get("status"),
		Slots:      atoi(r.Get("slots")),
		PrizePool:  r.Get("prizePool"),
		Banner:     r.Get("banner"),
		StartDate:  r.Get("startDate"),
		EndDate:    r.Get("endDate"),
		Rules:      r.Get("rules"),
		PointTable: r.Get("pointTable"),
	}
}

func tournamentFields(t *model.Tournament) map[string]string {
	return map[string]string{
		"scrimId":    t.ScrimID,
		"name":       t.Name,
		"game":       t.Game,
		"status":     t.Status,
		"slots":      strconv.Itoa(t.Slots),
		"prizePool":  t.PrizePool,
		"banner":     t.Banner,
		"startDate":  t.StartDate,
		"endDate":    t.EndDate,
		"rules":      t.Rules,
		"pointTable": t.PointTable,
	}
}

func registrationFromRow(r rowstore.Row) *model.Registration {
	return &model.Registration{
		RegistrationID: r.Get("registrationId"),
		ScrimID:        r.Get("scrimId"),
		ClanID:         r.Get("clanId"),
		ClanName:       r.Get("clanName"),
		ClanTag:        r.Get("clanTag"),
		ClanLogo:       r.Get("clanLogo"),
		Roster:         r.Get("roster"),
		Timestamp:      r.Get("timestamp"),
	}
}

func registrationFields(reg *model.Registration) map[string]string {
	return map[string]string{
		"registrationId": reg.RegistrationID,
		"scrimId":        reg.ScrimID,
		"clanId":         reg.ClanID,
		"clanName":       reg.ClanName,
		"clanTag":        reg.ClanTag,
		"clanLogo":       reg.ClanLogo,
		"roster":         reg.Roster,
		"timestamp":      reg.Timestamp,
	}
}

func leaderboardEntryFromRow(r rowstore.Row) *model.LeaderboardEntry {
	return &model.LeaderboardEntry{
		ClanID:      r.Get("clanId"),
		ClanName:    r.Get("clanName"),
		ClanTag:     r.Get("clanTag"),
		ClanLogo:    r.Get("clanLogo"),
		TotalPoints: atoi(r.Get("totalPoints")),
		AvgRank:     atof(r.Get("avgRank")),
	}
}

func (s *TournamentStore) GetTournament(ctx context.Context, scrimID string) (*model.Tournament, error) {
	rows, err := s.db.Scan(ctx, TableTournaments)
	if err != nil {
		return nil, err
	}
	row := findByKey(rows, "scrimId", scrimID)
	if row == nil {
		return nil, ErrNotFound
	}
	return tournamentFromRow(row), nil
}

func (s *TournamentStore) ListTournaments(ctx context.Context) ([]model.Tournament, error) {
	rows, err := s.db.Scan(ctx, TableTournaments)
	if err != nil {
		return nil, err
	}
	tournaments := make([]model.Tournament, 0, len(rows))
	for _, r := range rows {
		tournaments = append(tournaments, *tournamentFromRow(r))
	}
	return tournaments, nil
}

func (s *TournamentStore) CreateTournament(ctx context.Context, t *model.Tournament) error {
	return s.db.Append(ctx, TableTournaments, tournamentFields(t))
}

func (s *TournamentStore) UpdateTournament(ctx context.Context, scrimID string, fields map[string]string) error {
	rows, err := s.db.Scan(ctx, TableTournaments)
	if err != nil {
		return err
	}
	row := findByKey(rows, "scrimId", scrimID)
	if row == nil {
		return ErrNotFound
	}
	for k, v := range fields {
		row.Set(k, v)
	}
	return row.Save(ctx)
}

func (s *TournamentStore) DeleteTournament(ctx context.Context, scrimID string) error {
	rows, err := s.db.Scan(ctx, TableTournaments)
	if err != nil {
		return err
	}
	row := findByKey(rows, "scrimId", scrimID)
	if row == nil {
		return ErrNotFound
	}
	return row.Delete(ctx)
}

func (s *TournamentStore) ListRegistrations(ctx context.Context) ([]model.Registration, error) {
	rows, err := s.db.Scan(ctx, TableRegistrations)
	if err != nil {
		return nil, err
	}
	regs := make([]model.Registration, 0, len(rows))
	for _, r := range rows {
		regs = append(regs, *registrationFromRow(r))
	}
	return regs, nil
}

// HasRegistration reports whether the clan already registered for the scrim.
func (s *TournamentStore) HasRegistration(ctx context.Context, scrimID, clanID string) (bool, error) {
	rows, err := s.db.Scan(ctx, TableRegistrations)
	if err != nil {
		return false, err
	}
	for _, r := range rows {
		if r.Get("scrimId") == scrimID && r.Get("clanId") == clanID {
			return true, nil
		}
	}
	return false, nil
}

func (s *TournamentStore) CreateRegistration(ctx context.Context, reg *model.Registration) error {
	return s.db.Append(ctx, TableRegistrations, registrationFields(reg))
}

func (s *TournamentStore) ListLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	rows, err := s.db.Scan(ctx, TableLeaderboard)
	if err != nil {
		return nil, err
	}
	entries := make([]model.LeaderboardEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, *leaderboardEntryFromRow(r))
	}
	return entries, nil
}

// UpsertLeaderboardEntry partially updates the clan's leaderboard row,
// appending a new row when the clan has none yet.
func (s *TournamentStore) UpsertLeaderboardEntry(ctx context.Context, clanID string, fields map[string]string) error {
	rows, err := s.db.Scan(ctx, TableLeaderboard)
	if err != nil {
		return err
	}
	row := findByKey(rows, "clanId", clanID)
	if row == nil {
		record := map[string]string{"clanId": clanID}
		for k, v := range fields {
			record[k] = v
		}
		return s.db.Append(ctx, TableLeaderboard, record)
	}
	for k, v := range fields {
		row.Set(k, v)
	}
	return row.Save(ctx)
}
