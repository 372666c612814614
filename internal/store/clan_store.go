package store

import (
	"context"

	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/rowstore"
)

// ClanStore covers clans and their join requests.
type ClanStore struct {
	db rowstore.Store
}

func NewClanStore(db rowstore.Store) *ClanStore {
	return &ClanStore{db: db}
}

func clanFromRow(r rowstore.Row) *model.Clan {
	return &model.Clan{
		ClanID:      r.Get("clanId"),
		ClanName:    r.Get("clanName"),
		ClanTag:     r.Get("clanTag"),
		ClanLogo:    r.Get("clanLogo"),
		CaptainID:   r.Get("captainId"),
		CaptainName: r.Get("captainName"),
		Roster:      r.Get("roster"),
	}
}

func clanFields(c *model.Clan) map[string]string {
	return map[string]string{
		"clanId":      c.ClanID,
		"clanName":    c.ClanName,
		"clanTag":     c.ClanTag,
		"clanLogo":    c.ClanLogo,
		"captainId":   c.CaptainID,
		"captainName": c.CaptainName,
		"roster":      c.Roster,
	}
}

func requestFromRow(r rowstore.Row) *model.ClanRequest {
	return &model.ClanRequest{
		RequestID: r.Get("requestId"),
		ClanID:    r.Get("clanId"),
		ClanName:  r.Get("clanName"),
		UserID:    r.Get("userId"),
		Username:  r.Get("username"),
		Status:    model.RequestStatus(r.Get("status")),
		Timestamp: r.Get("timestamp"),
	}
}

func requestFields(req *model.ClanRequest) map[string]string {
	return map[string]string{
		"requestId": req.RequestID,
		"clanId":    req.ClanID,
		"clanName":  req.ClanName,
		"userId":    req.UserID,
		"username":  req.Username,
		"status":    string(req.Status),
		"timestamp": req.Timestamp,
	}
}

func (s *ClanStore) GetClan(ctx context.Context, clanID string) (*model.Clan, error) {
	rows, err := s.db.Scan(ctx, TableClans)
	if err != nil {
		return nil, err
	}
	row := findByKey(rows, "clanId", clanID)
	if row == nil {
		return nil, ErrNotFound
	}
	return clanFromRow(row), nil
}

func (s *ClanStore) ListClans(ctx context.Context) ([]model.Clan, error) {
	rows, err := s.db.Scan(ctx, TableClans)
	if err != nil {
		return nil, err
	}
	clans := make([]model.Clan, 0, len(rows))
	for _, r := range rows {
		clans = append(clans, *clanFromRow(r))
	}
	return clans, nil
}

func (s *ClanStore) CreateClan(ctx context.Context, c *model.Clan) error {
	return s.db.Append(ctx, TableClans, clanFields(c))
}

func (s *ClanStore) UpdateClan(ctx context.Context, clanID string, fields map[string]string) error {
	rows, err := s.db.Scan(ctx, TableClans)
	if err != nil {
		return err
	}
	row := findByKey(rows, "clanId", clanID)
	if row == nil {
		return ErrNotFound
	}
	for k, v := range fields {
		row.Set(k, v)
	}
	return row.Save(ctx)
}

func (s *ClanStore) GetRequest(ctx context.Context, requestID string) (*model.ClanRequest, error) {
	rows, err := s.db.Scan(ctx, TableClanRequests)
	if err != nil {
		return nil, err
	}
	row := findByKey(rows, "requestId", requestID)
	if row == nil {
		return nil, ErrNotFound
	}
	return requestFromRow(row), nil
}

func (s *ClanStore) ListRequests(ctx context.Context) ([]model.ClanRequest, error) {
	rows, err := s.db.Scan(ctx, TableClanRequests)
	if err != nil {
		return nil, err
	}
	requests := make([]model.ClanRequest, 0, len(rows))
	for _, r := range rows {
		requests = append(requests, *requestFromRow(r))
	}
	return requests, nil
}

func (s *ClanStore) CreateRequest(ctx context.Context, req *model.ClanRequest) error {
	return s.db.Append(ctx, TableClanRequests, requestFields(req))
}

func (s *ClanStore) UpdateRequestStatus(ctx context.Context, requestID string, status model.RequestStatus) error {
	rows, err := s.db.Scan(ctx, TableClanRequests)
	if err != nil {
		return err
	}
	row := findByKey(rows, "requestId", requestID)
	if row == nil {
		return ErrNotFound
	}
	row.Set("status", string(status))
	return row.Save(ctx)
}
