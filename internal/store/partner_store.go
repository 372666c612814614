package store

import (
	"context"

	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/rowstore"
)

type PartnerStore struct {
	db rowstore.Store
}

func NewPartnerStore(db rowstore.Store) *PartnerStore {
	return &PartnerStore{db: db}
}

func partnerFromRow(r rowstore.Row) *model.Partner {
	return &model.Partner{
		PartnerID:   r.Get("partnerId"),
		Name:        r.Get("name"),
		Logo:        r.Get("logo"),
		Link:        r.Get("link"),
		Description: r.Get("description"),
	}
}

func partnerFields(p *model.Partner) map[string]string {
	return map[string]string{
		"partnerId":   p.PartnerID,
		"name":        p.Name,
		"logo":        p.Logo,
		"link":        p.Link,
		"description": p.Description,
	}
}

func (s *PartnerStore) ListPartners(ctx context.Context) ([]model.Partner, error) {
	rows, err := s.db.Scan(ctx, TablePartners)
	if err != nil {
		return nil, err
	}
	partners := make([]model.Partner, 0, len(rows))
	for _, r := range rows {
		partners = append(partners, *partnerFromRow(r))
	}
	return partners, nil
}

func (s *PartnerStore) CreatePartner(ctx context.Context, p *model.Partner) error {
	return s.db.Append(ctx, TablePartners, partnerFields(p))
}

func (s *PartnerStore) UpdatePartner(ctx context.Context, partnerID string, fields map[string]string) error {
	rows, err := s.db.Scan(ctx, TablePartners)
	if err != nil {
		return err
	}
	row := findByKey(rows, "partnerId", partnerID)
	if row == nil {
		return ErrNotFound
	}
	for k, v := range fields {
		row.Set(k, v)
	}
	return row.Save(ctx)
}

func (s *PartnerStore) DeletePartner(ctx context.Context, partnerID string) error {
	rows, err := s.db.Scan(ctx, TablePartners)
	if err != nil {
		return err
	}
	row := findByKey(rows, "partnerId", partnerID)
	if row == nil {
		return ErrNotFound
	}
	return row.Delete(ctx)
}
