package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vitrine/internal/core/domain"
	"vitrine/internal/core/port"
)

// Offers implements port.OfferUseCase: a creator's own listings. Mutation
// is owner-only; admins may act on any offer.
type Offers struct {
	repo port.OfferRepository
	now  func() time.Time
}

func NewOffers(repo port.OfferRepository) *Offers {
	return &Offers{repo: repo, now: time.Now}
}

func (s *Offers) CreateOffer(ctx context.Context, actor domain.Actor, req port.OfferReq) (*domain.Offer, error) {
	if actor.Role != domain.RoleCreator && actor.Role != domain.RoleAdmin {
		return nil, &domain.OwnershipError{Reason: "only creators publish offers"}
	}
	now := s.now().UTC()
	o := offerFromReq(req)
	o.ID = uuid.New()
	o.CreatorID = actor.ID
	o.CreatedAt = now
	o.UpdatedAt = now
	for i := range o.Items {
		o.Items[i].ID = uuid.New()
		o.Items[i].OfferID = o.ID
		o.Items[i].CreatedAt = now
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateOffer(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Offers) UpdateOffer(ctx context.Context, actor domain.Actor, offerID uuid.UUID, req port.OfferReq) (*domain.Offer, error) {
	existing, err := s.repo.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &domain.NotFoundError{Entity: "offer"}
	}
	if !actor.Is(existing.CreatorID) {
		return nil, &domain.OwnershipError{Reason: "offer belongs to another creator"}
	}

	now := s.now().UTC()
	o := offerFromReq(req)
	o.ID = existing.ID
	o.CreatorID = existing.CreatorID
	o.CreatedAt = existing.CreatedAt
	o.UpdatedAt = now
	for i := range o.Items {
		o.Items[i].ID = uuid.New()
		o.Items[i].OfferID = o.ID
		o.Items[i].CreatedAt = now
	}
	if err = o.Validate(); err != nil {
		return nil, err
	}
	if err = s.repo.UpdateOffer(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Offers) DeleteOffer(ctx context.Context, actor domain.Actor, offerID uuid.UUID) error {
	existing, err := s.repo.GetOffer(ctx, offerID)
	if err != nil {
		return err
	}
	if existing == nil {
		return &domain.NotFoundError{Entity: "offer"}
	}
	if !actor.Is(existing.CreatorID) {
		return &domain.OwnershipError{Reason: "offer belongs to another creator"}
	}
	return s.repo.DeleteOffer(ctx, offerID)
}

func (s *Offers) ListMyOffers(ctx context.Context, actor domain.Actor) ([]domain.Offer, error) {
	return s.repo.ListOffersByCreator(ctx, actor.ID)
}

func offerFromReq(req port.OfferReq) *domain.Offer {
	o := &domain.Offer{
		Title:          req.Title,
		Description:    req.Description,
		Platform:       req.Platform,
		Niche:          req.Niche,
		Language:       req.Language,
		PriceFromCents: req.PriceFromCents,
		City:           req.City,
		State:          req.State,
		Country:        req.Country,
		Lat:            req.Lat,
		Lng:            req.Lng,
		IsPublic:       req.IsPublic,
		IsActive:       req.IsActive,
	}
	for _, it := range req.Items {
		o.Items = append(o.Items, domain.OfferItem{
			Kind:        it.Kind,
			Quantity:    it.Quantity,
			Requirement: it.Requirement,
		})
	}
	return o
}
