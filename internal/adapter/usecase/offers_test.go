package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"vitrine/internal/core/domain"
	"vitrine/internal/core/port"
)

func validOfferReq() port.OfferReq {
	return port.OfferReq{
		Title:          "Lifestyle reels",
		Platform:       "Instagram",
		Niche:          "lifestyle",
		PriceFromCents: 45000,
		City:           "Maceió",
		State:          "AL",
		Country:        "BR",
		IsPublic:       true,
		IsActive:       true,
		Items:          []port.OfferItemReq{{Kind: "Instagram", Quantity: 3, Requirement: "One reel, two stories"}},
	}
}

func TestOffersOwnership(t *testing.T) {
	store := newFakeStore()
	svc := NewOffers(store)
	ctx := context.Background()

	creator := domain.Actor{ID: uuid.New(), Role: domain.RoleCreator}
	brand := domain.Actor{ID: uuid.New(), Role: domain.RoleBrand}

	var ownership *domain.OwnershipError
	_, err := svc.CreateOffer(ctx, brand, validOfferReq())
	require.ErrorAs(t, err, &ownership)

	o, err := svc.CreateOffer(ctx, creator, validOfferReq())
	require.NoError(t, err)
	require.Equal(t, creator.ID, o.CreatorID)
	require.Len(t, o.Items, 1)
	require.Equal(t, o.ID, o.Items[0].OfferID)

	// only the owner (or an admin) updates and deletes
	other := domain.Actor{ID: uuid.New(), Role: domain.RoleCreator}
	_, err = svc.UpdateOffer(ctx, other, o.ID, validOfferReq())
	require.ErrorAs(t, err, &ownership)
	require.ErrorAs(t, svc.DeleteOffer(ctx, other, o.ID), &ownership)

	req := validOfferReq()
	req.Title = "Lifestyle reels and stories"
	updated, err := svc.UpdateOffer(ctx, creator, o.ID, req)
	require.NoError(t, err)
	require.Equal(t, o.ID, updated.ID)
	require.Equal(t, "Lifestyle reels and stories", updated.Title)
	require.Equal(t, o.CreatedAt, updated.CreatedAt)

	admin := domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}
	require.NoError(t, svc.DeleteOffer(ctx, admin, o.ID))

	_, err = svc.UpdateOffer(ctx, creator, o.ID, validOfferReq())
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCreateOfferValidation(t *testing.T) {
	store := newFakeStore()
	svc := NewOffers(store)
	creator := domain.Actor{ID: uuid.New(), Role: domain.RoleCreator}

	var validation *domain.ValidationError

	req := validOfferReq()
	req.Title = ""
	_, err := svc.CreateOffer(context.Background(), creator, req)
	require.ErrorAs(t, err, &validation)

	req = validOfferReq()
	lat := -9.6658
	req.Lat = &lat // lng missing
	_, err = svc.CreateOffer(context.Background(), creator, req)
	require.ErrorAs(t, err, &validation)

	req = validOfferReq()
	req.Items[0].Quantity = 0
	_, err = svc.CreateOffer(context.Background(), creator, req)
	require.ErrorAs(t, err, &validation)
}
