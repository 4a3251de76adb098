package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCampaignStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to CampaignStatus
		ok       bool
	}{
		{CampaignDraft, CampaignOpen, true},
		{CampaignDraft, CampaignCancelled, true},
		{CampaignDraft, CampaignActive, false},
		{CampaignOpen, CampaignCancelled, true},
		// awarded is never a brand-driven target
		{CampaignOpen, CampaignAwarded, false},
		{CampaignAwarded, CampaignActive, true},
		{CampaignAwarded, CampaignCancelled, true},
		{CampaignActive, CampaignDelivered, true},
		{CampaignActive, CampaignClosed, false},
		{CampaignDelivered, CampaignClosed, true},
		{CampaignClosed, CampaignCancelled, false},
		{CampaignCancelled, CampaignOpen, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.ok, tt.from.CanTransition(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestCampaignStatusTerminal(t *testing.T) {
	require.True(t, CampaignClosed.Terminal())
	require.True(t, CampaignCancelled.Terminal())
	require.False(t, CampaignAwarded.Terminal())
	require.False(t, CampaignOpen.Terminal())
}

func TestCampaignTypeDefaults(t *testing.T) {
	require.Equal(t, CompensationCommission, CampaignAffiliate.DefaultCompensation())
	require.Equal(t, CompensationFixed, CampaignUGC.DefaultCompensation())
	require.Equal(t, CompensationFixed, CampaignMention.DefaultCompensation())
	for _, typ := range []CampaignType{CampaignAffiliate, CampaignUGC, CampaignMention} {
		require.NotEmpty(t, typ.DefaultProofRequirement())
	}
}

func TestCampaignValidate(t *testing.T) {
	fee := int64(50000)
	rate := int32(800)
	base := func() *Campaign {
		return &Campaign{
			ID:            uuid.New(),
			BrandID:       uuid.New(),
			Title:         "Winter drop",
			Type:          CampaignMention,
			Compensation:  CompensationFixed,
			FixedFeeCents: &fee,
			Deliverables:  []Deliverable{{ID: uuid.New(), Kind: "Instagram", Quantity: 1}},
		}
	}

	require.NoError(t, base().Validate())

	t.Run("unknown type", func(t *testing.T) {
		c := base()
		c.Type = "barter"
		require.Error(t, c.Validate())
	})

	t.Run("affiliate needs rate and products", func(t *testing.T) {
		c := base()
		c.Type = CampaignAffiliate
		c.Compensation = CompensationCommission
		require.Error(t, c.Validate())

		c.CommissionRateBps = &rate
		require.Error(t, c.Validate())

		c.Products = []string{"Serum"}
		require.NoError(t, c.Validate())
	})

	t.Run("fixed fee must be positive", func(t *testing.T) {
		c := base()
		zero := int64(0)
		c.FixedFeeCents = &zero
		require.Error(t, c.Validate())

		c.FixedFeeCents = nil
		require.Error(t, c.Validate())
	})

	t.Run("hybrid needs a fee too", func(t *testing.T) {
		c := base()
		c.Compensation = CompensationHybrid
		c.FixedFeeCents = nil
		require.Error(t, c.Validate())
	})

	t.Run("deliverables required", func(t *testing.T) {
		c := base()
		c.Deliverables = nil
		require.Error(t, c.Validate())

		c = base()
		c.Deliverables[0].Quantity = 0
		require.Error(t, c.Validate())
	})
}
