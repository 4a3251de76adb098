package domain

import (
	"time"

	"github.com/google/uuid"
)

// CampaignStatus is the closed set of campaign lifecycle states.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignOpen      CampaignStatus = "open"
	CampaignAwarded   CampaignStatus = "awarded"
	CampaignActive    CampaignStatus = "active"
	CampaignDelivered CampaignStatus = "delivered"
	CampaignClosed    CampaignStatus = "closed"
	CampaignCancelled CampaignStatus = "cancelled"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignDraft, CampaignOpen, CampaignAwarded, CampaignActive,
		CampaignDelivered, CampaignClosed, CampaignCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s CampaignStatus) Terminal() bool {
	return s == CampaignClosed || s == CampaignCancelled
}

// campaignTransitions is the brand-driven transition table. Awarded is
// absent as a target on purpose: it is reachable only through the
// accept-proposal transaction.
var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignDraft:     {CampaignOpen, CampaignCancelled},
	CampaignOpen:      {CampaignCancelled},
	CampaignAwarded:   {CampaignActive, CampaignCancelled},
	CampaignActive:    {CampaignDelivered, CampaignCancelled},
	CampaignDelivered: {CampaignClosed, CampaignCancelled},
}

// CanTransition reports whether a brand-driven advance from s to next is
// legal. The accept transaction moves open -> awarded outside this table.
func (s CampaignStatus) CanTransition(next CampaignStatus) bool {
	for _, t := range campaignTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// CampaignType is the tagged partnership variant. Each variant carries its
// own required compensation fields; see Validate.
type CampaignType string

const (
	CampaignAffiliate CampaignType = "affiliate"
	CampaignUGC       CampaignType = "ugc"
	CampaignMention   CampaignType = "mention"
)

func (t CampaignType) Valid() bool {
	switch t {
	case CampaignAffiliate, CampaignUGC, CampaignMention:
		return true
	}
	return false
}

// DefaultCompensation returns the compensation model implied by the
// campaign type: commission for affiliate deals, a fixed fee otherwise.
func (t CampaignType) DefaultCompensation() CompensationModel {
	if t == CampaignAffiliate {
		return CompensationCommission
	}
	return CompensationFixed
}

// DefaultProofRequirement is the proof text applied when the brand left
// the field empty.
func (t CampaignType) DefaultProofRequirement() string {
	switch t {
	case CampaignAffiliate:
		return "Video link plus a screenshot of the shop dashboard"
	case CampaignUGC:
		return "Links to the final files"
	default:
		return "Link to the post or video"
	}
}

// CompensationModel describes how the creator is paid.
type CompensationModel string

const (
	CompensationFixed      CompensationModel = "fixed"
	CompensationCommission CompensationModel = "commission"
	CompensationHybrid     CompensationModel = "hybrid"
)

func (m CompensationModel) Valid() bool {
	switch m {
	case CompensationFixed, CompensationCommission, CompensationHybrid:
		return true
	}
	return false
}

// Deliverable is one requirement within a campaign. It is owned by its
// campaign and immutable once proposals exist.
type Deliverable struct {
	ID          uuid.UUID
	CampaignID  uuid.UUID
	Kind        string
	Quantity    int
	Requirement string
	DueDate     *time.Time
	CreatedAt   time.Time
}

// Campaign is a brand's work request. Money fields are integer cents,
// commission rates are basis points.
type Campaign struct {
	ID                uuid.UUID
	BrandID           uuid.UUID
	CreatorID         *uuid.UUID
	Title             string
	Description       string
	Type              CampaignType
	Compensation      CompensationModel
	FixedFeeCents     *int64
	CommissionRateBps *int32
	Products          []string
	ContentRules      string
	ProofRequired     string
	City              string
	State             string
	Country           string
	SourceInquiryID   *uuid.UUID
	Status            CampaignStatus
	Deliverables      []Deliverable
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate checks the campaign-type variant exhaustively. Affiliate deals
// need a commission rate and at least one product; fixed and hybrid
// compensation need a positive fee; every campaign needs a deliverable.
func (c *Campaign) Validate() error {
	if !c.Type.Valid() {
		return &ValidationError{Reason: "unknown campaign type"}
	}
	if !c.Compensation.Valid() {
		return &ValidationError{Reason: "unknown compensation model"}
	}
	switch c.Type {
	case CampaignAffiliate:
		if c.CommissionRateBps == nil || *c.CommissionRateBps <= 0 {
			return &ValidationError{Reason: "affiliate campaign requires a commission rate"}
		}
		if len(c.Products) == 0 {
			return &ValidationError{Reason: "affiliate campaign requires at least one product"}
		}
	case CampaignUGC, CampaignMention:
		// fee requirement handled by compensation model below
	}
	if c.Compensation == CompensationFixed || c.Compensation == CompensationHybrid {
		if c.FixedFeeCents == nil || *c.FixedFeeCents <= 0 {
			return &ValidationError{Reason: "fixed fee must be positive"}
		}
	}
	if len(c.Deliverables) == 0 {
		return &ValidationError{Reason: "at least one deliverable is required"}
	}
	for _, d := range c.Deliverables {
		if d.Quantity <= 0 {
			return &ValidationError{Reason: "deliverable quantity must be positive"}
		}
	}
	return nil
}
