package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vitrine/internal/core/domain"
	"vitrine/internal/core/port"
)

// LifecycleRepository implements port.LifecycleRepository over pgxpool.
type LifecycleRepository struct {
	pool *pgxpool.Pool
}

func NewLifecycleRepository(pool *pgxpool.Pool) *LifecycleRepository {
	return &LifecycleRepository{pool: pool}
}

const campaignColumns = `id, brand_id, creator_id, title, description, campaign_type,
	compensation_model, fixed_fee_cents, commission_rate_bps, products, content_rules,
	proof_required, city, state, country, source_inquiry_id, status, created_at, updated_at`

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID, &c.BrandID, &c.CreatorID, &c.Title, &c.Description, &c.Type,
		&c.Compensation, &c.FixedFeeCents, &c.CommissionRateBps, &c.Products,
		&c.ContentRules, &c.ProofRequired, &c.City, &c.State, &c.Country,
		&c.SourceInquiryID, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(err, "")
	}
	return &c, nil
}

func (r *LifecycleRepository) CreateCampaign(ctx context.Context, c *domain.Campaign) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr(err, "")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = wrapErr(tx.Commit(ctx), "")
		}
	}()
	if err = insertCampaign(ctx, tx, c); err != nil {
		return err
	}
	return nil
}

func insertCampaign(ctx context.Context, tx pgx.Tx, c *domain.Campaign) error {
	_, err := tx.Exec(ctx, `INSERT INTO campaigns
		(id, brand_id, creator_id, title, description, campaign_type, compensation_model,
		 fixed_fee_cents, commission_rate_bps, products, content_rules, proof_required,
		 city, state, country, source_inquiry_id, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`,
		c.ID, c.BrandID, c.CreatorID, c.Title, c.Description, c.Type, c.Compensation,
		c.FixedFeeCents, c.CommissionRateBps, c.Products, c.ContentRules, c.ProofRequired,
		c.City, c.State, c.Country, c.SourceInquiryID, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return wrapErr(err, "inquiry already promoted")
	}
	for _, d := range c.Deliverables {
		_, err = tx.Exec(ctx, `INSERT INTO campaign_deliverables
			(id, campaign_id, kind, quantity, requirement, due_date, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			d.ID, d.CampaignID, d.Kind, d.Quantity, d.Requirement, d.DueDate, d.CreatedAt)
		if err != nil {
			return wrapErr(err, "")
		}
	}
	return nil
}

func (r *LifecycleRepository) GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
	if err != nil || c == nil {
		return c, err
	}
	rows, err := r.pool.Query(ctx, `SELECT id, campaign_id, kind, quantity, requirement, due_date, created_at
		FROM campaign_deliverables WHERE campaign_id = $1 ORDER BY created_at`, id)
	if err != nil {
		return nil, wrapErr(err, "")
	}
	c.Deliverables, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Deliverable, error) {
		var d domain.Deliverable
		err := row.Scan(&d.ID, &d.CampaignID, &d.Kind, &d.Quantity, &d.Requirement, &d.DueDate, &d.CreatedAt)
		return d, err
	})
	if err != nil {
		return nil, wrapErr(err, "")
	}
	return c, nil
}

func (r *LifecycleRepository) ListCampaigns(ctx context.Context, userID uuid.UUID, asBrand bool, statuses []domain.CampaignStatus) ([]domain.Campaign, error) {
	owner := "brand_id"
	if !asBrand {
		owner = "creator_id"
	}
	query := fmt.Sprintf(`SELECT %s FROM campaigns WHERE %s = $1`, campaignColumns, owner)
	args := []any{userID}
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, s := range statuses {
			args = append(args, s)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		query += ` AND status IN (` + strings.Join(placeholders, ",") + `)`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err, "")
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		var c domain.Campaign
		err := row.Scan(
			&c.ID, &c.BrandID, &c.CreatorID, &c.Title, &c.Description, &c.Type,
			&c.Compensation, &c.FixedFeeCents, &c.CommissionRateBps, &c.Products,
			&c.ContentRules, &c.ProofRequired, &c.City, &c.State, &c.Country,
			&c.SourceInquiryID, &c.Status, &c.CreatedAt, &c.UpdatedAt,
		)
		return c, err
	})
	if err != nil {
		return nil, wrapErr(err, "")
	}
	return out, nil
}

func (r *LifecycleRepository) UpdateCampaignStatus(ctx context.Context, id uuid.UUID, from, to domain.CampaignStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		return false, wrapErr(err, "")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *LifecycleRepository) CreateProposal(ctx context.Context, p *domain.Proposal) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO proposals
		(id, campaign_id, creator_id, price_cents, message, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.CampaignID, p.CreatorID, p.PriceCents, p.Message, p.Status, p.CreatedAt, p.UpdatedAt)
	return wrapErr(err, "a live proposal for this campaign already exists")
}

func (r *LifecycleRepository) GetProposal(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	var p domain.Proposal
	err := r.pool.QueryRow(ctx, `SELECT id, campaign_id, creator_id, price_cents, message, status, created_at, updated_at
		FROM proposals WHERE id = $1`, id).
		Scan(&p.ID, &p.CampaignID, &p.CreatorID, &p.PriceCents, &p.Message, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(err, "")
	}
	return &p, nil
}

func (r *LifecycleRepository) UpdateProposalStatus(ctx context.Context, id uuid.UUID, from, to domain.ProposalStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE proposals SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		return false, wrapErr(err, "")
	}
	return tag.RowsAffected() == 1, nil
}

// AcceptProposal is the award transaction. It locks the campaign row,
// guards against an existing agreement, flips the winning proposal,
// bulk-rejects the rest, inserts the agreement and moves the campaign to
// awarded — all in one serializable transaction. The unique key on
// agreements(campaign_id) converts a lost race into a conflict even if two
// transactions interleave past the guard.
func (r *LifecycleRepository) AcceptProposal(ctx context.Context, p port.AcceptProposalParams) (a *domain.Agreement, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, wrapErr(err, "")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			a = nil
		} else if err = wrapErr(tx.Commit(ctx), "campaign already has an agreement"); err != nil {
			a = nil
		}
	}()

	var status domain.CampaignStatus
	err = tx.QueryRow(ctx, `SELECT status FROM campaigns WHERE id = $1 FOR UPDATE`, p.CampaignID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		err = &domain.NotFoundError{Entity: "campaign"}
		return nil, err
	}
	if err != nil {
		err = wrapErr(err, "")
		return nil, err
	}
	if status.Terminal() {
		err = &domain.ConflictError{Reason: "campaign already finished"}
		return nil, err
	}

	var existing uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM agreements WHERE campaign_id = $1`, p.CampaignID).Scan(&existing)
	if err == nil {
		err = &domain.ConflictError{Reason: "campaign already has an agreement"}
		return nil, err
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		err = wrapErr(err, "")
		return nil, err
	}
	err = nil

	tag, err := tx.Exec(ctx,
		`UPDATE proposals SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		domain.ProposalAccepted, p.ProposalID, domain.ProposalSent)
	if err != nil {
		err = wrapErr(err, "")
		return nil, err
	}
	if tag.RowsAffected() != 1 {
		err = &domain.ConflictError{Reason: "proposal already resolved"}
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE proposals SET status = $1, updated_at = now()
		 WHERE campaign_id = $2 AND id <> $3 AND status = $4`,
		domain.ProposalRejected, p.CampaignID, p.ProposalID, domain.ProposalSent)
	if err != nil {
		err = wrapErr(err, "")
		return nil, err
	}

	a = &domain.Agreement{
		ID:              uuid.New(),
		CampaignID:      p.CampaignID,
		ProposalID:      p.ProposalID,
		BrandID:         p.BrandID,
		CreatorID:       p.CreatorID,
		TotalValueCents: p.PriceCents,
		Terms:           p.Terms,
		Status:          domain.AgreementActive,
		CreatedAt:       time.Now().UTC(),
	}
	_, err = tx.Exec(ctx, `INSERT INTO agreements
		(id, campaign_id, proposal_id, brand_id, creator_id, total_value_cents, terms, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID, a.CampaignID, a.ProposalID, a.BrandID, a.CreatorID, a.TotalValueCents, a.Terms, a.Status, a.CreatedAt)
	if err != nil {
		err = wrapErr(err, "campaign already has an agreement")
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE campaigns SET status = $1, creator_id = $2, updated_at = now() WHERE id = $3`,
		domain.CampaignAwarded, p.CreatorID, p.CampaignID)
	if err != nil {
		err = wrapErr(err, "")
		return nil, err
	}
	return a, nil
}

const agreementColumns = `id, campaign_id, proposal_id, brand_id, creator_id, total_value_cents, terms, status, created_at`

func scanAgreement(row pgx.Row) (*domain.Agreement, error) {
	var a domain.Agreement
	err := row.Scan(&a.ID, &a.CampaignID, &a.ProposalID, &a.BrandID, &a.CreatorID,
		&a.TotalValueCents, &a.Terms, &a.Status, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(err, "")
	}
	return &a, nil
}

func (r *LifecycleRepository) GetAgreement(ctx context.Context, id uuid.UUID) (*domain.Agreement, error) {
	return scanAgreement(r.pool.QueryRow(ctx,
		`SELECT `+agreementColumns+` FROM agreements WHERE id = $1`, id))
}

func (r *LifecycleRepository) GetAgreementByCampaign(ctx context.Context, campaignID uuid.UUID) (*domain.Agreement, error) {
	return scanAgreement(r.pool.QueryRow(ctx,
		`SELECT `+agreementColumns+` FROM agreements WHERE campaign_id = $1`, campaignID))
}

func (r *LifecycleRepository) GetDeliverable(ctx context.Context, id uuid.UUID) (*domain.Deliverable, error) {
	var d domain.Deliverable
	err := r.pool.QueryRow(ctx, `SELECT id, campaign_id, kind, quantity, requirement, due_date, created_at
		FROM campaign_deliverables WHERE id = $1`, id).
		Scan(&d.ID, &d.CampaignID, &d.Kind, &d.Quantity, &d.Requirement, &d.DueDate, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(err, "")
	}
	return &d, nil
}

func (r *LifecycleRepository) CreateSubmission(ctx context.Context, s *domain.Submission) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO submissions
		(id, deliverable_id, agreement_id, creator_id, proof_url, notes, status, reviewer_notes, reviewed_at, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		s.ID, s.DeliverableID, s.AgreementID, s.CreatorID, s.ProofURL, s.Notes, s.Status,
		s.ReviewerNotes, s.ReviewedAt, s.CreatedAt)
	return wrapErr(err, "")
}

func (r *LifecycleRepository) GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	var s domain.Submission
	err := r.pool.QueryRow(ctx, `SELECT id, deliverable_id, agreement_id, creator_id, proof_url, notes, status,
		COALESCE(reviewer_notes, ''), reviewed_at, created_at FROM submissions WHERE id = $1`, id).
		Scan(&s.ID, &s.DeliverableID, &s.AgreementID, &s.CreatorID, &s.ProofURL, &s.Notes,
			&s.Status, &s.ReviewerNotes, &s.ReviewedAt, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(err, "")
	}
	return &s, nil
}

// ReviewSubmission writes the terminal verdict with a compare-and-set on
// submitted state, so a concurrent second review loses cleanly.
func (r *LifecycleRepository) ReviewSubmission(ctx context.Context, p port.ReviewSubmissionParams) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE submissions SET status = $1, reviewer_notes = $2, reviewed_at = $3
		 WHERE id = $4 AND status = $5`,
		p.Status, p.ReviewerNotes, p.ReviewedAt, p.SubmissionID, domain.SubmissionSubmitted)
	if err != nil {
		return false, wrapErr(err, "")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *LifecycleRepository) CreateInquiry(ctx context.Context, iq *domain.Inquiry) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO inquiries
		(id, offer_id, brand_id, budget_cents, message, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		iq.ID, iq.OfferID, iq.BrandID, iq.BudgetCents, iq.Message, iq.Status, iq.CreatedAt, iq.UpdatedAt)
	return wrapErr(err, "")
}

func (r *LifecycleRepository) GetInquiry(ctx context.Context, id uuid.UUID) (*domain.Inquiry, error) {
	var iq domain.Inquiry
	err := r.pool.QueryRow(ctx, `SELECT id, offer_id, brand_id, budget_cents, message, status, created_at, updated_at
		FROM inquiries WHERE id = $1`, id).
		Scan(&iq.ID, &iq.OfferID, &iq.BrandID, &iq.BudgetCents, &iq.Message, &iq.Status, &iq.CreatedAt, &iq.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(err, "")
	}
	return &iq, nil
}

func (r *LifecycleRepository) UpdateInquiryStatus(ctx context.Context, id uuid.UUID, from []domain.InquiryStatus, to domain.InquiryStatus) (bool, error) {
	fromStr := make([]string, len(from))
	for i, s := range from {
		fromStr[i] = string(s)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE inquiries SET status = $1, updated_at = now() WHERE id = $2 AND status = ANY($3)`,
		to, id, fromStr)
	if err != nil {
		return false, wrapErr(err, "")
	}
	return tag.RowsAffected() == 1, nil
}

// PromoteInquiry inserts the derived campaign; the unique index on
// campaigns(source_inquiry_id) makes a second promotion a conflict.
func (r *LifecycleRepository) PromoteInquiry(ctx context.Context, c *domain.Campaign) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr(err, "")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = wrapErr(tx.Commit(ctx), "inquiry already promoted")
		}
	}()
	if err = insertCampaign(ctx, tx, c); err != nil {
		return err
	}
	return nil
}

func (r *LifecycleRepository) CreateRating(ctx context.Context, rt *domain.Rating) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO ratings
		(id, campaign_id, from_user_id, to_user_id, stars, comment, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rt.ID, rt.CampaignID, rt.FromUserID, rt.ToUserID, rt.Stars, rt.Comment, rt.CreatedAt)
	return wrapErr(err, "campaign already rated by this user")
}
