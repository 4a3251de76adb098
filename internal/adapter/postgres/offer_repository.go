package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vitrine/internal/core/domain"
	"vitrine/internal/core/port"
)

// OfferRepository implements port.OfferRepository over pgxpool. Radius
// search uses a haversine expression in SQL with a bounding-box prefilter,
// since the schema carries plain lat/lng columns.
type OfferRepository struct {
	pool *pgxpool.Pool
}

func NewOfferRepository(pool *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{pool: pool}
}

const offerColumns = `o.id, o.creator_id, o.title, o.description, o.platform, o.niche,
	o.language, o.price_from_cents, o.city, o.state, o.country, o.lat, o.lng,
	o.is_public, o.is_active, o.created_at, o.updated_at`

func scanOfferRow(row pgx.CollectableRow) (domain.Offer, error) {
	var o domain.Offer
	err := row.Scan(&o.ID, &o.CreatorID, &o.Title, &o.Description, &o.Platform, &o.Niche,
		&o.Language, &o.PriceFromCents, &o.City, &o.State, &o.Country, &o.Lat, &o.Lng,
		&o.IsPublic, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func (r *OfferRepository) CreateOffer(ctx context.Context, o *domain.Offer) (err error) {
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

	_, err = tx.Exec(ctx, `INSERT INTO offers
		(id, creator_id, title, description, platform, niche, language, price_from_cents,
		 city, state, country, lat, lng, is_public, is_active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		o.ID, o.CreatorID, o.Title, o.Description, o.Platform, o.Niche, o.Language,
		o.PriceFromCents, o.City, o.State, o.Country, o.Lat, o.Lng, o.IsPublic, o.IsActive,
		o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return wrapErr(err, "")
	}
	if err = insertOfferItems(ctx, tx, o); err != nil {
		return err
	}
	return nil
}

func insertOfferItems(ctx context.Context, tx pgx.Tx, o *domain.Offer) error {
	for _, it := range o.Items {
		_, err := tx.Exec(ctx, `INSERT INTO offer_items
			(id, offer_id, kind, quantity, requirement, created_at)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			it.ID, it.OfferID, it.Kind, it.Quantity, it.Requirement, it.CreatedAt)
		if err != nil {
			return wrapErr(err, "")
		}
	}
	return nil
}

func (r *OfferRepository) GetOffer(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	var o domain.Offer
	err := r.pool.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers o WHERE o.id = $1`, id).
		Scan(&o.ID, &o.CreatorID, &o.Title, &o.Description, &o.Platform, &o.Niche,
			&o.Language, &o.PriceFromCents, &o.City, &o.State, &o.Country, &o.Lat, &o.Lng,
			&o.IsPublic, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(err, "")
	}
	rows, err := r.pool.Query(ctx, `SELECT id, offer_id, kind, quantity, requirement, created_at
		FROM offer_items WHERE offer_id = $1 ORDER BY created_at`, id)
	if err != nil {
		return nil, wrapErr(err, "")
	}
	o.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OfferItem, error) {
		var it domain.OfferItem
		err := row.Scan(&it.ID, &it.OfferID, &it.Kind, &it.Quantity, &it.Requirement, &it.CreatedAt)
		return it, err
	})
	if err != nil {
		return nil, wrapErr(err, "")
	}
	return &o, nil
}

func (r *OfferRepository) UpdateOffer(ctx context.Context, o *domain.Offer) (err error) {
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

	tag, err := tx.Exec(ctx, `UPDATE offers SET
		title = $1, description = $2, platform = $3, niche = $4, language = $5,
		price_from_cents = $6, city = $7, state = $8, country = $9, lat = $10, lng = $11,
		is_public = $12, is_active = $13, updated_at = $14
		WHERE id = $15`,
		o.Title, o.Description, o.Platform, o.Niche, o.Language, o.PriceFromCents,
		o.City, o.State, o.Country, o.Lat, o.Lng, o.IsPublic, o.IsActive, o.UpdatedAt, o.ID)
	if err != nil {
		return wrapErr(err, "")
	}
	if tag.RowsAffected() != 1 {
		err = &domain.NotFoundError{Entity: "offer"}
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM offer_items WHERE offer_id = $1`, o.ID); err != nil {
		return wrapErr(err, "")
	}
	if err = insertOfferItems(ctx, tx, o); err != nil {
		return err
	}
	return nil
}

func (r *OfferRepository) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	return wrapErr(err, "")
}

func (r *OfferRepository) ListOffersByCreator(ctx context.Context, creatorID uuid.UUID) ([]domain.Offer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+offerColumns+` FROM offers o WHERE o.creator_id = $1 ORDER BY o.created_at DESC`,
		creatorID)
	if err != nil {
		return nil, wrapErr(err, "")
	}
	out, err := pgx.CollectRows(rows, scanOfferRow)
	if err != nil {
		return nil, wrapErr(err, "")
	}
	return out, nil
}

// filterClauses renders the shared attribute predicates. Only public and
// active offers are ever searchable.
func filterClauses(f port.OfferFilter, args []any) (string, []any) {
	clauses := []string{"o.is_public", "o.is_active"}
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}
	if f.Platform != "" {
		add("o.platform = $%d", f.Platform)
	}
	if f.Niche != "" {
		add("o.niche ILIKE '%%' || $%d || '%%'", f.Niche)
	}
	if f.MaxPriceCents > 0 {
		add("o.price_from_cents <= $%d", f.MaxPriceCents)
	}
	if f.Country != "" {
		add("lower(o.country) = lower($%d)", f.Country)
	}
	if f.State != "" {
		add("lower(o.state) = lower($%d)", f.State)
	}
	if len(f.Cities) > 0 {
		add("lower(o.city) = ANY(SELECT lower(c) FROM unnest($%d::text[]) AS c)", f.Cities)
	}
	return strings.Join(clauses, " AND "), args
}

func (r *OfferRepository) SearchOffers(ctx context.Context, f port.OfferFilter) ([]port.OfferHit, error) {
	where, args := filterClauses(f, nil)
	query := `SELECT ` + offerColumns + ` FROM offers o WHERE ` + where +
		` ORDER BY o.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err, "")
	}
	offers, err := pgx.CollectRows(rows, scanOfferRow)
	if err != nil {
		return nil, wrapErr(err, "")
	}
	hits := make([]port.OfferHit, 0, len(offers))
	for _, o := range offers {
		hits = append(hits, port.OfferHit{Offer: o})
	}
	return hits, nil
}

// SearchOffersWithin restricts the attribute query to the haversine radius
// around center. The bounding box on lat/lng prunes the candidate set
// before the trigonometric distance is evaluated.
func (r *OfferRepository) SearchOffersWithin(ctx context.Context, f port.OfferFilter, center domain.Point, radiusKm float64) ([]port.OfferHit, error) {
	// A degree of latitude is ~111.045 km; the longitude span widens with
	// the cosine of the latitude, clamped in SQL to avoid division blowups
	// near the poles.
	where, args := filterClauses(f, []any{center.Lat, center.Lng, radiusKm})
	query := `
		WITH candidates AS (
			SELECT ` + offerColumns + `,
				2 * 6371 * asin(sqrt(
					pow(sin(radians(o.lat - $1) / 2), 2) +
					cos(radians($1)) * cos(radians(o.lat)) *
					pow(sin(radians(o.lng - $2) / 2), 2)
				)) AS distance_km
			FROM offers o
			WHERE o.lat IS NOT NULL AND o.lng IS NOT NULL
			  AND o.lat BETWEEN $1 - $3 / 111.045 AND $1 + $3 / 111.045
			  AND o.lng BETWEEN $2 - $3 / (111.045 * greatest(cos(radians($1)), 0.01))
			              AND $2 + $3 / (111.045 * greatest(cos(radians($1)), 0.01))
			  AND ` + where + `
		)
		SELECT * FROM candidates WHERE distance_km <= $3 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err, "")
	}
	hits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (port.OfferHit, error) {
		var h port.OfferHit
		var dist float64
		err := row.Scan(&h.Offer.ID, &h.Offer.CreatorID, &h.Offer.Title, &h.Offer.Description,
			&h.Offer.Platform, &h.Offer.Niche, &h.Offer.Language, &h.Offer.PriceFromCents,
			&h.Offer.City, &h.Offer.State, &h.Offer.Country, &h.Offer.Lat, &h.Offer.Lng,
			&h.Offer.IsPublic, &h.Offer.IsActive, &h.Offer.CreatedAt, &h.Offer.UpdatedAt, &dist)
		h.DistanceKm = &dist
		return h, err
	})
	if err != nil {
		return nil, wrapErr(err, "")
	}
	return hits, nil
}
