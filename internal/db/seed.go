package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo data: a handful of public offers around Brazilian
// capitals plus one open campaign with competing proposals. Intended for
// local development only.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	type seedOffer struct {
		title    string
		platform string
		niche    string
		price    int64
		city     string
		state    string
		lat, lng float64
	}
	offers := []seedOffer{
		{"Reels + stories combo", "Instagram", "fitness", 80000, "Maceió", "AL", -9.6658, -35.7353},
		{"Unboxing e review", "YouTube", "tech", 150000, "Recife", "PE", -8.0476, -34.8770},
		{"Dancinha viral", "TikTok", "lifestyle", 50000, "São Paulo", "SP", -23.5505, -46.6333},
		{"Live gameplay patrocinada", "Twitch", "games", 120000, "Curitiba", "PR", -25.4284, -49.2733},
	}

	creatorIDs := make([]uuid.UUID, len(offers))
	for i, o := range offers {
		creatorIDs[i] = uuid.New()
		offerID := uuid.New()
		_, err := db.Exec(ctx, `INSERT INTO offers
			(id, creator_id, title, description, platform, niche, language, price_from_cents,
			 city, state, country, lat, lng, is_public, is_active)
			VALUES ($1,$2,$3,$4,$5,$6,'pt-BR',$7,$8,$9,'BR',$10,$11,TRUE,TRUE)
			ON CONFLICT DO NOTHING`,
			offerID, creatorIDs[i], o.title, fmt.Sprintf("Demo offer: %s", o.title),
			o.platform, o.niche, o.price, o.city, o.state, o.lat, o.lng)
		if err != nil {
			return err
		}
		_, err = db.Exec(ctx, `INSERT INTO offer_items (id, offer_id, kind, quantity, requirement)
			VALUES ($1,$2,$3,1,'Conteúdo conforme briefing') ON CONFLICT DO NOTHING`,
			uuid.New(), offerID, o.platform)
		if err != nil {
			return err
		}
	}

	// one open campaign with two competing proposals
	brandID := uuid.New()
	campaignID := uuid.New()
	_, err := db.Exec(ctx, `INSERT INTO campaigns
		(id, brand_id, title, description, campaign_type, compensation_model,
		 fixed_fee_cents, city, state, country, status)
		VALUES ($1,$2,'Lançamento coleção verão','Demo campaign','mention','fixed',
		 100000,'Maceió','AL','BR','open') ON CONFLICT DO NOTHING`,
		campaignID, brandID)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `INSERT INTO campaign_deliverables
		(id, campaign_id, kind, quantity, requirement)
		VALUES ($1,$2,'Instagram',1,'1 reel + 3 stories') ON CONFLICT DO NOTHING`,
		uuid.New(), campaignID)
	if err != nil {
		return err
	}
	for i, price := range []int64{100000, 80000} {
		_, err = db.Exec(ctx, `INSERT INTO proposals
			(id, campaign_id, creator_id, price_cents, message, status)
			VALUES ($1,$2,$3,$4,'Tenho interesse!','sent') ON CONFLICT DO NOTHING`,
			uuid.New(), campaignID, creatorIDs[i], price)
		if err != nil {
			return err
		}
	}
	return nil
}
