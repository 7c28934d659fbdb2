package restaurants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const restaurantColumns = `id, name, location, cuisine_type, provider, place_id, slug, price_level, rating,
user_rating_count, editorial_summary, primary_type, serves_dine_in, serves_takeout, serves_delivery,
reservable, last_enriched_at, city_hint`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) GetByPlaceID(ctx context.Context, provider, placeID string) (Restaurant, error) {
	query := `SELECT ` + restaurantColumns + `
FROM restaurants
WHERE provider = $1 AND place_id = $2
LIMIT 1`
	return scanRestaurant(r.DB.QueryRowContext(ctx, query, provider, placeID))
}

func (r *PGRepo) GetBySlug(ctx context.Context, slug string) (Restaurant, error) {
	query := `SELECT ` + restaurantColumns + `
FROM restaurants
WHERE slug = $1
LIMIT 1`
	return scanRestaurant(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *PGRepo) GetByIDs(ctx context.Context, ids []int64) ([]Restaurant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := `SELECT ` + restaurantColumns + `
FROM restaurants
WHERE id IN (` + strings.Join(placeholders, ", ") + `)
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

func (r *PGRepo) Upsert(ctx context.Context, rest Restaurant) (Restaurant, error) {
	conflict := `(provider, place_id) WHERE place_id IS NOT NULL`
	if rest.PlaceID == "" {
		conflict = `(slug) WHERE slug IS NOT NULL`
	}
	query := `
INSERT INTO restaurants (
    name,
    location,
    cuisine_type,
    provider,
    place_id,
    slug,
    price_level,
    rating,
    user_rating_count,
    editorial_summary,
    primary_type,
    serves_dine_in,
    serves_takeout,
    serves_delivery,
    reservable,
    last_enriched_at,
    city_hint,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, now())
ON CONFLICT ` + conflict + ` DO UPDATE SET
    name = EXCLUDED.name,
    location = EXCLUDED.location,
    cuisine_type = COALESCE(EXCLUDED.cuisine_type, restaurants.cuisine_type),
    slug = COALESCE(EXCLUDED.slug, restaurants.slug),
    price_level = COALESCE(EXCLUDED.price_level, restaurants.price_level),
    rating = COALESCE(EXCLUDED.rating, restaurants.rating),
    user_rating_count = COALESCE(EXCLUDED.user_rating_count, restaurants.user_rating_count),
    editorial_summary = COALESCE(EXCLUDED.editorial_summary, restaurants.editorial_summary),
    primary_type = COALESCE(EXCLUDED.primary_type, restaurants.primary_type),
    serves_dine_in = COALESCE(EXCLUDED.serves_dine_in, restaurants.serves_dine_in),
    serves_takeout = COALESCE(EXCLUDED.serves_takeout, restaurants.serves_takeout),
    serves_delivery = COALESCE(EXCLUDED.serves_delivery, restaurants.serves_delivery),
    reservable = COALESCE(EXCLUDED.reservable, restaurants.reservable),
    last_enriched_at = COALESCE(EXCLUDED.last_enriched_at, restaurants.last_enriched_at),
    city_hint = COALESCE(EXCLUDED.city_hint, restaurants.city_hint)
RETURNING ` + restaurantColumns

	var enriched any
	if rest.LastEnrichedAt != nil {
		enriched = *rest.LastEnrichedAt
	}
	row := r.DB.QueryRowContext(ctx, query,
		rest.Name,
		rest.Location,
		nullableString(rest.CuisineType),
		rest.Provider,
		nullableString(rest.PlaceID),
		nullableString(rest.Slug),
		nullableString(rest.PriceLevel),
		nullableFloat(rest.Rating),
		nullableInt(rest.UserRatingCount),
		nullableString(rest.EditorialSummary),
		nullableString(rest.PrimaryType),
		nullableBool(rest.ServesDineIn),
		nullableBool(rest.ServesTakeout),
		nullableBool(rest.ServesDelivery),
		nullableBool(rest.Reservable),
		enriched,
		nullableString(rest.CityHint),
	)
	return scanRestaurant(row)
}

func scanRestaurant(row rowScanner) (Restaurant, error) {
	var (
		rest            Restaurant
		cuisineType     sql.NullString
		placeID         sql.NullString
		slug            sql.NullString
		priceLevel      sql.NullString
		rating          sql.NullFloat64
		userRatingCount sql.NullInt64
		summary         sql.NullString
		primaryType     sql.NullString
		dineIn          sql.NullBool
		takeout         sql.NullBool
		delivery        sql.NullBool
		reservable      sql.NullBool
		enrichedAt      sql.NullTime
		cityHint        sql.NullString
	)
	err := row.Scan(
		&rest.ID,
		&rest.Name,
		&rest.Location,
		&cuisineType,
		&rest.Provider,
		&placeID,
		&slug,
		&priceLevel,
		&rating,
		&userRatingCount,
		&summary,
		&primaryType,
		&dineIn,
		&takeout,
		&delivery,
		&reservable,
		&enrichedAt,
		&cityHint,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Restaurant{}, ErrNotFound
		}
		return Restaurant{}, err
	}
	rest.CuisineType = cuisineType.String
	rest.PlaceID = placeID.String
	rest.Slug = slug.String
	rest.PriceLevel = priceLevel.String
	rest.EditorialSummary = summary.String
	rest.PrimaryType = primaryType.String
	rest.CityHint = cityHint.String
	if rating.Valid {
		v := rating.Float64
		rest.Rating = &v
	}
	if userRatingCount.Valid {
		v := int(userRatingCount.Int64)
		rest.UserRatingCount = &v
	}
	rest.ServesDineIn = boolPtr(dineIn)
	rest.ServesTakeout = boolPtr(takeout)
	rest.ServesDelivery = boolPtr(delivery)
	rest.Reservable = boolPtr(reservable)
	if enrichedAt.Valid {
		t := enrichedAt.Time.UTC()
		rest.LastEnrichedAt = &t
	}
	return rest, nil
}

func boolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return int64(*value)
}

func nullableBool(value *bool) any {
	if value == nil {
		return nil
	}
	return *value
}
