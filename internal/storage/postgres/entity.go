package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ethereal-veil/mud/internal/game/entity"
	"github.com/ethereal-veil/mud/internal/game/tactics"
)

// ErrEntityNotFound is returned when an entity lookup yields no results.
var ErrEntityNotFound = errors.New("entity not found")

// EntityRepository persists entity combat snapshots: vitals, attributes,
// tactics, and location. Equipment and world placement live elsewhere; this
// is the state the engine needs back after a restart or a respawn.
type EntityRepository struct {
	db *pgxpool.Pool
}

// NewEntityRepository creates an EntityRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewEntityRepository(db *pgxpool.Pool) *EntityRepository {
	return &EntityRepository{db: db}
}

// Upsert inserts or updates the entity's combat snapshot.
//
// Precondition: e.ID and e.Name must be non-empty.
func (r *EntityRepository) Upsert(ctx context.Context, e *entity.Entity) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO entities
			(id, name, kind, hp, max_hp, gp, max_gp,
			 str, dex, height, burden, location, respawn_location,
			 attitude, response, parry_hand, attack_hand, parry_unarmed,
			 mercy, focus_zone, ideal_distance)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			hp = EXCLUDED.hp, max_hp = EXCLUDED.max_hp,
			gp = EXCLUDED.gp, max_gp = EXCLUDED.max_gp,
			str = EXCLUDED.str, dex = EXCLUDED.dex,
			height = EXCLUDED.height, burden = EXCLUDED.burden,
			location = EXCLUDED.location,
			respawn_location = EXCLUDED.respawn_location,
			attitude = EXCLUDED.attitude, response = EXCLUDED.response,
			parry_hand = EXCLUDED.parry_hand, attack_hand = EXCLUDED.attack_hand,
			parry_unarmed = EXCLUDED.parry_unarmed, mercy = EXCLUDED.mercy,
			focus_zone = EXCLUDED.focus_zone, ideal_distance = EXCLUDED.ideal_distance,
			updated_at = NOW()`,
		e.ID, e.Name, string(e.Kind), e.HP, e.MaxHP, e.GP, e.MaxGP,
		e.Str, e.Dex, e.Height, e.Burden, e.LocationID, e.RespawnID,
		string(e.Tactics.Attitude), string(e.Tactics.Response),
		string(e.Tactics.Parry), string(e.Tactics.Attack), e.Tactics.ParryUnarmed,
		string(e.Tactics.Mercy), e.Tactics.FocusZone, e.Tactics.IdealDistance,
	)
	if err != nil {
		return fmt.Errorf("upserting entity %s: %w", e.ID, err)
	}
	return nil
}

// GetByID loads an entity's combat snapshot.
//
// Postcondition: returns the entity with default limbs and zones, or
// ErrEntityNotFound.
func (r *EntityRepository) GetByID(ctx context.Context, id string) (*entity.Entity, error) {
	e := entity.New("", entity.KindPlayer)
	var kind, attitude, response, parryHand, attackHand, mercy string
	err := r.db.QueryRow(ctx, `
		SELECT id, name, kind, hp, max_hp, gp, max_gp,
		       str, dex, height, burden, location, respawn_location,
		       attitude, response, parry_hand, attack_hand, parry_unarmed,
		       mercy, focus_zone, ideal_distance
		FROM entities WHERE id = $1`,
		id,
	).Scan(
		&e.ID, &e.Name, &kind, &e.HP, &e.MaxHP, &e.GP, &e.MaxGP,
		&e.Str, &e.Dex, &e.Height, &e.Burden, &e.LocationID, &e.RespawnID,
		&attitude, &response, &parryHand, &attackHand, &e.Tactics.ParryUnarmed,
		&mercy, &e.Tactics.FocusZone, &e.Tactics.IdealDistance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntityNotFound
		}
		return nil, fmt.Errorf("loading entity %s: %w", id, err)
	}
	e.Kind = entity.Kind(kind)
	e.Tactics.Attitude = tactics.Attitude(attitude)
	e.Tactics.Response = tactics.Response(response)
	e.Tactics.Parry = tactics.Hand(parryHand)
	e.Tactics.Attack = tactics.Hand(attackHand)
	e.Tactics.Mercy = tactics.Mercy(mercy)
	return e, nil
}

// Delete removes an entity's snapshot (NPC death).
//
// Postcondition: returns ErrEntityNotFound when no row matched.
func (r *EntityRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM entities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting entity %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntityNotFound
	}
	return nil
}

// ListByLocation returns the snapshots of every entity at a location.
func (r *EntityRepository) ListByLocation(ctx context.Context, locationID string) ([]*entity.Entity, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM entities WHERE location = $1 ORDER BY name ASC`,
		locationID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing entities at %s: %w", locationID, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning entity row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*entity.Entity, 0, len(ids))
	for _, id := range ids {
		e, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
