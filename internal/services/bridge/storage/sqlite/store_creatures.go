package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/louisbranch/vttbridge/internal/services/bridge/core/filter"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/systems/dsa5"
	"github.com/louisbranch/vttbridge/internal/services/bridge/host"
)

const creatureColumns = `id, name, creature_type, pack, pack_label, level, species, culture,
		        experience, size, life_points, melee_defense, ranged_defense,
		        has_spells, traits, rarity, description, img`

// PutCreatures upserts creature index entries in one transaction.
func (s *Store) PutCreatures(ctx context.Context, entries []dsa5.CreatureEntry) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO creatures (`+creatureColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(pack, id) DO UPDATE SET
		   name = excluded.name,
		   creature_type = excluded.creature_type,
		   pack_label = excluded.pack_label,
		   level = excluded.level,
		   species = excluded.species,
		   culture = excluded.culture,
		   experience = excluded.experience,
		   size = excluded.size,
		   life_points = excluded.life_points,
		   melee_defense = excluded.melee_defense,
		   ranged_defense = excluded.ranged_defense,
		   has_spells = excluded.has_spells,
		   traits = excluded.traits,
		   rarity = excluded.rarity,
		   description = excluded.description,
		   img = excluded.img`,
	)
	if err != nil {
		return fmt.Errorf("prepare creature upsert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		traits := entry.Traits
		if traits == nil {
			traits = []string{}
		}
		encodedTraits, err := json.Marshal(traits)
		if err != nil {
			return fmt.Errorf("encode traits for %s: %w", entry.ID, err)
		}
		hasSpells := 0
		if entry.HasSpells {
			hasSpells = 1
		}
		if _, err := stmt.ExecContext(
			ctx,
			entry.ID,
			entry.Name,
			entry.Type,
			entry.Pack,
			entry.PackLabel,
			entry.Level,
			entry.Species,
			entry.Culture,
			entry.Experience,
			entry.Size,
			entry.LifePoints,
			entry.MeleeDefense,
			entry.RangedDefense,
			hasSpells,
			string(encodedTraits),
			entry.Rarity,
			entry.Description,
			entry.Img,
		); err != nil {
			return fmt.Errorf("put creature %s: %w", entry.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit creatures: %w", err)
	}
	return nil
}

// SearchCreatures returns index entries matching the query, ordered by name.
func (s *Store) SearchCreatures(ctx context.Context, query host.CreatureQuery) ([]dsa5.CreatureEntry, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	cond, err := filter.Creatures.Parse(query.Filter)
	if err != nil {
		return nil, invalidFilter(query.Filter, err)
	}
	var clauses []string
	var params []any
	if !cond.IsEmpty() {
		clauses = append(clauses, cond.Clause)
		params = append(params, cond.Params...)
	}
	if query.HasSpells != nil {
		clauses = append(clauses, "has_spells = ?")
		if *query.HasSpells {
			params = append(params, 1)
		} else {
			params = append(params, 0)
		}
	}

	sqlQuery := "SELECT " + creatureColumns + " FROM creatures"
	if len(clauses) > 0 {
		sqlQuery += " WHERE " + strings.Join(clauses, " AND ")
	}
	sqlQuery += " ORDER BY name COLLATE NOCASE, pack, id LIMIT ?"
	params = append(params, host.PageSize(query.PageSize))

	rows, err := s.sqlDB.QueryContext(ctx, sqlQuery, params...)
	if err != nil {
		return nil, fmt.Errorf("search creatures: %w", err)
	}
	defer rows.Close()

	var entries []dsa5.CreatureEntry
	for rows.Next() {
		var entry dsa5.CreatureEntry
		var hasSpells int
		var traits string
		if err := rows.Scan(
			&entry.ID,
			&entry.Name,
			&entry.Type,
			&entry.Pack,
			&entry.PackLabel,
			&entry.Level,
			&entry.Species,
			&entry.Culture,
			&entry.Experience,
			&entry.Size,
			&entry.LifePoints,
			&entry.MeleeDefense,
			&entry.RangedDefense,
			&hasSpells,
			&traits,
			&entry.Rarity,
			&entry.Description,
			&entry.Img,
		); err != nil {
			return nil, fmt.Errorf("search creatures: %w", err)
		}
		entry.HasSpells = hasSpells != 0
		if err := json.Unmarshal([]byte(traits), &entry.Traits); err != nil {
			return nil, fmt.Errorf("decode traits for %s: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search creatures: %w", err)
	}
	return entries, nil
}

var _ host.CreatureIndex = (*Store)(nil)
