// Package gridstore persists grid topology in PostgreSQL.
package gridstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/navgrid/internal/pathfind"
)

// ErrMapNotFound is returned when no map has the requested name.
var ErrMapNotFound = errors.New("gridstore: map not found")

// MapInfo describes a stored map.
type MapInfo struct {
	Name      string
	Digest    string
	CellSize  float64
	Origin    pathfind.Position
	Cells     int
	UpdatedAt time.Time
}

// Store reads and writes maps through a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a Store.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// NewWithPool wraps a pool owned by the caller, who must not Close the Store.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close closes the database connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Pool returns the underlying pgx pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Save stores every node of g under info.Name, replacing a map of the same
// name. The map row and its cells are written in one transaction.
func (s *Store) Save(ctx context.Context, info MapInfo, g *pathfind.Grid) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for map %q: %w", info.Name, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "map", info.Name, "error", err)
		}
	}()

	var mapID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO grid_maps (name, digest, cell_size, origin_x, origin_y, origin_z)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (name) DO UPDATE SET
		     digest = EXCLUDED.digest,
		     cell_size = EXCLUDED.cell_size,
		     origin_x = EXCLUDED.origin_x,
		     origin_y = EXCLUDED.origin_y,
		     origin_z = EXCLUDED.origin_z,
		     updated_at = now()
		 RETURNING id`,
		info.Name, info.Digest, info.CellSize, info.Origin.X, info.Origin.Y, info.Origin.Z,
	).Scan(&mapID)
	if err != nil {
		return fmt.Errorf("upserting map %q: %w", info.Name, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM grid_cells WHERE map_id = $1`, mapID); err != nil {
		return fmt.Errorf("deleting old cells of map %q: %w", info.Name, err)
	}

	nodes := g.Nodes()
	rows := make([][]any, 0, len(nodes))
	for _, n := range nodes {
		c, p := n.Cell(), n.Position()
		rows = append(rows, []any{mapID, c.X, c.Y, p.X, p.Y, p.Z, n.Walkable(), n.Terrain().String()})
	}

	if len(rows) > 0 {
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"grid_cells"},
			[]string{"map_id", "x", "y", "pos_x", "pos_y", "pos_z", "walkable", "terrain"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("inserting cells of map %q: %w", info.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction for map %q: %w", info.Name, err)
	}

	slog.Info("map saved", "map", info.Name, "cells", len(rows), "digest", info.Digest)
	return nil
}

// Info returns the stored description of the named map.
func (s *Store) Info(ctx context.Context, name string) (MapInfo, error) {
	info := MapInfo{Name: name}
	err := s.pool.QueryRow(ctx,
		`SELECT m.digest, m.cell_size, m.origin_x, m.origin_y, m.origin_z, m.updated_at,
		        (SELECT count(*) FROM grid_cells c WHERE c.map_id = m.id)
		 FROM grid_maps m WHERE m.name = $1`, name,
	).Scan(&info.Digest, &info.CellSize, &info.Origin.X, &info.Origin.Y, &info.Origin.Z, &info.UpdatedAt, &info.Cells)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return MapInfo{}, fmt.Errorf("%w: %q", ErrMapNotFound, name)
		}
		return MapInfo{}, fmt.Errorf("querying map %q: %w", name, err)
	}
	return info, nil
}

type cellRow struct {
	cell     pathfind.Cell
	pos      pathfind.Position
	walkable bool
	terrain  pathfind.Terrain
}

// Load replaces the contents of g with the named map. g is left untouched
// when loading fails.
func (s *Store) Load(ctx context.Context, name string, g *pathfind.Grid) (MapInfo, error) {
	info, err := s.Info(ctx, name)
	if err != nil {
		return MapInfo{}, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT c.x, c.y, c.pos_x, c.pos_y, c.pos_z, c.walkable, c.terrain
		 FROM grid_cells c JOIN grid_maps m ON m.id = c.map_id
		 WHERE m.name = $1
		 ORDER BY c.y, c.x`, name,
	)
	if err != nil {
		return MapInfo{}, fmt.Errorf("querying cells of map %q: %w", name, err)
	}
	defer rows.Close()

	cells := make([]cellRow, 0, info.Cells)
	for rows.Next() {
		var (
			r       cellRow
			terrain string
		)
		if err := rows.Scan(&r.cell.X, &r.cell.Y, &r.pos.X, &r.pos.Y, &r.pos.Z, &r.walkable, &terrain); err != nil {
			return MapInfo{}, fmt.Errorf("scanning cell of map %q: %w", name, err)
		}
		if r.terrain, err = pathfind.ParseTerrain(terrain); err != nil {
			return MapInfo{}, fmt.Errorf("cell %s of map %q: %w", r.cell, name, err)
		}
		cells = append(cells, r)
	}
	if err := rows.Err(); err != nil {
		return MapInfo{}, fmt.Errorf("iterating cells of map %q: %w", name, err)
	}

	g.Clear()
	for _, r := range cells {
		g.SetWalkable(r.cell, r.pos, r.walkable, r.terrain)
	}
	info.Cells = len(cells)

	slog.Debug("map loaded", "map", name, "cells", len(cells))
	return info, nil
}

// List returns all stored maps ordered by name.
func (s *Store) List(ctx context.Context) ([]MapInfo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT m.name, m.digest, m.cell_size, m.origin_x, m.origin_y, m.origin_z, m.updated_at, count(c.map_id)
		 FROM grid_maps m LEFT JOIN grid_cells c ON c.map_id = m.id
		 GROUP BY m.id
		 ORDER BY m.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying maps: %w", err)
	}
	defer rows.Close()

	var maps []MapInfo
	for rows.Next() {
		var info MapInfo
		if err := rows.Scan(&info.Name, &info.Digest, &info.CellSize,
			&info.Origin.X, &info.Origin.Y, &info.Origin.Z, &info.UpdatedAt, &info.Cells); err != nil {
			return nil, fmt.Errorf("scanning map: %w", err)
		}
		maps = append(maps, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating maps: %w", err)
	}
	return maps, nil
}

// Delete removes the named map and its cells.
func (s *Store) Delete(ctx context.Context, name string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM grid_maps WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("deleting map %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %q", ErrMapNotFound, name)
	}
	return nil
}
