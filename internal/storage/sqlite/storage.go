package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jcaldw/trickortreth/internal/model"
	"github.com/jcaldw/trickortreth/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface.
// It mirrors the relational players/visits tables the hosted deployment
// keeps in its managed Postgres.
type Storage struct {
	db *sqlx.DB
}

// New opens (or creates) the database at the given path and ensures the
// schema exists. Use ":memory:" for an ephemeral database in tests.
func New(path string) (*Storage, error) {
	db, err := sqlx.Connect("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite handles one writer at a time, and an in-memory database is
	// per-connection; a single pooled connection avoids both problems
	db.SetMaxOpenConns(1)

	s := &Storage{db: db}
	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) createTables() error {
	_, err := s.db.Exec(`create table if not exists players(
		fid            integer not null primary key,
		wallet_address text not null default '',
		display_name   text not null default '',
		avatar_url     text not null default '',
		created_at     datetime not null
	)`)
	if err != nil {
		return fmt.Errorf("creating players table: %w", err)
	}

	_, err = s.db.Exec(`create table if not exists visits(
		id            text not null primary key,
		visitor_fid   integer not null,
		homeowner_fid integer not null,
		message       text not null,
		matched       boolean not null default 0,
		seen          boolean not null default 0,
		created_at    datetime not null
	)`)
	if err != nil {
		return fmt.Errorf("creating visits table: %w", err)
	}

	_, err = s.db.Exec(`create index if not exists idx_visits_unseen
		on visits(homeowner_fid, seen)`)
	if err != nil {
		return fmt.Errorf("creating visits index: %w", err)
	}

	return nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	_, err := s.db.ExecContext(ctx, `insert into players
		(fid, wallet_address, display_name, avatar_url, created_at)
		values (?, ?, ?, ?, ?)
		on conflict(fid) do update set
			wallet_address = excluded.wallet_address,
			display_name   = excluded.display_name,
			avatar_url     = excluded.avatar_url`,
		player.FID, player.WalletAddress, player.DisplayName, player.AvatarURL, player.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving player: %w", err)
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, fid model.FID) (*model.Player, error) {
	player := &model.Player{}
	err := s.db.GetContext(ctx, player, `select * from players where fid = ?`, fid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("fetching player: %w", err)
	}
	return player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	players := []*model.Player{}
	err := s.db.SelectContext(ctx, &players,
		`select * from players order by created_at desc, fid desc`)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	return players, nil
}

// Visit operations

func (s *Storage) SaveVisit(ctx context.Context, visit *model.Visit) error {
	_, err := s.db.ExecContext(ctx, `insert into visits
		(id, visitor_fid, homeowner_fid, message, matched, seen, created_at)
		values (?, ?, ?, ?, ?, ?, ?)
		on conflict(id) do update set
			matched = excluded.matched,
			seen    = excluded.seen`,
		visit.ID, visit.VisitorFID, visit.HomeownerFID, visit.Message,
		visit.Matched, visit.Seen, visit.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving visit: %w", err)
	}
	return nil
}

func (s *Storage) GetVisit(ctx context.Context, id model.VisitID) (*model.Visit, error) {
	visit := &model.Visit{}
	err := s.db.GetContext(ctx, visit, `select * from visits where id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrVisitNotFound
		}
		return nil, fmt.Errorf("fetching visit: %w", err)
	}
	return visit, nil
}

func (s *Storage) ListUnseenVisits(ctx context.Context, homeownerFID model.FID) ([]*model.Visit, error) {
	visits := []*model.Visit{}
	err := s.db.SelectContext(ctx, &visits,
		`select * from visits
		 where homeowner_fid = ? and seen = 0
		 order by created_at desc, id desc`, homeownerFID)
	if err != nil {
		return nil, fmt.Errorf("listing unseen visits: %w", err)
	}
	return visits, nil
}
