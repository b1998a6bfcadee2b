// Package archive keeps the public transcript of every game in sqlite.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"mafia/internal/engine"
)

var ErrNotFound = errors.New("game not archived")

const schema = `
CREATE TABLE IF NOT EXISTS game (
	id          TEXT PRIMARY KEY,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP,
	role_list   TEXT NOT NULL DEFAULT '',
	reason      TEXT NOT NULL DEFAULT '',
	winners     TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS game_event (
	seq     INTEGER PRIMARY KEY AUTOINCREMENT,
	id      TEXT NOT NULL UNIQUE,
	game_id TEXT NOT NULL,
	at      TIMESTAMP NOT NULL,
	turn    INTEGER NOT NULL,
	phase   TEXT NOT NULL,
	kind    TEXT NOT NULL,
	sender  TEXT NOT NULL DEFAULT '',
	title   TEXT NOT NULL DEFAULT '',
	body    TEXT NOT NULL,
	FOREIGN KEY (game_id) REFERENCES game(id)
);
CREATE INDEX IF NOT EXISTS idx_game_event_game ON game_event(game_id, seq);
`

// GameRecord is one archived game.
type GameRecord struct {
	ID         string     `db:"id" json:"id"`
	StartedAt  time.Time  `db:"started_at" json:"started_at"`
	FinishedAt *time.Time `db:"finished_at" json:"finished_at,omitempty"`
	RoleList   string     `db:"role_list" json:"role_list"`
	Reason     string     `db:"reason" json:"reason"`
	Winners    string     `db:"winners" json:"winners"`
}

// EventRecord is one public event of an archived game.
type EventRecord struct {
	Seq    int64     `db:"seq" json:"seq"`
	ID     string    `db:"id" json:"id"`
	GameID string    `db:"game_id" json:"game_id"`
	At     time.Time `db:"at" json:"at"`
	Turn   int       `db:"turn" json:"turn"`
	Phase  string    `db:"phase" json:"phase"`
	Kind   string    `db:"kind" json:"kind"`
	Sender string    `db:"sender" json:"sender,omitempty"`
	Title  string    `db:"title" json:"title,omitempty"`
	Body   string    `db:"body" json:"body"`
}

// Transcript is a game with its events in publish order.
type Transcript struct {
	Game   GameRecord    `json:"game"`
	Events []EventRecord `json:"events"`
}

// Store is the sqlite-backed archive.
type Store struct {
	db *sqlx.DB
}

// Open connects to the sqlite database at dsn and creates the schema.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises
	// writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init archive schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// BeginGame registers a game. Registering the same ID twice is a no-op.
func (s *Store) BeginGame(ctx context.Context, id string, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO game (id, started_at) VALUES (?, ?)`,
		id, startedAt.UTC())
	return err
}

// Append stores one event. Events already stored are ignored.
func (s *Store) Append(ctx context.Context, e engine.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO game_event (id, game_id, at, turn, phase, kind, sender, title, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.GameID, e.Time.UTC(), e.Turn, e.Phase.String(), string(e.Kind), e.From, e.Title, e.Body)
	return err
}

// Finish records the outcome of a game.
func (s *Store) Finish(ctx context.Context, id string, roleList []string, r engine.Result, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE game SET finished_at = ?, role_list = ?, reason = ?, winners = ?
		WHERE id = ?`,
		at.UTC(), strings.Join(roleList, ", "), r.Reason, strings.Join(r.Winners, ", "), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Transcript loads game id and its events.
func (s *Store) Transcript(ctx context.Context, id string) (*Transcript, error) {
	var t Transcript
	err := s.db.GetContext(ctx, &t.Game,
		`SELECT id, started_at, finished_at, role_list, reason, winners FROM game WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	err = s.db.SelectContext(ctx, &t.Events, `
		SELECT seq, id, game_id, at, turn, phase, kind, sender, title, body
		FROM game_event WHERE game_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Games lists the most recently started games, newest first.
func (s *Store) Games(ctx context.Context, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []GameRecord
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, started_at, finished_at, role_list, reason, winners
		FROM game ORDER BY started_at DESC LIMIT ?`, limit)
	return out, err
}
