package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ParvGautam/Whiteboard/internal/store"
)

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
	id            TEXT PRIMARY KEY,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	last_activity DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS drawing_commands (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	room_id     TEXT NOT NULL,
	type        TEXT NOT NULL,
	payload     BLOB,
	recorded_at DATETIME NOT NULL,
	FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_drawing_commands_room_id ON drawing_commands(room_id);
`

// New creates a new SQLite store at dbPath and applies the schema.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// FindOrCreateRoom returns the room with the given ID, creating it if missing.
func (s *SQLiteStore) FindOrCreateRoom(ctx context.Context, roomID string) (*store.Room, bool, int, error) {
	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return nil, false, 0, err
	}

	created := false
	if room == nil {
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO rooms (id) VALUES (?)`, roomID,
		); err != nil {
			return nil, false, 0, fmt.Errorf("insert room: %w", err)
		}
		created = true
		if room, err = s.GetRoom(ctx, roomID); err != nil {
			return nil, false, 0, err
		}
	}

	count, err := s.CommandCount(ctx, roomID)
	if err != nil {
		return nil, false, 0, err
	}
	return room, created, count, nil
}

// GetRoom retrieves a room by ID. Returns nil, nil when absent.
func (s *SQLiteStore) GetRoom(ctx context.Context, roomID string) (*store.Room, error) {
	var room store.Room
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, last_activity FROM rooms WHERE id = ?`, roomID,
	).Scan(&room.ID, &room.CreatedAt, &room.LastActivity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query room: %w", err)
	}
	return &room, nil
}

// TouchRoom bumps the room's last-activity timestamp.
func (s *SQLiteStore) TouchRoom(ctx context.Context, roomID string) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE rooms SET last_activity = CURRENT_TIMESTAMP WHERE id = ?`, roomID,
	); err != nil {
		return fmt.Errorf("touch room: %w", err)
	}
	return nil
}

// AppendCommand appends one command to its room's log. Ordering is carried
// by the autoincrement id, so append order equals fetch order.
func (s *SQLiteStore) AppendCommand(ctx context.Context, cmd *store.DrawingCommand) error {
	payload, err := encodePayload(cmd)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO drawing_commands (room_id, type, payload, recorded_at) VALUES (?, ?, ?, ?)`,
		cmd.RoomID, string(cmd.Type), payload, cmd.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert command: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	cmd.ID = id

	return s.TouchRoom(ctx, cmd.RoomID)
}

// FetchCommands returns a room's full log in append order.
func (s *SQLiteStore) FetchCommands(ctx context.Context, roomID string) ([]store.DrawingCommand, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, payload, recorded_at FROM drawing_commands WHERE room_id = ? ORDER BY id ASC`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("query commands: %w", err)
	}
	defer rows.Close()

	var commands []store.DrawingCommand
	for rows.Next() {
		var (
			cmd     store.DrawingCommand
			typ     string
			payload []byte
		)
		if err := rows.Scan(&cmd.ID, &typ, &payload, &cmd.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan command: %w", err)
		}
		cmd.RoomID = roomID
		cmd.Type = store.CommandType(typ)
		if err := decodePayload(&cmd, payload); err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	return commands, rows.Err()
}

// CommandCount returns the length of a room's log.
func (s *SQLiteStore) CommandCount(ctx context.Context, roomID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM drawing_commands WHERE room_id = ?`, roomID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count commands: %w", err)
	}
	return count, nil
}

// Stats returns aggregate room/command counters.
func (s *SQLiteStore) Stats(ctx context.Context) (*store.Stats, error) {
	var stats store.Stats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&stats.Rooms); err != nil {
		return nil, fmt.Errorf("count rooms: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM drawing_commands`).Scan(&stats.Commands); err != nil {
		return nil, fmt.Errorf("count commands: %w", err)
	}
	return &stats, nil
}

func encodePayload(cmd *store.DrawingCommand) ([]byte, error) {
	switch cmd.Type {
	case store.CommandStrokeStart:
		data, err := json.Marshal(cmd.Stroke)
		if err != nil {
			return nil, fmt.Errorf("encode stroke: %w", err)
		}
		return data, nil
	case store.CommandStrokeMove:
		data, err := json.Marshal(cmd.Point)
		if err != nil {
			return nil, fmt.Errorf("encode point: %w", err)
		}
		return data, nil
	default:
		return nil, nil
	}
}

func decodePayload(cmd *store.DrawingCommand, payload []byte) error {
	switch cmd.Type {
	case store.CommandStrokeStart:
		cmd.Stroke = &store.Stroke{}
		if err := json.Unmarshal(payload, cmd.Stroke); err != nil {
			return fmt.Errorf("decode stroke: %w", err)
		}
	case store.CommandStrokeMove:
		cmd.Point = &store.Point{}
		if err := json.Unmarshal(payload, cmd.Point); err != nil {
			return fmt.Errorf("decode point: %w", err)
		}
	}
	return nil
}
