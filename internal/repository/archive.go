package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

// ArchiveRepository keeps finished sessions in SQLite for history queries.
// The Redis store stays the source of truth for live sessions; archived rows
// are read-only.
type ArchiveRepository interface {
	Save(ctx context.Context, session *entity.GameSession) error
	ListByUser(ctx context.Context, userID string) ([]*entity.GameSession, error)
}

type dbArchive struct {
	conn *sql.DB
}

func NewArchiveRepository(conn *sql.DB) ArchiveRepository {
	return &dbArchive{
		conn: conn,
	}
}

func (that *dbArchive) Save(ctx context.Context, session *entity.GameSession) error {
	query := `INSERT OR REPLACE INTO games_archive
		(id, kind, player1_id, player2_id, group_id, status, winner_id, state, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		session.ID,
		string(session.Kind),
		session.Player1ID,
		session.Player2ID,
		session.GroupID,
		session.Status,
		session.WinnerID,
		string(session.State),
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("can't save archived session: %w", err)
	}

	return nil
}

func (that *dbArchive) ListByUser(ctx context.Context, userID string) ([]*entity.GameSession, error) {
	query := `SELECT id, kind, player1_id, player2_id, group_id, status, winner_id, state, created_at, completed_at
		FROM games_archive
		WHERE player1_id = ? OR player2_id = ?
		ORDER BY completed_at DESC`

	rows, err := that.conn.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("can't list archived sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*entity.GameSession

	for rows.Next() {
		var session entity.GameSession
		var kind, state string

		err = rows.Scan(
			&session.ID,
			&kind,
			&session.Player1ID,
			&session.Player2ID,
			&session.GroupID,
			&session.Status,
			&session.WinnerID,
			&state,
			&session.CreatedAt,
			&session.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("can't scan archived session: %w", err)
		}

		session.Kind = entity.Kind(kind)
		session.State = []byte(state)
		session.Turn = entity.NoTurn()

		sessions = append(sessions, &session)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read archived sessions: %w", err)
	}

	return sessions, nil
}
