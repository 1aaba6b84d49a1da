package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// RecordNewGame asynchronously records a new game
func (s *Store) RecordNewGame(record GameRecord) error {
	return s.enqueue("game record", func(tx *sql.Tx) error {
		query := `INSERT INTO games (
			game_id, initial_fen,
			white_player_id, white_type,
			black_player_id, black_type,
			outcome, termination, start_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

		outcome := record.Outcome
		if outcome == "" {
			outcome = "ongoing"
		}

		_, err := tx.Exec(query,
			record.GameID, record.InitialFEN,
			record.WhitePlayerID, record.WhiteType,
			record.BlackPlayerID, record.BlackType,
			outcome, record.Termination, record.StartTimeUTC,
		)
		return err
	})
}

// RecordMove asynchronously records a move
func (s *Store) RecordMove(record MoveRecord) error {
	return s.enqueue("move record", func(tx *sql.Tx) error {
		query := `INSERT INTO moves (
			game_id, move_number, move_uci, move_class, fen_after_move, player_color, move_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.MoveNumber, record.MoveUCI, record.MoveClass,
			record.FENAfterMove, record.PlayerColor, record.MoveTimeUTC,
		)
		return err
	})
}

// RecordOutcome asynchronously marks a game as finished
func (s *Store) RecordOutcome(gameID, outcome, termination string, endTime time.Time) error {
	return s.enqueue("outcome", func(tx *sql.Tx) error {
		query := `UPDATE games SET outcome = ?, termination = ?, end_time_utc = ? WHERE game_id = ?`
		_, err := tx.Exec(query, outcome, termination, endTime, gameID)
		return err
	})
}

// QueryGames retrieves games with optional filtering. An empty or "*"
// argument matches everything.
func (s *Store) QueryGames(gameID, playerID string) ([]GameRecord, error) {
	query := `SELECT
		game_id, initial_fen,
		white_player_id, white_type,
		black_player_id, black_type,
		outcome, termination, start_time_utc, end_time_utc
	FROM games WHERE 1=1`

	var args []any

	if gameID != "" && gameID != "*" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}

	if playerID != "" && playerID != "*" {
		query += " AND (white_player_id = ? OR black_player_id = ?)"
		args = append(args, playerID, playerID)
	}

	query += " ORDER BY start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		err := rows.Scan(
			&g.GameID, &g.InitialFEN,
			&g.WhitePlayerID, &g.WhiteType,
			&g.BlackPlayerID, &g.BlackType,
			&g.Outcome, &g.Termination, &g.StartTimeUTC, &g.EndTimeUTC,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return games, nil
}

// QueryMoves returns the moves of a game in play order
func (s *Store) QueryMoves(gameID string) ([]MoveRecord, error) {
	query := `SELECT
		move_id, game_id, move_number, move_uci, move_class,
		fen_after_move, player_color, move_time_utc
	FROM moves WHERE game_id = ? ORDER BY move_number`

	rows, err := s.db.Query(query, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(
			&m.MoveID, &m.GameID, &m.MoveNumber, &m.MoveUCI, &m.MoveClass,
			&m.FENAfterMove, &m.PlayerColor, &m.MoveTimeUTC,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return moves, nil
}
