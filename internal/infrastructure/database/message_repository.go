package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
	"github.com/RahulRR-10/EchoSQL/internal/viz"
)

// messageRepository is the MySQL implementation of MessageRepository.
// Result rows go into a JSON column; viz.Table's codec keeps the wire
// field order across the round trip.
type messageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new MessageRepository instance.
func NewMessageRepository(db *sql.DB) domain.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	message.CreatedAt = time.Now()

	resultJSON, err := sonic.Marshal(message.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result rows: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO messages
		 (id, session_id, question, query_text, query_type, result_json, summary,
		  title, thought_process, database_type, error_message, execution_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		message.ID, message.SessionID, message.Question, message.Query,
		message.QueryType, string(resultJSON), message.Summary, message.Title,
		message.ThoughtProcess, message.DatabaseType, message.ErrorMessage,
		message.ExecutionMS, message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

const messageColumns = `id, session_id, question, query_text, query_type, result_json,
	summary, title, thought_process, database_type, error_message, execution_ms, created_at`

func scanMessage(row interface{ Scan(...any) error }) (*entity.Message, error) {
	var m entity.Message
	var resultJSON string
	err := row.Scan(&m.ID, &m.SessionID, &m.Question, &m.Query, &m.QueryType,
		&resultJSON, &m.Summary, &m.Title, &m.ThoughtProcess, &m.DatabaseType,
		&m.ErrorMessage, &m.ExecutionMS, &m.CreatedAt)
	if err != nil {
		return nil, err
	}

	if resultJSON != "" {
		var table viz.Table
		if err := sonic.Unmarshal([]byte(resultJSON), &table); err != nil {
			return nil, fmt.Errorf("failed to decode result rows: %w", err)
		}
		m.Result = table
	}
	return &m, nil
}

func (r *messageRepository) GetByID(ctx context.Context, messageID string) (*entity.Message, error) {
	if _, err := uuid.Parse(messageID); err != nil {
		return nil, fmt.Errorf("invalid message id: %w", err)
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE id = ?`, messageID)

	m, err := scanMessage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("Message", messageID)
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return m, nil
}

func (r *messageRepository) ListBySession(ctx context.Context, sessionID string) ([]*entity.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE session_id = ?
		 ORDER BY created_at ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var result []*entity.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *messageRepository) CountBySession(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE session_id = ?`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

func (r *messageRepository) DeleteBySession(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM messages WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session messages: %w", err)
	}
	return nil
}
