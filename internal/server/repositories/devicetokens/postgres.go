package devicetokens

import (
	"context"
	"fmt"

	"github.com/arshan09/AuthenticationApp/internal/dbx"
	"github.com/arshan09/AuthenticationApp/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, userID, deviceID, token string) error {
	query := `
		INSERT INTO device_tokens (user_id, device_id, token)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, device_id)
		DO UPDATE SET token = EXCLUDED.token, updated_at = now()
	`
	if _, err := r.db.ExecContext(ctx, query, userID, deviceID, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.DeviceToken, error) {
	query := `
		SELECT device_id, token, updated_at
		FROM device_tokens
		WHERE user_id = $1
		ORDER BY updated_at
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.DeviceToken
	for rows.Next() {
		t := models.DeviceToken{UserID: userID}
		if err := rows.Scan(&t.DeviceID, &t.Token, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
