package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/monitor"
	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
	"github.com/KevinKickass/SunSpecBridge/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// NewSessionRecord builds the row for a verified session.
func NewSessionRecord(info types.SessionInfo, dep sunspec.Deployment, inv types.Inventory) (SessionRecord, error) {
	id, err := uuid.Parse(info.ID)
	if err != nil {
		return SessionRecord{}, fmt.Errorf("invalid session id %q: %w", info.ID, err)
	}
	started := time.Now().UTC()
	if info.OpenedAt != nil {
		started = info.OpenedAt.UTC()
	}
	return SessionRecord{
		ID:         id,
		SerialID:   inv.SerialID,
		Address:    info.Address,
		Driver:     info.Driver,
		Phase:      string(dep.Phase),
		Family:     string(dep.Family),
		HasAddon:   dep.HasAddon,
		Obfuscated: dep.Obfuscated,
		Inventory:  inv,
		StartedAt:  started,
	}, nil
}

// SaveSession inserts or refreshes a session row.
func (p *PostgresClient) SaveSession(ctx context.Context, rec SessionRecord) error {
	invJSON, err := json.Marshal(rec.Inventory)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO sessions (id, serial_id, address, driver, phase, family, has_addon, obfuscated, inventory, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id)
		DO UPDATE SET
			inventory = EXCLUDED.inventory,
			serial_id = EXCLUDED.serial_id
	`, rec.ID, rec.SerialID, rec.Address, rec.Driver, rec.Phase, rec.Family,
		rec.HasAddon, rec.Obfuscated, invJSON, rec.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// EndSession stamps ended_at on a session row.
func (p *PostgresClient) EndSession(ctx context.Context, id uuid.UUID, at time.Time) error {
	result, err := p.pool.Exec(ctx, `UPDATE sessions SET ended_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListSessions returns the most recent sessions first.
func (p *PostgresClient) ListSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, serial_id, address, driver, phase, family, has_addon, obfuscated, inventory, started_at, ended_at
		FROM sessions
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]SessionRecord, 0)
	for rows.Next() {
		var rec SessionRecord
		var invJSON []byte
		if err := rows.Scan(&rec.ID, &rec.SerialID, &rec.Address, &rec.Driver, &rec.Phase, &rec.Family,
			&rec.HasAddon, &rec.Obfuscated, &invJSON, &rec.StartedAt, &rec.EndedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if err := json.Unmarshal(invJSON, &rec.Inventory); err != nil {
			return nil, fmt.Errorf("failed to unmarshal inventory: %w", err)
		}
		sessions = append(sessions, rec)
	}
	return sessions, rows.Err()
}

// ReadingRecords flattens a snapshot. Samples that failed to read are skipped
// and "Not Implemented" values are stored with a NULL value.
func ReadingRecords(snap monitor.Snapshot) ([]ReadingRecord, error) {
	sessionID, err := uuid.Parse(snap.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session id %q: %w", snap.SessionID, err)
	}

	records := make([]ReadingRecord, 0, len(snap.Samples))
	for _, s := range snap.Samples {
		if s.Error != "" {
			continue
		}
		rec := ReadingRecord{
			SessionID: sessionID,
			Node:      s.Node,
			Register:  s.Register,
			Port:      s.Port,
			Text:      s.Text,
			ReadAt:    snap.ReadAt,
		}
		if s.Value.IsNumeric() && !s.Value.IsNotImplemented() {
			v := s.Value.Float()
			rec.Value = &v
		}
		records = append(records, rec)
	}
	return records, nil
}

// SaveReadings bulk inserts records with COPY.
func (p *PostgresClient) SaveReadings(ctx context.Context, records []ReadingRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	n, err := p.pool.CopyFrom(ctx,
		pgx.Identifier{"readings"},
		[]string{"session_id", "node", "register", "port", "value", "text", "read_at"},
		pgx.CopyFromSlice(len(records), func(i int) ([]interface{}, error) {
			r := records[i]
			return []interface{}{r.SessionID, r.Node, r.Register, r.Port, r.Value, r.Text, r.ReadAt}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy readings: %w", err)
	}
	return n, nil
}

// Publish stores a poll snapshot. It makes the client a monitor.Sink.
func (p *PostgresClient) Publish(ctx context.Context, snap monitor.Snapshot) error {
	records, err := ReadingRecords(snap)
	if err != nil {
		return err
	}
	_, err = p.SaveReadings(ctx, records)
	return err
}

// ReadingHistory returns readings of register newer than since, newest first.
func (p *PostgresClient) ReadingHistory(ctx context.Context, register string, since time.Time, limit int) ([]ReadingRecord, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT session_id, node, register, port, value, text, read_at
		FROM readings
		WHERE register = $1 AND read_at >= $2
		ORDER BY read_at DESC
		LIMIT $3
	`, register, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	records := make([]ReadingRecord, 0)
	for rows.Next() {
		var r ReadingRecord
		if err := rows.Scan(&r.SessionID, &r.Node, &r.Register, &r.Port, &r.Value, &r.Text, &r.ReadAt); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
