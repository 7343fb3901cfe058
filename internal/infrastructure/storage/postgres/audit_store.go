package postgres

import (
	"context"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"quarryledger/internal/domain/audit"
)

// compressionAlgo marks how the details column of an audit row is
// stored.
type compressionAlgo string

const (
	compressionNone compressionAlgo = "none"
	compressionZstd compressionAlgo = "zstd"
)

// AuditStore implements audit.Store on an append-only table. Oversized
// detail payloads are zstd-compressed; typical rows are a short
// sentence and stay plain.
type AuditStore struct {
	tm                *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewAuditStore creates a new audit store.
func NewAuditStore(tm *TxManager) (*AuditStore, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditStore{
		tm:                tm,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Append inserts one audit row. There is no update or delete path.
func (s *AuditStore) Append(ctx context.Context, entry audit.Entry) error {
	details := entry.Details
	var compressed []byte
	algo := compressionNone

	if len(details) > s.compressThreshold {
		compressed = s.encoder.EncodeAll([]byte(details), nil)
		details = ""
		algo = compressionZstd
	}

	sql := `
		INSERT INTO audit_logs (
			id, user_id, user_name, action, entity, record_id,
			details, details_compressed, compression_algo, timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.tm.GetQuerier(ctx).Exec(ctx, sql,
		entry.ID, entry.UserID, entry.UserName, entry.Action, entry.Entity,
		entry.RecordID, details, compressed, algo, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit_logs: %w", err)
	}
	return nil
}

// List returns entries in descending timestamp order, up to limit.
func (s *AuditStore) List(ctx context.Context, limit int) ([]audit.Entry, error) {
	sql := `
		SELECT id, user_id, user_name, action, entity, record_id,
		       details, details_compressed, compression_algo, timestamp
		FROM audit_logs
		ORDER BY timestamp DESC
		LIMIT $1
	`

	rows, err := s.tm.GetQuerier(ctx).Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit_logs: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		var compressed []byte
		var algo compressionAlgo

		err := rows.Scan(
			&e.ID, &e.UserID, &e.UserName, &e.Action, &e.Entity,
			&e.RecordID, &e.Details, &compressed, &algo, &e.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}

		if algo == compressionZstd && len(compressed) > 0 {
			decompressed, err := s.decoder.DecodeAll(compressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress audit details: %w", err)
			}
			e.Details = string(decompressed)
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
