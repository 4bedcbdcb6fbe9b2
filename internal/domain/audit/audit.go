// Package audit appends a change trail of posting and deletion actions.
// Payloads are zstd-compressed snapshots of the affected documents.
package audit

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/klauspost/compress/zstd"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/pkg/logger"
)

// Action names the recorded operation.
type Action string

const (
	ActionPost   Action = "post"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Record is one audit trail row. Payload holds the compressed document
// snapshot; use the service's Decode to read it back.
type Record struct {
	ID        string    `json:"docId,omitempty"`
	Action    Action    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entityId"`
	Timestamp time.Time `json:"timestamp"`
	Payload   string    `json:"payload,omitempty"`
}

// Repository appends and lists audit records per user.
type Repository interface {
	Append(ctx context.Context, userID string, rec Record) (Record, error)
	List(ctx context.Context, userID string, limit int) ([]Record, error)
}

// Service writes audit records. Auditing is best-effort: failures are
// logged, never propagated, so an audit outage cannot block postings.
type Service struct {
	repo    Repository
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func NewService(repo Repository) (*Service, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &Service{repo: repo, encoder: enc, decoder: dec}, nil
}

// Log appends a record with the payload compressed. Errors are swallowed.
func (s *Service) Log(ctx context.Context, action Action, entity, entityID string, payload any) {
	uid := appctx.GetUserID(ctx)
	if uid == "" {
		return
	}

	rec := Record{
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Timestamp: time.Now(),
	}
	if payload != nil {
		encoded, err := s.encode(payload)
		if err != nil {
			logger.Warn(ctx, "audit payload encode failed",
				"entity", entity,
				"entity_id", entityID,
				"error", err)
		} else {
			rec.Payload = encoded
		}
	}

	if _, err := s.repo.Append(ctx, uid, rec); err != nil {
		logger.Warn(ctx, "audit append failed",
			"action", action,
			"entity", entity,
			"entity_id", entityID,
			"error", err)
	}
}

// Recent returns the latest audit records, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Record, error) {
	uid := appctx.GetUserID(ctx)
	if uid == "" {
		return nil, apperror.NewUnauthorized("user context required")
	}
	if limit <= 0 {
		limit = 50
	}
	return s.repo.List(ctx, uid, limit)
}

// Decode unpacks a record's payload into out.
func (s *Service) Decode(rec Record, out any) error {
	if rec.Payload == "" {
		return apperror.NewNotFound("audit payload", rec.ID)
	}
	compressed, err := base64.StdEncoding.DecodeString(rec.Payload)
	if err != nil {
		return err
	}
	raw, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *Service) encode(payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	compressed := s.encoder.EncodeAll(raw, nil)
	return base64.StdEncoding.EncodeToString(compressed), nil
}
