// Package notes stores free-form user notes keyed by title.
package notes

import (
	"context"
	"time"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/pkg/logger"
)

// Note is a titled text note. The title doubles as the document ID, so
// saving an existing title merges into the same note.
type Note struct {
	Title     string    `json:"title"`
	Body      string    `json:"notes"`
	Timestamp time.Time `json:"timestamp"`
}

// Repository persists notes per user.
type Repository interface {
	Save(ctx context.Context, userID string, note Note) error
	UpdateBody(ctx context.Context, userID, title, body string, at time.Time) error
	List(ctx context.Context, userID string) ([]Note, error)
	Delete(ctx context.Context, userID, title string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) userID(ctx context.Context) (string, error) {
	uid := appctx.GetUserID(ctx)
	if uid == "" {
		return "", apperror.NewUnauthorized("user context required")
	}
	return uid, nil
}

// Save upserts a note under its title.
func (s *Service) Save(ctx context.Context, note Note) error {
	uid, err := s.userID(ctx)
	if err != nil {
		return err
	}
	if note.Title == "" {
		return apperror.NewValidation("note title is required").
			WithDetail("field", "title")
	}
	if note.Timestamp.IsZero() {
		note.Timestamp = time.Now()
	}
	if err := s.repo.Save(ctx, uid, note); err != nil {
		return apperror.NewStoreUnavailable("save note", err)
	}
	logger.Debug(ctx, "note saved", "title", note.Title)
	return nil
}

// UpdateBody replaces the body of an existing note and bumps its timestamp.
func (s *Service) UpdateBody(ctx context.Context, title, body string) error {
	uid, err := s.userID(ctx)
	if err != nil {
		return err
	}
	if title == "" {
		return apperror.NewValidation("note title is required").
			WithDetail("field", "title")
	}
	return s.repo.UpdateBody(ctx, uid, title, body, time.Now())
}

// List returns all notes for the user.
func (s *Service) List(ctx context.Context) ([]Note, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, uid)
}

// Delete removes a note by title.
func (s *Service) Delete(ctx context.Context, title string) error {
	uid, err := s.userID(ctx)
	if err != nil {
		return err
	}
	if title == "" {
		return apperror.NewValidation("note title is required").
			WithDetail("field", "title")
	}
	if err := s.repo.Delete(ctx, uid, title); err != nil {
		return apperror.NewDeletionFailed("note", title, err)
	}
	return nil
}
