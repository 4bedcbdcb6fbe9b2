package docrepo

import (
	"context"
	"sort"
	"time"

	"stockbook/internal/domain/notes"
	"stockbook/internal/infrastructure/docstore"
)

// NoteRepo stores notes in users/{uid}/notes, keyed by title.
type NoteRepo struct {
	store docstore.Store
}

func NewNoteRepo(store docstore.Store) *NoteRepo {
	return &NoteRepo{store: store}
}

var _ notes.Repository = (*NoteRepo)(nil)

func (r *NoteRepo) Save(ctx context.Context, userID string, note notes.Note) error {
	return r.store.Set(ctx, docstore.Doc(userID, docstore.ColNotes, note.Title), map[string]any{
		"title":     note.Title,
		"notes":     note.Body,
		"timestamp": note.Timestamp,
	}, true)
}

func (r *NoteRepo) UpdateBody(ctx context.Context, userID, title, body string, at time.Time) error {
	return r.store.Update(ctx, docstore.Doc(userID, docstore.ColNotes, title), map[string]any{
		"notes":     body,
		"timestamp": at,
	})
}

func (r *NoteRepo) List(ctx context.Context, userID string) ([]notes.Note, error) {
	docs, err := r.store.GetAll(ctx, docstore.Collection(userID, docstore.ColNotes))
	if err != nil {
		return nil, err
	}
	out := make([]notes.Note, 0, len(docs))
	for _, doc := range docs {
		out = append(out, notes.Note{
			Title:     asString(doc.Data["title"]),
			Body:      asString(doc.Data["notes"]),
			Timestamp: asTime(doc.Data["timestamp"]),
		})
	}
	// Newest first.
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (r *NoteRepo) Delete(ctx context.Context, userID, title string) error {
	return r.store.Delete(ctx, docstore.Doc(userID, docstore.ColNotes, title))
}
