// Package store persists named contour sets.
//
// A contour set is one trace result kept for later retrieval: the levels
// that were traced and the resulting polylines, under a caller-chosen
// name and a generated ID. Two backends are available: [MemoryStore] for
// tests and single-process use, and [MongoStore] for server deployments.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mhersche/isoline/pkg/contour"
)

// Set is one persisted trace result.
type Set struct {
	ID        string            `json:"id" bson:"_id"`
	Name      string            `json:"name" bson:"name"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	Levels    []float64         `json:"levels" bson:"levels"`
	Contours  []contour.Contour `json:"contours" bson:"contours"`
}

// NewSet builds a set with a fresh ID and creation timestamp.
func NewSet(name string, levels []float64, contours []contour.Contour) Set {
	return Set{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Levels:    levels,
		Contours:  contours,
	}
}

// Summary is the listing view of a set: everything but the polylines.
type Summary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	Levels       []float64 `json:"levels"`
	ContourCount int       `json:"contour_count"`
}

// Summarize reduces a set to its listing view.
func Summarize(s Set) Summary {
	return Summary{
		ID:           s.ID,
		Name:         s.Name,
		CreatedAt:    s.CreatedAt,
		Levels:       s.Levels,
		ContourCount: len(s.Contours),
	}
}

// Store persists contour sets. Implementations must be safe for
// concurrent use.
type Store interface {
	// Put stores a set, replacing any set with the same ID.
	Put(ctx context.Context, s Set) error

	// Get retrieves a set by ID. Absent IDs return an error with code
	// SET_NOT_FOUND.
	Get(ctx context.Context, id string) (Set, error)

	// List returns summaries of all sets, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a set by ID. Absent IDs return an error with code
	// SET_NOT_FOUND.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
