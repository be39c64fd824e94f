package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dropfour/connectfour-backend/internal/connectfour"
)

var ErrRecordNotFound = errors.New("archived game not found")

// ArchivedGame is the terminal result of a match. Only finished matches are
// written; live match state never leaves process memory.
type ArchivedGame struct {
	ID         string            `json:"id"`
	Players    []string          `json:"players"`
	Winner     string            `json:"winner,omitempty"`
	Reason     string            `json:"reason"`
	Board      connectfour.Board `json:"board"`
	FinishedAt time.Time         `json:"finishedAt"`
}

type ArchiveRepository interface {
	Save(ctx context.Context, record *ArchivedGame) error
	GetByID(ctx context.Context, id string) (*ArchivedGame, error)
}

type dbArchive struct {
	client *redis.Client
}

func NewArchiveRepository(client *redis.Client) ArchiveRepository {
	return &dbArchive{
		client: client,
	}
}

func (that *dbArchive) Save(ctx context.Context, record *ArchivedGame) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal archived game: %w", err)
	}

	recordKey := "archive:game:" + record.ID
	if err = that.client.Set(ctx, recordKey, recordJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set archived game: %w", err)
	}

	return nil
}

func (that *dbArchive) GetByID(ctx context.Context, id string) (*ArchivedGame, error) {
	recordKey := "archive:game:" + id

	response, err := that.client.Get(ctx, recordKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrRecordNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get archived game by ID: %w", err)
	}

	var record ArchivedGame
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal archived game: %w", err)
	}

	return &record, nil
}
