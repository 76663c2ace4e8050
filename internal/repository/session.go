package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/apprentice-bingo/internal/apperror"
	"github.com/rocketscienceinc/apprentice-bingo/internal/entity"
)

const sessionKeyPrefix = "bingo:"

type SessionRepository interface {
	Save(ctx context.Context, key string, session *entity.Session) error
	Load(ctx context.Context, key string) (*entity.Session, error)
	Delete(ctx context.Context, key string) error
}

type dbSession struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &dbSession{
		client: client,
	}
}

func (that *dbSession) Save(ctx context.Context, key string, session *entity.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	err = that.client.Set(ctx, sessionKeyPrefix+key, sessionJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) Load(ctx context.Context, key string) (*entity.Session, error) {
	response, err := that.client.Get(ctx, sessionKeyPrefix+key).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return decodeSession([]byte(response))
}

func (that *dbSession) Delete(ctx context.Context, key string) error {
	err := that.client.Del(ctx, sessionKeyPrefix+key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func decodeSession(data []byte) (*entity.Session, error) {
	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}
