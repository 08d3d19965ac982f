// Package quizstore holds generated quizzes between the generate and submit
// requests. Two backends exist: an in-process map for single-instance
// deployments and Redis for anything that needs to survive a restart or run
// behind more than one replica.
package quizstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"secquiz/internal/domain"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "secquiz:quiz:"

// RedisQuizStore implements domain.QuizStore on a Redis client. Quizzes are
// stored as JSON under a TTL so abandoned quizzes expire on their own.
type RedisQuizStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisQuizStore expects a connected *redis.Client.
func NewRedisQuizStore(client *redis.Client, ttl time.Duration) domain.QuizStore {
	return &RedisQuizStore{client: client, ttl: ttl}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (s *RedisQuizStore) Save(ctx context.Context, quiz *domain.Quiz) error {
	payload, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz %s: %w", quiz.ID, err)
	}
	return s.client.Set(ctx, redisKey(quiz.ID), string(payload), s.ttl).Err()
}

// Get translates redis.Nil to domain.ErrQuizStoreMiss.
func (s *RedisQuizStore) Get(ctx context.Context, id string) (*domain.Quiz, error) {
	val, err := s.client.Get(ctx, redisKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrQuizStoreMiss
		}
		return nil, err
	}
	var quiz domain.Quiz
	if err := json.Unmarshal([]byte(val), &quiz); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quiz %s: %w", id, err)
	}
	return &quiz, nil
}

func (s *RedisQuizStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKey(id)).Err()
}

var _ domain.QuizStore = (*RedisQuizStore)(nil)
