package repository

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
)

// seenIDSetKey is a redis set of sentence IDs delivered at least once.
// The set grows monotonically; it is only ever reset implicitly when a
// config update replaces the sentence ID space.
const seenIDSetKey = "sentinote:seen_id_set"

type seenRepository struct {
	client *redis.Client
}

func NewSeenRepository(client *redis.Client) domain.SeenRepository {
	return &seenRepository{
		client: client,
	}
}

func (r *seenRepository) Add(ctx context.Context, sentenceID string) error {
	return r.client.SAdd(ctx, seenIDSetKey, sentenceID).Err()
}

func (r *seenRepository) Members(ctx context.Context) (map[string]struct{}, error) {
	ids, err := r.client.SMembers(ctx, seenIDSetKey).Result()
	if err != nil {
		return nil, err
	}

	members := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		members[id] = struct{}{}
	}

	return members, nil
}
