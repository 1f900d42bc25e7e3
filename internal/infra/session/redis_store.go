package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pwshop/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// RedisCartStore はセッションカートをRedisに保存する。
// キーは cart:<sessionID>、値はJSON。TTLで放置カートを自動で消す。
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// 無ければ空カートを返す
func (s *RedisCartStore) Get(ctx context.Context, sessionID string) (model.Cart, error) {
	raw, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.NewCart(), nil
	}
	if err != nil {
		return model.Cart{}, err
	}

	var cart model.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		//壊れたセッションは空カート扱いにする
		return model.NewCart(), nil
	}
	if cart.Items == nil {
		cart.Items = map[string]model.CartItem{}
	}
	return cart, nil
}

func (s *RedisCartStore) Save(ctx context.Context, sessionID string, cart model.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKey(sessionID), raw, s.ttl).Err()
}

func (s *RedisCartStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKey(sessionID)).Err()
}
