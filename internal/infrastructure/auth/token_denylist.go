package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist invalidates tokens before their natural expiry. Logout puts
// the token's JTI here; a compromised account gets all of its tokens cut
// off with RevokeUserTokens.
type TokenDenylist interface {
	// Revoke marks a single token's JTI as revoked; ttl should be the
	// token's remaining lifetime
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked checks if a token's JTI has been revoked
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// RevokeUserTokens invalidates every token a user holds by recording
	// a cutoff timestamp; tokens issued before it are rejected
	RevokeUserTokens(ctx context.Context, userID string, ttl time.Duration) error

	// IsUserTokenRevoked checks a token's issue time against the user's
	// cutoff timestamp
	IsUserTokenRevoked(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error)
}

// RedisTokenDenylist implements TokenDenylist using Redis
type RedisTokenDenylist struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenDenylist creates a denylist on an existing Redis client
func NewRedisTokenDenylist(client *redis.Client) *RedisTokenDenylist {
	return &RedisTokenDenylist{
		client:    client,
		keyPrefix: "token:denylist:",
	}
}

func (d *RedisTokenDenylist) jtiKey(jti string) string {
	return d.keyPrefix + "jti:" + jti
}

func (d *RedisTokenDenylist) userKey(userID string) string {
	return d.keyPrefix + "user:" + userID
}

// Revoke marks a token's JTI as revoked
func (d *RedisTokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := d.client.Set(ctx, d.jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked checks if a token's JTI has been revoked
func (d *RedisTokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := d.client.Exists(ctx, d.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token denylist: %w", err)
	}
	return exists > 0, nil
}

// RevokeUserTokens records the current time as the user's token cutoff
func (d *RedisTokenDenylist) RevokeUserTokens(ctx context.Context, userID string, ttl time.Duration) error {
	if err := d.client.Set(ctx, d.userKey(userID), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	return nil
}

// IsUserTokenRevoked checks if the token was issued before the user's cutoff
func (d *RedisTokenDenylist) IsUserTokenRevoked(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	cutoffStr, err := d.client.Get(ctx, d.userKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user token cutoff: %w", err)
	}

	var cutoff int64
	if _, err := fmt.Sscanf(cutoffStr, "%d", &cutoff); err != nil {
		return false, fmt.Errorf("failed to parse token cutoff: %w", err)
	}

	return tokenIssuedAt.Unix() <= cutoff, nil
}

// Close closes the Redis client
func (d *RedisTokenDenylist) Close() error {
	return d.client.Close()
}

var _ TokenDenylist = (*RedisTokenDenylist)(nil)

// InMemoryTokenDenylist is a single-process implementation for tests and
// development without Redis.
type InMemoryTokenDenylist struct {
	mu          sync.RWMutex
	jtiExpiry   map[string]time.Time
	userCutoffs map[string]time.Time
}

// NewInMemoryTokenDenylist creates an empty in-memory denylist
func NewInMemoryTokenDenylist() *InMemoryTokenDenylist {
	return &InMemoryTokenDenylist{
		jtiExpiry:   make(map[string]time.Time),
		userCutoffs: make(map[string]time.Time),
	}
}

// Revoke marks a token's JTI as revoked
func (d *InMemoryTokenDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.jtiExpiry[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked checks if a token's JTI has been revoked and not lapsed
func (d *InMemoryTokenDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	expiry, exists := d.jtiExpiry[jti]
	if !exists {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(d.jtiExpiry, jti)
		return false, nil
	}
	return true, nil
}

// RevokeUserTokens records the current time as the user's token cutoff
func (d *InMemoryTokenDenylist) RevokeUserTokens(_ context.Context, userID string, _ time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.userCutoffs[userID] = time.Now()
	return nil
}

// IsUserTokenRevoked checks if the token was issued before the user's cutoff
func (d *InMemoryTokenDenylist) IsUserTokenRevoked(_ context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	cutoff, exists := d.userCutoffs[userID]
	if !exists {
		return false, nil
	}
	return tokenIssuedAt.UnixNano() <= cutoff.UnixNano(), nil
}

var _ TokenDenylist = (*InMemoryTokenDenylist)(nil)
