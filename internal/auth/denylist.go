package auth

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

// Denylist records refresh token ids that must no longer be accepted.
type Denylist interface {
	Revoke(ctx context.Context, id string, until time.Time) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}

// NopDenylist never revokes anything.
type NopDenylist struct{}

func (NopDenylist) Revoke(context.Context, string, time.Time) error { return nil }
func (NopDenylist) IsRevoked(context.Context, string) (bool, error) { return false, nil }

// RedisDenylist keeps revoked ids in redis with a TTL equal to the remaining
// lifetime of the token.
type RedisDenylist struct {
	client rueidis.Client
	prefix string
	now    func() time.Time
}

func NewRedisDenylist(client rueidis.Client, prefix string) *RedisDenylist {
	return &RedisDenylist{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (d *RedisDenylist) Revoke(ctx context.Context, id string, until time.Time) error {
	ttl := int64(until.Sub(d.now()).Seconds())
	if ttl <= 0 {
		return nil
	}

	cmd := d.client.B().Set().Key(d.prefix + id).Value("1").ExSeconds(ttl).Build()
	return d.client.Do(ctx, cmd).Error()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, id string) (bool, error) {
	cmd := d.client.B().Exists().Key(d.prefix + id).Build()
	n, err := d.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// NewRedisClient connects to the redis server at addr.
func NewRedisClient(addr string) (rueidis.Client, error) {
	return rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{addr},
	})
}
