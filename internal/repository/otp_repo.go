package repository

import (
	"context"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

var ErrOTPUnavailable = errors.New("otp store not configured")

// OTPRepository keeps one-time codes in redis with a TTL. Codes are consumed
// on successful verification.
type OTPRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewOTPRepository(client *redis.Client, ttl time.Duration) *OTPRepository {
	return &OTPRepository{client: client, ttl: ttl}
}

func otpKey(email string) string {
	return "otp:" + email
}

func (r *OTPRepository) Set(ctx context.Context, email, code string) error {
	if r.client == nil {
		return ErrOTPUnavailable
	}
	return r.client.Set(ctx, otpKey(email), code, r.ttl).Err()
}

// Verify checks the stored code and deletes it when it matches, so a code
// can only be used once.
func (r *OTPRepository) Verify(ctx context.Context, email, code string) (bool, error) {
	if r.client == nil {
		return false, ErrOTPUnavailable
	}

	stored, err := r.client.Get(ctx, otpKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if stored != code {
		return false, nil
	}

	r.client.Del(ctx, otpKey(email))
	return true, nil
}
