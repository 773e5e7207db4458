// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/folio/internal/platform/constants"
)

// # Session Repository

// RedisSessionRepository implements SessionRepository using Redis.
//
// Layout:
//   - auth:session:<hash>        JSON sessionRecord, TTL = session expiry
//   - auth:user_sessions:<uid>   set of hashes, TTL refreshed on every sign-in
//   - auth:session_id:<sid>      hash of the session's refresh token, TTL = session expiry
type RedisSessionRepository struct {
	client redis.UniversalClient
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client redis.UniversalClient) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// sessionRecord is the persisted shape of a [Session]. Raw tokens are never stored.
type sessionRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	UserAgent string    `json:"user_agent,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

func userSessionsKey(userID string) string {
	return constants.RedisPrefixUserSessions + userID
}

func sessionIDKey(sessionID string) string {
	return constants.RedisPrefixSessionID + sessionID
}

/*
Create stores the session and indexes it under its user and its id.

Parameters:
  - context: context.Context
  - tokenHash: string
  - session: *Session

Returns:
  - error: Encoding or connectivity failures
*/
func (repository *RedisSessionRepository) Create(context context.Context, tokenHash string, session *Session) error {
	payload, err := json.Marshal(sessionRecord{
		ID:        session.ID,
		UserID:    session.UserID,
		Email:     session.Email,
		UserAgent: session.UserAgent,
		IPAddress: session.IPAddress,
		IssuedAt:  session.IssuedAt,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis_session_create_failed: session already expired")
	}

	// All writes land together or not at all
	_, err = repository.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Set(context, sessionKey(tokenHash), payload, ttl)
		pipe.Set(context, sessionIDKey(session.ID), tokenHash, ttl)
		pipe.SAdd(context, userSessionsKey(session.UserID), tokenHash)
		pipe.Expire(context, userSessionsKey(session.UserID), RefreshTokenTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}

	return nil
}

/*
FindByTokenHash loads a live session.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Stored session
  - error: ErrSessionNotFound or connectivity errors
*/
func (repository *RedisSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.Get(context, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	return decodeSession(payload)
}

/*
FindByID loads a live session through its id index.

A session counts as live only while its token entry exists, so an index entry
left behind by a revoked session resolves to ErrSessionNotFound.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *Session: Stored session
  - string: Hash of the session's refresh token
  - error: ErrSessionNotFound or connectivity errors
*/
func (repository *RedisSessionRepository) FindByID(context context.Context, sessionID string) (*Session, string, error) {
	tokenHash, err := repository.client.Get(context, sessionIDKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, "", ErrSessionNotFound
		}
		return nil, "", fmt.Errorf("redis_session_id_get_failed: %w", err)
	}

	session, err := repository.FindByTokenHash(context, tokenHash)
	if err != nil {
		return nil, "", err
	}
	if session.ID != sessionID {
		return nil, "", ErrSessionNotFound
	}

	return session, tokenHash, nil
}

func decodeSession(payload []byte) (*Session, error) {
	var record sessionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	return &Session{
		ID:        record.ID,
		UserID:    record.UserID,
		Email:     record.Email,
		UserAgent: record.UserAgent,
		IPAddress: record.IPAddress,
		IssuedAt:  record.IssuedAt,
		ExpiresAt: record.ExpiresAt,
	}, nil
}

// sessionIDs returns the ids stored under the given token hashes. Missing or
// undecodable entries are skipped.
func (repository *RedisSessionRepository) sessionIDs(context context.Context, hashes []string) ([]string, error) {
	if len(hashes) == 0 {
		return nil, nil
	}

	keys := make([]string, len(hashes))
	for index, hash := range hashes {
		keys[index] = sessionKey(hash)
	}

	payloads, err := repository.client.MGet(context, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_session_mget_failed: %w", err)
	}

	ids := make([]string, 0, len(payloads))
	for _, payload := range payloads {
		raw, ok := payload.(string)
		if !ok {
			continue
		}
		if session, err := decodeSession([]byte(raw)); err == nil {
			ids = append(ids, session.ID)
		}
	}
	return ids, nil
}

/*
Revoke deletes the session and its index entries.

Parameters:
  - context: context.Context
  - tokenHash: string
  - userID: string

Returns:
  - error: Connectivity failures
*/
func (repository *RedisSessionRepository) Revoke(context context.Context, tokenHash, userID string) error {
	ids, err := repository.sessionIDs(context, []string{tokenHash})
	if err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}

	_, err = repository.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Del(context, sessionKey(tokenHash))
		pipe.SRem(context, userSessionsKey(userID), tokenHash)
		for _, id := range ids {
			pipe.Del(context, sessionIDKey(id))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}
	return nil
}

/*
RevokeOthers deletes every indexed session of the user except keepHash.

Parameters:
  - context: context.Context
  - userID: string
  - keepHash: string

Returns:
  - int: Sessions revoked
  - error: Connectivity failures
*/
func (repository *RedisSessionRepository) RevokeOthers(context context.Context, userID, keepHash string) (int, error) {
	hashes, err := repository.client.SMembers(context, userSessionsKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_session_list_failed: %w", err)
	}

	others := make([]string, 0, len(hashes))
	for _, hash := range hashes {
		if hash != keepHash {
			others = append(others, hash)
		}
	}

	ids, err := repository.sessionIDs(context, others)
	if err != nil {
		return 0, fmt.Errorf("redis_session_revoke_others_failed: %w", err)
	}

	_, err = repository.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		for _, hash := range others {
			pipe.Del(context, sessionKey(hash))
			pipe.SRem(context, userSessionsKey(userID), hash)
		}
		for _, id := range ids {
			pipe.Del(context, sessionIDKey(id))
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis_session_revoke_others_failed: %w", err)
	}

	return len(others), nil
}

// # Verification Token Repository

// RedisVerificationTokenRepository implements VerificationTokenRepository using Redis.
type RedisVerificationTokenRepository struct {
	client redis.UniversalClient
}

// NewVerificationTokenRepository creates a new Redis-backed VerificationTokenRepository.
func NewVerificationTokenRepository(client redis.UniversalClient) *RedisVerificationTokenRepository {
	return &RedisVerificationTokenRepository{client: client}
}

/*
Set stores a verification token with its associated userID and TTL.

Parameters:
  - context: context.Context
  - tokenHash: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (repository *RedisVerificationTokenRepository) Set(context context.Context, tokenHash string, userID string, ttl time.Duration) error {
	if err := repository.client.Set(context, constants.RedisPrefixVerifyToken+tokenHash, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_verify_token_set_failed: %w", err)
	}
	return nil
}

/*
Get retrieves the userID for a given token hash.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - string: UserID
  - error: ErrTokenNotFound or connectivity failures
*/
func (repository *RedisVerificationTokenRepository) Get(context context.Context, tokenHash string) (string, error) {
	userID, err := repository.client.Get(context, constants.RedisPrefixVerifyToken+tokenHash).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("redis_verify_token_get_failed: %w", err)
	}
	return userID, nil
}

/*
Delete removes the token from Redis.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Execution failures
*/
func (repository *RedisVerificationTokenRepository) Delete(context context.Context, tokenHash string) error {
	if err := repository.client.Del(context, constants.RedisPrefixVerifyToken+tokenHash).Err(); err != nil {
		return fmt.Errorf("redis_verify_token_delete_failed: %w", err)
	}
	return nil
}
