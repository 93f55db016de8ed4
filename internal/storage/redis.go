package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/progress"
	"github.com/vovakirdan/tui-platformer/internal/settings"
	"github.com/vovakirdan/tui-platformer/internal/unlock"
)

const (
	profilesKey    = "platformer:profiles"
	preferencesKey = "platformer:preferences"
)

func unlocksKey(profileID string) string {
	return fmt.Sprintf("platformer:profile:%s:unlocks", profileID)
}

func conditionsKey(profileID string) string {
	return fmt.Sprintf("platformer:profile:%s:conditions", profileID)
}

// conditionMember encodes a condition as "key|ability".
func conditionMember(c unlock.Condition) string {
	return c.Key + "|" + c.Ability.String()
}

// RedisStore keeps progress in Redis so several servers can share
// profiles. It does not track profile IDs on their own: loading an ID that
// was never saved returns an empty snapshot.
type RedisStore struct {
	client *redis.Client
	newID  func() string
}

var (
	_ progress.Store = (*RedisStore)(nil)
	_ settings.Store = (*RedisStore)(nil)
)

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, opts ...Option) *RedisStore {
	return &RedisStore{client: client, newID: buildOptions(opts).newID}
}

// OpenRedis connects to the server at url (redis://host:port/db).
func OpenRedis(ctx context.Context, url string, opts ...Option) (*RedisStore, error) {
	o, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("storage: invalid redis url: %w", err)
	}
	client := redis.NewClient(o)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: cannot connect to redis: %w", err)
	}
	return NewRedis(client, opts...), nil
}

// Close closes the client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// EnsureProfile returns the ID of the profile called name, creating it if
// it does not exist.
func (r *RedisStore) EnsureProfile(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("storage: profile name is empty")
	}

	id, err := r.client.HGet(ctx, profilesKey, name).Result()
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("storage: cannot query profile: %w", err)
	}

	id = r.newID()
	created, err := r.client.HSetNX(ctx, profilesKey, name, id).Result()
	if err != nil {
		return "", fmt.Errorf("storage: cannot create profile: %w", err)
	}
	if created {
		return id, nil
	}

	// Another server created it first.
	id, err = r.client.HGet(ctx, profilesKey, name).Result()
	if err != nil {
		return "", fmt.Errorf("storage: cannot query profile: %w", err)
	}
	return id, nil
}

// Profiles lists every profile ordered by name.
func (r *RedisStore) Profiles(ctx context.Context) ([]progress.Profile, error) {
	all, err := r.client.HGetAll(ctx, profilesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}

	profiles := make([]progress.Profile, 0, len(all))
	for name, id := range all {
		profiles = append(profiles, progress.Profile{ID: id, Name: name})
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

// Load returns the saved progress of a profile. Sets are unordered, so
// unlocks come back in ability order and conditions sorted by key.
func (r *RedisStore) Load(ctx context.Context, profileID string) (progress.Snapshot, error) {
	var snap progress.Snapshot

	pipe := r.client.Pipeline()
	unlocks := pipe.SMembers(ctx, unlocksKey(profileID))
	conds := pipe.SMembers(ctx, conditionsKey(profileID))
	if _, err := pipe.Exec(ctx); err != nil {
		return snap, fmt.Errorf("storage: cannot load progress: %w", err)
	}

	for _, name := range unlocks.Val() {
		if id, err := ability.ParseID(name); err == nil {
			snap.Unlocked = append(snap.Unlocked, id)
		}
	}
	sort.Slice(snap.Unlocked, func(i, j int) bool { return snap.Unlocked[i] < snap.Unlocked[j] })

	for _, member := range conds.Val() {
		i := strings.LastIndexByte(member, '|')
		if i < 0 {
			continue
		}
		id, err := ability.ParseID(member[i+1:])
		if err != nil {
			continue
		}
		snap.Conditions = append(snap.Conditions, unlock.Condition{Key: member[:i], Ability: id})
	}
	sort.Slice(snap.Conditions, func(i, j int) bool {
		a, b := snap.Conditions[i], snap.Conditions[j]
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		return a.Ability < b.Ability
	})

	return snap, nil
}

// SaveUnlock records that the profile holds id.
func (r *RedisStore) SaveUnlock(ctx context.Context, profileID string, id ability.ID) error {
	if err := r.client.SAdd(ctx, unlocksKey(profileID), id.String()).Err(); err != nil {
		return fmt.Errorf("storage: cannot save unlock: %w", err)
	}
	return nil
}

// DeleteUnlock removes a saved unlock.
func (r *RedisStore) DeleteUnlock(ctx context.Context, profileID string, id ability.ID) error {
	if err := r.client.SRem(ctx, unlocksKey(profileID), id.String()).Err(); err != nil {
		return fmt.Errorf("storage: cannot delete unlock: %w", err)
	}
	return nil
}

// SaveCondition records a satisfied condition.
func (r *RedisStore) SaveCondition(ctx context.Context, profileID string, c unlock.Condition) error {
	if err := r.client.SAdd(ctx, conditionsKey(profileID), conditionMember(c)).Err(); err != nil {
		return fmt.Errorf("storage: cannot save condition: %w", err)
	}
	return nil
}

// Reset deletes all progress of a profile.
func (r *RedisStore) Reset(ctx context.Context, profileID string) error {
	if err := r.client.Del(ctx, unlocksKey(profileID), conditionsKey(profileID)).Err(); err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// GetPreference returns a saved preference value.
func (r *RedisStore) GetPreference(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.HGet(ctx, preferencesKey, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot query preference: %w", err)
	}
	return value, true, nil
}

// SetPreference saves a preference value.
func (r *RedisStore) SetPreference(ctx context.Context, key, value string) error {
	if err := r.client.HSet(ctx, preferencesKey, key, value).Err(); err != nil {
		return fmt.Errorf("storage: cannot save preference: %w", err)
	}
	return nil
}
