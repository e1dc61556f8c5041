package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

const keyPrefix = "ledger:account:"

// AccountCache is a read-through redis cache in front of an account repository.
// Single and multi-code lookups are cached; locked reads, lists and balance updates go to the store.
// A balance update evicts the touched codes after its transaction commits; any other staleness
// is bounded by the TTL.
// Postings read balances through FindAccountsByCodesForUpdate and never see cached values.
type AccountCache struct {
	next   portsrepo.AccountRepositoryFacade
	client *redis.Client
	ttl    time.Duration
}

// NewAccountCache wraps next with a cache whose entries expire after ttl.
func NewAccountCache(next portsrepo.AccountRepositoryFacade, client *redis.Client, ttl time.Duration) *AccountCache {
	return &AccountCache{next: next, client: client, ttl: ttl}
}

var _ portsrepo.AccountRepositoryFacade = (*AccountCache)(nil)

func accountKey(workplaceID, code string) string {
	return keyPrefix + workplaceID + ":" + code
}

func (c *AccountCache) FindAccountByCode(ctx context.Context, workplaceID string, code string) (*domain.Account, error) {
	key := accountKey(workplaceID, code)
	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var acc domain.Account
		if jsonErr := json.Unmarshal(payload, &acc); jsonErr == nil {
			return &acc, nil
		}
		c.warn(ctx, "Dropping undecodable cached account", key, nil)
	case !errors.Is(err, redis.Nil):
		c.warn(ctx, "Account cache read failed", key, err)
	}

	acc, err := c.next.FindAccountByCode(ctx, workplaceID, code)
	if err != nil {
		return nil, err
	}
	c.store(ctx, *acc)
	return acc, nil
}

func (c *AccountCache) FindAccountsByCodes(ctx context.Context, workplaceID string, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = accountKey(workplaceID, code)
	}

	out := make(map[string]domain.Account, len(codes))
	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.warn(ctx, "Account cache read failed", keys[0], err)
		values = make([]any, len(keys))
	}

	var missing []string
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			missing = append(missing, codes[i])
			continue
		}
		var acc domain.Account
		if err := json.Unmarshal([]byte(s), &acc); err != nil {
			missing = append(missing, codes[i])
			continue
		}
		out[codes[i]] = acc
	}
	if len(missing) == 0 {
		return out, nil
	}

	found, err := c.next.FindAccountsByCodes(ctx, workplaceID, missing)
	if err != nil {
		return nil, err
	}
	for _, code := range missing {
		if acc, ok := found[code]; ok {
			out[code] = acc
			c.store(ctx, acc)
		}
	}
	return out, nil
}

func (c *AccountCache) FindAccountsBySubType(ctx context.Context, workplaceID string, subType string) ([]domain.Account, error) {
	return c.next.FindAccountsBySubType(ctx, workplaceID, subType)
}

func (c *AccountCache) ListAccounts(ctx context.Context, workplaceID string, accountType *domain.AccountType) ([]domain.Account, error) {
	return c.next.ListAccounts(ctx, workplaceID, accountType)
}

func (c *AccountCache) FindAccountsByCodesForUpdate(ctx context.Context, workplaceID string, codes []string) (map[string]domain.Account, error) {
	return c.next.FindAccountsByCodesForUpdate(ctx, workplaceID, codes)
}

// UpdateAccountBalancesInTx evicts the touched codes once the change is visible to other readers:
// after commit inside a transaction started through WrapTransactions, immediately otherwise.
func (c *AccountCache) UpdateAccountBalancesInTx(ctx context.Context, workplaceID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if err := c.next.UpdateAccountBalancesInTx(ctx, workplaceID, balanceChanges, userID, now); err != nil {
		return err
	}
	keys := make([]string, 0, len(balanceChanges))
	for code := range balanceChanges {
		keys = append(keys, accountKey(workplaceID, code))
	}
	if pending, ok := ctx.Value(pendingKey{}).(*pendingEvictions); ok {
		pending.add(keys)
		return nil
	}
	c.Evict(ctx, keys...)
	return nil
}

type pendingKey struct{}

// pendingEvictions collects the keys a transaction touched until it commits.
type pendingEvictions struct {
	mu   sync.Mutex
	keys []string
}

func (p *pendingEvictions) add(keys []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, keys...)
}

type evictingTxManager struct {
	next  portsrepo.TransactionManager
	cache *AccountCache
}

// WrapTransactions returns a TransactionManager that defers the cache evictions of balance
// updates made inside a transaction until next has committed it. Rolled back transactions
// evict nothing.
func (c *AccountCache) WrapTransactions(next portsrepo.TransactionManager) portsrepo.TransactionManager {
	return &evictingTxManager{next: next, cache: c}
}

func (m *evictingTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(pendingKey{}).(*pendingEvictions); ok {
		return m.next.WithinTransaction(ctx, fn)
	}
	pending := &pendingEvictions{}
	if err := m.next.WithinTransaction(context.WithValue(ctx, pendingKey{}, pending), fn); err != nil {
		return err
	}
	m.cache.Evict(ctx, pending.keys...)
	return nil
}

// Evict removes cached accounts. Failures are logged; entries then expire with the TTL.
func (c *AccountCache) Evict(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.warn(ctx, "Account cache eviction failed", keys[0], err)
	}
}

func (c *AccountCache) store(ctx context.Context, acc domain.Account) {
	key := accountKey(acc.WorkplaceID, acc.Code)
	payload, err := json.Marshal(acc)
	if err != nil {
		c.warn(ctx, "Failed to encode account for cache", key, err)
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.warn(ctx, "Account cache write failed", key, err)
	}
}

func (c *AccountCache) warn(ctx context.Context, msg, key string, err error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{slog.String("key", key)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	logger.Warn(msg, attrs...)
}
