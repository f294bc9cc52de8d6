package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourism-poi-service/internal/domain"
	"go.uber.org/zap"
)

func TestIndexCache_Get(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("first call loads, second call hits cache", func(t *testing.T) {
		repo := staticIndex(domain.POIIndexEntry{ID: "1"})
		cache := NewIndexCache(repo, logger)

		first := cache.Get(context.Background())
		second := cache.Get(context.Background())

		assert.Equal(t, 1, first.TotalCount)
		assert.Same(t, first, second)
		assert.Equal(t, 1, repo.Calls())
	})

	t.Run("concurrent calls share a single load", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		repo := &stubIndexRepo{
			fetch: func(ctx context.Context) (*domain.POIIndex, error) {
				close(started)
				<-release
				return &domain.POIIndex{
					POIs:       []domain.POIIndexEntry{{ID: "1"}},
					TotalCount: 1,
				}, nil
			},
		}
		cache := NewIndexCache(repo, logger)

		var wg sync.WaitGroup
		results := make([]*domain.POIIndex, 2)

		wg.Add(1)
		go func() {
			defer wg.Done()
			results[0] = cache.Get(context.Background())
		}()

		// Второй Get стартует, когда загрузка первого уже идёт
		<-started
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[1] = cache.Get(context.Background())
		}()

		time.Sleep(10 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, 1, repo.Calls())
		assert.Equal(t, 1, results[0].TotalCount)
		assert.Equal(t, 1, results[1].TotalCount)
	})

	t.Run("failure is not cached", func(t *testing.T) {
		var fail bool = true
		repo := &stubIndexRepo{
			fetch: func(ctx context.Context) (*domain.POIIndex, error) {
				if fail {
					return nil, fmt.Errorf("host unreachable")
				}
				return &domain.POIIndex{
					POIs:       []domain.POIIndexEntry{{ID: "1"}},
					TotalCount: 1,
				}, nil
			},
		}
		cache := NewIndexCache(repo, logger)

		// Неудачная загрузка отдаёт пустой индекс и не застревает в кэше
		index := cache.Get(context.Background())
		assert.Equal(t, 0, index.TotalCount)
		assert.NotEmpty(t, index.GeneratedAt)

		fail = false
		index = cache.Get(context.Background())
		assert.Equal(t, 1, index.TotalCount)
		assert.Equal(t, 2, repo.Calls())
	})

	t.Run("cancelled waiter gets empty index", func(t *testing.T) {
		release := make(chan struct{})
		repo := &stubIndexRepo{
			fetch: func(ctx context.Context) (*domain.POIIndex, error) {
				<-release
				return &domain.POIIndex{TotalCount: 1}, nil
			},
		}
		cache := NewIndexCache(repo, logger)

		go cache.Get(context.Background())
		time.Sleep(10 * time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		index := cache.Get(ctx)
		assert.Equal(t, 0, index.TotalCount)

		close(release)
	})
}

func TestIndexCache_Clear(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("clear forces a reload", func(t *testing.T) {
		repo := staticIndex(domain.POIIndexEntry{ID: "1"})
		cache := NewIndexCache(repo, logger)

		cache.Get(context.Background())
		cache.Clear()
		cache.Get(context.Background())

		assert.Equal(t, 2, repo.Calls())
	})

	t.Run("clear during in-flight load discards its result", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		repo := &stubIndexRepo{
			fetch: func(ctx context.Context) (*domain.POIIndex, error) {
				select {
				case <-started:
				default:
					close(started)
				}
				<-release
				return &domain.POIIndex{
					POIs:       []domain.POIIndexEntry{{ID: "stale"}},
					TotalCount: 1,
				}, nil
			},
		}
		cache := NewIndexCache(repo, logger)

		done := make(chan *domain.POIIndex)
		go func() {
			done <- cache.Get(context.Background())
		}()

		<-started
		cache.Clear()
		close(release)

		// Сам вызов получает свой результат, но кэш его не запоминает
		index := <-done
		require.Equal(t, 1, index.TotalCount)

		fresh := cache.Get(context.Background())
		assert.Equal(t, 1, fresh.TotalCount)
		assert.Equal(t, 2, repo.Calls())
	})
}
