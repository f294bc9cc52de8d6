package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/tourism-poi-service/internal/domain"
	"github.com/tourism-poi-service/internal/domain/repository"
	"go.uber.org/zap"
)

// IndexCache - кэш пространственного индекса на весь процесс. Явно
// конструируется и внедряется, без глобального состояния. Гарантирует не более
// одной одновременной загрузки: конкурентные вызовы Get присоединяются к
// исходу уже идущей загрузки вместо дублирования запроса.
type IndexCache struct {
	repo   repository.IndexRepository
	logger *zap.Logger

	mu         sync.Mutex
	cached     *domain.POIIndex
	pending    chan struct{}
	generation uint64
}

func NewIndexCache(repo repository.IndexRepository, logger *zap.Logger) *IndexCache {
	return &IndexCache{
		repo:   repo,
		logger: logger,
	}
}

// Get возвращает индекс, загружая его при первом обращении. Неудачная загрузка
// не кэшируется: вызов получает пустой индекс, маркер загрузки сбрасывается, и
// следующий Get повторит попытку.
func (c *IndexCache) Get(ctx context.Context) *domain.POIIndex {
	c.mu.Lock()

	if c.cached != nil {
		index := c.cached
		c.mu.Unlock()
		return index
	}

	if c.pending != nil {
		// Загрузка уже идёт - присоединяемся к её исходу
		pending := c.pending
		c.mu.Unlock()

		select {
		case <-pending:
		case <-ctx.Done():
			return emptyIndex()
		}

		c.mu.Lock()
		index := c.cached
		c.mu.Unlock()
		if index == nil {
			return emptyIndex()
		}
		return index
	}

	pending := make(chan struct{})
	c.pending = pending
	generation := c.generation
	c.mu.Unlock()

	index, err := c.repo.FetchIndex(ctx)

	c.mu.Lock()
	// Clear() мог сбросить состояние, пока загрузка шла - её результат устарел
	if c.generation == generation {
		if err == nil {
			c.cached = index
		}
		if c.pending == pending {
			c.pending = nil
		}
	}
	c.mu.Unlock()
	close(pending)

	if err != nil {
		c.logger.Warn("POI index load failed, returning empty index", zap.Error(err))
		return emptyIndex()
	}
	return index
}

// Clear сбрасывает кэш и маркер идущей загрузки; следующий Get загрузит индекс
// заново, а результат ещё идущей загрузки будет отброшен
func (c *IndexCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
	c.pending = nil
	c.generation++
}

func emptyIndex() *domain.POIIndex {
	return &domain.POIIndex{
		POIs:        []domain.POIIndexEntry{},
		TotalCount:  0,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
