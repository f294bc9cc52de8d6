package navigation

import (
	"context"
	"time"

	"github.com/tourism-poi-service/internal/usecase"
	"github.com/tourism-poi-service/internal/worker"
	"go.uber.org/zap"
)

// MovementWorker - кадровый цикл симуляции движения: тикер с настраиваемым
// интервалом дёргает тик симулятора. Каждый тик выполняет ограниченный объём
// работы, поэтому воркер не может заблокировать остановку надолго.
type MovementWorker struct {
	*worker.BaseWorker
	simulator *usecase.NavigationSimulator
	interval  time.Duration
}

func NewMovementWorker(
	simulator *usecase.NavigationSimulator,
	interval time.Duration,
	logger *zap.Logger,
) *MovementWorker {
	return &MovementWorker{
		BaseWorker: worker.NewBaseWorker("movement", logger),
		simulator:  simulator,
		interval:   interval,
	}
}

// Start крутит тики движения до остановки воркера или отмены контекста
func (w *MovementWorker) Start(ctx context.Context) error {
	w.Logger().Info("Movement worker started",
		zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger().Info("Movement worker context cancelled")
			return nil
		case <-w.StopChan():
			w.Logger().Info("Movement worker stopped")
			return nil
		case <-ticker.C:
			w.simulator.Tick()
		}
	}
}
