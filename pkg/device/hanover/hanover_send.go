package hanover

import (
	"time"

	"github.com/inhies/go-bytesize"
	"go.uber.org/zap"

	"github.com/wlcx/hanover-flipdot/pkg/flipdot"
)

func (h *Hanover) send(s *flipdot.Surface) error {
	start := time.Now()
	sent, err := s.WriteTo(h.sink)
	cost := time.Since(start)

	log := h.logger.With(
		zap.Int64("sent", sent),
		zap.String("size", bytesize.New(float64(sent)).String()),
		zap.String("cost", cost.String()),
	)
	if err != nil {
		log.With(zap.Error(err)).Info("transfer failed")
		return err
	}

	log.Debug("transfer")
	return nil
}
