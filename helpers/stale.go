package helpers

import (
	"context"

	"github.com/rs/zerolog/log"
)

// AvoidStaleElement pauses briefly so the page can re-render after an action.
// It is a heuristic delay and never fails.
func (h *Helpers) AvoidStaleElement(ctx context.Context) {
	i := 0
	err := h.driver.Wait(ctx, func(ctx context.Context) (bool, error) {
		i++
		return i > h.staleIterations, nil
	}, h.staleTimeout)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Int("iterations", i).Msg("stale element wait ended early")
	}
}
