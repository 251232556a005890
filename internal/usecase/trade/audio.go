package trade

import (
	"context"
	"fmt"

	"github.com/krwdesk/otc-trade-service/internal/domain"
)

// SetAudioOn flips the order's audio-notification flag. No lifecycle
// semantics attach to it.
func (uc *DefaultTradeUsecase) SetAudioOn(ctx context.Context, orderID string, audioOn bool) error {
	if !domain.ValidOrderID(orderID) {
		return fmt.Errorf("order id %q: %w", orderID, domain.ErrValidation)
	}
	return uc.OrderRepo.SetAudioOn(orderID, audioOn)
}
