package Iservices

import (
	"context"

	"collection-connector/internal/domain/dto"
)

type IChannelService interface {
	// HandleInbound processes one webhook delivery end to end: parse,
	// buffer, await the debounce window, and when this caller wins the burst
	// run the agent turn and reply. A waiting outcome is side-effect free.
	HandleInbound(ctx context.Context, payload *dto.InboundMessage) error
}
