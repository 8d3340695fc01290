package channel

import (
	"context"
	"fmt"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
)

var _ Channel = (*Dispatcher)(nil)

// Dispatcher 渠道分发器，对外伪装成Channel，作为统一入口
type Dispatcher struct {
	channels map[domain.Channel]Channel
}

func (d *Dispatcher) Send(ctx context.Context, req SendRequest) (domain.Result, error) {
	channel, ok := d.channels[req.Channel]
	if !ok {
		return domain.Result{}, fmt.Errorf("%w: %s", errs.ErrNoAvailableChannel, req.Channel)
	}
	return channel.Send(ctx, req)
}

// Available 至少有一个渠道可用
func (d *Dispatcher) Available() bool {
	for _, ch := range d.channels {
		if ch.Available() {
			return true
		}
	}
	return false
}

// ChannelAvailable 指定渠道是否可用
func (d *Dispatcher) ChannelAvailable(ch domain.Channel) bool {
	channel, ok := d.channels[ch]
	return ok && channel.Available()
}

// NewDispatcher 创建渠道分发器
func NewDispatcher(channels map[domain.Channel]Channel) *Dispatcher {
	return &Dispatcher{
		channels: channels,
	}
}
