package broadcast

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iamasit07/bingo-hub/backend/internal/domain"
)

// FanOut publishes every call to each of its publishers in turn. One
// failing sink never stops the others.
type FanOut struct {
	publishers []Publisher
	log        zerolog.Logger
}

func NewFanOut(log zerolog.Logger, pubs ...Publisher) *FanOut {
	f := &FanOut{log: log}
	for _, p := range pubs {
		if p != nil {
			f.publishers = append(f.publishers, p)
		}
	}
	return f
}

func (f *FanOut) Add(p Publisher) {
	if p != nil {
		f.publishers = append(f.publishers, p)
	}
}

func (f *FanOut) Len() int {
	return len(f.publishers)
}

func (f *FanOut) Publish(ctx context.Context, channel string, call domain.Call) error {
	var errs []error
	for i, p := range f.publishers {
		if err := p.Publish(ctx, channel, call); err != nil {
			f.log.Debug().Err(err).Int("sink", i).Str("channel", channel).Msg("sink publish failed")
			errs = append(errs, fmt.Errorf("sink %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
