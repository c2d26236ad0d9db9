// Package counter implements the persisted identifier counter that
// every collection draws its identifiers from.
package counter

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/jrife/recordkeeper/storage/kv"
	"github.com/jrife/recordkeeper/utils/log"
	"go.uber.org/zap"
)

var (
	// ErrPersist is wrapped by errors returned from Next when the
	// new counter value could not be durably written
	ErrPersist = errors.New("could not persist counter")
	// ErrExhausted is returned by Next once every uint64 has been issued
	ErrExhausted = errors.New("counter exhausted")
	// ErrCorrupt is returned when the stored counter is not eight bytes
	ErrCorrupt = errors.New("stored counter value is corrupt")
)

var counterKey = []byte{0}

// Config configures a Counter
type Config struct {
	Region kv.Region
	Logger *zap.Logger
}

// Counter is a single persisted uint64. It starts at 0
// and only ever moves forward.
type Counter struct {
	region kv.Region
	logger *zap.Logger
}

// New creates a counter stored in config.Region
func New(config Config) *Counter {
	counter := &Counter{region: config.Region, logger: config.Logger}

	if counter.logger == nil {
		counter.logger = zap.L()
	}

	return counter
}

// Current returns the most recently issued value, or 0 if
// Next has never succeeded.
func (counter *Counter) Current(ctx context.Context) (uint64, error) {
	transaction, err := counter.region.Begin(false)

	if err != nil {
		return 0, fmt.Errorf("could not begin transaction: %w", err)
	}

	defer transaction.Rollback()

	return read(transaction)
}

// Next advances the counter by one and returns the new value.
// The new value is committed before Next returns it. If the
// commit fails the error wraps ErrPersist and the value must
// be treated as never issued.
func (counter *Counter) Next(ctx context.Context) (uint64, error) {
	logger := log.WithContext(ctx, counter.logger).With(zap.String("operation", "Next"))

	transaction, err := counter.region.Begin(true)

	if err != nil {
		err = fmt.Errorf("%w: could not begin transaction: %w", ErrPersist, err)
		logger.Error("counter unavailable", zap.Error(err))

		return 0, err
	}

	defer transaction.Rollback()

	current, err := read(transaction)

	if err != nil {
		logger.Error("could not read counter", zap.Error(err))

		return 0, err
	}

	if current == math.MaxUint64 {
		return 0, ErrExhausted
	}

	next := current + 1
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, next)

	if err := transaction.Put(counterKey, value); err != nil {
		err = fmt.Errorf("%w: %w", ErrPersist, err)
		logger.Error("could not write counter", zap.Uint64("next", next), zap.Error(err))

		return 0, err
	}

	if err := transaction.Commit(); err != nil {
		err = fmt.Errorf("%w: %w", ErrPersist, err)
		logger.Error("could not commit counter", zap.Uint64("next", next), zap.Error(err))

		return 0, err
	}

	logger.Debug("issued", zap.Uint64("id", next))

	return next, nil
}

func read(transaction kv.Transaction) (uint64, error) {
	value, err := transaction.Get(counterKey)

	if err != nil {
		return 0, fmt.Errorf("could not read counter: %w", err)
	}

	if value == nil {
		return 0, nil
	}

	if len(value) != 8 {
		return 0, fmt.Errorf("%w: %d bytes", ErrCorrupt, len(value))
	}

	return binary.BigEndian.Uint64(value), nil
}
