// Package collection implements a durable ordered map from identifier
// to record, generic over the record type. Each collection lives in its
// own kv region and encodes records with a Codec that declares an upper
// bound on the encoded size of one record.
package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrife/recordkeeper/storage/kv"
	"github.com/jrife/recordkeeper/storage/kv/keys"
	"github.com/jrife/recordkeeper/utils/log"
	"github.com/jrife/recordkeeper/utils/stream"
	"go.uber.org/zap"
)

var (
	// ErrTooLarge is matched by errors returned when a record's encoding
	// exceeds the bound declared by its codec. Nothing is written.
	ErrTooLarge = errors.New("encoded record exceeds its size bound")
	// ErrCorrupt is returned when a stored key is not a valid identifier
	ErrCorrupt = errors.New("stored key is not an identifier")
)

// TooLargeError describes a record whose encoding is
// larger than its codec allows
type TooLargeError struct {
	Collection string
	ID         uint64
	Size       int
	MaxSize    int
}

// Error implements error. ID is omitted when zero since
// zero is never a valid identifier.
func (err *TooLargeError) Error() string {
	if err.ID == 0 {
		return fmt.Sprintf("%s: encoded size %d exceeds bound %d", err.Collection, err.Size, err.MaxSize)
	}

	return fmt.Sprintf("%s %d: encoded size %d exceeds bound %d", err.Collection, err.ID, err.Size, err.MaxSize)
}

// Is lets errors.Is match ErrTooLarge
func (err *TooLargeError) Is(target error) bool {
	return target == ErrTooLarge
}

// Codec is a deterministic serialize/deserialize pair
// plus the upper bound on the size of an encoding
type Codec[R any] interface {
	MaxSize() int
	Marshal(record R) ([]byte, error)
	Unmarshal(data []byte) (R, error)
}

// Marshaler is implemented by record types that
// encode themselves
type Marshaler interface {
	Marshal() ([]byte, error)
}

// Message is the constraint for pointers to self-encoding record types
type Message[R any] interface {
	*R
	Marshaler
	Unmarshal(data []byte) error
}

type messageCodec[R any, PR Message[R]] struct {
	maxSize int
}

// MessageCodec returns a codec for record types whose value
// implements Marshal and whose pointer implements Unmarshal
func MessageCodec[R any, PR Message[R]](maxSize int) Codec[R] {
	return messageCodec[R, PR]{maxSize: maxSize}
}

func (codec messageCodec[R, PR]) MaxSize() int {
	return codec.maxSize
}

func (codec messageCodec[R, PR]) Marshal(record R) ([]byte, error) {
	return PR(&record).Marshal()
}

func (codec messageCodec[R, PR]) Unmarshal(data []byte) (R, error) {
	var record R

	if err := PR(&record).Unmarshal(data); err != nil {
		return record, err
	}

	return record, nil
}

// Collection is an ordered durable map from identifier to R
type Collection[R any] struct {
	name   string
	region kv.Region
	codec  Codec[R]
	logger *zap.Logger
}

// New creates a collection named name stored in region. The
// region must already exist.
func New[R any](name string, region kv.Region, codec Codec[R], logger *zap.Logger) *Collection[R] {
	if logger == nil {
		logger = zap.L()
	}

	return &Collection[R]{
		name:   name,
		region: region,
		codec:  codec,
		logger: logger.With(zap.String("collection", name)),
	}
}

// Name returns the name of the collection
func (collection *Collection[R]) Name() string {
	return collection.name
}

// Encode marshals record and enforces the codec's size bound
func (collection *Collection[R]) Encode(id uint64, record R) ([]byte, error) {
	data, err := collection.codec.Marshal(record)

	if err != nil {
		if id == 0 {
			return nil, fmt.Errorf("could not marshal %s: %w", collection.name, err)
		}

		return nil, fmt.Errorf("could not marshal %s %d: %w", collection.name, id, err)
	}

	if len(data) > collection.codec.MaxSize() {
		return nil, &TooLargeError{
			Collection: collection.name,
			ID:         id,
			Size:       len(data),
			MaxSize:    collection.codec.MaxSize(),
		}
	}

	return data, nil
}

// Fits reports whether record encodes within the codec's size bound
// without naming an identifier, for records not yet assigned one.
func (collection *Collection[R]) Fits(record R) error {
	_, err := collection.Encode(0, record)

	return err
}

// Insert stores record at id, overwriting any record already there.
// Nothing is written if the record's encoding is too large.
func (collection *Collection[R]) Insert(ctx context.Context, id uint64, record R) error {
	logger := log.WithContext(ctx, collection.logger).With(zap.String("operation", "Insert"))
	logger.Debug("start", zap.Uint64("id", id))

	data, err := collection.Encode(id, record)

	if err != nil {
		logger.Error("could not encode record", zap.Error(err))

		return err
	}

	transaction, err := collection.region.Begin(true)

	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	defer transaction.Rollback()

	if err := transaction.Put(keys.Uint64ToKey(id), data); err != nil {
		return fmt.Errorf("could not put %s %d: %w", collection.name, id, err)
	}

	if err := transaction.Commit(); err != nil {
		return fmt.Errorf("could not commit %s %d: %w", collection.name, id, err)
	}

	logger.Debug("return", zap.Int("size", len(data)))

	return nil
}

// Get returns the record stored at id. ok is false if
// there is no such record.
func (collection *Collection[R]) Get(ctx context.Context, id uint64) (record R, ok bool, err error) {
	transaction, err := collection.region.Begin(false)

	if err != nil {
		return record, false, fmt.Errorf("could not begin transaction: %w", err)
	}

	defer transaction.Rollback()

	data, err := transaction.Get(keys.Uint64ToKey(id))

	if err != nil {
		return record, false, fmt.Errorf("could not get %s %d: %w", collection.name, id, err)
	}

	if data == nil {
		return record, false, nil
	}

	record, err = collection.codec.Unmarshal(data)

	if err != nil {
		return record, false, fmt.Errorf("could not unmarshal %s %d: %w", collection.name, id, err)
	}

	return record, true, nil
}

// Contains returns true if a record is stored at id
func (collection *Collection[R]) Contains(ctx context.Context, id uint64) (bool, error) {
	transaction, err := collection.region.Begin(false)

	if err != nil {
		return false, fmt.Errorf("could not begin transaction: %w", err)
	}

	defer transaction.Rollback()

	data, err := transaction.Get(keys.Uint64ToKey(id))

	if err != nil {
		return false, fmt.Errorf("could not get %s %d: %w", collection.name, id, err)
	}

	return data != nil, nil
}

// List returns every record in ascending identifier order
func (collection *Collection[R]) List(ctx context.Context) ([]R, error) {
	return collection.ListWhere(ctx, nil)
}

// ListWhere returns every record for which match returns true
// in ascending identifier order. A nil match matches everything.
func (collection *Collection[R]) ListWhere(ctx context.Context, match func(R) bool) ([]R, error) {
	logger := log.WithContext(ctx, collection.logger).With(zap.String("operation", "List"))

	var records []R

	err := collection.scan(func(scanned stream.Stream[R]) (err error) {
		records, err = stream.Collect(stream.Pipeline(scanned, stream.Filter(match), stream.Log[R](logger)))

		return
	})

	if err != nil {
		logger.Debug("error", zap.Error(err))

		return nil, err
	}

	logger.Debug("return", zap.Int("count", len(records)))

	return records, nil
}

// Len returns the number of records in the collection
func (collection *Collection[R]) Len(ctx context.Context) (int, error) {
	n := 0

	err := collection.scan(func(records stream.Stream[R]) (err error) {
		n, err = stream.Count(records)

		return
	})

	if err != nil {
		return 0, err
	}

	return n, nil
}

// scan streams every record of the collection in ascending
// identifier order to fn within one read transaction
func (collection *Collection[R]) scan(fn func(records stream.Stream[R]) error) error {
	transaction, err := collection.region.Begin(false)

	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	defer transaction.Rollback()

	iter, err := transaction.Keys(keys.All(), kv.SortOrderAsc)

	if err != nil {
		return fmt.Errorf("could not iterate %s: %w", collection.name, err)
	}

	return fn(&recordStream[R]{collection: collection, iter: iter})
}

// recordStream decodes the records under a kv iterator
type recordStream[R any] struct {
	collection *Collection[R]
	iter       kv.Iterator
	record     R
	err        error
}

func (records *recordStream[R]) Next() bool {
	if records.err != nil || !records.iter.Next() {
		return false
	}

	id, ok := keys.KeyToUint64(records.iter.Key())

	if !ok {
		records.err = fmt.Errorf("%w: %s key %x", ErrCorrupt, records.collection.name, records.iter.Key())

		return false
	}

	record, err := records.collection.codec.Unmarshal(records.iter.Value())

	if err != nil {
		records.err = fmt.Errorf("could not unmarshal %s %d: %w", records.collection.name, id, err)

		return false
	}

	records.record = record

	return true
}

func (records *recordStream[R]) Value() R {
	return records.record
}

func (records *recordStream[R]) Error() error {
	if records.err != nil {
		return records.err
	}

	if err := records.iter.Error(); err != nil {
		return fmt.Errorf("could not iterate %s: %w", records.collection.name, err)
	}

	return nil
}
