package stream

// Filter filters out elements from the source stream for
// which the filter function returns false. A nil filter
// returns nil, which Pipeline skips.
func Filter[T any](filter func(value T) bool) Processor[T] {
	if filter == nil {
		return nil
	}

	return func(stream Stream[T]) Stream[T] {
		return &filteredStream[T]{stream, filter}
	}
}

type filteredStream[T any] struct {
	Stream[T]
	filter func(value T) bool
}

func (stream *filteredStream[T]) Next() bool {
	hasMore := false

	for hasMore = stream.Stream.Next(); hasMore && !stream.filter(stream.Value()); hasMore = stream.Stream.Next() {
	}

	return hasMore
}
