package stream_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrife/recordkeeper/utils/stream"
	"go.uber.org/zap"
)

func ints(n int) stream.Stream[int] {
	return &randomIntStream{n: n}
}

type randomIntStream struct {
	n   int
	v   int
	err error
}

func (stream *randomIntStream) Next() bool {
	if stream.n > 0 {
		stream.n--
		stream.v = rand.Intn(200) - 100

		return true
	}

	return false
}

func (stream *randomIntStream) Value() int {
	return stream.v
}

func (stream *randomIntStream) Error() error {
	return stream.err
}

func record(record *[]int) stream.Processor[int] {
	*record = []int{}

	return func(s stream.Stream[int]) stream.Stream[int] {
		return &streamRecorder{s, record}
	}
}

type streamRecorder struct {
	stream.Stream[int]
	record *[]int
}

func (stream *streamRecorder) Next() bool {
	if !stream.Stream.Next() {
		return false
	}

	*stream.record = append(*stream.record, stream.Value())

	return true
}

func Filter(ints []int, filter func(a int) bool) []int {
	filteredInts := []int{}

	for _, i := range ints {
		if filter(i) {
			filteredInts = append(filteredInts, i)
		}
	}

	return filteredInts
}

func TestStream(t *testing.T) {
	positive := func(a int) bool { return a > 0 }

	testCases := map[string]struct {
		filter   func(int) bool
		expected func(input []int) []int
	}{
		"filter": {
			filter:   positive,
			expected: func(input []int) []int { return Filter(input, positive) },
		},
		"nil filter": {
			expected: func(input []int) []int { return input },
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			input := []int{}
			output, err := stream.Collect(stream.Pipeline(ints(1000), record(&input), stream.Filter(testCase.filter), stream.Log[int](zap.NewNop())))

			if err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			if diff := cmp.Diff(testCase.expected(input), output); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestCollectEmpty(t *testing.T) {
	output, err := stream.Collect(ints(0))

	if err != nil || output == nil || len(output) != 0 {
		t.Fatalf("expected an empty slice, got %#v, %#v", output, err)
	}
}

func TestCount(t *testing.T) {
	n, err := stream.Count(stream.Pipeline(ints(50), stream.Filter(func(int) bool { return false })))

	if err != nil || n != 0 {
		t.Fatalf("expected 0, nil, got %d, %#v", n, err)
	}

	n, err = stream.Count(ints(50))

	if err != nil || n != 50 {
		t.Fatalf("expected 50, nil, got %d, %#v", n, err)
	}
}

func TestError(t *testing.T) {
	broken := errors.New("broken")

	if _, err := stream.Collect[int](&randomIntStream{n: 3, err: broken}); err != broken {
		t.Fatalf("expected broken, got %#v", err)
	}

	if _, err := stream.Count[int](&randomIntStream{err: broken}); err != broken {
		t.Fatalf("expected broken, got %#v", err)
	}
}
