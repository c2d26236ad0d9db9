package transport

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoSuchMethod is returned by Invoke for a method
// the service does not have
var ErrNoSuchMethod = errors.New("no such method")

// Empty is the request of methods that take no arguments
type Empty struct{}

// Method is one unary operation of a service
type Method struct {
	Name string
	// NewRequest returns a pointer to a zero request
	NewRequest func() interface{}
	// Call invokes the operation with a pointer returned by NewRequest
	Call func(ctx context.Context, request interface{}) (interface{}, error)
}

// Unary describes an operation taking Req and returning Resp
func Unary[Req, Resp any](name string, fn func(ctx context.Context, request Req) (Resp, error)) Method {
	return Method{
		Name:       name,
		NewRequest: func() interface{} { return new(Req) },
		Call: func(ctx context.Context, request interface{}) (interface{}, error) {
			req, ok := request.(*Req)

			if !ok {
				return nil, fmt.Errorf("%s: unexpected request type %T", name, request)
			}

			return fn(ctx, *req)
		},
	}
}

// NoRequest describes an operation that takes no arguments.
// Its request is Empty.
func NoRequest[Resp any](name string, fn func(ctx context.Context) (Resp, error)) Method {
	return Unary(name, func(ctx context.Context, _ Empty) (Resp, error) {
		return fn(ctx)
	})
}

// Service is a named set of methods
type Service struct {
	// Name is the fully qualified service name, such as recordkeeper.Care
	Name    string
	Methods []Method
}

// Method looks up a method by name
func (service Service) Method(name string) (Method, bool) {
	for _, method := range service.Methods {
		if method.Name == name {
			return method, true
		}
	}

	return Method{}, false
}

// Invoke decodes body as the request of the named method, calls
// it and encodes its response. An empty body is an empty request.
// Errors returned by the method are returned unchanged.
func (service Service) Invoke(ctx context.Context, name string, body []byte) ([]byte, error) {
	method, ok := service.Method(name)

	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNoSuchMethod, service.Name, name)
	}

	request := method.NewRequest()

	if len(body) > 0 {
		if err := Codec().Unmarshal(body, request); err != nil {
			return nil, &DecodeError{Method: name, Err: err}
		}
	}

	response, err := method.Call(ctx, request)

	if err != nil {
		return nil, err
	}

	return Codec().Marshal(response)
}

// DecodeError is returned when a request body cannot be decoded
type DecodeError struct {
	Method string
	Err    error
}

// Error implements error
func (err *DecodeError) Error() string {
	return fmt.Sprintf("could not decode %s request: %s", err.Method, err.Err)
}

// Unwrap returns the decoding error
func (err *DecodeError) Unwrap() error {
	return err.Err
}
