// Package clients calls the services of a remote server over gRPC
package clients

import (
	"context"

	"github.com/jrife/recordkeeper/transport"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Dial creates a connection to target that exchanges
// requests and responses with the transport codec.
// opts are applied after the defaults.
func Dial(target string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	defaults := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(transport.CodecName)),
	}

	return grpc.NewClient(target, append(defaults, opts...)...)
}

// Client calls the methods of one service
type Client struct {
	conn    grpc.ClientConnInterface
	service string
}

// New creates a client for the named service
func New(conn grpc.ClientConnInterface, service string) *Client {
	return &Client{conn: conn, service: service}
}

// Invoke calls method with request and decodes the result into
// response. Errors are status errors.
func (client *Client) Invoke(ctx context.Context, method string, request interface{}, response interface{}) error {
	return client.conn.Invoke(ctx, "/"+client.service+"/"+method, request, response, grpc.CallContentSubtype(transport.CodecName))
}

// Call calls method with request and returns its response
func Call[Resp any](ctx context.Context, client *Client, method string, request interface{}) (Resp, error) {
	var response Resp

	if request == nil {
		request = transport.Empty{}
	}

	if err := client.Invoke(ctx, method, request, &response); err != nil {
		return response, err
	}

	return response, nil
}
