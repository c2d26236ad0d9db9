package frontends_test

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/jrife/recordkeeper/apps/adoption"
	"github.com/jrife/recordkeeper/records"
	"github.com/jrife/recordkeeper/transport"
	"github.com/jrife/recordkeeper/transport/clients"
	"github.com/jrife/recordkeeper/transport/frontends"
	grpcfrontend "github.com/jrife/recordkeeper/transport/frontends/grpc"
	"github.com/jrife/recordkeeper/transport/frontends/rest"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func listen(t *testing.T, f frontends.Frontend, service transport.Service) string {
	listener, err := net.Listen("tcp", "127.0.0.1:0")

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if err := f.Init(frontends.Options{Services: []transport.Service{service}, Logger: zap.NewNop()}); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	done := make(chan error, 1)

	go func() { done <- f.Listen(listener) }()

	t.Cleanup(func() {
		f.Stop()

		if err := <-done; err != nil {
			t.Errorf("expected Listen to return nil, got %#v", err)
		}
	})

	return listener.Addr().String()
}

// Both frontends must agree on the status of a request
// whose body cannot be decoded into the method's request type.
func TestUndecodableRequest(t *testing.T) {
	service, err := adoption.Open(records.Config{Driver: "memory"})

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	t.Cleanup(func() { service.Close() })

	grpcAddr := listen(t, &grpcfrontend.Frontend{}, service.Transport())
	restAddr := listen(t, &rest.Frontend{}, service.Transport())

	conn, err := clients.Dial(grpcAddr)

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	t.Cleanup(func() { conn.Close() })

	testCases := map[string]struct {
		method  string
		request map[string]interface{}
	}{
		"wrong field type": {
			method:  "CreateAdopter",
			request: map[string]interface{}{"name": 5, "email": "ann@example.com"},
		},
		"wrong reference type": {
			method:  "CreateAdoptionRequest",
			request: map[string]interface{}{"adopter_id": "one", "pet_id": 1},
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := clients.Call[map[string]interface{}](context.Background(), clients.New(conn, adoption.ServiceName), testCase.method, testCase.request)
			s, _ := status.FromError(err)

			if s.Code() != codes.InvalidArgument {
				t.Fatalf("expected %s over gRPC, got %#v", codes.InvalidArgument, err)
			}

			body, err := transport.Codec().Marshal(testCase.request)

			if err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			response, err := http.Post(fmt.Sprintf("http://%s/%s/%s", restAddr, adoption.ServiceName, testCase.method), "application/json", bytes.NewReader(body))

			if err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			response.Body.Close()

			if expected := rest.HTTPStatus(s.Code()); response.StatusCode != expected {
				t.Fatalf("expected status %d over REST, got %d", expected, response.StatusCode)
			}
		})
	}
}
