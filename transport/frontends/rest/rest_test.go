package rest_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrife/recordkeeper/apps/adoption"
	"github.com/jrife/recordkeeper/records"
	"github.com/jrife/recordkeeper/transport"
	"github.com/jrife/recordkeeper/transport/frontends"
	"github.com/jrife/recordkeeper/transport/frontends/rest"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
)

func serve(t *testing.T) string {
	service, err := adoption.Open(records.Config{Driver: "memory"})

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	t.Cleanup(func() { service.Close() })

	listener, err := net.Listen("tcp", "127.0.0.1:0")

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	f := &rest.Frontend{}

	if err := f.Init(frontends.Options{Services: []transport.Service{service.Transport()}, Logger: zap.NewNop()}); err != nil {
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

	return fmt.Sprintf("http://%s/%s", listener.Addr(), adoption.ServiceName)
}

func post(t *testing.T, url string, body string) (int, map[string]interface{}) {
	response, err := http.Post(url, "application/json", bytes.NewBufferString(body))

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	var decoded interface{}

	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("expected a JSON body, got %q", data)
	}

	if object, ok := decoded.(map[string]interface{}); ok {
		return response.StatusCode, object
	}

	return response.StatusCode, map[string]interface{}{"list": decoded}
}

func TestFrontend(t *testing.T) {
	base := serve(t)

	testCases := []struct {
		name     string
		method   string
		body     string
		status   int
		expected map[string]interface{}
	}{
		{
			name:     "empty list",
			method:   "ListAdopters",
			status:   http.StatusNotFound,
			expected: map[string]interface{}{"error": "No adopters found."},
		},
		{
			name:     "missing field",
			method:   "CreateAdopter",
			body:     `{"name":"Ann"}`,
			status:   http.StatusBadRequest,
			expected: map[string]interface{}{"error": "Name and email cannot be empty"},
		},
		{
			name:   "create adopter",
			method: "CreateAdopter",
			body:   `{"name":"Ann","email":"ann@example.com"}`,
			status: http.StatusOK,
		},
		{
			name:     "missing reference",
			method:   "CreateAdoptionRequest",
			body:     `{"adopter_id":1,"pet_id":7,"message":"please"}`,
			status:   http.StatusUnprocessableEntity,
			expected: map[string]interface{}{"error": "Pet ID does not exist."},
		},
		{
			name:   "bad json",
			method: "CreatePet",
			body:   `{"name":`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown method",
			method: "AdoptEverything",
			status: http.StatusNotFound,
		},
	}

	// Cases share one store so they run in order
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			status, body := post(t, base+"/"+testCase.method, testCase.body)

			if status != testCase.status {
				t.Fatalf("expected status %d, got %d: %#v", testCase.status, status, body)
			}

			if testCase.expected == nil {
				return
			}

			if diff := cmp.Diff(testCase.expected, body); diff != "" {
				t.Fatal(diff)
			}
		})
	}

	status, body := post(t, base+"/ListAdopters", "")

	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %#v", status, body)
	}

	list, ok := body["list"].([]interface{})

	if !ok || len(list) != 1 {
		t.Fatalf("expected one adopter, got %#v", body)
	}

	if adopter := list[0].(map[string]interface{}); adopter["name"] != "Ann" || adopter["id"] != float64(1) {
		t.Fatalf("unexpected adopter %#v", adopter)
	}
}

func TestUnknownService(t *testing.T) {
	base := serve(t)
	status, _ := post(t, base+"Elsewhere/ListAdopters", "")

	if status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", status)
	}
}

func TestHTTPStatus(t *testing.T) {
	testCases := map[codes.Code]int{
		codes.OK:                 http.StatusOK,
		codes.InvalidArgument:    http.StatusBadRequest,
		codes.FailedPrecondition: http.StatusUnprocessableEntity,
		codes.NotFound:           http.StatusNotFound,
		codes.Unimplemented:      http.StatusNotFound,
		codes.DeadlineExceeded:   http.StatusGatewayTimeout,
		codes.Internal:           http.StatusInternalServerError,
	}

	for code, expected := range testCases {
		t.Run(code.String(), func(t *testing.T) {
			if actual := rest.HTTPStatus(code); actual != expected {
				t.Fatalf("expected %d, got %d", expected, actual)
			}
		})
	}
}

func TestRequestTooLarge(t *testing.T) {
	base := serve(t)
	status, body := post(t, base+"/CreateAdopter", `"`+strings.Repeat("x", rest.MaxRequestSize)+`"`)

	if status != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d: %#v", status, body)
	}

	if _, ok := body["error"]; !ok {
		t.Fatalf("expected an error body, got %#v", body)
	}
}
