package rest

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/jrife/recordkeeper/transport"
	"github.com/jrife/recordkeeper/transport/frontends"
	"github.com/jrife/recordkeeper/utils/log"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
)

var _ frontends.Frontend = (*Frontend)(nil)

// MaxRequestSize bounds the size of a request body
const MaxRequestSize = 1 << 20

// Frontend is an implementation of Frontend for JSON over HTTP.
// Every method is served at POST /{service}/{method}.
type Frontend struct {
	server   *http.Server
	services map[string]transport.Service
	logger   *zap.Logger
}

// Init initializes the frontend
func (frontend *Frontend) Init(options frontends.Options) error {
	frontend.logger = options.Logger

	if frontend.logger == nil {
		frontend.logger = zap.L()
	}

	frontend.services = map[string]transport.Service{}

	for _, service := range options.Services {
		frontend.services[service.Name] = service
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /{service}/{method}", frontend.serve)
	frontend.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return nil
}

// Listen accepts connections from this listener
func (frontend *Frontend) Listen(listener net.Listener) error {
	frontend.logger.Info("listening", zap.String("address", listener.Addr().String()))

	if err := frontend.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Stop stops accepting connections from listeners and causes
// all calls to Listen to return
func (frontend *Frontend) Stop() error {
	return frontend.server.Shutdown(context.Background())
}

func (frontend *Frontend) serve(w http.ResponseWriter, r *http.Request) {
	ctx := log.WithFields(r.Context(), zap.String("method", r.URL.Path))
	logger := log.WithContext(ctx, frontend.logger)
	service, ok := frontend.services[r.PathValue("service")]

	if !ok {
		writeError(w, http.StatusNotFound, "no such service")

		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestSize))

	if err != nil {
		var maxBytes *http.MaxBytesError

		if errors.As(err, &maxBytes) {
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		} else {
			logger.Info("could not read request body", zap.Error(err))
			writeError(w, http.StatusBadRequest, err.Error())
		}

		return
	}

	response, err := service.Invoke(ctx, r.PathValue("method"), body)

	if err != nil {
		logger.Info("call failed", zap.Error(err))
		writeError(w, HTTPStatus(transport.Code(err)), err.Error())

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(response)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, message string) {
	body, err := transport.Codec().Marshal(errorBody{Error: message})

	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body)
}

// HTTPStatus maps a status code to an HTTP status
func HTTPStatus(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.FailedPrecondition:
		return http.StatusUnprocessableEntity
	case codes.NotFound, codes.Unimplemented:
		return http.StatusNotFound
	case codes.Canceled:
		return 499
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}
