package cli

import (
	"context"
	"fmt"
	"net"

	"github.com/jrife/recordkeeper/apps"
	"github.com/jrife/recordkeeper/config"
	"github.com/jrife/recordkeeper/records"
	"github.com/jrife/recordkeeper/transport"
	"github.com/jrife/recordkeeper/transport/frontends"
	"github.com/jrife/recordkeeper/transport/frontends/grpc"
	"github.com/jrife/recordkeeper/transport/frontends/rest"
	"github.com/jrife/recordkeeper/utils/tracing"
	"go.uber.org/zap"
)

type listener struct {
	frontend frontends.Frontend
	listener net.Listener
}

// Server serves one application on every configured frontend
type Server struct {
	instance  apps.Instance
	listeners []listener
	shutdown  tracing.Shutdown
	logger    *zap.Logger
	errors    chan error
}

// Start opens the configured application and starts listening.
// Nothing is left open if any frontend fails to start.
func Start(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Server, error) {
	shutdown, err := tracing.Setup(ctx, "recordkeeper-"+cfg.App, cfg.TracingEndpoint)

	if err != nil {
		return nil, err
	}

	server := &Server{shutdown: shutdown, logger: logger.With(zap.String("app", cfg.App))}

	if err := server.start(cfg, logger); err != nil {
		server.close()

		return nil, err
	}

	server.errors = make(chan error, len(server.listeners))

	for _, l := range server.listeners {
		go func(l listener) { server.errors <- l.frontend.Listen(l.listener) }(l)
	}

	return server, nil
}

func (server *Server) start(cfg config.Config, logger *zap.Logger) error {
	instance, err := apps.Open(cfg.App, records.Config{Driver: cfg.Driver, Options: cfg.PluginOptions(), Logger: logger})

	if err != nil {
		return err
	}

	server.instance = instance
	options := frontends.Options{Services: []transport.Service{instance.Transport()}, Logger: server.logger}

	if err := server.listen(&grpc.Frontend{}, cfg.Listen, options); err != nil {
		return err
	}

	if cfg.RESTListen == "" {
		return nil
	}

	return server.listen(&rest.Frontend{}, cfg.RESTListen, options)
}

func (server *Server) listen(frontend frontends.Frontend, address string, options frontends.Options) error {
	if err := frontend.Init(options); err != nil {
		return err
	}

	l, err := net.Listen("tcp", address)

	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", address, err)
	}

	server.listeners = append(server.listeners, listener{frontend: frontend, listener: l})

	return nil
}

// Addr is the address of the gRPC frontend
func (server *Server) Addr() net.Addr {
	return server.listeners[0].listener.Addr()
}

// RESTAddr is the address of the REST frontend or nil
// if it is disabled
func (server *Server) RESTAddr() net.Addr {
	if len(server.listeners) < 2 {
		return nil
	}

	return server.listeners[1].listener.Addr()
}

// Wait blocks until ctx is done or a frontend fails, then
// stops every frontend and closes the application
func (server *Server) Wait(ctx context.Context) error {
	var err error

	select {
	case <-ctx.Done():
		server.logger.Info("stopping")
	case err = <-server.errors:
		server.logger.Error("frontend failed", zap.Error(err))
	}

	for _, l := range server.listeners {
		if stopErr := l.frontend.Stop(); stopErr != nil {
			server.logger.Warn("could not stop frontend", zap.Error(stopErr))
		}
	}

	server.close()

	return err
}

func (server *Server) close() {
	for _, l := range server.listeners {
		l.listener.Close()
	}

	if server.instance != nil {
		if err := server.instance.Close(); err != nil {
			server.logger.Warn("could not close store", zap.Error(err))
		}
	}

	if err := server.shutdown(context.Background()); err != nil {
		server.logger.Warn("could not flush traces", zap.Error(err))
	}
}
