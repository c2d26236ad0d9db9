package grpc

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/jrife/recordkeeper/transport"
	"github.com/jrife/recordkeeper/transport/frontends"
	"github.com/jrife/recordkeeper/utils/log"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ frontends.Frontend = (*Frontend)(nil)

// Frontend is an implementation of
// Frontend for the gRPC protocol
type Frontend struct {
	grpcServer *grpc.Server
	logger     *zap.Logger
}

// Init initializes the frontend
func (frontend *Frontend) Init(options frontends.Options) error {
	frontend.logger = options.Logger

	if frontend.logger == nil {
		frontend.logger = zap.L()
	}

	frontend.grpcServer = grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(frontend.logCalls),
	)

	for _, service := range options.Services {
		if len(service.Methods) == 0 {
			return errors.New("service " + service.Name + " has no methods")
		}

		frontend.grpcServer.RegisterService(ServiceDesc(service), service)
	}

	return nil
}

// Listen accepts connections from this listener
func (frontend *Frontend) Listen(listener net.Listener) error {
	frontend.logger.Info("listening", zap.String("address", listener.Addr().String()))

	if err := frontend.grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}

	return nil
}

// Stop stops accepting connections from listeners and causes
// all calls to Listen to return. Calls in progress run to
// completion first.
func (frontend *Frontend) Stop() error {
	frontend.grpcServer.GracefulStop()

	return nil
}

func (frontend *Frontend) logCalls(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	ctx = log.WithFields(ctx, zap.String("method", info.FullMethod))
	logger := log.WithContext(ctx, frontend.logger)
	start := time.Now()

	resp, err := handler(ctx, req)

	if err != nil {
		logger.Info("call failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
	} else {
		logger.Debug("call", zap.Duration("duration", time.Since(start)))
	}

	return resp, err
}

// ServiceDesc describes service for registration with a gRPC server.
// Every method is unary. Errors returned by a method are converted
// with transport.Status.
func ServiceDesc(service transport.Service) *grpc.ServiceDesc {
	desc := &grpc.ServiceDesc{
		ServiceName: service.Name,
		HandlerType: (*interface{})(nil),
		Metadata:    service.Name,
	}

	for _, method := range service.Methods {
		desc.Methods = append(desc.Methods, grpc.MethodDesc{
			MethodName: method.Name,
			Handler:    methodHandler(service.Name, method),
		})
	}

	return desc
}

func methodHandler(serviceName string, method transport.Method) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	call := func(ctx context.Context, request interface{}) (interface{}, error) {
		response, err := method.Call(ctx, request)

		if err != nil {
			return nil, transport.Status(err)
		}

		return response, nil
	}

	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		request := method.NewRequest()

		if err := dec(request); err != nil {
			return nil, status.Error(codes.InvalidArgument, (&transport.DecodeError{Method: method.Name, Err: err}).Error())
		}

		if interceptor == nil {
			return call(ctx, request)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + serviceName + "/" + method.Name,
		}

		return interceptor(ctx, request, info, call)
	}
}
