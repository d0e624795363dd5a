package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// healthMethodPrefix covers Check and Watch on the standard health service.
const healthMethodPrefix = "/grpc.health.v1.Health/"

// LoggingInterceptor logs the method name, duration, and error (if any) for every
// unary RPC call.
func LoggingInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	duration := time.Since(start)

	if err != nil {
		slog.Error("rpc completed",
			"method", info.FullMethod,
			"duration", duration,
			"code", status.Code(err).String(),
			"error", err,
		)
	} else {
		slog.Debug("rpc completed",
			"method", info.FullMethod,
			"duration", duration,
		)
	}

	return resp, err
}

// RecoveryInterceptor catches panics in downstream handlers, logs the stack
// trace, and returns a codes.Internal error instead of crashing the server.
func RecoveryInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered in gRPC handler",
				"method", info.FullMethod,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()
	return handler(ctx, req)
}

// checkBearer validates an Authorization header value against token.
func checkBearer(header, token string) error {
	if header == "" {
		return errors.New("missing authorization header")
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return errors.New("invalid authorization scheme")
	}
	provided := strings.TrimPrefix(header, "Bearer ")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
		return errors.New("invalid token")
	}
	return nil
}

func authorizeRPC(ctx context.Context, method, token string) error {
	if token == "" || strings.HasPrefix(method, healthMethodPrefix) {
		return nil
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "missing metadata")
	}
	var header string
	if vals := md.Get("authorization"); len(vals) > 0 {
		header = vals[0]
	}
	if err := checkBearer(header, token); err != nil {
		return status.Error(codes.Unauthenticated, err.Error())
	}
	return nil
}

// AuthInterceptor returns a gRPC unary interceptor that checks the
// "authorization" metadata header for a valid Bearer token. When token is
// empty, auth is disabled. The health service is always exempt.
func AuthInterceptor(token string) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if err := authorizeRPC(ctx, info.FullMethod, token); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// StreamAuthInterceptor is the streaming counterpart of AuthInterceptor
// (health Watch and reflection are streaming RPCs).
func StreamAuthInterceptor(token string) grpc.StreamServerInterceptor {
	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		if err := authorizeRPC(ss.Context(), info.FullMethod, token); err != nil {
			return err
		}
		return handler(srv, ss)
	}
}
