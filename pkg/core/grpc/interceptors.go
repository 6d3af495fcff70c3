package grpc

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	mdwerror "github.com/msto63/euler/foundation/core/error"
	"github.com/msto63/euler/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var interceptorLogger = logging.New("grpc")

// Context keys for request metadata
type contextKey string

const (
	RequestIDKey    contextKey = "request_id"
	RequestIDHeader string     = "x-request-id"

	// ErrorCodeTrailer carries the euler error code of a failed call
	ErrorCodeTrailer string = "x-error-code"
)

// RecoveryInterceptor recovers from panics in gRPC handlers
func RecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				interceptorLogger.Error("gRPC panic recovered", "panic", r, "method", info.FullMethod, "stack", string(debug.Stack()))
				err = status.Errorf(codes.Internal, "internal server error")
			}
		}()
		return handler(ctx, req)
	}
}

// StreamRecoveryInterceptor recovers from panics in streaming gRPC handlers
func StreamRecoveryInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if r := recover(); r != nil {
				interceptorLogger.Error("gRPC stream panic recovered", "panic", r, "method", info.FullMethod, "stack", string(debug.Stack()))
				err = status.Errorf(codes.Internal, "internal server error")
			}
		}()
		return handler(srv, ss)
	}
}

// LoggingInterceptor logs gRPC requests
func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		fields := []interface{}{
			"method", info.FullMethod,
			"status", status.Code(ToStatus(err).Err()).String(),
			"duration", time.Since(start),
		}
		log := interceptorLogger.WithRequestID(GetRequestID(ctx))
		if err != nil && !mdwerror.GetCode(err).IsDomain() {
			log.Error("gRPC request failed", append(fields, "error", err)...)
		} else {
			log.Info("gRPC request", fields...)
		}

		return resp, err
	}
}

// StreamLoggingInterceptor logs gRPC streaming requests
func StreamLoggingInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()

		err := handler(srv, ss)

		interceptorLogger.WithRequestID(GetRequestID(ss.Context())).Info("gRPC stream request",
			"method", info.FullMethod,
			"status", status.Code(err).String(),
			"duration", time.Since(start),
		)

		return err
	}
}

// RequestIDInterceptor adds a request ID to the context and echoes it in
// the response header
func RequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		requestID := extractRequestID(ctx)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx = context.WithValue(ctx, RequestIDKey, requestID)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID))

		return handler(ctx, req)
	}
}

// ErrorInterceptor converts euler errors into gRPC status errors and sets
// the error code trailer
func ErrorInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		if _, ok := status.FromError(err); ok {
			return resp, err
		}
		_ = grpc.SetTrailer(ctx, metadata.Pairs(ErrorCodeTrailer, mdwerror.GetCode(err).String()))
		return resp, ToStatus(err).Err()
	}
}

// ToStatus maps err to a gRPC status. Errors that already are gRPC status
// errors are returned unchanged.
func ToStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}
	if st, ok := status.FromError(err); ok {
		return st
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return status.New(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.New(codes.Canceled, err.Error())
	}
	return status.New(GRPCCode(mdwerror.GetCode(err)), err.Error())
}

// GRPCCode returns the gRPC status code for an euler error code
func GRPCCode(code mdwerror.Code) codes.Code {
	switch code {
	case mdwerror.CodeInvalidInput, mdwerror.CodeValidationFailed, mdwerror.CodeRequiredField,
		mdwerror.CodeInvalidFormat, mdwerror.CodeValueOutOfRange, mdwerror.CodeInvalidLength,
		mdwerror.CodeInvalidTask:
		return codes.InvalidArgument
	case mdwerror.CodeNumericalInstability:
		return codes.FailedPrecondition
	case mdwerror.CodeNotFound:
		return codes.NotFound
	case mdwerror.CodeTimeout:
		return codes.DeadlineExceeded
	case mdwerror.CodeCanceled:
		return codes.Canceled
	case mdwerror.CodeServiceUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// FromStatus rebuilds an euler error from a gRPC status error. The code is
// taken from the trailer when present.
func FromStatus(err error, trailer metadata.MD) error {
	st, ok := status.FromError(err)
	if !ok || st.Code() == codes.OK {
		return err
	}

	code := mdwerror.CodeUnknown
	if values := trailer.Get(ErrorCodeTrailer); len(values) > 0 && mdwerror.Code(values[0]).IsValid() {
		code = mdwerror.Code(values[0])
	} else {
		switch st.Code() {
		case codes.InvalidArgument:
			code = mdwerror.CodeInvalidInput
		case codes.FailedPrecondition:
			code = mdwerror.CodeNumericalInstability
		case codes.NotFound:
			code = mdwerror.CodeNotFound
		case codes.DeadlineExceeded:
			code = mdwerror.CodeTimeout
		case codes.Canceled:
			code = mdwerror.CodeCanceled
		case codes.Unavailable:
			code = mdwerror.CodeServiceUnavailable
		default:
			code = mdwerror.CodeExternalServiceError
		}
	}
	return mdwerror.New(st.Message()).WithCode(code).WithDetail("grpc_code", st.Code().String())
}

// ClientRequestIDInterceptor propagates request ID to outgoing requests
func ClientRequestIDInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		requestID := GetRequestID(ctx)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx = metadata.AppendToOutgoingContext(ctx, RequestIDHeader, requestID)

		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// ClientErrorInterceptor converts gRPC status errors back into euler errors
func ClientErrorInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		var trailer metadata.MD
		err := invoker(ctx, method, req, reply, cc, append(opts, grpc.Trailer(&trailer))...)
		if err != nil {
			return FromStatus(err, trailer)
		}
		return nil
	}
}

// ClientLoggingInterceptor logs outgoing gRPC requests
func ClientLoggingInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()

		err := invoker(ctx, method, req, reply, cc, opts...)

		interceptorLogger.Debug("gRPC client request",
			"method", method,
			"status", status.Code(err).String(),
			"duration", time.Since(start),
		)

		return err
	}
}

// GetRequestID extracts the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return extractRequestID(ctx)
}

// extractRequestID extracts request ID from incoming metadata
func extractRequestID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}

	values := md.Get(RequestIDHeader)
	if len(values) > 0 {
		return values[0]
	}
	return ""
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}
