// Package euler holds the client and server bindings of the
// euler.v1.EulerService described in api/proto/euler.proto. Messages are
// google.protobuf.Struct values, so no generated message types exist.
package euler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service and method names
const (
	ServiceName                           = "euler.v1.EulerService"
	EulerService_Solve_FullMethodName     = "/euler.v1.EulerService/Solve"
	EulerService_ListTasks_FullMethodName = "/euler.v1.EulerService/ListTasks"
)

// EulerServiceServer is the server API of EulerService
type EulerServiceServer interface {
	Solve(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTasks(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// UnimplementedEulerServiceServer can be embedded for forward compatibility
type UnimplementedEulerServiceServer struct{}

// Solve returns Unimplemented
func (UnimplementedEulerServiceServer) Solve(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Solve not implemented")
}

// ListTasks returns Unimplemented
func (UnimplementedEulerServiceServer) ListTasks(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTasks not implemented")
}

// RegisterEulerServiceServer registers srv with s
func RegisterEulerServiceServer(s grpc.ServiceRegistrar, srv EulerServiceServer) {
	s.RegisterService(&EulerService_ServiceDesc, srv)
}

func solveHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EulerServiceServer).Solve(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: EulerService_Solve_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EulerServiceServer).Solve(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listTasksHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EulerServiceServer).ListTasks(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: EulerService_ListTasks_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EulerServiceServer).ListTasks(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// EulerService_ServiceDesc is the grpc.ServiceDesc of EulerService
var EulerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EulerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Solve", Handler: solveHandler},
		{MethodName: "ListTasks", Handler: listTasksHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "euler.proto",
}

// EulerServiceClient is the client API of EulerService
type EulerServiceClient interface {
	Solve(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListTasks(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type eulerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewEulerServiceClient creates a client on cc
func NewEulerServiceClient(cc grpc.ClientConnInterface) EulerServiceClient {
	return &eulerServiceClient{cc: cc}
}

func (c *eulerServiceClient) Solve(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, EulerService_Solve_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eulerServiceClient) ListTasks(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, EulerService_ListTasks_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
