package server

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	pb "github.com/msto63/euler/api/gen/euler"
	mdwerror "github.com/msto63/euler/foundation/core/error"
)

// Ensure Server implements EulerServiceServer
var _ pb.EulerServiceServer = (*Server)(nil)

// Solve implements EulerServiceServer.Solve
func (s *Server) Solve(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	taskID, params, err := pb.ParseSolveRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if s.config.SolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.SolveTimeout)
		defer cancel()
	}

	result, err := s.service.Solve(ctx, taskID, params)
	if err != nil {
		return nil, err
	}

	out, err := structpb.NewStruct(result)
	if err != nil {
		s.logger.Error("Result encoding failed", "task_id", taskID, "error", err)
		return nil, mdwerror.Wrap(err, "failed to encode result").
			WithCode(mdwerror.CodeInternal).
			WithOperation("server.Solve")
	}
	return out, nil
}

// ListTasks implements EulerServiceServer.ListTasks
func (s *Server) ListTasks(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	tasks, err := s.service.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	out, err := pb.TasksToStruct(tasks)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to encode tasks").
			WithCode(mdwerror.CodeInternal).
			WithOperation("server.ListTasks")
	}
	return out, nil
}
