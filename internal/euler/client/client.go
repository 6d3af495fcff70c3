// Package client talks to a remote euler server. Client implements
// service.Solver, so callers switch between local and remote solving
// without further changes.
package client

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"

	pb "github.com/msto63/euler/api/gen/euler"
	mdwerror "github.com/msto63/euler/foundation/core/error"
	"github.com/msto63/euler/internal/euler/kernel"
	"github.com/msto63/euler/internal/euler/params"
	"github.com/msto63/euler/internal/euler/service"
	coreGrpc "github.com/msto63/euler/pkg/core/grpc"
	"github.com/msto63/euler/pkg/core/logging"
)

// Ensure Client implements service.Solver
var _ service.Solver = (*Client)(nil)

// Client is a gRPC client of the euler server
type Client struct {
	conn   *grpc.ClientConn
	euler  pb.EulerServiceClient
	logger *logging.Logger
	target string
}

// New creates a client for the server at target. The connection is
// established on the first call.
func New(target string, opts ...grpc.DialOption) (*Client, error) {
	conn, err := coreGrpc.Dial(coreGrpc.DefaultClientConfig(target), opts...)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to connect to euler").
			WithCode(mdwerror.CodeServiceUnavailable).
			WithOperation("client.New").
			WithDetail("target", target)
	}
	return &Client{
		conn:   conn,
		euler:  pb.NewEulerServiceClient(conn),
		logger: logging.New("euler-client"),
		target: target,
	}, nil
}

// Solve implements service.Solver
func (c *Client) Solve(ctx context.Context, taskID int, p params.Set) (map[string]interface{}, error) {
	req, err := pb.NewSolveRequest(taskID, p)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to encode parameters").
			WithCode(mdwerror.CodeInvalidFormat).
			WithOperation("client.Solve")
	}

	resp, err := c.euler.Solve(ctx, req)
	if err != nil {
		c.logger.Debug("Remote solve failed", "target", c.target, "task_id", taskID, "error", err)
		return nil, err
	}
	return resp.AsMap(), nil
}

// ListTasks implements service.Solver. The returned tasks carry no kernel.
func (c *Client) ListTasks(ctx context.Context) ([]kernel.Task, error) {
	resp, err := c.euler.ListTasks(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, err
	}
	return pb.TasksFromStruct(resp), nil
}

// Target returns the server address
func (c *Client) Target() string {
	return c.target
}

// Close releases the connection
func (c *Client) Close() error {
	return c.conn.Close()
}
