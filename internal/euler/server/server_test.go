package server

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	pb "github.com/msto63/euler/api/gen/euler"
	"github.com/msto63/euler/pkg/core/cache"
	"github.com/msto63/euler/pkg/core/health"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startServer(t *testing.T, cfg Config) (*Server, *grpc.ClientConn) {
	t.Helper()

	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := srv.StartAsync(); err != nil {
		t.Fatalf("StartAsync() error = %v", err)
	}

	conn, err := grpc.NewClient(srv.Address(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	t.Cleanup(func() {
		conn.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Stop(ctx)
	})
	return srv, conn
}

func solve(t *testing.T, client pb.EulerServiceClient, req map[string]interface{}) map[string]interface{} {
	t.Helper()
	in, err := structpb.NewStruct(req)
	if err != nil {
		t.Fatalf("NewStruct() error = %v", err)
	}
	out, err := client.Solve(context.Background(), in)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	return out.AsMap()
}

func TestSolve(t *testing.T) {
	_, conn := startServer(t, DefaultConfig())
	client := pb.NewEulerServiceClient(conn)

	res := solve(t, client, map[string]interface{}{"task_id": 1})
	if got := res["numerical_root"]; got != 3.0 {
		t.Errorf("numerical_root = %v, want 3", got)
	}
	if got := res["iterations"]; got != 3.0 {
		t.Errorf("iterations = %v, want 3", got)
	}
	if got := res["converged"]; got != true {
		t.Errorf("converged = %v, want true", got)
	}
}

func TestSolve_Params(t *testing.T) {
	_, conn := startServer(t, DefaultConfig())
	client := pb.NewEulerServiceClient(conn)

	res := solve(t, client, map[string]interface{}{
		"task_id": 8,
		"params":  map[string]interface{}{"f_values": "0,1,4,9,16", "a": "0", "h": "1"},
	})
	if got := res["integral_approx"]; got != 21.333333 {
		t.Errorf("integral_approx = %v, want 21.333333", got)
	}
}

func TestSolve_ErrorResults(t *testing.T) {
	_, conn := startServer(t, DefaultConfig())
	client := pb.NewEulerServiceClient(conn)

	tests := []struct {
		name string
		req  map[string]interface{}
	}{
		{"unknown task", map[string]interface{}{"task_id": 9}},
		{"missing task", map[string]interface{}{}},
		{"invalid parameter", map[string]interface{}{
			"task_id": 3,
			"params":  map[string]interface{}{"omega": "abc"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := solve(t, client, tt.req)
			if _, ok := res["error"].(string); !ok || len(res) != 1 {
				t.Errorf("Solve() = %v, want single error entry", res)
			}
		})
	}
}

func TestSolve_MalformedRequest(t *testing.T) {
	_, conn := startServer(t, DefaultConfig())
	client := pb.NewEulerServiceClient(conn)

	in, _ := structpb.NewStruct(map[string]interface{}{"task_id": "one"})
	_, err := client.Solve(context.Background(), in)
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("Solve() code = %v, want InvalidArgument", status.Code(err))
	}
}

func TestListTasks(t *testing.T) {
	_, conn := startServer(t, DefaultConfig())
	client := pb.NewEulerServiceClient(conn)

	out, err := client.ListTasks(context.Background(), &emptypb.Empty{})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	tasks := pb.TasksFromStruct(out)
	if len(tasks) != 8 {
		t.Fatalf("ListTasks() = %d tasks, want 8", len(tasks))
	}
	for i, task := range tasks {
		if task.ID != i+1 {
			t.Errorf("tasks[%d].ID = %d, want %d", i, task.ID, i+1)
		}
	}
}

func TestHealth(t *testing.T) {
	cfg := DefaultConfig()
	c := cache.New(cache.DefaultConfig())
	defer c.Close()
	cfg.Service.Cache = c

	srv, conn := startServer(t, cfg)

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(),
		&healthpb.HealthCheckRequest{Service: pb.ServiceName})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if resp.Status != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("Check() status = %v, want SERVING", resp.Status)
	}

	report := srv.HealthRegistry().Check(context.Background())
	if report.Status != health.StatusHealthy {
		t.Errorf("registry status = %v, want healthy", report.Status)
	}
	if len(report.Checks) != 2 {
		t.Errorf("registry checks = %d, want 2", len(report.Checks))
	}
}
