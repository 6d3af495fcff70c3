package euler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/msto63/euler/internal/euler/kernel"
)

func TestSolveRequestRoundTrip(t *testing.T) {
	req, err := NewSolveRequest(3, map[string]interface{}{"omega": "1.1", "tol": 1e-8})
	if err != nil {
		t.Fatalf("NewSolveRequest() error = %v", err)
	}

	id, params, err := ParseSolveRequest(req)
	if err != nil {
		t.Fatalf("ParseSolveRequest() error = %v", err)
	}
	if id != 3 {
		t.Errorf("task id = %d, want 3", id)
	}
	want := map[string]interface{}{"omega": "1.1", "tol": 1e-8}
	if diff := cmp.Diff(want, params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSolveRequest_TypedSlices(t *testing.T) {
	req, err := NewSolveRequest(5, map[string]interface{}{
		"x_values": []float64{0, 1, 2},
		"labels":   []string{"a"},
	})
	if err != nil {
		t.Fatalf("NewSolveRequest() error = %v", err)
	}
	_, params, err := ParseSolveRequest(req)
	if err != nil {
		t.Fatalf("ParseSolveRequest() error = %v", err)
	}
	want := map[string]interface{}{
		"x_values": []interface{}{0.0, 1.0, 2.0},
		"labels":   []interface{}{"a"},
	}
	if diff := cmp.Diff(want, params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSolveRequest_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		in      map[string]interface{}
		wantID  int
		wantErr bool
	}{
		{"missing task id", map[string]interface{}{}, 0, false},
		{"fractional task id", map[string]interface{}{"task_id": 2.5}, 0, false},
		{"null params", map[string]interface{}{"task_id": 1, "params": nil}, 1, false},
		{"string task id", map[string]interface{}{"task_id": "1"}, 0, true},
		{"list params", map[string]interface{}{"task_id": 1, "params": []interface{}{1}}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := structpb.NewStruct(tt.in)
			if err != nil {
				t.Fatalf("NewStruct() error = %v", err)
			}
			id, _, err := ParseSolveRequest(s)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSolveRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && id != tt.wantID {
				t.Errorf("task id = %d, want %d", id, tt.wantID)
			}
		})
	}
}

func TestTasksRoundTrip(t *testing.T) {
	s, err := TasksToStruct(kernel.Tasks())
	if err != nil {
		t.Fatalf("TasksToStruct() error = %v", err)
	}
	got := TasksFromStruct(s)
	if len(got) != 8 {
		t.Fatalf("TasksFromStruct() = %d tasks, want 8", len(got))
	}

	want := kernel.Tasks()
	for i := range want {
		want[i].Run = nil
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b kernel.Func) bool { return a == nil && b == nil }), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}
