package euler

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/msto63/euler/internal/euler/kernel"
)

// Field names of the Struct messages
const (
	FieldTaskID = "task_id"
	FieldParams = "params"
	FieldTasks  = "tasks"
)

// NewSolveRequest builds the Solve request message
func NewSolveRequest(taskID int, params map[string]interface{}) (*structpb.Struct, error) {
	if params == nil {
		params = map[string]interface{}{}
	}
	plainParams := make(map[string]interface{}, len(params))
	for k, v := range params {
		plainParams[k] = plain(v)
	}
	return structpb.NewStruct(map[string]interface{}{
		FieldTaskID: taskID,
		FieldParams: plainParams,
	})
}

// plain rewrites typed slices into []interface{}, the only list type
// structpb accepts
func plain(v interface{}) interface{} {
	switch t := v.(type) {
	case []float64:
		out := make([]interface{}, len(t))
		for i, f := range t {
			out[i] = f
		}
		return out
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case [][]float64:
		out := make([]interface{}, len(t))
		for i, row := range t {
			out[i] = plain(row)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}

// ParseSolveRequest extracts task id and parameters from a Solve request.
// A missing or fractional task id yields 0, which no task uses.
func ParseSolveRequest(req *structpb.Struct) (int, map[string]interface{}, error) {
	fields := req.GetFields()

	taskID := 0
	if v, ok := fields[FieldTaskID]; ok {
		switch k := v.GetKind().(type) {
		case *structpb.Value_NumberValue:
			if k.NumberValue == math.Trunc(k.NumberValue) && math.Abs(k.NumberValue) < math.MaxInt32 {
				taskID = int(k.NumberValue)
			}
		case *structpb.Value_NullValue:
		default:
			return 0, nil, fmt.Errorf("%s must be a number, got %T", FieldTaskID, k)
		}
	}

	params := map[string]interface{}{}
	if v, ok := fields[FieldParams]; ok {
		s := v.GetStructValue()
		if s == nil {
			if _, isNull := v.GetKind().(*structpb.Value_NullValue); !isNull {
				return 0, nil, fmt.Errorf("%s must be an object", FieldParams)
			}
		} else {
			params = s.AsMap()
		}
	}
	return taskID, params, nil
}

// TasksToStruct builds the ListTasks response
func TasksToStruct(tasks []kernel.Task) (*structpb.Struct, error) {
	list := make([]interface{}, len(tasks))
	for i, t := range tasks {
		ps := make([]interface{}, len(t.Params))
		for j, p := range t.Params {
			ps[j] = map[string]interface{}{
				"name":        p.Name,
				"default":     p.Default,
				"description": p.Description,
			}
		}
		list[i] = map[string]interface{}{
			"id":          t.ID,
			"name":        t.Name,
			"description": t.Description,
			"parameters":  ps,
		}
	}
	return structpb.NewStruct(map[string]interface{}{FieldTasks: list})
}

// TasksFromStruct reads a ListTasks response. The returned tasks carry no
// Run function.
func TasksFromStruct(s *structpb.Struct) []kernel.Task {
	values := s.GetFields()[FieldTasks].GetListValue().GetValues()
	tasks := make([]kernel.Task, 0, len(values))
	for _, v := range values {
		f := v.GetStructValue().GetFields()
		t := kernel.Task{
			ID:          int(f["id"].GetNumberValue()),
			Name:        f["name"].GetStringValue(),
			Description: f["description"].GetStringValue(),
		}
		for _, pv := range f["parameters"].GetListValue().GetValues() {
			pf := pv.GetStructValue().GetFields()
			t.Params = append(t.Params, kernel.Param{
				Name:        pf["name"].GetStringValue(),
				Default:     pf["default"].GetStringValue(),
				Description: pf["description"].GetStringValue(),
			})
		}
		tasks = append(tasks, t)
	}
	return tasks
}
