package kernel

// Param documents one accepted parameter of a task
type Param struct {
	Name        string `json:"name" yaml:"name"`
	Default     string `json:"default,omitempty" yaml:"default,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// Task binds a task id to its kernel
type Task struct {
	ID          int     `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Params      []Param `json:"parameters" yaml:"parameters"`
	Run         Func    `json:"-" yaml:"-"`
}

var (
	tolParam     = Param{Name: "tol", Default: "1e-6", Description: "convergence tolerance"}
	maxIterParam = Param{Name: "max_iter", Default: "100", Description: "iteration cap"}
)

var tasks = []Task{
	{
		ID:          1,
		Name:        "graphical-root",
		Description: "Newton refinement of a graphically estimated root of x^4-10x^2+9",
		Params: []Param{
			{Name: "x0", Default: "3.1", Description: "root read off the graph"},
			tolParam, maxIterParam,
		},
		Run: GraphicalRoot,
	},
	{
		ID:          2,
		Name:        "root-comparison",
		Description: "Bisection vs. Newton-Raphson on x^3-6x^2+11x-6",
		Params: []Param{
			{Name: "a", Default: "0", Description: "lower bracket end"},
			{Name: "b", Default: "3", Description: "upper bracket end"},
			{Name: "x0", Default: "2", Description: "Newton start value"},
			tolParam, maxIterParam,
		},
		Run: CompareRootFinders,
	},
	{
		ID:          3,
		Name:        "relaxation",
		Description: "Relaxation method for x+y+z=10, x+z=6, y+z=8",
		Params: []Param{
			{Name: "omega", Default: "0.8", Description: "relaxation weight in (0, 2)"},
			tolParam, maxIterParam,
		},
		Run: Relaxation,
	},
	{
		ID:          4,
		Name:        "power-method",
		Description: "Dominant eigenvalue by power iteration",
		Params: []Param{
			{Name: "a11..a33", Description: "3x3 matrix entries, or a11,a12,a21,a22 for 2x2"},
			tolParam, maxIterParam,
		},
		Run: PowerMethod,
	},
	{
		ID:          5,
		Name:        "exponential-fit",
		Description: "Least-squares fit of y = a*exp(bx)",
		Params: []Param{
			{Name: "x_values", Default: "0,1,2,3", Description: "comma separated x data"},
			{Name: "y_values", Default: "1,2.71828,7.38906,20.0855", Description: "comma separated positive y data"},
		},
		Run: ExponentialFit,
	},
	{
		ID:          6,
		Name:        "cubic-spline",
		Description: "Natural cubic spline interpolation",
		Params: []Param{
			{Name: "x_values", Default: "0,0.5,1.0,1.5", Description: "comma separated, strictly increasing x data"},
			{Name: "y_values", Default: "0,0.25,0.75,2.25", Description: "comma separated y data"},
		},
		Run: CubicSpline,
	},
	{
		ID:          7,
		Name:        "picard",
		Description: "Picard approximations of dy/dx = x + y, y(0) = 1",
		Params: []Param{
			{Name: "x", Default: "0.2", Description: "evaluation point of the 4th approximation"},
		},
		Run: Picard,
	},
	{
		ID:          8,
		Name:        "simpson",
		Description: "Composite Simpson's 1/3 rule",
		Params: []Param{
			{Name: "f_values", Description: "odd number of samples; without it sin(x) on [0, π] is integrated"},
			{Name: "a", Default: "0", Description: "first sample position"},
			{Name: "h", Default: "1", Description: "sample spacing"},
			{Name: "n", Default: "10", Description: "even subinterval count of the sin(x) integral"},
		},
		Run: SimpsonsRule,
	},
}

// Tasks returns the task catalogue ordered by id
func Tasks() []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// Lookup returns the task with the given id
func Lookup(id int) (Task, bool) {
	if id < 1 || id > len(tasks) {
		return Task{}, false
	}
	return tasks[id-1], true
}
