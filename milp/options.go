//go:build linux || darwin

package milp

// SolveOption configures the engine before a problem is loaded into it.
type SolveOption func(*solveConfig)

type solveConfig struct {
	output      *bool
	timeLimit   *float64
	mipAbsGap   *float64
	mipRelGap   *float64
	threads     *int
	presolve    *string
	extraBool   map[string]bool
	extraInt    map[string]int
	extraFloat  map[string]float64
	extraString map[string]string
}

func defaultSolveConfig() *solveConfig {
	return &solveConfig{
		extraBool:   make(map[string]bool),
		extraInt:    make(map[string]int),
		extraFloat:  make(map[string]float64),
		extraString: make(map[string]string),
	}
}

func (c *solveConfig) apply(e *Engine) error {
	if c.output != nil {
		if err := e.SetBoolOption("output_flag", *c.output); err != nil {
			return err
		}
	}
	if c.timeLimit != nil {
		if err := e.SetFloatOption("time_limit", *c.timeLimit); err != nil {
			return err
		}
	}
	if c.mipAbsGap != nil {
		if err := e.SetFloatOption("mip_abs_gap", *c.mipAbsGap); err != nil {
			return err
		}
	}
	if c.mipRelGap != nil {
		if err := e.SetFloatOption("mip_rel_gap", *c.mipRelGap); err != nil {
			return err
		}
	}
	if c.threads != nil {
		if err := e.SetIntOption("threads", *c.threads); err != nil {
			return err
		}
	}
	if c.presolve != nil {
		if err := e.SetStringOption("presolve", *c.presolve); err != nil {
			return err
		}
	}
	for k, v := range c.extraBool {
		if err := e.SetBoolOption(k, v); err != nil {
			return err
		}
	}
	for k, v := range c.extraInt {
		if err := e.SetIntOption(k, v); err != nil {
			return err
		}
	}
	for k, v := range c.extraFloat {
		if err := e.SetFloatOption(k, v); err != nil {
			return err
		}
	}
	for k, v := range c.extraString {
		if err := e.SetStringOption(k, v); err != nil {
			return err
		}
	}
	return nil
}

// WithOutput enables or disables engine log output.
func WithOutput(enabled bool) SolveOption {
	return func(c *solveConfig) {
		c.output = &enabled
	}
}

// WithTimeLimit sets the time limit in seconds.
func WithTimeLimit(seconds float64) SolveOption {
	return func(c *solveConfig) {
		c.timeLimit = &seconds
	}
}

// WithMIPAbsGap sets the absolute MIP gap tolerance.
func WithMIPAbsGap(gap float64) SolveOption {
	return func(c *solveConfig) {
		c.mipAbsGap = &gap
	}
}

// WithMIPRelGap sets the relative MIP gap tolerance.
func WithMIPRelGap(gap float64) SolveOption {
	return func(c *solveConfig) {
		c.mipRelGap = &gap
	}
}

// WithThreads sets the number of threads the engine may use.
func WithThreads(n int) SolveOption {
	return func(c *solveConfig) {
		c.threads = &n
	}
}

// WithPresolve sets the presolve mode ("off", "choose", "on").
func WithPresolve(mode string) SolveOption {
	return func(c *solveConfig) {
		c.presolve = &mode
	}
}

// WithBoolOption sets a custom boolean engine option.
func WithBoolOption(name string, value bool) SolveOption {
	return func(c *solveConfig) {
		c.extraBool[name] = value
	}
}

// WithIntOption sets a custom integer engine option.
func WithIntOption(name string, value int) SolveOption {
	return func(c *solveConfig) {
		c.extraInt[name] = value
	}
}

// WithFloatOption sets a custom floating-point engine option.
func WithFloatOption(name string, value float64) SolveOption {
	return func(c *solveConfig) {
		c.extraFloat[name] = value
	}
}

// WithStringOption sets a custom string engine option.
func WithStringOption(name, value string) SolveOption {
	return func(c *solveConfig) {
		c.extraString[name] = value
	}
}
