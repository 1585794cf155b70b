package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/san-kum/stepbench/internal/dynamo"
)

const schemaSrc = `
dt:        number & >0
duration:  number & >0
mass:      number & >0
stiffness: number & >0
init_state: {
	pos: number
	vel: number
}
schemes: [...("euler" | "verlet" | "rk4" | "extrapolated" | "extrapolated-avg" | "propagator")]
extrapolation: "exact" | "average" | "avg"
parallel: bool
sweep: [...(number & >0)]
`

func validateSchema(c *Config) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString("close({" + schemaSrc + "})")
	if err := schema.Err(); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}

	schemes := make([]any, len(c.Schemes))
	for i, s := range c.Schemes {
		schemes[i] = s
	}
	sweep := make([]any, len(c.Sweep))
	for i, dt := range c.Sweep {
		sweep[i] = dt
	}
	doc := map[string]any{
		"dt":        c.Dt,
		"duration":  c.Duration,
		"mass":      c.Mass,
		"stiffness": c.Stiffness,
		"init_state": map[string]any{
			"pos": c.InitState.Pos,
			"vel": c.InitState.Vel,
		},
		"schemes":       schemes,
		"extrapolation": c.Extrapolation,
		"parallel":      c.Parallel,
		"sweep":         sweep,
	}

	value := ctx.Encode(doc)
	if err := value.Err(); err != nil {
		return fmt.Errorf("%w: %v", dynamo.ErrInvalidParameter, err)
	}
	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %v", dynamo.ErrInvalidParameter, err)
	}
	return nil
}
