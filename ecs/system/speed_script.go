package system

import (
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/rotisserie/eris"
)

// SpeedScript is a compiled tengo snippet that assigns the animator speed in
// degrees per second to the global `speed`. The globals `dt` and `elapsed`
// hold the frame time and the total animated time in seconds.
//
//	math := import("math")
//	speed = 50 + 25 * math.sin(elapsed)
type SpeedScript struct {
	compiled *tengo.Compiled
}

func CompileSpeedScript(src string) (*SpeedScript, error) {
	script := tengo.NewScript([]byte(src))
	_ = script.Add("dt", 0.0)
	_ = script.Add("elapsed", 0.0)
	_ = script.Add("speed", 0.0)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, eris.Wrap(err, "compile speed script")
	}
	return &SpeedScript{compiled: compiled}, nil
}

func (s *SpeedScript) Speed(dt, elapsed float64) (float64, error) {
	if err := s.compiled.Set("dt", dt); err != nil {
		return 0, err
	}
	if err := s.compiled.Set("elapsed", elapsed); err != nil {
		return 0, err
	}
	if err := s.compiled.Run(); err != nil {
		return 0, eris.Wrap(err, "run speed script")
	}

	v := s.compiled.Get("speed")
	switch v.ValueType() {
	case "int", "float":
		return v.Float(), nil
	default:
		return 0, eris.Errorf("speed script: speed is %s, want a number", v.ValueType())
	}
}
