package friction

import "math"

// Default parameter set, tuned for a high-stiction harmonic-drive joint
// simulated at 1 kHz.
const (
	DefaultTs        = 2.5   // static friction torque [Nm]
	DefaultTc        = 0.2   // Coulomb friction torque [Nm]
	DefaultTv        = 4.5   // viscous friction coefficient [Nms/rad]
	DefaultWbrk      = 0.04  // break-away angular velocity [rad/s]
	DefaultKf        = 5000  // bristle spring constant [Nm/rad]
	DefaultBf        = 50    // bristle damper constant [Nms/rad]
	DefaultDt        = 0.001 // integration timestep [s]
	DefaultTableStep = 0.001 // dry-friction table resolution [rad/s]

	// defaultLambArgThreshold marks where the Lambert W argument becomes
	// negligible for practical torque magnitudes; it bounds the table domain.
	defaultLambArgThreshold = -0.001
)

// Params holds the static friction parameters of one joint. They are
// fixed for the lifetime of the joint's table; changing any of them
// requires building a new State.
type Params struct {
	Ts   float64 `yaml:"ts"`
	Tc   float64 `yaml:"tc"`
	Tv   float64 `yaml:"tv"`
	Wbrk float64 `yaml:"wbrk"`
	Kf   float64 `yaml:"kf"`
	Bf   float64 `yaml:"bf"`
	Dt   float64 `yaml:"dt"`

	TableStep        float64 `yaml:"table_step"`
	LambArgThreshold float64 `yaml:"lamb_arg_threshold"`
}

func DefaultParams() Params {
	return Params{
		Ts:               DefaultTs,
		Tc:               DefaultTc,
		Tv:               DefaultTv,
		Wbrk:             DefaultWbrk,
		Kf:               DefaultKf,
		Bf:               DefaultBf,
		Dt:               DefaultDt,
		TableStep:        DefaultTableStep,
		LambArgThreshold: defaultLambArgThreshold,
	}
}

// derived holds the constants computed once from Params.
type derived struct {
	tsc float64 // Ts - Tc
	z   float64 // 1 / (Kf*Dt + Bf)
	den float64 // 1 + Z*Tv

	// dry-friction table domain over the auxiliary velocity w*
	min float64
	max float64
}

func (p Params) derive() derived {
	d := derived{}
	d.tsc = p.Ts - p.Tc
	d.z = 1 / (p.Kf*p.Dt + p.Bf)
	d.den = 1 + d.z*p.Tv
	d.min = d.z * p.Ts
	d.max = d.z*p.Tc - p.Wbrk*d.den*math.Log(-p.Wbrk/d.z*d.den/d.tsc*p.LambArgThreshold)
	return d
}
