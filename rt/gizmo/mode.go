package gizmo

import "fmt"

type Mode int

const (
	Move Mode = iota
	Rotate
	Scale
)

func (m Mode) String() string {
	switch m {
	case Move:
		return "Move"
	case Rotate:
		return "Rotate"
	case Scale:
		return "Scale"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Space selects whether handles follow world axes or the object's rotation.
type Space int

const (
	Local Space = iota
	Global
)

func (s Space) String() string {
	switch s {
	case Local:
		return "Local"
	case Global:
		return "Global"
	}
	return fmt.Sprintf("Space(%d)", int(s))
}

// Toggle returns the other space.
func (s Space) Toggle() Space {
	if s == Local {
		return Global
	}
	return Local
}

type Axis int

const (
	X Axis = iota
	Y
	Z
)

var Axes = [3]Axis{X, Y, Z}

func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Color is the RGBA the handle of this axis is drawn with.
func (a Axis) Color() [4]float32 {
	switch a {
	case X:
		return [4]float32{1, 0.2, 0.2, 1}
	case Y:
		return [4]float32{0.2, 1, 0.2, 1}
	case Z:
		return [4]float32{0.2, 0.4, 1, 1}
	}
	return [4]float32{1, 1, 1, 1}
}

// ActiveColor is used for the handle currently being dragged.
var ActiveColor = [4]float32{1, 0.9, 0.1, 1}

// Params holds the tunables of the gizmo.
type Params struct {
	HandleThreshold  float32 `yaml:"handle_threshold"`
	AxisLengthFactor float32 `yaml:"axis_length_factor"`
	MinAxisLength    float32 `yaml:"min_axis_length"`
	MaxAxisLength    float32 `yaml:"max_axis_length"`
	RingSegments     int     `yaml:"ring_segments"`

	MoveSpeed       float32 `yaml:"move_speed"`
	MinDragDistance float32 `yaml:"min_drag_distance"`
	RotateSpeed     float32 `yaml:"rotate_speed"`
	ScaleSpeed      float32 `yaml:"scale_speed"`
	MinScaleFactor  float32 `yaml:"min_scale_factor"`
	MaxScaleFactor  float32 `yaml:"max_scale_factor"`
	MinScale        float32 `yaml:"min_scale"`
}

func DefaultParams() Params {
	return Params{
		HandleThreshold:  10.0,
		AxisLengthFactor: 0.2,
		MinAxisLength:    0.5,
		MaxAxisLength:    5.0,
		RingSegments:     40,

		MoveSpeed:       0.002,
		MinDragDistance: 0.1,
		RotateSpeed:     0.004,
		ScaleSpeed:      0.005,
		MinScaleFactor:  0.1,
		MaxScaleFactor:  10.0,
		MinScale:        0.01,
	}
}
