package klingo

import "github.com/go-playground/validator/v10"

// CameraMovementType selects a predefined camera movement.
type CameraMovementType string

const (
	CameraSimple           CameraMovementType = "simple"
	CameraDownBack         CameraMovementType = "down_back"
	CameraForwardUp        CameraMovementType = "forward_up"
	CameraRightTurnForward CameraMovementType = "right_turn_forward"
	CameraLeftTurnForward  CameraMovementType = "left_turn_forward"
)

// CameraConfig sets the movement amount on each axis, -10 to 10.
// With CameraSimple exactly one axis must be non-zero.
type CameraConfig struct {
	Horizontal float64 `json:"horizontal,omitempty" validate:"gte=-10,lte=10"`
	Vertical   float64 `json:"vertical,omitempty" validate:"gte=-10,lte=10"`
	Pan        float64 `json:"pan,omitempty" validate:"gte=-10,lte=10"`
	Tilt       float64 `json:"tilt,omitempty" validate:"gte=-10,lte=10"`
	Roll       float64 `json:"roll,omitempty" validate:"gte=-10,lte=10"`
	Zoom       float64 `json:"zoom,omitempty" validate:"gte=-10,lte=10"`
}

func (c *CameraConfig) nonZeroAxes() int {
	n := 0
	for _, v := range []float64{c.Horizontal, c.Vertical, c.Pan, c.Tilt, c.Roll, c.Zoom} {
		if v != 0 {
			n++
		}
	}
	return n
}

// CameraControl configures camera movement for video generation.
type CameraControl struct {
	Type   CameraMovementType `json:"type,omitempty" validate:"omitempty,oneof=simple down_back forward_up right_turn_forward left_turn_forward"`
	Config *CameraConfig      `json:"config,omitempty"`
}

// validateCameraControl enforces the simple-mode contract: a config must be
// present and carry exactly one non-zero axis.
func validateCameraControl(sl validator.StructLevel) {
	cc := sl.Current().Interface().(CameraControl)
	if cc.Type != CameraSimple {
		return
	}
	if cc.Config == nil || cc.Config.nonZeroAxes() != 1 {
		sl.ReportError(cc.Config, "config", "Config", "camera_single_axis", "")
	}
}
