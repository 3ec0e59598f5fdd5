package klingo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraControlValidation(t *testing.T) {
	t.Run("simple with exactly one non-zero axis is valid", func(t *testing.T) {
		cc := CameraControl{Type: CameraSimple, Config: &CameraConfig{Zoom: 5}}
		assert.NoError(t, validateStruct(&cc))
	})

	t.Run("simple with no config is rejected", func(t *testing.T) {
		cc := CameraControl{Type: CameraSimple}
		err := validateStruct(&cc)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, ErrKindValidation, apiErr.Kind)
	})

	t.Run("simple with all axes zero is rejected", func(t *testing.T) {
		cc := CameraControl{Type: CameraSimple, Config: &CameraConfig{}}
		assert.Error(t, validateStruct(&cc))
	})

	t.Run("simple with two non-zero axes is rejected", func(t *testing.T) {
		cc := CameraControl{Type: CameraSimple, Config: &CameraConfig{Pan: 1, Tilt: 1}}
		assert.Error(t, validateStruct(&cc))
	})

	t.Run("predefined movements need no config", func(t *testing.T) {
		for _, typ := range []CameraMovementType{CameraDownBack, CameraForwardUp, CameraRightTurnForward, CameraLeftTurnForward} {
			cc := CameraControl{Type: typ}
			assert.NoError(t, validateStruct(&cc))
		}
	})

	t.Run("axis out of range is rejected", func(t *testing.T) {
		cc := CameraControl{Type: CameraSimple, Config: &CameraConfig{Zoom: 11}}
		assert.Error(t, validateStruct(&cc))
	})

	t.Run("unknown movement type is rejected", func(t *testing.T) {
		cc := CameraControl{Type: "spiral"}
		assert.Error(t, validateStruct(&cc))
	})
}

func TestCameraControlInsideRequest(t *testing.T) {
	req := &TextToVideoRequest{
		Prompt:        "a drone shot over a fjord",
		CameraControl: &CameraControl{Type: CameraSimple, Config: &CameraConfig{}},
	}
	err := validateStruct(req)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrKindValidation, apiErr.Kind)
}
