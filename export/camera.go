package export

import (
	"github.com/pkg/errors"

	"github.com/mammothengine/mammoth_export/scene"
)

type CameraDocument struct {
	Aspect    *float32 `json:"aspect,omitempty"`
	Far       float32  `json:"far"`
	FOV       *float32 `json:"fov,omitempty"`
	Name      string   `json:"name"`
	Near      float32  `json:"near"`
	OrthoSize *float32 `json:"ortho_size,omitempty"`
	Type      string   `json:"type"`
}

// ExportCamera classifies a camera as orthographic or perspective. The
// perspective fov is the vertical angle; aspect is horizontal over vertical.
func ExportCamera(c *scene.Camera) (*CameraDocument, error) {
	cd := &CameraDocument{
		Name: c.Name,
		Near: c.ClipStart,
		Far:  c.ClipEnd,
	}

	switch c.Kind {
	case scene.CameraOrthographic:
		cd.Type = "orthographic"
		orthoSize := c.OrthoScale
		cd.OrthoSize = &orthoSize
	case scene.CameraPerspective:
		cd.Type = "perspective"
		fov := c.AngleY
		aspect := c.AngleX / c.AngleY
		cd.FOV = &fov
		cd.Aspect = &aspect
	default:
		return nil, errors.Wrapf(ErrUnsupportedCameraKind, "camera kind %q (%s)", c.Kind, c.Name)
	}

	return cd, nil
}
