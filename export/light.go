package export

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mammothengine/mammoth_export/scene"
)

type LightDocument struct {
	Colour   mgl32.Vec3 `json:"colour"`
	Distance *float32   `json:"distance,omitempty"`
	Name     string     `json:"name"`
	Type     string     `json:"type"`
}

// ExportLight classifies a light as directional or point. Colour is the
// base colour scaled by energy for both variants.
func ExportLight(l *scene.Light) (*LightDocument, error) {
	ld := &LightDocument{
		Name:   l.Name,
		Colour: l.Color.Mul(l.Energy),
	}

	switch l.Kind {
	case scene.LightSun:
		ld.Type = "directional"
	case scene.LightPoint:
		ld.Type = "point"
		distance := l.Distance
		ld.Distance = &distance
	default:
		return nil, errors.Wrapf(ErrUnsupportedLightKind, "light kind %q (%s)", l.Kind, l.Name)
	}

	return ld, nil
}
