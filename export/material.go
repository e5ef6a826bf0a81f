package export

import (
	"github.com/pkg/errors"

	"github.com/mammothengine/mammoth_export/scene"
	"github.com/mammothengine/mammoth_export/utils"
)

// MaterialDocument carries exactly one of the two supported shading
// variants. The textures object is always present, matching the document
// contract, even when no diffuse textures are mapped.
type MaterialDocument struct {
	Diffuse  *DiffuseShading `json:"diffuse,omitempty"`
	Name     string          `json:"name"`
	Textures TextureSet      `json:"textures"`
	Unlit    *UnlitShading   `json:"unlit,omitempty"`
}

type UnlitShading struct {
	Colour utils.ColorFloat `json:"colour"`
}

type DiffuseShading struct {
	Ambient utils.ColorFloat `json:"ambient"`
	Colour  utils.ColorFloat `json:"colour"`
}

type TextureSet struct {
	Diffuse []string `json:"diffuse,omitempty"`
}

// ExportMaterial classifies a material as unlit or diffuse. Anything with
// specular response is rejected: the interchange taxonomy has no variant
// for it.
func ExportMaterial(mat *scene.Material) (*MaterialDocument, error) {
	md := &MaterialDocument{Name: mat.Name}

	colour := utils.ColorFromVec3(mat.DiffuseColor.Mul(mat.DiffuseIntensity), mat.Alpha)

	switch {
	case mat.Shadeless:
		md.Unlit = &UnlitShading{Colour: colour}
	case mat.SpecularIntensity == 0.0:
		md.Diffuse = &DiffuseShading{
			Ambient: utils.ColorFromScalar(mat.Ambient),
			Colour:  colour,
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedMaterialShading,
			"material %q should be either shadeless or have 0 specular intensity", mat.Name)
	}

	// Only populated image slots with diffuse colour mapping enabled make
	// it into the document, in slot order.
	for _, slot := range mat.TextureSlots {
		if slot == nil || slot.Kind != scene.TextureImage {
			continue
		}
		if !slot.UseMapColorDiffuse {
			continue
		}
		md.Textures.Diffuse = append(md.Textures.Diffuse, slot.Name)
	}

	return md, nil
}
