package scene

import (
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mammothengine/mammoth_export/utils"
)

// On-disk scene description, the host's dump of its document. Objects are a
// flat list referencing their parent by name; loops are derived from faces.

type fileScene struct {
	File string   `yaml:"file"`
	Host fileHost `yaml:"host"`

	ComponentSchema []fileComponentDef `yaml:"component_schema"`

	Objects   []fileObject   `yaml:"objects"`
	Meshes    []fileMesh     `yaml:"meshes"`
	Materials []fileMaterial `yaml:"materials"`
	Lights    []fileLight    `yaml:"lights"`
	Cameras   []fileCamera   `yaml:"cameras"`
}

type fileHost struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type fileComponentDef struct {
	Key        string             `yaml:"key"`
	Attributes []fileAttributeDef `yaml:"attributes"`
}

type fileAttributeDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type fileComponent struct {
	Active bool                   `yaml:"active"`
	Values map[string]interface{} `yaml:"values"`
}

type fileObject struct {
	Name        string                   `yaml:"name"`
	Kind        string                   `yaml:"kind"`
	Data        string                   `yaml:"data"`
	Parent      string                   `yaml:"parent"`
	Translation [3]float32               `yaml:"translation"`
	Rotation    [4]float32               `yaml:"rotation"` // host order (w, x, y, z)
	Scale       [3]float32               `yaml:"scale"`
	Components  map[string]fileComponent `yaml:"components"`
}

type fileVertex struct {
	Position [3]float32 `yaml:"position"`
	Normal   [3]float32 `yaml:"normal"`
}

type fileLayer struct {
	Name string      `yaml:"name"`
	Data [][]float32 `yaml:"data"`
}

type fileMesh struct {
	Name        string       `yaml:"name"`
	Vertices    []fileVertex `yaml:"vertices"`
	Faces       [][]int      `yaml:"faces"`
	UVLayers    []fileLayer  `yaml:"uv_layers"`
	ColorLayers []fileLayer  `yaml:"color_layers"`
}

type fileTextureSlot struct {
	Name               string `yaml:"name"`
	Kind               string `yaml:"kind"`
	UseMapColorDiffuse bool   `yaml:"use_map_color_diffuse"`
}

type fileMaterial struct {
	Name              string             `yaml:"name"`
	Shadeless         bool               `yaml:"shadeless"`
	DiffuseColor      [3]float32         `yaml:"diffuse_color"`
	DiffuseIntensity  float32            `yaml:"diffuse_intensity"`
	SpecularIntensity float32            `yaml:"specular_intensity"`
	Ambient           float32            `yaml:"ambient"`
	Alpha             float32            `yaml:"alpha"`
	TextureSlots      []*fileTextureSlot `yaml:"texture_slots"`
}

type fileLight struct {
	Name     string     `yaml:"name"`
	Kind     string     `yaml:"kind"`
	Color    [3]float32 `yaml:"color"`
	Energy   float32    `yaml:"energy"`
	Distance float32    `yaml:"distance"`
}

type fileCamera struct {
	Name       string  `yaml:"name"`
	Kind       string  `yaml:"kind"`
	ClipStart  float32 `yaml:"clip_start"`
	ClipEnd    float32 `yaml:"clip_end"`
	AngleX     float32 `yaml:"angle_x"`
	AngleY     float32 `yaml:"angle_y"`
	OrthoScale float32 `yaml:"ortho_scale"`
}

// LoadFile reads a scene description from a YAML file.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read scene file %q", path)
	}
	return Load(data)
}

// Load parses a scene description and links the object graph.
func Load(data []byte) (*Scene, error) {
	var fs fileScene
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, errors.Wrapf(err, "Failed to parse scene description")
	}

	s := &Scene{
		SourceFile:  fs.File,
		HostName:    fs.Host.Name,
		HostVersion: fs.Host.Version,
	}
	if s.HostName == "" {
		s.HostName = "blender"
	}

	for _, def := range fs.ComponentSchema {
		cd := ComponentDef{Key: def.Key}
		for _, attr := range def.Attributes {
			cd.Attributes = append(cd.Attributes, AttributeDef{
				Name: attr.Name,
				Type: AttributeType(attr.Type),
			})
		}
		s.ComponentSchema = append(s.ComponentSchema, cd)
	}

	for iMesh := range fs.Meshes {
		mesh, err := loadMesh(&fs.Meshes[iMesh])
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to load mesh %q", fs.Meshes[iMesh].Name)
		}
		s.Meshes = append(s.Meshes, mesh)
	}

	for _, fm := range fs.Materials {
		mat := &Material{
			Name:              fm.Name,
			Shadeless:         fm.Shadeless,
			DiffuseColor:      mgl32.Vec3(fm.DiffuseColor),
			DiffuseIntensity:  fm.DiffuseIntensity,
			SpecularIntensity: fm.SpecularIntensity,
			Ambient:           fm.Ambient,
			Alpha:             fm.Alpha,
		}
		for _, slot := range fm.TextureSlots {
			if slot == nil {
				mat.TextureSlots = append(mat.TextureSlots, nil)
				continue
			}
			mat.TextureSlots = append(mat.TextureSlots, &TextureSlot{
				Name:               slot.Name,
				Kind:               TextureKind(slot.Kind),
				UseMapColorDiffuse: slot.UseMapColorDiffuse,
			})
		}
		s.Materials = append(s.Materials, mat)
	}

	for _, fl := range fs.Lights {
		s.Lights = append(s.Lights, &Light{
			Name:     fl.Name,
			Kind:     LightKind(fl.Kind),
			Color:    mgl32.Vec3(fl.Color),
			Energy:   fl.Energy,
			Distance: fl.Distance,
		})
	}

	for _, fc := range fs.Cameras {
		s.Cameras = append(s.Cameras, &Camera{
			Name:       fc.Name,
			Kind:       CameraKind(fc.Kind),
			ClipStart:  fc.ClipStart,
			ClipEnd:    fc.ClipEnd,
			AngleX:     fc.AngleX,
			AngleY:     fc.AngleY,
			OrthoScale: fc.OrthoScale,
		})
	}

	if err := loadObjects(s, fs.Objects); err != nil {
		return nil, err
	}

	return s, nil
}

func loadMesh(fm *fileMesh) (*Mesh, error) {
	m := &Mesh{Name: fm.Name}

	for _, v := range fm.Vertices {
		m.Vertices = append(m.Vertices, Vertex{
			Position: mgl32.Vec3(v.Position),
			Normal:   mgl32.Vec3(v.Normal),
		})
	}

	for iFace, face := range fm.Faces {
		if len(face) < 3 {
			return nil, errors.Errorf("Face %d has %d vertices, need at least 3", iFace, len(face))
		}
		m.Faces = append(m.Faces, Face{LoopStart: len(m.Loops), LoopCount: len(face)})
		for _, vi := range face {
			if vi < 0 || vi >= len(m.Vertices) {
				return nil, errors.Errorf("Face %d references vertex %d of %d", iFace, vi, len(m.Vertices))
			}
			m.Loops = append(m.Loops, Loop{Vertex: vi})
		}
	}

	for _, layer := range fm.UVLayers {
		if len(layer.Data) != len(m.Loops) {
			return nil, errors.Errorf("UV layer %q has %d entries for %d loops", layer.Name, len(layer.Data), len(m.Loops))
		}
		uv := UVLayer{Name: layer.Name, Data: make([]mgl32.Vec2, len(layer.Data))}
		for i, d := range layer.Data {
			if len(d) < 2 {
				return nil, errors.Errorf("UV layer %q entry %d has %d components", layer.Name, i, len(d))
			}
			uv.Data[i] = mgl32.Vec2{d[0], d[1]}
		}
		m.UVLayers = append(m.UVLayers, uv)
	}

	for _, layer := range fm.ColorLayers {
		if len(layer.Data) != len(m.Loops) {
			return nil, errors.Errorf("Colour layer %q has %d entries for %d loops", layer.Name, len(layer.Data), len(m.Loops))
		}
		col := ColorLayer{Name: layer.Name, Data: make([]utils.ColorFloat, len(layer.Data))}
		for i, d := range layer.Data {
			switch len(d) {
			case 3:
				col.Data[i] = utils.NewColorFloat(d)
			case 4:
				col.Data[i] = utils.NewColorFloatA(d)
			default:
				return nil, errors.Errorf("Colour layer %q entry %d has %d components", layer.Name, i, len(d))
			}
		}
		m.ColorLayers = append(m.ColorLayers, col)
	}

	return m, nil
}

func loadObjects(s *Scene, objects []fileObject) error {
	byName := make(map[string]*Object, len(objects))

	for _, fo := range objects {
		if _, exists := byName[fo.Name]; exists {
			return errors.Errorf("Duplicate object name %q", fo.Name)
		}
		obj := &Object{
			Name:        fo.Name,
			Kind:        ObjectKind(fo.Kind),
			DataName:    fo.Data,
			Translation: mgl32.Vec3(fo.Translation),
			Rotation: mgl32.Quat{
				W: fo.Rotation[0],
				V: mgl32.Vec3{fo.Rotation[1], fo.Rotation[2], fo.Rotation[3]},
			},
			Scale: mgl32.Vec3(fo.Scale),
		}
		if len(fo.Components) != 0 {
			obj.Components = make(map[string]*ComponentInstance, len(fo.Components))
			for key, comp := range fo.Components {
				obj.Components[key] = &ComponentInstance{
					Active: comp.Active,
					Values: comp.Values,
				}
			}
		}
		byName[fo.Name] = obj
		s.Objects = append(s.Objects, obj)
	}

	// Children are linked in the declaration order of the child objects.
	for i, fo := range objects {
		if fo.Parent == "" {
			continue
		}
		parent, ok := byName[fo.Parent]
		if !ok {
			return errors.Errorf("Object %q references unknown parent %q", fo.Name, fo.Parent)
		}
		obj := s.Objects[i]
		obj.Parent = parent
		parent.Children = append(parent.Children, obj)
	}

	return nil
}
