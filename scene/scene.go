// Package scene models the editing host's in-memory document: objects,
// meshes, materials, lights, cameras and the resolved custom component
// schema. The exporter only ever reads it, except for mesh triangulation
// which rewrites faces and loops in place.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mammothengine/mammoth_export/utils"
)

type ObjectKind string

const (
	ObjectMesh   ObjectKind = "MESH"
	ObjectEmpty  ObjectKind = "EMPTY"
	ObjectCamera ObjectKind = "CAMERA"
	ObjectLamp   ObjectKind = "LAMP"
)

type LightKind string

const (
	LightSun   LightKind = "SUN"
	LightPoint LightKind = "POINT"
)

type CameraKind string

const (
	CameraPerspective  CameraKind = "PERSP"
	CameraOrthographic CameraKind = "ORTHO"
)

type TextureKind string

const (
	TextureImage TextureKind = "IMAGE"
)

type AttributeType string

const (
	AttrInt    AttributeType = "int"
	AttrFloat  AttributeType = "float"
	AttrBool   AttributeType = "bool"
	AttrString AttributeType = "string"
	AttrIVec2  AttributeType = "ivec2"
	AttrIVec3  AttributeType = "ivec3"
	AttrIVec4  AttributeType = "ivec4"
	AttrVec2   AttributeType = "vec2"
	AttrVec3   AttributeType = "vec3"
	AttrVec4   AttributeType = "vec4"
	AttrColour AttributeType = "colour"
)

type Scene struct {
	SourceFile  string
	HostName    string
	HostVersion string

	Objects   []*Object
	Meshes    []*Mesh
	Materials []*Material
	Lights    []*Light
	Cameras   []*Camera

	// Resolved custom component schema, in declaration order.
	ComponentSchema []ComponentDef
}

// Roots returns the objects without a parent, in declaration order.
func (s *Scene) Roots() []*Object {
	roots := make([]*Object, 0, len(s.Objects))
	for _, obj := range s.Objects {
		if obj.Parent == nil {
			roots = append(roots, obj)
		}
	}
	return roots
}

type ComponentDef struct {
	Key        string
	Attributes []AttributeDef
}

type AttributeDef struct {
	Name string
	Type AttributeType
}

// ComponentInstance is one component attached to an object. Values are
// loosely typed host properties, checked against the schema at export time.
type ComponentInstance struct {
	Active bool
	Values map[string]interface{}
}

// Object is a node of the host's object graph. Parent/Child links are
// guaranteed acyclic by the host; the exporter walks parent to children
// only. Rotation is stored the way the host stores it: (w, x, y, z).
type Object struct {
	Name string
	Kind ObjectKind

	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3

	// Name of the attached mesh, camera or light datablock, depending
	// on Kind. Empty for EMPTY objects.
	DataName string

	Parent   *Object
	Children []*Object

	Components map[string]*ComponentInstance
}

type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Loop is one face corner. Per-corner UV and colour values live in the
// layers, indexed by the loop's position in Mesh.Loops.
type Loop struct {
	Vertex int
}

// Face spans a contiguous run of loops. LoopCount is >= 3.
type Face struct {
	LoopStart int
	LoopCount int
}

type UVLayer struct {
	Name string
	Data []mgl32.Vec2 // one entry per loop
}

type ColorLayer struct {
	Name string
	Data []utils.ColorFloat // one entry per loop, RGBA
}

type Mesh struct {
	Name        string
	Vertices    []Vertex
	Loops       []Loop
	Faces       []Face
	UVLayers    []UVLayer
	ColorLayers []ColorLayer
}

// LoopCount is the number of face corners, which is also the number of
// packed vertices the exporter will emit for this mesh.
func (m *Mesh) LoopCount() int {
	return len(m.Loops)
}

type TextureSlot struct {
	Name               string
	Kind               TextureKind
	UseMapColorDiffuse bool
}

type Material struct {
	Name string

	Shadeless         bool
	DiffuseColor      mgl32.Vec3
	DiffuseIntensity  float32
	SpecularIntensity float32
	Ambient           float32
	Alpha             float32

	// Fixed-size slot list in the host; empty slots are nil.
	TextureSlots []*TextureSlot
}

type Light struct {
	Name   string
	Kind   LightKind
	Color  mgl32.Vec3
	Energy float32

	// Falloff distance, meaningful for point lights only.
	Distance float32
}

type Camera struct {
	Name      string
	Kind      CameraKind
	ClipStart float32
	ClipEnd   float32

	// Horizontal and vertical field of view in radians, meaningful for
	// perspective cameras.
	AngleX float32
	AngleY float32

	// Meaningful for orthographic cameras.
	OrthoScale float32
}
