package export

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mammothengine/mammoth_export/scene"
)

// NodeDocument is one node of the exported object tree. Children and
// components are omitted entirely when empty; exactly one of the mesh,
// camera and light keys is set depending on the object kind.
type NodeDocument struct {
	Camera      string                         `json:"camera,omitempty"`
	Children    []*NodeDocument                `json:"children,omitempty"`
	Components  map[string]ComponentAttributes `json:"components,omitempty"`
	Light       string                         `json:"light,omitempty"`
	Mesh        string                         `json:"mesh,omitempty"`
	Name        string                         `json:"name"`
	Rotation    [4]float32                     `json:"rotation"`
	Scale       [3]float32                     `json:"scale"`
	Translation [3]float32                     `json:"translation"`
}

// sortQuat reorders a quaternion from the host's (w, x, y, z) storage to
// the document's (x, y, z, w). Fixed convention, not configurable.
func sortQuat(q mgl32.Quat) [4]float32 {
	return [4]float32{q.V[0], q.V[1], q.V[2], q.W}
}

// ExportObject builds the node for one object and recurses into its
// children in the host's declared order. EMPTY objects carry transform,
// children and components but no payload; that is intentional, not an
// error.
func ExportObject(obj *scene.Object, schema []scene.ComponentDef) (*NodeDocument, error) {
	components, err := ExportComponents(obj, schema)
	if err != nil {
		return nil, err
	}

	node := &NodeDocument{
		Name:        obj.Name,
		Translation: obj.Translation,
		Rotation:    sortQuat(obj.Rotation),
		Scale:       obj.Scale,
		Components:  components,
	}

	for _, child := range obj.Children {
		childNode, err := ExportObject(child, schema)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, childNode)
	}

	switch obj.Kind {
	case scene.ObjectMesh:
		node.Mesh = obj.DataName
	case scene.ObjectEmpty:
	case scene.ObjectCamera:
		node.Camera = obj.DataName
	case scene.ObjectLamp:
		node.Light = obj.DataName
	default:
		return nil, errors.Wrapf(ErrUnsupportedObjectKind, "object kind %q (%s)", obj.Kind, obj.Name)
	}

	return node, nil
}
