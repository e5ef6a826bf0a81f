package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mammothengine/mammoth_export/scene"
)

// ExportGLTF renders the same scene as a glTF 2.0 document, for tooling
// that speaks glTF rather than the mammoth format. Geometry, node hierarchy
// and base material colours carry over; custom components, lights and
// cameras have no glTF mapping here and are skipped. Classification runs
// over every material regardless, so the same scenes fail the same way in
// both formats.
func ExportGLTF(s *scene.Scene) (*gltf.Document, error) {
	doc := gltf.NewDocument()

	meshIndex := make(map[string]uint32, len(s.Meshes))
	for _, m := range s.Meshes {
		Triangulate(m)
		RecalcNormals(m)

		verticesCount := len(m.Loops)

		positions := make([][3]float32, verticesCount)
		normals := make([][3]float32, verticesCount)
		for iLoop, loop := range m.Loops {
			positions[iLoop] = m.Vertices[loop.Vertex].Position
			normals[iLoop] = m.Vertices[loop.Vertex].Normal
		}

		attributes := make(map[string]uint32)
		attributes["POSITION"] = modeler.WritePosition(doc, positions)
		attributes["NORMAL"] = modeler.WriteNormal(doc, normals)

		for iLayer := range m.UVLayers {
			uvs := make([][2]float32, verticesCount)
			for iLoop, uv := range m.UVLayers[iLayer].Data {
				uvs[iLoop] = [2]float32{uv[0], uv[1]}
			}
			attributes[fmt.Sprintf("TEXCOORD_%d", iLayer)] = modeler.WriteTextureCoord(doc, uvs)
		}

		for iLayer := range m.ColorLayers {
			colors := make([][4]uint8, verticesCount)
			for iLoop, colour := range m.ColorLayers[iLayer].Data {
				colors[iLoop] = [4]uint8{
					floatToByte(colour[0]),
					floatToByte(colour[1]),
					floatToByte(colour[2]),
					floatToByte(colour[3]),
				}
			}
			attributes[fmt.Sprintf("COLOR_%d", iLayer)] = modeler.WriteColor(doc, colors)
		}

		indices := make([]uint32, verticesCount)
		for i := range indices {
			indices[i] = uint32(i)
		}
		indicesAccessor := modeler.WriteIndices(doc, indices)

		meshIndex[m.Name] = uint32(len(doc.Meshes))
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: m.Name,
			Primitives: []*gltf.Primitive{
				{
					Indices:    &indicesAccessor,
					Attributes: attributes,
				},
			},
		})
	}

	for _, mat := range s.Materials {
		md, err := ExportMaterial(mat)
		if err != nil {
			return nil, err
		}

		color := new([4]float32)
		if md.Unlit != nil {
			*color = [4]float32(md.Unlit.Colour)
		} else {
			*color = [4]float32(md.Diffuse.Colour)
		}

		doc.Materials = append(doc.Materials, &gltf.Material{
			Name:        mat.Name,
			DoubleSided: true,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: color,
			},
		})
	}

	for _, obj := range s.Roots() {
		nodeId, err := exportGLTFNode(doc, obj, meshIndex)
		if err != nil {
			return nil, err
		}
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, nodeId)
	}

	return doc, nil
}

func exportGLTFNode(doc *gltf.Document, obj *scene.Object, meshIndex map[string]uint32) (uint32, error) {
	node := &gltf.Node{
		Name:        obj.Name,
		Translation: obj.Translation,
		Rotation:    obj.Rotation.V.Vec4(obj.Rotation.W),
		Scale:       obj.Scale,
	}

	switch obj.Kind {
	case scene.ObjectMesh:
		if index, ok := meshIndex[obj.DataName]; ok {
			node.Mesh = gltf.Index(index)
		}
	case scene.ObjectEmpty, scene.ObjectCamera, scene.ObjectLamp:
	default:
		return 0, errors.Wrapf(ErrUnsupportedObjectKind, "object kind %q (%s)", obj.Kind, obj.Name)
	}

	nodeId := uint32(len(doc.Nodes))
	doc.Nodes = append(doc.Nodes, node)

	for _, child := range obj.Children {
		childId, err := exportGLTFNode(doc, child, meshIndex)
		if err != nil {
			return 0, err
		}
		node.Children = append(node.Children, childId)
	}

	return nodeId, nil
}

// WriteGLTF saves the document as .gltf text or, with a .glb path, as
// binary.
func WriteGLTF(path string, doc *gltf.Document) error {
	var err error
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return errors.Wrapf(err, "Failed to write %q", path)
	}
	return nil
}

func floatToByte(f float32) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}
