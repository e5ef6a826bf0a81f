package export

import (
	"encoding/base64"
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mammothengine/mammoth_export/scene"
	"github.com/mammothengine/mammoth_export/utils"
)

const dataURIPrefix = "data:text/plain;base64,"

// MeshDocument is one entry of the document's "meshes" section. The vertex
// buffer is an interleaved little-endian float32 array described by VLayout;
// the index buffer is little-endian int32 triples.
type MeshDocument struct {
	Indices  string   `json:"indices"`
	Name     string   `json:"name"`
	Vertices string   `json:"vertices"`
	VLayout  []string `json:"vlayout"`
}

// VertexStride is the byte size of one packed vertex: position + normal +
// two floats per UV layer + three per colour layer, float32 each. It depends
// only on the mesh's layer counts.
func VertexStride(m *scene.Mesh) int {
	return (3 + 3 + len(m.UVLayers)*2 + len(m.ColorLayers)*3) * 4
}

// ExportMesh triangulates the mesh in place, recomputes its normals and
// packs the vertex and index buffers. Triangulation has to come first: new
// loops it introduces are what the packer indexes.
func ExportMesh(m *scene.Mesh) *MeshDocument {
	Triangulate(m)
	RecalcNormals(m)

	return &MeshDocument{
		Name:     m.Name,
		Vertices: dataURIPrefix + base64.StdEncoding.EncodeToString(packVertices(m)),
		VLayout:  vertexLayout(m),
		Indices:  dataURIPrefix + base64.StdEncoding.EncodeToString(packIndices(m)),
	}
}

// Triangulate fan-decomposes every face with more than three corners into
// triangles, rebuilding the loop list and per-loop layer data to match. The
// decomposition is deterministic and keeps the corner order of the source
// face, so triangulating an already triangulated mesh is a no-op.
func Triangulate(m *scene.Mesh) {
	triangles := 0
	for _, face := range m.Faces {
		triangles += face.LoopCount - 2
	}

	loops := make([]scene.Loop, 0, triangles*3)
	faces := make([]scene.Face, 0, triangles)

	uvData := make([][]mgl32.Vec2, len(m.UVLayers))
	for i := range uvData {
		uvData[i] = make([]mgl32.Vec2, 0, triangles*3)
	}
	colorData := make([][]utils.ColorFloat, len(m.ColorLayers))
	for i := range colorData {
		colorData[i] = make([]utils.ColorFloat, 0, triangles*3)
	}

	corner := func(loop int) {
		loops = append(loops, m.Loops[loop])
		for i := range m.UVLayers {
			uvData[i] = append(uvData[i], m.UVLayers[i].Data[loop])
		}
		for i := range m.ColorLayers {
			colorData[i] = append(colorData[i], m.ColorLayers[i].Data[loop])
		}
	}

	for _, face := range m.Faces {
		for k := 0; k < face.LoopCount-2; k++ {
			faces = append(faces, scene.Face{LoopStart: len(loops), LoopCount: 3})
			corner(face.LoopStart)
			corner(face.LoopStart + k + 1)
			corner(face.LoopStart + k + 2)
		}
	}

	m.Loops = loops
	m.Faces = faces
	for i := range m.UVLayers {
		m.UVLayers[i].Data = uvData[i]
	}
	for i := range m.ColorLayers {
		m.ColorLayers[i].Data = colorData[i]
	}
}

// RecalcNormals rebuilds vertex normals from the triangulated faces,
// area-weighted. Degenerate triangles contribute nothing.
func RecalcNormals(m *scene.Mesh) {
	for i := range m.Vertices {
		m.Vertices[i].Normal = mgl32.Vec3{}
	}

	for _, face := range m.Faces {
		a := m.Vertices[m.Loops[face.LoopStart].Vertex].Position
		b := m.Vertices[m.Loops[face.LoopStart+1].Vertex].Position
		c := m.Vertices[m.Loops[face.LoopStart+2].Vertex].Position

		// cross product length is twice the triangle area
		n := b.Sub(a).Cross(c.Sub(a))
		for k := 0; k < face.LoopCount; k++ {
			vi := m.Loops[face.LoopStart+k].Vertex
			m.Vertices[vi].Normal = m.Vertices[vi].Normal.Add(n)
		}
	}

	for i := range m.Vertices {
		if n := m.Vertices[i].Normal; n.Len() > 0 {
			m.Vertices[i].Normal = n.Normalize()
		}
	}
}

// packVertices emits one packed vertex per loop, not per unique position.
// Field order is position, normal, then UVs and colours in layer order.
// Colour alpha is read from the host but not packed; the layout carries
// three colour channels.
func packVertices(m *scene.Mesh) []byte {
	data := make([]byte, VertexStride(m)*len(m.Loops))

	off := 0
	put := func(f float32) {
		binary.LittleEndian.PutUint32(data[off:], math.Float32bits(f))
		off += 4
	}

	for iLoop, loop := range m.Loops {
		v := &m.Vertices[loop.Vertex]
		put(v.Position[0])
		put(v.Position[1])
		put(v.Position[2])
		put(v.Normal[0])
		put(v.Normal[1])
		put(v.Normal[2])

		for i := range m.UVLayers {
			uv := m.UVLayers[i].Data[iLoop]
			put(uv[0])
			put(uv[1])
		}
		for i := range m.ColorLayers {
			colour := m.ColorLayers[i].Data[iLoop]
			put(colour[0])
			put(colour[1])
			put(colour[2])
		}
	}

	return data
}

// packIndices emits one int32 triple per triangle, referencing packed
// vertices by loop index. No deduplication happens anywhere in the pipeline.
func packIndices(m *scene.Mesh) []byte {
	data := make([]byte, len(m.Faces)*3*4)

	off := 0
	for _, face := range m.Faces {
		for k := 0; k < 3; k++ {
			binary.LittleEndian.PutUint32(data[off:], uint32(int32(face.LoopStart+k)))
			off += 4
		}
	}

	return data
}

// vertexLayout describes the interleaving so a consumer can decode the
// buffer without out-of-band knowledge.
func vertexLayout(m *scene.Mesh) []string {
	layout := []string{"pos", "norm"}
	for range m.UVLayers {
		layout = append(layout, "uv")
	}
	for range m.ColorLayers {
		layout = append(layout, "col")
	}
	return layout
}
