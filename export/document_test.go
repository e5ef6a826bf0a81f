package export

import (
	"encoding/binary"
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mammothengine/mammoth_export/scene"
)

func buildCubeMesh() *scene.Mesh {
	m := &scene.Mesh{
		Name: "Cube",
		Vertices: []scene.Vertex{
			{Position: mgl32.Vec3{-1, -1, -1}},
			{Position: mgl32.Vec3{1, -1, -1}},
			{Position: mgl32.Vec3{1, 1, -1}},
			{Position: mgl32.Vec3{-1, 1, -1}},
			{Position: mgl32.Vec3{-1, -1, 1}},
			{Position: mgl32.Vec3{1, -1, 1}},
			{Position: mgl32.Vec3{1, 1, 1}},
			{Position: mgl32.Vec3{-1, 1, 1}},
		},
	}

	quads := [][]int{
		{0, 1, 2, 3},
		{4, 7, 6, 5},
		{0, 4, 5, 1},
		{1, 5, 6, 2},
		{2, 6, 7, 3},
		{3, 7, 4, 0},
	}
	for _, quad := range quads {
		m.Faces = append(m.Faces, scene.Face{LoopStart: len(m.Loops), LoopCount: len(quad)})
		for _, vi := range quad {
			m.Loops = append(m.Loops, scene.Loop{Vertex: vi})
		}
	}

	m.UVLayers = []scene.UVLayer{
		{Name: "UVMap", Data: make([]mgl32.Vec2, len(m.Loops))},
	}

	return m
}

func buildCubeScene() *scene.Scene {
	return &scene.Scene{
		SourceFile:  "my scene.blend",
		HostName:    "blender",
		HostVersion: "2.79 (sub 0)",
		Meshes:      []*scene.Mesh{buildCubeMesh()},
		Objects: []*scene.Object{
			{
				Name:     "Cube",
				Kind:     scene.ObjectMesh,
				DataName: "Cube",
				Rotation: mgl32.QuatIdent(),
				Scale:    mgl32.Vec3{1, 1, 1},
			},
		},
		Lights: []*scene.Light{
			{Name: "Sun", Kind: scene.LightSun, Color: mgl32.Vec3{1, 1, 1}, Energy: 2},
		},
		Cameras: []*scene.Camera{
			{Name: "Camera", Kind: scene.CameraPerspective, ClipStart: 0.1, ClipEnd: 100, AngleX: 1.0, AngleY: 0.8},
		},
		Materials: []*scene.Material{
			{Name: "Gray", DiffuseColor: mgl32.Vec3{0.8, 0.8, 0.8}, DiffuseIntensity: 1, Alpha: 1},
		},
	}
}

func TestExportSceneCube(t *testing.T) {
	doc, err := ExportScene(buildCubeScene())
	if err != nil {
		t.Fatal(err)
	}

	if len(doc.Meshes) != 1 {
		t.Fatalf("got %d meshes", len(doc.Meshes))
	}
	mesh := doc.Meshes[0]

	if want := []string{"pos", "norm", "uv"}; strings.Join(mesh.VLayout, ",") != strings.Join(want, ",") {
		t.Errorf("vlayout = %v, expected %v", mesh.VLayout, want)
	}

	indices := decodeBuffer(t, mesh.Indices)
	if triangles := len(indices) / (3 * 4); triangles != 12 {
		t.Errorf("cube triangulated into %d triangles, expected 12", triangles)
	}

	// 12 triangles * 3 loops * (3+3+2 floats)
	vertices := decodeBuffer(t, mesh.Vertices)
	if want := 12 * 3 * 32; len(vertices) != want {
		t.Errorf("vertex buffer is %d bytes, expected %d", len(vertices), want)
	}
	// every index must address a packed vertex
	for i := 0; i < len(indices); i += 4 {
		if index := int32(binary.LittleEndian.Uint32(indices[i:])); index < 0 || index >= 36 {
			t.Fatalf("index %d out of packed vertex range", index)
		}
	}

	if len(doc.Lights) != 1 {
		t.Fatalf("got %d lights", len(doc.Lights))
	}
	if light := doc.Lights[0]; light.Type != "directional" || light.Colour != (mgl32.Vec3{2, 2, 2}) {
		t.Errorf("light = %q %v, expected directional (2,2,2)", light.Type, light.Colour)
	}

	if len(doc.Cameras) != 1 {
		t.Fatalf("got %d cameras", len(doc.Cameras))
	}
	if camera := doc.Cameras[0]; camera.Aspect == nil || *camera.Aspect != 1.25 {
		t.Errorf("camera aspect = %v, expected 1.25", camera.Aspect)
	}

	if len(doc.Objects) != 1 || doc.Objects[0].Mesh != "Cube" {
		t.Errorf("objects = %v", doc.Objects)
	}
}

func TestExportSceneMeta(t *testing.T) {
	doc, err := ExportScene(buildCubeScene())
	if err != nil {
		t.Fatal(err)
	}

	if got := doc.Meta["file"]; got != "my_scene.blend" {
		t.Errorf("meta file = %q, expected cleaned name", got)
	}
	if got := doc.Meta["blender"]; got != "2.79 (sub 0)" {
		t.Errorf("meta host version = %q", got)
	}
	if got := doc.Meta["exporter_version"]; got != ExporterVersion {
		t.Errorf("meta exporter_version = %q, expected %q", got, ExporterVersion)
	}
}

func TestExportSceneUnsupportedObject(t *testing.T) {
	s := buildCubeScene()
	s.Objects = append(s.Objects, &scene.Object{Name: "Noise", Kind: "SPEAKER"})

	if _, err := ExportScene(s); !errors.Is(err, ErrUnsupportedObjectKind) {
		t.Errorf("expected ErrUnsupportedObjectKind, got %v", err)
	}
}

func TestDocumentKeysSorted(t *testing.T) {
	doc, err := ExportScene(buildCubeScene())
	if err != nil {
		t.Fatal(err)
	}

	data, err := doc.Marshal(false)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	last := -1
	for _, key := range []string{`"cameras"`, `"lights"`, `"materials"`, `"meshes"`, `"meta"`, `"objects"`} {
		index := strings.Index(text, key)
		if index < 0 {
			t.Fatalf("document misses %s", key)
		}
		if index < last {
			t.Errorf("%s out of sorted order", key)
		}
		last = index
	}

	nodeData, err := json.Marshal(doc.Objects[0])
	if err != nil {
		t.Fatal(err)
	}
	nodeText := string(nodeData)
	last = -1
	for _, key := range []string{`"mesh"`, `"name"`, `"rotation"`, `"scale"`, `"translation"`} {
		index := strings.Index(nodeText, key)
		if index < 0 {
			t.Fatalf("node misses %s: %s", key, nodeText)
		}
		if index < last {
			t.Errorf("node key %s out of sorted order: %s", key, nodeText)
		}
		last = index
	}
}

func TestDocumentMarshalPretty(t *testing.T) {
	doc, err := ExportScene(buildCubeScene())
	if err != nil {
		t.Fatal(err)
	}

	data, err := doc.Marshal(true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("pretty output misses the trailing newline")
	}
	if !strings.Contains(string(data), "\n    \"lights\"") {
		t.Error("pretty output is not indented with four spaces")
	}

	compact, err := doc.Marshal(false)
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(string(compact[:len(compact)-1]), "\n") {
		t.Error("compact output contains newlines")
	}
}
