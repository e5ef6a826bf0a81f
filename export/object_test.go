package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mammothengine/mammoth_export/scene"
)

func TestSortQuatPermutation(t *testing.T) {
	q := mgl32.Quat{W: 1, V: mgl32.Vec3{2, 3, 4}}

	out := sortQuat(q)
	if want := [4]float32{2, 3, 4, 1}; out != want {
		t.Fatalf("sortQuat = %v, expected %v", out, want)
	}

	// the inverse permutation recovers the host order exactly
	back := mgl32.Quat{W: out[3], V: mgl32.Vec3{out[0], out[1], out[2]}}
	if back != q {
		t.Errorf("round trip = %v, expected %v", back, q)
	}
}

func TestExportObjectPayloadKeys(t *testing.T) {
	tests := []struct {
		kind scene.ObjectKind
		key  string
	}{
		{scene.ObjectMesh, `"mesh":"Data"`},
		{scene.ObjectCamera, `"camera":"Data"`},
		{scene.ObjectLamp, `"light":"Data"`},
	}

	for _, test := range tests {
		node, err := ExportObject(&scene.Object{
			Name:     "Obj",
			Kind:     test.kind,
			DataName: "Data",
			Scale:    mgl32.Vec3{1, 1, 1},
		}, nil)
		if err != nil {
			t.Fatal(err)
		}

		data, err := json.Marshal(node)
		if err != nil {
			t.Fatal(err)
		}
		text := string(data)

		if !strings.Contains(text, test.key) {
			t.Errorf("kind %s: %s misses %s", test.kind, text, test.key)
		}
		for _, other := range tests {
			if other.key != test.key && strings.Contains(text, other.key) {
				t.Errorf("kind %s: node carries extra payload %s", test.kind, other.key)
			}
		}
	}
}

func TestExportObjectEmptyHasNoPayload(t *testing.T) {
	node, err := ExportObject(&scene.Object{
		Name:  "Anchor",
		Kind:  scene.ObjectEmpty,
		Scale: mgl32.Vec3{1, 1, 1},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(node)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	for _, key := range []string{`"mesh"`, `"camera"`, `"light"`, `"children"`, `"components"`} {
		if strings.Contains(text, key) {
			t.Errorf("empty leaf node carries %s: %s", key, text)
		}
	}
}

func TestExportObjectChildrenPresence(t *testing.T) {
	child := &scene.Object{Name: "Child", Kind: scene.ObjectEmpty, Scale: mgl32.Vec3{1, 1, 1}}
	parent := &scene.Object{
		Name:     "Parent",
		Kind:     scene.ObjectEmpty,
		Scale:    mgl32.Vec3{1, 1, 1},
		Children: []*scene.Object{child},
	}
	child.Parent = parent

	node, err := ExportObject(parent, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(node.Children) != 1 || node.Children[0].Name != "Child" {
		t.Fatalf("children = %v", node.Children)
	}

	data, err := json.Marshal(node)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"children"`) {
		t.Errorf("parent node misses the children key: %s", data)
	}
}

func TestExportObjectComponentsPresence(t *testing.T) {
	obj := &scene.Object{
		Name:  "Player",
		Kind:  scene.ObjectEmpty,
		Scale: mgl32.Vec3{1, 1, 1},
		Components: map[string]*scene.ComponentInstance{
			"health": {Active: true, Values: map[string]interface{}{"max": 5}},
		},
	}
	schema := []scene.ComponentDef{
		{Key: "health", Attributes: []scene.AttributeDef{{Name: "max", Type: scene.AttrInt}}},
	}

	node, err := ExportObject(obj, schema)
	if err != nil {
		t.Fatal(err)
	}
	if node.Components == nil {
		t.Fatal("active component missing from node")
	}

	// same object with the component switched off drops the key entirely
	obj.Components["health"].Active = false
	node, err = ExportObject(obj, schema)
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(node)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"components"`) {
		t.Errorf("inactive component still exported: %s", data)
	}
}

func TestExportObjectUnsupportedKind(t *testing.T) {
	_, err := ExportObject(&scene.Object{Name: "Noise", Kind: "SPEAKER"}, nil)
	if !errors.Is(err, ErrUnsupportedObjectKind) {
		t.Errorf("expected ErrUnsupportedObjectKind, got %v", err)
	}
}
