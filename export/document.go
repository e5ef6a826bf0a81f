// Package export flattens a host scene into the mammoth interchange
// document: a node tree referencing flat per-entity sections by name, with
// mesh geometry packed into embedded base64 binary buffers.
package export

import (
	"path/filepath"
	"strings"

	"github.com/mammothengine/mammoth_export/scene"
)

// ExporterVersion is reported in the document meta block.
const ExporterVersion = "0.1.0"

// Document is the complete export output, serialized as JSON with
// lexicographically sorted keys. Entity sections are flat lists keyed by
// name; the objects section holds root nodes only.
type Document struct {
	Cameras   []*CameraDocument   `json:"cameras"`
	Lights    []*LightDocument    `json:"lights"`
	Materials []*MaterialDocument `json:"materials"`
	Meshes    []*MeshDocument     `json:"meshes"`
	Meta      map[string]string   `json:"meta"`
	Objects   []*NodeDocument     `json:"objects"`
}

// ExportScene runs every per-entity exporter over the host collections and
// assembles the document. Any classification error aborts the whole export;
// nothing is written. Cross-entity references are not validated here: a
// node naming a mesh absent from the meshes section is the consumer's
// concern.
func ExportScene(s *scene.Scene) (*Document, error) {
	doc := &Document{
		Meta: map[string]string{
			"file":             cleanName(filepath.Base(s.SourceFile)),
			s.HostName:         s.HostVersion,
			"exporter_version": ExporterVersion,
		},
		Cameras:   make([]*CameraDocument, 0, len(s.Cameras)),
		Lights:    make([]*LightDocument, 0, len(s.Lights)),
		Materials: make([]*MaterialDocument, 0, len(s.Materials)),
		Meshes:    make([]*MeshDocument, 0, len(s.Meshes)),
		Objects:   make([]*NodeDocument, 0),
	}

	for _, mesh := range s.Meshes {
		doc.Meshes = append(doc.Meshes, ExportMesh(mesh))
	}

	for _, mat := range s.Materials {
		md, err := ExportMaterial(mat)
		if err != nil {
			return nil, err
		}
		doc.Materials = append(doc.Materials, md)
	}

	for _, light := range s.Lights {
		ld, err := ExportLight(light)
		if err != nil {
			return nil, err
		}
		doc.Lights = append(doc.Lights, ld)
	}

	for _, camera := range s.Cameras {
		cd, err := ExportCamera(camera)
		if err != nil {
			return nil, err
		}
		doc.Cameras = append(doc.Cameras, cd)
	}

	for _, obj := range s.Roots() {
		node, err := ExportObject(obj, s.ComponentSchema)
		if err != nil {
			return nil, err
		}
		doc.Objects = append(doc.Objects, node)
	}

	return doc, nil
}

// cleanName keeps letters, digits, dots, dashes and underscores, replacing
// everything else with an underscore, the way the host cleans file names.
func cleanName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		}
		return '_'
	}, name)
}
