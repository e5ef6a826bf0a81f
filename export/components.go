package export

import (
	"github.com/pkg/errors"

	"github.com/mammothengine/mammoth_export/scene"
)

// ComponentAttributes is one exported component instance: attribute name to
// scalar or expanded vector value.
type ComponentAttributes map[string]interface{}

// ExportComponents reads the object's component instances against the
// resolved schema. Inactive or missing instances are skipped whole; the
// result is nil when nothing is active so the node can omit the key. The
// schema is externally defined and may drift, so every declared attribute
// type is checked against the closed set here.
func ExportComponents(obj *scene.Object, schema []scene.ComponentDef) (map[string]ComponentAttributes, error) {
	var components map[string]ComponentAttributes

	for _, def := range schema {
		inst := obj.Components[def.Key]
		if inst == nil || !inst.Active {
			continue
		}

		attrs := make(ComponentAttributes, len(def.Attributes))
		for _, attr := range def.Attributes {
			value, err := exportAttribute(inst.Values[attr.Name], attr.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "attribute %q of %q on %q", attr.Name, def.Key, obj.Name)
			}
			attrs[attr.Name] = value
		}

		if components == nil {
			components = make(map[string]ComponentAttributes)
		}
		components[def.Key] = attrs
	}

	return components, nil
}

func exportAttribute(value interface{}, t scene.AttributeType) (interface{}, error) {
	switch t {
	case scene.AttrInt:
		return toInt(value), nil
	case scene.AttrFloat:
		return toFloat(value), nil
	case scene.AttrBool:
		b, _ := value.(bool)
		return b, nil
	case scene.AttrString:
		s, _ := value.(string)
		return s, nil
	case scene.AttrIVec2, scene.AttrIVec3, scene.AttrIVec4:
		return toIntList(value), nil
	case scene.AttrVec2, scene.AttrVec3, scene.AttrVec4, scene.AttrColour:
		return toFloatList(value), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedAttributeType, "type %q", t)
	}
}

func toInt(value interface{}) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float32:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func toFloat(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// Vector-like attributes expand into an ordered list of their components.

func toIntList(value interface{}) []int {
	items, _ := value.([]interface{})
	list := make([]int, len(items))
	for i, item := range items {
		list[i] = toInt(item)
	}
	return list
}

func toFloatList(value interface{}) []float64 {
	items, _ := value.([]interface{})
	list := make([]float64, len(items))
	for i, item := range items {
		list[i] = toFloat(item)
	}
	return list
}
