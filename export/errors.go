package export

import "github.com/pkg/errors"

// The exporter's taxonomy is closed on purpose: anything outside it aborts
// the whole export with no output written. Matchable with errors.Is after
// wrapping.
var (
	ErrUnsupportedObjectKind      = errors.New("unsupported object kind")
	ErrUnsupportedLightKind       = errors.New("unsupported light kind")
	ErrUnsupportedCameraKind      = errors.New("unsupported camera kind")
	ErrUnsupportedMaterialShading = errors.New("unsupported material shading")
	ErrUnsupportedAttributeType   = errors.New("unsupported component attribute type")
)
