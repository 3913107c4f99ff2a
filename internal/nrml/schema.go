package nrml

import (
	"fmt"
	"maps"

	"github.com/antchfx/xpath"

	"faultline/internal/rupture"
)

const (
	NamespaceGML  = "http://www.opengis.net/gml"
	NamespaceNRML = "http://openquake.org/xmlns/nrml/0.3"
)

var namespaces = map[string]string{
	"gml":  NamespaceGML,
	"nrml": NamespaceNRML,
}

// Namespaces returns a copy of the prefix bindings used by every field path.
func Namespaces() map[string]string {
	return maps.Clone(namespaces)
}

// Field is a compiled XPath bound to the gml and nrml prefixes.
type Field struct {
	path string
	expr *xpath.Expr
}

// NewField compiles path against the package namespace bindings.
func NewField(path string) (Field, error) {
	expr, err := xpath.CompileWithNS(path, namespaces)
	if err != nil {
		return Field{}, fmt.Errorf("compile xpath %q: %w", path, err)
	}
	return Field{path: path, expr: expr}, nil
}

func mustField(path string) Field {
	f, err := NewField(path)
	if err != nil {
		panic(err)
	}
	return f
}

// Path returns the XPath source text.
func (f Field) Path() string { return f.path }

func (f Field) String() string { return f.path }

var (
	fieldMagnitude      = mustField("//nrml:magnitude")
	fieldTectonicRegion = mustField("//nrml:tectonicRegion")
	fieldRake           = mustField("//nrml:rake")
	fieldStrike         = mustField("//nrml:strike")
	fieldDip            = mustField("//nrml:dip")
	fieldUpperDepth     = mustField("//nrml:upperSeismogenicDepth")
	fieldLowerDepth     = mustField("//nrml:lowerSeismogenicDepth")
	fieldPos            = mustField("//gml:pos")
	fieldPosList        = mustField("//gml:posList")
	fieldTopEdge        = mustField("//nrml:faultTopEdge/gml:LineString/gml:posList")
	fieldBottomEdge     = mustField("//nrml:faultBottomEdge/gml:LineString/gml:posList")
)

type marker struct {
	kind  rupture.Kind
	field Field
}

// markers are probed in this order; the first present wins.
var markers = []marker{
	{kind: rupture.KindPoint, field: mustField("//nrml:pointRupture")},
	{kind: rupture.KindSimpleFault, field: mustField("//nrml:simpleFaultRupture")},
	{kind: rupture.KindComplexFault, field: mustField("//nrml:complexFaultRupture")},
}
