package nrml_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faultline/internal/geo"
	"faultline/internal/nrml"
	"faultline/internal/rupture"
	"faultline/internal/tectonic"
	"faultline/internal/testsupport"
)

func readFixture(t *testing.T, fixture testsupport.Rupture, opts ...nrml.Option) (*rupture.Rupture, error) {
	t.Helper()
	path := fixture.Write(t, t.TempDir(), "rupture.xml")
	reader, err := nrml.NewReader(path, 1.0, opts...)
	require.NoError(t, err)
	return reader.Read()
}

func requireReadError(t *testing.T, err error, kind nrml.Kind) *nrml.Error {
	t.Helper()
	require.Error(t, err)
	var nerr *nrml.Error
	require.True(t, errors.As(err, &nerr), "expected *nrml.Error, got %T: %v", err, err)
	require.Equal(t, kind, nerr.Kind, "unexpected error: %v", err)
	return nerr
}

func TestReadPointRupture(t *testing.T) {
	got, err := readFixture(t, testsupport.PointRupture())
	require.NoError(t, err)

	assert.Equal(t, 6.5, got.Magnitude)
	assert.Equal(t, 90.0, got.Rake)
	assert.Equal(t, tectonic.ActiveShallow, got.TectonicRegion)
	assert.Equal(t, rupture.KindPoint, got.Kind())

	surface, ok := got.Surface.(rupture.PointSurface)
	require.True(t, ok, "expected PointSurface, got %T", got.Surface)
	want := geo.NewLocation(40.363, -124.704, 30.0)
	assert.Equal(t, want, surface.Location)
	assert.Equal(t, 45.0, surface.Strike)
	assert.Equal(t, 75.0, surface.Dip)

	require.NotNil(t, got.Hypocenter)
	assert.Equal(t, want, *got.Hypocenter)
}

func TestReadSimpleFaultRupture(t *testing.T) {
	got, err := readFixture(t, testsupport.SimpleFaultRupture())
	require.NoError(t, err)

	assert.Equal(t, 7.65, got.Magnitude)
	assert.Equal(t, 15.0, got.Rake)
	assert.Nil(t, got.Hypocenter)

	surface, ok := got.Surface.(rupture.SimpleFaultSurface)
	require.True(t, ok, "expected SimpleFaultSurface, got %T", got.Surface)
	assert.Equal(t, 60.0, surface.Dip)
	assert.Equal(t, 0.0, surface.UpperSeismogenicDepth)
	assert.Equal(t, 15.0, surface.LowerSeismogenicDepth)
	assert.Equal(t, 1.0, surface.GridSpacing)
	assert.Equal(t, "", surface.Trace.Name())
	assert.Equal(t, []geo.Location{
		geo.NewLocation(40.363, -124.704, 0),
		geo.NewLocation(41.214, -124.977, 0),
		geo.NewLocation(42.096, -125.140, 0),
	}, surface.Trace.Points())
}

func TestReadComplexFaultRupture(t *testing.T) {
	got, err := readFixture(t, testsupport.ComplexFaultRupture())
	require.NoError(t, err)

	assert.Equal(t, 8.5, got.Magnitude)
	assert.Equal(t, 90.0, got.Rake)
	assert.Equal(t, tectonic.SubductionInterface, got.TectonicRegion)

	surface, ok := got.Surface.(rupture.ComplexFaultSurface)
	require.True(t, ok, "expected ComplexFaultSurface, got %T", got.Surface)
	require.Equal(t, 3, surface.TopTrace.Len())
	require.Equal(t, 2, surface.BottomTrace.Len())
	assert.Equal(t, geo.NewLocation(40.363, -124.704, 0.5), surface.TopTrace.First())
	assert.Equal(t, geo.NewLocation(42.096, -125.140, 0.5), surface.TopTrace.Last())
	assert.Equal(t, geo.NewLocation(40.347, -123.829, 20.4), surface.BottomTrace.First())
	assert.Equal(t, geo.NewLocation(41.218, -124.137, 17.6), surface.BottomTrace.Last())
	assert.Equal(t, 1.0, surface.GridSpacing)
}

func TestReadWithoutMarkerFailsWithUnknownRuptureType(t *testing.T) {
	fixture := testsupport.PointRupture()
	fixture.Marker = "areaSource"

	got, err := readFixture(t, fixture)
	assert.Nil(t, got)
	nerr := requireReadError(t, err, nrml.KindUnknownRuptureType)
	assert.ErrorIs(t, err, nrml.ErrUnknownRuptureType)
	assert.Equal(t, nrml.StageScalarsRead, nerr.Stage)
	assert.Contains(t, err.Error(), "isn't a known rupture type")
}

func TestReadMissingMagnitudeFailsBeforeDispatch(t *testing.T) {
	// No marker and broken geometry: only the scalar read may fail.
	fixture := testsupport.PointRupture()
	fixture.Magnitude = ""
	fixture.Marker = "unknownRupture"
	fixture.Pos = "not numbers"

	got, err := readFixture(t, fixture)
	assert.Nil(t, got)
	nerr := requireReadError(t, err, nrml.KindMissingField)
	assert.ErrorIs(t, err, nrml.ErrMissingField)
	assert.Equal(t, "//nrml:magnitude", nerr.Field)
	assert.Equal(t, nrml.StageDocumentParsed, nerr.Stage)
}

func TestReadMissingTectonicRegion(t *testing.T) {
	fixture := testsupport.SimpleFaultRupture()
	fixture.TectonicRegion = ""

	_, err := readFixture(t, fixture)
	nerr := requireReadError(t, err, nrml.KindMissingField)
	assert.Equal(t, "//nrml:tectonicRegion", nerr.Field)
}

func TestReadUnknownTectonicRegionKeepsCause(t *testing.T) {
	fixture := testsupport.PointRupture()
	fixture.TectonicRegion = "Martian Highlands"

	_, err := readFixture(t, fixture)
	requireReadError(t, err, nrml.KindUnknownTectonicRegion)
	assert.ErrorIs(t, err, tectonic.ErrUnknownRegion)
	assert.ErrorIs(t, err, nrml.ErrUnknownTectonicRegion)
}

func TestReadCustomRegionLookup(t *testing.T) {
	fixture := testsupport.PointRupture()
	fixture.TectonicRegion = "ASC"

	lookup := func(name string) (tectonic.Region, error) {
		if name == "ASC" {
			return tectonic.ActiveShallow, nil
		}
		return tectonic.LookupName(name)
	}
	got, err := readFixture(t, fixture, nrml.WithRegions(lookup))
	require.NoError(t, err)
	assert.Equal(t, tectonic.ActiveShallow, got.TectonicRegion)
}

func TestReadMissingGeometryFields(t *testing.T) {
	tests := []struct {
		name    string
		fixture func() testsupport.Rupture
		field   string
	}{
		{
			name: "point strike",
			fixture: func() testsupport.Rupture {
				f := testsupport.PointRupture()
				f.Strike = ""
				return f
			},
			field: "//nrml:strike",
		},
		{
			name: "point position",
			fixture: func() testsupport.Rupture {
				f := testsupport.PointRupture()
				f.Pos = ""
				return f
			},
			field: "//gml:pos",
		},
		{
			name: "simple fault lower depth",
			fixture: func() testsupport.Rupture {
				f := testsupport.SimpleFaultRupture()
				f.LowerDepth = ""
				return f
			},
			field: "//nrml:lowerSeismogenicDepth",
		},
		{
			name: "simple fault trace",
			fixture: func() testsupport.Rupture {
				f := testsupport.SimpleFaultRupture()
				f.PosList = ""
				return f
			},
			field: "//gml:posList",
		},
		{
			name: "complex fault bottom edge",
			fixture: func() testsupport.Rupture {
				f := testsupport.ComplexFaultRupture()
				f.BottomEdge = ""
				return f
			},
			field: "//nrml:faultBottomEdge/gml:LineString/gml:posList",
		},
		{
			name: "complex fault rake",
			fixture: func() testsupport.Rupture {
				f := testsupport.ComplexFaultRupture()
				f.Rake = ""
				return f
			},
			field: "//nrml:rake",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readFixture(t, tt.fixture())
			assert.Nil(t, got)
			nerr := requireReadError(t, err, nrml.KindMissingField)
			assert.Equal(t, tt.field, nerr.Field)
			assert.Equal(t, nrml.StageTypeDispatched, nerr.Stage)
		})
	}
}

func TestReadMalformedValues(t *testing.T) {
	tests := []struct {
		name    string
		fixture func() testsupport.Rupture
		kind    nrml.Kind
	}{
		{
			name: "magnitude",
			fixture: func() testsupport.Rupture {
				f := testsupport.PointRupture()
				f.Magnitude = "big"
				return f
			},
			kind: nrml.KindMalformedNumber,
		},
		{
			name: "dip",
			fixture: func() testsupport.Rupture {
				f := testsupport.SimpleFaultRupture()
				f.Dip = "steep"
				return f
			},
			kind: nrml.KindMalformedNumber,
		},
		{
			name: "trace token",
			fixture: func() testsupport.Rupture {
				f := testsupport.SimpleFaultRupture()
				f.PosList = "1 2 3 4 x 6"
				return f
			},
			kind: nrml.KindMalformedNumber,
		},
		{
			name: "trace arity",
			fixture: func() testsupport.Rupture {
				f := testsupport.SimpleFaultRupture()
				f.PosList = "1 2 3 4"
				return f
			},
			kind: nrml.KindMalformedGeometry,
		},
		{
			name: "hypocenter arity",
			fixture: func() testsupport.Rupture {
				f := testsupport.PointRupture()
				f.Pos = "1 2"
				return f
			},
			kind: nrml.KindMalformedGeometry,
		},
		{
			name: "empty top edge",
			fixture: func() testsupport.Rupture {
				f := testsupport.ComplexFaultRupture()
				f.TopEdge = ""
				f.Empty = []string{"faultTopEdge"}
				return f
			},
			kind: nrml.KindMalformedGeometry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readFixture(t, tt.fixture())
			assert.Nil(t, got)
			requireReadError(t, err, tt.kind)
		})
	}
}

func TestReadMarkerPriority(t *testing.T) {
	fixture := testsupport.PointRupture()
	fixture.ExtraMarkers = []string{"simpleFaultRupture", "complexFaultRupture"}

	got, err := readFixture(t, fixture)
	require.NoError(t, err)
	assert.Equal(t, rupture.KindPoint, got.Kind())
}

func TestReadStrictMarkersRejectsAmbiguousDocument(t *testing.T) {
	fixture := testsupport.SimpleFaultRupture()
	fixture.ExtraMarkers = []string{"complexFaultRupture"}

	got, err := readFixture(t, fixture, nrml.WithStrictMarkers(true))
	assert.Nil(t, got)
	nerr := requireReadError(t, err, nrml.KindAmbiguousRuptureType)
	assert.Contains(t, nerr.Detail, "//nrml:simpleFaultRupture")
	assert.Contains(t, nerr.Detail, "//nrml:complexFaultRupture")

	got, err = readFixture(t, testsupport.SimpleFaultRupture(), nrml.WithStrictMarkers(true))
	require.NoError(t, err)
	assert.Equal(t, rupture.KindSimpleFault, got.Kind())
}

func TestNewReaderRequiresRegularFile(t *testing.T) {
	dir := t.TempDir()

	_, err := nrml.NewReader(dir, 1.0)
	requireReadError(t, err, nrml.KindDocumentRead)

	_, err = nrml.NewReader(filepath.Join(dir, "missing.xml"), 1.0)
	nerr := requireReadError(t, err, nrml.KindDocumentRead)
	assert.True(t, errors.Is(err, os.ErrNotExist), "expected not-exist cause, got %v", nerr.Err)
}

func TestReadMalformedXML(t *testing.T) {
	path := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "broken.xml"), "<nrml><pointRupture></nrml>")
	reader, err := nrml.NewReader(path, 1.0)
	require.NoError(t, err)

	got, err := reader.Read()
	assert.Nil(t, got)
	nerr := requireReadError(t, err, nrml.KindDocumentRead)
	assert.Equal(t, nrml.StageUnopened, nerr.Stage)
	assert.Equal(t, path, nerr.Source)
}

func TestReadFileRemovedAfterConstruction(t *testing.T) {
	path := testsupport.PointRupture().Write(t, t.TempDir(), "gone.xml")
	reader, err := nrml.NewReader(path, 1.0)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	_, err = reader.Read()
	requireReadError(t, err, nrml.KindDocumentRead)
}

func TestReaderIsReusableAcrossGoroutines(t *testing.T) {
	path := testsupport.SimpleFaultRupture().Write(t, t.TempDir(), "shared.xml")
	reader, err := nrml.NewReader(path, 2.0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := reader.Read()
			if err != nil {
				errs <- err
				return
			}
			if got.Surface.(rupture.SimpleFaultSurface).GridSpacing != 2.0 {
				errs <- errors.New("grid spacing not propagated")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestReadLogsStagesAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture := testsupport.ComplexFaultRupture()
	fixture.BottomEdge = ""
	_, err := readFixture(t, fixture, nrml.WithLogger(logger))
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "stage=type_dispatched")
	assert.Contains(t, out, "error_kind=missing_field")
	assert.True(t, strings.Contains(out, "component=nrml"), "missing component attr: %s", out)
}

func TestParseDocumentFromReader(t *testing.T) {
	doc, err := nrml.Parse(strings.NewReader(testsupport.PointRupture().XML()), "inline")
	require.NoError(t, err)
	assert.Equal(t, "inline", doc.Source())

	kind, err := doc.RuptureKind(false)
	require.NoError(t, err)
	assert.Equal(t, rupture.KindPoint, kind)

	magnitude, err := nrml.NewField("//nrml:magnitude")
	require.NoError(t, err)
	value, err := doc.Float(magnitude)
	require.NoError(t, err)
	assert.Equal(t, 6.5, value)
}

func TestNewFieldRejectsBadPath(t *testing.T) {
	_, err := nrml.NewField("//nrml:magnitude[")
	assert.Error(t, err)
}

func TestReadDocumentAssemblesParsedDocument(t *testing.T) {
	path := testsupport.PointRupture().Write(t, t.TempDir(), "anchor.xml")
	reader, err := nrml.NewReader(path, 2.5)
	require.NoError(t, err)

	doc, err := nrml.Parse(strings.NewReader(testsupport.SimpleFaultRupture().XML()), "inline.xml")
	require.NoError(t, err)

	got, err := reader.ReadDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "inline.xml", got.Source)
	assert.Equal(t, rupture.KindSimpleFault, got.Kind())
	surface, ok := got.Surface.(rupture.SimpleFaultSurface)
	require.True(t, ok)
	assert.Equal(t, 2.5, surface.GridSpacing)
}

func TestReadDocumentRejectsNilDocument(t *testing.T) {
	path := testsupport.PointRupture().Write(t, t.TempDir(), "anchor.xml")
	reader, err := nrml.NewReader(path, 1.0)
	require.NoError(t, err)

	got, err := reader.ReadDocument(nil)
	assert.Nil(t, got)
	nerr := requireReadError(t, err, nrml.KindDocumentRead)
	assert.Equal(t, nrml.StageUnopened, nerr.Stage)
	assert.Equal(t, path, nerr.Source)
}

func TestNamespacesAndFieldPath(t *testing.T) {
	ns := nrml.Namespaces()
	assert.Equal(t, map[string]string{"gml": nrml.NamespaceGML, "nrml": nrml.NamespaceNRML}, ns)

	ns["nrml"] = "urn:changed"
	assert.Equal(t, nrml.NamespaceNRML, nrml.Namespaces()["nrml"])

	field, err := nrml.NewField("//nrml:faultTopEdge/gml:LineString/gml:posList")
	require.NoError(t, err)
	assert.Equal(t, "//nrml:faultTopEdge/gml:LineString/gml:posList", field.Path())
	assert.Equal(t, field.Path(), field.String())
}

func TestReadNonFiniteScalars(t *testing.T) {
	tests := map[string]func(*testsupport.Rupture){
		"NaN magnitude":   func(f *testsupport.Rupture) { f.Magnitude = "NaN" },
		"infinite dip":    func(f *testsupport.Rupture) { f.Dip = "Inf" },
		"NaN lower depth": func(f *testsupport.Rupture) { f.LowerDepth = "NaN" },
		"NaN trace":       func(f *testsupport.Rupture) { f.PosList = "NaN 40.0 0.0 -124.9 41.2 0.0" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			fixture := testsupport.SimpleFaultRupture()
			mutate(&fixture)
			got, err := readFixture(t, fixture)
			assert.Nil(t, got)
			requireReadError(t, err, nrml.KindMalformedNumber)
		})
	}
}

func TestScalarTextIgnoresChildMarkup(t *testing.T) {
	xml := strings.Replace(testsupport.PointRupture().XML(),
		"<magnitude>6.5</magnitude>",
		"<magnitude> 6.5<!-- moment --><note>revised</note></magnitude>", 1)
	require.Contains(t, xml, "<note>revised</note>")

	doc, err := nrml.Parse(strings.NewReader(xml), "annotated.xml")
	require.NoError(t, err)
	magnitude, err := nrml.NewField("//nrml:magnitude")
	require.NoError(t, err)

	text, err := doc.Text(magnitude)
	require.NoError(t, err)
	assert.Equal(t, " 6.5", text)

	value, err := doc.Float(magnitude)
	require.NoError(t, err)
	assert.Equal(t, 6.5, value)
}
