package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Rupture describes an NRML 0.3 rupture document for tests. Scalar fields
// hold the literal element text; an empty value omits the element unless
// its name is listed in Empty, in which case it is written with no content.
type Rupture struct {
	// Marker is the rupture element wrapping the body.
	Marker string
	// ExtraMarkers are written as empty sibling elements after Marker.
	ExtraMarkers []string

	Magnitude      string
	TectonicRegion string
	Rake           string
	Strike         string
	Dip            string
	UpperDepth     string
	LowerDepth     string
	Pos            string
	PosList        string
	TopEdge        string
	BottomEdge     string

	Empty []string
}

// PointRupture returns a complete point rupture fixture.
func PointRupture() Rupture {
	return Rupture{
		Marker:         "pointRupture",
		Magnitude:      "6.5",
		TectonicRegion: "Active Shallow Crust",
		Rake:           "90.0",
		Strike:         "45.0",
		Dip:            "75.0",
		Pos:            "-124.704 40.363 30.0",
	}
}

// SimpleFaultRupture returns a complete simple fault fixture with a three
// point trace.
func SimpleFaultRupture() Rupture {
	return Rupture{
		Marker:         "simpleFaultRupture",
		Magnitude:      "7.65",
		TectonicRegion: "Active Shallow Crust",
		Rake:           "15.0",
		Dip:            "60.0",
		UpperDepth:     "0.0",
		LowerDepth:     "15.0",
		PosList:        "-124.704 40.363 0.0 -124.977 41.214 0.0 -125.140 42.096 0.0",
	}
}

// ComplexFaultRupture returns a complete complex fault fixture whose edges
// have different point counts.
func ComplexFaultRupture() Rupture {
	return Rupture{
		Marker:         "complexFaultRupture",
		Magnitude:      "8.5",
		TectonicRegion: "Subduction Interface",
		Rake:           "90.0",
		TopEdge:        "-124.704 40.363 0.5 -124.977 41.214 0.5 -125.140 42.096 0.5",
		BottomEdge:     "-123.829 40.347 20.4 -124.137 41.218 17.6",
	}
}

// XML renders the document.
func (r Rupture) XML() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	b.WriteString(`<nrml xmlns:gml="http://www.opengis.net/gml" xmlns="http://openquake.org/xmlns/nrml/0.3" gml:id="n1">` + "\n")

	if r.Marker != "" {
		fmt.Fprintf(&b, "  <%s gml:id=\"r1\">\n", r.Marker)
		r.element(&b, "magnitude", r.Magnitude)
		r.element(&b, "tectonicRegion", r.TectonicRegion)
		r.element(&b, "rake", r.Rake)
		if r.has("pos", r.Pos) {
			b.WriteString("    <hypocenter><gml:Point>")
			r.inline(&b, "gml:pos", r.Pos)
			b.WriteString("</gml:Point></hypocenter>\n")
		}
		r.element(&b, "strike", r.Strike)
		b.WriteString("    <geometry>\n")
		if r.has("posList", r.PosList) {
			b.WriteString("      <faultTrace><gml:LineString>")
			r.inline(&b, "gml:posList", r.PosList)
			b.WriteString("</gml:LineString></faultTrace>\n")
		}
		r.element(&b, "dip", r.Dip)
		r.element(&b, "upperSeismogenicDepth", r.UpperDepth)
		r.element(&b, "lowerSeismogenicDepth", r.LowerDepth)
		if r.has("faultTopEdge", r.TopEdge) {
			b.WriteString("      <faultTopEdge><gml:LineString>")
			r.inline(&b, "gml:posList", r.TopEdge)
			b.WriteString("</gml:LineString></faultTopEdge>\n")
		}
		if r.has("faultBottomEdge", r.BottomEdge) {
			b.WriteString("      <faultBottomEdge><gml:LineString>")
			r.inline(&b, "gml:posList", r.BottomEdge)
			b.WriteString("</gml:LineString></faultBottomEdge>\n")
		}
		b.WriteString("    </geometry>\n")
		fmt.Fprintf(&b, "  </%s>\n", r.Marker)
	}
	for _, marker := range r.ExtraMarkers {
		fmt.Fprintf(&b, "  <%s/>\n", marker)
	}

	b.WriteString("</nrml>\n")
	return b.String()
}

// Write renders the document into dir/name and returns its path.
func (r Rupture) Write(t testing.TB, dir, name string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, name), r.XML())
}

func (r Rupture) has(name, value string) bool {
	return value != "" || slices.Contains(r.Empty, name)
}

func (r Rupture) element(b *strings.Builder, name, value string) {
	if !r.has(name, value) {
		return
	}
	b.WriteString("    ")
	r.inline(b, name, value)
	b.WriteString("\n")
}

func (r Rupture) inline(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "<%s>%s</%s>", name, value, name)
}
