package nrml

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"

	"faultline/internal/geo"
	"faultline/internal/rupture"
)

// Document is a parsed NRML tree. It is read-only after Parse.
type Document struct {
	root   *xmlquery.Node
	source string
}

// Parse decodes an XML document from r. source names the document in errors.
func Parse(r io.Reader, source string) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &Error{Kind: KindDocumentRead, Source: source, Err: err}
	}
	return &Document{root: root, source: source}, nil
}

// Source returns the identifier passed to Parse.
func (d *Document) Source() string { return d.source }

// Has reports whether f selects at least one node.
func (d *Document) Has(f Field) bool {
	return xmlquery.QuerySelector(d.root, f.expr) != nil
}

// Text returns the direct text of the first node selected by f. Text inside
// child elements and comments is not included.
func (d *Document) Text(f Field) (string, error) {
	node := xmlquery.QuerySelector(d.root, f.expr)
	if node == nil {
		return "", newError(KindMissingField, f.path, "")
	}
	return directText(node), nil
}

func directText(node *xmlquery.Node) string {
	if node.Type != xmlquery.ElementNode {
		return node.InnerText()
	}
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.TextNode || child.Type == xmlquery.CharDataNode {
			b.WriteString(child.Data)
		}
	}
	return b.String()
}

// Float reads a numeric scalar.
func (d *Document) Float(f Field) (float64, error) {
	text, err := d.Text(f)
	if err != nil {
		return 0, err
	}
	value, err := parseToken(strings.TrimSpace(text))
	if err != nil {
		return 0, withField(err, f.path)
	}
	return value, nil
}

// Location reads a single position.
func (d *Document) Location(f Field) (geo.Location, error) {
	text, err := d.Text(f)
	if err != nil {
		return geo.Location{}, err
	}
	loc, err := ParsePosition(text)
	if err != nil {
		return geo.Location{}, withField(err, f.path)
	}
	return loc, nil
}

// Trace reads a position list into a named trace. An empty list is
// returned as an empty trace; callers that need points must check.
func (d *Document) Trace(f Field, name string) (geo.FaultTrace, error) {
	text, err := d.Text(f)
	if err != nil {
		return geo.FaultTrace{}, err
	}
	points, err := ParsePositions(text)
	if err != nil {
		return geo.FaultTrace{}, withField(err, f.path)
	}
	return geo.NewFaultTrace(name, points...), nil
}

// RuptureKind probes the rupture markers in priority order and returns the
// first one present. With strict set, a document carrying more than one
// marker is rejected instead.
func (d *Document) RuptureKind(strict bool) (rupture.Kind, error) {
	var found []marker
	for _, m := range markers {
		if !d.Has(m.field) {
			continue
		}
		if !strict {
			return m.kind, nil
		}
		found = append(found, m)
	}

	switch len(found) {
	case 0:
		return "", newError(KindUnknownRuptureType, "",
			fmt.Sprintf("'%s' isn't a known rupture type", d.source))
	case 1:
		return found[0].kind, nil
	default:
		paths := make([]string, 0, len(found))
		for _, m := range found {
			paths = append(paths, m.field.path)
		}
		return "", newError(KindAmbiguousRuptureType, "",
			"multiple rupture markers present: "+strings.Join(paths, ", "))
	}
}
