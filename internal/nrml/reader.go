package nrml

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"faultline/internal/logging"
	"faultline/internal/rupture"
	"faultline/internal/tectonic"
)

// Option configures a Reader.
type Option func(*Reader)

// WithLogger routes stage tracing to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStrictMarkers rejects documents that carry more than one rupture marker.
func WithStrictMarkers(strict bool) Option {
	return func(r *Reader) { r.strict = strict }
}

// WithRegions replaces the tectonic region name lookup.
func WithRegions(lookup tectonic.Lookup) Option {
	return func(r *Reader) {
		if lookup != nil {
			r.regions = lookup
		}
	}
}

// Reader reads a single rupture from an NRML file. It keeps no state between
// calls and may be shared.
type Reader struct {
	path        string
	gridSpacing float64
	strict      bool
	regions     tectonic.Lookup
	logger      *slog.Logger
}

// NewReader prepares a reader for path. The path must name an existing
// regular file.
func NewReader(path string, gridSpacing float64, opts ...Option) (*Reader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &Error{Kind: KindDocumentRead, Source: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &Error{Kind: KindDocumentRead, Source: path, Detail: "not a regular file"}
	}

	r := &Reader{
		path:        path,
		gridSpacing: gridSpacing,
		regions:     tectonic.LookupName,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "nrml").With(logging.String(logging.FieldSource, path))
	return r, nil
}

// Path returns the document path.
func (r *Reader) Path() string { return r.path }

// GridSpacing returns the spacing attached to fault surfaces.
func (r *Reader) GridSpacing() float64 { return r.gridSpacing }

// Read parses the document and assembles the rupture it describes.
func (r *Reader) Read() (*rupture.Rupture, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, r.fail(err, StageUnopened)
	}
	defer file.Close()

	doc, err := Parse(file, r.path)
	if err != nil {
		return nil, r.fail(err, StageUnopened)
	}
	r.trace(StageDocumentParsed)

	return r.assemble(doc)
}

// ReadDocument assembles a rupture from an already parsed document, using
// the reader's grid spacing and options. The rupture takes its source from
// the document, falling back to the reader path.
func (r *Reader) ReadDocument(doc *Document) (*rupture.Rupture, error) {
	if doc == nil {
		return nil, r.fail(fmt.Errorf("nil document"), StageUnopened)
	}
	return r.assemble(doc)
}

func (r *Reader) assemble(doc *Document) (*rupture.Rupture, error) {
	stage := StageDocumentParsed

	magnitude, err := doc.Float(fieldMagnitude)
	if err != nil {
		return nil, r.fail(err, stage)
	}
	region, err := r.tectonicRegion(doc)
	if err != nil {
		return nil, r.fail(err, stage)
	}
	stage = StageScalarsRead
	r.trace(stage)

	kind, err := doc.RuptureKind(r.strict)
	if err != nil {
		return nil, r.fail(err, stage)
	}
	stage = StageTypeDispatched
	r.trace(stage, logging.String(logging.FieldSurface, string(kind)))

	geom, err := buildGeometry(doc, kind, r.gridSpacing)
	if err != nil {
		return nil, r.fail(err, stage)
	}
	r.trace(StageSurfaceBuilt, logging.Int("points", geom.surface.PointCount()))

	source := doc.Source()
	if source == "" {
		source = r.path
	}
	out := &rupture.Rupture{
		Source:         source,
		Magnitude:      magnitude,
		TectonicRegion: region,
		Rake:           geom.rake,
		Hypocenter:     geom.hypocenter,
		Surface:        geom.surface,
	}
	r.trace(StageDone,
		logging.String(logging.FieldSurface, string(kind)),
		logging.Float64("magnitude", magnitude),
	)
	return out, nil
}

func (r *Reader) tectonicRegion(doc *Document) (tectonic.Region, error) {
	text, err := doc.Text(fieldTectonicRegion)
	if err != nil {
		return tectonic.RegionUnknown, err
	}
	name := strings.TrimSpace(text)
	region, err := r.regions(name)
	if err != nil {
		return tectonic.RegionUnknown, &Error{
			Kind:   KindUnknownTectonicRegion,
			Field:  fieldTectonicRegion.path,
			Detail: fmt.Sprintf("%q", name),
			Err:    err,
		}
	}
	return region, nil
}

func (r *Reader) trace(stage Stage, attrs ...logging.Attr) {
	args := append([]any{logging.String(logging.FieldStage, stage.String())}, logging.Args(attrs...)...)
	r.logger.Debug("read stage reached", args...)
}

func (r *Reader) fail(err error, stage Stage) error {
	annotated := annotate(err, r.path, stage)
	r.logger.Debug("read failed",
		logging.String(logging.FieldStage, stage.String()),
		logging.String(logging.FieldErrorKind, string(KindOf(annotated))),
		logging.Error(err),
	)
	return annotated
}
