package nrml

// Stage tracks the progress of a single read. Stages only move forward.
type Stage int

const (
	StageUnopened Stage = iota
	StageDocumentParsed
	StageScalarsRead
	StageTypeDispatched
	StageSurfaceBuilt
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageUnopened:
		return "unopened"
	case StageDocumentParsed:
		return "document_parsed"
	case StageScalarsRead:
		return "scalars_read"
	case StageTypeDispatched:
		return "type_dispatched"
	case StageSurfaceBuilt:
		return "surface_built"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}
