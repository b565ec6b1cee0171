package invoice

// Requirement names a per-invoice flag that makes a stage applicable.
type Requirement int

const (
	// Always marks stages that no flag can skip.
	Always Requirement = iota
	QCRequired
	BVRequired
)

// stageRequirements is the skip table: a stage whose requirement is not
// met by the invoice is auto-completed and passed over.
var stageRequirements = map[Stage]Requirement{
	Receiving:     Always,
	DocVerify:     Always,
	QCInspection:  QCRequired,
	BVInspection:  BVRequired,
	ReadyDispatch: Always,
}

// Requirements are the inspection flags set at intake.
type Requirements struct {
	QC bool
	BV bool
}

func (r Requirements) has(req Requirement) bool {
	switch req {
	case Always:
		return true
	case QCRequired:
		return r.QC
	case BVRequired:
		return r.BV
	default:
		return false
	}
}

// Applies reports whether the stage counts for this invoice. Stages outside
// the workflow never apply.
func (r Requirements) Applies(stage Stage) bool {
	req, ok := stageRequirements[stage]
	if !ok {
		return false
	}
	return r.has(req)
}

// ApplicableStages lists the stages that count towards progress, in order.
func (r Requirements) ApplicableStages() []Stage {
	out := make([]Stage, 0, len(stageRequirements))
	for _, s := range Stages() {
		if r.Applies(s) {
			out = append(out, s)
		}
	}
	return out
}

// Requires reports whether an inspection of the given kind must pass
// before the invoice is ready for transport.
func (r Requirements) Requires(kind InspectionKind) bool {
	switch kind {
	case QC:
		return r.QC
	case BV:
		return r.BV
	default:
		return false
	}
}
