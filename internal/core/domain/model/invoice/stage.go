package invoice

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Stage is one of the fixed workflow steps of an invoice.
//
//	Receiving ──> DocVerify ──> QCInspection ──> BVInspection ──> ReadyDispatch
//	                  │               ▲  │              ▲
//	                  └── !QC ────────┘  └── !BV ───────┘
//	                (skipped stages are stamped on the way through)
type Stage int

const (
	UnknownStage Stage = iota
	Receiving
	DocVerify
	QCInspection
	BVInspection
	ReadyDispatch
)

var stageNames = map[Stage]string{
	Receiving:     "receiving",
	DocVerify:     "doc_verify",
	QCInspection:  "qc_inspection",
	BVInspection:  "bv_inspection",
	ReadyDispatch: "ready_dispatch",
}

// Stages returns the workflow steps in order.
func Stages() []Stage {
	return []Stage{Receiving, DocVerify, QCInspection, BVInspection, ReadyDispatch}
}

// ParseStage maps a stored or submitted stage name back to its value.
func ParseStage(name string) (Stage, error) {
	for s, n := range stageNames {
		if n == name {
			return s, nil
		}
	}
	return UnknownStage, errs.NewWorkflowError(errs.ErrInvalidStage, fmt.Sprintf("%q is not a workflow stage", name))
}

func (s Stage) Validate() error {
	if _, ok := stageNames[s]; !ok {
		return errs.NewWorkflowError(errs.ErrInvalidStage, fmt.Sprintf("%d is not a workflow stage", int(s)))
	}
	return nil
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsAfter reports whether s comes later in the workflow than other.
func (s Stage) IsAfter(other Stage) bool {
	return s > other
}

// next returns the following stage and false once the list is exhausted.
func (s Stage) next() (Stage, bool) {
	if s >= ReadyDispatch || s < Receiving {
		return UnknownStage, false
	}
	return s + 1, true
}
