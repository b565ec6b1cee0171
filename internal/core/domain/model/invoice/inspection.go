package invoice

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// InspectionKind distinguishes quality control from third-party inspection.
type InspectionKind int

const (
	UnknownInspection InspectionKind = iota
	QC
	BV
)

var inspectionKindNames = map[InspectionKind]string{
	QC: "qc",
	BV: "bv",
}

func ParseInspectionKind(name string) (InspectionKind, error) {
	for k, n := range inspectionKindNames {
		if n == name {
			return k, nil
		}
	}
	return UnknownInspection, errs.NewValueIsInvalidErrorWithCause(
		"inspection kind",
		fmt.Errorf("%q is not one of qc, bv", name),
	)
}

func (k InspectionKind) String() string {
	if name, ok := inspectionKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// InspectionStatus is the state of a QC or BV inspection.
type InspectionStatus int

const (
	UnknownInspectionStatus InspectionStatus = iota
	InspectionPending
	InspectionScheduled
	InspectionInProgress
	InspectionPassed
	InspectionFailed
	InspectionInOrder
	InspectionBlocked
)

var inspectionStatusNames = map[InspectionStatus]string{
	InspectionPending:    "pending",
	InspectionScheduled:  "scheduled",
	InspectionInProgress: "in_progress",
	InspectionPassed:     "passed",
	InspectionFailed:     "failed",
	InspectionInOrder:    "in_order",
	InspectionBlocked:    "blocked",
}

func ParseInspectionStatus(name string) (InspectionStatus, error) {
	for s, n := range inspectionStatusNames {
		if n == name {
			return s, nil
		}
	}
	return UnknownInspectionStatus, errs.NewValueIsInvalidErrorWithCause(
		"inspection status",
		fmt.Errorf("%q is not a valid inspection status", name),
	)
}

func (s InspectionStatus) Validate() error {
	if _, ok := inspectionStatusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"inspection status",
			fmt.Errorf("%d is not a valid inspection status", int(s)),
		)
	}
	return nil
}

func (s InspectionStatus) String() string {
	if name, ok := inspectionStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Inspection is the recorded result of one inspection kind.
type Inspection struct {
	Status         InspectionStatus
	HasCertificate bool
}

func (i Inspection) Passed() bool {
	return i.Status == InspectionPassed
}
