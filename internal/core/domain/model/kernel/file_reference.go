package kernel

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"dispatch/internal/pkg/errs"
)

// MaxFileReferenceLength is the widest correlation key accepted, in characters.
const MaxFileReferenceLength = 100

// FileReference is the correlation key shared by a packing unit, the load
// confirmation booked for it and the manifest it is filed on. The zero value
// is the empty reference, meaning "no key assigned yet".
type FileReference struct {
	value string
}

// NewFileReference trims surrounding whitespace and validates the result.
// Blank input yields the empty reference.
func NewFileReference(raw string) (FileReference, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return FileReference{}, nil
	}

	if n := utf8.RuneCountInString(value); n > MaxFileReferenceLength {
		return FileReference{}, errs.NewValueIsOutOfRangeError("fileReference", n, 1, MaxFileReferenceLength)
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return FileReference{}, errs.NewValueIsInvalidErrorWithCause(
				"fileReference",
				fmt.Errorf("control character %U is not allowed", r),
			)
		}
	}

	return FileReference{value: value}, nil
}

// MustFileReference panics on invalid input. Intended for tests and constants.
func MustFileReference(raw string) FileReference {
	ref, err := NewFileReference(raw)
	if err != nil {
		panic(err)
	}
	return ref
}

func (f FileReference) String() string {
	return f.value
}

func (f FileReference) IsEmpty() bool {
	return f.value == ""
}

// IsEqual compares references exactly; case and inner whitespace are significant.
func (f FileReference) IsEqual(other FileReference) bool {
	return f.value == other.value
}
