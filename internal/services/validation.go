package services

import (
	"fmt"

	"github.com/yukikurage/diet-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/diet-tracker-api/internal/errors"
)

const msgRequired = "This field is required."

// fieldErrors collects validation messages keyed by field name.
type fieldErrors map[string]string

// smallInt checks that a present value fits a positive small integer column.
func (f fieldErrors) smallInt(field string, v *int, min int) {
	if v == nil {
		return
	}
	switch {
	case *v < min:
		f[field] = fmt.Sprintf("Ensure this value is greater than or equal to %d.", min)
	case *v > constants.MaxSmallInt:
		f[field] = fmt.Sprintf("Ensure this value is less than or equal to %d.", constants.MaxSmallInt)
	}
}

func (f fieldErrors) missingPK(field string, id uint64) {
	f[field] = fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &apierrors.ValidationError{Fields: map[string]string(f)}
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
