package io

import (
	"fmt"

	"github.com/phil-mansfield/table"
)

// ReadAList reads a snapshot expansion factor list: a text table whose
// first column is the scale factor of each snapshot, earliest first.
// Comment lines starting with # are skipped.
func ReadAList(file string) ([]float64, error) {
	cols, err := table.ReadTable(file, []int{0}, nil)
	if err != nil {
		return nil, err
	}
	scales := cols[0]
	if len(scales) == 0 {
		return nil, fmt.Errorf(
			"The snapshot list %s does not contain any snapshots.", file,
		)
	}
	return scales, nil
}
