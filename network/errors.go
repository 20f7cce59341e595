// SPDX-License-Identifier: MIT

package network

import (
	"errors"
	"fmt"
)

// ErrDataConsistency classifies references to undeclared materials or
// processes. Branch with errors.Is(err, ErrDataConsistency).
var ErrDataConsistency = errors.New("network: inconsistent data")

// ConsistencyError reports one reference to an identifier that is absent
// from the declared material or process set.
type ConsistencyError struct {
	Table string // table holding the reference ("throughput", "demand", ...)
	Kind  string // "material" or "process"
	ID    string // offending identifier
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("network: %s references undeclared %s %q", e.Table, e.Kind, e.ID)
}

// Is makes every ConsistencyError match ErrDataConsistency.
func (e *ConsistencyError) Is(target error) bool { return target == ErrDataConsistency }
