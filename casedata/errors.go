// SPDX-License-Identifier: MIT

package casedata

import "errors"

// ErrConfiguration indicates contradictory case options, e.g. product-group
// condensation requested for a document that carries no product groups.
var ErrConfiguration = errors.New("casedata: configuration error")
