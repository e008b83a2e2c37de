// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"fmt"
)

// ComponentError - structural fault in one component of one group
//
// carries the group ordinal and the component index so a caller can
// name the offending component
type ComponentError struct {
	Group GroupType
	Index int
	Err   error
}

// Error - conform to the error interface
func (e *ComponentError) Error() string {
	return fmt.Sprintf("component %d of group %s: %s", e.Index, e.Group, e.Err)
}

// Unwrap - expose the underlying fault to errors.Is
func (e *ComponentError) Unwrap() error {
	return e.Err
}
