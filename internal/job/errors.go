// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package job

import "errors"

// ErrMissingRequiredField marks a record whose title, department or location
// is empty after cleaning. The whole record is rejected; there is no partial
// result. Wrap with the field name: fmt.Errorf("%w: title", ErrMissingRequiredField).
var ErrMissingRequiredField = errors.New("missing required field")
