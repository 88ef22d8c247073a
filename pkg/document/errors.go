// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package document

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// 🚨 Error kinds. Match them with errors.Is.
var (
	ErrNotFound = errors.Base("document not found")
	ErrIO       = errors.Base("document i/o failed")
	ErrEncoding = errors.Base("document is not valid UTF-8")
)

// Error describes a failed document operation
type Error struct {
	Kind error  // one of ErrNotFound, ErrIO, ErrEncoding
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newError(kind error, op, path string, err error) error {
	return errors.WithStack(&Error{Kind: kind, Op: op, Path: path, Err: err})
}
