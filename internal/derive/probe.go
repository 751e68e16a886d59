// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package derive

import (
	"errors"
	"fmt"

	"github.com/dacolabs/autofuzz/pkg/schema"
)

// setValue writes v at path inside root, which must be a non-root location of
// a tree of map[string]any and []any values.
func setValue(root any, path schema.Path, v any) error {
	cur := root
	for i, acc := range path {
		isLast := i == len(path)-1
		switch {
		case acc.IsIndex():
			arr, ok := cur.([]any)
			if !ok || acc.Index < 0 || acc.Index >= len(arr) {
				return fmt.Errorf("no array element at %s", path[:i+1])
			}
			if isLast {
				arr[acc.Index] = v
				return nil
			}
			cur = arr[acc.Index]
		default:
			obj, ok := cur.(map[string]any)
			if !ok {
				return fmt.Errorf("no object at %s", path[:i])
			}
			if isLast {
				obj[acc.Name] = v
				return nil
			}
			cur = obj[acc.Name]
		}
	}
	return errors.New("cannot replace the root value")
}
