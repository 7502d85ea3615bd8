package ir

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// equalOpts treats nil and empty slices alike so that a node built by
// lowering and the same node rebuilt by a rewrite compare equal.
var equalOpts = []cmp.Option{cmpopts.EquateEmpty()}

// Equal reports whether a and b have the same full structural content.
func Equal(a, b FsType) bool {
	return cmp.Equal(a, b, equalOpts...)
}

// Diff returns a human-readable structural diff, empty when Equal(a, b).
func Diff(a, b FsType) string {
	return cmp.Diff(a, b, equalOpts...)
}

// Distinct removes structural duplicates, keeping the first occurrence of
// each alternative in its original position.
func Distinct(ts []FsType) []FsType {
	if ts == nil {
		return nil
	}
	out := make([]FsType, 0, len(ts))
	for _, t := range ts {
		if !containsEqual(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func containsEqual(ts []FsType, t FsType) bool {
	for _, x := range ts {
		if Equal(x, t) {
			return true
		}
	}
	return false
}
