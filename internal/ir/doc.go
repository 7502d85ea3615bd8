// Package ir provides the intermediate representation shared by every
// translation stage.
//
// This package contains the type definitions, the bottom-up rewrite
// primitive, structural equality, a canonical JSON dump and invariant
// validation. All other internal packages import ir; ir imports nothing
// internal.
//
// Key design constraints:
//   - FsType is sealed: only the variants declared in types.go implement it
//   - Nodes are values; a rewrite builds a new tree and never mutates the old one
//   - Ownership is a strict tree; the only cross-reference is a Mapped name
//   - Union alternatives are deduplicated and never contain null/undefined,
//     nullability lives in Union.Option
package ir
