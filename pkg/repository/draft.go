// SPDX-License-Identifier: Apache-2.0
package repository

// Well-known repository type identifiers served by the daemon's catalog.
const (
	TypeFS    = "fs"
	TypeURL   = "url"
	TypeS3    = "s3"
	TypeGCS   = "gcs"
	TypeAzure = "azure"
	TypeHDFS  = "hdfs"
)

// TypeSource is the wire identifier for the source-only wrapper repository.
// It is not a concrete type: it wraps one, recorded under
// SettingDelegateType in the stored document.
const TypeSource = "source"

// SettingDelegateType is the settings key carrying the wrapped concrete type
// in the wire encoding of a source-only repository.
const SettingDelegateType = "delegate_type"

// Draft is the in-progress repository definition edited across wizard steps.
// The source-only wrapper is an explicit flag; the legacy
// type=source/delegate_type encoding exists only at the wire boundary
// (see Definition and ParseDefinition).
type Draft struct {
	Name       string
	Type       string // concrete repository type, "" while none is chosen
	SourceOnly bool
	Settings   map[string]any // settings for the concrete type
}

// Patch is a partial draft update. Nil fields leave the draft untouched;
// a non-nil Settings replaces the settings map wholesale.
type Patch struct {
	Name       *string
	Type       *string
	SourceOnly *bool
	Settings   map[string]any
}

// Apply merges the patch onto d and returns the result. Shallow merge:
// each set field overwrites the corresponding draft field.
func (p Patch) Apply(d Draft) Draft {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Type != nil {
		d.Type = *p.Type
	}
	if p.SourceOnly != nil {
		d.SourceOnly = *p.SourceOnly
	}
	if p.Settings != nil {
		d.Settings = p.Settings
	}
	return d
}

// SelectType computes the patch for choosing concrete type t.
//
// While the source-only wrapper is active, only the wrapped type changes and
// settings are preserved. Otherwise switching to a different top-level type
// discards the prior settings: settings schemas are type-specific and do not
// carry over.
func SelectType(d Draft, t string) Patch {
	if d.SourceOnly {
		return Patch{Type: &t}
	}
	return Patch{Type: &t, Settings: map[string]any{}}
}

// SetSourceOnly computes the patch for switching the source-only wrapper on
// or off. The concrete type and its settings ride along untouched, so
// toggling on and back off is lossless.
func SetSourceOnly(d Draft, on bool) Patch {
	return Patch{SourceOnly: &on}
}

// EffectiveType is the type shown as selected in the catalog: the wrapped
// concrete type when source-only is active, the concrete type otherwise.
func EffectiveType(d Draft) string {
	return d.Type
}

// IsTypeSelected reports whether t is the draft's effective type. At most
// one type identifier satisfies this for any draft.
func IsTypeSelected(d Draft, t string) bool {
	return t != "" && EffectiveType(d) == t
}
