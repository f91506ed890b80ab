// SPDX-License-Identifier: Apache-2.0
package repository

import (
	"reflect"
	"testing"
)

func TestSelectType_SourceOnlyChangesDelegateOnly(t *testing.T) {
	d := Draft{
		Type:       TypeFS,
		SourceOnly: true,
		Settings:   map[string]any{"location": "/bak", "compress": true},
	}

	for _, next := range []string{TypeURL, TypeS3, TypeGCS} {
		got := SelectType(d, next).Apply(d)

		if !got.SourceOnly {
			t.Errorf("SelectType(%q) dropped the source-only wrapper", next)
		}
		if got.Type != next {
			t.Errorf("SelectType(%q): type = %q", next, got.Type)
		}
		if !reflect.DeepEqual(got.Settings, d.Settings) {
			t.Errorf("SelectType(%q) touched settings: %v", next, got.Settings)
		}
	}
}

func TestSelectType_ConcreteResetsSettings(t *testing.T) {
	d := Draft{
		Type:     TypeFS,
		Settings: map[string]any{"location": "/bak"},
	}

	got := SelectType(d, TypeURL).Apply(d)

	if got.Type != TypeURL {
		t.Errorf("expected type %q, got %q", TypeURL, got.Type)
	}
	if len(got.Settings) != 0 {
		t.Errorf("expected settings reset, got %v", got.Settings)
	}
}

func TestSetSourceOnly_RoundTripIsIdentity(t *testing.T) {
	starts := []Draft{
		{Type: TypeFS, Settings: map[string]any{"location": "/bak", "chunk_size": "1g"}},
		{Type: TypeS3, Settings: map[string]any{"bucket": "backups"}},
		{Type: TypeURL, Settings: map[string]any{}},
	}

	for _, d := range starts {
		wrapped := SetSourceOnly(d, true).Apply(d)
		unwrapped := SetSourceOnly(wrapped, false).Apply(wrapped)

		if unwrapped.Type != d.Type {
			t.Errorf("type changed across toggle: %q -> %q", d.Type, unwrapped.Type)
		}
		if unwrapped.SourceOnly {
			t.Errorf("source-only still set after toggling off")
		}
		if !reflect.DeepEqual(unwrapped.Settings, d.Settings) {
			t.Errorf("settings changed across toggle: %v -> %v", d.Settings, unwrapped.Settings)
		}
	}
}

func TestIsTypeSelected_ExactlyOne(t *testing.T) {
	catalog := []string{TypeFS, TypeURL, TypeS3, TypeGCS, TypeAzure, TypeHDFS}

	drafts := []Draft{
		{Type: TypeS3},
		{Type: TypeFS, SourceOnly: true},
	}

	for _, d := range drafts {
		selected := 0
		for _, id := range catalog {
			if IsTypeSelected(d, id) {
				selected++
			}
		}
		if selected != 1 {
			t.Errorf("draft %+v: %d types selected, want 1", d, selected)
		}
	}

	// No type chosen yet: nothing highlights.
	empty := Draft{}
	for _, id := range catalog {
		if IsTypeSelected(empty, id) {
			t.Errorf("empty draft reports %q selected", id)
		}
	}
}

func TestDefinition_WrapRecordsDelegate(t *testing.T) {
	d := Draft{Type: TypeFS, Settings: map[string]any{"location": "/bak"}}
	wrapped := SetSourceOnly(d, true).Apply(d)

	def := wrapped.Definition()
	want := Definition{
		Type:     TypeSource,
		Settings: map[string]any{"location": "/bak", SettingDelegateType: TypeFS},
	}
	if !reflect.DeepEqual(def, want) {
		t.Errorf("got %+v, want %+v", def, want)
	}
}

func TestDefinition_SelectWhileWrapped(t *testing.T) {
	d := ParseDefinition("nightly", Definition{
		Type:     TypeSource,
		Settings: map[string]any{SettingDelegateType: TypeFS, "location": "/bak"},
	})

	def := SelectType(d, TypeURL).Apply(d).Definition()
	want := Definition{
		Type:     TypeSource,
		Settings: map[string]any{SettingDelegateType: TypeURL, "location": "/bak"},
	}
	if !reflect.DeepEqual(def, want) {
		t.Errorf("got %+v, want %+v", def, want)
	}
}

func TestDefinition_UnwrapStripsDelegateKey(t *testing.T) {
	d := ParseDefinition("nightly", Definition{
		Type:     TypeSource,
		Settings: map[string]any{SettingDelegateType: TypeFS},
	})

	def := SetSourceOnly(d, false).Apply(d).Definition()
	want := Definition{Type: TypeFS, Settings: map[string]any{}}
	if !reflect.DeepEqual(def, want) {
		t.Errorf("got %+v, want %+v", def, want)
	}
}

func TestParseDefinition_RoundTrip(t *testing.T) {
	cases := []Definition{
		{Type: TypeFS, Settings: map[string]any{"location": "/bak", "compress": true}},
		{Type: TypeSource, Settings: map[string]any{SettingDelegateType: TypeS3, "bucket": "b"}},
		{Type: TypeURL, Settings: map[string]any{}},
	}

	for _, def := range cases {
		got := ParseDefinition("r", def).Definition()
		if !reflect.DeepEqual(got, def) {
			t.Errorf("round trip changed definition: %+v -> %+v", def, got)
		}
	}
}

func TestPatch_ApplyLeavesUnsetFields(t *testing.T) {
	d := Draft{Name: "nightly", Type: TypeFS, Settings: map[string]any{"location": "/bak"}}

	name := "weekly"
	got := Patch{Name: &name}.Apply(d)

	if got.Name != "weekly" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Type != TypeFS || got.SourceOnly || !reflect.DeepEqual(got.Settings, d.Settings) {
		t.Errorf("patch touched unset fields: %+v", got)
	}
}
