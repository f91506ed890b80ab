// SPDX-License-Identifier: Apache-2.0
package repository

// Definition is the wire form of a repository as the daemon stores it.
// Source-only repositories are encoded as type "source" with the wrapped
// concrete type recorded under settings.delegate_type.
type Definition struct {
	Type     string         `json:"type"`
	Settings map[string]any `json:"settings"`
}

// Definition encodes the draft into the daemon's document shape.
func (d Draft) Definition() Definition {
	settings := make(map[string]any, len(d.Settings)+1)
	for k, v := range d.Settings {
		settings[k] = v
	}

	if d.SourceOnly {
		if d.Type != "" {
			settings[SettingDelegateType] = d.Type
		}
		return Definition{Type: TypeSource, Settings: settings}
	}
	return Definition{Type: d.Type, Settings: settings}
}

// ParseDefinition decodes a stored document back into a draft for editing.
// A source-only document with no delegate_type yields an empty concrete
// type, matching a wrapper that was enabled before a type was chosen.
func ParseDefinition(name string, def Definition) Draft {
	settings := make(map[string]any, len(def.Settings))
	for k, v := range def.Settings {
		settings[k] = v
	}

	if def.Type == TypeSource {
		delegate, _ := settings[SettingDelegateType].(string)
		delete(settings, SettingDelegateType)
		return Draft{
			Name:       name,
			Type:       delegate,
			SourceOnly: true,
			Settings:   settings,
		}
	}

	return Draft{Name: name, Type: def.Type, Settings: settings}
}
