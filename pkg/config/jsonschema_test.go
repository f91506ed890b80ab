// SPDX-License-Identifier: Apache-2.0
package config

import (
	"encoding/json"
	"testing"
)

func TestGenerateJSONSchema_AllKeys(t *testing.T) {
	data, err := GenerateJSONSchema()
	if err != nil {
		t.Fatalf("GenerateJSONSchema() error = %v", err)
	}

	var schema map[string]interface{}
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatalf("generated schema is not valid JSON: %v", err)
	}

	props, ok := schema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("schema has no properties object")
	}

	// Top-level and nested keys both appear
	if _, ok := props["use-tui"]; !ok {
		t.Error("schema missing 'use-tui'")
	}
	server, ok := props["server"].(map[string]interface{})
	if !ok {
		t.Fatal("schema missing nested 'server' object")
	}
	serverProps, _ := server["properties"].(map[string]interface{})
	if _, ok := serverProps["url"]; !ok {
		t.Error("schema missing 'server.url'")
	}
}

func TestGenerateJSONSchemaForScope_ProjectExcludesSecrets(t *testing.T) {
	scope := ScopeProject
	data, err := GenerateJSONSchemaForScope(&scope)
	if err != nil {
		t.Fatalf("GenerateJSONSchemaForScope() error = %v", err)
	}

	var schema map[string]interface{}
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatalf("generated schema is not valid JSON: %v", err)
	}

	props := schema["properties"].(map[string]interface{})
	if _, ok := props["github-token"]; ok {
		t.Error("project schema should not expose 'github-token'")
	}
	if server, ok := props["server"].(map[string]interface{}); ok {
		serverProps, _ := server["properties"].(map[string]interface{})
		if _, ok := serverProps["token"]; ok {
			t.Error("project schema should not expose 'server.token'")
		}
	}
}

func TestGenerateJSONSchemaForScope_UserExcludesProjectOnly(t *testing.T) {
	scope := ScopeUser
	data, err := GenerateJSONSchemaForScope(&scope)
	if err != nil {
		t.Fatalf("GenerateJSONSchemaForScope() error = %v", err)
	}

	var schema map[string]interface{}
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatalf("generated schema is not valid JSON: %v", err)
	}

	props := schema["properties"].(map[string]interface{})
	repo, ok := props["repository"].(map[string]interface{})
	if !ok {
		t.Fatal("user schema missing 'repository' object")
	}
	repoProps, _ := repo["properties"].(map[string]interface{})
	if _, ok := repoProps["name-prefix"]; ok {
		t.Error("user schema should not expose 'repository.name-prefix'")
	}
	if _, ok := repoProps["default-type"]; !ok {
		t.Error("user schema missing 'repository.default-type'")
	}
}
