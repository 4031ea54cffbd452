package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"api": map[string]any{
			"baseUrl": "http://localhost:8081",
			"timeout": "30s",
		},
		"retry": map[string]any{
			"maxRetries":     2,
			"initialBackoff": "300ms",
		},
		"storage": map[string]any{
			"statePath": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "API_BASEURL", want: "api.baseUrl"},
		{envKey: "API_TIMEOUT", want: "api.timeout"},
		{envKey: "RETRY_MAXRETRIES", want: "retry.maxRetries"},
		{envKey: "RETRY_INITIALBACKOFF", want: "retry.initialBackoff"},
		{envKey: "STORAGE_STATEPATH", want: "storage.statePath"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
