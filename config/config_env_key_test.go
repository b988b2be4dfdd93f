package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"database": map[string]any{
			"mode": "sqlite",
			"url":  "",
		},
		"googleOAuth": map[string]any{
			"clientId": "",
		},
		"secretKey": map[string]any{
			"session": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "DATABASE_MODE", want: "database.mode"},
		{envKey: "DATABASE_URL", want: "database.url"},
		{envKey: "GOOGLEOAUTH_CLIENTID", want: "googleOAuth.clientId"},
		{envKey: "SECRETKEY_SESSION", want: "secretKey.session"},
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

func TestDatabaseConfig_Defaults(t *testing.T) {
	var cfg DatabaseConfig

	if got := cfg.EffectiveMode(); got != ModeSQLite {
		t.Fatalf("EffectiveMode() = %q, want %q", got, ModeSQLite)
	}
	if got := cfg.EffectivePath(); got != defaultSQLitePath {
		t.Fatalf("EffectivePath() = %q, want %q", got, defaultSQLitePath)
	}

	cfg.Mode = "POSTGRES"
	if got := cfg.EffectiveMode(); got != ModePostgres {
		t.Fatalf("EffectiveMode() = %q, want %q", got, ModePostgres)
	}
}
