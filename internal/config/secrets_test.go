// Package config provides configuration management for the Matchcast application.
package config

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

func TestParseSecretValueString(t *testing.T) {
	payload := `{"database_password":"pw","sports_api_key":"sk","odds_feed_api_key":"ok"}`
	secrets, err := parseSecretValue(&secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(payload),
	})
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if secrets.DatabasePassword != "pw" || secrets.SportsAPIKey != "sk" || secrets.OddsFeedAPIKey != "ok" {
		t.Errorf("unexpected overlay: %+v", secrets)
	}
}

func TestParseSecretValueBinary(t *testing.T) {
	secrets, err := parseSecretValue(&secretsmanager.GetSecretValueOutput{
		SecretBinary: []byte(`{"database_password":"pw"}`),
	})
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if secrets.DatabasePassword != "pw" {
		t.Errorf("unexpected overlay: %+v", secrets)
	}
}

func TestParseSecretValueEmpty(t *testing.T) {
	if _, err := parseSecretValue(&secretsmanager.GetSecretValueOutput{}); err == nil {
		t.Error("expected error for empty secret payload")
	}
}

func TestSecretsOverlayApply(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Password = "file-pw"
	cfg.SportsAPI.APIKey = "file-key"

	overlay := &SecretsOverlay{SportsAPIKey: "vault-key"}
	overlay.apply(cfg)

	if cfg.SportsAPI.APIKey != "vault-key" {
		t.Errorf("expected overlay key to win, got %q", cfg.SportsAPI.APIKey)
	}
	// Empty overlay fields leave file values untouched.
	if cfg.Database.Password != "file-pw" {
		t.Errorf("expected file password preserved, got %q", cfg.Database.Password)
	}
}
