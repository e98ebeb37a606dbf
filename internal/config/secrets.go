// Package config provides configuration management for the Matchcast application.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// secretsFetchTimeout bounds the Secrets Manager round trip so a
// misconfigured region fails startup quickly instead of hanging it.
const secretsFetchTimeout = 10 * time.Second

// SecretsOverlay holds the credential fields kept out of the config
// file. Empty fields leave the file-supplied values in place.
type SecretsOverlay struct {
	DatabasePassword string `json:"database_password"`
	SportsAPIKey     string `json:"sports_api_key"`
	OddsFeedAPIKey   string `json:"odds_feed_api_key"`
}

// LoadSecretsFromAWS fetches the named secret from AWS Secrets Manager
// and overlays its non-empty fields onto cfg.
func LoadSecretsFromAWS(ctx context.Context, cfg *Config, region, secretName string) error {
	ctx, cancel := context.WithTimeout(ctx, secretsFetchTimeout)
	defer cancel()

	secrets, err := fetchSecrets(ctx, region, secretName)
	if err != nil {
		return err
	}

	secrets.apply(cfg)
	return nil
}

func fetchSecrets(ctx context.Context, region, secretName string) (*SecretsOverlay, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := secretsmanager.NewFromConfig(awsCfg)
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret from AWS Secrets Manager: %w", err)
	}

	return parseSecretValue(result)
}

// parseSecretValue decodes the secret payload; Secrets Manager returns
// either a string or a binary blob depending on how it was stored.
func parseSecretValue(result *secretsmanager.GetSecretValueOutput) (*SecretsOverlay, error) {
	var payload []byte
	switch {
	case result.SecretString != nil:
		payload = []byte(*result.SecretString)
	case result.SecretBinary != nil:
		payload = result.SecretBinary
	default:
		return nil, errors.New("no secret data found in AWS Secrets Manager")
	}

	var secrets SecretsOverlay
	if err := json.Unmarshal(payload, &secrets); err != nil {
		return nil, fmt.Errorf("failed to parse secret payload: %w", err)
	}
	return &secrets, nil
}

func (s *SecretsOverlay) apply(cfg *Config) {
	if s.DatabasePassword != "" {
		cfg.Database.Password = s.DatabasePassword
	}
	if s.SportsAPIKey != "" {
		cfg.SportsAPI.APIKey = s.SportsAPIKey
	}
	if s.OddsFeedAPIKey != "" {
		cfg.OddsFeed.APIKey = s.OddsFeedAPIKey
	}
}
