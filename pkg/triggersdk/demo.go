package triggersdk

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/trigger/pkg/idx"
	"github.com/aussiebroadwan/trigger/pkg/jwtx"
	"github.com/goccy/go-json"
)

// Simulated responses for DemoMode.

const (
	demoTokenLifetime = 3600 // seconds
	demoIssuer        = "trigger-demo"
)

// demoToken mints a JWT for cfg.AppID carrying TokenScopes, signed by a
// process-local key.
func demoToken(signer *jwtx.Signer, cfg ClientConfig, now time.Time) (*TokenResponse, error) {
	raw, err := signer.Sign(cfg.AppID, TokenScopes, now, demoTokenLifetime*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to sign demo token: %w", err)
	}
	return &TokenResponse{
		AccessToken: raw,
		ExpiresIn:   demoTokenLifetime,
		TokenType:   "Bearer",
	}, nil
}

func demoRemediation(processType ProcessType, file *File, marketCode string) *RemediationResult {
	return &RemediationResult{
		Status:  "SUCCESS",
		Message: fmt.Sprintf("demo mode: %s accepted %s for market %s", processType, file.Name, marketCode),
		ID:      idx.New().String(),
	}
}

func demoProperties(cfg ClientConfig) ApplicationProperties {
	raw, _ := json.Marshal(map[string]any{
		"demoMode": true,
		"appId":    cfg.AppID,
		"properties": map[string]string{
			"refresh.enabled":        "true",
			"refresh.defaultMarket":  DefaultMarketCode,
			"remediation.apiVersion": "v2",
		},
	})
	return raw
}
