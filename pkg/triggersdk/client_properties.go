package triggersdk

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
)

// GetApplicationProperties returns the properties document as raw JSON.
func (c *Client) GetApplicationProperties(ctx context.Context) (ApplicationProperties, error) {
	cfg := c.GetConfig()
	if cfg.DemoMode {
		if err := c.EnsureValidToken(ctx); err != nil {
			return nil, err
		}
		return demoProperties(cfg), nil
	}

	resp, err := c.doAuthRequest(ctx, http.MethodGet, endpoint(cfg.TriggerURL, "/v1/application/properties/"), nil, nil)
	if err != nil {
		return nil, err
	}

	body, err := readBody(resp, OpGetProperties)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, errors.New("failed to decode response: properties are not valid JSON")
	}
	return ApplicationProperties(body), nil
}
