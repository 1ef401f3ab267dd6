package triggersdk

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// AddRefresh uploads a CSV that starts refresh triggers. An empty marketCode
// means DefaultMarketCode.
func (c *Client) AddRefresh(ctx context.Context, file *File, marketCode string) (*RemediationResult, error) {
	return c.remediate(ctx, OpAddRefresh, ProcessAddRefreshTrigger, file, marketCode)
}

// StopRefresh uploads a CSV that stops refresh triggers. An empty marketCode
// means DefaultMarketCode.
func (c *Client) StopRefresh(ctx context.Context, file *File, marketCode string) (*RemediationResult, error) {
	return c.remediate(ctx, OpStopRefresh, ProcessStopRefresh, file, marketCode)
}

// ValidateFile checks file without touching the network.
func (c *Client) ValidateFile(file *File) error {
	switch {
	case file == nil || file.Name == "":
		return ErrNoFile
	case len(file.Content) == 0:
		return ErrEmptyFile
	case !strings.EqualFold(filepath.Ext(file.Name), ".csv"):
		return ErrInvalidFileType
	case c.maxUploadBytes > 0 && int64(len(file.Content)) > c.maxUploadBytes:
		return ErrFileTooLarge
	}
	return nil
}

func (c *Client) remediate(
	ctx context.Context,
	op string,
	processType ProcessType,
	file *File,
	marketCode string,
) (*RemediationResult, error) {
	if err := c.ValidateFile(file); err != nil {
		return nil, err
	}
	if marketCode == "" {
		marketCode = DefaultMarketCode
	}

	cfg := c.GetConfig()
	if cfg.DemoMode {
		if err := c.EnsureValidToken(ctx); err != nil {
			return nil, err
		}
		return demoRemediation(processType, file, marketCode), nil
	}

	body, contentType, err := remediationForm(file, processType, marketCode)
	if err != nil {
		return nil, err
	}

	resp, err := c.doAuthRequest(ctx, http.MethodPost, endpoint(cfg.TriggerURL, "/v2/remediation"), body,
		map[string]string{"Content-Type": contentType})
	if err != nil {
		return nil, err
	}

	var result RemediationResult
	if err := decodeJSON(resp, op, &result); err != nil {
		return nil, err
	}

	c.log.InfoContext(ctx, "remediation submitted",
		"process_type", processType,
		"market_code", marketCode,
		"file", file.Name,
		"status", result.Status,
		"id", result.ID,
	)
	return &result, nil
}

// remediationForm builds the multipart body for the remediation endpoint.
func remediationForm(file *File, processType ProcessType, marketCode string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, "", fmt.Errorf("failed to write form file: %w", err)
	}

	fields := [][2]string{
		{"processType", string(processType)},
		{"marketCode", marketCode},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", f[0], err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}
