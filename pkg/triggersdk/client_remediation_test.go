package triggersdk_test

import (
	"context"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/aussiebroadwan/trigger/pkg/idx"
	"github.com/aussiebroadwan/trigger/pkg/triggersdk"
	"github.com/stretchr/testify/require"
)

// capturedForm is what the fake remediation endpoint received.
type capturedForm struct {
	mu            sync.Mutex
	authorization string
	processType   string
	marketCode    string
	fileName      string
	fileContent   string
}

func (c *capturedForm) handler(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.mu.Lock()
		c.authorization = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			c.processType = r.FormValue("processType")
			c.marketCode = r.FormValue("marketCode")
			if f, fh, err := r.FormFile("file"); err == nil {
				content, _ := io.ReadAll(f)
				_ = f.Close()
				c.fileName = fh.Filename
				c.fileContent = string(content)
			}
		}
		c.mu.Unlock()

		jsonHandler(status, v)(w, r)
	}
}

func TestStopRefresh_Success(t *testing.T) {
	u := newUpstream(t)
	form := &capturedForm{}
	u.setRemediation(form.handler(http.StatusOK, triggersdk.RemediationResult{Status: "OK", Message: "done"}))
	client, _ := newClient(t, u)

	res, err := client.StopRefresh(context.Background(), csvFile(), "036")
	require.NoError(t, err)
	require.Equal(t, &triggersdk.RemediationResult{Status: "OK", Message: "done"}, res)

	form.mu.Lock()
	defer form.mu.Unlock()

	require.Equal(t, "STOP_REFRESH", form.processType)
	require.Equal(t, "036", form.marketCode)
	require.Equal(t, "Bearer T", form.authorization)
	require.Equal(t, "accounts.csv", form.fileName)
	require.Equal(t, "account\n1001\n1002\n", form.fileContent)
	require.Equal(t, int32(1), u.tokenCalls.Load(), "token acquired on demand")
}

func TestAddRefresh_DefaultMarketCode(t *testing.T) {
	u := newUpstream(t)
	form := &capturedForm{}
	u.setRemediation(form.handler(http.StatusOK, triggersdk.RemediationResult{Status: "OK", Message: "queued", ID: "r-1"}))
	client, _ := newClient(t, u)

	res, err := client.AddRefresh(context.Background(), csvFile(), "")
	require.NoError(t, err)
	require.Equal(t, "r-1", res.ID)

	form.mu.Lock()
	defer form.mu.Unlock()

	require.Equal(t, "ADD_REFRESH_TRIGGER", form.processType)
	require.Equal(t, "036", form.marketCode)
}

func TestAddRefresh_CustomMarketCode(t *testing.T) {
	u := newUpstream(t)
	form := &capturedForm{}
	u.setRemediation(form.handler(http.StatusOK, triggersdk.RemediationResult{Status: "OK"}))
	client, _ := newClient(t, u)

	_, err := client.AddRefresh(context.Background(), csvFile(), "124")
	require.NoError(t, err)

	form.mu.Lock()
	defer form.mu.Unlock()
	require.Equal(t, "124", form.marketCode)
}

func TestAddRefresh_UpstreamFailure(t *testing.T) {
	u := newUpstream(t)
	u.setRemediation(statusHandler(http.StatusInternalServerError))
	client, _ := newClient(t, u)

	_, err := client.AddRefresh(context.Background(), csvFile(), "")
	require.ErrorContains(t, err, "Add refresh failed")

	apiErr, ok := triggersdk.AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Equal(t, "Internal Server Error", apiErr.Status)
	require.Equal(t, int32(1), u.remediationCalls.Load(), "no retry")
}

func TestStopRefresh_UpstreamFailure(t *testing.T) {
	u := newUpstream(t)
	u.setRemediation(statusHandler(http.StatusBadGateway))
	client, _ := newClient(t, u)

	_, err := client.StopRefresh(context.Background(), csvFile(), "")
	require.EqualError(t, err, "Stop refresh failed: Bad Gateway")
}

func TestAddRefresh_TokenFailureStopsUpload(t *testing.T) {
	u := newUpstream(t)
	u.setToken(statusHandler(http.StatusForbidden))
	client, _ := newClient(t, u)

	_, err := client.AddRefresh(context.Background(), csvFile(), "")
	require.EqualError(t, err, "Token generation failed: Forbidden")
	require.Equal(t, int32(0), u.remediationCalls.Load())
}

func TestRemediation_Validation(t *testing.T) {
	u := newUpstream(t)
	client, _ := newClient(t, u, triggersdk.WithMaxUploadBytes(8))

	tests := []struct {
		name string
		file *triggersdk.File
		want error
	}{
		{"nil file", nil, triggersdk.ErrNoFile},
		{"unnamed file", &triggersdk.File{Content: []byte("a")}, triggersdk.ErrNoFile},
		{"empty file", &triggersdk.File{Name: "a.csv"}, triggersdk.ErrEmptyFile},
		{"wrong extension", &triggersdk.File{Name: "a.xlsx", Content: []byte("a")}, triggersdk.ErrInvalidFileType},
		{"no extension", &triggersdk.File{Name: "csv", Content: []byte("a")}, triggersdk.ErrInvalidFileType},
		{"too large", &triggersdk.File{Name: "a.csv", Content: []byte("123456789")}, triggersdk.ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.AddRefresh(context.Background(), tt.file, "")
			require.ErrorIs(t, err, tt.want)
			require.True(t, triggersdk.IsValidationError(err))

			_, err = client.StopRefresh(context.Background(), tt.file, "")
			require.ErrorIs(t, err, tt.want)
		})
	}

	require.Equal(t, int32(0), u.tokenCalls.Load())
	require.Equal(t, int32(0), u.remediationCalls.Load())
}

func TestValidateFile_UppercaseExtension(t *testing.T) {
	client, err := triggersdk.New(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, client.ValidateFile(&triggersdk.File{Name: "ACCOUNTS.CSV", Content: []byte("x")}))
}

func TestDemoMode_NoNetwork(t *testing.T) {
	u := newUpstream(t)
	u.setToken(statusHandler(http.StatusTeapot))
	u.setRemediation(statusHandler(http.StatusTeapot))
	u.setProperties(statusHandler(http.StatusTeapot))

	cfg := u.config()
	cfg.DemoMode = true
	client, _ := newClient(t, u, triggersdk.WithDefaultConfig(cfg))
	ctx := context.Background()

	tok, err := client.GenerateToken(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3600), tok.ExpiresIn)
	require.True(t, client.IsTokenValid())

	status := client.TokenStatus()
	require.Equal(t, cfg.AppID, status.Subject)
	require.Equal(t, triggersdk.TokenScopes, status.Scopes)

	res, err := client.AddRefresh(ctx, csvFile(), "")
	require.NoError(t, err)
	require.Equal(t, "SUCCESS", res.Status)
	_, err = idx.Parse(res.ID)
	require.NoError(t, err)

	res, err = client.StopRefresh(ctx, csvFile(), "")
	require.NoError(t, err)
	require.Contains(t, res.Message, "STOP_REFRESH")

	props, err := client.GetApplicationProperties(ctx)
	require.NoError(t, err)
	require.Contains(t, string(props), `"demoMode":true`)

	_, err = client.AddRefresh(ctx, nil, "")
	require.ErrorIs(t, err, triggersdk.ErrNoFile)

	require.Equal(t, int32(0), u.tokenCalls.Load())
	require.Equal(t, int32(0), u.remediationCalls.Load())
	require.Equal(t, int32(0), u.propertiesCalls.Load())
}
