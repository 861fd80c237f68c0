// Package flowcase talks to the Flowcase CV export API: it initiates report
// generation, polls until the vendor has rendered the CSV, and downloads the
// signed result.
package flowcase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/frahmantamala/flowcase-warehouse/internal"
)

// ReportTypes lists every CSV export the pipeline pulls, in fetch order. The
// downloaded files are named <report_type>.csv.
var ReportTypes = []string{
	"user_report",
	"usage_report",
	"project_experiences",
	"certifications",
	"courses",
	"languages",
	"technologies",
	"key_qualifications",
	"educations",
	"work_experiences",
	"positions",
	"blogs",
	"cv_roles",
}

type Config struct {
	// BaseURL overrides the https://<subdomain>.flowcase.com default; tests
	// point it at a local server.
	BaseURL      string
	Subdomain    string
	APIToken     string
	OfficeIDs    []string
	LangParams   []string
	HTTPTimeout  time.Duration
	PollInterval time.Duration
	PollTimeout  time.Duration
}

type Client struct {
	baseURL      string
	apiToken     string
	officeIDs    []string
	langParams   []string
	pollInterval time.Duration
	pollTimeout  time.Duration
	httpClient   *http.Client
	logger       *slog.Logger
}

func NewClient(config Config, logger *slog.Logger) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.flowcase.com", config.Subdomain)
	}

	httpTimeout := config.HTTPTimeout
	if httpTimeout <= 0 {
		httpTimeout = 30 * time.Second
	}
	pollInterval := config.PollInterval
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	pollTimeout := config.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = 10 * time.Minute
	}

	return &Client{
		baseURL:      baseURL,
		apiToken:     config.APIToken,
		officeIDs:    config.OfficeIDs,
		langParams:   config.LangParams,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
		httpClient:   &http.Client{Timeout: httpTimeout},
		logger:       logger,
	}
}

// ReportMeta is the vendor's report resource. CVReport.URL is a signed
// download link, present once State is "finished".
type ReportMeta struct {
	ID       string `json:"_id"`
	State    string `json:"state"`
	CVReport *struct {
		URL string `json:"url"`
	} `json:"cv_report"`
}

type country struct {
	Offices []struct {
		ID string `json:"_id"`
	} `json:"offices"`
}

func (c *Client) doJSON(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return internal.NewExternalError("flowcase request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return internal.NewExternalError(
			fmt.Sprintf("flowcase API returned status %d for %s", resp.StatusCode, req.URL.Path), nil)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return internal.NewExternalError("failed to decode flowcase response", err)
	}
	return nil
}

// FetchOfficeIDs returns the configured office ids, or walks
// /api/v1/countries and collects every office when none are configured.
func (c *Client) FetchOfficeIDs(ctx context.Context) ([]string, error) {
	if len(c.officeIDs) > 0 {
		return c.officeIDs, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/countries", nil)
	if err != nil {
		return nil, internal.NewInternalError("failed to create countries request", err)
	}

	var countries []country
	if err := c.doJSON(req, &countries); err != nil {
		return nil, err
	}

	var officeIDs []string
	for _, country := range countries {
		for _, office := range country.Offices {
			if office.ID != "" {
				officeIDs = append(officeIDs, office.ID)
			}
		}
	}
	c.logger.Info("resolved office ids from countries endpoint", "count", len(officeIDs))
	return officeIDs, nil
}

// InitiateReport asks the vendor to start rendering one report type as CSV.
func (c *Client) InitiateReport(ctx context.Context, reportType string, officeIDs []string) (*ReportMeta, error) {
	params := url.Values{}
	params.Set("encoding", "UTF-8")
	params.Set("output_format", "csv")
	params.Set("report_type", reportType)
	for _, lang := range c.langParams {
		params.Add("lang[]", lang)
	}

	payload := map[string]any{
		"office_ids": officeIDs,
		"must":       []any{},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, internal.NewInternalError("failed to marshal report request", err)
	}

	endpoint := c.baseURL + "/api/v2/cv-report?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, internal.NewInternalError("failed to create report request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var meta ReportMeta
	if err := c.doJSON(req, &meta); err != nil {
		return nil, err
	}
	c.logger.Info("report initiated", "report_type", reportType, "report_id", meta.ID)
	return &meta, nil
}

// PollReport fetches the report resource until its state is "finished". It
// gives up after the configured poll timeout.
func (c *Client) PollReport(ctx context.Context, reportID string) (*ReportMeta, error) {
	endpoint := c.baseURL + "/api/v2/cv-report/" + reportID
	deadline := time.Now().Add(c.pollTimeout)

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, internal.NewInternalError("failed to create poll request", err)
		}

		var meta ReportMeta
		if err := c.doJSON(req, &meta); err != nil {
			return nil, err
		}
		if meta.State == "finished" {
			return &meta, nil
		}

		if time.Now().After(deadline) {
			return nil, internal.NewTimeoutError(
				fmt.Sprintf("report %s did not finish within %s (state=%q)", reportID, c.pollTimeout, meta.State))
		}

		c.logger.Debug("report not ready", "report_id", reportID, "state", meta.State)
		select {
		case <-time.After(c.pollInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// DownloadReport saves the finished report's signed URL to destPath. The
// signed URL carries its own credentials, so no auth header is sent.
func (c *Client) DownloadReport(ctx context.Context, meta *ReportMeta, destPath string) error {
	if meta.CVReport == nil || meta.CVReport.URL == "" {
		return internal.NewNotFoundError("report has no download url", internal.ErrCodeReportNoURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, meta.CVReport.URL, nil)
	if err != nil {
		return internal.NewInternalError("failed to create download request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return internal.NewExternalError("report download failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return internal.NewExternalError(
			fmt.Sprintf("report download returned status %d", resp.StatusCode), nil)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return internal.NewInternalError("failed to create download directory", err)
	}
	f, err := os.Create(destPath)
	if err != nil {
		return internal.NewInternalError("failed to create report file", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return internal.NewInternalError("failed to write report file", err)
	}
	return nil
}

// FetchAllReports runs initiate, poll, download for every report type and
// writes the CSVs into outputDir under their standard filenames.
func (c *Client) FetchAllReports(ctx context.Context, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return internal.NewInternalError("failed to create report output directory", err)
	}

	officeIDs, err := c.FetchOfficeIDs(ctx)
	if err != nil {
		return err
	}

	for _, reportType := range ReportTypes {
		initMeta, err := c.InitiateReport(ctx, reportType, officeIDs)
		if err != nil {
			return err
		}

		finalMeta, err := c.PollReport(ctx, initMeta.ID)
		if err != nil {
			return err
		}

		dest := filepath.Join(outputDir, reportType+".csv")
		if err := c.DownloadReport(ctx, finalMeta, dest); err != nil {
			return err
		}
		c.logger.Info("report downloaded", "report_type", reportType, "dest", dest)
	}
	return nil
}
