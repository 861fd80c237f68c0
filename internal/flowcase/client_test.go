package flowcase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/flowcase-warehouse/internal"
	"github.com/frahmantamala/flowcase-warehouse/internal/flowcase"
)

func TestFlowcaseClient(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Flowcase Client Suite")
}

var _ = Describe("Flowcase Client", func() {
	var (
		logger *slog.Logger
		ctx    context.Context
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx = context.Background()
	})

	newClient := func(baseURL string) *flowcase.Client {
		return flowcase.NewClient(flowcase.Config{
			BaseURL:      baseURL,
			APIToken:     "test-token",
			PollInterval: 5 * time.Millisecond,
			PollTimeout:  100 * time.Millisecond,
		}, logger)
	}

	Describe("FetchOfficeIDs", func() {
		It("should return configured office ids without calling the API", func() {
			client := flowcase.NewClient(flowcase.Config{
				BaseURL:   "http://unreachable.invalid",
				OfficeIDs: []string{"office-1", "office-2"},
			}, logger)

			ids, err := client.FetchOfficeIDs(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(Equal([]string{"office-1", "office-2"}))
		})

		It("should collect office ids from the countries endpoint", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/api/v1/countries"))
				Expect(r.Header.Get("Authorization")).To(Equal("Bearer test-token"))
				fmt.Fprint(w, `[
					{"offices": [{"_id": "no-oslo"}, {"_id": "no-bergen"}]},
					{"offices": [{"_id": "uk-london"}]}
				]`)
			}))
			defer server.Close()

			ids, err := newClient(server.URL).FetchOfficeIDs(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(Equal([]string{"no-oslo", "no-bergen", "uk-london"}))
		})

		It("should return an external error on a server failure", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			_, err := newClient(server.URL).FetchOfficeIDs(ctx)
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeExternal))
		})
	})

	Describe("InitiateReport", func() {
		It("should post the report request with csv encoding parameters", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.URL.Path).To(Equal("/api/v2/cv-report"))

				query := r.URL.Query()
				Expect(query.Get("encoding")).To(Equal("UTF-8"))
				Expect(query.Get("output_format")).To(Equal("csv"))
				Expect(query.Get("report_type")).To(Equal("user_report"))

				var payload struct {
					OfficeIDs []string `json:"office_ids"`
					Must      []any    `json:"must"`
				}
				Expect(json.NewDecoder(r.Body).Decode(&payload)).To(Succeed())
				Expect(payload.OfficeIDs).To(Equal([]string{"office-1"}))
				Expect(payload.Must).To(BeEmpty())

				fmt.Fprint(w, `{"_id": "rep-1", "state": "created"}`)
			}))
			defer server.Close()

			meta, err := newClient(server.URL).InitiateReport(ctx, "user_report", []string{"office-1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(meta.ID).To(Equal("rep-1"))
		})

		It("should repeat the lang parameter for each configured language", func() {
			var gotLangs []string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotLangs = r.URL.Query()["lang[]"]
				fmt.Fprint(w, `{"_id": "rep-1", "state": "created"}`)
			}))
			defer server.Close()

			client := flowcase.NewClient(flowcase.Config{
				BaseURL:    server.URL,
				LangParams: []string{"int", "no"},
			}, logger)

			_, err := client.InitiateReport(ctx, "user_report", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(gotLangs).To(Equal([]string{"int", "no"}))
		})
	})

	Describe("PollReport", func() {
		It("should poll until the report state is finished", func() {
			polls := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/api/v2/cv-report/rep-1"))
				polls++
				state := "working"
				if polls >= 3 {
					state = "finished"
				}
				fmt.Fprintf(w, `{"_id": "rep-1", "state": %q, "cv_report": {"url": "http://example.com/rep-1.csv"}}`, state)
			}))
			defer server.Close()

			meta, err := newClient(server.URL).PollReport(ctx, "rep-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(meta.State).To(Equal("finished"))
			Expect(polls).To(Equal(3))
		})

		It("should time out when the report never finishes", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"_id": "rep-1", "state": "working"}`)
			}))
			defer server.Close()

			_, err := newClient(server.URL).PollReport(ctx, "rep-1")
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeTimeout))
			Expect(appErr.Code).To(Equal(internal.ErrCodeReportTimeout))
		})
	})

	Describe("DownloadReport", func() {
		It("should save the signed url contents to the destination path", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Signed URL, no bearer token expected.
				Expect(r.Header.Get("Authorization")).To(BeEmpty())
				fmt.Fprint(w, "Email,UPN\nada@example.com,ada@corp.example.com\n")
			}))
			defer server.Close()

			meta := &flowcase.ReportMeta{ID: "rep-1", State: "finished"}
			raw := fmt.Sprintf(`{"_id": "rep-1", "state": "finished", "cv_report": {"url": %q}}`, server.URL+"/rep-1.csv")
			Expect(json.Unmarshal([]byte(raw), meta)).To(Succeed())

			dest := filepath.Join(GinkgoT().TempDir(), "reports", "user_report.csv")
			Expect(newClient(server.URL).DownloadReport(ctx, meta, dest)).To(Succeed())

			content, err := os.ReadFile(dest)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(content)).To(ContainSubstring("ada@example.com"))
		})

		It("should fail when the finished report carries no url", func() {
			meta := &flowcase.ReportMeta{ID: "rep-1", State: "finished"}

			err := newClient("http://unreachable.invalid").DownloadReport(ctx, meta, "/tmp/never-written.csv")
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeReportNoURL))
		})
	})

	Describe("FetchAllReports", func() {
		It("should download every report type under its standard filename", func() {
			var server *httptest.Server
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch {
				case r.URL.Path == "/api/v1/countries":
					fmt.Fprint(w, `[{"offices": [{"_id": "office-1"}]}]`)
				case r.URL.Path == "/api/v2/cv-report" && r.Method == http.MethodPost:
					fmt.Fprintf(w, `{"_id": "rep-%s", "state": "created"}`, r.URL.Query().Get("report_type"))
				case r.URL.Path == "/download":
					fmt.Fprint(w, "Header\nvalue\n")
				default:
					fmt.Fprintf(w, `{"_id": "rep-1", "state": "finished", "cv_report": {"url": %q}}`, server.URL+"/download")
				}
			}))
			defer server.Close()

			outputDir := filepath.Join(GinkgoT().TempDir(), "Q3_2025")
			Expect(newClient(server.URL).FetchAllReports(ctx, outputDir)).To(Succeed())

			for _, reportType := range flowcase.ReportTypes {
				_, err := os.Stat(filepath.Join(outputDir, reportType+".csv"))
				Expect(err).NotTo(HaveOccurred())
			}
		})
	})
})
