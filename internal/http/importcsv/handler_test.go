package importcsv_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/budgetsync/internal/http/importcsv"
	"github.com/MrJamesThe3rd/budgetsync/internal/ingest"
)

const amexExport = "Date,Description,Amount\n12/15/2024,WHOLE FOODS MARKET,54.20\n"

func newRequest(t *testing.T, fields map[string]string, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)

		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestHandler_Import(t *testing.T) {
	type args struct {
		fields   map[string]string
		filename string
	}

	type testCase struct {
		name       string
		args       args
		setup      func(m *importcsv.MockRunner)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name: "Stored",
			args: args{fields: map[string]string{"source": "amex"}, filename: "activity.csv"},
			setup: func(m *importcsv.MockRunner) {
				m.EXPECT().RunSource(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, job ingest.Job) (*ingest.Report, error) {
						if job.Source != "amex" || len(job.Paths) != 1 {
							return nil, fmt.Errorf("unexpected job %+v", job)
						}

						if filepath.Ext(job.Paths[0]) != ".csv" {
							return nil, fmt.Errorf("extension lost: %s", job.Paths[0])
						}

						data, err := os.ReadFile(job.Paths[0])
						if err != nil || string(data) != amexExport {
							return nil, fmt.Errorf("upload not stored: %v", err)
						}

						return &ingest.Report{RunID: "run-1", Source: "amex", Rows: 1, Inserted: 1}, nil
					})
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"inserted":1`,
		},
		{
			name: "UnknownSource",
			args: args{fields: map[string]string{"source": "discover"}, filename: "activity.csv"},
			setup: func(m *importcsv.MockRunner) {
				m.EXPECT().RunSource(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: %q", ingest.ErrUnknownSource, "discover"))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "unknown source",
		},
		{
			name: "Unreadable",
			args: args{fields: map[string]string{"source": "amex"}, filename: "activity.csv"},
			setup: func(m *importcsv.MockRunner) {
				m.EXPECT().RunSource(gomock.Any(), gomock.Any()).
					Return(&ingest.Report{RunID: "run-2"}, fmt.Errorf("amex: %w", ingest.ErrNoReadableFiles))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"run_id":"run-2"`,
		},
		{
			name: "StoreFailure",
			args: args{fields: map[string]string{"source": "amex"}, filename: "activity.csv"},
			setup: func(m *importcsv.MockRunner) {
				m.EXPECT().RunSource(gomock.Any(), gomock.Any()).
					Return(&ingest.Report{}, errors.New("store amex: connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "connection refused",
		},
		{
			name:       "MissingSource",
			args:       args{filename: "activity.csv"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "source field is required",
		},
		{
			name:       "MissingFile",
			args:       args{fields: map[string]string{"source": "amex"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   "file field is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			runner := importcsv.NewMockRunner(ctrl)

			if tt.setup != nil {
				tt.setup(runner)
			}

			router := chi.NewRouter()
			importcsv.NewHandler(runner).Routes(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, newRequest(t, tt.args.fields, tt.args.filename, amexExport))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)

			if rec.Code == http.StatusCreated {
				var report ingest.Report
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
				assert.Equal(t, "run-1", report.RunID)
			}
		})
	}
}
