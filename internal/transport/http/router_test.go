package httptransport

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receipts/internal/platform/metrics"
	"receipts/internal/platform/middleware"
	"receipts/internal/receipt/handler"
	receiptmetrics "receipts/internal/receipt/metrics"
	"receipts/internal/receipt/service"
	"receipts/internal/receipt/store"
	"receipts/pkg/testutil"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	registry := prometheus.NewRegistry()

	svc, err := service.New(store.NewInMemory(nil, logger),
		service.WithLogger(logger),
		service.WithMetrics(receiptmetrics.New(registry)),
	)
	require.NoError(t, err)

	return NewRouter(logger, metrics.New(registry), registry, handler.New(svc, logger, 0))
}

func TestRouter(t *testing.T) {
	testutil.Given(t, "the HTTP router", func(t *testing.T) {
		router := newRouter(t)

		testutil.When(t, "calling GET /healthz", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))

			testutil.Then(t, "it should respond ok with a request id", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
			})
		})

		testutil.When(t, "processing a receipt", func(t *testing.T) {
			body := map[string]any{
				"retailer":     "M&M Corner Market",
				"purchaseDate": "2022-03-20",
				"purchaseTime": "14:33",
				"items": []map[string]string{
					{"shortDescription": "Gatorade", "price": "2.25"},
					{"shortDescription": "Gatorade", "price": "2.25"},
					{"shortDescription": "Gatorade", "price": "2.25"},
					{"shortDescription": "Gatorade", "price": "2.25"},
				},
				"total": "9.00",
			}
			rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/receipts/process", body))
			testutil.AssertStatusOK(t, rr)
			id := testutil.UnmarshalResponse[handler.ProcessResponse](t, rr).ID

			testutil.Then(t, "its points are served through the full middleware chain", func(t *testing.T) {
				rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/receipts/"+id+"/points"))
				testutil.AssertStatusOK(t, rr)
				assert.Equal(t, 109, testutil.UnmarshalResponse[handler.PointsResponse](t, rr).Points)
			})

			testutil.Then(t, "metrics expose the processed receipt and route latency", func(t *testing.T) {
				rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
				testutil.AssertStatusOK(t, rr)
				out := rr.Body.String()
				assert.Contains(t, out, "receipts_processed_total 1")
				assert.Contains(t, out, `route="/receipts/process"`)
				assert.Contains(t, out, `route="/receipts/{id}/points"`)
			})
		})

		testutil.When(t, "posting a non-JSON content type", func(t *testing.T) {
			req := testutil.NewRequestWithBody(t, http.MethodPost, "/receipts/process", "retailer=Target")
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "it should respond unsupported media type", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusUnsupportedMediaType, "unsupported_media_type")
			})
		})

		testutil.When(t, "calling an unknown route", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/nope"))

			testutil.Then(t, "it should respond not found", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusNotFound)
			})
		})

		testutil.When(t, "using the wrong method", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPut, "/receipts/process"))

			testutil.Then(t, "it should respond method not allowed", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
			})
		})
	})
}
