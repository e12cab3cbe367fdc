package health_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/enrollhub/internal/app/features/health"
	"github.com/dalemusser/enrollhub/internal/testutil"
	"go.uber.org/zap"
)

func TestServe_DatabaseConnected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := health.NewHandler(db.Client(), zap.NewNop())

	req := testutil.NewRequest(http.MethodGet, "/health")
	rec := testutil.NewRecorder()
	h.Serve(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertJSONContentType(t)
	rec.AssertContains(t, `"status":"ok"`)
	rec.AssertContains(t, `"database":"connected"`)
}
