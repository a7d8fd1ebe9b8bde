package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/medicshift/shift-report-backend/internal/config"
	"github.com/medicshift/shift-report-backend/internal/domain/medic"
	"github.com/medicshift/shift-report-backend/internal/domain/report"
	"github.com/medicshift/shift-report-backend/internal/domain/shift"
	"github.com/medicshift/shift-report-backend/internal/pkg/fingerprint"
	"github.com/medicshift/shift-report-backend/internal/pkg/jwt"
	"github.com/medicshift/shift-report-backend/internal/pkg/sheets"
	"github.com/medicshift/shift-report-backend/internal/pkg/shifttime"
	"github.com/medicshift/shift-report-backend/internal/pkg/sse"
	sheetrepo "github.com/medicshift/shift-report-backend/internal/repository/sheet"
	medicService "github.com/medicshift/shift-report-backend/internal/service/medic"
	reportService "github.com/medicshift/shift-report-backend/internal/service/report"
	shiftService "github.com/medicshift/shift-report-backend/internal/service/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret    = "test-secret-key-for-jwt"
	handlerTestAccessExp = "1h"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type handlerTestEnv struct {
	router  *chi.Mux
	store   *sheets.MemoryStore
	jwt     jwt.Service
	reports report.ReportService
	shifts  *shiftService.ShiftServiceImpl
}

func newHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	store := sheets.NewMemoryStore()
	store.Load("Medic_card", [][]string{
		{"ts", "name", "phone", "mail", "city", "id"},
		{"", "דנה לוי", "", "", "", "012345678"},
	})
	store.Load("Doctor_card", [][]string{
		{"name", "type"},
		{"כהן", "רפואה שלמה"},
		{"רונית", "הכשרה"},
	})
	store.Load("Shift_card", [][]string{
		{"ts", "medic", "type", "doctor", "date", "start", "end", "calculated", "reported"},
		{"", "דנה לוי", "רפואה שלמה", "כהן", "05/01/2024", "08:00", "10:00", "02:00", ""},
	})

	cfg := &config.Config{App: config.AppConfig{
		Env:                "test",
		LogLevel:           "error",
		CORSAllowedOrigins: []string{"http://localhost:5173"},
	}}

	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)
	shiftRepo := sheetrepo.NewShiftRepository(store, "Shift_card")
	reports := reportService.NewReportService(shiftRepo, shifttime.NewAggregator(time.UTC, nil), sse.NewHub())
	shifts := shiftService.NewShiftService(shiftRepo, reports, nil, "", time.UTC)
	medics := medicService.NewMedicService(
		sheetrepo.NewMedicRepository(store, "Medic_card"),
		sheetrepo.NewDoctorRepository(store, "Doctor_card"),
		jwtService,
		fingerprint.New([]byte(handlerTestSecret)),
	)

	router := NewRouter(cfg, jwtService,
		NewMedicHandler(medics),
		NewShiftHandler(shifts),
		NewReportHandler(reports),
	)
	return handlerTestEnv{router: router, store: store, jwt: jwtService, reports: reports, shifts: shifts}
}

func (e handlerTestEnv) do(t *testing.T, method, target string, body []byte, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	env := newHandlerTestEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec, _ = env.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMedicHandler_Identify(t *testing.T) {
	env := newHandlerTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/medics/012345678", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var identified medic.IdentifyResponse
	require.NoError(t, json.Unmarshal(body.Data, &identified))
	assert.Equal(t, "דנה לוי", identified.Name)
	assert.NotEmpty(t, identified.AccessToken)

	rec, body = env.do(t, http.MethodGet, "/api/v1/medics/99999999", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)

	rec, body = env.do(t, http.MethodGet, "/api/v1/medics/12", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, body.Error.Details, "medic_id")
}

func TestMedicHandler_Doctors(t *testing.T) {
	env := newHandlerTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/doctors?shift_type="+urlEscape("רפואה שלמה"), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"doctors":["כהן"]}`, string(body.Data))

	rec, body = env.do(t, http.MethodGet, "/api/v1/instructors", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"doctors":["רונית"]}`, string(body.Data))

	rec, _ = env.do(t, http.MethodGet, "/api/v1/doctors?shift_type=nope", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestShiftHandler_Submit(t *testing.T) {
	env := newHandlerTestEnv(t)
	token, _, err := env.jwt.GenerateAccessToken("דנה לוי", "ref")
	require.NoError(t, err)

	payload, err := json.Marshal(shift.SubmitShiftRequest{
		ShiftType:   shift.ShiftTypeFullMedicine,
		DoctorName:  "כהן",
		SessionDate: "2024-01-20",
		StartTime:   "09:00",
		EndTime:     "12:15",
	})
	require.NoError(t, err)

	t.Run("requires token", func(t *testing.T) {
		rec, _ := env.do(t, http.MethodPost, "/api/v1/shifts", payload, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects token without medic", func(t *testing.T) {
		anonymous, _, err := env.jwt.GenerateAccessToken("", "ref")
		require.NoError(t, err)
		rec, _ := env.do(t, http.MethodPost, "/api/v1/shifts", payload, anonymous)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		rec, body := env.do(t, http.MethodPost, "/api/v1/shifts", []byte("{"), token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "BAD_REQUEST", body.Error.Code)
	})

	t.Run("rejects invalid shift", func(t *testing.T) {
		rec, body := env.do(t, http.MethodPost, "/api/v1/shifts", []byte(`{"shift_type":"דמו"}`), token)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, body.Error.Details, "doctor_name")
	})

	t.Run("stores shift", func(t *testing.T) {
		rec, body := env.do(t, http.MethodPost, "/api/v1/shifts", payload, token)
		env.shifts.Wait()
		require.Equal(t, http.StatusCreated, rec.Code)

		var created shift.SubmitShiftResponse
		require.NoError(t, json.Unmarshal(body.Data, &created))
		assert.Equal(t, "דנה לוי", created.MedicName)
		assert.Equal(t, "03:15", created.CalculatedDuration)

		rec, body = env.do(t, http.MethodGet, "/api/v1/reports/monthly?month=2024-01", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var monthly report.MonthlyReport
		require.NoError(t, json.Unmarshal(body.Data, &monthly))
		require.Len(t, monthly.Totals, 1)
		assert.Equal(t, "5:15", monthly.Totals[0].Hours)
	})
}

func TestReportHandler_Monthly(t *testing.T) {
	env := newHandlerTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/reports/monthly", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var monthly report.MonthlyReport
	require.NoError(t, json.Unmarshal(body.Data, &monthly))
	assert.Equal(t, "ינואר 2024", monthly.SelectedMonth.Label)
	assert.Equal(t, 120, monthly.TotalMinutes)

	rec, body = env.do(t, http.MethodGet, "/api/v1/reports/monthly?month="+urlEscape("ינואר 2024")+"&search="+urlEscape("יוסי"), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(body.Data, &monthly))
	assert.Empty(t, monthly.Totals)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/reports/monthly?month=13-2024", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, body = env.do(t, http.MethodGet, "/api/v1/reports/months", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"months":[{"key":"2024-01","label":"ינואר 2024"}]}`, string(body.Data))
}

func TestReportHandler_Stream(t *testing.T) {
	env := newHandlerTestEnv(t)
	server := httptest.NewServer(env.router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/reports/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if name, ok := strings.CutPrefix(strings.TrimSpace(line), "event: "); ok {
				return name
			}
		}
	}

	assert.Equal(t, "connected", readEvent())

	env.reports.Invalidate(context.Background())
	assert.Equal(t, report.EventShiftsUpdated, readEvent())
}

func urlEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
