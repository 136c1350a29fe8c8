package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Farmacias-api/internal/application/auth"
	"github.com/jhoicas/Farmacias-api/internal/application/inventory"
	"github.com/jhoicas/Farmacias-api/internal/application/usecase"
	"github.com/jhoicas/Farmacias-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Farmacias-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/Farmacias-api/internal/interfaces/http"
	"github.com/jhoicas/Farmacias-api/pkg/logger"
)

type stubReporter struct{}

func (stubReporter) GenerateStockReport(context.Context, *inventory.StockReport) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

// newTestAPI arma la API completa sobre una base SQLite en memoria.
func newTestAPI(t *testing.T) (*fiber.App, *metrics.Metrics) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	repos := sqlite.NewRepositories(db)
	m := metrics.New("farmacias")
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer,
		}).WithHashCost(bcrypt.MinCost),
		PharmacyUC:  usecase.NewPharmacyUseCase(repos.Pharmacies),
		MedicineUC:  usecase.NewMedicineUseCase(repos.Medicines, repos.Inventory),
		InventoryUC: inventory.NewUseCase(sqlite.NewTxRunner(db), repos, stubReporter{}),
		Metrics:     m,
		Logger:      logger.Nop(),
		JWTSecret:   testJWTSecret,
		ServiceName: "farmacias-api-test",
	})
	return app, m
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte, http.Header) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out, resp.Header
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

// signup registra y hace login; devuelve el token.
func signup(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, raw, _ := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"first_name": "Ana", "last_name": "Diaz", "email": email, "password": "abcd1234",
	})
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	status, raw, _ = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": email, "password": "abcd1234",
	})
	require.Equal(t, fiber.StatusOK, status, string(raw))
	return decode(t, raw)["token"].(string)
}

func TestAPI_RegistroYLogin(t *testing.T) {
	app, _ := newTestAPI(t)
	token := signup(t, app, "a@x.com")

	status, raw, _ := call(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "a@x.com", decode(t, raw)["email"])

	status, raw, _ = call(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"first_name": "Ana", "last_name": "Diaz", "email": "A@X.com", "password": "abcd1234",
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "EMAIL_EXISTS", decode(t, raw)["code"])

	status, raw, _ = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "a@x.com", "password": "otra12345",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", decode(t, raw)["code"])
}

func TestAPI_RegistroInvalidoDevuelveCampos(t *testing.T) {
	app, _ := newTestAPI(t)
	status, raw, _ := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"first_name": "A", "last_name": "Diaz", "email": "a@x.com", "password": "abcd1234",
	})
	require.Equal(t, fiber.StatusBadRequest, status)
	body := decode(t, raw)
	assert.Equal(t, "VALIDATION", body["code"])
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "first_name")
}

func TestAPI_FlujoFarmaciaEInventario(t *testing.T) {
	app, m := newTestAPI(t)
	token := signup(t, app, "a@x.com")

	status, raw, _ := call(t, app, http.MethodPost, "/api/me/pharmacies", token, map[string]any{
		"name": "CityMed", "city": "Riyadh", "address": "King Fahd Road", "phone": "+966500000000", "cr_number": "CR-10001",
	})
	require.Equal(t, fiber.StatusCreated, status, string(raw))
	pharmacyID := decode(t, raw)["id"].(string)

	status, raw, _ = call(t, app, http.MethodPost, "/api/medicines", token, map[string]any{
		"name": "Panadol", "generic_name": "Paracetamol", "form": "Tablet", "strength": "500mg",
	})
	require.Equal(t, fiber.StatusCreated, status, string(raw))
	medicineID := decode(t, raw)["id"].(string)

	invPath := "/api/me/pharmacies/" + pharmacyID + "/inventory"
	status, raw, _ = call(t, app, http.MethodPost, invPath, token, map[string]any{
		"medicine_id": medicineID, "quantity": 10, "price": "5.00", "status": "IN",
	})
	require.Equal(t, fiber.StatusCreated, status, string(raw))
	row := decode(t, raw)
	assert.Equal(t, "5.00", row["price"])
	assert.Equal(t, "IN", row["status"])

	status, raw, _ = call(t, app, http.MethodPost, invPath, token, map[string]any{
		"medicine_id": medicineID, "quantity": 1, "price": 1,
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "DUPLICATE_INVENTORY", decode(t, raw)["code"])

	status, raw, _ = call(t, app, http.MethodPut, "/api/inventory/"+row["id"].(string), token, map[string]any{
		"quantity": 0, "price": "5.00", "status": "IN",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "INCONSISTENT_STATE", decode(t, raw)["code"])

	status, raw, _ = call(t, app, http.MethodGet, invPath, token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, decode(t, raw)["total"])

	status, raw, _ = call(t, app, http.MethodGet, "/api/medicines/"+medicineID, "", nil)
	require.Equal(t, fiber.StatusOK, status)
	availability := decode(t, raw)["availability"].([]any)
	require.Len(t, availability, 1)

	status, raw, headers := call(t, app, http.MethodGet, invPath+"/report.pdf", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
	assert.Equal(t, "application/pdf", headers.Get("Content-Type"))
	assert.Contains(t, headers.Get("Content-Disposition"), "stock-CR-10001-")

	status, raw, _ = call(t, app, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(raw), `farmacias_catalog_events_total{event="duplicate_rejected"} 1`)
	assert.Contains(t, string(raw), `farmacias_catalog_events_total{event="inconsistent_stock"} 1`)
	assert.NotNil(t, m.Registry())
}

func TestAPI_FarmaciaAjenaResponde404(t *testing.T) {
	app, _ := newTestAPI(t)
	owner := signup(t, app, "a@x.com")
	intruder := signup(t, app, "b@x.com")

	status, raw, _ := call(t, app, http.MethodPost, "/api/me/pharmacies", owner, map[string]any{
		"name": "CityMed", "city": "Riyadh", "address": "King Fahd Road", "phone": "+966500000000", "cr_number": "CR-10001",
	})
	require.Equal(t, fiber.StatusCreated, status, string(raw))
	path := "/api/me/pharmacies/" + decode(t, raw)["id"].(string)

	status, _, _ = call(t, app, http.MethodGet, path, intruder, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _, _ = call(t, app, http.MethodDelete, path, intruder, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _, _ = call(t, app, http.MethodGet, path+"/inventory", intruder, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _, _ = call(t, app, http.MethodDelete, path, owner, nil)
	assert.Equal(t, fiber.StatusNoContent, status)
}

func TestAPI_RutasPublicasYProtegidas(t *testing.T) {
	app, _ := newTestAPI(t)

	status, raw, _ := call(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", decode(t, raw)["status"])

	status, _, _ = call(t, app, http.MethodGet, "/api/medicines?keyword=par", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _, _ = call(t, app, http.MethodGet, "/api/pharmacies", "", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _, _ = call(t, app, http.MethodPost, "/api/medicines", "", map[string]any{"name": "Panadol"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	status, _, _ = call(t, app, http.MethodGet, "/api/me/pharmacies", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
