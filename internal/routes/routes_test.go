package routes

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/shamba/shamba-api/internal/config"
	"github.com/shamba/shamba-api/internal/logging"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	cfg := config.Config{AppEnv: "development", ClerkWebhookSecret: "whsec_test"}
	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}); err != nil {
		t.Fatalf("setup routes: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded map[string]any
	if len(payload) > 0 && json.Unmarshal(payload, &decoded) != nil {
		decoded = nil
	}
	return resp.StatusCode, decoded
}

func doJSONList(t *testing.T, app *fiber.App, path string) (int, []map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode list from %s: %v", path, err)
	}
	return resp.StatusCode, decoded
}

func TestPing(t *testing.T) {
	app := setupTestApp(t)

	status, body := doJSON(t, app, fiber.MethodGet, "/api/v1/ping", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected ok status, got %v", body["status"])
	}
}

func TestSyncPredictionFeedbackFlow(t *testing.T) {
	app := setupTestApp(t)

	status, synced := doJSON(t, app, fiber.MethodPost, "/api/v1/users/sync",
		`{"clerk_id":"clerk_1","name":"Amina W","email":"amina@example.com","username":"amina","phone":"+254700000000","location":"Nakuru"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("sync: expected 201, got %d", status)
	}
	userID, _ := synced["id"].(string)
	if userID == "" {
		t.Fatalf("sync response missing id: %v", synced)
	}

	status, prediction := doJSON(t, app, fiber.MethodPost, "/api/v1/predictions",
		`{"user_id":"`+userID+`","crop_type":"maize","planting_date":1700000000,"yield_prediction":"3.2 t/ha","harvest_date":1710000000}`)
	if status != fiber.StatusCreated {
		t.Fatalf("add prediction: expected 201, got %d", status)
	}
	predictionID, _ := prediction["id"].(string)
	if predictionID == "" {
		t.Fatalf("prediction response missing id: %v", prediction)
	}

	status, predictions := doJSONList(t, app, "/api/v1/users/"+userID+"/predictions")
	if status != fiber.StatusOK {
		t.Fatalf("list predictions: expected 200, got %d", status)
	}
	if len(predictions) != 1 || predictions[0]["crop_type"] != "maize" {
		t.Fatalf("unexpected prediction list: %v", predictions)
	}

	status, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/feedback",
		`{"prediction_id":"`+predictionID+`","user_id":"`+userID+`","accuracy_rating":4,"comment":"spot on"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("submit feedback: expected 201, got %d", status)
	}

	status, entries := doJSONList(t, app, "/api/v1/predictions/"+predictionID+"/feedback")
	if status != fiber.StatusOK {
		t.Fatalf("list feedback: expected 200, got %d", status)
	}
	if len(entries) != 1 || entries[0]["comment"] != "spot on" {
		t.Fatalf("unexpected feedback list: %v", entries)
	}

	status, fetched := doJSON(t, app, fiber.MethodGet, "/api/v1/users/clerk/clerk_1", "")
	if status != fiber.StatusOK {
		t.Fatalf("get by clerk id: expected 200, got %d", status)
	}
	if fetched["id"] != userID || fetched["role"] != "user" {
		t.Fatalf("unexpected user: %v", fetched)
	}
}

func TestGetUnknownClerkIDReturns404(t *testing.T) {
	app := setupTestApp(t)

	status, _ := doJSON(t, app, fiber.MethodGet, "/api/v1/users/clerk/clerk_missing", "")
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestAddPredictionWithMalformedOwnerReturns400(t *testing.T) {
	app := setupTestApp(t)

	status, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/predictions",
		`{"user_id":"not-a-uuid","crop_type":"maize"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestSetupRequiresBackendsOutsideDev(t *testing.T) {
	app := fiber.New()
	cfg := config.Config{AppEnv: "production"}

	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}); err == nil {
		t.Fatalf("expected setup to fail without database and redis in production")
	}
}
