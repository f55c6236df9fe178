package clerk

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/shamba/shamba-api/internal/logging"
	"github.com/shamba/shamba-api/internal/user"
)

const userCreatedBody = `{"type":"user.created","data":{"id":"u_1","email_addresses":[{"email_address":"a@b.com"}],"first_name":"A","last_name":"B","image_url":"http://x/y.png"}}`

func setupWebhookApp(t *testing.T, secret string, guard *ReplayGuard) (*fiber.App, *user.Service) {
	t.Helper()
	users := user.NewService(user.NewMemoryRepository())
	handler := NewWebhookHandler(NewVerifier(secret), users, guard, logging.Discard())

	app := fiber.New()
	app.Post("/webhooks/clerk", handler.Handle)
	return app, users
}

func deliver(t *testing.T, app *fiber.App, secret, body string) int {
	t.Helper()
	headers := validHeaders(t, secret, []byte(body))
	return deliverWithHeaders(t, app, headers, body)
}

func deliverWithHeaders(t *testing.T, app *fiber.App, headers Headers, body string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/webhooks/clerk", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if headers.ID != "" {
		req.Header.Set(HeaderID, headers.ID)
	}
	if headers.Timestamp != "" {
		req.Header.Set(HeaderTimestamp, headers.Timestamp)
	}
	if headers.Signature != "" {
		req.Header.Set(HeaderSignature, headers.Signature)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestWebhookSyncsCreatedUser(t *testing.T) {
	app, users := setupWebhookApp(t, testSecret, nil)

	if status := deliver(t, app, testSecret, userCreatedBody); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	all, err := users.List(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly one user, got %d", len(all))
	}
	synced := all[0]
	if synced.ClerkID != "u_1" || synced.Email != "a@b.com" || synced.Name != "A B" {
		t.Fatalf("synced user mismatch: %+v", synced)
	}
	if synced.Role != user.RoleUser {
		t.Fatalf("expected role %q, got %q", user.RoleUser, synced.Role)
	}
	if synced.Image != "http://x/y.png" {
		t.Fatalf("expected image url carried over, got %q", synced.Image)
	}
	if synced.Username != "" || synced.Phone != "" || synced.Location != "" {
		t.Fatalf("expected provider-less fields to default to empty, got %+v", synced)
	}
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	app, users := setupWebhookApp(t, testSecret, nil)

	body := `{"type":"user.updated","data":{"id":"u_1"}}`
	if status := deliver(t, app, testSecret, body); status != fiber.StatusOK {
		t.Fatalf("expected 200 for an ignored event type, got %d", status)
	}

	all, err := users.List(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("ignored events must not create users, got %d", len(all))
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	app, users := setupWebhookApp(t, testSecret, nil)

	headers := validHeaders(t, testSecret, []byte(userCreatedBody))
	tampered := strings.Replace(userCreatedBody, "a@b.com", "x@b.com", 1)

	if status := deliverWithHeaders(t, app, headers, tampered); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}

	all, _ := users.List(context.Background())
	if len(all) != 0 {
		t.Fatalf("a rejected delivery must not create users, got %d", len(all))
	}
}

func TestWebhookRejectsMissingHeader(t *testing.T) {
	app, _ := setupWebhookApp(t, testSecret, nil)

	headers := validHeaders(t, testSecret, []byte(userCreatedBody))
	headers.Timestamp = ""

	if status := deliverWithHeaders(t, app, headers, userCreatedBody); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestWebhookFailsWithoutSecret(t *testing.T) {
	app, _ := setupWebhookApp(t, "", nil)

	headers := validHeaders(t, testSecret, []byte(userCreatedBody))
	if status := deliverWithHeaders(t, app, headers, userCreatedBody); status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 when the secret is unset, got %d", status)
	}
}

func TestWebhookAcknowledgesDuplicateDelivery(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	guard := NewReplayGuard(cache, time.Minute, logging.Discard())
	app, users := setupWebhookApp(t, testSecret, guard)

	headers := validHeaders(t, testSecret, []byte(userCreatedBody))
	if status := deliverWithHeaders(t, app, headers, userCreatedBody); status != fiber.StatusOK {
		t.Fatalf("first delivery: expected 200, got %d", status)
	}
	if status := deliverWithHeaders(t, app, headers, userCreatedBody); status != fiber.StatusOK {
		t.Fatalf("replayed delivery: expected 200, got %d", status)
	}

	all, err := users.List(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly one user after a replay, got %d", len(all))
	}
}
