package server

import (
	"bytes"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type stubRoutes struct{}

func (stubRoutes) RegisterRoutes(router fiber.Router) {
	router.Get("/boom", func(c *fiber.Ctx) error {
		panic("kaboom")
	})
	router.Get("/fail", func(c *fiber.Ctx) error {
		return errors.New("dial tcp 10.0.0.1:3306: connection refused")
	})
	router.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
}

func newTestApp(t *testing.T) (*fiber.App, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return New(zerolog.New(&buf), stubRoutes{}), &buf
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	res, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if string(b) != `{"status":"ok"}` {
		t.Fatalf("unexpected body %s", string(b))
	}
	if res.Header.Get(fiber.HeaderXRequestID) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestCORS_AllowsAnyOrigin(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got := res.Header.Get(fiber.HeaderAccessControlAllowOrigin); got != "*" {
		t.Fatalf("expected allow origin *, got %q", got)
	}
}

func TestPanicIsRenderedAsGenericError(t *testing.T) {
	app, logs := newTestApp(t)

	res, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if string(b) != `{"error":"An unexpected error occurred."}` {
		t.Fatalf("unexpected body %s", string(b))
	}
	if !strings.Contains(logs.String(), "kaboom") {
		t.Fatalf("panic detail should be logged, got %s", logs.String())
	}
}

func TestUnexpectedErrorDoesNotLeakDetail(t *testing.T) {
	app, logs := newTestApp(t)

	res, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if strings.Contains(string(b), "connection refused") {
		t.Fatalf("response leaked internal error: %s", string(b))
	}
	if !strings.Contains(logs.String(), "connection refused") {
		t.Fatalf("error detail should be logged, got %s", logs.String())
	}
	if !strings.Contains(logs.String(), `"status":500`) {
		t.Fatalf("access log should record 500, got %s", logs.String())
	}
}

func TestFiberErrorsKeepStatus(t *testing.T) {
	app, _ := newTestApp(t)

	res, err := app.Test(httptest.NewRequest("GET", "/teapot", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusTeapot {
		t.Fatalf("expected 418, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if string(b) != `{"error":"short and stout"}` {
		t.Fatalf("unexpected body %s", string(b))
	}

	res, err = app.Test(httptest.NewRequest("GET", "/nowhere", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", res.StatusCode)
	}
}
