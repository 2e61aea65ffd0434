package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func setupAdminApp() *fiber.App {
	app := fiber.New()
	app.Post("/admin/mint", AdminAuth("s3cret"), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	return app
}

func TestAdminAuthMissingToken(t *testing.T) {
	app := setupAdminApp()

	req := httptest.NewRequest(fiber.MethodPost, "/admin/mint", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected %d got %d", fiber.StatusUnauthorized, resp.StatusCode)
	}
}

func TestAdminAuthWrongToken(t *testing.T) {
	app := setupAdminApp()

	req := httptest.NewRequest(fiber.MethodPost, "/admin/mint", nil)
	req.Header.Set(adminTokenHeader, "guess")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected %d got %d", fiber.StatusUnauthorized, resp.StatusCode)
	}
}

func TestAdminAuthValidToken(t *testing.T) {
	app := setupAdminApp()

	req := httptest.NewRequest(fiber.MethodPost, "/admin/mint", nil)
	req.Header.Set(adminTokenHeader, "s3cret")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected %d got %d", fiber.StatusOK, resp.StatusCode)
	}
}
