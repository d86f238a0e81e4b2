package handler

import (
	"context"
	"database/sql"
	"regexp"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"legalapi/internal/auth"
	"legalapi/internal/http/middleware"
	"legalapi/internal/service"
)

// documentIDPattern is the machine-name format of document ids: lowercase
// alphanumerics and underscores, starting with a letter.
var documentIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

// RequireAuth rejects unauthenticated requests.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !middleware.AccountFromCtx(c).IsAuthenticated() {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		return c.Next()
	}
}

// RequireAdmin rejects requests lacking the administrative capability.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		acc := middleware.AccountFromCtx(c)
		if !acc.IsAuthenticated() {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		if !auth.IsAdmin(acc) {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "insufficient permissions")
		}
		return c.Next()
	}
}

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness probe.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListDocuments lists documents with limit & offset pagination.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateDocument registers a new document and its initial version.
func CreateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateDocumentInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}
		if !documentIDPattern.MatchString(in.ID) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id must be a machine name")
		}

		doc, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns a document with its rendered published version and the
// acceptance state of the caller. The new_user query flag evaluates the
// signup-time policy instead of the existing-user one.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !documentIDPattern.MatchString(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		detail, err := svc.GetDetail(c.UserContext(), id, middleware.AccountFromCtx(c), c.QueryBool("new_user", false))
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(detail)
	}
}

// UpdateDocument rewrites the mutable document fields. Omitted fields keep
// their stored value.
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !documentIDPattern.MatchString(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var in service.UpdateDocumentInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}

		doc, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a document that has no recorded acceptances.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !documentIDPattern.MatchString(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return mapServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// AcceptDocument records the caller's acceptance of the currently published
// version.
func AcceptDocument(svc service.AcceptanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !documentIDPattern.MatchString(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		a, err := svc.AcceptCurrent(c.UserContext(), id, middleware.AccountFromCtx(c))
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

// ListVersions lists all versions of a document, newest first.
func ListVersions(svc service.VersionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !documentIDPattern.MatchString(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		versions, err := svc.ListByDocument(c.UserContext(), id)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": versions})
	}
}

// CreateVersion adds a draft version under a document.
func CreateVersion(svc service.VersionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !documentIDPattern.MatchString(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var in service.CreateVersionInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}

		v, err := svc.Create(c.UserContext(), id, in)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(v)
	}
}

// UpdateVersion edits a version that has no recorded acceptances.
func UpdateVersion(svc service.VersionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		versionID := c.Params("versionID")
		if _, err := uuid.Parse(versionID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid version id format")
		}

		var in service.UpdateVersionInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}

		v, err := svc.Update(c.UserContext(), versionID, in)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(v)
	}
}

// PublishDocument points a document at one of its versions.
func PublishDocument(svc service.DocumentService) fiber.Handler {
	type publishRequest struct {
		VersionID string `json:"version_id"`
	}

	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !documentIDPattern.MatchString(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var in publishRequest
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}
		if _, err := uuid.Parse(in.VersionID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid version id format")
		}

		doc, err := svc.Publish(c.UserContext(), id, in.VersionID)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// ListAcceptances returns acceptances of a document grouped by version,
// optionally scoped to one user or to the published version only.
func ListAcceptances(svc service.AcceptanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !documentIDPattern.MatchString(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		grouped, err := svc.FindByDocument(c.UserContext(), id, c.Query("user_id"), c.QueryBool("published_only", false))
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": grouped})
	}
}

// EvidenceURL returns a time-limited download link for the archived snapshot
// of a published version.
func EvidenceURL(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !documentIDPattern.MatchString(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		versionID := c.Params("versionID")
		if _, err := uuid.Parse(versionID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid version id format")
		}

		url, err := svc.EvidenceURL(c.UserContext(), id, versionID)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, verSvc service.VersionService, accSvc service.AcceptanceService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/documents", ListDocuments(docSvc))
	app.Post("/documents", RequireAdmin(), CreateDocument(docSvc))
	app.Get("/documents/:id", GetDocument(docSvc))
	app.Patch("/documents/:id", RequireAdmin(), UpdateDocument(docSvc))
	app.Delete("/documents/:id", RequireAdmin(), DeleteDocument(docSvc))

	app.Post("/documents/:id/accept", RequireAuth(), AcceptDocument(accSvc))

	app.Get("/documents/:id/versions", RequireAdmin(), ListVersions(verSvc))
	app.Post("/documents/:id/versions", RequireAdmin(), CreateVersion(verSvc))
	app.Patch("/documents/:id/versions/:versionID", RequireAdmin(), UpdateVersion(verSvc))
	app.Get("/documents/:id/versions/:versionID/evidence", RequireAdmin(), EvidenceURL(docSvc))

	app.Post("/documents/:id/publish", RequireAdmin(), PublishDocument(docSvc))
	app.Get("/documents/:id/acceptances", RequireAdmin(), ListAcceptances(accSvc))
}
