package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"legalapi/internal/http/middleware"
	"legalapi/internal/model"
	"legalapi/internal/service"
	serviceMocks "legalapi/internal/service/mocks"
)

const adminCaps = model.AdminPermission

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(middleware.Account())
	return app
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asAdmin(req *http.Request) *http.Request {
	req.Header.Set(middleware.AccountUserHeader, "root")
	req.Header.Set(middleware.AccountCapabilitiesHeader, adminCaps)
	return req
}

func asUser(req *http.Request, id string) *http.Request {
	req.Header.Set(middleware.AccountUserHeader, id)
	return req
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := newTestApp()
	app.Get("/documents", ListDocuments(mockSvc))

	t.Run("success", func(t *testing.T) {
		expectedRes := &service.DocumentListResult{
			Items: []model.Document{{ID: "terms_of_service", Label: "Terms of Service"}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, 10, 0).Return(expectedRes, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents?limit=10&offset=0", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.DocumentListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_LIMIT", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 10, 0).Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := newTestApp()
	app.Post("/documents", RequireAdmin(), CreateDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		expectedDoc := &model.Document{ID: "terms_of_service", Label: "Terms of Service"}
		mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateDocumentInput) bool {
			return in.ID == "terms_of_service" && in.Label == "Terms of Service"
		})).Return(expectedDoc, nil).Once()

		req := asAdmin(jsonRequest(http.MethodPost, "/documents", fiber.Map{
			"id":    "terms_of_service",
			"label": "Terms of Service",
		}))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "terms_of_service", result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("duplicate id", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, service.ErrDuplicateID).Once()

		req := asAdmin(jsonRequest(http.MethodPost, "/documents", fiber.Map{"id": "terms_of_service"}))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "DUPLICATE_ID", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid machine name", func(t *testing.T) {
		req := asAdmin(jsonRequest(http.MethodPost, "/documents", fiber.Map{"id": "Terms Of Service"}))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/documents", fiber.Map{"id": "terms_of_service"})
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("authenticated but not admin", func(t *testing.T) {
		req := asUser(jsonRequest(http.MethodPost, "/documents", fiber.Map{"id": "terms_of_service"}), "alice")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FORBIDDEN", res.Error.Code)
	})
}

func TestGetDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := newTestApp()
	app.Get("/documents/:id", GetDocument(mockSvc))

	t.Run("success with acceptance state", func(t *testing.T) {
		detail := &service.DocumentDetail{
			Document: model.Document{ID: "terms_of_service", Label: "Terms of Service"},
			PublishedVersion: &service.PublishedVersionView{
				ID:              uuid.NewString(),
				AcceptanceLabel: "I agree to the Terms of Service",
			},
			MustAgree: true,
		}
		mockSvc.On("GetDetail", mock.Anything, "terms_of_service", mock.Anything, false).
			Return(detail, nil).Once()

		req := asUser(httptest.NewRequest(http.MethodGet, "/documents/terms_of_service", nil), "alice")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.DocumentDetail
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "terms_of_service", result.Document.ID)
		assert.True(t, result.MustAgree)
		mockSvc.AssertExpectations(t)
	})

	t.Run("new user policy evaluation", func(t *testing.T) {
		mockSvc.On("GetDetail", mock.Anything, "terms_of_service", mock.Anything, true).
			Return(&service.DocumentDetail{MustAgree: true}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/terms_of_service?new_user=true", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("GetDetail", mock.Anything, "missing_doc", mock.Anything, false).
			Return(nil, service.ErrDocumentNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/missing_doc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents/Not-A-Machine-Name", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})
}

func TestUpdateDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := newTestApp()
	app.Patch("/documents/:id", RequireAdmin(), UpdateDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		expectedDoc := &model.Document{ID: "terms_of_service", Label: "Terms of Service v2"}
		mockSvc.On("Update", mock.Anything, "terms_of_service", mock.MatchedBy(func(in service.UpdateDocumentInput) bool {
			return in.Label != nil && *in.Label == "Terms of Service v2" &&
				in.RequireSignup != nil && *in.RequireSignup &&
				in.RequireExisting == nil
		})).Return(expectedDoc, nil).Once()

		req := asAdmin(jsonRequest(http.MethodPatch, "/documents/terms_of_service", fiber.Map{
			"label":          "Terms of Service v2",
			"require_signup": true,
		}))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "Terms of Service v2", result.Label)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, "missing_doc", mock.Anything).
			Return(nil, service.ErrDocumentNotFound).Once()

		req := asAdmin(jsonRequest(http.MethodPatch, "/documents/missing_doc", fiber.Map{"label": "x"}))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := asAdmin(jsonRequest(http.MethodPatch, "/documents/Not-Valid", fiber.Map{"label": "x"}))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		req := asUser(jsonRequest(http.MethodPatch, "/documents/terms_of_service", fiber.Map{"label": "x"}), "alice")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestDeleteDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := newTestApp()
	app.Delete("/documents/:id", RequireAdmin(), DeleteDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "terms_of_service").Return(nil).Once()

		req := asAdmin(httptest.NewRequest(http.MethodDelete, "/documents/terms_of_service", nil))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("document in use", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "terms_of_service").
			Return(service.ErrDocumentInUse).Once()

		req := asAdmin(httptest.NewRequest(http.MethodDelete, "/documents/terms_of_service", nil))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "DOCUMENT_IN_USE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "missing_doc").
			Return(service.ErrDocumentNotFound).Once()

		req := asAdmin(httptest.NewRequest(http.MethodDelete, "/documents/missing_doc", nil))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestAcceptDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockAcceptanceService)
	app := newTestApp()
	app.Post("/documents/:id/accept", RequireAuth(), AcceptDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("AcceptCurrent", mock.Anything, "terms_of_service", mock.MatchedBy(func(acc model.Account) bool {
			return acc.ID() == "alice"
		})).Return(&model.Acceptance{ID: 1, VersionID: uuid.NewString(), UserID: "alice"}, nil).Once()

		req := asUser(httptest.NewRequest(http.MethodPost, "/documents/terms_of_service/accept", nil), "alice")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Acceptance
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, int64(1), result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/documents/terms_of_service/accept", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "UNAUTHORIZED", res.Error.Code)
	})

	t.Run("no published version", func(t *testing.T) {
		mockSvc.On("AcceptCurrent", mock.Anything, "terms_of_service", mock.Anything).
			Return(nil, service.ErrNoPublishedVersion).Once()

		req := asUser(httptest.NewRequest(http.MethodPost, "/documents/terms_of_service/accept", nil), "alice")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NO_PUBLISHED_VERSION", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestVersionRoutes(t *testing.T) {
	mockSvc := new(serviceMocks.MockVersionService)
	app := newTestApp()
	app.Get("/documents/:id/versions", RequireAdmin(), ListVersions(mockSvc))
	app.Post("/documents/:id/versions", RequireAdmin(), CreateVersion(mockSvc))
	app.Patch("/documents/:id/versions/:versionID", RequireAdmin(), UpdateVersion(mockSvc))

	t.Run("list", func(t *testing.T) {
		mockSvc.On("ListByDocument", mock.Anything, "terms_of_service").
			Return([]model.DocumentVersion{{ID: uuid.NewString()}, {ID: uuid.NewString()}}, nil).Once()

		req := asAdmin(httptest.NewRequest(http.MethodGet, "/documents/terms_of_service/versions", nil))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Data []model.DocumentVersion `json:"data"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Data, 2)
		mockSvc.AssertExpectations(t)
	})

	t.Run("create", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, "terms_of_service", mock.MatchedBy(func(in service.CreateVersionInput) bool {
			return in.Label == "v2"
		})).Return(&model.DocumentVersion{ID: uuid.NewString(), Label: "v2"}, nil).Once()

		req := asAdmin(jsonRequest(http.MethodPost, "/documents/terms_of_service/versions", fiber.Map{
			"label": "v2",
			"body":  "<p>new terms</p>",
		}))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("update frozen version", func(t *testing.T) {
		versionID := uuid.NewString()
		mockSvc.On("Update", mock.Anything, versionID, mock.Anything).
			Return(nil, service.ErrVersionFrozen).Once()

		req := asAdmin(jsonRequest(http.MethodPatch, "/documents/terms_of_service/versions/"+versionID, fiber.Map{
			"body": "<p>edited</p>",
		}))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VERSION_FROZEN", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("update with invalid version id", func(t *testing.T) {
		req := asAdmin(jsonRequest(http.MethodPatch, "/documents/terms_of_service/versions/not-a-uuid", fiber.Map{}))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("admin gate", func(t *testing.T) {
		req := asUser(httptest.NewRequest(http.MethodGet, "/documents/terms_of_service/versions", nil), "alice")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestPublishDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := newTestApp()
	app.Post("/documents/:id/publish", RequireAdmin(), PublishDocument(mockSvc))

	versionID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Publish", mock.Anything, "terms_of_service", versionID).
			Return(&model.Document{ID: "terms_of_service", PublishedVersionID: versionID}, nil).Once()

		req := asAdmin(jsonRequest(http.MethodPost, "/documents/terms_of_service/publish", fiber.Map{
			"version_id": versionID,
		}))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, versionID, result.PublishedVersionID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("foreign version", func(t *testing.T) {
		mockSvc.On("Publish", mock.Anything, "terms_of_service", versionID).
			Return(nil, service.ErrBundleMismatch).Once()

		req := asAdmin(jsonRequest(http.MethodPost, "/documents/terms_of_service/publish", fiber.Map{
			"version_id": versionID,
		}))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "BUNDLE_MISMATCH", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing version id", func(t *testing.T) {
		req := asAdmin(jsonRequest(http.MethodPost, "/documents/terms_of_service/publish", fiber.Map{}))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestListAcceptances(t *testing.T) {
	mockSvc := new(serviceMocks.MockAcceptanceService)
	app := newTestApp()
	app.Get("/documents/:id/acceptances", RequireAdmin(), ListAcceptances(mockSvc))

	t.Run("grouped by version", func(t *testing.T) {
		v1, v2 := uuid.NewString(), uuid.NewString()
		mockSvc.On("FindByDocument", mock.Anything, "terms_of_service", "alice", true).
			Return(map[string][]model.Acceptance{
				v1: {{ID: 1, UserID: "alice"}},
				v2: {{ID: 2, UserID: "alice"}},
			}, nil).Once()

		req := asAdmin(httptest.NewRequest(http.MethodGet,
			"/documents/terms_of_service/acceptances?user_id=alice&published_only=true", nil))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Data map[string][]model.Acceptance `json:"data"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Data, 2)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown document", func(t *testing.T) {
		mockSvc.On("FindByDocument", mock.Anything, "missing_doc", "", false).
			Return(nil, service.ErrUnknownDocument).Once()

		req := asAdmin(httptest.NewRequest(http.MethodGet, "/documents/missing_doc/acceptances", nil))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "UNKNOWN_DOCUMENT", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestEvidenceURL(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := newTestApp()
	app.Get("/documents/:id/versions/:versionID/evidence", RequireAdmin(), EvidenceURL(mockSvc))

	versionID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		mockSvc.On("EvidenceURL", mock.Anything, "terms_of_service", versionID).
			Return("https://storage.example/signed", nil).Once()

		req := asAdmin(httptest.NewRequest(http.MethodGet,
			"/documents/terms_of_service/versions/"+versionID+"/evidence", nil))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]string
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "https://storage.example/signed", result["url"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("version not found", func(t *testing.T) {
		mockSvc.On("EvidenceURL", mock.Anything, "terms_of_service", versionID).
			Return("", service.ErrVersionNotFound).Once()

		req := asAdmin(httptest.NewRequest(http.MethodGet,
			"/documents/terms_of_service/versions/"+versionID+"/evidence", nil))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})
	app.Use(middleware.Account())

	RegisterRoutes(app, nil,
		new(serviceMocks.MockDocumentService),
		new(serviceMocks.MockVersionService),
		new(serviceMocks.MockAcceptanceService))

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})
}
