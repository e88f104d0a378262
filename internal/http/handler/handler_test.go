package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"sahaya/internal/catalog"
	"sahaya/internal/model"
	"sahaya/internal/repository/memory"
	"sahaya/internal/repository/postgres"
	"sahaya/internal/service"
	serviceMocks "sahaya/internal/service/mocks"
	"sahaya/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	var part io.Writer
	var err error
	if contentType == "" {
		part, err = writer.CreateFormFile("file", filename)
	} else {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
		h.Set("Content-Type", contentType)
		part, err = writer.CreatePart(h)
	}
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var res errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return res
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(postgres.NewKVPostgres(db)))

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
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServices(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/services", ListServices(cat))
	app.Get("/services/:id", GetService(cat))

	t.Run("list", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/services", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got []model.Service
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Len(t, got, 8)
	})

	t.Run("get", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/services/passport", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got model.Service
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "Passport Application", got.Name)
	})

	t.Run("not found", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/services/spaceport", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})
}

func TestVerifyRequiredDocument(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	vault := service.NewVaultStore(memory.NewKVMemory(), storage.NewMemory(), nil, service.VaultOptions{MaxUploadBytes: 8})
	app := fiber.New()
	app.Post("/services/:id/documents/:index/verify", VerifyRequiredDocument(cat, vault))

	post := func(t *testing.T, target, filename, contentType string, content []byte) *http.Response {
		t.Helper()
		body, ct := multipartBody(t, filename, contentType, content)
		req := httptest.NewRequest(http.MethodPost, target, body)
		req.Header.Set("Content-Type", ct)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("accepted file is not stored", func(t *testing.T) {
		resp := post(t, "/services/passport/documents/1/verify", "bill.pdf", "application/pdf", []byte("%PDF"))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got requiredDocumentCheck
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, requiredDocumentCheck{
			ServiceID: "passport",
			Document:  "Address Proof",
			FileName:  "bill.pdf",
			MimeType:  "application/pdf",
			SizeBytes: 4,
			Verified:  true,
		}, got)
		assert.Empty(t, vault.List())
	})

	tests := []struct {
		name       string
		target     string
		filename   string
		mimeType   string
		content    []byte
		wantStatus int
		wantCode   string
	}{
		{"unknown service", "/services/spaceport/documents/0/verify", "a.pdf", "application/pdf", []byte("x"), http.StatusNotFound, "NOT_FOUND"},
		{"index out of range", "/services/passport/documents/5/verify", "a.pdf", "application/pdf", []byte("x"), http.StatusNotFound, "NOT_FOUND"},
		{"non-numeric index", "/services/passport/documents/first/verify", "a.pdf", "application/pdf", []byte("x"), http.StatusBadRequest, "INVALID_INDEX"},
		{"unsupported type", "/services/passport/documents/0/verify", "a.txt", "text/plain", []byte("x"), http.StatusUnsupportedMediaType, "UNSUPPORTED_TYPE"},
		{"too large", "/services/passport/documents/0/verify", "a.png", "image/png", make([]byte, 9), http.StatusRequestEntityTooLarge, "TOO_LARGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, tt.target, tt.filename, tt.mimeType, tt.content)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCode, decodeError(t, resp).Error.Code)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/services/passport/documents/0/verify", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp).Error.Code)
	})
}

func TestListDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockVaultService)
	app := fiber.New()
	app.Get("/documents", ListDocuments(mockSvc))

	docs := []model.Document{{ID: uuid.NewString(), Name: "test.pdf", MimeType: "application/pdf"}}
	mockSvc.On("List").Return(docs).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var result []model.Document
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Len(t, result, 1)
	assert.Equal(t, docs[0].ID, result[0].ID)
	mockSvc.AssertExpectations(t)
}

func TestUploadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockVaultService)
	app := fiber.New()
	app.Post("/documents", UploadDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		body, ct := multipartBody(t, "test.pdf", "", []byte("%PDF-1.4"))

		expectedDoc := &model.Document{ID: uuid.NewString(), Name: "test.pdf"}
		mockSvc.On("Add", mock.Anything, mock.MatchedBy(func(c service.UploadCandidate) bool {
			return c.Name == "test.pdf" && c.MimeType == "application/pdf" && c.Size == 8 && c.Content != nil
		})).Return(expectedDoc, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expectedDoc.ID, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp).Error.Code)
	})

	errCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unsupported type", fmt.Errorf("%w: %q", service.ErrUnsupportedType, "text/plain"), http.StatusUnsupportedMediaType, "UNSUPPORTED_TYPE"},
		{"too large", service.ErrTooLarge, http.StatusRequestEntityTooLarge, "TOO_LARGE"},
		{"persistence failed", fmt.Errorf("%w: write documents: %w", service.ErrPersistenceFailed, errors.New("quota")), http.StatusServiceUnavailable, "PERSISTENCE_FAILED"},
		{"unexpected", errors.New("upload to storage: boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			body, ct := multipartBody(t, "notes.txt", "text/plain", []byte("hello"))
			mockSvc.On("Add", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			req := httptest.NewRequest(http.MethodPost, "/documents", body)
			req.Header.Set("Content-Type", ct)
			resp, _ := app.Test(req)

			assert.Equal(t, tc.status, resp.StatusCode)
			res := decodeError(t, resp)
			assert.Equal(t, tc.code, res.Error.Code)
			assert.NotContains(t, res.Error.Message, "quota")
			assert.NotContains(t, res.Error.Message, "boom")
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestGetDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockVaultService)
	app := fiber.New()
	app.Get("/documents/:id", GetDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Find", id).Return(model.Document{ID: id, Name: "test.png"}, true).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/"+id, nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, id, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Find", id).Return(model.Document{}, false).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/"+id, nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockVaultService)
	app := fiber.New()
	app.Delete("/documents/:id", DeleteDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Remove", mock.Anything, id).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/documents/"+id, nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("persistence failed", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Remove", mock.Anything, id).Return(service.ErrPersistenceFailed).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/documents/"+id, nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDocumentContentAndURL(t *testing.T) {
	mockSvc := new(serviceMocks.MockVaultService)
	app := fiber.New()
	app.Get("/documents/:id/content", DocumentContent(mockSvc))
	app.Get("/documents/:id/url", DocumentURL(mockSvc))

	id := uuid.NewString()
	doc := model.Document{ID: id, Name: "scan.png", MimeType: "image/png"}

	t.Run("content inline", func(t *testing.T) {
		mockSvc.On("Find", id).Return(doc, true).Once()
		mockSvc.On("Open", mock.Anything, id).
			Return(io.NopCloser(strings.NewReader("png-bytes")), storage.ObjectInfo{ContentType: "image/png", Size: 9}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/"+id+"/content", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		assert.Equal(t, `inline; filename=scan.png`, resp.Header.Get("Content-Disposition"))
		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "png-bytes", string(b))
	})

	t.Run("content download", func(t *testing.T) {
		mockSvc.On("Find", id).Return(doc, true).Once()
		mockSvc.On("Open", mock.Anything, id).
			Return(io.NopCloser(strings.NewReader("png-bytes")), storage.ObjectInfo{ContentType: "image/png", Size: 9}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/"+id+"/content?download=true", nil))

		assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), "attachment"))
	})

	t.Run("content missing", func(t *testing.T) {
		mockSvc.On("Find", "nope").Return(model.Document{}, false).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/nope/content", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("url", func(t *testing.T) {
		mockSvc.On("PresignURL", mock.Anything, id).Return("https://objects.local/documents/x?sig=1", nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/"+id+"/url", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "https://objects.local/documents/x?sig=1", body["url"])
	})

	t.Run("url not found", func(t *testing.T) {
		mockSvc.On("PresignURL", mock.Anything, "gone").Return("", service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/gone/url", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestListAppointments(t *testing.T) {
	mockSvc := new(serviceMocks.MockAppointmentService)
	app := fiber.New()
	app.Get("/appointments", ListAppointments(mockSvc))

	t.Run("default limit", func(t *testing.T) {
		mockSvc.On("List", 5).Return([]model.Appointment{{ID: "APT000001"}}).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/appointments", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("explicit limit", func(t *testing.T) {
		mockSvc.On("List", 0).Return([]model.Appointment{}).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/appointments?limit=0", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		for _, q := range []string{"abc", "-1"} {
			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/appointments?limit="+q, nil))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "INVALID_LIMIT", decodeError(t, resp).Error.Code)
		}
	})
}

func TestBookAppointment(t *testing.T) {
	mockSvc := new(serviceMocks.MockAppointmentService)
	app := fiber.New()
	app.Post("/appointments", BookAppointment(mockSvc))

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		want := service.BookingRequest{ServiceID: "passport", Date: "2025-01-10", Time: "10:00"}
		mockSvc.On("Book", mock.Anything, want).
			Return(&model.Appointment{ID: "APT123456", ServiceName: "Passport Application", Status: model.StatusPending}, nil).Once()

		resp := post(`{"serviceId":"passport","date":"2025-01-10","time":"10:00"}`)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var got model.Appointment
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, "APT123456", got.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		mockSvc.On("Book", mock.Anything, mock.Anything).Return(nil, service.ErrMissingFields).Once()

		resp := post(`{"serviceId":"passport"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "MISSING_FIELDS", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid schedule", func(t *testing.T) {
		mockSvc.On("Book", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: bad", service.ErrInvalidSchedule)).Once()

		resp := post(`{"serviceId":"passport","date":"tomorrow","time":"10:00"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_SCHEDULE", decodeError(t, resp).Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp := post(`{`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})
}

func TestTrackApplication(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	app := fiber.New()
	app.Get("/applications/:id", TrackApplication(service.NewTracker(cat.Applications())))

	t.Run("case insensitive", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/applications/app002", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var view service.ApplicationView
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
		assert.Equal(t, "APP002", view.ID)
		assert.Equal(t, "Pending", view.StatusLabel)
	})

	t.Run("blank", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/applications/%20%20", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "EMPTY_INPUT", decodeError(t, resp).Error.Code)
	})

	t.Run("unknown", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/applications/ZZZ999", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})
}

func TestProfileHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockProfileService)
	app := fiber.New()
	app.Get("/profile", GetProfile(mockSvc))
	app.Put("/profile", UpdateProfile(mockSvc))
	app.Get("/profile/signature", GetSignature(mockSvc))
	app.Put("/profile/signature", UpdateSignature(mockSvc))
	app.Get("/profile/documents", ListCommonDocuments(mockSvc))
	app.Post("/profile/documents/:type", UploadCommonDocument(mockSvc))

	t.Run("get profile", func(t *testing.T) {
		mockSvc.On("Profile").Return(model.Profile{Name: "Asha"}).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/profile", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var p model.Profile
		json.NewDecoder(resp.Body).Decode(&p)
		assert.Equal(t, "Asha", p.Name)
	})

	t.Run("update profile validation error", func(t *testing.T) {
		// A real validator produces the details.
		store := service.NewProfileStore(memory.NewKVMemory(), nil, nil, nil, nil, service.ProfileOptions{})
		_, verr := store.SaveProfile(t.Context(), model.Profile{Email: "nope"})
		require.Error(t, verr)

		mockSvc.On("SaveProfile", mock.Anything, model.Profile{Email: "nope"}).Return(model.Profile{}, verr).Once()

		req := httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(`{"email":"nope"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		res := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)
		require.Len(t, res.Error.Details, 1)
		assert.Equal(t, "Email", res.Error.Details[0].Field)
		assert.Equal(t, "email", res.Error.Details[0].Rule)
	})

	t.Run("no signature", func(t *testing.T) {
		mockSvc.On("Signature").Return(model.Signature{}, false).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/profile/signature", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("update signature", func(t *testing.T) {
		body, ct := multipartBody(t, "sig.png", "image/png", []byte("png"))
		sig := &model.Signature{MimeType: "image/png", DataURI: "data:image/png;base64,cG5n", UpdatedAt: time.Now().UTC()}
		mockSvc.On("SaveSignature", mock.Anything, "image/png", mock.Anything).Return(sig, nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/profile/signature", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("common documents", func(t *testing.T) {
		mockSvc.On("CommonDocuments").Return([]service.CommonDocumentStatus{{ID: "pan", Name: "PAN Card", Uploaded: true}}).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/profile/documents", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got []service.CommonDocumentStatus
		json.NewDecoder(resp.Body).Decode(&got)
		require.Len(t, got, 1)
		assert.True(t, got[0].Uploaded)
	})

	t.Run("upload common document in progress", func(t *testing.T) {
		body, ct := multipartBody(t, "aadhaar.jpg", "image/jpeg", []byte("jpg"))
		mockSvc.On("UploadCommonDocument", mock.Anything, "aadhar", mock.Anything).Return(nil, service.ErrUploadInProgress).Once()

		req := httptest.NewRequest(http.MethodPost, "/profile/documents/aadhar", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "UPLOAD_IN_PROGRESS", decodeError(t, resp).Error.Code)
	})

	t.Run("upload common document", func(t *testing.T) {
		body, ct := multipartBody(t, "pan.pdf", "application/pdf", []byte("%PDF"))
		doc := &model.Document{ID: uuid.NewString(), Name: "PAN Card_2025.pdf", Tag: model.DocumentTagProfileVerified}
		mockSvc.On("UploadCommonDocument", mock.Anything, "pan", mock.Anything).Return(doc, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/profile/documents/pan", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	cat, err := catalog.Default()
	require.NoError(t, err)

	RegisterRoutes(app, Deps{
		Store:        memory.NewKVMemory(),
		Catalog:      cat,
		Vault:        new(serviceMocks.MockVaultService),
		Appointments: new(serviceMocks.MockAppointmentService),
		Tracker:      service.NewTracker(cat.Applications()),
		Profile:      new(serviceMocks.MockProfileService),
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("health with memory backend", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestDashboard(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	vault := new(serviceMocks.MockVaultService)
	appts := new(serviceMocks.MockAppointmentService)
	vault.On("List").Return([]model.Document{{ID: "a"}, {ID: "b"}})
	appts.On("List", 0).Return([]model.Appointment{{ID: "APT000001"}})

	app := fiber.New()
	app.Get("/dashboard", GetDashboard(service.NewDashboard(vault, appts, service.NewTracker(cat.Applications()))))

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got service.DashboardCounts
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, service.DashboardCounts{Documents: 2, Appointments: 1, PendingApplications: 2, ApprovedApplications: 2}, got)
}
