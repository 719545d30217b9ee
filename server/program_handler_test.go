package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anganwadi/model"
	"anganwadi/storage"

	"github.com/gorilla/mux"
)

func programForm(t *testing.T, fields map[string]string, filename string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field %s: %v", key, err)
		}
	}
	if filename != "" {
		fw, err := writer.CreateFormFile("image", filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write(fileContent); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func defaultFields() map[string]string {
	return map[string]string{
		"title":       "Nutrition Week",
		"description": "Awareness drive on child nutrition",
		"date":        "2026-09-01",
		"time":        "11:00 AM",
	}
}

func TestAddProgramHandlerWithoutImage(t *testing.T) {
	repo := &stubProgramRepo{}
	handler := newTestHandler(t, repo, &stubImageStore{})

	body, contentType := programForm(t, defaultFields(), "", nil)
	req := httptest.NewRequest(http.MethodPost, "/add-program", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	handler.AddProgramHandler(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	payload := decodeBody(t, rr)
	if payload["message"] != "Program Added Successfully" {
		t.Errorf("unexpected message %v", payload["message"])
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 created program, got %d", len(repo.created))
	}
	if repo.created[0].Image != "" {
		t.Errorf("expected empty image, got %q", repo.created[0].Image)
	}
}

func TestAddProgramHandlerWithImage(t *testing.T) {
	repo := &stubProgramRepo{}
	images := &stubImageStore{
		uploadResult: &storage.UploadResult{
			URL:      "http://images.local/anganwadi/anganwadi-programs/banner.jpg",
			PublicID: "anganwadi-programs/banner",
		},
	}
	handler := newTestHandler(t, repo, images)

	body, contentType := programForm(t, defaultFields(), "banner.jpg", []byte("fake image"))
	req := httptest.NewRequest(http.MethodPost, "/add-program", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	handler.AddProgramHandler(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if images.uploads != 1 {
		t.Fatalf("expected 1 upload, got %d", images.uploads)
	}
	if repo.created[0].Image != images.uploadResult.URL {
		t.Errorf("expected image %q, got %q", images.uploadResult.URL, repo.created[0].Image)
	}
}

func TestAddProgramHandlerPersistenceFailure(t *testing.T) {
	repo := &stubProgramRepo{createErr: errTest}
	handler := newTestHandler(t, repo, &stubImageStore{})

	body, contentType := programForm(t, defaultFields(), "", nil)
	req := httptest.NewRequest(http.MethodPost, "/add-program", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	handler.AddProgramHandler(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	payload := decodeBody(t, rr)
	if payload["error"] != "Something went wrong" {
		t.Errorf("unexpected error payload %v", payload["error"])
	}
}

func TestUpdateProgramHandlerNotFound(t *testing.T) {
	repo := &stubProgramRepo{byID: map[int64]*model.Program{}}
	handler := newTestHandler(t, repo, &stubImageStore{})

	body, contentType := programForm(t, defaultFields(), "", nil)
	req := httptest.NewRequest(http.MethodPut, "/update-program/42", body)
	req.Header.Set("Content-Type", contentType)
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	rr := httptest.NewRecorder()

	handler.UpdateProgramHandler(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	payload := decodeBody(t, rr)
	if payload["error"] != "Program not found" {
		t.Errorf("unexpected error payload %v", payload["error"])
	}
}

func TestUpdateProgramHandlerNonNumericID(t *testing.T) {
	handler := newTestHandler(t, &stubProgramRepo{}, &stubImageStore{})

	body, contentType := programForm(t, defaultFields(), "", nil)
	req := httptest.NewRequest(http.MethodPut, "/update-program/abc", body)
	req.Header.Set("Content-Type", contentType)
	req = mux.SetURLVars(req, map[string]string{"id": "abc"})
	rr := httptest.NewRecorder()

	handler.UpdateProgramHandler(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestUpdateProgramHandlerSuccess(t *testing.T) {
	existing := &model.Program{
		ID:    7,
		Title: "Old",
		Image: "http://images.local/anganwadi/anganwadi-programs/old.jpg",
	}
	repo := &stubProgramRepo{byID: map[int64]*model.Program{7: existing}}
	handler := newTestHandler(t, repo, &stubImageStore{})

	body, contentType := programForm(t, defaultFields(), "", nil)
	req := httptest.NewRequest(http.MethodPut, "/update-program/7", body)
	req.Header.Set("Content-Type", contentType)
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rr := httptest.NewRecorder()

	handler.UpdateProgramHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if repo.updated == nil {
		t.Fatal("expected program to be updated")
	}
	if repo.updated.Title != "Nutrition Week" {
		t.Errorf("expected title overwritten, got %q", repo.updated.Title)
	}
	if repo.updated.Image != existing.Image {
		t.Errorf("expected image preserved, got %q", repo.updated.Image)
	}
}

func TestDeleteProgramHandlerSuccess(t *testing.T) {
	existing := &model.Program{
		ID:    3,
		Image: "http://images.local/anganwadi/anganwadi-programs/gone.jpg",
	}
	repo := &stubProgramRepo{byID: map[int64]*model.Program{3: existing}}
	images := &stubImageStore{}
	handler := newTestHandler(t, repo, images)

	req := httptest.NewRequest(http.MethodDelete, "/delete-program/3", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "3"})
	rr := httptest.NewRecorder()

	handler.DeleteProgramHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if len(images.deleted) != 1 || images.deleted[0] != "anganwadi-programs/gone" {
		t.Errorf("unexpected image deletes %v", images.deleted)
	}
	if len(repo.deletedIDs) != 1 || repo.deletedIDs[0] != 3 {
		t.Errorf("unexpected record deletes %v", repo.deletedIDs)
	}
}

func TestDeleteProgramHandlerNotFound(t *testing.T) {
	repo := &stubProgramRepo{byID: map[int64]*model.Program{}}
	handler := newTestHandler(t, repo, &stubImageStore{})

	req := httptest.NewRequest(http.MethodDelete, "/delete-program/99", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "99"})
	rr := httptest.NewRecorder()

	handler.DeleteProgramHandler(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if len(repo.deletedIDs) != 0 {
		t.Error("expected store untouched")
	}
}

func TestGetProgramsHandler(t *testing.T) {
	now := time.Now()
	repo := &stubProgramRepo{all: []*model.Program{
		{ID: 2, Title: "Newest", CreatedAt: now},
		{ID: 1, Title: "Older", CreatedAt: now.Add(-time.Hour)},
	}}
	handler := newTestHandler(t, repo, &stubImageStore{})

	req := httptest.NewRequest(http.MethodGet, "/programs", nil)
	rr := httptest.NewRecorder()

	handler.GetProgramsHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var programs []model.Program
	if err := json.NewDecoder(rr.Body).Decode(&programs); err != nil {
		t.Fatalf("failed to decode programs: %v", err)
	}
	if len(programs) != 2 {
		t.Fatalf("expected 2 programs, got %d", len(programs))
	}
	if programs[0].ID != 2 || programs[1].ID != 1 {
		t.Errorf("expected newest-first order, got %+v", programs)
	}
}

func TestDashboardStatsHandlerEmptyStore(t *testing.T) {
	handler := newTestHandler(t, &stubProgramRepo{}, &stubImageStore{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard-stats", nil)
	rr := httptest.NewRecorder()

	handler.DashboardStatsHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var stats model.DashboardStats
	if err := json.NewDecoder(rr.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.TotalPrograms != 0 || stats.ThisMonthCount != 0 || stats.LastAdded != "N/A" {
		t.Errorf("unexpected stats %+v", stats)
	}
}
