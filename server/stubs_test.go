package server

import (
	"context"
	"errors"
	"io"
	"testing"

	"anganwadi/config"
	"anganwadi/core/program"
	"anganwadi/model"
	"anganwadi/storage"
)

var errTest = errors.New("test failure")

const (
	testAdminEmail = "admin@gmail.com"
	testAdminPass  = "secret123"
)

type stubProgramRepo struct {
	created   []*model.Program
	createErr error

	byID   map[int64]*model.Program
	getErr error

	updated   *model.Program
	updateErr error

	deletedIDs []int64
	deleteErr  error

	all    []*model.Program
	allErr error

	count    int64
	countErr error

	latest    *model.Program
	latestErr error
}

func (r *stubProgramRepo) CreateProgram(_ context.Context, p *model.Program) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	r.created = append(r.created, p)
	return int64(len(r.created)), nil
}

func (r *stubProgramRepo) GetAllPrograms(_ context.Context) ([]*model.Program, error) {
	return r.all, r.allErr
}

func (r *stubProgramRepo) GetProgramByID(_ context.Context, id int64) (*model.Program, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.byID[id], nil
}

func (r *stubProgramRepo) UpdateProgram(_ context.Context, p *model.Program) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = p
	return nil
}

func (r *stubProgramRepo) DeleteProgram(_ context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deletedIDs = append(r.deletedIDs, id)
	return nil
}

func (r *stubProgramRepo) CountPrograms(_ context.Context) (int64, error) {
	return r.count, r.countErr
}

func (r *stubProgramRepo) GetLatestProgram(_ context.Context) (*model.Program, error) {
	return r.latest, r.latestErr
}

type stubImageStore struct {
	uploadResult *storage.UploadResult
	uploadErr    error
	uploads      int

	deleteErr error
	deleted   []string
}

func (s *stubImageStore) Upload(_ context.Context, _, _ string, _ io.Reader, _ int64, _ string) (*storage.UploadResult, error) {
	s.uploads++
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	if s.uploadResult == nil {
		return &storage.UploadResult{
			URL:      "http://images.local/anganwadi/anganwadi-programs/test.jpg",
			PublicID: "anganwadi-programs/test",
		}, nil
	}
	return s.uploadResult, nil
}

func (s *stubImageStore) Delete(_ context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return s.deleteErr
}

func newTestHandler(t *testing.T, repo *stubProgramRepo, images *stubImageStore) *APIHandler {
	t.Helper()

	cfg := &config.Config{
		AdminEmail: testAdminEmail,
		AdminPass:  testAdminPass,
	}

	handler, err := NewAPIHandler(program.NewService(repo, images), cfg)
	if err != nil {
		t.Fatalf("NewAPIHandler returned error: %v", err)
	}
	return handler
}
