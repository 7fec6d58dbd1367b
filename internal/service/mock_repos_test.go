package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"slot-planner/internal/model"
	"slot-planner/internal/planner"
	"slot-planner/internal/repository"
)

// ── Mock DocumentRepository ──

var errMockSave = errors.New("mock: 磁盘已满")

type mockDocumentRepo struct {
	doc      *model.Document
	saves    int
	failSave bool
	loadErr  error
}

func newMockDocumentRepo(doc *model.Document) *mockDocumentRepo {
	if doc == nil {
		doc = &model.Document{}
	}
	return &mockDocumentRepo{doc: doc}
}

func (m *mockDocumentRepo) Load(_ context.Context) (*model.Document, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.doc.Clone(), nil
}

func (m *mockDocumentRepo) Save(_ context.Context, doc *model.Document) error {
	if m.failSave {
		return errMockSave
	}
	m.saves++
	m.doc = doc.Clone()
	return nil
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	entries map[string]time.Duration
	err     error
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{entries: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.entries[jti] = ttl
	return nil
}

// ── 测试辅助 ──

// seqIDs 顺序 ID 生成器：id-1, id-2, ...
func seqIDs() planner.IDGenerator {
	n := 0
	return planner.IDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

// fixedNow 固定在 2024-05-15
func fixedNow() time.Time {
	return time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
}

const testMonth = "2024-05"

func alphaDocument() *model.Document {
	return &model.Document{
		Members: []model.Member{
			{ID: "alpha", Name: "Alpha", Level: model.LevelSenior},
			{ID: "beta", Name: "Beta", Level: model.LevelJunior},
		},
		Slots:    []model.TimeSlot{},
		Projects: []model.Project{},
	}
}

func setupTestPlannerService(doc *model.Document) (*plannerService, *mockDocumentRepo) {
	docRepo := newMockDocumentRepo(doc)
	repo := repository.NewRepository(docRepo)
	svc := NewPlannerService(repo, seqIDs(), fixedNow, zap.NewNop()).(*plannerService)
	if err := svc.Init(context.Background()); err != nil {
		panic(err)
	}
	return svc, docRepo
}
