package delivery

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/service/ledger"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/service/planner"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/service/selector"
)

var testNow = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

type stubProvider struct {
	cfg *domain.ScheduleConfig
}

func (p *stubProvider) Cached(_ context.Context) *domain.ScheduleConfig {
	return p.cfg
}

type stubReplanner struct {
	calls int
	err   error
}

func (r *stubReplanner) ScheduleAll(_ context.Context, _ *domain.ScheduleConfig) (*planner.Result, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return &planner.Result{}, nil
}

func testConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		Enabled:     true,
		StartHour:   10,
		EndHour:     22,
		TimesPerDay: 4,
		Sentences: []domain.Sentence{
			{ID: "msg-1", Text: "first"},
			{ID: "msg-2", Text: "second", IsQuote: true},
		},
	}
}

func newTestService(t *testing.T, ctrl *gomock.Controller, cfg *domain.ScheduleConfig, replanner Replanner) (*Service, *domain.MockHistoryRepository, *domain.MockSeenRepository) {
	t.Helper()

	historyRepo := domain.NewMockHistoryRepository(ctrl)
	seenRepo := domain.NewMockSeenRepository(ctrl)

	ledgerService := ledger.NewService(historyRepo, seenRepo, nil, 100, func() time.Time { return testNow })
	contentSelector := selector.New(rand.New(rand.NewPCG(1, 0)))

	svc := NewService(
		&stubProvider{cfg: cfg},
		contentSelector,
		ledgerService,
		replanner,
		nil,
		nil,
		func() time.Time { return testNow },
	)
	return svc, historyRepo, seenRepo
}

func TestHandleFire_DeliversAndReplans(t *testing.T) {
	ctrl := gomock.NewController(t)
	replanner := &stubReplanner{}
	svc, historyRepo, seenRepo := newTestService(t, ctrl, testConfig(), replanner)

	seenRepo.EXPECT().Members(gomock.Any()).Return(map[string]struct{}{}, nil)
	historyRepo.EXPECT().Load(gomock.Any()).Return([]domain.HistoryEntry{}, nil)

	var saved []domain.HistoryEntry
	historyRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entries []domain.HistoryEntry) error {
			saved = entries
			return nil
		})
	seenRepo.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.HandleFire(context.Background(), 1000, "run-1", "")
	if err != nil {
		t.Fatalf("HandleFire() error = %v", err)
	}

	if result.Outcome != OutcomeDelivered {
		t.Errorf("Outcome = %q, want %q", result.Outcome, OutcomeDelivered)
	}
	if result.Entry == nil {
		t.Fatal("Entry = nil, want delivered entry")
	}
	if result.Entry.ID != testNow.UnixMilli() {
		t.Errorf("Entry.ID = %d, want %d", result.Entry.ID, testNow.UnixMilli())
	}
	if len(saved) != 1 {
		t.Fatalf("history holds %d entries, want 1", len(saved))
	}
	if replanner.calls != 1 {
		t.Errorf("replanner invoked %d times, want 1", replanner.calls)
	}
}

func TestHandleFire_ForcedDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	replanner := &stubReplanner{}
	svc, historyRepo, seenRepo := newTestService(t, ctrl, testConfig(), replanner)

	// Forced selection bypasses the seen set entirely.
	seenRepo.EXPECT().Members(gomock.Any()).Return(map[string]struct{}{"msg-2": {}}, nil)
	historyRepo.EXPECT().Load(gomock.Any()).Return([]domain.HistoryEntry{}, nil)
	historyRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	seenRepo.EXPECT().Add(gomock.Any(), "msg-2").Return(nil)

	result, err := svc.HandleFire(context.Background(), 1001, "run-1", "msg-2")
	if err != nil {
		t.Fatalf("HandleFire() error = %v", err)
	}

	if result.Outcome != OutcomeDelivered {
		t.Fatalf("Outcome = %q, want %q", result.Outcome, OutcomeDelivered)
	}
	if result.Entry.MessageID != "msg-2" {
		t.Errorf("Entry.MessageID = %q, want %q", result.Entry.MessageID, "msg-2")
	}
	if !result.Entry.IsQuote {
		t.Error("Entry.IsQuote = false, want snapshot of sentence")
	}
}

func TestHandleFire_StaleForcedIDSuppressed(t *testing.T) {
	ctrl := gomock.NewController(t)
	replanner := &stubReplanner{}
	svc, _, seenRepo := newTestService(t, ctrl, testConfig(), replanner)

	seenRepo.EXPECT().Members(gomock.Any()).Return(map[string]struct{}{}, nil)

	result, err := svc.HandleFire(context.Background(), 1002, "run-1", "msg-gone")
	if err != nil {
		t.Fatalf("HandleFire() error = %v", err)
	}

	if result.Outcome != OutcomeSuppressed {
		t.Errorf("Outcome = %q, want %q", result.Outcome, OutcomeSuppressed)
	}
	if result.SkipReason != SkipReasonStaleForced {
		t.Errorf("SkipReason = %q, want %q", result.SkipReason, SkipReasonStaleForced)
	}
	if replanner.calls != 0 {
		t.Errorf("replanner invoked %d times on suppression, want 0", replanner.calls)
	}
}

func TestHandleFire_ExhaustedPoolSuppressed(t *testing.T) {
	ctrl := gomock.NewController(t)
	replanner := &stubReplanner{}
	svc, _, seenRepo := newTestService(t, ctrl, testConfig(), replanner)

	seenRepo.EXPECT().Members(gomock.Any()).Return(map[string]struct{}{
		"msg-1": {}, "msg-2": {},
	}, nil)

	result, err := svc.HandleFire(context.Background(), 1003, "run-1", "")
	if err != nil {
		t.Fatalf("HandleFire() error = %v", err)
	}

	if result.Outcome != OutcomeSuppressed {
		t.Errorf("Outcome = %q, want %q", result.Outcome, OutcomeSuppressed)
	}
	if result.SkipReason != SkipReasonExhausted {
		t.Errorf("SkipReason = %q, want %q", result.SkipReason, SkipReasonExhausted)
	}
}

func TestHandleFire_SeenLoadFailureFallsBackToFullPool(t *testing.T) {
	ctrl := gomock.NewController(t)
	replanner := &stubReplanner{}
	svc, historyRepo, seenRepo := newTestService(t, ctrl, testConfig(), replanner)

	seenRepo.EXPECT().Members(gomock.Any()).Return(nil, errors.New("redis down"))
	historyRepo.EXPECT().Load(gomock.Any()).Return([]domain.HistoryEntry{}, nil)
	historyRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	seenRepo.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.HandleFire(context.Background(), 1004, "run-1", "")
	if err != nil {
		t.Fatalf("HandleFire() error = %v", err)
	}
	if result.Outcome != OutcomeDelivered {
		t.Errorf("Outcome = %q, want %q", result.Outcome, OutcomeDelivered)
	}
}

func TestHandleFire_AppendFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	replanner := &stubReplanner{}
	svc, historyRepo, seenRepo := newTestService(t, ctrl, testConfig(), replanner)

	seenRepo.EXPECT().Members(gomock.Any()).Return(map[string]struct{}{}, nil)
	historyRepo.EXPECT().Load(gomock.Any()).Return(nil, errors.New("redis down"))

	if _, err := svc.HandleFire(context.Background(), 1005, "run-1", ""); err == nil {
		t.Error("HandleFire() error = nil, want error")
	}
	if replanner.calls != 0 {
		t.Errorf("replanner invoked %d times on failure, want 0", replanner.calls)
	}
}

func TestHandleFire_ReplanFailureDoesNotFailDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	replanner := &stubReplanner{err: errors.New("queue unavailable")}
	svc, historyRepo, seenRepo := newTestService(t, ctrl, testConfig(), replanner)

	seenRepo.EXPECT().Members(gomock.Any()).Return(map[string]struct{}{}, nil)
	historyRepo.EXPECT().Load(gomock.Any()).Return([]domain.HistoryEntry{}, nil)
	historyRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	seenRepo.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.HandleFire(context.Background(), 1006, "run-1", "")
	if err != nil {
		t.Fatalf("HandleFire() error = %v", err)
	}
	if result.Outcome != OutcomeDelivered {
		t.Errorf("Outcome = %q, want %q", result.Outcome, OutcomeDelivered)
	}
}

type capturingRecorder struct {
	deliveries []domain.DeliveryRecord
}

func (r *capturingRecorder) RecordPlanningPass(_ context.Context, _ domain.PlanningPassRecord) error {
	return nil
}

func (r *capturingRecorder) RecordDelivery(_ context.Context, record domain.DeliveryRecord) error {
	r.deliveries = append(r.deliveries, record)
	return nil
}

func (r *capturingRecorder) Flush(_ context.Context) error { return nil }

func (r *capturingRecorder) Close() error { return nil }

func TestHandleFire_RecordCarriesRunID(t *testing.T) {
	ctrl := gomock.NewController(t)

	historyRepo := domain.NewMockHistoryRepository(ctrl)
	seenRepo := domain.NewMockSeenRepository(ctrl)
	seenRepo.EXPECT().Members(gomock.Any()).Return(map[string]struct{}{}, nil)
	historyRepo.EXPECT().Load(gomock.Any()).Return([]domain.HistoryEntry{}, nil)
	historyRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	seenRepo.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil)

	ledgerService := ledger.NewService(historyRepo, seenRepo, nil, 100, func() time.Time { return testNow })
	recorder := &capturingRecorder{}

	svc := NewService(
		&stubProvider{cfg: testConfig()},
		selector.New(rand.New(rand.NewPCG(1, 0))),
		ledgerService,
		&stubReplanner{},
		recorder,
		nil,
		func() time.Time { return testNow },
	)

	if _, err := svc.HandleFire(context.Background(), 1002, "run-9", ""); err != nil {
		t.Fatalf("HandleFire() error = %v", err)
	}

	if len(recorder.deliveries) != 1 {
		t.Fatalf("recorded %d deliveries, want 1", len(recorder.deliveries))
	}
	record := recorder.deliveries[0]
	if record.RunID != "run-9" {
		t.Errorf("RunID = %q, want %q", record.RunID, "run-9")
	}
	if record.RequestCode != 1002 {
		t.Errorf("RequestCode = %d, want 1002", record.RequestCode)
	}
	if record.Outcome != OutcomeDelivered {
		t.Errorf("Outcome = %q, want %q", record.Outcome, OutcomeDelivered)
	}
}
