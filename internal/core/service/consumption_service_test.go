package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/myenergy/tracker/internal/core/aggregator"
	"github.com/myenergy/tracker/internal/core/domain"
	"github.com/myenergy/tracker/internal/core/ports"
)

func TestConsumptionService_Add(t *testing.T) {
	store, _ := seededStore(fixtureDocument())
	svc := NewConsumptionService(store, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Add(ctx, aliceViewer, "", ports.ConsumptionInput{Date: "2024-02-01", KWh: 1}); err != domain.ErrHouseRequired {
		t.Fatalf("expected ErrHouseRequired, got %v", err)
	}
	if _, err := svc.Add(ctx, aliceViewer, "A1", ports.ConsumptionInput{Date: "01/02/2024", KWh: 1}); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for bad date, got %v", err)
	}
	if _, err := svc.Add(ctx, aliceViewer, "A1", ports.ConsumptionInput{Date: "2024-02-01", KWh: -3}); err != domain.ErrInvalidReading {
		t.Fatalf("expected ErrInvalidReading, got %v", err)
	}
	if _, err := svc.Add(ctx, aliceViewer, "B1", ports.ConsumptionInput{Date: "2024-02-01", KWh: 1}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for foreign house, got %v", err)
	}

	rec, err := svc.Add(ctx, aliceViewer, "A1", ports.ConsumptionInput{Date: "2024-02-01", KWh: 4.25, Note: " leitura "})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if rec.KWh != 4.25 || rec.Note != "leitura" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if n := len(mustLoad(store).Consumptions); n != 3 {
		t.Fatalf("expected 3 readings, got %d", n)
	}
}

func TestConsumptionService_Delete_AdminOnly(t *testing.T) {
	store, _ := seededStore(fixtureDocument())
	svc := NewConsumptionService(store, zerolog.Nop())
	ctx := context.Background()

	if err := svc.Delete(ctx, aliceViewer, "r1"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, adminViewer, "r1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, adminViewer, "r1"); err != domain.ErrConsumptionNotFound {
		t.Fatalf("expected ErrConsumptionNotFound, got %v", err)
	}
}

func TestConsumptionService_List_ScopedAndSorted(t *testing.T) {
	store, _ := seededStore(fixtureDocument())
	svc := NewConsumptionService(store, zerolog.Nop())

	all, err := svc.List(context.Background(), adminViewer, aggregator.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].ID != "r1" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	own, err := svc.List(context.Background(), aliceViewer, aggregator.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(own) != 1 || own[0].HouseID != "A1" {
		t.Fatalf("expected only own readings, got %+v", own)
	}

	if _, err := svc.List(context.Background(), aliceViewer, aggregator.Filter{HouseID: "B1"}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDashboardService_AdminScenario(t *testing.T) {
	store, _ := seededStore(fixtureDocument())
	svc := NewDashboardService(store)

	res, err := svc.Dashboard(context.Background(), adminViewer, aggregator.Filter{ClientID: aggregator.AllClients})
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if res.Summary.TotalKWh != 15 || res.Summary.AverageKWh != 7.5 || res.Summary.HouseCount != 2 {
		t.Fatalf("unexpected summary: %+v", res.Summary)
	}

	res, err = svc.Dashboard(context.Background(), adminViewer, aggregator.Filter{ClientID: "A"})
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if res.Summary.TotalKWh != 10 || res.Summary.HouseCount != 1 {
		t.Fatalf("unexpected summary for A: %+v", res.Summary)
	}
}

func TestDashboardService_UnknownClient(t *testing.T) {
	store, _ := seededStore(fixtureDocument())
	svc := NewDashboardService(store)

	if _, err := svc.Dashboard(context.Background(), adminViewer, aggregator.Filter{ClientID: "zzz"}); err != domain.ErrClientNotFound {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}
