package results

import (
	"bytes"
	"testing"
	"time"

	"github.com/canvas-contracts/go-canvas/patterns"
	"github.com/canvas-contracts/go-canvas/validation"
)

func sampleReport(fingerprint string) *Report {
	return &Report{
		Fingerprint: fingerprint,
		Name:        "sample",
		CreatedAt:   time.Now().UTC(),
		Validation:  &validation.Result{Valid: true},
		SecurityIssues: []patterns.SecurityFinding{
			{Name: "Reentrancy Attack", Severity: patterns.SeverityCritical},
			{Name: "Integer Overflow", Severity: patterns.SeverityHigh},
		},
		GasEstimate: 20130,
	}
}

func TestCriticalFindings(t *testing.T) {
	report := sampleReport("f1")
	critical := report.CriticalFindings()
	if len(critical) != 1 || critical[0].Name != "Reentrancy Attack" {
		t.Errorf("critical = %+v", critical)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	report := sampleReport("f1")
	var buf bytes.Buffer
	if err := report.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	again, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if again.Fingerprint != "f1" || again.GasEstimate != 20130 {
		t.Errorf("round trip lost data: %+v", again)
	}
	if len(again.SecurityIssues) != 2 {
		t.Errorf("security issues = %+v", again.SecurityIssues)
	}
}

func TestStoreSaveAndLatest(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	first := sampleReport("f1")
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	if err := store.Save(first); err != nil {
		t.Fatal(err)
	}
	second := sampleReport("f1")
	second.GasEstimate = 99
	if err := store.Save(second); err != nil {
		t.Fatal(err)
	}

	latest, err := store.Latest("f1")
	if err != nil {
		t.Fatal(err)
	}
	if latest.GasEstimate != 99 {
		t.Errorf("latest gas = %d, want the newer report", latest.GasEstimate)
	}

	if _, err := store.Latest("missing"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStoreHistory(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for i := 0; i < 3; i++ {
		r := sampleReport("f1")
		r.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute)
		r.GasEstimate = uint64(i)
		if err := store.Save(r); err != nil {
			t.Fatal(err)
		}
	}

	history, err := store.History("f1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d", len(history))
	}
	if history[0].GasEstimate != 2 {
		t.Errorf("newest first violated: %+v", history)
	}
}

func TestStorePrune(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	old := sampleReport("f1")
	old.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	recent := sampleReport("f2")
	if err := store.Save(old); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(recent); err != nil {
		t.Fatal(err)
	}

	removed, err := store.Prune(time.Now().UTC().Add(-24 * time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Errorf("pruned %d, want 1", removed)
	}
	if _, err := store.Latest("f2"); err != nil {
		t.Errorf("recent report pruned: %v", err)
	}
}

func TestSaveStampsCreatedAt(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	r := sampleReport("f1")
	r.CreatedAt = time.Time{}
	if err := store.Save(r); err != nil {
		t.Fatal(err)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}
}
