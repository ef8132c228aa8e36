package classify

import (
	"errors"
	"testing"
)

func TestClassifyInefficiency(t *testing.T) {
	record, err := Classify("Our team manually processes every request, which takes hours")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if record.Category != CategoryInefficiency {
		t.Errorf("category = %s, want %s", record.Category, CategoryInefficiency)
	}
	if record.IndicatorCount != 1 {
		t.Errorf("indicator count = %d, want 1", record.IndicatorCount)
	}
	// One indicator, impact 1.0, and "team" lifts connection potential to 1.5.
	if record.Priority != 1.5 {
		t.Errorf("priority = %v, want 1.5", record.Priority)
	}
}

func TestClassifyNoProblem(t *testing.T) {
	_, err := Classify("The weather was pleasant all week.")
	if !errors.Is(err, ErrNoProblemDetected) {
		t.Fatalf("expected ErrNoProblemDetected, got %v", err)
	}
}

func TestClassifyTieBreakByDeclarationOrder(t *testing.T) {
	// One inefficiency indicator and one fragility indicator: the
	// earlier-declared category wins the tie.
	record, err := Classify("The import is slow and sometimes crashes")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if record.Category != CategoryInefficiency {
		t.Errorf("category = %s, want %s", record.Category, CategoryInefficiency)
	}
}

func TestClassifyHigherCountWins(t *testing.T) {
	record, err := Classify("Deploys are slow, but the service crashes, fails, and breaks weekly")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if record.Category != CategoryFragility {
		t.Errorf("category = %s, want %s", record.Category, CategoryFragility)
	}
	if record.IndicatorCount != 3 {
		t.Errorf("indicator count = %d, want 3", record.IndicatorCount)
	}
}

func TestClassifyCategories(t *testing.T) {
	tests := []struct {
		text string
		want Category
	}{
		{"Two services emit conflicting, contradictory timestamps", CategoryInconsistency},
		{"The config format is convoluted and confusing", CategoryComplexity},
		{"The exporter is unreliable and error-prone", CategoryFragility},
		{"Each squad works siloed with no communication", CategoryIsolation},
		{"The queue hits maximum load and limited capacity", CategoryScaling},
	}
	for _, tt := range tests {
		record, err := Classify(tt.text)
		if err != nil {
			t.Errorf("Classify(%q): %v", tt.text, err)
			continue
		}
		if record.Category != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.text, record.Category, tt.want)
		}
	}
}

func TestConnectionPotential(t *testing.T) {
	base, err := Classify("The nightly job is slow")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	lifted, err := Classify("The nightly job is slow and the team must share results")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if lifted.Priority <= base.Priority {
		t.Errorf("collaboration keywords should raise priority: %v vs %v", lifted.Priority, base.Priority)
	}
}

func TestDescribe(t *testing.T) {
	record := &Record{Text: "Manual review creates a bottleneck", Category: CategoryInefficiency}
	got := record.Describe()
	want := "Process inefficiency detected: Manual review creates a bottleneck"
	if got != want {
		t.Errorf("Describe = %q, want %q", got, want)
	}
}

func TestValid(t *testing.T) {
	if !Valid(CategoryScaling) {
		t.Error("scaling should be valid")
	}
	if Valid(Category("urgent")) {
		t.Error("unknown category should be invalid")
	}
}
