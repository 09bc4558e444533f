package design

import (
	"strings"
	"testing"

	"github.com/gaveldev/gavel/internal/finding"
)

func titles(findings []finding.Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.Title
	}
	return out
}

func hasTitle(findings []finding.Finding, title string) bool {
	for _, f := range findings {
		if f.Title == title {
			return true
		}
	}
	return false
}

func TestReviewPatterns(t *testing.T) {
	t.Run("singleton overuse", func(t *testing.T) {
		doc := strings.Repeat("The Singleton holds config. ", 4)
		got := reviewPatterns("design.md", doc, finding.NewIDGen("DES"))
		if !hasTitle(got, "Singleton overuse") {
			t.Errorf("want Singleton overuse, got %v", titles(got))
		}
	})
	t.Run("three singletons tolerated", func(t *testing.T) {
		doc := strings.Repeat("A Singleton. ", 3)
		got := reviewPatterns("design.md", doc, finding.NewIDGen("DES"))
		if hasTitle(got, "Singleton overuse") {
			t.Error("three mentions should not fire")
		}
	})
	t.Run("complex creation without factory", func(t *testing.T) {
		got := reviewPatterns("design.md", "Report objects need complex construction with nine fields.", finding.NewIDGen("DES"))
		if !hasTitle(got, "Complex creation without a Factory") {
			t.Errorf("got %v", titles(got))
		}
	})
	t.Run("factory declared", func(t *testing.T) {
		got := reviewPatterns("design.md", "Complex construction is owned by the ReportFactory.", finding.NewIDGen("DES"))
		if hasTitle(got, "Complex creation without a Factory") {
			t.Error("declared Factory should suppress the finding")
		}
	})
	t.Run("events without observer", func(t *testing.T) {
		got := reviewPatterns("design.md", "Order events fan out to billing and shipping.", finding.NewIDGen("DES"))
		if !hasTitle(got, "Events without an Observer") {
			t.Errorf("got %v", titles(got))
		}
		if got[0].Severity != finding.SeverityLow {
			t.Errorf("severity = %q, want low", got[0].Severity)
		}
	})
}

func TestReviewCoupling(t *testing.T) {
	tests := []struct {
		doc      string
		title    string
		severity finding.Severity
	}{
		{"There is tight coupling between billing and mail.", "Tight coupling", finding.SeverityHigh},
		{"Connection settings live in global state.", "Global state", finding.SeverityHigh},
		{"A utility class collects conversion helpers.", "Utility class", finding.SeverityMedium},
		{"We accept the circular dependency between auth and users.", "Circular dependency", finding.SeverityCritical},
		{"モジュール間は密結合になっている。", "Tight coupling", finding.SeverityHigh},
	}
	for _, tt := range tests {
		got := reviewCoupling("design.md", tt.doc, finding.NewIDGen("DES"))
		if len(got) != 1 {
			t.Errorf("%q: findings = %d, want 1", tt.doc, len(got))
			continue
		}
		if got[0].Title != tt.title || got[0].Severity != tt.severity {
			t.Errorf("%q: got %s/%s, want %s/%s", tt.doc, got[0].Title, got[0].Severity, tt.title, tt.severity)
		}
	}
}

func TestReviewErrors(t *testing.T) {
	t.Run("silent doc", func(t *testing.T) {
		got := reviewErrors("design.md", "Components call each other over HTTP.", finding.NewIDGen("DES"))
		if !hasTitle(got, "No error handling strategy") {
			t.Errorf("got %v", titles(got))
		}
		if !hasTitle(got, "No graceful degradation plan") {
			t.Errorf("got %v", titles(got))
		}
	})
	t.Run("external service without retry", func(t *testing.T) {
		doc := "Error handling wraps failures. Rates come from an external API. Degraded mode serves cached values."
		got := reviewErrors("design.md", doc, finding.NewIDGen("DES"))
		if len(got) != 1 || got[0].Title != "No retry policy for external services" {
			t.Errorf("got %v", titles(got))
		}
	})
	t.Run("microservices without circuit breaker", func(t *testing.T) {
		doc := "Error handling: retries with backoff everywhere. Microservices talk over gRPC. Gracefully degrades to read-only."
		got := reviewErrors("design.md", doc, finding.NewIDGen("DES"))
		if len(got) != 1 || got[0].Title != "No circuit breaker in a microservice design" {
			t.Errorf("got %v", titles(got))
		}
	})
	t.Run("complete", func(t *testing.T) {
		doc := "Error handling: external services get retries with backoff behind a circuit breaker; microservices gracefully degrade."
		if got := reviewErrors("design.md", doc, finding.NewIDGen("DES")); len(got) != 0 {
			t.Errorf("got %v", titles(got))
		}
	})
}

func TestReviewC4(t *testing.T) {
	doc := "## Container Diagram\n\n(mermaid)\n\n## Component Diagram\n\n(mermaid)\n"
	got := reviewC4("design.md", doc, finding.NewIDGen("DES"))
	if len(got) != 1 {
		t.Fatalf("findings = %d, want 1: %v", len(got), titles(got))
	}
	if got[0].Title != "Missing C4 Context diagram" || got[0].Severity != finding.SeverityHigh {
		t.Errorf("got %s/%s", got[0].Title, got[0].Severity)
	}

	all := reviewC4("design.md", "No diagrams at all.", finding.NewIDGen("DES"))
	if len(all) != 3 {
		t.Errorf("bare doc findings = %d, want 3", len(all))
	}
}

func TestReviewADR(t *testing.T) {
	t.Run("not an adr", func(t *testing.T) {
		if got := reviewADR("design.md", "# Order Service Design\n\nProse.", finding.NewIDGen("DES")); got != nil {
			t.Errorf("non-ADR doc produced %v", titles(got))
		}
	})
	t.Run("missing decision is critical", func(t *testing.T) {
		doc := "# ADR-007: Queue choice\n\n## Status\nAccepted\n\n## Context\nWe need a queue.\n\n## Consequences\nOps owns Kafka.\n\n## Alternatives Considered\nNATS.\n"
		got := reviewADR("adr-007.md", doc, finding.NewIDGen("DES"))
		if len(got) != 1 {
			t.Fatalf("findings = %d, want 1: %v", len(got), titles(got))
		}
		if got[0].Title != "ADR missing Decision section" || got[0].Severity != finding.SeverityCritical {
			t.Errorf("got %s/%s", got[0].Title, got[0].Severity)
		}
	})
	t.Run("complete adr", func(t *testing.T) {
		doc := "# ADR-001: Storage\n\n## Status\n## Context\n## Decision\n## Consequences\n## Alternatives\n"
		if got := reviewADR("adr-001.md", doc, finding.NewIDGen("DES")); len(got) != 0 {
			t.Errorf("got %v", titles(got))
		}
	})
}
