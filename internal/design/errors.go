package design

import (
	"fmt"
	"regexp"

	"github.com/gaveldev/gavel/internal/finding"
)

var (
	errorStrategyPattern = regexp.MustCompile(`(?i)(error\s+handling|exception\s+(handling|strategy)|failure\s+mode|retry|fallback)|エラー処理|例外処理`)
	externalSvcPattern   = regexp.MustCompile(`(?i)(external\s+(service|api|system)|third[- ]party\s+(service|api)|downstream\s+(service|dependency))|外部サービス|外部API`)
	retryPattern         = regexp.MustCompile(`(?i)(retry|retries|backoff|再試行|リトライ)`)
	microservicePattern  = regexp.MustCompile(`(?i)(micro[- ]?services?)|マイクロサービス`)
	circuitPattern       = regexp.MustCompile(`(?i)circuit\s+breaker|サーキットブレーカー`)
	degradationPattern   = regexp.MustCompile(`(?i)(graceful(ly)?\s+degrad|degraded\s+mode|partial\s+availability|fallback\s+behaviou?r)`)
)

func reviewErrors(path, doc string, ids *finding.IDGen) []finding.Finding {
	var findings []finding.Finding

	add := func(severity finding.Severity, title, description, evidence string, line int) {
		findings = append(findings, finding.Finding{
			ID:             ids.Next(),
			Severity:       severity,
			Kind:           finding.KindMissing,
			Category:       "errors",
			Title:          title,
			Description:    description,
			Evidence:       evidence,
			Recommendation: fmt.Sprintf("Add a section describing %s.", title[len("No "):]),
			Location:       finding.Location{Path: path, Line: line},
			Status:         finding.StatusOpen,
		})
	}

	if !errorStrategyPattern.MatchString(doc) {
		add(finding.SeverityHigh, "No error handling strategy",
			"The design never states how errors are detected, propagated or surfaced.", "", 0)
	}

	if loc := externalSvcPattern.FindStringIndex(doc); loc != nil && !retryPattern.MatchString(doc) {
		add(finding.SeverityHigh, "No retry policy for external services",
			"External services are part of the design but no retry or backoff policy is stated.",
			doc[loc[0]:loc[1]], lineOf(doc, loc[0]))
	}

	if loc := microservicePattern.FindStringIndex(doc); loc != nil && !circuitPattern.MatchString(doc) {
		add(finding.SeverityHigh, "No circuit breaker in a microservice design",
			"A microservice topology without circuit breakers lets one slow service stall the rest.",
			doc[loc[0]:loc[1]], lineOf(doc, loc[0]))
	}

	if !degradationPattern.MatchString(doc) {
		add(finding.SeverityMedium, "No graceful degradation plan",
			"The design does not state what the system does when a dependency is unavailable.", "", 0)
	}

	return findings
}
