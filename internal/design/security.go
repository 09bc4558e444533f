package design

import (
	"regexp"

	"github.com/gaveldev/gavel/internal/finding"
)

// securityCheck fires when Trigger matches and Control does not.
// A nil Trigger is always on.
type securityCheck struct {
	Trigger        *regexp.Regexp
	Control        *regexp.Regexp
	Severity       finding.Severity
	Title          string
	Description    string
	Recommendation string
}

var securityChecks = []securityCheck{
	{
		Trigger:        regexp.MustCompile(`(?i)(user[- ]facing|end[- ]users?|login|sign[- ]?in)|ユーザー|ログイン`),
		Control:        regexp.MustCompile(`(?i)(authenticat|OAuth|OIDC|SAML|SSO|認証)`),
		Severity:       finding.SeverityCritical,
		Title:          "User-facing system without authentication",
		Description:    "The design describes user-facing behaviour but no authentication mechanism.",
		Recommendation: "State how users are authenticated before any protected operation.",
	},
	{
		Trigger:        regexp.MustCompile(`(?i)(roles?|permissions?|admin\s+users?|privileged)|権限|ロール`),
		Control:        regexp.MustCompile(`(?i)(authoriz|access\s+control|RBAC|ABAC|認可)`),
		Severity:       finding.SeverityHigh,
		Title:          "Roles without an authorization model",
		Description:    "Roles or permissions appear in the design without an authorization model.",
		Recommendation: "Describe how role checks are enforced (RBAC, policy engine, middleware).",
	},
	{
		Trigger:        regexp.MustCompile(`(?i)(sensitive\s+(data|information)|personal\s+(data|information)|PII|credit\s+card|passwords?\s+stored)|個人情報|機密`),
		Control:        regexp.MustCompile(`(?i)(encrypt|hashing|hashed|at\s+rest\s+protection|暗号化)`),
		Severity:       finding.SeverityCritical,
		Title:          "Sensitive data without encryption",
		Description:    "Sensitive data is handled but no encryption or hashing is specified.",
		Recommendation: "Specify encryption at rest and in transit for every sensitive field.",
	},
	{
		Trigger:        regexp.MustCompile(`(?i)(user\s+input|form\s+(data|submission)|uploaded?\s+files?|query\s+parameters?)|入力値`),
		Control:        regexp.MustCompile(`(?i)(validat|sanitiz|escap(e|ing)|allow[- ]?list|バリデーション|検証)`),
		Severity:       finding.SeverityHigh,
		Title:          "User input without validation",
		Description:    "User input flows through the design without a stated validation step.",
		Recommendation: "Validate and sanitize every input at the boundary where it enters the system.",
	},
	{
		Control:        regexp.MustCompile(`(?i)(audit\s+log|audit\s+trail|監査ログ)`),
		Severity:       finding.SeverityMedium,
		Title:          "No audit logging",
		Description:    "The design has no audit trail for security-relevant actions.",
		Recommendation: "Log who did what and when for every privileged or data-changing operation.",
	},
}

func reviewSecurity(path, doc string, ids *finding.IDGen) []finding.Finding {
	var findings []finding.Finding
	for _, check := range securityChecks {
		var evidence string
		var line int
		if check.Trigger != nil {
			loc := check.Trigger.FindStringIndex(doc)
			if loc == nil {
				continue
			}
			evidence = doc[loc[0]:loc[1]]
			line = lineOf(doc, loc[0])
		}
		if check.Control.MatchString(doc) {
			continue
		}
		findings = append(findings, finding.Finding{
			ID:             ids.Next(),
			Severity:       check.Severity,
			Kind:           finding.KindMissing,
			Category:       "security",
			Title:          check.Title,
			Description:    check.Description,
			Evidence:       evidence,
			Recommendation: check.Recommendation,
			Location:       finding.Location{Path: path, Line: line},
			Status:         finding.StatusOpen,
		})
	}
	return findings
}
