package requirements

import (
	"regexp"
	"strings"

	"github.com/gaveldev/gavel/internal/finding"
)

// pbrCheck is one Perspective-Based Reading rule: when the trigger fires
// anywhere in the document (nil trigger fires always), the evidence must
// also be present.
type pbrCheck struct {
	Perspective    finding.Perspective
	Title          string
	Trigger        *regexp.Regexp
	Evidence       *regexp.Regexp
	Severity       finding.Severity
	Kind           finding.Kind
	Description    string
	Recommendation string
}

// The perspective checklists. Kept in one table so each rule can be pinned
// by a named test case.
var pbrChecks = []pbrCheck{
	{
		Perspective:    finding.PerspectiveUser,
		Title:          "No user scenarios",
		Trigger:        regexp.MustCompile(`(?i)\b(users?|actors?)\b|ユーザー|アクター`),
		Evidence:       regexp.MustCompile(`(?i)(user (scenario|story)|scenario|use case|ユーザーシナリオ|ユースケース|シナリオ)`),
		Severity:       finding.SeverityHigh,
		Kind:           finding.KindMissing,
		Description:    "The document mentions users or actors but describes no user scenarios.",
		Recommendation: "Add at least one user scenario or use case for each actor.",
	},
	{
		Perspective:    finding.PerspectiveUser,
		Title:          "No error message requirements",
		Trigger:        regexp.MustCompile(`(?i)\b(users?|screen|page|interface)\b|ユーザー|画面`),
		Evidence:       regexp.MustCompile(`(?i)error message|エラーメッセージ`),
		Severity:       finding.SeverityMedium,
		Kind:           finding.KindMissing,
		Description:    "User-facing behaviour is described without error-message requirements.",
		Recommendation: "Specify the error messages users see when operations fail.",
	},
	{
		Perspective:    finding.PerspectiveDeveloper,
		Title:          "No data type specification",
		Trigger:        regexp.MustCompile(`(?i)\b(data|records?|fields?)\b|データ|項目`),
		Evidence:       regexp.MustCompile(`(?i)\b(string|integer|int|number|boolean|float|decimal|date(time)?)\b|文字列|整数|数値|真偽値|日付`),
		Severity:       finding.SeverityHigh,
		Kind:           finding.KindMissing,
		Description:    "Data is mentioned without any data-type specification.",
		Recommendation: "Specify the type, length, and format of each data element.",
	},
	{
		Perspective:    finding.PerspectiveDeveloper,
		Title:          "No API contract",
		Trigger:        regexp.MustCompile(`(?i)\bAPI\b|エーピーアイ`),
		Evidence:       regexp.MustCompile(`(?i)\b(endpoint|request|response)\b|エンドポイント|リクエスト|レスポンス`),
		Severity:       finding.SeverityHigh,
		Kind:           finding.KindMissing,
		Description:    "An API is mentioned without endpoint, request, or response forms.",
		Recommendation: "Document each endpoint with its request and response shapes.",
	},
	{
		Perspective:    finding.PerspectiveTester,
		Title:          "Range without explicit bounds",
		Trigger:        regexp.MustCompile(`(?i)\b(range|between)\b|範囲`),
		Evidence:       regexp.MustCompile(`(?i)\b(min(imum)?|max(imum)?)\b|最小|最大`),
		Severity:       finding.SeverityHigh,
		Kind:           finding.KindAmbiguous,
		Description:    "A range is mentioned without explicit minimum and maximum values.",
		Recommendation: "State the inclusive minimum and maximum for every range.",
	},
	{
		Perspective:    finding.PerspectiveTester,
		Title:          "No acceptance criteria",
		Trigger:        nil,
		Evidence:       regexp.MustCompile(`(?i)acceptance criteria|受け入れ基準`),
		Severity:       finding.SeverityHigh,
		Kind:           finding.KindMissing,
		Description:    "The document has no acceptance-criteria section.",
		Recommendation: "Add an acceptance-criteria section listing verifiable conditions.",
	},
	{
		Perspective:    finding.PerspectiveArchitect,
		Title:          "No scalability goals",
		Trigger:        nil,
		Evidence:       regexp.MustCompile(`(?i)scalab|スケーラビリティ|拡張性`),
		Severity:       finding.SeverityHigh,
		Kind:           finding.KindMissing,
		Description:    "The document states no scalability goals.",
		Recommendation: "State expected load growth and the scaling strategy.",
	},
	{
		Perspective:    finding.PerspectiveArchitect,
		Title:          "No availability goals",
		Trigger:        nil,
		Evidence:       regexp.MustCompile(`(?i)availab|可用性|稼働率`),
		Severity:       finding.SeverityHigh,
		Kind:           finding.KindMissing,
		Description:    "The document states no availability goals.",
		Recommendation: "State an availability target (for example 99.9% monthly).",
	},
	{
		Perspective:    finding.PerspectiveSecurity,
		Title:          "No password or MFA policy",
		Trigger:        regexp.MustCompile(`(?i)\b(login|log-in|sign-in|auth(entication)?)\b|ログイン|認証`),
		Evidence:       regexp.MustCompile(`(?i)(password polic|mfa|multi-factor|two-factor|2fa)|パスワードポリシー|多要素認証`),
		Severity:       finding.SeverityHigh,
		Kind:           finding.KindMissing,
		Description:    "Authentication is mentioned without a password or MFA policy.",
		Recommendation: "Specify password complexity rules and whether MFA is required.",
	},
	{
		Perspective:    finding.PerspectiveSecurity,
		Title:          "No encryption policy for sensitive data",
		Trigger:        regexp.MustCompile(`(?i)\b(sensitive|personal data|pii|credit card)\b|個人情報|機密`),
		Evidence:       regexp.MustCompile(`(?i)encrypt|暗号化`),
		Severity:       finding.SeverityHigh,
		Kind:           finding.KindMissing,
		Description:    "Sensitive data is mentioned without an encryption policy.",
		Recommendation: "Specify encryption at rest and in transit for sensitive data.",
	},
	{
		Perspective:    finding.PerspectiveSecurity,
		Title:          "No audit logging requirements",
		Trigger:        nil,
		Evidence:       regexp.MustCompile(`(?i)audit (log|trail)|監査ログ`),
		Severity:       finding.SeverityMedium,
		Kind:           finding.KindMissing,
		Description:    "The document has no audit-logging requirements.",
		Recommendation: "Require audit logs for security-relevant operations.",
	},
}

// pbrReview applies the checklists for the selected perspectives over the
// whole document.
func pbrReview(path, doc string, perspectives []finding.Perspective, ids *finding.IDGen) []finding.Finding {
	selected := make(map[finding.Perspective]bool, len(perspectives))
	for _, p := range perspectives {
		selected[p] = true
	}

	var findings []finding.Finding
	for _, check := range pbrChecks {
		if !selected[check.Perspective] {
			continue
		}
		line := 1
		evidence := ""
		if check.Trigger != nil {
			loc := check.Trigger.FindStringIndex(doc)
			if loc == nil {
				continue
			}
			line = lineOf(doc, loc[0])
			evidence = doc[loc[0]:loc[1]]
		}
		if check.Evidence.MatchString(doc) {
			continue
		}
		findings = append(findings, finding.Finding{
			ID:             ids.Next(),
			Severity:       check.Severity,
			Kind:           check.Kind,
			Category:       "pbr-" + string(check.Perspective),
			Title:          check.Title,
			Description:    check.Description,
			Evidence:       evidence,
			Recommendation: check.Recommendation,
			Location:       finding.Location{Path: path, Line: line},
			Perspective:    check.Perspective,
			Status:         finding.StatusOpen,
		})
	}
	return findings
}

func lineOf(doc string, offset int) int {
	return strings.Count(doc[:offset], "\n") + 1
}
