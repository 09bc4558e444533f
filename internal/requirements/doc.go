// Package requirements reviews Markdown requirements documents.
//
// Two review methods are available and composable. The Fagan pass checks
// document completeness and requirement form: required sections, ambiguous
// wording (English and Japanese), EARS template compliance, testability,
// and duplicate ids. The Perspective-Based Reading pass applies role
// checklists (user, developer, tester, architect, security), each a
// context-trigger → required-evidence rule. Combined mode runs both and
// deduplicates on (requirement id, kind, title); the same concern worded
// differently by two perspectives is deliberately kept twice.
package requirements
