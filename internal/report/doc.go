// Package report renders validation and review results.
//
// Validation reports go through the Writer interface with one
// implementation per format (text, json, ci, junit); review results have
// their own markdown/json renderers because their shape differs. All
// writers are stateless and safe to reuse.
package report
