package report

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/gaveldev/gavel/internal/finding"
)

// JUnitWriter renders the report as JUnit XML: one testsuite per checked
// file holding a single "constitutional-check" testcase, with one failure
// element per violation. CI dashboards that only speak JUnit can surface
// constitutional violations this way.
type JUnitWriter struct{}

type junitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Suites   []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string         `xml:"name,attr"`
	ClassName string         `xml:"classname,attr"`
	Failures  []junitFailure `xml:"failure"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

func (j *JUnitWriter) Write(w io.Writer, report *Report) error {
	suites := junitTestSuites{Name: report.Tool}

	for _, result := range report.Check.Results {
		tc := junitTestCase{Name: "constitutional-check", ClassName: result.Path}

		if result.Failed {
			tc.Failures = append(tc.Failures, junitFailure{
				Message: "file could not be loaded",
				Type:    "load-error",
			})
		}
		for _, f := range result.Findings {
			tc.Failures = append(tc.Failures, junitFailure{
				Message: fmt.Sprintf("%s: %s", f.Article, f.Title),
				Type:    string(f.Severity),
				Body:    failureBody(f),
			})
		}

		suite := junitTestSuite{
			Name:     result.Path,
			Tests:    1,
			Failures: len(tc.Failures),
			Cases:    []junitTestCase{tc},
		}
		suites.Suites = append(suites.Suites, suite)
		suites.Tests += suite.Tests
		suites.Failures += suite.Failures
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing XML header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(suites); err != nil {
		return fmt.Errorf("encoding JUnit XML: %w", err)
	}
	_, err := fmt.Fprintln(w)
	return err
}

func failureBody(f finding.Finding) string {
	body := f.Description
	if f.Evidence != "" {
		body += "\nEvidence: " + f.Evidence
	}
	if f.Recommendation != "" {
		body += "\nRecommendation: " + f.Recommendation
	}
	return body
}
