package recurring

import (
	"cloud.google.com/go/civil"

	"github.com/jask/tally/internal/ledger"
)

// TemplateResult records what happened to one template during Process.
type TemplateResult struct {
	TemplateID   string
	Outcome      Outcome
	Materialized int
	Err          error
}

// Result is the output of one processing cycle.
type Result struct {
	Templates    []ledger.RecurringTemplate
	Materialized []ledger.Transaction
	PerTemplate  []TemplateResult
}

// Process folds over templates: each template is advanced at most
// maxPerTemplate times (values below 1 mean 1), stopping at the first
// occurrence that is not due. Input templates are not modified. A template
// with an invalid frequency is returned unchanged with its error recorded.
func (p Projector) Process(templates []ledger.RecurringTemplate, today civil.Date, maxPerTemplate int) Result {
	if maxPerTemplate < 1 {
		maxPerTemplate = 1
	}
	res := Result{
		Templates:   make([]ledger.RecurringTemplate, 0, len(templates)),
		PerTemplate: make([]TemplateResult, 0, len(templates)),
	}
	for _, t := range templates {
		tr := TemplateResult{TemplateID: t.ID}
		for i := 0; i < maxPerTemplate; i++ {
			step, err := p.Advance(t, today)
			if err != nil {
				tr.Err = err
				break
			}
			tr.Outcome = step.Outcome
			if step.Outcome != Materialized {
				break
			}
			t = step.Template
			res.Materialized = append(res.Materialized, *step.Transaction)
			tr.Materialized++
		}
		res.Templates = append(res.Templates, t)
		res.PerTemplate = append(res.PerTemplate, tr)
	}
	return res
}
