package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/domain/types"
	"github.com/chek-project/chek-kma/pkg/service/matcher"
)

const noBenchmark = "-"

type renderer struct {
	w       io.Writer
	heading *color.Color
	matched *color.Color
	missing *color.Color
	alert   *color.Color
}

func newRenderer(w io.Writer, colored bool) *renderer {
	r := &renderer{
		w:       w,
		heading: color.New(color.Bold),
		matched: color.New(color.FgGreen),
		missing: color.New(color.Faint),
		alert:   color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{r.heading, r.matched, r.missing, r.alert} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *renderer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
}

func (r *renderer) Alert(msg string) {
	_, _ = r.alert.Fprintln(r.w, msg)
}

func (r *renderer) Projects(projects []model.Project) error {
	tw := r.table()
	_, _ = fmt.Fprintln(tw, "ID\tNAME")
	for _, p := range projects {
		_, _ = fmt.Fprintf(tw, "%d\t%s\n", p.ID, p.Name)
	}
	return tw.Flush()
}

// Maturity prints one table per category. Unmatched items show a dim "-" as benchmark.
func (r *renderer) Maturity(result *model.MaturityLoadResult) error {
	failed := make(map[types.MaturityCategory]bool)
	for _, c := range result.Failed() {
		failed[c] = true
	}

	for _, c := range types.AllMaturityCategories() {
		title := c.String()
		if failed[c] {
			title += " (failed to load)"
		}
		_, _ = r.heading.Fprintln(r.w, title)

		tw := r.table()
		_, _ = fmt.Fprintln(tw, "LABEL\tLEVEL\tBENCHMARK\tGAP")
		for _, item := range result.Data[c] {
			level := noBenchmark
			if item.Level != nil {
				level = strconv.Itoa(item.Level.Int())
			}
			bench := r.missing.Sprint(noBenchmark)
			if item.Benchmark != nil {
				bench = r.matched.Sprint(item.Benchmark.Int())
			}
			gap := noBenchmark
			if g, ok := item.Gap(); ok {
				gap = fmt.Sprintf("%+d", g)
			}
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.Label, level, bench, gap)
		}
		if err := tw.Flush(); err != nil {
			return goerr.Wrap(err, "failed to write maturity table")
		}
		_, _ = fmt.Fprintln(r.w)
	}

	tw := r.table()
	_, _ = fmt.Fprintln(tw, "CATEGORY\tANSWERED\tMATCHED\tMEAN LEVEL\tMEAN BENCHMARK")
	for _, s := range result.Data.Summaries() {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", s.Category, s.Answered, s.Matched, formatMean(s.MeanLevel), formatMean(s.MeanBenchmark))
	}
	return tw.Flush()
}

func formatMean(v *float64) string {
	if v == nil {
		return noBenchmark
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

type maturityJSON struct {
	ProjectID types.ProjectID         `json:"project_id"`
	Data      model.MaturityData      `json:"data"`
	Summaries []model.CategorySummary `json:"summaries"`
	Failed    []string                `json:"failed"`
}

func (r *renderer) MaturityJSON(result *model.MaturityLoadResult) error {
	failed := make([]string, 0, len(result.Failures))
	for _, c := range result.Failed() {
		failed = append(failed, c.String())
	}
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(maturityJSON{
		ProjectID: result.ProjectID,
		Data:      result.Data,
		Summaries: result.Data.Summaries(),
		Failed:    failed,
	}); err != nil {
		return goerr.Wrap(err, "failed to encode maturity data")
	}
	return nil
}

func (r *renderer) Benchmarks(set *model.BenchmarkSet, categories []types.MaturityCategory, withJustification bool) error {
	tw := r.table()
	header := "CATEGORY\tLEVEL\tLABEL"
	if withJustification {
		header += "\tJUSTIFICATION"
	}
	_, _ = fmt.Fprintln(tw, header)
	for _, c := range categories {
		for _, e := range set.Entries(c) {
			line := fmt.Sprintf("%s\t%d\t%s", c, e.Level.Int(), e.Label)
			if withJustification {
				line += "\t" + e.Justification
			}
			_, _ = fmt.Fprintln(tw, line)
		}
	}
	return tw.Flush()
}

func (r *renderer) Match(category types.MaturityCategory, query string, entries []model.BenchmarkEntry, res matcher.Result) {
	_, _ = fmt.Fprintf(r.w, "query:    %s\n", query)
	_, _ = fmt.Fprintf(r.w, "category: %s\n", category)
	_, _ = fmt.Fprintf(r.w, "score:    %.3f\n", res.Score)
	if !res.Matched() {
		_, _ = fmt.Fprintf(r.w, "match:    %s\n", r.missing.Sprint("no match"))
		return
	}
	entry := entries[res.Index]
	_, _ = fmt.Fprintf(r.w, "match:    %s\n", r.matched.Sprint(entry.Label))
	_, _ = fmt.Fprintf(r.w, "level:    %d\n", entry.Level.Int())
}

func (r *renderer) Questions(questions []model.Question, withOptions bool) error {
	tw := r.table()
	_, _ = fmt.Fprintln(tw, "#\tCATEGORY\tGROUP\tLABEL")
	for _, q := range questions {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", q.Count, q.MaturityArea(), q.Category, q.Label)
		if withOptions {
			for level, opt := range q.Options {
				_, _ = fmt.Fprintf(tw, "\t\t%d\t%s\n", level, strings.TrimSpace(opt))
			}
		}
	}
	return tw.Flush()
}
