// Package validate checks generated dashboards and rule files for PromQL
// syntax errors and references to metrics the service does not export.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/laptop-advisor/tools/dashgen/rules"
)

// histogramSuffixes are the series suffixes Prometheus derives from a
// histogram or summary name.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects validation findings. Errors fail generation; warnings are
// reported but do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation produced no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge appends other's findings to r.
func (r *Result) Merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// MetricNames parses expr and returns the sorted, de-duplicated metric names
// it selects.
func MetricNames(expr string) ([]string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", expr, err)
	}

	seen := make(map[string]bool)
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		if vs, ok := n.(*parser.VectorSelector); ok && vs.Name != "" {
			seen[vs.Name] = true
		}
		return nil
	})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Known reports whether name is in known, either directly or as a derived
// histogram series.
func Known(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// Expr validates a single expression. context prefixes every finding.
func Expr(context, expr string, known map[string]bool) Result {
	var r Result
	if strings.TrimSpace(expr) == "" {
		r.errorf("%s: empty expression", context)
		return r
	}

	names, err := MetricNames(expr)
	if err != nil {
		r.errorf("%s: %v", context, err)
		return r
	}
	for _, name := range names {
		if !Known(name, known) {
			r.errorf("%s: unknown metric %q", context, name)
		}
	}
	return r
}

type panelJSON struct {
	Title   string      `json:"title"`
	Type    string      `json:"type"`
	Targets []targetRef `json:"targets"`
	Panels  []panelJSON `json:"panels"`
}

type targetRef struct {
	Expr  string `json:"expr"`
	RefID string `json:"refId"`
}

// Dashboard validates every panel query in dash, including panels nested in
// rows.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var r Result

	raw, err := json.Marshal(dash)
	if err != nil {
		r.errorf("marshaling dashboard: %v", err)
		return r
	}

	var doc struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.errorf("decoding dashboard: %v", err)
		return r
	}

	titles := make(map[string]bool)
	var walk func(panels []panelJSON)
	walk = func(panels []panelJSON) {
		for _, p := range panels {
			if p.Type == "row" {
				walk(p.Panels)
				continue
			}
			if titles[p.Title] {
				r.warnf("duplicate panel title %q", p.Title)
			}
			titles[p.Title] = true

			if len(p.Targets) == 0 {
				r.warnf("panel %q has no queries", p.Title)
			}
			for _, t := range p.Targets {
				r.Merge(Expr(fmt.Sprintf("panel %q query %s", p.Title, t.RefID), t.Expr, known))
			}
		}
	}
	walk(doc.Panels)

	return r
}

// Rules validates every expression in a PrometheusRule resource. Recording
// rules must be named level:metric:operations; alerts need a severity.
func Rules(pr rules.PrometheusRule, known map[string]bool) Result {
	var r Result
	for _, g := range pr.Spec.Groups {
		for _, rule := range g.Rules {
			switch {
			case rule.Record != "":
				if strings.Count(rule.Record, ":") != 2 {
					r.warnf("group %s: recording rule %q does not follow level:metric:operations", g.Name, rule.Record)
				}
				r.Merge(Expr(fmt.Sprintf("record %s", rule.Record), rule.Expr, known))
			case rule.Alert != "":
				if rule.Labels["severity"] == "" {
					r.errorf("alert %s: missing severity label", rule.Alert)
				}
				r.Merge(Expr(fmt.Sprintf("alert %s", rule.Alert), rule.Expr, known))
			default:
				r.errorf("group %s: rule has neither record nor alert", g.Name)
			}
		}
	}
	return r
}
