// Package report runs every seasonal skill score over a forecast frame and
// renders the result.
//
//	cfg, err := report.LoadConfig("skill.yaml")
//	f, err := timeseries.LoadCSV(cfg.Input.Path, cfg.CSVOptions())
//	r, err := report.Build(f, cfg, logger)
//	err = report.Write(os.Stdout, r, "yaml")
//	err = report.Plot(r, "skill.png")
//
// Undefined scores (a month without observations, a constant month) are
// rendered as null. Metrics that fail outright are listed under "errors"
// while the rest of the report is still produced.
package report
