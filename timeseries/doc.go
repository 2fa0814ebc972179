// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for a single calendar-indexed
// series, the Forecast frame that pairs observations with a predicted
// distribution, and CSV loading for forecast frames.
//
// # Creating a Series
//
// Create a monthly series starting in January 1980:
//
//	start := time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)
//	series := timeseries.NewMonthly(start, values)
//
// Select one calendar month:
//
//	march := series.Month(time.March)
//	idx := timeseries.MonthIndices(series.Timestamps, time.March)
//
// # Loading a Forecast
//
// A forecast CSV carries a date column, the observation, the predicted
// mean and optionally the predicted spread and skew:
//
//	ds,y,yhat,yhat_std
//	1980-01-01,0.42,0.31,0.55
//
// Load it with the default column names:
//
//	f, err := timeseries.LoadCSV("forecast.csv", nil)
//
// Or customize them:
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.ObservedColumn = "nino34"
//	opts.SkewColumn = "alpha"
//	f, err := timeseries.LoadCSVFromReader(reader, opts)
//
// The predicted distribution can be packed into the parameter matrix the
// loss package consumes:
//
//	params, err := f.Params(true) // n×3: mean, spread, skew
package timeseries
