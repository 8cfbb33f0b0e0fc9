// Package series is the in-memory model of SDMX data: immutable, generically
// typed Observation values and the mutable TimeSeries accumulator filled by
// payload decoders.
//
// A decoder calls AddObservation once per parsed data point. Malformed
// points are kept (NaN value, "" time slot) and logged so that one bad
// point never aborts a series. Observation-level attributes may appear on
// any subset of points; TimeSeries keeps them aligned with the observations:
//
//	ts := series.NewTimeSeries("EXR")
//	ts.AddDimension("FREQ", "M")
//	ts.AddDimension("CURRENCY", "USD")
//	ts.AddObservation("1.5", "2020-01", map[string]string{"OBS_STATUS": "A"})
//	ts.AddObservation("", "2020-02", nil)
//
//	ts.Name()                          // "EXR.M.USD"
//	ts.Observations()                  // [1.5 NaN]
//	ts.ObsLevelAttributes("OBS_STATUS") // [A ""], true
//
// Observations are ordered by case-insensitive lexical comparison of their
// time slots. MapValue and Combine derive new observations of another type
// while keeping the time slot and attributes.
package series
