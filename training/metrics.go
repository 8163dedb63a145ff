package training

// MetricSet maps metric names to values for one model. Numeric metrics
// (r2, rmse, mae, cv_rmse, test_r2, test_rmse, test_mae) are float64;
// best_params is a nested map. The shape serializes directly into the
// metadata record.
type MetricSet map[string]interface{}

// Float returns the named metric as a float64, reporting absence or a
// non-numeric entry through ok.
func (m MetricSet) Float(name string) (float64, bool) {
	v, present := m[name]
	if !present {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}
