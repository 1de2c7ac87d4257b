package services

// FeatureSchema names the columns the price model was trained on. The suburb
// column is one-hot encoded as "<Suburb>_<value>".
type FeatureSchema struct {
	Suburb    string
	Rooms     string
	Bathrooms string
	Garage    string
	YearBuilt string
}

// TrainedFeatureSchema matches the column names of the published model.
var TrainedFeatureSchema = FeatureSchema{
	Suburb:    "Subúrbio",
	Rooms:     "Quartos",
	Bathrooms: "Banheiros",
	Garage:    "Garagem",
	YearBuilt: "Ano de Construção",
}

// FeatureInput is one fully imputed property description.
type FeatureInput struct {
	Suburb    string
	Rooms     int
	Bathrooms int
	Garage    int
	YearBuilt int
}

// FeatureRow is a single encoded row: numeric columns first, then the suburb
// indicator.
type FeatureRow struct {
	names  []string
	values map[string]float64
}

// Encode builds the feature row for in.
func (s FeatureSchema) Encode(in FeatureInput) *FeatureRow {
	row := &FeatureRow{values: make(map[string]float64, 5)}
	row.set(s.Rooms, float64(in.Rooms))
	row.set(s.Bathrooms, float64(in.Bathrooms))
	row.set(s.Garage, float64(in.Garage))
	row.set(s.YearBuilt, float64(in.YearBuilt))
	row.set(s.Suburb+"_"+in.Suburb, 1)
	return row
}

func (r *FeatureRow) set(name string, v float64) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = v
}

// Names returns the encoded column names in encoding order.
func (r *FeatureRow) Names() []string {
	return append([]string(nil), r.names...)
}

// Value returns the encoded value of a column and whether it was encoded.
func (r *FeatureRow) Value(name string) (float64, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Align reconciles the row with the model's expected feature list: each
// expected name resolves to its encoded value or zero, and encoded columns
// the model does not know are dropped. An empty list keeps the row as encoded.
func (r *FeatureRow) Align(expected []string) []float64 {
	if len(expected) == 0 {
		expected = r.names
	}
	out := make([]float64, len(expected))
	for i, name := range expected {
		out[i] = r.values[name]
	}
	return out
}
