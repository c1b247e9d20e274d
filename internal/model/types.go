package model

// Feature kinds understood by the metadata encoder.
const (
	KindNumeric     = "numeric"
	KindCategorical = "categorical"
)

// Output kinds of the ONNX graph.
const (
	OutputScores = "scores"
	OutputLabel  = "label"
)

type Feature struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Categories []string `json:"categories,omitempty"`
}

type Metadata struct {
	InputName   string    `json:"input_name"`
	OutputName  string    `json:"output_name"`
	OutputKind  string    `json:"output_kind"`
	OutputShape []int64   `json:"output_shape"`
	Features    []Feature `json:"features"`
}

// Record is one prediction request. Pointer fields let validation tell a
// missing field apart from a zero value.
type Record struct {
	Age       *int64   `json:"age" validate:"required"`
	Job       *string  `json:"job" validate:"required"`
	Marital   *string  `json:"marital" validate:"required"`
	Education *string  `json:"education" validate:"required"`
	Default   *string  `json:"default" validate:"required"`
	Balance   *float64 `json:"balance" validate:"required"`
	Housing   *string  `json:"housing" validate:"required"`
	Loan      *string  `json:"loan" validate:"required"`
	Contact   *string  `json:"contact" validate:"required"`
	Day       *int64   `json:"day" validate:"required"`
	Month     *string  `json:"month" validate:"required"`
	Duration  *float64 `json:"duration" validate:"required"`
	Campaign  *int64   `json:"campaign" validate:"required"`
	Pdays     *int64   `json:"pdays" validate:"required"`
	Previous  *int64   `json:"previous" validate:"required"`
	Poutcome  *string  `json:"poutcome" validate:"required"`
}

// Cell is one named column value of a Row. Value holds an int64, float64
// or string.
type Cell struct {
	Name  string
	Value any
}

// Row is a single tabular row in the column order the model expects.
type Row []Cell

type PredictionResponse struct {
	Prediction string `json:"prediction"`
}
