package domain

// AIPrediction is the predictor's verdict on one market. Produced once per
// market per cycle and not retained beyond the cycle that used it.
type AIPrediction struct {
	MarketID         string
	MarketName       string
	PredictedOutcome string
	Confidence       float64 // [0,1]
	Edge             float64 // fair price minus market price, signed
	Reasoning        string
	RecommendedSize  float64 // fraction of current balance
	FairPrice        float64 // [0,1]
}
