package models

// Analysis depth presets. Depth selects the wall-clock budget for one run.
const (
	DepthQuick    = "quick"
	DepthStandard = "standard"
	DepthDetailed = "detailed"
)

// AnalyzeRequest is the inbound request for one analysis run. Bound from
// query parameters on GET and from the JSON body on POST.
type AnalyzeRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required,max=12"`
	Depth  string `query:"depth" json:"depth" default:"standard" validate:"oneof=quick standard detailed"`
}
