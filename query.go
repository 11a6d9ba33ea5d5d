package locate

// QueryOutcome is the result of a query. In count mode Paths is nil.
type QueryOutcome struct {
	// Expression is the effective regular expression, for display.
	Expression string   `json:"expression"`
	Mode       Mode     `json:"mode"`
	Count      int      `json:"count"`
	Paths      []string `json:"paths,omitempty"`
}
