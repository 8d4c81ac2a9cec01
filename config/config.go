package config

// Config holds the processing configuration
type Config struct {
	InputPath      string
	OutputPath     string
	RulesFile      string
	LogFile        string
	DestinationURL string
	Debug          bool
	Verbose        bool
	WorkerCount    int
	GenerateSample bool
	SampleRows     int
	Seed           uint64
	Rules          []Rule
}

// DefaultRules returns the built-in transformation pipeline used when
// no rules file is supplied: two derived columns, a filter on value1
// and a High/Medium categorization.
func DefaultRules() []Rule {
	return []Rule{
		{Op: OpDerive, Name: "value1_plus_10", Column: "value1", Operator: "add", Operand: 10},
		{Op: OpDerive, Name: "value2_div_value1", Column: "value2", Operator: "div", Other: "value1"},
		{Op: OpFilter, Column: "value1", Operator: "gt", Operand: 20},
		{Op: OpCategorize, Name: "value1_type", Column: "value1", Threshold: 35, Above: "High", Below: "Medium"},
	}
}
