package model

import "time"

// SymptomRecord is a reportable complaint in the reference catalog.
type SymptomRecord struct {
	Name        string   `json:"name" yaml:"name"`
	Category    string   `json:"category" yaml:"category"`
	Tags        []string `json:"tags" yaml:"tags"`
	Specialists []string `json:"specialists" yaml:"specialists"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Description string   `json:"description" yaml:"description"`
	Precautions []string `json:"precautions" yaml:"precautions"`
	Tests       []string `json:"tests" yaml:"tests"`
}

// ConditionPattern is a named cluster of symptoms. Its symptom names are matched
// against the caller's selection only and need not exist in the symptom catalog.
type ConditionPattern struct {
	Symptoms    []string `json:"symptoms" yaml:"symptoms"`
	Name        string   `json:"name" yaml:"name"`
	Urgency     Severity `json:"urgency" yaml:"urgency"`
	Description string   `json:"description" yaml:"description"`
	Outcomes    []string `json:"outcomes" yaml:"outcomes"`
}

// LabReferenceEntry describes a biomarker tracked for below-minimum detection.
type LabReferenceEntry struct {
	Name        string   `json:"name" yaml:"name"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
	Min         float64  `json:"min" yaml:"min"`
	Unit        string   `json:"unit" yaml:"unit"`
	Indication  string   `json:"indication" yaml:"indication"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
	Specialist  string   `json:"specialist" yaml:"specialist"`
}

// AnalysisResult is the outcome of the symptoms pipeline.
type AnalysisResult struct {
	Symptoms    []string          `json:"symptoms" yaml:"symptoms"`
	Specialists []string          `json:"specialists" yaml:"specialists"`
	Condition   *ConditionPattern `json:"condition,omitempty" yaml:"condition,omitempty"`
	Urgency     Severity          `json:"urgency" yaml:"urgency"`
	Precautions []string          `json:"precautions" yaml:"precautions"`
	Tests       []string          `json:"tests" yaml:"tests"`
	Timestamp   time.Time         `json:"timestamp" yaml:"timestamp"`
}

// LabFinding reports one biomarker whose detected value is below its minimum.
type LabFinding struct {
	Test        string   `json:"test" yaml:"test"`
	Value       float64  `json:"value" yaml:"value"`
	Min         float64  `json:"min" yaml:"min"`
	Unit        string   `json:"unit" yaml:"unit"`
	Indication  string   `json:"indication" yaml:"indication"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
	Specialist  string   `json:"specialist" yaml:"specialist"`
}

// LabAnalysisResult is the outcome of the lab pipeline.
type LabAnalysisResult struct {
	Findings  []LabFinding `json:"findings" yaml:"findings"`
	RawLength int          `json:"raw_length" yaml:"raw_length"`
	Timestamp time.Time    `json:"timestamp" yaml:"timestamp"`
}
