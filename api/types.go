package api

import (
	"retail-analytics/core/dataset"
	"retail-analytics/core/insights"
	"retail-analytics/core/model"
	"retail-analytics/core/report"
)

// AnalyzeRequest is the request body for POST /analyze
type AnalyzeRequest struct {
	// Customers is the customer collection to analyze
	Customers []model.Customer `json:"customers"`

	// Products is the product collection to analyze
	Products []model.Product `json:"products"`

	// Transactions is the transaction collection to analyze. Required.
	Transactions []model.Transaction `json:"transactions"`

	// TopN bounds the top-customer and top-product rankings.
	// Zero selects the default of 10.
	TopN int `json:"top_n,omitempty"`
}

// AnalyzeResponse is the response body for POST /analyze
type AnalyzeResponse struct {
	// Reports holds every aggregation report
	Reports *report.Bundle `json:"reports"`

	// Insights holds the narrative summaries derived from the reports
	Insights *insights.Insights `json:"insights"`

	// Issues lists records that were skipped or flagged during ingestion
	Issues []dataset.Issue `json:"issues,omitempty"`

	// Metadata describes the run
	Metadata *ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes an analyze run
type ResponseMetadata struct {
	// EngineVersion is the engine build version
	EngineVersion string `json:"engine_version"`

	// Customers is the number of customers ingested
	Customers int `json:"customers"`

	// Products is the number of products ingested
	Products int `json:"products"`

	// Transactions is the number of transactions ingested
	Transactions int `json:"transactions"`

	// DurationMs is the wall time spent serving the request
	DurationMs int64 `json:"duration_ms"`
}
