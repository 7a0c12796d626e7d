/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/texfigure/registry"
)

// FigureEntityType is the EntityType attribute stored alongside figure records.
const FigureEntityType = "FigureRecord"

// FigureIndexMap addresses figure records in a single-table store: one
// partition per document, one item per figure key.
var FigureIndexMap = map[string]string{
	"PK": "DOC#{Document}",
	"SK": "FIG#{Key}",
}

func init() {
	registry.RegisterIndexMap[FigureRecord](FigureIndexMap)
}

// FigureRecord is the serialisable snapshot of a saved figure, published to
// record stores after every save.
type FigureRecord struct {
	// Document identifies the document (or chapter) the figure belongs to.
	Document string `json:"document" yaml:"document" dynamodbav:"Document"`

	// Key is the figure's registry key within the document.
	Key string `json:"key" yaml:"key" dynamodbav:"Key"`

	// Number is the figure counter value at registration.
	Number int `json:"number" yaml:"number" dynamodbav:"Number"`

	// FileNames holds the saved files, the first one is included in LaTeX.
	FileNames []string `json:"fileNames" yaml:"fileNames" dynamodbav:"FileNames"`

	Caption   string `json:"caption,omitempty" yaml:"caption,omitempty" dynamodbav:"Caption,omitempty"`
	Label     string `json:"label,omitempty" yaml:"label,omitempty" dynamodbav:"Label,omitempty"`
	Placement string `json:"placement,omitempty" yaml:"placement,omitempty" dynamodbav:"Placement,omitempty"`

	// Width and SubfigWidth are the LaTeX include widths, e.g. `0.5\textwidth`.
	Width       string `json:"width,omitempty" yaml:"width,omitempty" dynamodbav:"Width,omitempty"`
	SubfigWidth string `json:"subfigWidth,omitempty" yaml:"subfigWidth,omitempty" dynamodbav:"SubfigWidth,omitempty"`

	// Timestamp when the figure was saved.
	// Format: date-time
	SavedAt strfmt.DateTime `json:"savedAt" yaml:"savedAt" dynamodbav:"SavedAt"`
}

// ID returns the store key of the record, "<document>/<key>".
func (r FigureRecord) ID() string {
	return r.Document + "/" + r.Key
}

// QueryParams defines parameters for a DynamoDB Query operation.
type QueryParams struct {
	// TableName is the DynamoDB table name.
	TableName string
	// KeyConditionExpression is the primary condition for the query.
	KeyConditionExpression string
	// FilterExpression is an optional filter expression.
	FilterExpression *string
	// ExpressionAttributeValues contains the values for expression placeholders.
	ExpressionAttributeValues map[string]types.AttributeValue
	// IndexName is optional if you wish to query a secondary index.
	IndexName *string
	// Limit defines an optional limit per query page.
	Limit *int32
	// ExclusiveStartKey for pagination
	ExclusiveStartKey map[string]types.AttributeValue
	// ScanIndexForward specifies the order for index traversal.
	ScanIndexForward *bool
}
