/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"

	"github.com/suparena/texfigure/registry"
	"github.com/suparena/texfigure/storagemodels"
)

// Query performs a single page query against the table. Items whose
// EntityType attribute differs from T are skipped. The returned key is the
// LastEvaluatedKey of the page, nil when there are no more pages.
func (d *DynamodbDataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]T, map[string]types.AttributeValue, error) {
	tableName := params.TableName
	if tableName == "" {
		tableName = d.tableName
	}
	input := &sdk.QueryInput{
		TableName:                 &tableName,
		KeyConditionExpression:    &params.KeyConditionExpression,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		FilterExpression:          params.FilterExpression,
		IndexName:                 params.IndexName,
		Limit:                     params.Limit,
		ScanIndexForward:          params.ScanIndexForward,
		ExclusiveStartKey:         params.ExclusiveStartKey,
	}
	out, err := d.client.Query(ctx, input)
	if err != nil {
		return nil, nil, fmt.Errorf("query error: %w", err)
	}

	want := entityTypeName[T]()
	results := make([]T, 0, len(out.Items))
	for _, item := range out.Items {
		var entityType string
		if attr, ok := item[EntityTypeAttribute]; ok {
			if err := attributevalue.Unmarshal(attr, &entityType); err != nil {
				return nil, nil, fmt.Errorf("failed to unmarshal EntityType: %w", err)
			}
		}
		if entityType != want {
			log.Debug().Str("entityType", entityType).Str("want", want).Msg("skipping foreign item")
			continue
		}

		var v T
		if err := attributevalue.UnmarshalMap(item, &v); err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal item for EntityType %q: %w", entityType, err)
		}
		results = append(results, v)
	}

	return results, out.LastEvaluatedKey, nil
}

// List returns every T stored under the store's partition, following
// LastEvaluatedKey until the result set is exhausted.
func (d *DynamodbDataStore[T]) List(ctx context.Context) ([]T, error) {
	indexMap, err := registry.RequireIndexMap[T]()
	if err != nil {
		return nil, err
	}
	expanded, err := expandStringKey(indexMap, d.partition)
	if err != nil {
		return nil, err
	}
	pk := expanded["PK"]
	if pk == "" {
		return nil, fmt.Errorf("partition %q expands to an empty PK", d.partition)
	}

	params := &storagemodels.QueryParams{
		TableName:              d.tableName,
		KeyConditionExpression: "PK = :pk",
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pk},
		},
		ScanIndexForward: aws.Bool(true),
	}

	var all []T
	for {
		page, next, err := d.Query(ctx, params)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(next) == 0 {
			break
		}
		params.ExclusiveStartKey = next
	}
	return all, nil
}
