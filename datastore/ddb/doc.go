/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The DynamodbDataStore supports:
  - Single-table design with macro-based key expansion (e.g., "DOC#{Document}")
  - Paginated listing of one partition
  - Automatic EntityType injection so foreign items in a shared partition are skipped

Macro Expansion:
Keys use macros that are replaced with entity field values:

	indexMap := map[string]string{
	    "PK": "DOC#{Document}",   // Becomes "DOC#thesis"
	    "SK": "FIG#{Key}",        // Becomes "FIG#velocity"
	}

String keys passed to GetOne and Delete are split on "/" and assigned to the
macros in PK-then-SK order, so "thesis/velocity" addresses the item above.
*/
package ddb
