/*
Package storagemodels defines the data structures shared by texfigure's record stores.

FigureRecord:
The snapshot of a saved figure that is published to every configured store:

	rec := storagemodels.FigureRecord{
	    Document:  "thesis",
	    Key:       "velocity",
	    Number:    3,
	    FileNames: []string{"/work/Chapter1/Figs/Chapter1-Figure3-velocity.pdf"},
	    Caption:   "Velocity profile",
	    SavedAt:   strfmt.DateTime(time.Now()),
	}

FigureIndexMap is registered for FigureRecord at init so single-table stores can
expand "DOC#{Document}" and "FIG#{Key}" into partition and sort keys.

QueryParams:
Parameters for querying a DynamoDB table, used by the ddb store to page
through one document's figures.
*/
package storagemodels
