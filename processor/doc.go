/*
Package processor implements the texfigure command line tool.

The tool works on the figure manifest that a Manager configured with
NewManager maintains next to the document, and prints LaTeX for the
figures recorded in it:

	texfigure [-config texfigure.yaml] [-base dir] <command> [args]

Commands:

	init                               create the Manager directories
	list                               list recorded figures in registration order
	show <key>                         print the figure environment for key
	multi -rows r -cols c -ref name key...
	                                   print a figure* environment built from keys
	deps                               print the recorded dependency list
	sync                               copy manifest records to the DynamoDB table

Settings come from the config package: defaults, then the YAML file, then
.env, then TEXFIGURE_* environment variables.
*/
package processor
