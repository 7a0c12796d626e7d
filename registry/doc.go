/*
Package registry manages the lookup tables behind texfigure.

Type Registry:
Maps Go types to handlers and resolves a value's handler through its ancestor
chain. Go has no inheritance, so the chain is explicit: the type itself, then
its exported embedded fields breadth-first. Interface entries are checked after
the concrete entry at each step, in registration order.

	saves := registry.NewTypeRegistry[SaveFunc]()
	registry.RegisterFor[*plot.Plot](saves, savePlot)
	registry.RegisterFor[image.Image](saves, saveImage)

	match, ok := saves.Resolve(reflect.TypeOf(obj))
	ancestor, err := match.Extract(reflect.ValueOf(obj))

Extension Registry:
Maps file extensions to values, used for the LaTeX include snippet of a figure file:

	includes := registry.NewExtensionRegistry[IncludeFunc]()
	includes.Register(includeGraphics, ".pdf", ".png")

Index Map Registry:
Associates record types with store key templates:

	registry.RegisterIndexMap[FigureRecord](map[string]string{
	    "PK": "DOC#{Document}",
	    "SK": "FIG#{Key}",
	})

All registries are safe for concurrent use.
*/
package registry
