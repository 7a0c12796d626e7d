/*
Package texfigure connects plotting libraries to LaTeX documents.

A Manager owns the figure, data and code directories of one document or
chapter. It saves plot objects under predictable file names, keeps an
ordered registry of the resulting figures and renders them as LaTeX figure
environments.

Key Features:
  - Type-dispatched saving with ancestor lookup through embedded fields and interfaces
  - Built-in savers for gonum plots, tdewolff canvases and any image.Image
  - Multi-panel figure* environments built from registered figures
  - Figure records published to pluggable DataStores (YAML manifest, DynamoDB)
  - Chapter-per-Manager books sharing one search path and record store set

Basic Usage:

	m, err := texfigure.NewManager(nil, "Chapter1", texfigure.WithNumber(1))
	if err != nil {
	    return err
	}

	p := plot.New()
	texfigure.ConfigureLaTeXPlot(p)
	fig, err := m.SaveFigure(ctx, "velocity_profile", p,
	    texfigure.WithCaption("Velocity profile"))
	if err != nil {
	    return err
	}
	fmt.Println(fig) // \begin{figure}[h] ... \end{figure}

Custom types are added with RegisterSaveFuncFor:

	texfigure.RegisterSaveFuncFor[*MyChart](m, func(obj any, filename string, params texfigure.Params) ([]string, error) {
	    return nil, obj.(*MyChart).Render(filename)
	})
*/
package texfigure
