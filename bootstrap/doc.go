// Package bootstrap wires a loaded configuration into a running neysla
// runtime. It initializes logging, registers the HTTP transport component,
// installs telemetry and builds the resource catalog, then tears all of it
// down again once a task finishes.
//
//	cfg, err := config.Load("neysla")
//	app, err := bootstrap.NewApp(cfg)
//	err = app.RunTask(ctx, func(ctx context.Context, app *bootstrap.App) error {
//	    posts, err := app.Catalog.Resource("posts")
//	    ...
//	})
package bootstrap
