package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aureajoias/aurea/app/controllers"
	"github.com/aureajoias/aurea/app/graphql"
	"github.com/aureajoias/aurea/app/routes"
	"github.com/aureajoias/aurea/internal/server"
	"github.com/aureajoias/aurea/pkg/router"
	"github.com/aureajoias/aurea/pkg/ws"
)

// aurea serve — start the HTTP and gRPC servers.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// aurea route:list — print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Handlers are registered but never invoked here, so the
		// controllers can be built without backing services.
		schema, err := graphql.NewSchema(nil, nil)
		if err != nil {
			return err
		}

		r := router.New()
		routes.RegisterAPI(r, routes.Deps{
			Auth:       controllers.NewAuthController(nil, nil),
			Products:   controllers.NewProductController(nil),
			Categories: controllers.NewCategoryController(nil, nil),
			Bulk:       controllers.NewBulkController(nil),
			Schema:     schema,
			Hub:        ws.NewHub(),
		})

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
