package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/sdsheeks/gqlscout/internal/config"
	"github.com/sdsheeks/gqlscout/internal/errors"
	"github.com/sdsheeks/gqlscout/internal/keywords"
	"github.com/sdsheeks/gqlscout/internal/schema"
	"github.com/sdsheeks/gqlscout/internal/sdl"
	"github.com/sdsheeks/gqlscout/internal/search"
	"github.com/sdsheeks/gqlscout/internal/templates"
	"github.com/sdsheeks/gqlscout/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config, baseDir string) *cli.App {
	app := &cli.App{
		Name:    "gqlscout",
		Usage:   "GraphQL schema scout",
		Version: Version,
		Commands: []*cli.Command{
			searchCmd(cfg, baseDir),
			showCmd(cfg, baseDir),
			refreshCmd(cfg, baseDir),
			statusCmd(cfg, baseDir),
			templatesCmd(),
			keywordsCmd(),
			webCmd(cfg, baseDir),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// buildManager wires the schema store and fetcher from configuration.
func buildManager(cfg *config.Config, baseDir string) *schema.Manager {
	store := schema.NewStore(config.CachePath(baseDir))
	fetcher := schema.NewHTTPFetcher(cfg)
	return schema.NewManager(store, fetcher, time.Duration(cfg.CacheTTLHours)*time.Hour)
}

// requireManager validates the configuration and builds the manager.
// Commands that may hit the endpoint go through here.
func requireManager(cfg *config.Config, baseDir string) (*schema.Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return buildManager(cfg, baseDir), nil
}

// searchCmd creates the search command.
func searchCmd(cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the schema for a case-insensitive regex pattern",
		ArgsUsage: "<pattern>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "filter", Aliases: []string{"f"}, Usage: "Construct filter: any|query|mutation|type|input|enum|interface|union|scalar"},
			&cli.IntFlag{Name: "window", Aliases: []string{"W"}, Value: 2, Usage: "Context lines before and after each match"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("search pattern is required"))
			}

			manager, err := requireManager(cfg, baseDir)
			if err != nil {
				return outputError(err)
			}

			content, err := manager.GetContent(c.Context)
			if err != nil {
				return outputError(err)
			}

			result := search.Search(content, search.Query{
				Pattern:       c.Args().First(),
				Filter:        c.String("filter"),
				ContextWindow: c.Int("window"),
			})
			return outputJSON(result)
		},
	}
}

// showCmd creates the show command.
func showCmd(cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the full SDL text of the schema",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force-refresh", Usage: "Fetch from the endpoint even if the cached copy is fresh"},
			&cli.BoolFlag{Name: "json", Usage: "Output JSON with provenance instead of raw SDL"},
		},
		Action: func(c *cli.Context) error {
			manager, err := requireManager(cfg, baseDir)
			if err != nil {
				return outputError(err)
			}

			var doc *schema.Document
			if c.Bool("force-refresh") {
				doc, err = manager.ForceRefresh(c.Context)
			} else {
				doc, err = manager.GetDocument(c.Context)
			}
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(map[string]any{
					"sdl":      doc.Content,
					"snapshot": doc.Snapshot,
				})
			}
			fmt.Print(doc.Content)
			return nil
		},
	}
}

// refreshCmd creates the refresh command.
func refreshCmd(cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "refresh",
		Usage: "Force-fetch the schema and overwrite the local cache",
		Action: func(c *cli.Context) error {
			manager, err := requireManager(cfg, baseDir)
			if err != nil {
				return outputError(err)
			}

			doc, err := manager.ForceRefresh(c.Context)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{
				"snapshot": doc.Snapshot,
				"summary":  sdl.Summarize(doc.Content),
			})
		},
	}
}

// statusCmd creates the status command.
func statusCmd(cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Report the schema cache state without touching the network",
		Action: func(_ *cli.Context) error {
			// Status never fetches, so an unconfigured endpoint is fine here
			manager := buildManager(cfg, baseDir)

			out := map[string]any{"cache": manager.Status()}
			if content, err := manager.Peek(); err == nil {
				out["summary"] = sdl.Summarize(content)
			}
			return outputJSON(out)
		},
	}
}

// templatesCmd creates the templates command.
func templatesCmd() *cli.Command {
	return &cli.Command{
		Name:      "templates",
		Usage:     "List operation templates, or show one by name",
		ArgsUsage: "[name]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				tmpl, err := templates.Get(c.Args().First())
				if err != nil {
					return outputError(err)
				}
				return outputJSON(tmpl)
			}

			items, err := templates.List()
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"templates": items})
		},
	}
}

// keywordsCmd creates the keywords command.
func keywordsCmd() *cli.Command {
	return &cli.Command{
		Name:      "keywords",
		Usage:     "List keyword categories, or the keywords of one category",
		ArgsUsage: "[category]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				category := c.Args().First()
				words, err := keywords.List(category)
				if err != nil {
					return outputError(err)
				}
				return outputJSON(map[string]any{"category": category, "keywords": words})
			}

			cats, err := keywords.Categories()
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"categories": cats})
		},
	}
}

// webCmd creates the web command.
func webCmd(cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Serve the browser UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8777, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			manager, err := requireManager(cfg, baseDir)
			if err != nil {
				return outputError(err)
			}

			srv := web.NewServer(manager, cfg, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if sErr, ok := err.(*errors.ScoutError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
