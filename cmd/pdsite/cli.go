package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"pdsite/internal/domain/config"
	"pdsite/internal/domain/content"
	"pdsite/internal/domain/site"
	"pdsite/internal/index"
	"pdsite/internal/leads"
	"pdsite/internal/logging"
	"pdsite/internal/serve"
)

func newCLIApp() *cli.App {
	app := &cli.App{
		Name:  "pdsite",
		Usage: "Marketing site server backed by markdown content",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "site.yaml", Usage: "Path to the YAML config file"},
			&cli.StringFlag{Name: "content", Usage: "Content root (overrides content.root)"},
		},
		Commands: []*cli.Command{
			serveCmd(),
			checkCmd(),
			leadsCmd(),
		},
		Action: func(c *cli.Context) error {
			return runServe(c, "")
		},
	}
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// loadConfig reads --config, tolerating a missing file, then applies the
// command-line overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.LoadOrDefault(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if root := strings.TrimSpace(c.String("content")); root != "" {
		cfg.Content.Root = root
	}
	return cfg, nil
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the site (default command)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Listen address (overrides server.addr)"},
			&cli.BoolFlag{Name: "dev", Usage: "Reload content on change"},
		},
		Action: func(c *cli.Context) error {
			return runServe(c, c.String("addr"))
		},
	}
}

func runServe(c *cli.Context, addr string) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.Bool("dev") {
		cfg.Server.DevReload = true
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	logs, err := logging.NewProvider(cfg.Log)
	if err != nil {
		return err
	}

	s, err := serve.New(cfg, logs)
	if err != nil {
		return fmt.Errorf("serve init error: %w", err)
	}
	defer s.Close()

	return s.ListenAndServe(c.Context, addr)
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Index the content and report coverage, slugs and warnings",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			idx := index.New(os.DirFS(cfg.Content.Root), logging.NoOp())
			return runCheck(c.App.Writer, idx)
		},
	}
}

// runCheck prints the report and fails when a route has no entry or a
// content directory could not be read.
func runCheck(w io.Writer, idx *index.Index) error {
	warmErr := idx.Warm()

	var missing []string
	fmt.Fprintln(w, "pages:")
	for _, key := range site.RouteKeys() {
		if e, ok := idx.Page(key); ok {
			fmt.Fprintf(w, "  %-13s %s (%q)\n", key, e.FilePath, e.Meta.Title)
			continue
		}
		missing = append(missing, string(key))
		fmt.Fprintf(w, "  %-13s MISSING %s\n", key, key.FilePath())
	}

	fmt.Fprintln(w, "playbook:")
	for _, m := range idx.SlugMappings() {
		fmt.Fprintf(w, "  %s (legacy %s)\n", m.Canonical, m.Legacy)
	}

	fmt.Fprintln(w, "allowlist:")
	for _, p := range content.AllowedPaths() {
		fmt.Fprintf(w, "  %s: %s\n", p, allowlistUse(idx, p))
	}

	if warns := idx.Warnings(); len(warns) > 0 {
		fmt.Fprintln(w, "warnings:")
		for _, wr := range warns {
			fmt.Fprintf(w, "  %s\n", wr.String())
		}
	}

	if warmErr != nil {
		return cli.Exit(warmErr.Error(), 1)
	}
	if len(missing) > 0 {
		return cli.Exit("missing content for: "+strings.Join(missing, ", "), 1)
	}
	return nil
}

// allowlistUse names what serves an allowlisted file, or "unused".
func allowlistUse(idx *index.Index, p string) string {
	if keys := site.KeysForFile(p); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = string(k)
		}
		return "route " + strings.Join(names, ", ")
	}
	if slug, ok := idx.CanonicalSlug(p); ok {
		return "playbook " + slug
	}
	return "unused"
}

func leadsCmd() *cli.Command {
	return &cli.Command{
		Name:  "leads",
		Usage: "Print stored early-access leads as JSON lines, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "Maximum number of leads (0 for all)"},
			&cli.StringFlag{Name: "email", Usage: "Only leads submitted with this email"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			st, err := leads.Open(leads.OpenOptions{Path: cfg.Leads.DBPath})
			if err != nil {
				return err
			}
			defer st.Close()
			return printLeads(c.App.Writer, st, c.Int("limit"), c.String("email"))
		},
	}
}

func printLeads(w io.Writer, st *leads.Store, limit int, email string) error {
	var list []leads.Lead
	if email != "" {
		ids, err := st.IDsByEmail(email)
		if err != nil {
			return err
		}
		// newest first, like List
		for i := len(ids) - 1; i >= 0 && (limit <= 0 || len(list) < limit); i-- {
			l, err := st.Get(ids[i])
			if err != nil {
				return err
			}
			list = append(list, l)
		}
	} else {
		var err error
		if list, err = st.List(limit); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(w)
	for _, l := range list {
		if err := enc.Encode(l); err != nil {
			return err
		}
	}
	return nil
}
