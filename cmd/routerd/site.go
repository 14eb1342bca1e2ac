package main

import (
	"log/slog"
	"os"
	"sort"

	"github.com/vango-dev/vrouter"
	"github.com/vango-dev/vrouter/internal/config"
	"github.com/vango-dev/vrouter/internal/site"
	"github.com/vango-dev/vrouter/pkg/render"
)

// loadConfig loads the file or directory given by --config, or searches
// upwards from the working directory.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		root, err := config.FindRoot(".")
		if err != nil {
			return nil, err
		}
		return config.Load(root)
	}
	fi, err := os.Stat(path)
	if err == nil && fi.IsDir() {
		return config.Load(path)
	}
	return config.LoadFile(path)
}

// newApp builds the application for a site configuration.
func newApp(cfg *config.Config, logger *slog.Logger) *vrouter.App {
	return vrouter.New(appConfig(cfg, logger), site.Root(cfg))
}

func appConfig(cfg *config.Config, logger *slog.Logger) vrouter.Config {
	c := vrouter.DefaultConfig()
	c.Basename = cfg.Basename
	c.PushStatus = cfg.Server.PushStatus
	c.ReplaceStatus = cfg.Server.ReplaceStatus
	c.Pretty = cfg.Server.Pretty
	c.Logger = logger

	c.MetricsPath = cfg.Server.MetricsPath
	if c.MetricsPath == "-" {
		c.MetricsPath = ""
	}
	c.Static.Dir = cfg.StaticPath()
	c.Static.Prefix = cfg.Static.Prefix
	if cfg.Static.Cache == "production" {
		c.Static.CacheControl = vrouter.CacheControlProduction
	}

	c.Live.Enabled = cfg.Server.Live
	c.Live.Path = cfg.Server.LivePath

	c.Page.Title = cfg.Page.Title
	if c.Page.Title == "" {
		c.Page.Title = cfg.Name
	}
	c.Page.Lang = cfg.Page.Lang
	c.Page.StyleSheets = cfg.Page.StyleSheets

	names := make([]string, 0, len(cfg.Page.Meta))
	for name := range cfg.Page.Meta {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c.Page.Meta = append(c.Page.Meta, render.MetaTag{Name: name, Content: cfg.Page.Meta[name]})
	}
	for _, src := range cfg.Page.Scripts {
		c.Page.Scripts = append(c.Page.Scripts, render.ScriptTag{Src: src, Defer: true})
	}
	return c
}
