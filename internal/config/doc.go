// Package config loads the routerd site configuration.
//
// The configuration lives in routerd.json, routerd.yaml or routerd.yml at
// the site root; JSON is tried first. It describes the server, the page
// shell and a list of routes, each of which renders content or redirects.
//
// # Configuration File Structure
//
//	name: docs
//	basename: /docs
//	server:
//	  port: 8080
//	  replaceStatus: 303
//	page:
//	  title: Docs
//	  styleSheets: [/static/site.css]
//	routes:
//	  - path: /
//	    exact: true
//	    title: Home
//	    content: Welcome
//	  - path: /guide/:slug
//	    content: "Reading {slug}"
//	  - path: /old/:slug
//	    redirect: /guide/:slug
//	    push: true
//	export:
//	  output: dist
//	  paths: [/, /guide/intro]
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Listening on", cfg.Address())
package config
