package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

// InitCmd scaffolds a new site project in the target directory.
type InitCmd struct {
	Dir   string `arg:"" optional:"" help:"Directory to initialize (default: current directory)" default:"."`
	Name  string `help:"Site name" default:"My Site"`
	Force bool   `help:"Overwrite an existing site.yaml"`
}

const configTemplate = `name: %s
description: ""
base_url: ""
language: en
sections:
  - articles
`

const indexTemplate = `---
title: Welcome
---
# Welcome

This site was just initialized. Add Markdown files under Content/ and run
` + "`sitebuilder build`" + `.
`

func (i *InitCmd) Run(_ *Global) error {
	configPath := filepath.Join(i.Dir, site.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !i.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	for _, dir := range []string{
		filepath.Join(i.Dir, "Content", "articles"),
		filepath.Join(i.Dir, "Resources"),
	} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}

	if err := os.WriteFile(configPath, []byte(fmt.Sprintf(configTemplate, i.Name)), 0o644); err != nil {
		return err
	}
	indexPath := filepath.Join(i.Dir, "Content", "index.md")
	if _, err := os.Stat(indexPath); os.IsNotExist(err) {
		if err := os.WriteFile(indexPath, []byte(indexTemplate), 0o644); err != nil {
			return err
		}
	}

	slog.Info("Initialized site project", logfields.Path(i.Dir), logfields.Site(i.Name))
	return nil
}
