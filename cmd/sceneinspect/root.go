package main

import (
	"fmt"

	"github.com/gekko3d/sceneedit"
	"github.com/gekko3d/sceneedit/rt/core"
	"github.com/gekko3d/sceneedit/rt/memstore"
	"github.com/spf13/cobra"
)

// Options holds the flags shared by every subcommand.
type Options struct {
	ScenePath  string
	ConfigPath string
	Debug      bool
}

// NewRootCommand creates the root cobra command for sceneinspect
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "sceneinspect",
		Short: "Inspect a YAML scene with the editor core",
		Long: `sceneinspect loads a scene description and runs the scene-editing core
against it without a window: print the hierarchy panel, pick at a viewport
coordinate, or try a reparent.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ScenePath, "scene", "s", "scene.yaml", "Scene description file")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Editor config file (default: built-in defaults)")
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(NewTreeCommand(opts))
	cmd.AddCommand(NewPickCommand(opts))
	cmd.AddCommand(NewReparentCommand(opts))

	return cmd
}

// session is a loaded scene ready to be edited.
type session struct {
	doc    *memstore.Document
	store  *memstore.Store
	scope  *core.NodeId
	cfg    sceneedit.Config
	logger sceneedit.Logger
}

func (o *Options) load() (*session, error) {
	cfg := sceneedit.DefaultConfig()
	if o.ConfigPath != "" {
		var err error
		cfg, err = sceneedit.LoadConfig(o.ConfigPath)
		if err != nil {
			return nil, err
		}
	}
	logger := sceneedit.NewDefaultLogger(cfg.LogPrefix, cfg.Debug || o.Debug)

	doc, err := memstore.LoadDocument(o.ScenePath)
	if err != nil {
		return nil, err
	}
	store, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}
	store.OnError = func(err error) {
		logger.Warnf("intent not applied: %v", err)
	}
	scope, err := doc.ScopeRoot(store)
	if err != nil {
		return nil, err
	}

	return &session{doc: doc, store: store, scope: scope, cfg: cfg, logger: logger}, nil
}

func (s *session) editor() *sceneedit.Editor {
	opts := []sceneedit.Option{
		sceneedit.WithConfig(s.cfg),
		sceneedit.WithLogger(s.logger),
	}
	if s.scope != nil {
		opts = append(opts, sceneedit.WithScope(*s.scope))
	}
	return sceneedit.NewEditor(s.store, opts...)
}

// findByLabel resolves a node name given on the command line.
func (s *session) findByLabel(label string) (core.NodeId, error) {
	for _, rec := range s.store.Nodes() {
		if rec.Label != nil && *rec.Label == label {
			return rec.Id, nil
		}
	}
	return 0, fmt.Errorf("no node named %q", label)
}
