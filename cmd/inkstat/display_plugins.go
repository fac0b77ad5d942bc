package main

import (
	"fmt"

	"github.com/tinytelemetry/inkstat/internal/epd"
	"github.com/tinytelemetry/inkstat/internal/scheduler"
)

// displayPlugin is a small plugin primitive for wiring display sinks.
type displayPlugin interface {
	Name() string
	Build(cfg appConfig) (scheduler.Display, error)
}

func buildDisplaySink(cfg appConfig) (scheduler.Display, error) {
	for _, plugin := range displayPlugins() {
		if plugin.Name() == cfg.Display {
			sink, err := plugin.Build(cfg)
			if err != nil {
				return nil, fmt.Errorf("display %q: %w", plugin.Name(), err)
			}
			return sink, nil
		}
	}
	return nil, fmt.Errorf("unknown display %q", cfg.Display)
}

func displayPlugins() []displayPlugin {
	return []displayPlugin{
		epdDisplayPlugin{},
		pngDisplayPlugin{},
		nullDisplayPlugin{},
	}
}

type epdDisplayPlugin struct{}

func (epdDisplayPlugin) Name() string { return displayEPD }

func (epdDisplayPlugin) Build(cfg appConfig) (scheduler.Display, error) {
	return epd.OpenPanel(cfg.SPIPort)
}

type pngDisplayPlugin struct{}

func (pngDisplayPlugin) Name() string { return displayPNG }

func (pngDisplayPlugin) Build(cfg appConfig) (scheduler.Display, error) {
	if cfg.PNGPath == "" {
		return nil, fmt.Errorf("png display requires png-path")
	}
	return epd.NewPNGFile(cfg.PNGPath), nil
}

type nullDisplayPlugin struct{}

func (nullDisplayPlugin) Name() string { return displayNull }

func (nullDisplayPlugin) Build(appConfig) (scheduler.Display, error) {
	return epd.Null{}, nil
}
