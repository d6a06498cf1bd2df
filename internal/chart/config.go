package chart

import (
	"slices"

	"github.com/leapstack-labs/samplechart/pkg/core"
)

// Config mirrors the configuration object handed to a chart instance.
// It is JSON-shaped so front ends can consume it as is.
type Config struct {
	Type                string  `json:"type"`
	Responsive          bool    `json:"responsive"`
	MaintainAspectRatio bool    `json:"maintainAspectRatio"`
	Data                Data    `json:"data"`
	Options             Options `json:"options"`
	Plugins             Plugins `json:"plugins"`
}

// Data holds the dataset list.
type Data struct {
	Datasets []Dataset `json:"datasets"`
}

// Dataset describes one plotted series.
type Dataset struct {
	Type            string       `json:"type"`
	BackgroundColor string       `json:"backgroundColor"`
	BorderColor     string       `json:"borderColor"`
	Data            []core.Point `json:"data"`
	ShowLine        bool         `json:"showLine"`
	YAxisID         string       `json:"yAxisID"`
}

// Options holds the axis configuration.
type Options struct {
	Scales Scales `json:"scales"`
}

// Scales holds the two axes.
type Scales struct {
	X Scale `json:"x"`
	Y Scale `json:"y"`
}

// Scale is one axis.
type Scale struct {
	Display  bool    `json:"display"`
	Type     string  `json:"type"`
	Position string  `json:"position"`
	Axis     string  `json:"axis"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// Plugins holds plugin toggles.
type Plugins struct {
	Legend Legend `json:"legend"`
	Filler bool   `json:"filler"`
}

// Legend controls legend visibility.
type Legend struct {
	Display bool `json:"display"`
}

// DefaultConfig returns the configuration of a freshly mounted chart:
// a responsive line chart with two linear [0, 1] axes, no legend and no fill.
func DefaultConfig() Config {
	b := core.DefaultBounds()
	return Config{
		Type:                ControllerLine,
		Responsive:          true,
		MaintainAspectRatio: false,
		Data:                Data{Datasets: []Dataset{}},
		Options: Options{
			Scales: Scales{
				X: Scale{Display: true, Type: ScaleLinear, Position: "bottom", Axis: "x", Min: b.MinX, Max: b.MaxX},
				Y: Scale{Display: true, Type: ScaleLinear, Position: "left", Axis: "y", Min: b.MinY, Max: b.MaxY},
			},
		},
		Plugins: Plugins{
			Legend: Legend{Display: false},
			Filler: false,
		},
	}
}

// LineDataset returns the single dataset the widget plots.
func LineDataset(points []core.Point) Dataset {
	return Dataset{
		Type:            ControllerLine,
		BackgroundColor: "white",
		BorderColor:     "red",
		Data:            points,
		ShowLine:        true,
		YAxisID:         "y",
	}
}

// Bounds returns the axis ranges currently configured.
func (c Config) Bounds() core.Bounds {
	return core.Bounds{
		MinX: c.Options.Scales.X.Min,
		MaxX: c.Options.Scales.X.Max,
		MinY: c.Options.Scales.Y.Min,
		MaxY: c.Options.Scales.Y.Max,
	}
}

func (c *Config) setBounds(b core.Bounds) {
	c.Options.Scales.X.Min = b.MinX
	c.Options.Scales.X.Max = b.MaxX
	c.Options.Scales.Y.Min = b.MinY
	c.Options.Scales.Y.Max = b.MaxY
}

// clone returns a copy that shares no slices with c.
func (c Config) clone() Config {
	out := c
	out.Data.Datasets = make([]Dataset, len(c.Data.Datasets))
	for i, ds := range c.Data.Datasets {
		ds.Data = slices.Clone(ds.Data)
		out.Data.Datasets[i] = ds
	}
	return out
}
