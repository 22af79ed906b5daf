package game

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/data-ballpit/internal/logging"
	"github.com/iburimskiy/data-ballpit/internal/series"
)

// openDatasetDialog asks for a time-series file and adds it as a new
// visualization. Cancelling the dialog is not an error.
func (g *Game) openDatasetDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Dataset"),
		zenity.FileFilters{{
			Name:     "Time series",
			Patterns: []string{"*.json"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	ts, err := series.Load(filename)
	if err != nil {
		return err
	}
	if err := ts.Validate(); err != nil {
		logging.Warnf("%v", err)
	}
	title := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	logging.Infof("Loaded %s with datasets %s", title, strings.Join(ts.DatasetLabels(), ", "))
	g.addVisualization(title, g.defaultVis(), ts)
	return nil
}
