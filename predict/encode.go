package predict

import (
	"github.com/ariebrainware/biosecure-portal/model"
)

// Column names of the training frame.
const (
	ColumnSpecies       = "species"
	ColumnClinicalSigns = "clinical_signs"
	ColumnDaysNotWell   = "days_not_well"
)

// OneHot encodes a single sample the way the training pipeline did: numeric columns keep
// their name and value, each categorical column becomes "<column>_<value>" set to 1.
func OneHot(in model.SymptomInput) map[string]float64 {
	return map[string]float64{
		ColumnDaysNotWell:                            float64(in.DaysNotWell),
		ColumnSpecies + "_" + in.Species:             1,
		ColumnClinicalSigns + "_" + in.ClinicalSigns: 1,
	}
}

// Align orders encoded features by the fitted column list. Columns the sample does not
// produce are 0; features the model was never fitted on are dropped.
func Align(features map[string]float64, columns []string) []float64 {
	row := make([]float64, len(columns))
	for i, col := range columns {
		row[i] = features[col]
	}
	return row
}
