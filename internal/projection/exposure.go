package projection

import (
	"math"
	"sort"

	"github.com/rturnbull/otcdesk/internal/model"
)

// ExposureCell is one cell of the client × instrument exposure matrix.
type ExposureCell struct {
	ClientID     int
	InstrumentID int
	ExposureUSD  float64 // absolute USD exposure, 0 when no position exists
	Intensity    float64 // ExposureUSD / max over the matrix, in [0, 1]
}

// ExposureMatrix computes the full cross product of known clients ×
// known instruments, row-major in the given option order. Intensity is
// normalized against the maximum absolute exposure observed anywhere in
// the matrix (0 everywhere when the matrix is empty), for heat-shading.
func ExposureMatrix(positions []model.PositionSnapshot, clients, instruments []model.OptionItem) []ExposureCell {
	type key struct{ client, instrument int }

	exposure := make(map[key]float64, len(positions))
	var max float64
	for _, p := range positions {
		abs := math.Abs(p.ExposureUSD)
		exposure[key{p.ClientID, p.InstrumentID}] = abs
		if abs > max {
			max = abs
		}
	}

	cells := make([]ExposureCell, 0, len(clients)*len(instruments))
	for _, c := range clients {
		for _, inst := range instruments {
			value := exposure[key{c.ID, inst.ID}]
			intensity := 0.0
			if max > 0 {
				intensity = value / max
			}
			cells = append(cells, ExposureCell{
				ClientID:     c.ID,
				InstrumentID: inst.ID,
				ExposureUSD:  value,
				Intensity:    intensity,
			})
		}
	}
	return cells
}

// InventoryRow is the aggregated absolute exposure for one instrument
// symbol across all clients.
type InventoryRow struct {
	Symbol      string
	ExposureUSD float64
}

// InventoryBySymbol sums absolute USD exposure per instrument symbol,
// sorted by symbol for stable display.
func InventoryBySymbol(positions []model.PositionSnapshot) []InventoryRow {
	totals := make(map[string]float64)
	for _, p := range positions {
		totals[p.Symbol] += math.Abs(p.ExposureUSD)
	}

	rows := make([]InventoryRow, 0, len(totals))
	for symbol, exposure := range totals {
		rows = append(rows, InventoryRow{Symbol: symbol, ExposureUSD: exposure})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Symbol < rows[j].Symbol
	})
	return rows
}

// TotalExposure sums an inventory aggregation, for the renderer header.
func TotalExposure(rows []InventoryRow) float64 {
	var total float64
	for _, r := range rows {
		total += r.ExposureUSD
	}
	return total
}
