package dashboard

import (
	"math"
	"sort"
)

const (
	histogramBins = 25
	roseSectors   = 16
)

var compassPoints = [roseSectors]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// quantile uses linear interpolation between closest ranks, the default
// for numpy and for plotly box traces. sorted must be ascending.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func boxSummary(values []float64) *BoxSummary {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}

	b := &BoxSummary{
		N:      len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Mean:   sum / float64(len(sorted)),
	}

	iqr := b.Q3 - b.Q1
	lowFence := b.Q1 - 1.5*iqr
	highFence := b.Q3 + 1.5*iqr
	b.LowerWhisker = b.Q1
	b.UpperWhisker = b.Q3
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			b.Outliers++
			continue
		}
		if v < b.LowerWhisker {
			b.LowerWhisker = v
		}
		if v > b.UpperWhisker {
			b.UpperWhisker = v
		}
	}
	return b
}

// histogram splits [min, max] into exactly histogramBins equal bins. A
// constant sample is centred in a unit-wide range.
func histogram(values []float64) []Bin {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / histogramBins
	bins := make([]Bin, histogramBins)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[histogramBins-1].Hi = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= histogramBins {
			i = histogramBins - 1
		}
		if i < 0 {
			i = 0
		}
		bins[i].Count++
	}
	return bins
}

// windRose counts directions into 16 compass sectors centred on each
// point, so 350° and 10° both land in N.
func windRose(directions []float64) *PolarData {
	width := 360.0 / roseSectors
	rose := &PolarData{
		Clockwise:  true,
		StartAngle: 90,
		Sectors:    make([]Sector, roseSectors),
	}
	for i := range rose.Sectors {
		rose.Sectors[i] = Sector{
			Label: compassPoints[i],
			Theta: float64(i) * width,
			Width: width,
		}
	}
	for _, d := range directions {
		rose.Sectors[sectorIndex(d)].Count++
		rose.Total++
	}
	return rose
}

func sectorIndex(deg float64) int {
	width := 360.0 / roseSectors
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return int(math.Floor((d+width/2)/width)) % roseSectors
}
