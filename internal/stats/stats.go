// Package stats summarizes the grades given for a course.
package stats

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

const (
	// PassMark is the lowest passing grade value.
	PassMark = 10

	maxValue    = 20
	bucketWidth = 5
	decimals    = 2
)

// Bucket counts the grades in [Min, Max). The last bucket includes Max.
type Bucket struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Nombre int     `json:"nombre"`
}

// Summary holds the summary values of a set of grades. The numeric fields are
// nil when there are no grades.
type Summary struct {
	NombreNotes  int       `json:"nombreNotes"`
	Moyenne      *float64  `json:"moyenne"`
	Mediane      *float64  `json:"mediane"`
	Min          *float64  `json:"min"`
	Max          *float64  `json:"max"`
	EcartType    *float64  `json:"ecartType"`
	TauxReussite *float64  `json:"tauxReussite"`
	Distribution []*Bucket `json:"distribution"`
}

// Summarize computes the summary of values, each expected to lie in [0, 20].
func Summarize(values []float64) (*Summary, error) {
	summary := &Summary{
		NombreNotes:  len(values),
		Distribution: distribution(values),
	}

	if len(values) == 0 {
		return summary, nil
	}

	data := stats.LoadRawData(values)

	var err error
	for _, s := range []struct {
		name string
		dst  **float64
		fn   func(stats.Float64Data) (float64, error)
	}{
		{"mean", &summary.Moyenne, stats.Mean},
		{"median", &summary.Mediane, stats.Median},
		{"min", &summary.Min, stats.Min},
		{"max", &summary.Max, stats.Max},
		{"standard deviation", &summary.EcartType, stats.StandardDeviationPopulation},
	} {
		if *s.dst, err = rounded(s.fn(data)); err != nil {
			return nil, fmt.Errorf("%s error: %w", s.name, err)
		}
	}

	var passed int
	for _, v := range values {
		if v >= PassMark {
			passed++
		}
	}
	summary.TauxReussite, err = rounded(float64(passed)/float64(len(values))*100, nil)
	if err != nil {
		return nil, fmt.Errorf("pass rate error: %w", err)
	}

	return summary, nil
}

func distribution(values []float64) []*Bucket {
	buckets := make([]*Bucket, 0, maxValue/bucketWidth)
	for low := 0; low < maxValue; low += bucketWidth {
		buckets = append(buckets, &Bucket{
			Min: float64(low),
			Max: float64(low + bucketWidth),
		})
	}

	for _, v := range values {
		i := int(v) / bucketWidth
		switch {
		case i < 0:
			i = 0
		case i >= len(buckets):
			i = len(buckets) - 1
		}
		buckets[i].Nombre++
	}

	return buckets
}

func rounded(v float64, err error) (*float64, error) {
	if err != nil {
		return nil, err
	}

	r, err := stats.Round(v, decimals)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
