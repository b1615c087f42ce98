package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparklineBlocks are block characters for 8-level vertical resolution (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// findMinMax returns the smallest and largest player counts.
func findMinMax(data []float64) (minVal, maxVal float64) {
	if len(data) == 0 {
		return 0, 0
	}
	minVal, maxVal = data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// normalizeValue converts a value to 0-1 range given min/max bounds.
func normalizeValue(val, minVal, maxVal float64) float64 {
	if maxVal > minVal {
		return (val - minVal) / (maxVal - minVal)
	}
	return 0.5
}

// clampInt clamps an integer to a range [0, maxVal].
func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// RenderSparkline renders player history as a single row of block characters,
// scaled between the lowest and highest retained counts. Fewer samples than
// width render right-aligned so the newest sample is always in the last column.
func RenderSparkline(history []int, width int) string {
	if len(history) == 0 || width <= 0 {
		return ""
	}

	data := make([]float64, len(history))
	for i, v := range history {
		data[i] = float64(v)
	}

	minVal, maxVal := findMinMax(data)
	if len(data) > width {
		data = resampleData(data, width)
	}

	var result strings.Builder
	result.WriteString(strings.Repeat(" ", width-len(data)))
	for _, val := range data {
		normalized := normalizeValue(val, minVal, maxVal)
		idx := clampInt(int(normalized*float64(len(sparklineBlocks)-1)), len(sparklineBlocks)-1)
		result.WriteRune(sparklineBlocks[idx])
	}
	return result.String()
}

// RenderColoredSparkline renders a sparkline in the given color.
func RenderColoredSparkline(history []int, width int, color lipgloss.Color) string {
	sparkline := RenderSparkline(history, width)
	if sparkline == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(color).Render(sparkline)
}

// resampleData shrinks data to targetSize buckets, keeping the max of each
// bucket so spikes stay visible.
func resampleData(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}
	if len(data) <= targetSize {
		return data
	}

	result := make([]float64, targetSize)
	bucketSize := float64(len(data)) / float64(targetSize)
	for i := 0; i < targetSize; i++ {
		start := int(float64(i) * bucketSize)
		end := int(float64(i+1) * bucketSize)
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			start = end - 1
		}
		if start < 0 {
			start = 0
		}

		maxVal := data[start]
		for j := start + 1; j < end; j++ {
			if data[j] > maxVal {
				maxVal = data[j]
			}
		}
		result[i] = maxVal
	}
	return result
}
