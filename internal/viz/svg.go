package viz

import (
	"fmt"
	"math"
	"strings"
)

// Low-level SVG assembly. Fixed canvas, no external renderer dependency:
// the documents embed directly into the web client and the PDF report.

const (
	svgWidth   = 640
	svgHeight  = 400
	svgPadding = 60

	seriesColor = "#4a90d9"
)

var pieColors = []string{
	"#4a90d9", "#e2574c", "#f5a623", "#50b83c",
	"#9b59b6", "#1abc9c", "#f39c12", "#34495e",
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

func openSVG(sb *strings.Builder) {
	fmt.Fprintf(sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d">`, svgWidth, svgHeight)
	fmt.Fprintf(sb, `<rect width="%d" height="%d" fill="white"/>`, svgWidth, svgHeight)
}

func emptySVG() string {
	var sb strings.Builder
	openSVG(&sb)
	sb.WriteString(`</svg>`)
	return sb.String()
}

func barSVG(labels []string, values []float64) string {
	var sb strings.Builder
	openSVG(&sb)
	if len(values) == 0 {
		sb.WriteString(`</svg>`)
		return sb.String()
	}

	chartWidth := svgWidth - 2*svgPadding
	chartHeight := svgHeight - 2*svgPadding

	maxVal := values[0]
	for _, v := range values[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	barWidth := chartWidth / len(values)
	gap := barWidth / 5

	for i, v := range values {
		if v < 0 {
			v = 0
		}
		h := int(float64(chartHeight) * v / maxVal)
		x := svgPadding + i*barWidth + gap/2
		y := svgPadding + chartHeight - h
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
			x, y, barWidth-gap, h, seriesColor)
		if i < len(labels) {
			fmt.Fprintf(&sb, `<text x="%d" y="%d" text-anchor="middle" font-size="10">%s</text>`,
				x+(barWidth-gap)/2, svgHeight-svgPadding+15, escapeXML(labels[i]))
		}
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

func lineSVG(labels []string, values []float64, filled bool) string {
	var sb strings.Builder
	openSVG(&sb)
	if len(values) == 0 {
		sb.WriteString(`</svg>`)
		return sb.String()
	}

	chartWidth := svgWidth - 2*svgPadding
	chartHeight := svgHeight - 2*svgPadding

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	divisor := len(values) - 1
	if divisor < 1 {
		divisor = 1
	}

	var points []string
	for i, v := range values {
		x := svgPadding + i*chartWidth/divisor
		y := svgPadding + chartHeight - int(float64(chartHeight)*v/maxVal)
		points = append(points, fmt.Sprintf("%d,%d", x, y))
	}

	if filled {
		area := append([]string{}, points...)
		area = append(area,
			fmt.Sprintf("%d,%d", svgPadding+chartWidth, svgPadding+chartHeight),
			fmt.Sprintf("%d,%d", svgPadding, svgPadding+chartHeight),
		)
		fmt.Fprintf(&sb, `<polygon points="%s" fill="%s" fill-opacity="0.3"/>`,
			strings.Join(area, " "), seriesColor)
	}

	fmt.Fprintf(&sb, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2"/>`,
		strings.Join(points, " "), seriesColor)
	for _, p := range points {
		coords := strings.SplitN(p, ",", 2)
		fmt.Fprintf(&sb, `<circle cx="%s" cy="%s" r="3" fill="%s"/>`, coords[0], coords[1], seriesColor)
	}

	if len(labels) > 1 {
		divisor := len(labels) - 1
		for i, label := range labels {
			x := svgPadding + i*chartWidth/divisor
			fmt.Fprintf(&sb, `<text x="%d" y="%d" text-anchor="middle" font-size="10">%s</text>`,
				x, svgHeight-svgPadding+15, escapeXML(label))
		}
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

func pieSVG(labels []string, values []float64) string {
	var sb strings.Builder
	openSVG(&sb)

	total := 0.0
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		// Legitimately empty: nothing to slice.
		sb.WriteString(`</svg>`)
		return sb.String()
	}

	cx := float64(svgWidth) / 2
	cy := float64(svgHeight) / 2
	radius := float64(minInt(svgWidth, svgHeight))/2 - 40

	startAngle := -90.0
	for i, v := range values {
		if v <= 0 {
			continue
		}
		endAngle := startAngle + 360*v/total
		fmt.Fprintf(&sb, `<path d="%s" fill="%s" stroke="white" stroke-width="2"/>`,
			arcPath(cx, cy, radius, startAngle, endAngle), pieColors[i%len(pieColors)])
		startAngle = endAngle
	}

	// Legend down the right edge.
	for i, label := range labels {
		y := 30 + i*18
		if y > svgHeight-10 {
			break
		}
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="12" height="12" fill="%s"/>`,
			svgWidth-150, y-10, pieColors[i%len(pieColors)])
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="11">%s</text>`,
			svgWidth-132, y, escapeXML(label))
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

func arcPath(cx, cy, r, startAngle, endAngle float64) string {
	startRad := startAngle * math.Pi / 180
	endRad := endAngle * math.Pi / 180

	x1 := cx + r*math.Cos(startRad)
	y1 := cy + r*math.Sin(startRad)
	x2 := cx + r*math.Cos(endRad)
	y2 := cy + r*math.Sin(endRad)

	largeArc := 0
	if endAngle-startAngle > 180 {
		largeArc = 1
	}
	return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f L %.2f %.2f Z",
		x1, y1, r, r, largeArc, x2, y2, cx, cy)
}

func scatterSVG(xs, ys []float64, xLabel, yLabel string) string {
	var sb strings.Builder
	openSVG(&sb)
	if len(xs) == 0 {
		sb.WriteString(`</svg>`)
		return sb.String()
	}

	chartWidth := svgWidth - 2*svgPadding
	chartHeight := svgHeight - 2*svgPadding

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX = math.Min(minX, xs[i])
		maxX = math.Max(maxX, xs[i])
		minY = math.Min(minY, ys[i])
		maxY = math.Max(maxY, ys[i])
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	for i := range xs {
		px := svgPadding + int(float64(chartWidth)*(xs[i]-minX)/rangeX)
		py := svgPadding + chartHeight - int(float64(chartHeight)*(ys[i]-minY)/rangeY)
		fmt.Fprintf(&sb, `<circle cx="%d" cy="%d" r="4" fill="%s" fill-opacity="0.7"/>`,
			px, py, seriesColor)
	}

	if xLabel != "" {
		fmt.Fprintf(&sb, `<text x="%d" y="%d" text-anchor="middle" font-size="12">%s</text>`,
			svgWidth/2, svgHeight-10, escapeXML(xLabel))
	}
	if yLabel != "" {
		fmt.Fprintf(&sb, `<text x="15" y="%d" text-anchor="middle" font-size="12" transform="rotate(-90, 15, %d)">%s</text>`,
			svgHeight/2, svgHeight/2, escapeXML(yLabel))
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

func heatmapSVG(xCats, yCats []string, cells [][]float64) string {
	var sb strings.Builder
	openSVG(&sb)
	if len(xCats) == 0 || len(yCats) == 0 {
		sb.WriteString(`</svg>`)
		return sb.String()
	}

	chartWidth := svgWidth - 2*svgPadding
	chartHeight := svgHeight - 2*svgPadding
	cellW := chartWidth / len(xCats)
	cellH := chartHeight / len(yCats)

	maxVal := 0.0
	for _, rowCells := range cells {
		for _, v := range rowCells {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	for yi := range yCats {
		for xi := range xCats {
			intensity := cells[yi][xi] / maxVal
			if intensity < 0 {
				intensity = 0
			}
			// White through the series blue.
			r := int(255 - intensity*(255-0x4a))
			g := int(255 - intensity*(255-0x90))
			b := int(255 - intensity*(255-0xd9))
			fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="rgb(%d,%d,%d)" stroke="#ddd"/>`,
				svgPadding+xi*cellW, svgPadding+yi*cellH, cellW, cellH, r, g, b)
		}
	}

	for xi, label := range xCats {
		fmt.Fprintf(&sb, `<text x="%d" y="%d" text-anchor="middle" font-size="10">%s</text>`,
			svgPadding+xi*cellW+cellW/2, svgHeight-svgPadding+15, escapeXML(label))
	}
	for yi, label := range yCats {
		fmt.Fprintf(&sb, `<text x="%d" y="%d" text-anchor="end" font-size="10">%s</text>`,
			svgPadding-5, svgPadding+yi*cellH+cellH/2+4, escapeXML(label))
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
