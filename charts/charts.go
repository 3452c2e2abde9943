// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/danielhkuo/civic-pulse/aggregate"
	"github.com/danielhkuo/civic-pulse/models"
)

// PageTitle is the title of the rendered dashboard page
const PageTitle = "Civic Pulse - Research Dashboard"

// RenderDashboard writes the admin dashboard as a standalone HTML page
func RenderDashboard(w io.Writer, d aggregate.Dashboard) error {
	page := components.NewPage()
	page.PageTitle = PageTitle
	page.AddCharts(
		profileChart(d.BehaviorProfile),
		frequencyChart(d.BehaviorFrequency),
		delayScatter(d.ViolationDelayPairs),
		awarenessChart(d.AwarenessByIncome),
		medicalPie(d.MedicalCostIncidence),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	return nil
}

func profileChart(points []aggregate.ProfilePoint) *charts.Radar {
	indicators := make([]*opts.Indicator, 0, len(points))
	values := make([]float64, 0, len(points))
	for _, p := range points {
		indicators = append(indicators, &opts.Indicator{Name: p.Label, Max: float32(p.FullMark)})
		values = append(values, p.Mean)
	}

	radar := charts.NewRadar()
	radar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Civic Behaviour Profile",
			Subtitle: "Mean self-reported frequency (1 = Never, 5 = Frequently)",
		}),
		charts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator:   indicators,
			SplitNumber: models.LikertMax,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	radar.AddSeries("Mean score", []opts.RadarData{{Name: "Mean score", Value: values}})
	return radar
}

func frequencyChart(hs []aggregate.Histogram) *charts.Bar {
	labels := make([]string, 0, len(hs))
	for _, h := range hs {
		labels = append(labels, h.Label)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Behaviour Frequency Distribution"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)
	bar.SetXAxis(labels)

	for v := models.LikertMin; v <= models.LikertMax; v++ {
		items := make([]opts.BarData, 0, len(hs))
		for _, h := range hs {
			items = append(items, opts.BarData{Value: h.Counts[v-1]})
		}
		bar.AddSeries(fmt.Sprintf("Score %d", v), items, charts.WithBarChartOpts(opts.BarChart{Stack: "freq"}))
	}
	return bar
}

func delayScatter(pairs []aggregate.ScorePair) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Violation Score vs. Traffic Delay"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "mean violation score",
			Min:  models.LikertMin,
			Max:  models.LikertMax,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "delay (min)",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	items := make([]opts.ScatterData, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, opts.ScatterData{Value: []interface{}{p.Score, p.DelayMinutes}})
	}
	scatter.AddSeries("Respondents", items)
	return scatter
}

func awarenessChart(groups []aggregate.IncomeAwareness) *charts.Bar {
	names := make([]string, 0, len(groups))
	fully := make([]opts.BarData, 0, len(groups))
	partially := make([]opts.BarData, 0, len(groups))
	not := make([]opts.BarData, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
		fully = append(fully, opts.BarData{Value: g.Fully})
		partially = append(partially, opts.BarData{Value: g.Partially})
		not = append(not, opts.BarData{Value: g.Not})
	}

	stack := charts.WithBarChartOpts(opts.BarChart{Stack: "awareness"})

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Program Awareness by Income Group"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)
	bar.SetXAxis(names).
		AddSeries("Fully Aware", fully, stack).
		AddSeries("Partially Aware", partially, stack).
		AddSeries("Not Aware", not, stack)
	return bar
}

func medicalPie(incidence int) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Medical Cost Incidence",
			Subtitle: fmt.Sprintf("%d%% report medical expenses", incidence),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)
	pie.AddSeries("Respondents", []opts.PieData{
		{Name: "Reported expense", Value: incidence},
		{Name: "No expense", Value: 100 - incidence},
	}).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}%"}),
	)
	return pie
}
