// Package report builds the weekly activity report: a QuickChart bar chart of
// minutes per day and a marketing joke.
package report

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/dmitrijs2005/retailmedia/internal/api"
	"github.com/dmitrijs2005/retailmedia/internal/common"
	"github.com/dmitrijs2005/retailmedia/internal/netx"
)

const QuickChartURL = "https://quickchart.io/chart?c="

const (
	datasetLabel = "Minutes Spent on Site"
	chartTitle   = "Your Weekly Activity (Minutes)"
)

// MockMessage is returned when mail is simulated.
const MockMessage = "Mock email sent (Check server console). Configure SMTP_USER/SMTP_PASS for real emails."

var DefaultLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var Jokes = []string{
	"Why did the marketer break up with the calendar? Because their dates were always expiring! 😂",
	"I told my computer I needed a break, and now it won't stop sending me Kit-Kat ads. 🍫",
	"SEO is like a gym membership: you have to keep going to see results! 💪",
	"Why don't marketers like trampolines? They're afraid of high bounce rates! 📉",
	"What is a social media manager's favorite snack? Insta-graham crackers! 🍪",
}

// Chart.js v2 configuration, field order as rendered.
type ChartConfig struct {
	Type    string       `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string `json:"label"`
	Data            []int  `json:"data"`
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	BorderWidth     int    `json:"borderWidth"`
}

type ChartOptions struct {
	Title  ChartTitle  `json:"title"`
	Scales ChartScales `json:"scales"`
}

type ChartTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type ChartScales struct {
	YAxes []Axis `json:"yAxes"`
}

type Axis struct {
	Ticks Ticks `json:"ticks"`
}

type Ticks struct {
	BeginAtZero bool `json:"beginAtZero"`
}

// Normalize fills in the default week labels and zero data for whatever the
// request left out.
func Normalize(u *api.UsageData) api.UsageData {
	out := api.UsageData{}
	if u != nil {
		out = *u
	}
	if out.Labels == nil {
		out.Labels = append([]string(nil), DefaultLabels...)
	}
	if out.Data == nil {
		out.Data = make([]int, len(DefaultLabels))
	}
	return out
}

func NewChartConfig(u api.UsageData) ChartConfig {
	return ChartConfig{
		Type: "bar",
		Data: ChartData{
			Labels: u.Labels,
			Datasets: []Dataset{{
				Label:           datasetLabel,
				Data:            u.Data,
				BackgroundColor: "rgba(59, 130, 246, 0.5)",
				BorderColor:     "rgb(59, 130, 246)",
				BorderWidth:     1,
			}},
		},
		Options: ChartOptions{
			Title:  ChartTitle{Display: true, Text: chartTitle},
			Scales: ChartScales{YAxes: []Axis{{Ticks: Ticks{BeginAtZero: true}}}},
		},
	}
}

// ChartURL renders cfg as compact JSON and embeds it in a QuickChart link.
func ChartURL(cfg ChartConfig) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cfg); err != nil {
		return "", err
	}
	return QuickChartURL + netx.EncodeURIComponent(strings.TrimSuffix(buf.String(), "\n")), nil
}

func RandomJoke() string {
	return Jokes[common.RandIntn(len(Jokes))]
}
