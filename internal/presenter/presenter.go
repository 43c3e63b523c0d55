// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"
	"github.com/wneessen/go-moonphase"
	"golang.org/x/text/language"

	"github.com/wneessen/weathermap/internal/vartype"
	"github.com/wneessen/weathermap/internal/weather"
)

const panelTemplate = `<b>{{loc "location"}}:</b> {{.Location}} {{.Icon}}<br>
<b>{{loc "temperature"}}:</b> {{.Temperature}}<br>
<b>{{loc "weather"}}:</b> {{.Description}}<br>
<b>{{loc "humidity"}}:</b> {{.Humidity}}<br>
<b>{{loc "windspeed"}}:</b> {{.WindSpeed}}<br>
<b>{{loc "pressure"}}:</b> {{.Pressure}}<br>
<b>{{loc "sunrise"}}:</b> {{.Sunrise}}<br>
<b>{{loc "sunset"}}:</b> {{.Sunset}}<br>
<b>{{loc "moonphase"}}:</b> {{.MoonPhase}} {{.MoonIcon}}<br>
<hr>
<b>{{loc "forecast"}}:</b><br>
{{- range $i, $day := .Forecast}}{{if $i}}<br>{{end}}
<b>{{$day.Date}}:</b> {{$day.Temperature}}, {{$day.Description}} {{$day.Icon}}
{{- end}}
`

const popupTemplate = `<b>{{loc "location"}}:</b> {{.Location}} {{.Icon}}`

var ErrNoConditions = errors.New("current conditions are required")

// Input holds everything needed to render the info panel of one location.
type Input struct {
	Label      string
	Conditions *weather.Conditions
	Forecast   []weather.Daily
	Location   *time.Location
}

// Payload is the rendered markup of the info panel and the marker popup.
type Payload struct {
	Panel string `json:"panel"`
	Popup string `json:"popup"`
	Icon  string `json:"icon"`
}

type Presenter struct {
	localizer *spreak.Localizer
	humanizer *humanize.Humanizer
	panel     *template.Template
	popup     *template.Template
}

type panelData struct {
	Location    string
	Icon        string
	Temperature string
	Description string
	Humidity    string
	WindSpeed   string
	Pressure    string
	Sunrise     string
	Sunset      string
	MoonPhase   string
	MoonIcon    string
	Forecast    []forecastLine
}

type forecastLine struct {
	Date        string
	Temperature string
	Description string
	Icon        string
}

func New(localizer *spreak.Localizer, lang language.Tag) (*Presenter, error) {
	if localizer == nil {
		return nil, errors.New("localizer is required")
	}
	collection, err := humanize.New(humanize.WithLocale(de.New()))
	if err != nil {
		return nil, fmt.Errorf("failed to create humanizer collection: %w", err)
	}

	pres := &Presenter{
		localizer: localizer,
		humanizer: collection.CreateHumanizer(lang),
	}
	funcs := template.FuncMap{"loc": pres.loc}

	pres.panel, err = template.New("panel").Funcs(funcs).Parse(panelTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse panel template: %w", err)
	}
	pres.popup, err = template.New("popup").Funcs(funcs).Parse(popupTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse popup template: %w", err)
	}
	return pres, nil
}

// Render builds the panel and popup markup for in. The same input always renders the same
// payload.
func (p *Presenter) Render(in Input) (Payload, error) {
	data, err := p.buildData(in)
	if err != nil {
		return Payload{}, err
	}

	var panel, popup bytes.Buffer
	if err = p.panel.Execute(&panel, data); err != nil {
		return Payload{}, fmt.Errorf("failed to render panel template: %w", err)
	}
	if err = p.popup.Execute(&popup, data); err != nil {
		return Payload{}, fmt.Errorf("failed to render popup template: %w", err)
	}

	return Payload{Panel: panel.String(), Popup: popup.String(), Icon: data.Icon}, nil
}

// RenderText renders in as aligned plain text lines.
func (p *Presenter) RenderText(in Input) (string, error) {
	data, err := p.buildData(in)
	if err != nil {
		return "", err
	}

	rows := [][2]string{
		{p.loc("location"), data.Location + " " + data.Icon},
		{p.loc("temperature"), data.Temperature},
		{p.loc("weather"), data.Description},
		{p.loc("humidity"), data.Humidity},
		{p.loc("windspeed"), data.WindSpeed},
		{p.loc("pressure"), data.Pressure},
		{p.loc("sunrise"), data.Sunrise},
		{p.loc("sunset"), data.Sunset},
		{p.loc("moonphase"), data.MoonPhase + " " + data.MoonIcon},
	}
	width := 0
	for _, row := range rows {
		width = max(width, runewidth.StringWidth(row[0]))
	}

	buf := strings.Builder{}
	for _, row := range rows {
		buf.WriteString(runewidth.FillRight(row[0]+":", width+2))
		buf.WriteString(row[1])
		buf.WriteString("\n")
	}
	buf.WriteString(p.loc("forecast") + ":\n")
	for _, line := range data.Forecast {
		_, _ = fmt.Fprintf(&buf, "  %s%s: %s, %s\n", IconWithSpace(line.Icon), line.Date, line.Temperature,
			line.Description)
	}
	return buf.String(), nil
}

// IconWithSpace pads an emoji icon to a fixed display width of three cells.
func IconWithSpace(icon string) string {
	width := runewidth.StringWidth(icon)
	if width >= 3 {
		return icon
	}
	return icon + strings.Repeat(" ", 3-width)
}

func (p *Presenter) buildData(in Input) (panelData, error) {
	cond := in.Conditions
	if cond == nil {
		return panelData{}, ErrNoConditions
	}
	loc := in.Location
	if loc == nil {
		loc = time.Local
	}

	phase := moonphase.New(cond.Time).PhaseName()
	data := panelData{
		Location:    in.Label,
		Icon:        iconFor(cond.IconKey, cond.Description),
		Temperature: formatFloat(cond.Temperature) + cond.Units.Temperature,
		Description: cond.Description,
		Humidity:    p.variable(cond.Humidity, cond.Units.Humidity),
		WindSpeed:   p.variable(cond.WindSpeed, " "+cond.Units.WindSpeed),
		Pressure:    p.variable(cond.Pressure, " "+cond.Units.Pressure),
		Sunrise:     p.humanizer.FormatTime(cond.Sunrise.In(loc), humanize.TimeFormat),
		Sunset:      p.humanizer.FormatTime(cond.Sunset.In(loc), humanize.TimeFormat),
		MoonPhase:   p.loc(phase),
		MoonIcon:    MoonPhaseIcon[phase],
		Forecast:    make([]forecastLine, 0, len(in.Forecast)),
	}
	for _, day := range in.Forecast {
		data.Forecast = append(data.Forecast, forecastLine{
			Date:        p.humanizer.FormatTime(day.Date, humanize.DateFormat),
			Temperature: formatFloat(day.Sample.Temperature) + cond.Units.Temperature,
			Description: day.Sample.Description,
			Icon:        iconFor(day.Sample.IconKey, day.Sample.Description),
		})
	}
	return data, nil
}

func (p *Presenter) loc(val string) string {
	val = strings.ToLower(val)
	if raw, ok := i18nVars[val]; ok {
		return p.localizer.Get(raw)
	}
	return val
}

func (p *Presenter) variable(val vartype.VarFloat64, unit string) string {
	if !val.IsSet() {
		return p.loc("unsupported")
	}
	return formatFloat(val.Value()) + unit
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
