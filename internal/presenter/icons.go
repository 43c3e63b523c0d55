// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import "strings"

// DefaultIcon is used for descriptions that match none of the icon rules.
const DefaultIcon = "🌍"

type iconRule struct {
	keyword string
	icon    string
}

// iconRules are evaluated in order, the first matching keyword wins.
var iconRules = []iconRule{
	{"clear", "☀️"},
	{"cloud", "☁️"},
	{"rain", "🌧️"},
	{"thunderstorm", "⚡"},
	{"snow", "❄️"},
	{"mist", "🌫️"},
	{"fog", "🌫️"},
}

// Icon maps a weather description to an emoji icon.
func Icon(description string) string {
	description = strings.ToLower(description)
	for _, rule := range iconRules {
		if strings.Contains(description, rule.keyword) {
			return rule.icon
		}
	}
	return DefaultIcon
}

func iconFor(key, description string) string {
	if key == "" {
		return Icon(description)
	}
	return Icon(key)
}
