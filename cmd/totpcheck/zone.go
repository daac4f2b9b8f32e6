// Copyright (C) 2019 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"strings"
	"time"
)

// zoneChoices are the entries of the interactive time zone menu.
var zoneChoices = []struct {
	key, label, name string
}{
	{"1", "UTC (default)", "UTC"},
	{"2", "Buenos Aires (America/Argentina/Buenos_Aires)", "America/Argentina/Buenos_Aires"},
	{"3", "System local", "Local"},
}

// zoneForChoice returns the zone name for a menu answer. Anything that is not
// a menu key selects UTC.
func zoneForChoice(answer string) string {
	answer = strings.TrimSpace(answer)
	for _, c := range zoneChoices {
		if c.key == answer {
			return c.name
		}
	}
	return "UTC"
}

// loadZone resolves a zone name. "UTC" and "Local" are matched without regard
// to case; other names are looked up in the IANA database.
func loadZone(name string) (*time.Location, error) {
	switch {
	case name == "", strings.EqualFold(name, "UTC"):
		return time.UTC, nil
	case strings.EqualFold(name, "Local"):
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
