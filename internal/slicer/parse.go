package slicer

import (
	"regexp"
	"strings"

	"github.com/hupe1980/slicelog/internal/record"
)

// Label patterns in the slicer's --info output. Values never span lines.
var (
	filamentColorRe = regexp.MustCompile(`Filament Color:[ \t]*(.*)`)
	filamentUsedRe  = regexp.MustCompile(`Filament Used:[ \t]*([\d.]+) mm`)
	printTimeRe     = regexp.MustCompile(`Estimated Print Time:[ \t]*(.*)`)
)

// Parse builds a record for fileName from the slicer's text output. Each
// field takes the first match of its label; missing labels yield
// record.NotAvailable.
func Parse(fileName, output string) record.Record {
	r := record.New(fileName)

	if v, ok := firstMatch(filamentColorRe, output); ok {
		r.FilamentColor = v
	}

	if v, ok := firstMatch(filamentUsedRe, output); ok {
		r.FilamentMM = v
	}

	if v, ok := firstMatch(printTimeRe, output); ok {
		r.PrintTime = v
	}

	return r
}

func firstMatch(re *regexp.Regexp, output string) (string, bool) {
	m := re.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}

	return strings.TrimRight(m[1], " \t\r"), true
}
