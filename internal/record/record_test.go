package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumns_Order(t *testing.T) {
	assert.Equal(t, []string{
		"File Name", "Filament Color", "Filament Amount (mm)", "Estimated Print Time",
	}, Columns())
}

func TestNew_DefaultsToSentinel(t *testing.T) {
	r := New("part.3mf")

	assert.Equal(t, "part.3mf", r.FileName)
	assert.Equal(t, NotAvailable, r.FilamentColor)
	assert.Equal(t, NotAvailable, r.FilamentMM)
	assert.Equal(t, NotAvailable, r.PrintTime)
}

func TestRecord_GetMatchesValues(t *testing.T) {
	r := Record{FileName: "a.3mf", FilamentColor: "Red", FilamentMM: "12.5", PrintTime: "1h"}

	for i, col := range Columns() {
		v, ok := r.Get(col)
		assert.True(t, ok, col)
		assert.Equal(t, r.Values()[i], v, col)
	}

	_, ok := r.Get("Nozzle")
	assert.False(t, ok)
}

func TestRecord_String(t *testing.T) {
	r := Record{FileName: "part.3mf", FilamentColor: "Red", FilamentMM: "1200.5", PrintTime: "1h 23m"}

	assert.Equal(t,
		`{"File Name": "part.3mf", "Filament Color": "Red", "Filament Amount (mm)": "1200.5", "Estimated Print Time": "1h 23m"}`,
		r.String())
}
