package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/cwbudde/algo-synth/dsp/spectrum"
)

const (
	meterInterval = 100 * time.Millisecond
	meterFloorDB  = -60.0
	meterMaxWidth = 60
)

// meter draws a one-line peak meter on a terminal.
type meter struct {
	w      io.Writer
	e      *engine
	width  int
	holdDB float64
}

// newMeter returns nil when f is not a terminal.
func newMeter(f *os.File, e *engine) *meter {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	width := meterMaxWidth
	if cols, _, err := term.GetSize(fd); err == nil && cols-20 < width {
		width = max(cols-20, 10)
	}
	return &meter{w: f, e: e, width: width, holdDB: math.Inf(-1)}
}

func (m *meter) run(done <-chan struct{}) {
	ticker := time.NewTicker(meterInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fmt.Fprint(m.w, "\r"+m.line(spectrum.LevelDB(m.e.Peak())))
		case <-done:
			fmt.Fprintln(m.w)
			return
		}
	}
}

// line renders level as a bar between meterFloorDB and 0 dBFS.
func (m *meter) line(levelDB float64) string {
	m.holdDB = math.Max(levelDB, m.holdDB-1)

	frac := 1 - levelDB/meterFloorDB
	if math.IsInf(levelDB, -1) || frac < 0 {
		frac = 0
	}
	filled := int(math.Round(min(frac, 1) * float64(m.width)))

	label := "  -inf dBFS"
	if !math.IsInf(m.holdDB, -1) {
		label = fmt.Sprintf("%6.1f dBFS", m.holdDB)
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(" ", m.width-filled) + "]" + label
}
