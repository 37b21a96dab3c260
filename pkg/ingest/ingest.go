// Package ingest loads storm-track CSVs into the engine's track store. It
// tolerates the column-name zoo of multi-agency best-track exports and
// applies the dataset-cleaning heuristics the visualization depends on:
// longitude range normalization, zero-wind-as-missing detection and
// placeholder (0,0) removal.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/stormspiral/stormspiral/pkg/stormengine"
)

// Candidate header names per logical column, checked case-insensitively in
// order. Wind candidates cover the reporting agencies that appear in
// IBTrACS-style exports.
var (
	latCandidates  = []string{"lat", "latitude", "lat_deg", "lat_dd"}
	lonCandidates  = []string{"lon", "longitude", "lon_deg", "lon_dd", "lng"}
	timeCandidates = []string{"datetime", "iso_time", "time"}
	nameCandidates = []string{"name"}
	idCandidates   = []string{"id", "sid"}
	windCandidates = []string{
		"wind_knots", "wmo_wind", "usa_wind", "tokyo_wind", "cma_wind",
		"bom_wind", "reunion_wind", "nadi_wind", "wellington_wind",
	}
)

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Options tunes the cleaning heuristics. The ratio thresholds are data-set
// conventions carried over from the reference datasets, not derived values;
// override them only when a source is known to behave differently.
type Options struct {
	// ZeroWindIsMissing forces wind==0 to be treated as missing.
	ZeroWindIsMissing bool
	// ZeroWindRatio auto-enables the above when more of the non-missing
	// winds than this fraction are exactly zero.
	ZeroWindRatio float64
	// PlaceholderRatio drops exact (0,0) positions when they exceed this
	// fraction of all rows.
	PlaceholderRatio float64
	// DefaultWind substitutes for missing wind values.
	DefaultWind float64
}

func DefaultOptions() Options {
	return Options{
		ZeroWindRatio:    0.6,
		PlaceholderRatio: 0.005,
	}
}

type row struct {
	id, name string
	time     time.Time
	lat, lon float64
	wind     float64
	hasWind  bool
}

// LoadCSV reads and cleans the file at path.
func LoadCSV(path string, opts Options) (*stormengine.TrackStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	store, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// Read parses CSV data into a track store. It returns an error only for an
// unreadable header or absent lat/lon columns; malformed rows are dropped.
func Read(r io.Reader, opts Options) (*stormengine.TrackStore, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	latIdx := findColumn(header, latCandidates)
	lonIdx := findColumn(header, lonCandidates)
	if latIdx < 0 || lonIdx < 0 {
		return nil, errors.New("no latitude/longitude columns found")
	}
	timeIdx := findColumn(header, timeCandidates)
	nameIdx := findColumn(header, nameCandidates)
	idIdx := findColumn(header, idCandidates)
	windIdx := findColumn(header, windCandidates)

	var rows []row
	dropped := 0
	for i := 0; ; i++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			dropped++
			continue
		}
		lat, ok1 := parseFloat(field(rec, latIdx))
		lon, ok2 := parseFloat(field(rec, lonIdx))
		if !ok1 || !ok2 {
			// covers unparseable rows and the units row some exports
			// place directly under the header
			dropped++
			continue
		}
		rw := row{
			id:   field(rec, idIdx),
			name: field(rec, nameIdx),
			lat:  lat,
			lon:  lon,
		}
		if rw.id == "" {
			name := rw.name
			if name == "" {
				name = "storm"
			}
			rw.id = fmt.Sprintf("%s_%d", name, i)
		}
		if rw.name == "" {
			rw.name = rw.id
		}
		if w, ok := parseFloat(field(rec, windIdx)); ok {
			rw.wind = w
			rw.hasWind = true
		}
		rw.time = parseTime(field(rec, timeIdx))
		rows = append(rows, rw)
	}
	if dropped > 0 {
		log.Printf("ingest: dropped %d unparseable rows", dropped)
	}

	normalizeLongitudes(rows)
	applyZeroWind(rows, opts)
	rows = dropPlaceholders(rows, opts)

	return buildStore(rows, opts), nil
}

// normalizeLongitudes remaps 0..360 datasets into -180..180 when any value
// exceeds 180.
func normalizeLongitudes(rows []row) {
	maxLon := math.Inf(-1)
	for _, r := range rows {
		if r.lon > maxLon {
			maxLon = r.lon
		}
	}
	if maxLon <= 180 {
		return
	}
	for i := range rows {
		rows[i].lon = stormengine.NormalizeLon(rows[i].lon)
	}
	log.Printf("ingest: normalized longitudes from 0..360 to -180..180 (max before: %.1f)", maxLon)
}

// applyZeroWind treats wind==0 as missing, either forced or when zeros
// dominate the column, which in practice means the agency did not report.
func applyZeroWind(rows []row, opts Options) {
	nonMissing, zeros := 0, 0
	for _, r := range rows {
		if r.hasWind {
			nonMissing++
			if r.wind == 0 {
				zeros++
			}
		}
	}
	if zeros == 0 {
		return
	}
	force := opts.ZeroWindIsMissing
	auto := nonMissing > 0 && float64(zeros)/float64(nonMissing) > opts.ZeroWindRatio
	if !force && !auto {
		return
	}
	for i := range rows {
		if rows[i].hasWind && rows[i].wind == 0 {
			rows[i].hasWind = false
		}
	}
	if force {
		log.Printf("ingest: converting %d zero wind values to missing (forced)", zeros)
	} else {
		log.Printf("ingest: auto-converted %d zero wind values to missing (heuristic)", zeros)
	}
}

// dropPlaceholders removes exact (0,0) rows when they are frequent enough to
// be a fill value rather than a real fix off the Gulf of Guinea.
func dropPlaceholders(rows []row, opts Options) []row {
	zero := 0
	for _, r := range rows {
		if r.lat == 0 && r.lon == 0 {
			zero++
		}
	}
	if zero == 0 || len(rows) == 0 {
		return rows
	}
	if float64(zero)/float64(len(rows)) <= opts.PlaceholderRatio {
		log.Printf("ingest: warning - %d points at exact (0,0) found; leaving them in place", zero)
		return rows
	}
	kept := rows[:0]
	for _, r := range rows {
		if r.lat == 0 && r.lon == 0 {
			continue
		}
		kept = append(kept, r)
	}
	log.Printf("ingest: dropped %d placeholder (0,0) points (%.2f%%)", zero, 100*float64(zero)/float64(len(rows)))
	return kept
}

// buildStore groups rows into tracks in first-seen order. Row order within a
// track is preserved; the engine treats it as chronological.
func buildStore(rows []row, opts Options) *stormengine.TrackStore {
	store := stormengine.NewTrackStore()
	tracks := make(map[string]*stormengine.Track)
	var order []string
	for _, r := range rows {
		tr, ok := tracks[r.id]
		if !ok {
			tr = &stormengine.Track{ID: r.id, Name: r.name}
			tracks[r.id] = tr
			order = append(order, r.id)
		}
		wind := opts.DefaultWind
		if r.hasWind {
			wind = r.wind
		}
		tr.Add(stormengine.Observation{
			Time: r.time,
			Lat:  r.lat,
			Lon:  r.lon,
			Wind: wind,
		})
	}
	for _, id := range order {
		store.Append(tracks[id])
	}
	return store
}

func findColumn(header []string, candidates []string) int {
	for _, cand := range candidates {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), cand) {
				return i
			}
		}
	}
	return -1
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
