package output_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/ohhconv/internal/ohh"
	"github.com/lox/ohhconv/internal/output"
	"github.com/lox/ohhconv/internal/phh"
	"github.com/lox/ohhconv/internal/tables"
)

func newHand(id, table string, at time.Time) *ohh.Hand {
	h := ohh.NewHand(id, "PPC")
	h.TableName = table
	h.TableHandle = tables.Handle(table)
	h.GameType = ohh.GameHoldem
	h.BetLimit = ohh.BetLimit{BetType: ohh.BetNoLimit}
	h.BigBlind = decimal.NewFromInt(2)
	h.StartTime = at
	h.StartDateUTC = at.UTC().Format("2006-01-02T15:04:05Z")
	h.Players = []ohh.Player{{ID: 1, Seat: 1, Name: "Alice", Display: "Alice", StartingStack: decimal.NewFromInt(100)}}
	return h
}

func TestSanitizeTableName(t *testing.T) {
	assert.Equal(t, "a_b_c_d_e_f_g_h_i_j", output.SanitizeTableName(`a<b>c:d"e/f\g|h?i*j`))
	assert.Equal(t, "Main Table", output.SanitizeTableName("Main Table"))
}

func TestParseFormat(t *testing.T) {
	f, err := output.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, output.FormatOHH, f)

	f, err = output.ParseFormat("PHH")
	require.NoError(t, err)
	assert.Equal(t, output.FormatPHH, f)

	_, err = output.ParseFormat("xml")
	assert.Error(t, err)
}

func TestFileNameUsesLatestHandInZone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	registry := tables.NewRegistry()
	registry.Record(newHand("1-1", "High/Low", time.Date(2020, 5, 13, 2, 0, 0, 0, time.UTC)))
	table, _ := registry.Get("High/Low")

	w := output.NewWriter(output.Options{Prefix: "HHC", Location: loc})
	assert.Equal(t, "HHC-2020-05-12-High_Low.ohh", w.FileName(table))

	w = output.NewWriter(output.Options{Prefix: "HHC", Location: loc, Format: output.FormatPHH})
	assert.Equal(t, "HHC-2020-05-12-High_Low.phhs", w.FileName(table))
}

func TestFileNameFallsBackToClock(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2021, 3, 4, 12, 0, 0, 0, time.UTC)).MustWait(context.Background())

	registry := tables.NewRegistry()
	table := registry.Register("Empty")

	w := output.NewWriter(output.Options{Prefix: "X", Clock: clock})
	assert.Equal(t, "X-2021-03-04-Empty.ohh", w.FileName(table))
}

func TestWriteTableOHH(t *testing.T) {
	dir := t.TempDir()
	registry := tables.NewRegistry()
	registry.Record(newHand("1-1", "Main", time.Date(2020, 5, 12, 9, 0, 0, 0, time.UTC)))
	registry.Record(newHand("1-2", "Main", time.Date(2020, 5, 12, 10, 0, 0, 0, time.UTC)))
	registry.Register("Idle")

	w := output.NewWriter(output.Options{Dir: dir, Prefix: "HHC", Logger: zerolog.Nop()})
	results, err := w.WriteAll(registry)
	require.NoError(t, err)
	require.Len(t, results, 1, "tables without hands are not written")

	res := results[0]
	assert.Equal(t, filepath.Join(dir, "HHC-2020-05-12-Main.ohh"), res.Path)
	assert.Equal(t, 2, res.Written)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	records := strings.Split(strings.TrimSuffix(string(data), "\n\n"), "\n\n")
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.True(t, strings.HasPrefix(rec, `{"ohh":`))
	}

	f, err := os.Open(res.Path)
	require.NoError(t, err)
	defer f.Close()
	hands, err := ohh.Decode(f)
	require.NoError(t, err)
	require.Len(t, hands, 2)
	assert.Equal(t, "1-1", hands[0].GameNumber)
	assert.Equal(t, "1-2", hands[1].GameNumber)
}

func TestWriteTablePHHSkipsUnsupported(t *testing.T) {
	dir := t.TempDir()
	registry := tables.NewRegistry()
	registry.Record(newHand("1-1", "Main", time.Date(2020, 5, 12, 9, 0, 0, 0, time.UTC)))
	unsupported := newHand("1-2", "Main", time.Date(2020, 5, 12, 10, 0, 0, 0, time.UTC))
	unsupported.BetLimit.BetType = ohh.BetPotLimit
	registry.Record(unsupported)
	table, _ := registry.Get("Main")

	w := output.NewWriter(output.Options{Dir: dir, Prefix: "HHC", Format: output.FormatPHH})
	res, err := w.WriteTable(table)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Written)
	assert.Equal(t, 1, res.Skipped)

	f, err := os.Open(res.Path)
	require.NoError(t, err)
	defer f.Close()
	hands, err := phh.DecodeSession(f)
	require.NoError(t, err)
	require.Len(t, hands, 1)
	assert.Equal(t, "1-1", hands[0].HandID)
}
