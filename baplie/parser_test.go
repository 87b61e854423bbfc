package baplie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleRecord(t *testing.T) {
	manifest := "EQD+CN+MSKU1234567+22G0'LOC+147+0410102:'"

	records := Parse(manifest, ParseOptions{Direction: Discharge})

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "MSKU1234567", rec.ContainerNo)
	assert.Equal(t, "22G0", rec.ISOType)
	require.True(t, rec.HasPosition())
	assert.Equal(t, 41, *rec.Bay)
	assert.Equal(t, 1, *rec.Row)
	assert.Equal(t, 2, *rec.Tier)
	assert.Nil(t, rec.WeightKg)
}

func TestParseMultipleRecordsPreservesOrder(t *testing.T) {
	manifest := "EQD+CN+AAAU1111111+22G0'LOC+147+0010204'" +
		"EQD+CN+BBBU2222222+42G0'LOC+147+0020406'" +
		"EQD+CN+CCCU3333333+22G0'LOC+147+0030608'"

	records := Parse(manifest, ParseOptions{Direction: Load})

	require.Len(t, records, 3)
	assert.Equal(t, "AAAU1111111", records[0].ContainerNo)
	assert.Equal(t, "BBBU2222222", records[1].ContainerNo)
	assert.Equal(t, "CCCU3333333", records[2].ContainerNo)
}

func TestParseDeterministic(t *testing.T) {
	manifest := "EQD+CN+AAAU1111111+22G0'LOC+147+0010204'" +
		"MEA+AAE+G+KGM:21500'" +
		"EQD+CN+BBBU2222222+42G0'LOC+147+0020406'"
	opts := ParseOptions{Direction: Discharge}

	assert.Equal(t, Parse(manifest, opts), Parse(manifest, opts))
}

func TestParseShortPositionCode(t *testing.T) {
	// A location code shorter than 7 characters leaves the position
	// unset; the record is still emitted.
	manifest := "EQD+CN+MSKU1234567+22G0'LOC+147+04101'"

	records := Parse(manifest, ParseOptions{Direction: Discharge})

	require.Len(t, records, 1)
	assert.False(t, records[0].HasPosition())
}

func TestParseGrossWeight(t *testing.T) {
	manifest := "EQD+CN+MSKU1234567+22G0'LOC+147+0410102'MEA+AAE+G+KGM:24000.5'"

	records := Parse(manifest, ParseOptions{Direction: Discharge})

	require.Len(t, records, 1)
	require.NotNil(t, records[0].WeightKg)
	assert.Equal(t, 24000.5, *records[0].WeightKg)
}

func TestParseMalformedSegmentsSkipped(t *testing.T) {
	manifest := "GARBAGE'EQD+CN+MSKU1234567+22G0'LOC'LOC+147'LOC+147+0410102'MEA'MEA+AAE'"

	records := Parse(manifest, ParseOptions{Direction: Discharge})

	require.Len(t, records, 1)
	assert.True(t, records[0].HasPosition())
}

func TestParseRecordWithoutContainerNumberDropped(t *testing.T) {
	manifest := "EQD+CN++22G0'LOC+147+0410102'"

	records := Parse(manifest, ParseOptions{Direction: Discharge})

	assert.Empty(t, records)
}

func TestParsePortFilter(t *testing.T) {
	manifest := "EQD+CN+AAAU1111111+22G0'LOC+147+0010204'LOC+11+BRSSZ'" +
		"EQD+CN+BBBU2222222+42G0'LOC+147+0020406'LOC+11+NLRTM'" +
		"EQD+CN+CCCU3333333+22G0'LOC+147+0030608'"

	t.Run("filter mode keeps only marker matches", func(t *testing.T) {
		records := Parse(manifest, ParseOptions{Direction: Discharge, PortCode: "BRSSZ"})
		require.Len(t, records, 1)
		assert.Equal(t, "AAAU1111111", records[0].ContainerNo)
	})

	t.Run("fully positioned record without marker is excluded", func(t *testing.T) {
		records := Parse(manifest, ParseOptions{Direction: Discharge, PortCode: "USNYC"})
		assert.Empty(t, records)
	})

	t.Run("filter disabled keeps all records", func(t *testing.T) {
		records := Parse(manifest, ParseOptions{Direction: Discharge})
		assert.Len(t, records, 3)
	})

	t.Run("load direction uses qualifier 9", func(t *testing.T) {
		loadManifest := "EQD+CN+AAAU1111111+22G0'LOC+147+0010204'LOC+9+BRSSZ'" +
			"EQD+CN+BBBU2222222+42G0'LOC+147+0020406'LOC+11+BRSSZ'"
		records := Parse(loadManifest, ParseOptions{Direction: Load, PortCode: "BRSSZ"})
		require.Len(t, records, 1)
		assert.Equal(t, "AAAU1111111", records[0].ContainerNo)
	})
}

func TestParseDirection(t *testing.T) {
	d, ok := ParseDirection("LOAD")
	assert.True(t, ok)
	assert.Equal(t, Load, d)

	d, ok = ParseDirection("DISCHARGE")
	assert.True(t, ok)
	assert.Equal(t, Discharge, d)

	_, ok = ParseDirection("TRANSSHIP")
	assert.False(t, ok)
	_, ok = ParseDirection("")
	assert.False(t, ok)
}
