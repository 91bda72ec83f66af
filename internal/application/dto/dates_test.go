package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	loc := time.FixedZone("CLT", -3*3600)

	got, err := ParseDay("2026-10-19", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, loc), *got)

	got, err = ParseDay("  ", loc)
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseDay("19/10/2026", loc)
	assert.Error(t, err)
}

func TestParseDateTime(t *testing.T) {
	loc := time.UTC
	got, err := ParseDateTime("2026-10-19T14:30:00-03:00", loc)
	require.NoError(t, err)
	assert.Equal(t, 17, got.UTC().Hour())

	got, err = ParseDateTime("2026-10-19", loc)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Hour())
}

func TestPageRequest_Normalize(t *testing.T) {
	p := PageRequest{Page: 0, PerPage: 37}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 25, p.PerPage)

	p = PageRequest{Page: 3, PerPage: 100}
	p.Normalize()
	assert.Equal(t, 100, p.Limit())
	assert.Equal(t, 200, p.Offset())

	assert.Equal(t, 4, NewPageResponse(PageRequest{Page: 1, PerPage: 25}, 76).TotalPages)
	assert.Equal(t, 0, NewPageResponse(PageRequest{Page: 1, PerPage: 25}, 0).TotalPages)
}
