package utc_test

import (
	"fmt"
	"github.com/davejbax/go-utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"slices"
	"testing"
	"time"
)

const second = int64(time.Second)

func TestNew_Normalizes(t *testing.T) {
	cases := []struct {
		jdn, nsOfDay               int64
		expectedJDN, expectedNanos int64
	}{
		{0, 0, 0, 0},
		{10, utc.NanosPerDay - 1, 10, utc.NanosPerDay - 1},
		{10, utc.NanosPerDay, 11, 0},
		{10, -1, 9, utc.NanosPerDay - 1},
		{10, -utc.NanosPerDay, 9, 0},
		{10, -utc.NanosPerDay - 1, 8, utc.NanosPerDay - 1},
		{10, 3*utc.NanosPerDay + 5, 13, 5},
		{-5, -3 * utc.NanosPerDay, -8, 0},
		{0, math.MaxInt64, math.MaxInt64 / utc.NanosPerDay, math.MaxInt64 % utc.NanosPerDay},
	}

	for _, c := range cases {
		c := c
		t.Run(fmt.Sprintf("%d,%d", c.jdn, c.nsOfDay), func(t *testing.T) {
			t.Parallel()

			ts := utc.New(c.jdn, c.nsOfDay)
			assert.Equal(t, c.expectedJDN, ts.JDN(), "New should carry whole days into the day number")
			assert.Equal(t, c.expectedNanos, ts.NanosOfDay(), "New should keep nanoseconds of day within a day")
		})
	}
}

func TestNew_NormalizationClosure(t *testing.T) {
	for jdn := int64(-3); jdn <= 3; jdn++ {
		for ns := -5 * utc.NanosPerDay; ns <= 5*utc.NanosPerDay; ns += utc.NanosPerDay/7 + 13 {
			ts := utc.New(jdn, ns)

			require.GreaterOrEqual(t, ts.NanosOfDay(), int64(0))
			require.Less(t, ts.NanosOfDay(), utc.NanosPerDay)
			require.Equal(t, jdn*utc.NanosPerDay+ns, ts.JDN()*utc.NanosPerDay+ts.NanosOfDay(), "New should not change the instant")
		}
	}
}

func TestDate(t *testing.T) {
	ts, err := utc.Date(1969, 7, 20, 20, 17, 40, 0)
	require.NoError(t, err, "Date should not return an error for a valid date")
	assert.Equal(t, int64(2440423), ts.JDN())
	assert.Equal(t, int64(73060000000000), ts.NanosOfDay())

	ts, err = utc.Date(1969, 7, 20, 24, 0, 0, 0)
	require.NoError(t, err, "Date should not range check clock fields")
	assert.Equal(t, utc.New(2440424, 0), ts, "Date should normalize an hour of 24 into the next day")

	ts, err = utc.Date(1970, 1, 1, 0, -1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, utc.New(2440587, utc.NanosPerDay-60*second), ts, "Date should normalize negative clock fields into the previous day")

	_, err = utc.Date(1969, 2, 29, 0, 0, 0, 0)
	assert.ErrorIs(t, err, utc.ErrInvalidDate, "Date should reject a day that does not exist")

	_, err = utc.Date(1969, 13, 1, 0, 0, 0, 0)
	assert.ErrorIs(t, err, utc.ErrInvalidDate, "Date should reject a month that does not exist")
}

func TestDateOffset(t *testing.T) {
	ts, err := utc.DateOffset(2021, 1, 1, 0, 30, 0, 0, 3600)
	require.NoError(t, err)
	assert.Equal(t, "2020-12-31T23:30:00Z", ts.String(), "DateOffset should subtract a positive offset")

	ts, err = utc.DateOffset(2020, 12, 31, 23, 30, 0, 0, -3600)
	require.NoError(t, err)
	assert.Equal(t, "2021-01-01T00:30:00Z", ts.String(), "DateOffset should add a negative offset")

	_, err = utc.DateOffset(2021, 2, 30, 0, 0, 0, 0, 0)
	assert.ErrorIs(t, err, utc.ErrInvalidDate)
}

func TestAccessors(t *testing.T) {
	ts, err := utc.Date(2024, 2, 29, 13, 14, 15, 16)
	require.NoError(t, err)

	year, month, day := ts.Date()
	assert.Equal(t, []int{2024, 2, 29}, []int{year, month, day})
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, 2, ts.Month())
	assert.Equal(t, 29, ts.Day())

	hour, minute, sec := ts.Clock()
	assert.Equal(t, []int{13, 14, 15}, []int{hour, minute, sec})
	assert.Equal(t, 13, ts.Hour())
	assert.Equal(t, 14, ts.Minute())
	assert.Equal(t, 15, ts.Second())
	assert.Equal(t, 16, ts.Nanosecond())

	assert.Equal(t, 5, ts.DayOfWeek(), "2024-02-29 should be a Thursday")
	assert.Equal(t, 60, ts.DayOfYear())
}

func TestDayOfWeek_Apollo(t *testing.T) {
	ts := utc.MustParse("1969-07-20T20:17:40Z")
	assert.Equal(t, 1, ts.DayOfWeek(), "1969-07-20 should be a Sunday")
}

func TestUnixEpoch(t *testing.T) {
	assert.Equal(t, utc.New(2440588, 0), utc.UnixEpoch())
	assert.Equal(t, utc.UnixEpoch(), utc.UnixEpoch(), "UnixEpoch should always return the same value")
	assert.Equal(t, int64(0), utc.UnixEpoch().Unix())
}

func TestFromUnix(t *testing.T) {
	cases := []struct {
		sec, nsec int64
		expected  utc.Timestamp
	}{
		{0, 0, utc.New(2440588, 0)},
		{-1, 0, utc.New(2440587, utc.NanosPerDay-second)},
		{0, -1, utc.New(2440587, utc.NanosPerDay-1)},
		{86400, 5, utc.New(2440589, 5)},
		{1637139912, 946030000, utc.MustParse("2021-11-17T09:05:12.94603Z")},
	}

	for _, c := range cases {
		ts := utc.FromUnix(c.sec, c.nsec)
		assert.Equal(t, c.expected, ts, "FromUnix(%d, %d) should return the correct instant", c.sec, c.nsec)

		if c.nsec >= 0 {
			assert.Equal(t, c.sec, ts.Unix(), "Unix should invert FromUnix")
		}
	}
}

func TestFromEpochSeconds(t *testing.T) {
	epoch := utc.MustParse("2000-01-01T12:00:00Z")
	assert.Equal(t, utc.MustParse("2000-01-02T12:00:01Z"), utc.FromEpochSeconds(epoch, 86401))
	assert.Equal(t, utc.MustParse("1999-12-31T11:59:59Z"), utc.FromEpochSeconds(epoch, -86401))
}

func TestTime(t *testing.T) {
	goTime := time.Date(2021, 11, 17, 9, 5, 12, 946030000, time.UTC)
	ts := utc.FromTime(goTime)
	assert.Equal(t, utc.MustParse("2021-11-17T09:05:12.94603Z"), ts, "FromTime should return the same instant")
	assert.True(t, goTime.Equal(ts.Time()), "Time should invert FromTime")

	zoned := time.Date(2021, 11, 17, 10, 5, 12, 0, time.FixedZone("UTC+1", 3600))
	assert.Equal(t, utc.MustParse("2021-11-17T09:05:12Z"), utc.FromTime(zoned), "FromTime should convert to UTC")

	before := utc.FromTime(time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "0001-01-01T00:00:00Z", before.String())
	assert.True(t, time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC).Equal(before.Time()))
}

func TestJulianDate(t *testing.T) {
	ts := utc.New(2440588, utc.NanosPerDay/2)
	assert.Equal(t, 2440588.5, ts.JulianDate())
	assert.Equal(t, ts, utc.FromJulianDate(2440588.5), "FromJulianDate should invert JulianDate")

	assert.Equal(t, utc.New(-1, utc.NanosPerDay*3/4), utc.FromJulianDate(-0.25), "FromJulianDate should floor negative day numbers")
	assert.Equal(t, 0.0, utc.Timestamp{}.JulianDate())
}

func TestNow(t *testing.T) {
	before := time.Now()
	now := utc.Now()
	after := time.Now()

	assert.False(t, now.Before(utc.FromTime(before)), "Now should not be before a time taken earlier")
	assert.False(t, now.After(utc.FromTime(after)), "Now should not be after a time taken later")
}

func TestCompare(t *testing.T) {
	a := utc.New(10, 5)
	b := utc.New(10, 6)
	c := utc.New(11, 0)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, -1, b.Compare(c), "Compare should order by day number first")
	assert.Equal(t, 0, a.Compare(utc.New(9, utc.NanosPerDay+5)), "Compare should treat normalized equal values as equal")
	assert.True(t, a.Before(c))
	assert.True(t, c.After(a))
	assert.True(t, a.Equal(utc.New(10, 5)))
	assert.False(t, a.Equal(b))

	sorted := []utc.Timestamp{c, a, b}
	slices.SortFunc(sorted, utc.Timestamp.Compare)
	assert.Equal(t, []utc.Timestamp{a, b, c}, sorted, "Compare should be usable for sorting")
}

func TestHash(t *testing.T) {
	assert.Equal(t, utc.New(10, utc.NanosPerDay).Hash(), utc.New(11, 0).Hash(), "Equal timestamps should have equal hashes")
	assert.NotEqual(t, utc.New(10, 1).Hash(), utc.New(10, 2).Hash())
	assert.NotEqual(t, utc.New(10, 0).Hash(), utc.New(11, 0).Hash())

	present := utc.MustParse("2021-11-17T09:05:12Z")
	assert.NotEqual(t, present.Hash(), present.AddDays(131072).Hash(), "Days 2^17 apart should not collide")
	assert.NotEqual(t, present.Hash(), present.AddDays(-131072).Hash())

	hashes := map[uint64]utc.Timestamp{}
	for day := int64(0); day < 4096; day++ {
		ts := present.AddDays(day << 10)
		_, exists := hashes[ts.Hash()]
		require.False(t, exists, "Hash should not collide for %s", ts)
		hashes[ts.Hash()] = ts
	}

	seen := map[utc.Timestamp]bool{utc.New(10, utc.NanosPerDay): true}
	assert.True(t, seen[utc.New(11, 0)], "Timestamp should work as a map key")
}

func TestIsZero(t *testing.T) {
	assert.True(t, utc.Timestamp{}.IsZero())
	assert.True(t, utc.New(0, 0).IsZero())
	assert.False(t, utc.UnixEpoch().IsZero())
}
