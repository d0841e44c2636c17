package utc_test

import (
	"github.com/davejbax/go-utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestECMA119DateTime(t *testing.T) {
	cases := []struct {
		input    string
		offset   int
		expected []byte
	}{
		{"2015-07-31T19:00:15Z", 0, []byte{0x73, 0x07, 0x1F, 0x13, 0x00, 0x0F, 0x00}},
		{"2015-07-31T19:00:15Z", -32, []byte{0x73, 0x07, 0x1F, 0x0B, 0x00, 0x0F, 0xE0}},
		{"2000-01-07T12:26:14.999Z", 0, []byte{0x64, 0x01, 0x07, 0x0C, 0x1A, 0x0E, 0x00}},
		{"2000-01-01T00:00:00Z", 4, []byte{0x64, 0x01, 0x01, 0x01, 0x00, 0x00, 0x04}},
		{"2155-12-31T10:59:59Z", 52, []byte{0xFF, 0x0C, 0x1F, 0x17, 0x3B, 0x3B, 0x34}},
	}

	for _, c := range cases {
		c := c
		t.Run(c.input, func(t *testing.T) {
			t.Parallel()

			ts := utc.MustParse(c.input)
			encoded, err := ts.ECMA119DateTime(c.offset)
			require.NoError(t, err, "ECMA119DateTime should not return an error for a date in range")
			assert.Equal(t, c.expected, encoded, "ECMA119DateTime should encode the local date and time")

			decoded, err := utc.ParseECMA119DateTime(encoded)
			require.NoError(t, err)
			assert.Equal(t, ts.Truncate(), decoded, "ParseECMA119DateTime should give back the instant without fractions of a second")
		})
	}
}

func TestECMA119DateTime_OutOfRange(t *testing.T) {
	_, err := utc.MustParse("1899-12-31T23:59:59Z").ECMA119DateTime(0)
	assert.ErrorIs(t, err, utc.ErrOutOfRange, "ECMA119DateTime should reject years before 1900")

	_, err = utc.MustParse("1899-12-31T23:59:59Z").ECMA119DateTime(4)
	assert.NoError(t, err, "ECMA119DateTime should check the year of the local time")

	_, err = utc.MustParse("2155-12-31T23:00:00Z").ECMA119DateTime(4)
	assert.ErrorIs(t, err, utc.ErrOutOfRange, "ECMA119DateTime should reject local years after 2155")

	_, err = utc.UnixEpoch().ECMA119DateTime(53)
	assert.ErrorIs(t, err, utc.ErrOutOfRange, "ECMA119DateTime should reject offsets after +13:00")
}

func TestParseECMA119DateTime_Invalid(t *testing.T) {
	_, err := utc.ParseECMA119DateTime([]byte{0x73, 0x07, 0x1F, 0x13, 0x00, 0x0F})
	assert.Error(t, err, "ParseECMA119DateTime should reject a short record")

	_, err = utc.ParseECMA119DateTime([]byte{0x73, 0x02, 0x1E, 0x13, 0x00, 0x0F, 0x00})
	assert.ErrorIs(t, err, utc.ErrInvalidDate, "ParseECMA119DateTime should reject a day that does not exist")

	_, err = utc.ParseECMA119DateTime([]byte{0x73, 0x07, 0x1F, 0x1E, 0x00, 0x0F, 0x00})
	assert.ErrorIs(t, err, utc.ErrOutOfRange, "ParseECMA119DateTime should reject hour 30")

	_, err = utc.ParseECMA119DateTime([]byte{0x73, 0x07, 0x1F, 0x13, 0x63, 0x0F, 0x00})
	assert.ErrorIs(t, err, utc.ErrOutOfRange, "ParseECMA119DateTime should reject minute 99")
}

func TestECMA119LongDateTime(t *testing.T) {
	// Arch Linux 2025.01.01 x86_64 ISO volume creation date and time, recorded at +01:00
	ts := utc.MustParse("2025-01-01T07:45:10.129999999Z")

	encoded, err := ts.ECMA119LongDateTime(4)
	require.NoError(t, err)
	assert.Equal(t, []byte("2025010108451012\x04"), encoded, "ECMA119LongDateTime should encode local digits truncated to centiseconds")

	decoded, err := utc.ParseECMA119LongDateTime(encoded)
	require.NoError(t, err)
	assert.Equal(t, utc.MustParse("2025-01-01T07:45:10.12Z"), decoded, "ParseECMA119LongDateTime should apply the offset")

	encoded, err = utc.MustParse("2000-01-01T00:00:00Z").ECMA119LongDateTime(-4)
	require.NoError(t, err)
	assert.Equal(t, []byte("1999123123000000\xFC"), encoded, "ECMA119LongDateTime should encode a negative offset as a signed byte")
}

func TestECMA119LongDateTime_OutOfRange(t *testing.T) {
	_, err := utc.MustParse("0000-12-31T23:59:59Z").ECMA119LongDateTime(0)
	assert.ErrorIs(t, err, utc.ErrOutOfRange)

	_, err = utc.MustParse("9999-12-31T23:59:59Z").ECMA119LongDateTime(4)
	assert.ErrorIs(t, err, utc.ErrOutOfRange, "ECMA119LongDateTime should reject local years with five digits")

	_, err = utc.UnixEpoch().ECMA119LongDateTime(-49)
	assert.ErrorIs(t, err, utc.ErrOutOfRange)
}

func TestParseECMA119LongDateTime_Invalid(t *testing.T) {
	_, err := utc.ParseECMA119LongDateTime([]byte("0000000000000000\x00"))
	assert.ErrorIs(t, err, utc.ErrUnspecified, "ParseECMA119LongDateTime should report the zero record as unspecified")

	_, err = utc.ParseECMA119LongDateTime([]byte("20250101084510"))
	assert.Error(t, err, "ParseECMA119LongDateTime should reject a short record")

	_, err = utc.ParseECMA119LongDateTime([]byte("2025010108451O12\x04"))
	assert.ErrorIs(t, err, utc.ErrParse, "ParseECMA119LongDateTime should reject a non-digit")
}
