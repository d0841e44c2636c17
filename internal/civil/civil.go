// Package civil splits a nanosecond-of-day count into hours, minutes, seconds and nanoseconds, assuming a uniform
// 86,400 second day.
package civil

const (
	NanosPerSecond = int64(1_000_000_000)
	SecondsPerDay  = int64(86_400)
	NanosPerDay    = SecondsPerDay * NanosPerSecond
)

// ToCivil decomposes nsOfDay, which must lie in [0, [NanosPerDay]), into a clock time
func ToCivil(nsOfDay int64) (hour, minute, second, nanosecond int) {
	secs := nsOfDay / NanosPerSecond

	hour = int(secs % SecondsPerDay / 3600)
	minute = int(secs % 3600 / 60)
	second = int(secs % 60)
	nanosecond = int(nsOfDay % NanosPerSecond)

	return hour, minute, second, nanosecond
}

// FromCivil composes a clock time into nanoseconds since midnight. Fields are not range checked: values outside a
// single day are left for the caller to normalize.
func FromCivil(hour, minute, second, nanosecond int) int64 {
	return (int64(hour)*3600+int64(minute)*60+int64(second))*NanosPerSecond + int64(nanosecond)
}
