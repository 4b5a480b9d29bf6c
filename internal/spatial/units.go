package spatial

// Conversion factors
const (
	MetersPerMile        = 1609.344
	SecondsPerHour       = 3600.0
	MetersPerSecondToMph = SecondsPerHour / MetersPerMile
)

// MetersToMiles converts meters to statute miles
func MetersToMiles(meters float64) float64 {
	return meters / MetersPerMile
}

// MilesToMeters converts statute miles to meters
func MilesToMeters(miles float64) float64 {
	return miles * MetersPerMile
}

// MetersPerSecondToMPH converts a speed in m/s to miles per hour
func MetersPerSecondToMPH(mps float64) float64 {
	return mps * MetersPerSecondToMph
}

// AverageSpeedMPH returns the average speed in mph for a distance in meters
// covered over durationMs milliseconds. A non-positive duration yields 0.
func AverageSpeedMPH(meters float64, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return MetersPerSecondToMPH(meters / (float64(durationMs) / 1000))
}
