// Package domain models flood risk for a city from current weather and
// same-day news headlines.
//
// # Data Sources
//
// Weather comes from the OpenWeather current-conditions endpoint queried by
// city name in metric units. Rain accumulation is reported under "rain" as
// "1h" and "3h" millimetre totals; both are absent when it is not raining and
// default to 0.
//
// A second OpenWeather call to the 5-day forecast endpoint is made with the
// coordinates of the first response. The free tier carries no UV index, so
// [WeatherSnapshot.UVI] is always 0; the call still fails the request when
// the upstream does.
//
// Headlines come from the Google News RSS search feed for
// "<city> flood OR rain OR waterlogging".
//
// # Same-Day Filter
//
// An item is kept when its publish time, converted to UTC and rendered as
// RFC 3339, starts with the same "YYYY-MM-DD" as the current UTC time. The
// comparison is on the leading ten characters only. See [FilterToday].
//
// # Headline Classification
//
// Titles are lower-cased and tested for substring containment:
//
//	HIGH:   flash flood | evacuation | river overflow | dam discharge | flood warning
//	MEDIUM: waterlogging | heavy rainfall expected | monsoon alert | rainfall alert
//	LOW:    everything else
//
// HIGH is tested first and wins. A LOW keyword list (rain expected, weather
// disturbance) is kept for reporting but never changes the level.
//
// # Risk Decision
//
// Weather thresholds, first match wins:
//
//	rain_1h > 5   → HIGH    "Rainfall > 5mm/hr"
//	rain_3h > 10  → MEDIUM  "Rainfall > 10mm in 3 hours"
//	rain_1h > 1   → LOW     "Light rainfall detected"
//
// News then overrides: any HIGH headline forces HIGH; otherwise any MEDIUM
// headline raises the level to MEDIUM unless it is already HIGH. With no
// reason at all the level is SAFE with the single reason
// "No risk indicators detected". See [AssessRisk].
package domain
