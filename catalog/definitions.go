package catalog

import (
	"fmt"

	"securecheck-api/gateway"
)

// Ties in every ranked or limited result are broken by MIN(id), the first
// row of the group in insertion order. Every rate divides by NULLIF(total, 0)
// so an empty group yields NULL instead of a division error.

const arrested = "SUM(CASE WHEN is_arrested = TRUE THEN 1 ELSE 0 END)"

func static(sql string) func(gateway.Dialect) string {
	return func(gateway.Dialect) string { return sql }
}

var definitions = [queryCount]Definition{
	TotalStops: {
		Query:   TotalStops,
		Label:   "Total Number of Police Stops",
		Tier:    Basic,
		Columns: []string{"total_police_stops"},
		statement: static(`SELECT COUNT(*) AS total_police_stops FROM police_log`),
	},
	StopsByViolation: {
		Query:   StopsByViolation,
		Label:   "Count of Stops by Violation Type",
		Tier:    Basic,
		Columns: []string{"violation", "stops_count"},
		statement: static(`SELECT violation, COUNT(*) AS stops_count
			FROM police_log
			GROUP BY violation
			ORDER BY stops_count DESC, MIN(id)`),
	},
	ArrestsVsWarnings: {
		Query:   ArrestsVsWarnings,
		Label:   "Number of Arrests vs. Warnings",
		Tier:    Basic,
		Columns: []string{"stop_outcome", "outcome_count"},
		statement: static(`SELECT stop_outcome, COUNT(*) AS outcome_count
			FROM police_log
			WHERE LOWER(stop_outcome) IN ('arrest', 'warning')
			GROUP BY stop_outcome
			ORDER BY MIN(id)`),
	},
	AverageDriverAge: {
		Query:   AverageDriverAge,
		Label:   "Average Age of Drivers Stopped",
		Tier:    Basic,
		Columns: []string{"avg_driver_age"},
		statement: static(`SELECT AVG(driver_age) AS avg_driver_age
			FROM police_log
			WHERE driver_age IS NOT NULL`),
	},
	TopSearchTypes: {
		Query:   TopSearchTypes,
		Label:   "Top 5 Most Frequent Search Types",
		Tier:    Basic,
		Columns: []string{"search_type", "search_count"},
		statement: static(`SELECT search_type, COUNT(*) AS search_count
			FROM police_log
			WHERE search_type IS NOT NULL AND search_type <> ''
			GROUP BY search_type
			ORDER BY search_count DESC, MIN(id)
			LIMIT 5`),
	},
	StopsByGender: {
		Query:   StopsByGender,
		Label:   "Count of Stops by Gender",
		Tier:    Basic,
		Columns: []string{"driver_gender", "stop_count"},
		statement: static(`SELECT driver_gender, COUNT(*) AS stop_count
			FROM police_log
			GROUP BY driver_gender
			ORDER BY stop_count DESC, MIN(id)`),
	},
	TopArrestViolation: {
		Query:   TopArrestViolation,
		Label:   "Most Common Violation for Arrests",
		Tier:    Basic,
		Columns: []string{"violation", "arrest_count"},
		statement: static(`SELECT violation, COUNT(*) AS arrest_count
			FROM police_log
			WHERE is_arrested = TRUE
			GROUP BY violation
			ORDER BY arrest_count DESC, MIN(id)
			LIMIT 1`),
	},
	StopDurationByViolation: {
		Query:   StopDurationByViolation,
		Label:   "Average Stop Duration for Each Violation",
		Tier:    Basic,
		Columns: []string{"violation", "stop_duration", "count"},
		statement: static(`SELECT violation, stop_duration, COUNT(*) AS count
			FROM police_log
			GROUP BY violation, stop_duration
			ORDER BY violation, MIN(id)`),
	},
	DrugStopsByYear: {
		Query:   DrugStopsByYear,
		Label:   "Number of Drug-Related Stops by Year",
		Tier:    Basic,
		Columns: []string{"year", "drugs_related_count"},
		statement: func(d gateway.Dialect) string {
			return fmt.Sprintf(`SELECT %s AS year, COUNT(*) AS drugs_related_count
			FROM police_log
			WHERE drugs_related_stop = TRUE
			GROUP BY 1
			ORDER BY 1`, d.Year("stop_date"))
		},
	},
	TopVehicles: {
		Query:   TopVehicles,
		Label:   "Drivers with the Highest Number of Stops",
		Tier:    Basic,
		Columns: []string{"vehicle_number", "count_stop"},
		statement: static(`SELECT vehicle_number, COUNT(*) AS count_stop
			FROM police_log
			GROUP BY vehicle_number
			ORDER BY count_stop DESC, MIN(id)
			LIMIT 5`),
	},
	NightStops: {
		Query:   NightStops,
		Label:   "Number of Stops Conducted at Night (Between 10 PM - 5 AM)",
		Tier:    Basic,
		Columns: []string{"night_stops"},
		statement: func(d gateway.Dialect) string {
			hour := d.Hour("stop_time")
			return fmt.Sprintf(`SELECT COUNT(*) AS night_stops
			FROM police_log
			WHERE %[1]s >= 22 OR %[1]s < 5`, hour)
		},
	},
	SearchesByViolation: {
		Query:   SearchesByViolation,
		Label:   "Number of Searches Conducted by Violation Type",
		Tier:    Basic,
		Columns: []string{"violation", "searches_conducted"},
		statement: static(`SELECT violation, COUNT(*) AS searches_conducted
			FROM police_log
			WHERE search_conducted = TRUE
			GROUP BY violation
			ORDER BY searches_conducted DESC, MIN(id)`),
	},
	ArrestRateByGender: {
		Query:   ArrestRateByGender,
		Label:   "Arrest Rate by Driver Gender",
		Tier:    Basic,
		Columns: []string{"driver_gender", "arrests_count", "total_stops", "arrest_rate_percentage"},
		statement: static(`SELECT driver_gender,
				COUNT(CASE WHEN is_arrested = TRUE THEN 1 END) AS arrests_count,
				COUNT(*) AS total_stops,
				COUNT(CASE WHEN is_arrested = TRUE THEN 1 END) * 100.0 / NULLIF(COUNT(*), 0) AS arrest_rate_percentage
			FROM police_log
			GROUP BY driver_gender
			ORDER BY MIN(id)`),
	},
	ViolationTrends: {
		Query:   ViolationTrends,
		Label:   "Violation Trends Over Time",
		Tier:    Basic,
		Columns: []string{"year", "month", "violation", "violation_count"},
		statement: func(d gateway.Dialect) string {
			return fmt.Sprintf(`SELECT %s AS year, %s AS month, violation, COUNT(*) AS violation_count
			FROM police_log
			GROUP BY 1, 2, violation
			ORDER BY 1, 2, violation_count DESC, MIN(id)`, d.Year("stop_date"), d.Month("stop_date"))
		},
	},
	DrugStopOutcomes: {
		Query:   DrugStopOutcomes,
		Label:   "Most Common Stop Outcomes for Drug-Related Stops",
		Tier:    Basic,
		Columns: []string{"stop_outcome", "outcome_count"},
		statement: static(`SELECT stop_outcome, COUNT(*) AS outcome_count
			FROM police_log
			WHERE drugs_related_stop = TRUE
			GROUP BY stop_outcome
			ORDER BY outcome_count DESC, MIN(id)`),
	},

	CountryYearlyBreakdown: {
		Query:   CountryYearlyBreakdown,
		Label:   "Yearly Breakdown of Stops and Arrests by Country",
		Tier:    Advanced,
		Columns: []string{"country_name", "stop_year", "total_stops", "total_arrests"},
		statement: func(d gateway.Dialect) string {
			return fmt.Sprintf(`WITH stops_data AS (
				SELECT country_name, %s AS stop_year, is_arrested
				FROM police_log
			)
			SELECT country_name, stop_year, COUNT(*) AS total_stops, %s AS total_arrests
			FROM stops_data
			GROUP BY country_name, stop_year
			ORDER BY country_name, stop_year`, d.Year("stop_date"), arrested)
		},
	},
	AgeRaceViolationTrends: {
		Query:   AgeRaceViolationTrends,
		Label:   "Driver Violation Trends Based on Age and Race",
		Tier:    Advanced,
		Columns: []string{"age_group", "driver_race", "violation", "total_violations"},
		statement: static(`WITH bucketed AS (
				SELECT id,
					CASE
						WHEN driver_age BETWEEN 16 AND 25 THEN '16-25'
						WHEN driver_age BETWEEN 26 AND 35 THEN '26-35'
						WHEN driver_age BETWEEN 36 AND 50 THEN '36-50'
						WHEN driver_age > 50 THEN '51+'
						ELSE 'Unknown'
					END AS age_group,
					driver_race,
					violation
				FROM police_log
				WHERE driver_age IS NOT NULL AND driver_race IS NOT NULL AND violation IS NOT NULL
			)
			SELECT age_group, driver_race, violation, COUNT(*) AS total_violations
			FROM bucketed
			GROUP BY age_group, driver_race, violation
			ORDER BY age_group, driver_race, total_violations DESC, MIN(id)`),
	},
	TimePeriodStops: {
		Query:   TimePeriodStops,
		Label:   "Time Period Analysis of Stops",
		Tier:    Advanced,
		Columns: []string{"stop_day", "time_period", "total_stops"},
		statement: func(d gateway.Dialect) string {
			return fmt.Sprintf(`WITH time_periods AS (
				SELECT %[1]s AS stop_day,
					CASE
						WHEN %[2]s BETWEEN 5 AND 11 THEN 'Morning'
						WHEN %[2]s BETWEEN 12 AND 16 THEN 'Afternoon'
						WHEN %[2]s BETWEEN 17 AND 20 THEN 'Evening'
						WHEN %[2]s BETWEEN 21 AND 23 THEN 'Night'
						ELSE 'Late Night'
					END AS time_period
				FROM police_log
			)
			SELECT stop_day, time_period, COUNT(*) AS total_stops
			FROM time_periods
			GROUP BY stop_day, time_period
			ORDER BY stop_day, time_period`, d.Day("stop_date"), d.Hour("stop_time"))
		},
	},
	ViolationSearchArrestRates: {
		Query: ViolationSearchArrestRates,
		Label: "Violations with High Search and Arrest Rates",
		Tier:  Advanced,
		Columns: []string{
			"violation", "total_stops", "total_searches", "total_arrests",
			"search_rate_percent", "arrest_rate_percent", "search_rank", "arrest_rank",
		},
		statement: static(`WITH violation_stats AS (
				SELECT violation,
					COUNT(*) AS total_stops,
					SUM(CASE WHEN search_conducted = TRUE THEN 1 ELSE 0 END) AS total_searches,
					` + arrested + ` AS total_arrests,
					MIN(id) AS first_id
				FROM police_log
				WHERE violation IS NOT NULL
				GROUP BY violation
			)
			SELECT violation, total_stops, total_searches, total_arrests,
				ROUND(total_searches * 100.0 / NULLIF(total_stops, 0), 2) AS search_rate_percent,
				ROUND(total_arrests * 100.0 / NULLIF(total_stops, 0), 2) AS arrest_rate_percent,
				RANK() OVER (ORDER BY total_searches * 1.0 / NULLIF(total_stops, 0) DESC NULLS LAST) AS search_rank,
				RANK() OVER (ORDER BY total_arrests * 1.0 / NULLIF(total_stops, 0) DESC NULLS LAST) AS arrest_rank
			FROM violation_stats
			ORDER BY search_rate_percent DESC NULLS LAST, arrest_rate_percent DESC NULLS LAST, first_id`),
	},
	CountryDemographics: {
		Query:   CountryDemographics,
		Label:   "Driver Demographics by Country",
		Tier:    Advanced,
		Columns: []string{"country_name", "driver_gender", "driver_race", "average_age", "total_drivers"},
		statement: static(`WITH demographics AS (
				SELECT id, country_name, driver_gender, driver_race, driver_age
				FROM police_log
				WHERE driver_age IS NOT NULL AND driver_gender IS NOT NULL
					AND driver_race IS NOT NULL AND country_name IS NOT NULL
			)
			SELECT country_name, driver_gender, driver_race,
				ROUND(AVG(driver_age), 1) AS average_age,
				COUNT(*) AS total_drivers
			FROM demographics
			GROUP BY country_name, driver_gender, driver_race
			ORDER BY total_drivers DESC, MIN(id)`),
	},
	TopArrestRateViolations: {
		Query:   TopArrestRateViolations,
		Label:   "Top 5 Violations with Highest Arrest Rates",
		Tier:    Advanced,
		Columns: []string{"violation", "total_stops", "total_arrests", "arrest_rate_percent"},
		statement: static(`WITH violation_arrest_rate AS (
				SELECT violation,
					COUNT(*) AS total_stops,
					` + arrested + ` AS total_arrests,
					ROUND(` + arrested + ` * 100.0 / NULLIF(COUNT(*), 0), 2) AS arrest_rate_percent,
					MIN(id) AS first_id
				FROM police_log
				WHERE violation IS NOT NULL
				GROUP BY violation
			)
			SELECT violation, total_stops, total_arrests, arrest_rate_percent
			FROM violation_arrest_rate
			ORDER BY arrest_rate_percent DESC NULLS LAST, first_id
			LIMIT 5`),
	},
}
