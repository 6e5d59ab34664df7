package config

// Canonical column names used across the pipeline. Raw sources are renamed
// to these before any stage that joins or groups on them.
const (
	ColCountry       = "Country"
	ColCountryCode   = "Country Code"
	ColIndicatorName = "Indicator Name"
	ColIndicatorCode = "Indicator Code"
	ColYear          = "Year"

	// ColEmissionsTotal is total CO2 emissions in metric tons. The raw
	// emissions source reports thousands of metric tons; the merger rescales.
	ColEmissionsTotal = "Emissions_total"
	// ColGDP is total GDP in current US$.
	ColGDP = "GDP"
	// ColPopulation is total population.
	ColPopulation = "Population"

	// Derived at statistics construction, never read from raw input.
	ColGDPPerCapita       = "GDP_per_capita"
	ColEmissionsPerCapita = "Emissions_per_capita"
)

// DefaultTopK is how many countries each ranked report keeps when no other
// value is configured or requested. The single authority for the default:
// Default() and the statistics engine's non-positive-k fallback both use it.
const DefaultTopK = 5

// RequiredUnifiedColumns returns the columns the unified table must carry
// before the statistics engine will accept it.
func RequiredUnifiedColumns() []string {
	return []string{ColCountry, ColYear, ColPopulation, ColEmissionsTotal, ColGDP}
}
