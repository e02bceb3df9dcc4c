package schema

import (
	"bestest-extract/internal/assemble"
	"bestest-extract/internal/cleanse"
	"bestest-extract/internal/section"
)

// Case identifiers accepted by the categorical checks.
var (
	ThermalFabricCases = []string{
		"195", "200", "210", "215", "220", "230", "240", "250", "270", "280", "290", "300", "310", "320",
		"395", "400", "410", "420", "430", "440", "600", "610", "620", "630", "640", "650", "660", "670",
		"680", "685", "695", "800", "810", "900", "910", "920", "930", "940", "950", "960", "980", "985",
		"995",
	}
	FreeFloatCases    = []string{"600FF", "650FF", "680FF", "900FF", "950FF", "980FF"}
	SteadyStateCases  = []string{"GC10a", "GC30a", "GC30b", "GC30c", "GC55b", "GC60b", "GC65b", "GC70b", "GC80b", "GC80c"}
	HarmonicCases     = []string{"GC40a", "GC40b", "GC40c", "GC45a", "GC45b", "GC45c", "GC50b", "GC55b", "GC55c", "GC60b", "GC65b", "GC70b"}
	FuelFurnaceCases  = []string{"HE100", "HE110", "HE120", "HE130", "HE140", "HE150", "HE160", "HE170", "HE210", "HE220", "HE230"}
	Months            = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	temperatureLimits = [2]float64{-100, 100}
)

// IdentityTable is the identifying-information table shared by every section.
func IdentityTable() Table {
	return Table{
		Name:     IdentityTableName,
		Region:   Region{Sheet: "Identification", SkipRows: 2, Columns: "B:C", Rows: 3},
		Labels:   []string{"field", "value"},
		Assembly: assemble.Identity{},
	}
}

// Builtin returns fresh copies of the built-in schemas
func Builtin() []*Schema {
	return []*Schema{thermalFabric(), groundCoupled(), fuelFurnace()}
}

func caseIn(column string, valid []string) *cleanse.Categorical {
	return &cleanse.Categorical{Column: column, Valid: valid}
}

func energy(columns ...string) []cleanse.Numeric {
	return cleanse.Each(columns, func(c string) cleanse.Numeric { return cleanse.AtLeast(c, 0) })
}

func hours(columns ...string) []cleanse.Numeric {
	return cleanse.Each(columns, func(c string) cleanse.Numeric { return cleanse.Between(c, 0, 24) })
}

func days(lower, upper float64, columns ...string) []cleanse.Numeric {
	return cleanse.Each(columns, func(c string) cleanse.Numeric { return cleanse.Between(c, lower, upper) })
}

func temperatures(columns ...string) []cleanse.Numeric {
	return cleanse.Each(columns, func(c string) cleanse.Numeric {
		return cleanse.Between(c, temperatureLimits[0], temperatureLimits[1])
	})
}

func numeric(groups ...[]cleanse.Numeric) []cleanse.Numeric {
	var out []cleanse.Numeric
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func prefixed(prefix string, labels ...string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = prefix + l
	}
	return out
}

func thermalFabric() *Schema {
	extremes := func(value string) []string {
		return []string{"case", "average_" + value, "minimum_" + value, "minimum_date", "minimum_hour",
			"maximum_" + value, "maximum_date", "maximum_hour"}
	}
	extremeRules := func(value string) []cleanse.Numeric {
		return numeric(
			temperatures("average_"+value, "minimum_"+value, "maximum_"+value),
			hours("minimum_hour", "maximum_hour"),
		)
	}

	solarHourly := []string{"horizontal_wh_m2", "south_wh_m2", "west_wh_m2", "south_transmitted_wh_m2"}
	zoneLoads := []string{"heating_kwh", "cooling_kwh", "peak_heating_kw", "peak_heating_day", "peak_heating_hour",
		"peak_cooling_kw", "peak_cooling_day", "peak_cooling_hour"}

	monthlyLabels := append([]string{"month"}, prefixed("600_", zoneLoads...)...)
	monthlyLabels = append(monthlyLabels, prefixed("900_", zoneLoads...)...)

	return &Schema{
		Section:       section.ThermalFabric,
		IdentityTable: IdentityTableName,
		Tables: []Table{
			IdentityTable(),
			{
				Name:   "annual_sums_peaks",
				Region: Region{Sheet: "Annual", SkipRows: 5, Columns: "B:J", Rows: 45},
				Labels: []string{"case", "annual_heating_mwh", "annual_cooling_mwh", "peak_heating_kw",
					"peak_heating_date", "peak_heating_hour", "peak_cooling_kw", "peak_cooling_date", "peak_cooling_hour"},
				Rules: cleanse.Rules{
					Case: caseIn("case", ThermalFabricCases),
					Numeric: numeric(
						energy("annual_heating_mwh", "annual_cooling_mwh", "peak_heating_kw", "peak_cooling_kw"),
						hours("peak_heating_hour", "peak_cooling_hour"),
					),
				},
				Assembly: assemble.Flat{Key: "case"},
			},
			{
				Name:     "free_float_temperatures",
				Region:   Region{Sheet: "Annual", SkipRows: 55, Columns: "B:I", Rows: 6},
				Labels:   extremes("temperature_c"),
				Rules:    cleanse.Rules{Case: caseIn("case", FreeFloatCases), Numeric: extremeRules("temperature_c")},
				Assembly: assemble.Flat{Key: "case"},
			},
			{
				Name:     "sky_temperature",
				Region:   Region{Sheet: "Annual", SkipRows: 65, Columns: "B:I", Rows: 1},
				Labels:   extremes("sky_temperature_c"),
				Rules:    cleanse.Rules{Case: caseIn("case", []string{"600"}), Numeric: extremeRules("sky_temperature_c")},
				Assembly: assemble.Flat{Key: "case"},
			},
			{
				Name:     "annual_incident_solar_radiation",
				Region:   Region{Sheet: "Solar", SkipRows: 3, Columns: "B:C", Rows: 5},
				Labels:   []string{"case_surface", "incident_kwh_m2"},
				Rules:    cleanse.Rules{Numeric: energy("incident_kwh_m2")},
				Assembly: assemble.Surface{Column: "case_surface"},
			},
			{
				Name:     "annual_transmitted_solar_radiation",
				Region:   Region{Sheet: "Solar", SkipRows: 12, Columns: "B:C", Rows: 4},
				Labels:   []string{"case_surface", "transmitted_kwh_m2"},
				Rules:    cleanse.Rules{Numeric: energy("transmitted_kwh_m2")},
				Assembly: assemble.Surface{Column: "case_surface"},
			},
			{
				Name:   "hourly_incident_solar_radiation",
				Region: Region{Sheet: "Hourly", SkipRows: 4, Columns: "B:J", Rows: 24},
				Labels: append(append([]string{"hour"}, prefixed("mar5_", solarHourly...)...), prefixed("jul27_", solarHourly...)...),
				Rules: cleanse.Rules{Numeric: numeric(
					hours("hour"),
					energy(prefixed("mar5_", solarHourly...)...),
					energy(prefixed("jul27_", solarHourly...)...),
				)},
				Assembly: assemble.Series{Index: "hour", Periods: []assemble.Period{
					{Case: "600", Name: "Mar 5", Prefix: "mar5_"},
					{Case: "600", Name: "Jul 27", Prefix: "jul27_"},
				}},
			},
			{
				Name:   "hourly_free_float_temperatures",
				Region: Region{Sheet: "Hourly", SkipRows: 32, Columns: "B:D", Rows: 24},
				Labels: []string{"hour", "600ff_temperature_c", "900ff_temperature_c"},
				Rules: cleanse.Rules{Numeric: numeric(
					hours("hour"),
					temperatures("600ff_temperature_c", "900ff_temperature_c"),
				)},
				Assembly: assemble.Series{Index: "hour", Periods: []assemble.Period{
					{Case: "600FF", Name: "Jan 4", Prefix: "600ff_"},
					{Case: "900FF", Name: "Jan 4", Prefix: "900ff_"},
				}},
			},
			{
				Name:   "monthly_conditioned_zone_loads",
				Region: Region{Sheet: "Monthly", SkipRows: 3, Columns: "B:R", Rows: 12},
				Labels: monthlyLabels,
				Rules: cleanse.Rules{
					Case: caseIn("month", Months),
					Numeric: numeric(
						energy("heating_kwh", "cooling_kwh", "peak_heating_kw", "peak_cooling_kw"),
						days(1, 31, "peak_heating_day", "peak_cooling_day"),
						hours("peak_heating_hour", "peak_cooling_hour"),
					),
				},
				Assembly: assemble.Wide{RowKey: "month", Cases: []assemble.WideCase{
					{Case: "600", Prefix: "600_"},
					{Case: "900", Prefix: "900_"},
				}},
			},
		},
	}
}

func groundCoupled() *Schema {
	return &Schema{
		Section:       section.GroundCoupled,
		IdentityTable: IdentityTableName,
		Tables: []Table{
			IdentityTable(),
			{
				Name:   "steady_state_floor_conduction",
				Region: Region{Sheet: "Steady-State", SkipRows: 4, Columns: "B:E", Rows: 10},
				Labels: []string{"case", "floor_conduction_w", "zone_temperature_c", "floor_surface_temperature_c"},
				Rules: cleanse.Rules{
					Case: caseIn("case", SteadyStateCases),
					Numeric: numeric(
						[]cleanse.Numeric{cleanse.Num("floor_conduction_w")},
						temperatures("zone_temperature_c", "floor_surface_temperature_c"),
					),
				},
				Assembly: assemble.Flat{Key: "case"},
			},
			{
				Name:   "harmonic_floor_conduction",
				Region: Region{Sheet: "Harmonic", SkipRows: 4, Columns: "B:I", Rows: 12},
				Labels: []string{"case", "average_floor_conduction_w", "minimum_floor_conduction_w", "minimum_day",
					"minimum_hour", "maximum_floor_conduction_w", "maximum_day", "maximum_hour"},
				Rules: cleanse.Rules{
					Case: caseIn("case", HarmonicCases),
					Numeric: numeric(
						[]cleanse.Numeric{
							cleanse.Num("average_floor_conduction_w"),
							cleanse.Num("minimum_floor_conduction_w"),
							cleanse.Num("maximum_floor_conduction_w"),
						},
						days(1, 365, "minimum_day", "maximum_day"),
						hours("minimum_hour", "maximum_hour"),
					),
				},
				Assembly: assemble.Flat{Key: "case"},
			},
			{
				Name:     "floor_surface_temperatures",
				Region:   Region{Sheet: "Surfaces", SkipRows: 3, Columns: "B:C", Rows: 8},
				Labels:   []string{"case_surface", "temperature_c"},
				Rules:    cleanse.Rules{Numeric: temperatures("temperature_c")},
				Assembly: assemble.Surface{Column: "case_surface"},
			},
			{
				Name:   "daily_floor_conduction",
				Region: Region{Sheet: "Daily", SkipRows: 3, Columns: "B:E", Rows: 365},
				Labels: []string{"day", "gc40a_floor_conduction_w", "gc40b_floor_conduction_w", "gc40c_floor_conduction_w"},
				Rules: cleanse.Rules{Numeric: numeric(
					days(1, 365, "day"),
					[]cleanse.Numeric{
						cleanse.Num("gc40a_floor_conduction_w"),
						cleanse.Num("gc40b_floor_conduction_w"),
						cleanse.Num("gc40c_floor_conduction_w"),
					},
				)},
				Assembly: assemble.Series{Index: "day", IndexKey: "day", Periods: []assemble.Period{
					{Case: "GC40a", Prefix: "gc40a_"},
					{Case: "GC40b", Prefix: "gc40b_"},
					{Case: "GC40c", Prefix: "gc40c_"},
				}},
			},
		},
	}
}

func fuelFurnace() *Schema {
	hourly := []string{"load_kw", "input_kw", "zone_temperature_c"}
	monthly := []string{"fuel_consumption_m3", "average_efficiency"}

	hourlyLabels := append(append([]string{"hour"}, prefixed("jan4_", hourly...)...), prefixed("feb1_", hourly...)...)
	monthlyLabels := []string{"month"}
	for _, p := range []string{"he210_", "he220_", "he230_"} {
		monthlyLabels = append(monthlyLabels, prefixed(p, monthly...)...)
	}

	return &Schema{
		Section:       section.FuelFurnace,
		IdentityTable: IdentityTableName,
		Tables: []Table{
			IdentityTable(),
			{
				Name:   "annual_furnace_results",
				Region: Region{Sheet: "Annual", SkipRows: 4, Columns: "B:H", Rows: 11},
				Labels: []string{"case", "furnace_load_gj", "furnace_input_gj", "fuel_consumption_m3",
					"fan_energy_kwh", "average_efficiency", "mean_zone_temperature_c"},
				Rules: cleanse.Rules{
					Case: caseIn("case", FuelFurnaceCases),
					Numeric: numeric(
						energy("furnace_load_gj", "furnace_input_gj", "fuel_consumption_m3", "fan_energy_kwh"),
						[]cleanse.Numeric{cleanse.Between("average_efficiency", 0, 1)},
						temperatures("mean_zone_temperature_c"),
					),
				},
				Assembly: assemble.Flat{Key: "case"},
			},
			{
				Name:   "he170_hourly",
				Region: Region{Sheet: "HE170", SkipRows: 4, Columns: "B:H", Rows: 24},
				Labels: hourlyLabels,
				Rules: cleanse.Rules{Numeric: numeric(
					hours("hour"),
					energy("jan4_load_kw", "jan4_input_kw", "feb1_load_kw", "feb1_input_kw"),
					temperatures("jan4_zone_temperature_c", "feb1_zone_temperature_c"),
				)},
				Assembly: assemble.Series{Index: "hour", Periods: []assemble.Period{
					{Case: "HE170", Name: "Jan 4", Prefix: "jan4_"},
					{Case: "HE170", Name: "Feb 1", Prefix: "feb1_"},
				}},
			},
			{
				Name:   "monthly_fuel_consumption",
				Region: Region{Sheet: "Monthly", SkipRows: 3, Columns: "B:H", Rows: 12},
				Labels: monthlyLabels,
				Rules: cleanse.Rules{
					Case: caseIn("month", Months),
					Numeric: numeric(
						energy("fuel_consumption_m3"),
						[]cleanse.Numeric{cleanse.Between("average_efficiency", 0, 1)},
					),
				},
				Assembly: assemble.Wide{RowKey: "month", Cases: []assemble.WideCase{
					{Case: "HE210", Prefix: "he210_"},
					{Case: "HE220", Prefix: "he220_"},
					{Case: "HE230", Prefix: "he230_"},
				}},
			},
		},
	}
}
