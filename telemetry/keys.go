package telemetry

// Candidate field names per call site, most specific first.
var (
	driverNumberKeys = []string{"driver_number"}
	driverCodeKeys   = []string{"name_acronym", "code"}
	firstNameKeys    = []string{"first_name"}
	lastNameKeys     = []string{"last_name"}
	fullNameKeys     = []string{"full_name", "broadcast_name"}
	countryKeys      = []string{"country_code", "nationality"}
	teamNameKeys     = []string{"team_name"}

	lapNumberKeys   = []string{"lap_number"}
	lapDurationKeys = []string{"lap_duration", "duration", "lap_time"}
	sector1Keys     = []string{"sector1_duration", "sector1"}
	sector2Keys     = []string{"sector2_duration", "sector2"}
	sector3Keys     = []string{"sector3_duration", "sector3"}
	positionKeys    = []string{"position", "lap_position", "driver_position"}
	pitLapKeys      = []string{"is_pit_out_lap", "pit_out", "pit_in"}

	stintNumberKeys   = []string{"stint", "stint_number"}
	compoundKeys      = []string{"compound"}
	stintStartLapKeys = []string{"lap_start", "start_lap"}
	stintEndLapKeys   = []string{"lap_end", "end_lap"}

	pitDurationKeys = []string{"pit_duration", "duration", "pit_total", "total"}
	pitTimeKeys     = []string{"pit_time", "time", "stopped"}
	pitReasonKeys   = []string{"reason"}

	sessionKeyKeys   = []string{"session_key"}
	raceKeyKeys      = []string{"race_key"}
	sessionTypeKeys  = []string{"session_type"}
	sessionNameKeys  = []string{"session_name"}
	startDateKeys    = []string{"start_date", "date_start"}
	startTimeKeys    = []string{"start_time"}
	endDateKeys      = []string{"end_date", "date_end"}
	endTimeKeys      = []string{"end_time"}
	raceNameKeys     = []string{"grand_prix", "event_name"}
	circuitKeys      = []string{"circuit", "circuit_short_name"}
	locationKeys     = []string{"location"}
	raceCountryKeys  = []string{"country", "country_name"}
	seasonKeys       = []string{"year"}
	roundKeys        = []string{"round"}
)
