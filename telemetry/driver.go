package telemetry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/s0up4200/pitwall/coerce"
	"github.com/s0up4200/pitwall/openf1"
)

// NormalizeDriver converts a raw drivers record into a Driver
func NormalizeDriver(raw openf1.Record) Driver {
	number := intOr(raw, driverNumberKeys, 0)

	code, ok := coerce.String(raw, driverCodeKeys...)
	if !ok {
		code = fmt.Sprintf("%02d", number)
	}

	firstName, lastName := resolveNames(raw, code)

	driver := Driver{
		ID:        driverID(raw),
		FirstName: firstName,
		LastName:  lastName,
		Code:      code,
		Number:    number,
		Country:   stringPtr(raw, countryKeys),
	}

	if teamName, ok := coerce.String(raw, teamNameKeys...); ok {
		driver.Team = &Team{
			ID:   "team-" + coerce.Slugify(teamName),
			Name: teamName,
		}
	}

	return driver
}

// resolveNames prefers explicit name fields and falls back to splitting the
// full or broadcast name, and finally the driver code.
func resolveNames(raw openf1.Record, code string) (string, string) {
	firstName, _ := coerce.String(raw, firstNameKeys...)
	lastName, _ := coerce.String(raw, lastNameKeys...)
	if firstName != "" && lastName != "" {
		return firstName, lastName
	}

	fallback, ok := coerce.String(raw, fullNameKeys...)
	if !ok {
		fallback = code
	}
	tokens := strings.Fields(fallback)

	if firstName == "" && len(tokens) > 0 {
		firstName = tokens[0]
	}
	if lastName == "" && len(tokens) > 1 {
		lastName = tokens[len(tokens)-1]
	}
	if lastName == "" {
		lastName = firstName
		if lastName == "" {
			lastName = fallback
		}
	}
	if firstName == "" {
		firstName = lastName
	}
	return firstName, lastName
}

// PlaceholderDriver stands in for a driver seen in timing data but missing
// from the driver listing.
func PlaceholderDriver(id string) Driver {
	number, err := strconv.Atoi(id)
	if err != nil {
		number = 0
	}
	return Driver{
		ID:        id,
		FirstName: id,
		LastName:  id,
		Code:      id,
		Number:    number,
	}
}
