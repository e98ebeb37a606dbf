package service

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchcast/internal/models"
)

// DataValidator validates normalized models before persistence
type DataValidator struct {
	validate *validator.Validate
	logger   logrus.FieldLogger
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger logrus.FieldLogger) *DataValidator {
	v := validator.New()

	// Model identifiers are uuid.UUID values; teach the uuid4 tag to
	// see them as their string form
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if id, ok := field.Interface().(uuid.UUID); ok {
			return id.String()
		}
		return nil
	}, uuid.UUID{})

	return &DataValidator{
		validate: v,
		logger:   logger,
	}
}

// ValidateFixture checks a fixture for structural and domain constraints
func (v *DataValidator) ValidateFixture(fixture *models.Fixture) []string {
	var errs []string
	errs = append(errs, v.structErrors(fixture)...)

	if fixture.KickoffAt.IsZero() {
		errs = append(errs, "kickoff_at is required")
	}

	// A scheduled fixture more than a year out is a provider glitch
	now := time.Now()
	if fixture.Status == models.StatusScheduled && fixture.KickoffAt.After(now.Add(365*24*time.Hour)) {
		errs = append(errs, fmt.Sprintf("fixture scheduled more than a year ahead: %s", fixture.KickoffAt.Format("2006-01-02")))
	}

	if fixture.Status == models.StatusFinished {
		if fixture.HomeGoals == nil || fixture.AwayGoals == nil {
			errs = append(errs, "finished fixture is missing a score")
		} else if *fixture.HomeGoals < 0 || *fixture.AwayGoals < 0 {
			errs = append(errs, "negative goals")
		}
	}

	if fixture.HomeTeamID == fixture.AwayTeamID {
		errs = append(errs, "home and away team are the same")
	}

	return errs
}

// ValidateStanding checks a league table row
func (v *DataValidator) ValidateStanding(standing *models.Standing) []string {
	var errs []string
	errs = append(errs, v.structErrors(standing)...)

	if standing.TeamName == "" {
		errs = append(errs, "team_name is required")
	}
	if standing.Played < 0 || standing.Won < 0 || standing.Drawn < 0 || standing.Lost < 0 {
		errs = append(errs, "negative match counts")
	}
	if standing.Won+standing.Drawn+standing.Lost != standing.Played {
		errs = append(errs, fmt.Sprintf("W/D/L %d+%d+%d does not sum to played %d",
			standing.Won, standing.Drawn, standing.Lost, standing.Played))
	}
	if standing.Rank > 40 {
		errs = append(errs, fmt.Sprintf("rank %d out of range", standing.Rank))
	}

	return errs
}

// ValidateSnapshot checks a team snapshot before it reaches the analyzer
func (v *DataValidator) ValidateSnapshot(snapshot *models.TeamSnapshot) []string {
	var errs []string
	errs = append(errs, v.structErrors(snapshot)...)

	if err := snapshot.ValidateResults(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(snapshot.RecentResults) > 10 {
		errs = append(errs, fmt.Sprintf("recent results window too long: %d", len(snapshot.RecentResults)))
	}

	return errs
}

// ValidateOddsSnapshot checks an odds tick
func (v *DataValidator) ValidateOddsSnapshot(snapshot *models.OddsSnapshot) []string {
	var errs []string

	if snapshot.Time.IsZero() {
		errs = append(errs, "tick time is required")
	}
	if snapshot.Source == "" {
		errs = append(errs, "tick source is required")
	}
	if !snapshot.Odds.IsValid() {
		errs = append(errs, fmt.Sprintf("odds %v are not a valid 1X2 triple", snapshot.Odds))
	}

	// Overrounds far above fair book signal corrupt data, not margin
	if snapshot.Odds.IsValid() {
		overround := 1/snapshot.Odds.Home + 1/snapshot.Odds.Draw + 1/snapshot.Odds.Away
		if overround > 1.25 {
			errs = append(errs, fmt.Sprintf("overround %.3f beyond sanity limit", overround))
		}
	}

	return errs
}

func (v *DataValidator) structErrors(s interface{}) []string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var errs []string
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range validationErrors {
			errs = append(errs, fmt.Sprintf("%s fails %s", fe.Namespace(), fe.Tag()))
		}
		return errs
	}
	return []string{err.Error()}
}
