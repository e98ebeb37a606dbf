package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/yourusername/matchcast/internal/models"
)

func validFixture() *models.Fixture {
	return &models.Fixture{
		ID:         uuid.New(),
		APIID:      1001,
		LeagueID:   uuid.New(),
		HomeTeamID: uuid.New(),
		AwayTeamID: uuid.New(),
		KickoffAt:  time.Now().Add(48 * time.Hour),
		Status:     models.StatusScheduled,
	}
}

func TestValidateFixtureAcceptsGoodFixture(t *testing.T) {
	v := NewDataValidator(quietLog())
	assert.Empty(t, v.ValidateFixture(validFixture()))
}

func TestValidateFixtureRejectsSameTeams(t *testing.T) {
	v := NewDataValidator(quietLog())
	fixture := validFixture()
	fixture.AwayTeamID = fixture.HomeTeamID

	errs := v.ValidateFixture(fixture)
	assert.NotEmpty(t, errs)
	assert.Contains(t, errs, "home and away team are the same")
}

func TestValidateFixtureRejectsDistantKickoff(t *testing.T) {
	v := NewDataValidator(quietLog())
	fixture := validFixture()
	fixture.KickoffAt = time.Now().Add(400 * 24 * time.Hour)

	assert.NotEmpty(t, v.ValidateFixture(fixture))
}

func TestValidateFixtureRejectsFinishedWithoutScore(t *testing.T) {
	v := NewDataValidator(quietLog())
	fixture := validFixture()
	fixture.Status = models.StatusFinished

	errs := v.ValidateFixture(fixture)
	assert.Contains(t, errs, "finished fixture is missing a score")
}

func TestValidateStanding(t *testing.T) {
	v := NewDataValidator(quietLog())
	standing := &models.Standing{
		LeagueID: uuid.New(),
		TeamID:   uuid.New(),
		TeamName: "Arsenal",
		Rank:     1,
		Played:   10,
		Won:      7,
		Drawn:    2,
		Lost:     1,
		Points:   23,
	}
	assert.Empty(t, v.ValidateStanding(standing))

	standing.Lost = 5
	assert.NotEmpty(t, v.ValidateStanding(standing), "W+D+L must sum to played")
}

func TestValidateSnapshot(t *testing.T) {
	v := NewDataValidator(quietLog())
	snapshot := &models.TeamSnapshot{
		ID:            uuid.New(),
		Name:          "Arsenal",
		LeagueRank:    1,
		RecentResults: []models.Result{models.ResultWin, models.ResultDraw},
	}
	assert.Empty(t, v.ValidateSnapshot(snapshot))

	snapshot.RecentResults = nil
	assert.NotEmpty(t, v.ValidateSnapshot(snapshot), "nil results are a contract violation")
}

func TestValidateOddsSnapshot(t *testing.T) {
	v := NewDataValidator(quietLog())
	snapshot := &models.OddsSnapshot{
		Time:      time.Now(),
		FixtureID: uuid.New(),
		Source:    "overseas",
		Odds:      models.OddsTriple{Home: 2.10, Draw: 3.30, Away: 3.60},
	}
	assert.Empty(t, v.ValidateOddsSnapshot(snapshot))
}

func TestValidateOddsSnapshotRejectsExcessiveOverround(t *testing.T) {
	v := NewDataValidator(quietLog())
	snapshot := &models.OddsSnapshot{
		Time:      time.Now(),
		FixtureID: uuid.New(),
		Source:    "overseas",
		Odds:      models.OddsTriple{Home: 1.10, Draw: 1.10, Away: 1.10},
	}

	errs := v.ValidateOddsSnapshot(snapshot)
	assert.NotEmpty(t, errs)
}
