package coach

import (
	"context"
	"testing"

	"github.com/forkcast/forkcast/internal/domain/catalog"
	"github.com/forkcast/forkcast/internal/domain/preference"
	"github.com/forkcast/forkcast/internal/ports/inbound"
	"github.com/forkcast/forkcast/pkg/errors"
	"github.com/forkcast/forkcast/test/testutils"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type CoachServiceTestSuite struct {
	suite.Suite

	prefs  *testutils.MemoryPreferenceRepository
	events *testutils.MemoryEventRepository
	cache  *testutils.MemoryCache
	chat   *testutils.StubChatService
	speech *testutils.StubSpeechService

	service inbound.CoachService
}

func TestCoachServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CoachServiceTestSuite))
}

func (s *CoachServiceTestSuite) SetupTest() {
	s.prefs = testutils.NewMemoryPreferenceRepository()
	s.events = testutils.NewMemoryEventRepository()
	s.cache = testutils.NewMemoryCache()
	s.chat = &testutils.StubChatService{}
	s.speech = &testutils.StubSpeechService{}

	s.service = NewCoachService(
		s.serviceCatalog(),
		s.prefs,
		s.events,
		s.cache,
		s.chat,
		s.speech,
		Options{TopN: 3},
		zap.NewNop(),
	)
}

// serviceCatalog builds a four-item catalog so the top-3 cut is
// observable.
func (s *CoachServiceTestSuite) serviceCatalog() *catalog.Catalog {
	c, err := catalog.New(
		[]catalog.Restaurant{
			{ID: "r1", Name: "Green Bowl Co.", Neighborhood: "Downtown"},
			{ID: "r2", Name: "Protein House", Neighborhood: "Midtown"},
		},
		[]catalog.MenuItem{
			{ItemID: "m1", RestaurantID: "r1", Name: "Tofu Power Bowl", Tags: []string{"veg", "high_protein"}, CaloriesEst: 500, ProteinEst: 25},
			{ItemID: "m2", RestaurantID: "r1", Name: "Acai Bowl", Tags: []string{"veg", "no_egg"}, CaloriesEst: 300, ProteinEst: 5},
			{ItemID: "m3", RestaurantID: "r2", Name: "Grilled Chicken Breast", Tags: []string{"high_protein", "no_egg"}, CaloriesEst: 400, ProteinEst: 40},
			{ItemID: "m4", RestaurantID: "r2", Name: "Steak & Eggs", Tags: []string{"high_protein"}, CaloriesEst: 700, ProteinEst: 55},
		},
		[]catalog.PlatformListing{
			{ItemID: "m1", PlatformName: "UberEats", BasePrice: 12.00, DeliveryFee: 2.00},
			{ItemID: "m1", PlatformName: "DoorDash", BasePrice: 13.00, DeliveryFee: 0.99},
			{ItemID: "m2", PlatformName: "UberEats", BasePrice: 9.00, DeliveryFee: 2.50},
			{ItemID: "m3", PlatformName: "DoorDash", BasePrice: 15.00, DeliveryFee: 1.50},
			{ItemID: "m4", PlatformName: "Grubhub", BasePrice: 17.00, DeliveryFee: 3.00},
		},
		[]catalog.Coupon{
			{Code: "DASH5", PlatformName: "DoorDash", DiscountValue: 5.0, MinSpend: 15.0},
		},
		nil,
	)
	s.Require().NoError(err)
	return c
}

func (s *CoachServiceTestSuite) TestRank_ReturnsRankedItems() {
	result, err := s.service.Rank(context.Background(), inbound.RankCommand{
		UserID:  "u1",
		Message: "high protein lunch",
	})

	s.Require().NoError(err)
	s.True(s.prefs.HasProfile("u1"))
	s.Equal([]string{"message"}, s.events.ActionsForUser("u1"))
	s.Equal(preference.ToneNeutral, result.Tone)

	// m1, m3, m4 carry high_protein; m3 wins on its couponed DoorDash
	// listing (15 - 5 + 1.50 = 11.50, score -11.50 + 4 = -7.50)
	s.Require().Len(result.Items, 3)
	s.Equal("Grilled Chicken Breast", result.Items[0].Name)
	s.Equal("Protein House", result.Items[0].Restaurant)
	s.Equal("DoorDash", result.Items[0].BestOffer.Platform)
	s.InDelta(11.50, result.Items[0].BestOffer.EffectivePrice, 1e-9)
	s.InDelta(-7.50, result.Items[0].Score, 1e-9)
}

func (s *CoachServiceTestSuite) TestRank_TruncatesToTopN() {
	result, err := s.service.Rank(context.Background(), inbound.RankCommand{
		UserID:  "u1",
		Message: "anything works",
	})

	s.Require().NoError(err)
	s.Len(result.Items, 3, "four survivors cut to the configured top 3")
}

func (s *CoachServiceTestSuite) TestRank_EmptyResultIsNotAnError() {
	result, err := s.service.Rank(context.Background(), inbound.RankCommand{
		UserID:  "u1",
		Message: "veg under 5",
	})

	s.Require().NoError(err)
	s.Empty(result.Items)
	s.NotEmpty(result.CoachText)
}

func (s *CoachServiceTestSuite) TestRank_FallbackTextWhenChatEmpty() {
	s.chat.Text = ""

	result, err := s.service.Rank(context.Background(), inbound.RankCommand{
		UserID:  "u1",
		Message: "veg please",
	})

	s.Require().NoError(err)
	s.Contains(result.CoachText, "Hey there!")
}

func (s *CoachServiceTestSuite) TestRank_FallbackTextWhenChatFails() {
	s.chat.Err = errors.NewExternalServiceError("chat pipeline", nil)

	result, err := s.service.Rank(context.Background(), inbound.RankCommand{
		UserID:  "u1",
		Message: "veg please",
	})

	s.Require().NoError(err, "chat failure degrades, never aborts")
	s.Contains(result.CoachText, "Hey there!")
}

func (s *CoachServiceTestSuite) TestRank_UsesChatTextWhenAvailable() {
	s.chat.Text = "Here is my considered recommendation."
	s.speech.URL = "./audio/response_1.mp3"

	result, err := s.service.Rank(context.Background(), inbound.RankCommand{
		UserID:  "u1",
		Message: "veg please",
	})

	s.Require().NoError(err)
	s.Equal("Here is my considered recommendation.", result.CoachText)
	s.Equal("./audio/response_1.mp3", result.AudioURL)
}

func (s *CoachServiceTestSuite) TestRank_SpeechFailureDegradesToTextOnly() {
	s.speech.Err = errors.NewExternalServiceError("speech synthesis", nil)

	result, err := s.service.Rank(context.Background(), inbound.RankCommand{
		UserID:  "u1",
		Message: "veg please",
	})

	s.Require().NoError(err)
	s.Empty(result.AudioURL)
	s.NotEmpty(result.CoachText)
}

func (s *CoachServiceTestSuite) TestRank_SecondCallServedFromCache() {
	cmd := inbound.RankCommand{UserID: "u1", Message: "high protein"}

	_, err := s.service.Rank(context.Background(), cmd)
	s.Require().NoError(err)
	_, err = s.service.Rank(context.Background(), cmd)
	s.Require().NoError(err)

	s.Equal(1, s.chat.Calls, "cached response skips the collaborators")
}

func (s *CoachServiceTestSuite) TestRecordFeedback_WorkedExample() {
	// Rating 9 on a veg-tagged choice from a zero profile.
	err := s.service.RecordFeedback(context.Background(), inbound.FeedbackCommand{
		UserID:       "u1",
		ChosenItemID: "m2",
		Rating:       9,
	})

	s.Require().NoError(err)
	s.True(s.prefs.HasProfile("u1"))
	s.Equal(1.0, s.prefs.Weight("u1", "veg"))
	s.Equal(1.0, s.prefs.Weight("u1", "no_egg"))
	s.Equal(1.0, s.prefs.Weight("u1", preference.CoachStyleTag))
	s.Equal([]string{"feedback"}, s.events.ActionsForUser("u1"))
}

func (s *CoachServiceTestSuite) TestRecordFeedback_RejectedPenaltyOncePerCall() {
	// m3 and m4 both carry high_protein, which m2 does not; the
	// penalty still lands once.
	err := s.service.RecordFeedback(context.Background(), inbound.FeedbackCommand{
		UserID:           "u1",
		ChosenItemID:     "m2",
		NotChosenItemIDs: []string{"m3", "m4"},
		Rating:           6,
	})

	s.Require().NoError(err)
	s.Equal(-0.5, s.prefs.Weight("u1", "high_protein"))
	s.Equal(0.0, s.prefs.Weight("u1", preference.CoachStyleTag))
}

func (s *CoachServiceTestSuite) TestRecordFeedback_UnknownItemIsNoOp() {
	err := s.service.RecordFeedback(context.Background(), inbound.FeedbackCommand{
		UserID:           "u1",
		ChosenItemID:     "ghost",
		NotChosenItemIDs: []string{"also-ghost"},
		Rating:           6,
	})

	s.Require().NoError(err)
	s.Equal(0.0, s.prefs.Weight("u1", "veg"))
	s.Equal(0.0, s.prefs.Weight("u1", "high_protein"))
}

func (s *CoachServiceTestSuite) TestRecordFeedback_PersistenceFailureIsRetryable() {
	s.prefs.FailIncrements = 1

	err := s.service.RecordFeedback(context.Background(), inbound.FeedbackCommand{
		UserID:       "u1",
		ChosenItemID: "m1",
		Rating:       6,
	})

	s.Require().Error(err)
	appErr, ok := err.(*errors.AppError)
	s.Require().True(ok)
	s.True(appErr.Retryable())
}

func (s *CoachServiceTestSuite) TestRecordFeedback_InvalidatesRankCache() {
	cmd := inbound.RankCommand{UserID: "u1", Message: "anything"}

	_, err := s.service.Rank(context.Background(), cmd)
	s.Require().NoError(err)

	err = s.service.RecordFeedback(context.Background(), inbound.FeedbackCommand{
		UserID:       "u1",
		ChosenItemID: "m1",
		Rating:       9,
	})
	s.Require().NoError(err)

	_, err = s.service.Rank(context.Background(), cmd)
	s.Require().NoError(err)

	s.Equal(2, s.chat.Calls, "feedback must force a fresh ranking")
}

func (s *CoachServiceTestSuite) TestToneShiftsAfterRepeatedHighRatings() {
	// Two ratings of 9 push coach_style to 2.0, past the hype
	// threshold.
	for i := 0; i < 2; i++ {
		err := s.service.RecordFeedback(context.Background(), inbound.FeedbackCommand{
			UserID:       "u1",
			ChosenItemID: "m1",
			Rating:       9,
		})
		s.Require().NoError(err)
	}

	result, err := s.service.Rank(context.Background(), inbound.RankCommand{
		UserID:  "u1",
		Message: "anything",
	})

	s.Require().NoError(err)
	s.Equal(preference.ToneHype, result.Tone)
}

func TestNewCoachService_DefaultsApplied(t *testing.T) {
	prefs := testutils.NewMemoryPreferenceRepository()
	events := testutils.NewMemoryEventRepository()
	cache := testutils.NewMemoryCache()

	c, err := catalog.New(
		[]catalog.Restaurant{{ID: "r1", Name: "A"}},
		nil, nil, nil, nil,
	)
	require.NoError(t, err)

	svc := NewCoachService(c, prefs, events, cache,
		&testutils.StubChatService{}, &testutils.StubSpeechService{},
		Options{}, zap.NewNop())

	result, err := svc.Rank(context.Background(), inbound.RankCommand{UserID: "u1", Message: "hi"})
	require.NoError(t, err)
	require.Empty(t, result.Items)
}
