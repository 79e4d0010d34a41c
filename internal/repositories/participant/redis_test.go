package participant

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/mysterybox/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newParticipant(id, phone, code string) *models.Participant {
	return &models.Participant{
		ID:              id,
		Name:            "Maria " + id,
		Phone:           phone,
		Neighborhood:    "Centro",
		City:            "Recife",
		OwnReferralCode: code,
		CreatedAt:       s.testNow,
		UpdatedAt:       s.testNow,
	}
}

func (s *RedisRepositoryTestSuite) create(p *models.Participant) {
	s.Require().NoError(s.repo.CreateParticipant(s.ctx, &CreateParticipantInput{Participant: p}))
}

func (s *RedisRepositoryTestSuite) TestCreateAndLookups() {
	s.create(s.newParticipant("p-1", "81999990001", "ABCD1234"))

	byID, err := s.repo.GetParticipant(s.ctx, &GetParticipantInput{ParticipantID: "p-1"})
	s.Require().NoError(err)
	s.Equal("Maria p-1", byID.Name)
	s.Equal("Recife", byID.City)
	s.Zero(byID.ExtraGuesses)

	byPhone, err := s.repo.GetParticipantByPhone(s.ctx, &GetParticipantByPhoneInput{Phone: "81999990001"})
	s.Require().NoError(err)
	s.Equal("p-1", byPhone.ID)

	byCode, err := s.repo.GetParticipantByReferralCode(s.ctx, &GetParticipantByReferralCodeInput{ReferralCode: "abcd1234"})
	s.Require().NoError(err)
	s.Equal("p-1", byCode.ID)
}

func (s *RedisRepositoryTestSuite) TestLookups_NotFound() {
	_, err := s.repo.GetParticipant(s.ctx, &GetParticipantInput{ParticipantID: "missing"})
	s.ErrorIs(err, ErrParticipantNotFound)

	_, err = s.repo.GetParticipantByPhone(s.ctx, &GetParticipantByPhoneInput{Phone: "000"})
	s.ErrorIs(err, ErrParticipantNotFound)

	_, err = s.repo.GetParticipantByReferralCode(s.ctx, &GetParticipantByReferralCodeInput{ReferralCode: "NOPE"})
	s.ErrorIs(err, ErrParticipantNotFound)
}

func (s *RedisRepositoryTestSuite) TestCreateParticipant_UniqueKeys() {
	s.create(s.newParticipant("p-1", "81999990001", "ABCD1234"))

	err := s.repo.CreateParticipant(s.ctx, &CreateParticipantInput{
		Participant: s.newParticipant("p-2", "81999990001", "ZZZZ9999"),
	})
	s.ErrorIs(err, ErrPhoneAlreadyRegistered)

	err = s.repo.CreateParticipant(s.ctx, &CreateParticipantInput{
		Participant: s.newParticipant("p-3", "81999990003", "abcd1234"),
	})
	s.ErrorIs(err, ErrReferralCodeTaken)

	_, err = s.repo.GetParticipant(s.ctx, &GetParticipantInput{ParticipantID: "p-2"})
	s.ErrorIs(err, ErrParticipantNotFound)
}

func (s *RedisRepositoryTestSuite) TestUpdateProfile_ReferredByIsSetOnce() {
	s.create(s.newParticipant("p-1", "81999990001", "ABCD1234"))
	later := s.testNow.Add(time.Minute)

	updated, err := s.repo.UpdateProfile(s.ctx, &UpdateProfileInput{
		ParticipantID:  "p-1",
		Name:           "Maria Silva",
		ReferredByCode: "ref00001",
		UpdatedAt:      later,
	})
	s.Require().NoError(err)
	s.Equal("Maria Silva", updated.Name)
	s.Equal("Centro", updated.Neighborhood)
	s.Equal("REF00001", updated.ReferredByCode)
	s.True(later.Equal(updated.UpdatedAt))

	updated, err = s.repo.UpdateProfile(s.ctx, &UpdateProfileInput{
		ParticipantID:  "p-1",
		ReferredByCode: "OTHER999",
	})
	s.Require().NoError(err)
	s.Equal("REF00001", updated.ReferredByCode)
	s.Equal("Maria Silva", updated.Name)
}

func (s *RedisRepositoryTestSuite) TestGrantReferralReward_Idempotent() {
	s.create(s.newParticipant("referrer", "81999990001", "AAAA1111"))
	s.create(s.newParticipant("referred", "81999990002", "BBBB2222"))

	first, err := s.repo.GrantReferralReward(s.ctx, &GrantReferralRewardInput{
		ReferrerID: "referrer",
		ReferredID: "referred",
		CreatedAt:  s.testNow,
	})
	s.Require().NoError(err)
	s.True(first.Granted)
	s.Equal(1, first.Referrer.ExtraGuesses)
	s.Equal(2, first.Referrer.Quota())

	second, err := s.repo.GrantReferralReward(s.ctx, &GrantReferralRewardInput{
		ReferrerID: "referrer",
		ReferredID: "referred",
		CreatedAt:  s.testNow,
	})
	s.Require().NoError(err)
	s.False(second.Granted)
	s.Equal(1, second.Referrer.ExtraGuesses)

	reward, err := s.repo.GetReferralReward(s.ctx, &GetReferralRewardInput{ReferredID: "referred"})
	s.Require().NoError(err)
	s.Equal("referrer", reward.ReferrerID)
	s.True(reward.Granted)
}

func (s *RedisRepositoryTestSuite) TestGrantReferralReward_ConcurrentGrantsOnce() {
	s.create(s.newParticipant("referrer", "81999990001", "AAAA1111"))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.repo.GrantReferralReward(s.ctx, &GrantReferralRewardInput{
				ReferrerID: "referrer",
				ReferredID: "referred",
				CreatedAt:  s.testNow,
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	referrer, err := s.repo.GetParticipant(s.ctx, &GetParticipantInput{ParticipantID: "referrer"})
	s.Require().NoError(err)
	s.Equal(1, referrer.ExtraGuesses)
}

func (s *RedisRepositoryTestSuite) TestGrantReferralReward_UnknownReferrer() {
	_, err := s.repo.GrantReferralReward(s.ctx, &GrantReferralRewardInput{
		ReferrerID: "ghost",
		ReferredID: "referred",
	})
	s.ErrorIs(err, ErrParticipantNotFound)

	_, err = s.repo.GetReferralReward(s.ctx, &GetReferralRewardInput{ReferredID: "referred"})
	s.ErrorIs(err, ErrReferralRewardNotFound)
}

func (s *RedisRepositoryTestSuite) TestResetExtraGuesses() {
	s.create(s.newParticipant("referrer", "81999990001", "AAAA1111"))
	s.create(s.newParticipant("other", "81999990002", "BBBB2222"))

	for _, referred := range []string{"r-1", "r-2"} {
		_, err := s.repo.GrantReferralReward(s.ctx, &GrantReferralRewardInput{ReferrerID: "referrer", ReferredID: referred})
		s.Require().NoError(err)
	}

	output, err := s.repo.ResetExtraGuesses(s.ctx, &ResetExtraGuessesInput{UpdatedAt: s.testNow})
	s.Require().NoError(err)
	s.Equal(1, output.ParticipantsReset)

	referrer, err := s.repo.GetParticipant(s.ctx, &GetParticipantInput{ParticipantID: "referrer"})
	s.Require().NoError(err)
	s.Zero(referrer.ExtraGuesses)
	s.Equal(1, referrer.Quota())
}
