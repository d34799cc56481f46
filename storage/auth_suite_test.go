package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/rmcosta/capsulelog/domain"
	"github.com/rmcosta/capsulelog/kvstore"
)

// AuthFlowSuite exercises the session lifecycle end to end the way the UI
// drives it: register, use the session, log out, log back in.
type AuthFlowSuite struct {
	suite.Suite
	svc   *Service
	store *kvstore.Memory
	ctx   context.Context
}

func (s *AuthFlowSuite) SetupTest() {
	s.store = kvstore.NewMemory()
	tokens := NewTokenManager(testSecret, time.Hour)
	s.svc = New(s.store, tokens, nil, "test:", zap.NewNop(), nil)
	s.ctx = context.Background()
}

func (s *AuthFlowSuite) TestFullSessionLifecycle() {
	user, err := s.svc.RegisterUser(s.ctx, "ana@example.com", "pw", "Ana")
	s.Require().NoError(err)

	current := s.svc.GetCurrentUser(s.ctx)
	s.Require().NotNil(current)
	s.Equal(user.ID, current.ID)

	s.svc.LogoutUser(s.ctx)
	s.Nil(s.svc.GetCurrentUser(s.ctx))

	again, err := s.svc.LoginUser(s.ctx, "ana@example.com", "different-password")
	s.Require().NoError(err)
	s.Equal(user.ID, again.ID)
	s.NotNil(s.svc.GetCurrentUser(s.ctx))
}

func (s *AuthFlowSuite) TestSessionSurvivesUnrelatedMutations() {
	_, err := s.svc.RegisterUser(s.ctx, "ana@example.com", "pw", "Ana")
	s.Require().NoError(err)

	_, err = s.svc.CreateDailyRecord(s.ctx, domain.NewDailyRecord{
		Date: domain.DateOf(time.Now()), Capsules: 2, Time: "08:00", Completed: true,
	})
	s.Require().NoError(err)

	theme := domain.ThemeDark
	_, err = s.svc.UpdateUserSettings(s.ctx, domain.SettingsUpdate{Theme: &theme})
	s.Require().NoError(err)

	s.NotNil(s.svc.GetCurrentUser(s.ctx))
}

func (s *AuthFlowSuite) TestRegisterSecondUserReplacesSession() {
	first, err := s.svc.RegisterUser(s.ctx, "ana@example.com", "pw", "Ana")
	s.Require().NoError(err)
	s.svc.LogoutUser(s.ctx)

	second, err := s.svc.RegisterUser(s.ctx, "rui@example.com", "pw", "Rui")
	s.Require().NoError(err)
	s.NotEqual(first.ID, second.ID)

	current := s.svc.GetCurrentUser(s.ctx)
	s.Require().NotNil(current)
	s.Equal(second.ID, current.ID)
}

func TestAuthFlowSuite(t *testing.T) {
	suite.Run(t, new(AuthFlowSuite))
}
