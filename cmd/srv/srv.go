package main

import (
	"context"
	"net/http"

	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
	"github.com/volunhub/backend/config"
	"github.com/volunhub/backend/internal/domain"
	"github.com/volunhub/backend/internal/model"
	"github.com/volunhub/backend/internal/repository"
	"github.com/volunhub/backend/pkg/authenticator"
	"github.com/volunhub/backend/pkg/logger"
	"github.com/volunhub/backend/pkg/router"
	"github.com/volunhub/backend/pkg/xcontext"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB

	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	skillRepo        repository.SkillRepository
	opportunityRepo  repository.OpportunityRepository
	applicationRepo  repository.ApplicationRepository
	rewardRepo       repository.RewardRepository
	redemptionRepo   repository.RedemptionRepository

	authDomain        domain.AuthDomain
	userDomain        domain.UserDomain
	skillDomain       domain.SkillDomain
	opportunityDomain domain.OpportunityDomain
	applicationDomain domain.ApplicationDomain
	rewardDomain      domain.RewardDomain
	redemptionDomain  domain.RedemptionDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(ct *cli.Context) error {
	configs, err := config.Load(ct.String("config"))
	if err != nil {
		return err
	}

	s.configs = configs
	return nil
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() error {
	var err error
	s.db, err = gorm.Open(mysql.New(mysql.Config{
		DSN:                      s.configs.Database.ConnectionString(),
		DefaultStringSize:        256,
		DisableDatetimePrecision: true,
		DontSupportRenameIndex:   true,
		DontSupportRenameColumn:  true,
	}), &gorm.Config{})
	return err
}

// loadContext assembles the base context every request and command derives
// from.
func (s *srv) loadContext() {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	ctx = xcontext.WithDB(ctx, s.db)
	ctx = xcontext.WithTokenEngine(ctx,
		authenticator.NewTokenEngine[model.AccessToken](s.configs.Auth.TokenSecret))
	s.ctx = ctx
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.refreshTokenRepo = repository.NewRefreshTokenRepository()
	s.skillRepo = repository.NewSkillRepository()
	s.opportunityRepo = repository.NewOpportunityRepository()
	s.applicationRepo = repository.NewApplicationRepository()
	s.rewardRepo = repository.NewRewardRepository()
	s.redemptionRepo = repository.NewRedemptionRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.refreshTokenRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.skillDomain = domain.NewSkillDomain(s.skillRepo, s.userRepo)
	s.opportunityDomain = domain.NewOpportunityDomain(
		s.opportunityRepo, s.applicationRepo, s.skillRepo, s.userRepo)
	s.applicationDomain = domain.NewApplicationDomain(
		s.applicationRepo, s.opportunityRepo, s.userRepo)
	s.rewardDomain = domain.NewRewardDomain(s.rewardRepo, s.redemptionRepo, s.userRepo)
	s.redemptionDomain = domain.NewRedemptionDomain(
		s.redemptionRepo, s.rewardRepo, s.userRepo)
}

func (s *srv) handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   s.configs.ApiServer.AllowOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
	}).Handler(s.router.Handler())
}
