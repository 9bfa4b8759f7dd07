package main

import (
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
	"github.com/volunhub/backend/internal/middleware"
	"github.com/volunhub/backend/pkg/router"
)

func (s *srv) startApi(ct *cli.Context) error {
	if err := s.loadConfig(ct); err != nil {
		return err
	}
	s.loadLogger()
	if err := s.loadDatabase(); err != nil {
		return err
	}
	s.loadContext()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", s.configs.ApiServer.Host, s.configs.ApiServer.Port),
		Handler: s.handler(),
	}

	s.logger.Infof("Starting server on port %s", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	s.logger.Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.After(middleware.Logger())
	s.router.Before(middleware.WithUserID())

	// Public API
	publicRouter := s.router.Branch()
	{
		router.POST(publicRouter, "/register", s.authDomain.Register)
		router.POST(publicRouter, "/login", s.authDomain.Login)
		router.POST(publicRouter, "/refresh", s.authDomain.Refresh)

		router.GET(publicRouter, "/getUser", s.userDomain.GetUser)
		router.GET(publicRouter, "/getListSkill", s.skillDomain.GetList)
		router.GET(publicRouter, "/getOpportunity", s.opportunityDomain.Get)
		router.GET(publicRouter, "/getListOpportunity", s.opportunityDomain.GetList)
		router.GET(publicRouter, "/getReward", s.rewardDomain.Get)
		router.GET(publicRouter, "/getListReward", s.rewardDomain.GetList)
	}

	// These APIs need authentication with an access token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		// User API
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)

		// Opportunity API
		router.POST(authRouter, "/createOpportunity", s.opportunityDomain.Create)
		router.POST(authRouter, "/updateOpportunity", s.opportunityDomain.Update)
		router.POST(authRouter, "/publishOpportunity", s.opportunityDomain.Publish)
		router.POST(authRouter, "/cancelOpportunity", s.opportunityDomain.Cancel)
		router.GET(authRouter, "/getMyOpportunities", s.opportunityDomain.GetMyList)

		// Application API
		router.POST(authRouter, "/apply", s.applicationDomain.Apply)
		router.POST(authRouter, "/approveApplication", s.applicationDomain.Approve)
		router.POST(authRouter, "/rejectApplication", s.applicationDomain.Reject)
		router.POST(authRouter, "/completeApplication", s.applicationDomain.Complete)
		router.GET(authRouter, "/getMyApplications", s.applicationDomain.GetMyApplications)
		router.GET(authRouter, "/getListApplication", s.applicationDomain.GetListByOpportunity)

		// Redemption API
		router.POST(authRouter, "/redeemReward", s.redemptionDomain.Redeem)
		router.GET(authRouter, "/getMyRedemptions", s.redemptionDomain.GetMyRedemptions)
	}

	// These APIs need the global admin role on top of authentication.
	adminRouter := s.router.Branch()
	adminRouter.Before(middleware.Authenticate())
	adminRouter.Before(middleware.NewOnlyAdmin(s.userRepo).Middleware())
	{
		router.POST(adminRouter, "/createSkill", s.skillDomain.Create)
		router.POST(adminRouter, "/createReward", s.rewardDomain.Create)
		router.POST(adminRouter, "/updateReward", s.rewardDomain.Update)
		router.POST(adminRouter, "/deactivateReward", s.rewardDomain.Deactivate)
	}
}
