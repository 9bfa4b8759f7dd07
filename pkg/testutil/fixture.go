package testutil

import (
	"context"
	"time"

	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/internal/repository"
)

// Fixture rows shared by domain tests. CreateFixtureDb inserts copies of
// them, so tests must not mutate these variables.
var (
	Admin = &entity.User{
		Base:  entity.Base{ID: "admin"},
		Name:  "admin",
		Email: "admin@example.com",
		Role:  entity.RoleAdmin,
	}

	Promoter1 = &entity.User{
		Base:  entity.Base{ID: "promoter1"},
		Name:  "promoter1",
		Email: "promoter1@example.com",
		Role:  entity.RolePromoter,
	}

	Promoter2 = &entity.User{
		Base:  entity.Base{ID: "promoter2"},
		Name:  "promoter2",
		Email: "promoter2@example.com",
		Role:  entity.RolePromoter,
	}

	Partner1 = &entity.User{
		Base:  entity.Base{ID: "partner1"},
		Name:  "partner1",
		Email: "partner1@example.com",
		Role:  entity.RolePartner,
	}

	Volunteer1 = &entity.User{
		Base:   entity.Base{ID: "volunteer1"},
		Name:   "volunteer1",
		Email:  "volunteer1@example.com",
		Role:   entity.RoleVolunteer,
		Points: 100,
	}

	Volunteer2 = &entity.User{
		Base:   entity.Base{ID: "volunteer2"},
		Name:   "volunteer2",
		Email:  "volunteer2@example.com",
		Role:   entity.RoleVolunteer,
		Points: 30,
	}

	Volunteer3 = &entity.User{
		Base:  entity.Base{ID: "volunteer3"},
		Name:  "volunteer3",
		Email: "volunteer3@example.com",
		Role:  entity.RoleVolunteer,
	}

	Skill1 = &entity.Skill{
		Base: entity.Base{ID: "skill1"},
		Name: "first-aid",
	}

	Skill2 = &entity.Skill{
		Base: entity.Base{ID: "skill2"},
		Name: "logistics",
	}

	Skill3 = &entity.Skill{
		Base: entity.Base{ID: "skill3"},
		Name: "teaching",
	}

	// Opportunity1 is open with two spots.
	Opportunity1 = &entity.Opportunity{
		Base:          entity.Base{ID: "opportunity1"},
		PromoterID:    Promoter1.ID,
		Title:         "Beach cleanup",
		Description:   "Cleaning up the northern beach",
		StartDate:     time.Now().AddDate(0, 0, 7),
		EndDate:       time.Now().AddDate(0, 0, 8),
		MaxVolunteers: 2,
		Points:        50,
		Status:        entity.OpportunityOpen,
	}

	// Opportunity2 is still a draft.
	Opportunity2 = &entity.Opportunity{
		Base:          entity.Base{ID: "opportunity2"},
		PromoterID:    Promoter1.ID,
		Title:         "Food bank shift",
		Description:   "Sorting donations at the food bank",
		StartDate:     time.Now().AddDate(0, 0, 14),
		EndDate:       time.Now().AddDate(0, 0, 15),
		MaxVolunteers: 1,
		Points:        20,
		Status:        entity.OpportunityDraft,
	}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertSkills(ctx)
	InsertOpportunities(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	users := []*entity.User{
		Admin, Promoter1, Promoter2, Partner1, Volunteer1, Volunteer2, Volunteer3,
	}

	for _, user := range users {
		u := *user
		if err := userRepo.Create(ctx, &u); err != nil {
			panic(err)
		}
	}
}

func InsertSkills(ctx context.Context) {
	skillRepo := repository.NewSkillRepository()
	for _, skill := range []*entity.Skill{Skill1, Skill2, Skill3} {
		s := *skill
		if err := skillRepo.Create(ctx, &s); err != nil {
			panic(err)
		}
	}
}

func InsertOpportunities(ctx context.Context) {
	opportunityRepo := repository.NewOpportunityRepository()
	for _, opportunity := range []*entity.Opportunity{Opportunity1, Opportunity2} {
		o := *opportunity
		if err := opportunityRepo.Create(ctx, &o); err != nil {
			panic(err)
		}
	}

	if err := opportunityRepo.ReplaceSkills(ctx, Opportunity1.ID, []string{Skill1.ID, Skill2.ID}); err != nil {
		panic(err)
	}

	if err := opportunityRepo.ReplaceSkills(ctx, Opportunity2.ID, []string{Skill2.ID}); err != nil {
		panic(err)
	}
}
