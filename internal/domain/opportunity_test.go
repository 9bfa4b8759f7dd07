package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/internal/model"
	"github.com/volunhub/backend/internal/repository"
	"github.com/volunhub/backend/pkg/testutil"
)

func Test_opportunityDomain_Create(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewOpportunityDomain(
		repository.NewOpportunityRepository(),
		repository.NewApplicationRepository(),
		repository.NewSkillRepository(),
		repository.NewUserRepository(),
	)

	start := time.Now().AddDate(0, 0, 7)
	end := start.AddDate(0, 0, 1)

	promoterCtx := testutil.NewMockContextWithUserID(ctx, testutil.Promoter1.ID)
	resp, err := d.Create(promoterCtx, &model.CreateOpportunityRequest{
		Title:         "Tree planting",
		Description:   "Planting trees in the city park",
		StartDate:     start,
		EndDate:       end,
		MaxVolunteers: 3,
		Points:        10,
		SkillIDs:      []string{testutil.Skill1.ID, testutil.Skill2.ID},
	})
	require.NoError(t, err)
	require.Equal(t, "draft", resp.Status)
	require.Equal(t, testutil.Promoter1.ID, resp.PromoterID)
	require.Len(t, resp.Skills, 2)

	// End date must come after start date.
	_, err = d.Create(promoterCtx, &model.CreateOpportunityRequest{
		Title:         "Tree planting",
		StartDate:     end,
		EndDate:       start,
		MaxVolunteers: 3,
		SkillIDs:      []string{testutil.Skill1.ID},
	})
	require.Error(t, err)
	require.Equal(t, "End date must be after start date", err.Error())

	// Skills cannot be empty.
	_, err = d.Create(promoterCtx, &model.CreateOpportunityRequest{
		Title:         "Tree planting",
		StartDate:     start,
		EndDate:       end,
		MaxVolunteers: 3,
	})
	require.Error(t, err)
	require.Equal(t, "At least one skill is required", err.Error())

	// Every skill id must resolve.
	_, err = d.Create(promoterCtx, &model.CreateOpportunityRequest{
		Title:         "Tree planting",
		StartDate:     start,
		EndDate:       end,
		MaxVolunteers: 3,
		SkillIDs:      []string{"gardening"},
	})
	require.Error(t, err)
	require.Equal(t, "Not found skill gardening", err.Error())

	// Volunteers cannot create opportunities.
	volunteerCtx := testutil.NewMockContextWithUserID(ctx, testutil.Volunteer1.ID)
	_, err = d.Create(volunteerCtx, &model.CreateOpportunityRequest{
		Title:         "Tree planting",
		StartDate:     start,
		EndDate:       end,
		MaxVolunteers: 3,
		SkillIDs:      []string{testutil.Skill1.ID},
	})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())
}

func Test_opportunityDomain_PublishAndCancel(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewOpportunityDomain(
		repository.NewOpportunityRepository(),
		repository.NewApplicationRepository(),
		repository.NewSkillRepository(),
		repository.NewUserRepository(),
	)

	// Another promoter cannot publish someone else's draft.
	otherCtx := testutil.NewMockContextWithUserID(ctx, testutil.Promoter2.ID)
	_, err := d.Publish(otherCtx, &model.PublishOpportunityRequest{ID: testutil.Opportunity2.ID})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	promoterCtx := testutil.NewMockContextWithUserID(ctx, testutil.Promoter1.ID)
	resp, err := d.Publish(promoterCtx, &model.PublishOpportunityRequest{ID: testutil.Opportunity2.ID})
	require.NoError(t, err)
	require.Equal(t, "open", resp.Status)

	// Publishing is draft-only.
	_, err = d.Publish(promoterCtx, &model.PublishOpportunityRequest{ID: testutil.Opportunity2.ID})
	require.Error(t, err)
	require.Equal(t, "Cannot publish a open opportunity", err.Error())

	cancelResp, err := d.Cancel(promoterCtx, &model.CancelOpportunityRequest{ID: testutil.Opportunity2.ID})
	require.NoError(t, err)
	require.Equal(t, "cancelled", cancelResp.Status)

	_, err = d.Cancel(promoterCtx, &model.CancelOpportunityRequest{ID: testutil.Opportunity2.ID})
	require.Error(t, err)
	require.Equal(t, "Cannot cancel a cancelled opportunity", err.Error())

	// Admins can cancel any opportunity.
	adminCtx := testutil.NewMockContextWithUserID(ctx, testutil.Admin.ID)
	cancelResp, err = d.Cancel(adminCtx, &model.CancelOpportunityRequest{ID: testutil.Opportunity1.ID})
	require.NoError(t, err)
	require.Equal(t, "cancelled", cancelResp.Status)
}

func Test_opportunityDomain_Update(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewOpportunityDomain(
		repository.NewOpportunityRepository(),
		repository.NewApplicationRepository(),
		repository.NewSkillRepository(),
		repository.NewUserRepository(),
	)

	otherCtx := testutil.NewMockContextWithUserID(ctx, testutil.Promoter2.ID)
	newTitle := "Beach cleanup (updated)"
	_, err := d.Update(otherCtx, &model.UpdateOpportunityRequest{
		ID:    testutil.Opportunity1.ID,
		Title: &newTitle,
	})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	promoterCtx := testutil.NewMockContextWithUserID(ctx, testutil.Promoter1.ID)
	maxVolunteers := 5
	resp, err := d.Update(promoterCtx, &model.UpdateOpportunityRequest{
		ID:            testutil.Opportunity1.ID,
		Title:         &newTitle,
		MaxVolunteers: &maxVolunteers,
		SkillIDs:      []string{testutil.Skill3.ID},
	})
	require.NoError(t, err)
	require.Equal(t, newTitle, resp.Title)
	require.Equal(t, 5, resp.MaxVolunteers)
	require.Len(t, resp.Skills, 1)
	require.Equal(t, testutil.Skill3.ID, resp.Skills[0].ID)

	// The patched date pair must stay ordered.
	badEnd := testutil.Opportunity1.StartDate.AddDate(0, 0, -1)
	_, err = d.Update(promoterCtx, &model.UpdateOpportunityRequest{
		ID:      testutil.Opportunity1.ID,
		EndDate: &badEnd,
	})
	require.Error(t, err)
	require.Equal(t, "End date must be after start date", err.Error())

	// Frozen opportunities reject updates.
	_, err = d.Cancel(promoterCtx, &model.CancelOpportunityRequest{ID: testutil.Opportunity1.ID})
	require.NoError(t, err)

	_, err = d.Update(promoterCtx, &model.UpdateOpportunityRequest{
		ID:    testutil.Opportunity1.ID,
		Title: &newTitle,
	})
	require.Error(t, err)
	require.Equal(t, "Cannot update a cancelled opportunity", err.Error())
}

func Test_opportunityDomain_Update_ReduceBelowApproved(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	applicationRepo := repository.NewApplicationRepository()
	d := NewOpportunityDomain(
		repository.NewOpportunityRepository(),
		applicationRepo,
		repository.NewSkillRepository(),
		repository.NewUserRepository(),
	)

	// Both spots of Opportunity1 are taken.
	for i, volunteerID := range []string{testutil.Volunteer1.ID, testutil.Volunteer2.ID} {
		err := applicationRepo.Create(ctx, &entity.Application{
			Base:          entity.Base{ID: fmt.Sprintf("approved application %d", i)},
			OpportunityID: testutil.Opportunity1.ID,
			VolunteerID:   volunteerID,
			Status:        entity.ApplicationApproved,
			ReviewerID:    testutil.Promoter1.ID,
			ReviewedAt:    time.Now(),
		})
		require.NoError(t, err)
	}

	promoterCtx := testutil.NewMockContextWithUserID(ctx, testutil.Promoter1.ID)
	one := 1
	_, err := d.Update(promoterCtx, &model.UpdateOpportunityRequest{
		ID:            testutil.Opportunity1.ID,
		MaxVolunteers: &one,
	})
	require.Error(t, err)
	require.Equal(t, "Cannot reduce max volunteers below 2 approved volunteers", err.Error())

	// Reducing down to the approved count is allowed.
	two := 2
	resp, err := d.Update(promoterCtx, &model.UpdateOpportunityRequest{
		ID:            testutil.Opportunity1.ID,
		MaxVolunteers: &two,
	})
	require.NoError(t, err)
	require.Equal(t, 2, resp.MaxVolunteers)
}

func Test_opportunityDomain_GetList(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	opportunityRepo := repository.NewOpportunityRepository()
	d := NewOpportunityDomain(
		opportunityRepo,
		repository.NewApplicationRepository(),
		repository.NewSkillRepository(),
		repository.NewUserRepository(),
	)

	highPoints := &entity.Opportunity{
		Base:          entity.Base{ID: "high points opportunity"},
		PromoterID:    testutil.Promoter2.ID,
		Title:         "Marathon support crew",
		StartDate:     time.Now().AddDate(0, 1, 0),
		EndDate:       time.Now().AddDate(0, 1, 1),
		MaxVolunteers: 10,
		Points:        500,
		Status:        entity.OpportunityOpen,
	}
	require.NoError(t, opportunityRepo.Create(ctx, highPoints))
	require.NoError(t, opportunityRepo.ReplaceSkills(ctx, highPoints.ID, []string{testutil.Skill3.ID}))

	// Only open opportunities are listed; the draft fixture stays hidden.
	resp, err := d.GetList(ctx, &model.GetListOpportunityRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Opportunities, 2)

	resp, err = d.GetList(ctx, &model.GetListOpportunityRequest{
		SkillIDs: []string{testutil.Skill3.ID},
	})
	require.NoError(t, err)
	require.Len(t, resp.Opportunities, 1)
	require.Equal(t, highPoints.ID, resp.Opportunities[0].ID)

	resp, err = d.GetList(ctx, &model.GetListOpportunityRequest{MinPoints: 100})
	require.NoError(t, err)
	require.Len(t, resp.Opportunities, 1)
	require.Equal(t, highPoints.ID, resp.Opportunities[0].ID)

	resp, err = d.GetList(ctx, &model.GetListOpportunityRequest{MaxPoints: 100})
	require.NoError(t, err)
	require.Len(t, resp.Opportunities, 1)
	require.Equal(t, testutil.Opportunity1.ID, resp.Opportunities[0].ID)

	_, err = d.GetList(ctx, &model.GetListOpportunityRequest{Limit: 51})
	require.Error(t, err)
	require.Equal(t, "Exceed the maximum of limit (50)", err.Error())
}
