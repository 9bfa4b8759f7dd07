package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/volunhub/backend/internal/entity"
	"github.com/volunhub/backend/internal/repository"
	"github.com/volunhub/backend/pkg/testutil"
	"gorm.io/gorm"
)

func TestApplicationRepository_UpdateReviewByID_StaleReview(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	applicationRepo := repository.NewApplicationRepository()

	application := &entity.Application{
		Base:          entity.Base{ID: "application"},
		OpportunityID: testutil.Opportunity1.ID,
		VolunteerID:   testutil.Volunteer1.ID,
		Status:        entity.ApplicationPending,
	}
	require.NoError(t, applicationRepo.Create(ctx, application))

	// Two reviewers read the application while it is still pending. The
	// first review wins.
	err := applicationRepo.UpdateReviewByID(ctx, application.ID, &entity.Application{
		Status:     entity.ApplicationApproved,
		ReviewerID: testutil.Promoter1.ID,
		ReviewedAt: time.Now(),
	})
	require.NoError(t, err)

	// The second review acts on the stale read; the pending precondition
	// rejects it.
	err = applicationRepo.UpdateReviewByID(ctx, application.ID, &entity.Application{
		Status:     entity.ApplicationRejected,
		ReviewerID: testutil.Promoter2.ID,
		ReviewedAt: time.Now(),
	})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	reviewed, err := applicationRepo.GetByID(ctx, application.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ApplicationApproved, reviewed.Status)
	require.Equal(t, testutil.Promoter1.ID, reviewed.ReviewerID)
}
