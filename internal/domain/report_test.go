package domain

import (
	"testing"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/testutil"
	"github.com/forumlab/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newReportDomainForTest() *reportDomain {
	return NewReportDomain(
		repository.NewReportRepository(),
		repository.NewPostRepository(),
		repository.NewCommentRepository(),
		repository.NewUserRepository(),
		repository.NewCommunityRepository(),
	)
}

func Test_reportDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newReportDomainForTest()

	resp, err := domain.Create(ctx, &model.CreateReportRequest{
		TargetType: "post",
		TargetID:   testutil.Post1.ID,
		Reason:     "spam",
	})
	require.NoError(t, err)
	require.Equal(t, "pending", resp.Report.Status)
	require.Equal(t, "low", resp.Report.Severity)

	var report entity.Report
	tx := xcontext.DB(ctx).Take(&report, "id=?", resp.Report.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, testutil.User2.ID, report.ReporterID)
	require.Equal(t, entity.ReportTargetPost, report.TargetType)
}

func Test_reportDomain_Create_invalid(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newReportDomainForTest()

	testcases := []struct {
		name string
		req  *model.CreateReportRequest
		code errorx.Code
	}{
		{
			name: "empty reason",
			req:  &model.CreateReportRequest{TargetType: "post", TargetID: testutil.Post1.ID},
			code: errorx.BadRequest,
		},
		{
			name: "invalid target type",
			req:  &model.CreateReportRequest{TargetType: "thread", TargetID: testutil.Post1.ID, Reason: "spam"},
			code: errorx.BadRequest,
		},
		{
			name: "invalid severity",
			req: &model.CreateReportRequest{
				TargetType: "post", TargetID: testutil.Post1.ID, Reason: "spam", Severity: "extreme",
			},
			code: errorx.BadRequest,
		},
		{
			name: "unknown target",
			req:  &model.CreateReportRequest{TargetType: "comment", TargetID: "ghost", Reason: "spam"},
			code: errorx.NotFound,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.Create(ctx, tc.req)
			var errx errorx.Error
			require.ErrorAs(t, err, &errx)
			require.Equal(t, tc.code, errx.Code)
		})
	}
}

func Test_reportDomain_Create_duplicate(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newReportDomainForTest()

	req := &model.CreateReportRequest{
		TargetType: "post",
		TargetID:   testutil.Post1.ID,
		Reason:     "spam",
	}
	_, err := domain.Create(ctx, req)
	require.NoError(t, err)

	// A repeated report of the same target answers with an internal error.
	_, err = domain.Create(ctx, req)
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Internal, errx.Code)

	// The config flag turns the duplicate into a client error.
	cfg := xcontext.Configs(ctx)
	cfg.Report.DuplicateAsBadRequest = true
	flaggedCtx := xcontext.WithConfigs(ctx, cfg)

	_, err = domain.Create(flaggedCtx, req)
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_reportDomain_Resolve(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newReportDomainForTest()

	created, err := domain.Create(ctx, &model.CreateReportRequest{
		TargetType: "user",
		TargetID:   testutil.User1.ID,
		Reason:     "abuse",
	})
	require.NoError(t, err)

	// A regular user cannot resolve reports.
	_, err = domain.Resolve(ctx, &model.ResolveReportRequest{
		ID:     created.Report.ID,
		Action: "approve",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = domain.Resolve(adminCtx, &model.ResolveReportRequest{
		ID:     created.Report.ID,
		Action: "bury",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.Resolve(adminCtx, &model.ResolveReportRequest{
		ID:     created.Report.ID,
		Action: "approve",
	})
	require.NoError(t, err)

	var report entity.Report
	tx := xcontext.DB(ctx).Take(&report, "id=?", created.Report.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, entity.ReportStatusApproved, report.Status)
}

func Test_reportDomain_GetList(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newReportDomainForTest()

	_, err := domain.Create(ctx, &model.CreateReportRequest{
		TargetType: "post",
		TargetID:   testutil.Post1.ID,
		Reason:     "spam",
	})
	require.NoError(t, err)

	// Listing is an admin operation.
	_, err = domain.GetList(ctx, &model.GetReportsRequest{})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	resp, err := domain.GetList(adminCtx, &model.GetReportsRequest{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, resp.Reports, 1)

	resp, err = domain.GetList(adminCtx, &model.GetReportsRequest{Status: "approved"})
	require.NoError(t, err)
	require.Empty(t, resp.Reports)
}
