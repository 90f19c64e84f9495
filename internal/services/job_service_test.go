package services

import (
	"testing"
	"time"

	"github.com/adisharma/job-tracker-api/internal/models"
	"github.com/adisharma/job-tracker-api/internal/repository"
	"github.com/adisharma/job-tracker-api/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testNow is a Wednesday; its week runs 2025-03-10 through 2025-03-16.
var testNow = time.Date(2025, time.March, 12, 15, 4, 5, 0, time.UTC)

func testClock() time.Time {
	return testNow
}

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.AdminActivity{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func newTestJobService(t *testing.T) (*JobService, *gorm.DB) {
	t.Helper()
	db := setupServiceDB(t)
	svc := NewJobService(repository.NewJobRepository(db), repository.NewActivityRepository(db))
	svc.SetClock(testClock)
	return svc, db
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	require.NoError(t, err)
	return d
}

func seedJob(t *testing.T, db *gorm.DB, job models.Job) models.Job {
	t.Helper()
	if job.UserID == 0 {
		job.UserID = 1
	}
	if job.Status == "" {
		job.Status = models.StatusApplied
	}
	if job.Priority == "" {
		job.Priority = models.PriorityMedium
	}
	if job.ApplyDate.IsZero() {
		job.ApplyDate = mustDate(t, "2025-03-01")
	}
	require.NoError(t, db.Create(&job).Error)
	return job
}

func TestListJobsDefaultOrder(t *testing.T) {
	svc, db := newTestJobService(t)

	seedJob(t, db, models.Job{Title: "First", Company: "Acme"})
	seedJob(t, db, models.Job{Title: "Second", Company: "Acme"})
	seedJob(t, db, models.Job{Title: "Third", Company: "Acme"})

	userID := uint64(1)
	page, err := svc.ListJobs(ListJobsInput{UserID: &userID})
	require.NoError(t, err)

	require.Len(t, page.Jobs, 3)
	require.Equal(t, "First", page.Jobs[0].Job.Title)
	require.Equal(t, "Second", page.Jobs[1].Job.Title)
	require.Equal(t, "Third", page.Jobs[2].Job.Title)
	require.Equal(t, int64(3), page.Total)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 1, page.TotalPages)
}

func TestListJobsStatusFilter(t *testing.T) {
	svc, db := newTestJobService(t)

	seedJob(t, db, models.Job{Title: "A", Company: "Acme", Status: models.StatusApplied})
	seedJob(t, db, models.Job{Title: "B", Company: "Acme", Status: models.StatusInterview})
	seedJob(t, db, models.Job{Title: "C", Company: "Acme", Status: models.StatusInterview})

	userID := uint64(1)
	page, err := svc.ListJobs(ListJobsInput{UserID: &userID, Status: "interview"})
	require.NoError(t, err)

	require.Len(t, page.Jobs, 2)
	for _, job := range page.Jobs {
		require.Equal(t, models.StatusInterview, job.Job.Status)
	}

	// Summary counts cover the scope before any filter.
	require.Equal(t, int64(3), page.Counts.Total)
	require.Equal(t, int64(1), page.Counts.Applied)
	require.Equal(t, int64(2), page.Counts.Interview)
}

func TestListJobsInvalidStatusIgnored(t *testing.T) {
	svc, db := newTestJobService(t)

	seedJob(t, db, models.Job{Title: "A", Company: "Acme"})
	seedJob(t, db, models.Job{Title: "B", Company: "Acme", Status: models.StatusOffered})

	userID := uint64(1)
	page, err := svc.ListJobs(ListJobsInput{UserID: &userID, Status: "ghosted"})
	require.NoError(t, err)

	require.Len(t, page.Jobs, 2)
}

func TestListJobsTextSearch(t *testing.T) {
	svc, db := newTestJobService(t)

	seedJob(t, db, models.Job{Title: "Backend Engineer", Company: "Initech"})
	seedJob(t, db, models.Job{Title: "Data Analyst", Company: "Globex"})
	seedJob(t, db, models.Job{Title: "SRE", Company: "Hooli Backends"})

	userID := uint64(1)
	page, err := svc.ListJobs(ListJobsInput{UserID: &userID, Query: "BACKEND"})
	require.NoError(t, err)

	require.Len(t, page.Jobs, 2)
}

func TestListJobsWeekWindow(t *testing.T) {
	svc, db := newTestJobService(t)

	seedJob(t, db, models.Job{Title: "Before", Company: "A", ApplyDate: mustDate(t, "2025-03-09")})
	seedJob(t, db, models.Job{Title: "Monday", Company: "A", ApplyDate: mustDate(t, "2025-03-10")})
	seedJob(t, db, models.Job{Title: "Sunday", Company: "A", ApplyDate: mustDate(t, "2025-03-16")})
	seedJob(t, db, models.Job{Title: "After", Company: "A", ApplyDate: mustDate(t, "2025-03-17")})

	userID := uint64(1)
	page, err := svc.ListJobs(ListJobsInput{UserID: &userID, DateRange: "week"})
	require.NoError(t, err)

	require.Len(t, page.Jobs, 2)
	require.Equal(t, "Monday", page.Jobs[0].Job.Title)
	require.Equal(t, "Sunday", page.Jobs[1].Job.Title)
}

func TestListJobsTodayWindow(t *testing.T) {
	svc, db := newTestJobService(t)

	seedJob(t, db, models.Job{Title: "Today", Company: "A", ApplyDate: mustDate(t, "2025-03-12")})
	seedJob(t, db, models.Job{Title: "Yesterday", Company: "A", ApplyDate: mustDate(t, "2025-03-11")})

	userID := uint64(1)
	page, err := svc.ListJobs(ListJobsInput{UserID: &userID, DateRange: "today"})
	require.NoError(t, err)

	require.Len(t, page.Jobs, 1)
	require.Equal(t, "Today", page.Jobs[0].Job.Title)
}

func TestListJobsOverdueFollowups(t *testing.T) {
	svc, db := newTestJobService(t)

	past := mustDate(t, "2025-03-10")
	today := mustDate(t, "2025-03-12")
	future := mustDate(t, "2025-03-20")

	seedJob(t, db, models.Job{Title: "Overdue", Company: "A", FollowUpDate: &past})
	seedJob(t, db, models.Job{Title: "Today", Company: "A", FollowUpDate: &today})
	seedJob(t, db, models.Job{Title: "Future", Company: "A", FollowUpDate: &future})
	seedJob(t, db, models.Job{Title: "Done", Company: "A", FollowUpDone: true})
	seedJob(t, db, models.Job{Title: "None", Company: "A"})

	userID := uint64(1)
	page, err := svc.ListJobs(ListJobsInput{UserID: &userID, Follow: "overdue"})
	require.NoError(t, err)

	require.Len(t, page.Jobs, 1)
	require.Equal(t, "Overdue", page.Jobs[0].Job.Title)
}

func TestListJobsPrioritySort(t *testing.T) {
	svc, db := newTestJobService(t)

	seedJob(t, db, models.Job{Title: "Low", Company: "A", Priority: models.PriorityLow, ApplyDate: mustDate(t, "2025-03-01")})
	seedJob(t, db, models.Job{Title: "HighLate", Company: "A", Priority: models.PriorityHigh, ApplyDate: mustDate(t, "2025-03-05")})
	seedJob(t, db, models.Job{Title: "Medium", Company: "A", Priority: models.PriorityMedium, ApplyDate: mustDate(t, "2025-03-02")})
	seedJob(t, db, models.Job{Title: "HighEarly", Company: "A", Priority: models.PriorityHigh, ApplyDate: mustDate(t, "2025-03-01")})

	userID := uint64(1)
	page, err := svc.ListJobs(ListJobsInput{UserID: &userID, Sort: "priority"})
	require.NoError(t, err)

	require.Len(t, page.Jobs, 4)
	require.Equal(t, "HighEarly", page.Jobs[0].Job.Title)
	require.Equal(t, "HighLate", page.Jobs[1].Job.Title)
	require.Equal(t, "Medium", page.Jobs[2].Job.Title)
	require.Equal(t, "Low", page.Jobs[3].Job.Title)

	// Ranks never decrease down the page.
	for i := 1; i < len(page.Jobs); i++ {
		require.GreaterOrEqual(t,
			models.PriorityRank(page.Jobs[i].Job.Priority),
			models.PriorityRank(page.Jobs[i-1].Job.Priority))
	}
}

func TestListJobsPageClamping(t *testing.T) {
	svc, db := newTestJobService(t)

	for i := 0; i < 12; i++ {
		seedJob(t, db, models.Job{Title: "Job", Company: "A"})
	}

	userID := uint64(1)

	page, err := svc.ListJobs(ListJobsInput{UserID: &userID, Page: 0})
	require.NoError(t, err)
	require.Equal(t, 1, page.Page)
	require.Len(t, page.Jobs, 10)

	page, err = svc.ListJobs(ListJobsInput{UserID: &userID, Page: 99})
	require.NoError(t, err)
	require.Equal(t, 2, page.Page)
	require.Len(t, page.Jobs, 2)
	require.Equal(t, 2, page.TotalPages)
	require.Equal(t, int64(12), page.Total)
}

func TestListJobsAnnotatesFollowupState(t *testing.T) {
	svc, db := newTestJobService(t)

	past := mustDate(t, "2025-03-11")
	today := mustDate(t, "2025-03-12")

	seedJob(t, db, models.Job{Title: "Overdue", Company: "A", FollowUpDate: &past})
	seedJob(t, db, models.Job{Title: "Today", Company: "A", FollowUpDate: &today})
	seedJob(t, db, models.Job{Title: "Done", Company: "A", FollowUpDone: true})
	seedJob(t, db, models.Job{Title: "None", Company: "A"})

	userID := uint64(1)
	page, err := svc.ListJobs(ListJobsInput{UserID: &userID})
	require.NoError(t, err)

	states := map[string]models.FollowupState{}
	for _, job := range page.Jobs {
		states[job.Job.Title] = job.FollowupState
	}
	require.Equal(t, models.FollowupOverdue, states["Overdue"])
	require.Equal(t, models.FollowupToday, states["Today"])
	require.Equal(t, models.FollowupDone, states["Done"])
	require.Equal(t, models.FollowupNone, states["None"])
}

func TestListJobsScopesToUser(t *testing.T) {
	svc, db := newTestJobService(t)

	seedJob(t, db, models.Job{Title: "Mine", Company: "A", UserID: 1})
	seedJob(t, db, models.Job{Title: "Theirs", Company: "A", UserID: 2})

	userID := uint64(1)
	page, err := svc.ListJobs(ListJobsInput{UserID: &userID})
	require.NoError(t, err)

	require.Len(t, page.Jobs, 1)
	require.Equal(t, "Mine", page.Jobs[0].Job.Title)
	require.Equal(t, int64(1), page.Counts.Total)
}

func TestCreateJobDefaultsAndActivity(t *testing.T) {
	svc, db := newTestJobService(t)

	job, err := svc.CreateJob(CreateJobInput{
		UserID:    1,
		Title:     "Backend Engineer",
		Company:   "Initech",
		Status:    "applied",
		ApplyDate: mustDate(t, "2025-03-12"),
	})
	require.NoError(t, err)
	require.Equal(t, models.PriorityMedium, job.Priority)

	var activity models.AdminActivity
	require.NoError(t, db.First(&activity).Error)
	require.Equal(t, models.ActionJobCreated, activity.Action)
	require.Equal(t, uint64(1), activity.UserID)
	require.NotNil(t, activity.JobID)
	require.Equal(t, job.ID, *activity.JobID)
}

func TestCreateJobValidation(t *testing.T) {
	svc, _ := newTestJobService(t)

	base := CreateJobInput{
		UserID:    1,
		Title:     "Engineer",
		Company:   "Acme",
		Status:    "applied",
		ApplyDate: mustDate(t, "2025-03-12"),
	}

	missing := base
	missing.Title = "  "
	_, err := svc.CreateJob(missing)
	require.ErrorIs(t, err, ErrJobTitleRequired)

	missing = base
	missing.Company = ""
	_, err = svc.CreateJob(missing)
	require.ErrorIs(t, err, ErrJobCompanyRequired)

	missing = base
	missing.ApplyDate = time.Time{}
	_, err = svc.CreateJob(missing)
	require.ErrorIs(t, err, ErrJobApplyDateRequired)

	missing = base
	missing.Status = "ghosted"
	_, err = svc.CreateJob(missing)
	require.ErrorIs(t, err, ErrInvalidJobStatus)

	missing = base
	missing.Priority = "urgent"
	_, err = svc.CreateJob(missing)
	require.ErrorIs(t, err, ErrInvalidJobPriority)
}

func TestCreateJobRejectionReasonRule(t *testing.T) {
	svc, _ := newTestJobService(t)

	_, err := svc.CreateJob(CreateJobInput{
		UserID:          1,
		Title:           "Engineer",
		Company:         "Acme",
		Status:          "applied",
		ApplyDate:       mustDate(t, "2025-03-12"),
		RejectionReason: "not a fit",
	})
	require.ErrorIs(t, err, ErrRejectionReasonNotAllowed)

	job, err := svc.CreateJob(CreateJobInput{
		UserID:          1,
		Title:           "Engineer",
		Company:         "Acme",
		Status:          "rejected",
		ApplyDate:       mustDate(t, "2025-03-12"),
		RejectionReason: "not a fit",
	})
	require.NoError(t, err)
	require.Equal(t, "not a fit", job.RejectionReason)
}

func TestGetJobHidesOtherUsers(t *testing.T) {
	svc, db := newTestJobService(t)

	job := seedJob(t, db, models.Job{Title: "Theirs", Company: "A", UserID: 2})

	_, err := svc.GetJob(job.ID, 1)
	require.ErrorIs(t, err, ErrJobNotFound)

	_, err = svc.GetJob(9999, 1)
	require.ErrorIs(t, err, ErrJobNotFound)
}

func TestUpdateJobNewFollowupReopens(t *testing.T) {
	svc, db := newTestJobService(t)

	job := seedJob(t, db, models.Job{Title: "Engineer", Company: "A", FollowUpDone: true})

	date := mustDate(t, "2025-03-20")
	updated, err := svc.UpdateJob(job.ID, 1, UpdateJobInput{FollowUpDate: &date})
	require.NoError(t, err)

	require.False(t, updated.FollowUpDone)
	require.NotNil(t, updated.FollowUpDate)
	require.Equal(t, date, utils.DateOnly(*updated.FollowUpDate))
}

func TestUpdateJobClearFollowup(t *testing.T) {
	svc, db := newTestJobService(t)

	date := mustDate(t, "2025-03-20")
	job := seedJob(t, db, models.Job{Title: "Engineer", Company: "A", FollowUpDate: &date})

	updated, err := svc.UpdateJob(job.ID, 1, UpdateJobInput{ClearFollowUp: true})
	require.NoError(t, err)
	require.Nil(t, updated.FollowUpDate)
}

func TestUpdateJobRejectionReasonRule(t *testing.T) {
	svc, db := newTestJobService(t)

	job := seedJob(t, db, models.Job{Title: "Engineer", Company: "A", Status: models.StatusApplied})

	reason := "no response"
	_, err := svc.UpdateJob(job.ID, 1, UpdateJobInput{RejectionReason: &reason})
	require.ErrorIs(t, err, ErrRejectionReasonNotAllowed)

	status := "rejected"
	updated, err := svc.UpdateJob(job.ID, 1, UpdateJobInput{Status: &status, RejectionReason: &reason})
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, updated.Status)
	require.Equal(t, reason, updated.RejectionReason)
}

func TestQuickStatus(t *testing.T) {
	svc, db := newTestJobService(t)

	job := seedJob(t, db, models.Job{Title: "Engineer", Company: "A", Status: models.StatusApplied})

	updated, err := svc.QuickStatus(job.ID, 1, "interview")
	require.NoError(t, err)
	require.Equal(t, models.StatusInterview, updated.Status)

	// Unrecognized values leave the job untouched.
	updated, err = svc.QuickStatus(job.ID, 1, "ghosted")
	require.NoError(t, err)
	require.Equal(t, models.StatusInterview, updated.Status)
}

func TestQuickPriority(t *testing.T) {
	svc, db := newTestJobService(t)

	job := seedJob(t, db, models.Job{Title: "Engineer", Company: "A"})

	updated, err := svc.QuickPriority(job.ID, 1, "high")
	require.NoError(t, err)
	require.Equal(t, models.PriorityHigh, updated.Priority)

	updated, err = svc.QuickPriority(job.ID, 1, "urgent")
	require.NoError(t, err)
	require.Equal(t, models.PriorityHigh, updated.Priority)
}

func TestMarkFollowupDone(t *testing.T) {
	svc, db := newTestJobService(t)

	date := mustDate(t, "2025-03-10")
	job := seedJob(t, db, models.Job{Title: "Engineer", Company: "A", FollowUpDate: &date})

	updated, err := svc.MarkFollowupDone(job.ID, 1)
	require.NoError(t, err)
	require.True(t, updated.FollowUpDone)
	require.Nil(t, updated.FollowUpDate)

	var activity models.AdminActivity
	require.NoError(t, db.Where("action = ?", models.ActionFollowupDone).First(&activity).Error)
}

func TestScheduleFollowupReopens(t *testing.T) {
	svc, db := newTestJobService(t)

	job := seedJob(t, db, models.Job{Title: "Engineer", Company: "A", FollowUpDone: true})

	date := mustDate(t, "2025-03-25")
	updated, err := svc.ScheduleFollowup(job.ID, 1, date)
	require.NoError(t, err)
	require.False(t, updated.FollowUpDone)
	require.NotNil(t, updated.FollowUpDate)
	require.Equal(t, date, utils.DateOnly(*updated.FollowUpDate))
}

func TestDueFollowups(t *testing.T) {
	svc, db := newTestJobService(t)

	past := mustDate(t, "2025-03-10")
	today := mustDate(t, "2025-03-12")
	future := mustDate(t, "2025-03-14")

	seedJob(t, db, models.Job{Title: "Overdue", Company: "A", FollowUpDate: &past})
	seedJob(t, db, models.Job{Title: "DueToday", Company: "A", FollowUpDate: &today})
	seedJob(t, db, models.Job{Title: "Future", Company: "A", FollowUpDate: &future})
	seedJob(t, db, models.Job{Title: "Closed", Company: "A", Status: models.StatusRejected, FollowUpDate: &past})
	seedJob(t, db, models.Job{Title: "Handled", Company: "A", FollowUpDone: true})

	jobs, gotToday, err := svc.DueFollowups(1)
	require.NoError(t, err)

	require.Equal(t, mustDate(t, "2025-03-12"), gotToday)
	require.Len(t, jobs, 2)
	require.Equal(t, "Overdue", jobs[0].Title)
	require.Equal(t, "DueToday", jobs[1].Title)
}

func TestUpcomingFollowups(t *testing.T) {
	svc, db := newTestJobService(t)

	today := mustDate(t, "2025-03-12")
	inWindow := mustDate(t, "2025-03-18")
	pastWindow := mustDate(t, "2025-03-19")
	behind := mustDate(t, "2025-03-11")

	seedJob(t, db, models.Job{Title: "Today", Company: "A", FollowUpDate: &today})
	seedJob(t, db, models.Job{Title: "EndOfWindow", Company: "A", FollowUpDate: &inWindow})
	seedJob(t, db, models.Job{Title: "TooFar", Company: "A", FollowUpDate: &pastWindow})
	seedJob(t, db, models.Job{Title: "Past", Company: "A", FollowUpDate: &behind})

	jobs, _, err := svc.UpcomingFollowups(1)
	require.NoError(t, err)

	require.Len(t, jobs, 2)
	require.Equal(t, "Today", jobs[0].Title)
	require.Equal(t, "EndOfWindow", jobs[1].Title)
}

func TestExportRows(t *testing.T) {
	svc, db := newTestJobService(t)

	follow := mustDate(t, "2025-03-20")
	seedJob(t, db, models.Job{
		Title:        "Backend Engineer",
		Company:      "Initech",
		Status:       models.StatusInterview,
		Priority:     models.PriorityHigh,
		ApplyDate:    mustDate(t, "2025-03-05"),
		FollowUpDate: &follow,
		NextStep:     "sys design round",
	})
	seedJob(t, db, models.Job{Title: "Analyst", Company: "Globex"})

	userID := uint64(1)
	rows, err := svc.ExportRows(ListJobsInput{UserID: &userID, Status: "interview"})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	require.Equal(t, ExportHeader, rows[0])
	require.Equal(t, "Backend Engineer", rows[1][1])
	require.Equal(t, "Initech", rows[1][2])
	require.Equal(t, "interview", rows[1][3])
	require.Equal(t, "high", rows[1][4])
	require.Equal(t, "2025-03-05", rows[1][5])
	require.Equal(t, "2025-03-20", rows[1][6])
	require.Equal(t, "sys design round", rows[1][7])
}

func TestExportRowsIgnoresFollowAndSort(t *testing.T) {
	svc, db := newTestJobService(t)

	seedJob(t, db, models.Job{Title: "A", Company: "Acme"})
	seedJob(t, db, models.Job{Title: "B", Company: "Acme"})

	userID := uint64(1)
	rows, err := svc.ExportRows(ListJobsInput{UserID: &userID, Follow: "overdue", Sort: "priority"})
	require.NoError(t, err)

	// The follow window would exclude both jobs if it applied.
	require.Len(t, rows, 3)
}

func TestDeleteJob(t *testing.T) {
	svc, db := newTestJobService(t)

	job := seedJob(t, db, models.Job{Title: "Engineer", Company: "A"})

	require.NoError(t, svc.DeleteJob(job.ID, 1))

	_, err := svc.GetJob(job.ID, 1)
	require.ErrorIs(t, err, ErrJobNotFound)

	require.ErrorIs(t, svc.DeleteJob(job.ID, 2), ErrJobNotFound)
}
