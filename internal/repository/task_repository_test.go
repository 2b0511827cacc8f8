package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/htw-hub/questboard-api/internal/database"
	"github.com/htw-hub/questboard-api/internal/models"
	"github.com/htw-hub/questboard-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TaskRepositoryTestSuite runs the repository against an in-memory SQLite database
type TaskRepositoryTestSuite struct {
	suite.Suite
	db       *gorm.DB
	tasks    TaskRepository
	users    UserRepository
	history  HistoryRepository
	ctx      context.Context
	now      time.Time
	organizr *models.User
}

func (suite *TaskRepositoryTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(database.MigrateDatabase(suite.db))

	suite.tasks = NewTaskRepository(suite.db)
	suite.users = NewUserRepository(suite.db)
	suite.history = NewHistoryRepository(suite.db)
	suite.ctx = context.Background()
	suite.now = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	suite.organizr = suite.createUser("sarah@htw.com", models.RoleOrganizer)
}

func (suite *TaskRepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskRepositoryTestSuite) createUser(email string, role models.UserRole) *models.User {
	user := &models.User{Email: &email, FirstName: "Test", Role: role}
	suite.Require().NoError(suite.users.Create(suite.ctx, user))
	return user
}

func (suite *TaskRepositoryTestSuite) createTask(title string, reward int) *models.Task {
	task := &models.Task{
		Title:       title,
		Description: "A task description long enough to pass validation",
		Reward:      reward,
		Category:    models.CategoryDevelopment,
		Type:        models.TypeCoding,
		CreatedBy:   suite.organizr.ID,
	}
	suite.Require().NoError(suite.tasks.Create(suite.ctx, task))
	return task
}

func (suite *TaskRepositoryTestSuite) TestCreate_DefaultsToUnclaimed() {
	task := suite.createTask("Write the docs", 50)

	found, err := suite.tasks.FindByID(suite.ctx, task.ID, "Creator")
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusUnclaimed, found.Status)
	suite.Nil(found.AssignedTo)
	suite.Equal(suite.organizr.ID, found.Creator.ID)
}

func (suite *TaskRepositoryTestSuite) TestClaim_OnlyFirstClaimerWins() {
	task := suite.createTask("Design the badge", 40)
	alice := suite.createUser("alice@htw.com", models.RoleTasker)
	bob := suite.createUser("bob@htw.com", models.RoleTasker)

	ok, err := suite.tasks.Claim(suite.ctx, task.ID, alice.ID, suite.now)
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = suite.tasks.Claim(suite.ctx, task.ID, bob.ID, suite.now)
	suite.Require().NoError(err)
	suite.False(ok)

	found, err := suite.tasks.FindByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusInProgress, found.Status)
	suite.Require().NotNil(found.AssignedTo)
	suite.Equal(alice.ID, *found.AssignedTo)
}

func (suite *TaskRepositoryTestSuite) TestClaim_MissingTask() {
	ok, err := suite.tasks.Claim(suite.ctx, "missing", suite.organizr.ID, suite.now)
	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *TaskRepositoryTestSuite) TestComplete_WritesLedgerAndCreditsXP() {
	task := suite.createTask("Ship the landing page", 50)
	alice := suite.createUser("alice@htw.com", models.RoleTasker)

	ok, err := suite.tasks.Claim(suite.ctx, task.ID, alice.ID, suite.now)
	suite.Require().NoError(err)
	suite.Require().True(ok)

	entry, err := suite.tasks.Complete(suite.ctx, task.ID, alice.ID, suite.now)
	suite.Require().NoError(err)
	suite.Equal(50, entry.XPEarned)
	suite.Equal(task.ID, entry.TaskID)

	user, err := suite.users.FindByID(suite.ctx, alice.ID)
	suite.Require().NoError(err)
	suite.Equal(50, user.XP)
	suite.True(user.HasBadge("First Quest"))

	found, err := suite.tasks.FindByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusCompleted, found.Status)
}

func (suite *TaskRepositoryTestSuite) TestComplete_SecondCompletionConflicts() {
	task := suite.createTask("Ship the landing page", 50)
	alice := suite.createUser("alice@htw.com", models.RoleTasker)

	_, err := suite.tasks.Claim(suite.ctx, task.ID, alice.ID, suite.now)
	suite.Require().NoError(err)
	_, err = suite.tasks.Complete(suite.ctx, task.ID, alice.ID, suite.now)
	suite.Require().NoError(err)

	_, err = suite.tasks.Complete(suite.ctx, task.ID, alice.ID, suite.now)
	suite.ErrorIs(err, ErrStatusConflict)

	var count int64
	suite.db.Model(&models.UserTaskHistory{}).Where("task_id = ?", task.ID).Count(&count)
	suite.Equal(int64(1), count)

	user, err := suite.users.FindByID(suite.ctx, alice.ID)
	suite.Require().NoError(err)
	suite.Equal(50, user.XP)
}

func (suite *TaskRepositoryTestSuite) TestComplete_WrongAssigneeConflicts() {
	task := suite.createTask("Ship the landing page", 50)
	alice := suite.createUser("alice@htw.com", models.RoleTasker)
	bob := suite.createUser("bob@htw.com", models.RoleTasker)

	_, err := suite.tasks.Claim(suite.ctx, task.ID, alice.ID, suite.now)
	suite.Require().NoError(err)

	_, err = suite.tasks.Complete(suite.ctx, task.ID, bob.ID, suite.now)
	suite.ErrorIs(err, ErrStatusConflict)

	found, err := suite.tasks.FindByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusInProgress, found.Status)
}

func (suite *TaskRepositoryTestSuite) TestHistory_UniqueTaskID() {
	task := suite.createTask("Ship the landing page", 50)
	alice := suite.createUser("alice@htw.com", models.RoleTasker)

	first := &models.UserTaskHistory{UserID: alice.ID, TaskID: task.ID, XPEarned: 50}
	suite.Require().NoError(suite.db.Omit("User", "Task").Create(first).Error)

	second := &models.UserTaskHistory{UserID: alice.ID, TaskID: task.ID, XPEarned: 50}
	suite.Error(suite.db.Omit("User", "Task").Create(second).Error)
}

func (suite *TaskRepositoryTestSuite) TestList_FiltersAndOrder() {
	first := suite.createTask("First task title", 10)
	suite.db.Model(first).UpdateColumn("created_at", suite.now.Add(-time.Hour))
	second := suite.createTask("Second task title", 20)
	alice := suite.createUser("alice@htw.com", models.RoleTasker)

	_, err := suite.tasks.Claim(suite.ctx, first.ID, alice.ID, suite.now)
	suite.Require().NoError(err)

	all, err := suite.tasks.List(suite.ctx, TaskFilter{})
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Equal(second.ID, all[0].ID)
	suite.Equal(suite.organizr.ID, all[0].Creator.ID)
	suite.Nil(all[0].Assignee)
	suite.Require().NotNil(all[1].Assignee)
	suite.Equal(alice.ID, all[1].Assignee.ID)

	status := models.TaskStatusInProgress
	claimed, err := suite.tasks.List(suite.ctx, TaskFilter{Status: &status})
	suite.Require().NoError(err)
	suite.Require().Len(claimed, 1)
	suite.Equal(first.ID, claimed[0].ID)

	mine, err := suite.tasks.List(suite.ctx, TaskFilter{AssignedTo: &alice.ID})
	suite.Require().NoError(err)
	suite.Len(mine, 1)
}

func (suite *TaskRepositoryTestSuite) TestCountByStatus() {
	a := suite.createTask("First task title", 10)
	suite.createTask("Second task title", 20)
	alice := suite.createUser("alice@htw.com", models.RoleTasker)
	_, err := suite.tasks.Claim(suite.ctx, a.ID, alice.ID, suite.now)
	suite.Require().NoError(err)

	counts, err := suite.tasks.CountByStatus(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(1), counts[models.TaskStatusUnclaimed])
	suite.Equal(int64(1), counts[models.TaskStatusInProgress])
	suite.Equal(int64(0), counts[models.TaskStatusCompleted])
}

func (suite *TaskRepositoryTestSuite) TestLeaderboard_OrdersByTotalThenEarliest() {
	alice := suite.createUser("alice@htw.com", models.RoleTasker)
	bob := suite.createUser("bob@htw.com", models.RoleTasker)
	carol := suite.createUser("carol@htw.com", models.RoleTasker)

	complete := func(user *models.User, reward int, at time.Time) {
		task := suite.createTask("Leaderboard task", reward)
		_, err := suite.tasks.Claim(suite.ctx, task.ID, user.ID, at)
		suite.Require().NoError(err)
		_, err = suite.tasks.Complete(suite.ctx, task.ID, user.ID, at)
		suite.Require().NoError(err)
	}

	complete(bob, 100, suite.now.Add(2*time.Minute))
	complete(alice, 100, suite.now.Add(time.Minute))
	complete(carol, 30, suite.now)
	complete(carol, 30, suite.now.Add(time.Second))

	rows, err := suite.history.Leaderboard(suite.ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)
	suite.Equal(alice.ID, rows[0].UserID)
	suite.Equal(bob.ID, rows[1].UserID)
	suite.Equal(carol.ID, rows[2].UserID)
	suite.Equal(int64(60), rows[2].TotalXP)
	suite.Equal(int64(2), rows[2].TasksCompleted)

	top, err := suite.history.Leaderboard(suite.ctx, 1)
	suite.Require().NoError(err)
	suite.Len(top, 1)

	totals, err := suite.history.XPTotals(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(100), totals[alice.ID])
	suite.Equal(int64(60), totals[carol.ID])

	page, err := suite.history.ListByUser(suite.ctx, carol.ID, utils.PaginationParams{Page: 1, Limit: 1, Offset: 0})
	suite.Require().NoError(err)
	suite.Len(page, 1)
}

func (suite *TaskRepositoryTestSuite) TestSetXPAndUpdateProfile() {
	alice := suite.createUser("alice@htw.com", models.RoleTasker)

	suite.Require().NoError(suite.users.SetXP(suite.ctx, alice.ID, 75))

	alice.Skills = []string{"go", "design"}
	alice.ProfileCompletion = 80
	alice.XP = 9999
	suite.Require().NoError(suite.users.UpdateProfile(suite.ctx, alice))

	found, err := suite.users.FindByID(suite.ctx, alice.ID)
	suite.Require().NoError(err)
	suite.Equal(75, found.XP)
	suite.Equal(80, found.ProfileCompletion)
	suite.Equal([]string{"go", "design"}, []string(found.Skills))

	count, err := suite.users.CountByRole(suite.ctx, models.RoleTasker)
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func TestComplete_RollsBackWhenGuardMatchesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `tasks` SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	entry, err := repo.Complete(context.Background(), "task-1", "user-1", time.Now())
	assert.ErrorIs(t, err, ErrStatusConflict)
	assert.Nil(t, entry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplete_RollsBackWhenLedgerInsertFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `tasks` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `id`,`reward` FROM `tasks`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reward"}).AddRow("task-1", 50))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `user_task_history`")).
		WillReturnError(errors.New("duplicate entry"))
	mock.ExpectRollback()

	entry, err := repo.Complete(context.Background(), "task-1", "user-1", time.Now())
	assert.ErrorIs(t, err, ErrAppendHistory)
	assert.Nil(t, entry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplete_RollsBackWhenUserMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `tasks` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `id`,`reward` FROM `tasks`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reward"}).AddRow("task-1", 50))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `user_task_history`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `users` SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Complete(context.Background(), "task-1", "user-1", time.Now())
	assert.ErrorIs(t, err, ErrCreditUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}
