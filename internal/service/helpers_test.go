package service

import (
	"feelio_backend/internal/model"
	"feelio_backend/internal/repository"
	"feelio_backend/pkg/database"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存库每个连接独立，必须固定为单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

type engineFixture struct {
	db        *gorm.DB
	users     *repository.UserRepository
	responses *repository.ResponseRepository
	badges    *repository.BadgeRepository
	scoring   *ScoringService
	service   *ResponseService
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	db := newTestDB(t)
	f := &engineFixture{
		db:        db,
		users:     repository.NewUserRepository(db),
		responses: repository.NewResponseRepository(db),
		badges:    repository.NewBadgeRepository(db),
	}
	f.scoring = NewScoringService(f.users, f.responses, f.badges, DefaultBadgeCatalog())
	require.NoError(t, f.scoring.SyncCatalog())
	f.service = NewResponseService(db, f.responses, f.scoring)
	return f
}

func (f *engineFixture) createUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:         "Kid",
		Email:        email,
		PasswordHash: "x",
		Segment:      model.SegmentYounger,
		Role:         model.Kid,
	}
	require.NoError(t, f.users.Create(user))
	return user
}

func (f *engineFixture) createNarratives(t *testing.T, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("N%03d", i)
		require.NoError(t, f.db.Create(&model.Narrative{
			ID:            id,
			Title:         "Cerita " + id,
			Content:       "Isi cerita " + id,
			EmotionLabels: []string{"happy"},
			Segment:       model.SegmentYounger,
		}).Error)
		ids = append(ids, id)
	}
	return ids
}

func (f *engineFixture) save(t *testing.T, userID uint, narrativeID string, correct bool, emotions ...string) uint {
	t.Helper()
	id, err := f.service.Save(t.Context(), SaveResponseRequest{
		UserID:           userID,
		NarrativeID:      narrativeID,
		UserAnswer:       "jawaban",
		PredictedEmotion: emotions,
		IsCorrect:        correct,
	})
	require.NoError(t, err)
	return id
}

func (f *engineFixture) totalScore(t *testing.T, userID uint) int {
	t.Helper()
	user, err := f.users.FindByID(userID)
	require.NoError(t, err)
	return user.TotalScore
}

func (f *engineFixture) earnedBadgeIDs(t *testing.T, userID uint) []uint {
	t.Helper()
	grants, err := f.badges.FindByUser(userID)
	require.NoError(t, err)
	ids := make([]uint, 0, len(grants))
	for _, g := range grants {
		ids = append(ids, g.BadgeID)
	}
	return ids
}

// requireScoreConsistent 校验 total_score 等于答对分数加徽章分值
func (f *engineFixture) requireScoreConsistent(t *testing.T, userID uint) {
	t.Helper()
	responseScore, err := f.responses.SumCorrectScore(userID)
	require.NoError(t, err)
	badgePoints, err := f.badges.SumPoints(userID)
	require.NoError(t, err)
	require.Equal(t, responseScore+badgePoints, f.totalScore(t, userID))
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
