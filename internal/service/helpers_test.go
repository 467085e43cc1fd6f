package service_test

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"

	"Pawtner/internal/api/config"
	"Pawtner/internal/model"
	"Pawtner/internal/pkg/mongo"
	pkgredis "Pawtner/internal/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&model.User{}, &model.Pet{}, &model.Like{}, &model.Match{},
		&model.Conversation{}, &model.ConversationMember{},
		&model.BadWord{}, &model.DailyActionRecord{}, &model.ConsultConfirm{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	pkgredis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = pkgredis.Rdb.Close()
	})
}

func setupConfig(t *testing.T) {
	t.Helper()
	config.Cfg = &config.Config{
		Quota: config.QuotaConfig{
			LikeDaily:       5,
			LikeDailyVip:    10,
			AIQuestionDaily: 3,
		},
		Moderation: config.ModerationConfig{
			BlockLevel: 3,
		},
	}
}

func seedUser(t *testing.T, db *gorm.DB, id uint64, role string, vip bool) {
	t.Helper()
	name := "user" + strconv.FormatUint(id, 10)
	require.NoError(t, db.Create(&model.User{ID: id, Username: &name, Role: role, IsVip: vip}).Error)
}

func seedPet(t *testing.T, db *gorm.DB, id, userID uint64) {
	t.Helper()
	require.NoError(t, db.Create(&model.Pet{ID: id, UserID: userID, Name: "pet"}).Error)
}

type pushRecord struct {
	UserID uint64
	Event  string
}

// fakeNotifier 记录推送调用
type fakeNotifier struct {
	mu      sync.Mutex
	records []pushRecord
}

func (f *fakeNotifier) Push(_ context.Context, targetUserID uint64, event string, _ interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, pushRecord{UserID: targetUserID, Event: event})
}

func (f *fakeNotifier) pushed(userID uint64, event string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.UserID == userID && r.Event == event {
			return true
		}
	}
	return false
}

// fakeMessageRepo 内存消息存储，替代 MongoDB
type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*mongo.Message
	nextID   int
	failSave bool
}

func (f *fakeMessageRepo) SaveMessage(_ context.Context, msg *mongo.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return context.DeadlineExceeded
	}
	f.nextID++
	if msg.ID == "" {
		msg.ID = "msg-" + strconv.Itoa(f.nextID)
	}
	stored := *msg
	f.messages = append(f.messages, &stored)
	return nil
}

func (f *fakeMessageRepo) GetHistory(_ context.Context, convID uint64, lastSeq uint64, pageSize int) ([]*mongo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []*mongo.Message
	for _, m := range f.messages {
		if m.ConversationID == convID && m.Seq > lastSeq {
			res = append(res, m)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Seq < res[j].Seq })
	if len(res) > pageSize {
		res = res[:pageSize]
	}
	return res, nil
}

// fakeAsker 固定应答的 AI 问答
type fakeAsker struct {
	answer string
	err    error
	asked  []string
}

func (f *fakeAsker) Ask(_ context.Context, question string) (string, error) {
	f.asked = append(f.asked, question)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func seedBadWord(t *testing.T, db *gorm.DB, word string, isRegex bool, level int8) {
	t.Helper()
	require.NoError(t, db.Create(&model.BadWord{
		Word: word, IsRegex: isRegex, Level: level, Category: "test", IsActive: true,
	}).Error)
}
