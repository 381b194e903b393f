package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/k002bill2/LiveMetro-sub004/internal/model"
	"github.com/k002bill2/LiveMetro-sub004/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock CommuteLogRepository ──

type mockCommuteLogRepo struct {
	logs []*model.CommuteLog // 按写入顺序，越靠后越新
	seq  int
}

func newMockCommuteLogRepo() *mockCommuteLogRepo {
	return &mockCommuteLogRepo{}
}

func (m *mockCommuteLogRepo) Create(_ context.Context, log *model.CommuteLog) error {
	m.seq++
	if log.LogID == "" {
		log.LogID = fmt.Sprintf("log-%d", m.seq)
	}
	log.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Second)
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockCommuteLogRepo) ListRecent(_ context.Context, userID string, limit int) ([]model.CommuteLog, error) {
	var result []model.CommuteLog
	for i := len(m.logs) - 1; i >= 0 && len(result) < limit; i-- {
		if m.logs[i].UserID == userID {
			result = append(result, *m.logs[i])
		}
	}
	return result, nil
}

func (m *mockCommuteLogRepo) List(_ context.Context, userID string, offset, limit int) ([]model.CommuteLog, int64, error) {
	var all []model.CommuteLog
	for i := len(m.logs) - 1; i >= 0; i-- {
		if m.logs[i].UserID == userID {
			all = append(all, *m.logs[i])
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockCommuteLogRepo) Delete(_ context.Context, userID, logID string) (int64, error) {
	for i, l := range m.logs {
		if l.LogID == logID && l.UserID == userID {
			m.logs = append(m.logs[:i], m.logs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockCommuteLogRepo) DeleteByUser(_ context.Context, userID string) error {
	kept := m.logs[:0]
	for _, l := range m.logs {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	m.logs = kept
	return nil
}

// ── Mock CommutePatternRepository ──

type mockCommutePatternRepo struct {
	patterns map[string]*model.CommutePattern // key: userID:dayOfWeek
}

func newMockCommutePatternRepo() *mockCommutePatternRepo {
	return &mockCommutePatternRepo{patterns: make(map[string]*model.CommutePattern)}
}

func patternKey(userID string, dayOfWeek int) string {
	return fmt.Sprintf("%s:%d", userID, dayOfWeek)
}

func (m *mockCommutePatternRepo) Upsert(_ context.Context, pattern *model.CommutePattern) error {
	pattern.UpdatedAt = time.Now()
	m.patterns[patternKey(pattern.UserID, pattern.DayOfWeek)] = pattern
	return nil
}

func (m *mockCommutePatternRepo) GetByUserAndDay(_ context.Context, userID string, dayOfWeek int) (*model.CommutePattern, error) {
	if p, ok := m.patterns[patternKey(userID, dayOfWeek)]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCommutePatternRepo) ListByUser(_ context.Context, userID string) ([]model.CommutePattern, error) {
	var result []model.CommutePattern
	for dow := 0; dow <= 6; dow++ {
		if p, ok := m.patterns[patternKey(userID, dow)]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockCommutePatternRepo) DeleteByUser(_ context.Context, userID string) error {
	for dow := 0; dow <= 6; dow++ {
		delete(m.patterns, patternKey(userID, dow))
	}
	return nil
}

// ── Mock NotificationSettingsRepository ──

type mockNotificationSettingsRepo struct {
	settings map[string]*model.NotificationSettings
}

func newMockNotificationSettingsRepo() *mockNotificationSettingsRepo {
	return &mockNotificationSettingsRepo{settings: make(map[string]*model.NotificationSettings)}
}

func (m *mockNotificationSettingsRepo) GetByUser(_ context.Context, userID string) (*model.NotificationSettings, error) {
	if s, ok := m.settings[userID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationSettingsRepo) Save(_ context.Context, settings *model.NotificationSettings) error {
	m.settings[settings.UserID] = settings
	return nil
}

func (m *mockNotificationSettingsRepo) DeleteByUser(_ context.Context, userID string) error {
	delete(m.settings, userID)
	return nil
}

// ── Mock CongestionReportRepository ──

type mockCongestionReportRepo struct {
	reports []*model.CongestionReport
	seq     int
}

func newMockCongestionReportRepo() *mockCongestionReportRepo {
	return &mockCongestionReportRepo{}
}

func (m *mockCongestionReportRepo) Create(_ context.Context, report *model.CongestionReport) error {
	m.seq++
	if report.ReportID == "" {
		report.ReportID = fmt.Sprintf("report-%d", m.seq)
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}
	m.reports = append(m.reports, report)
	return nil
}

func (m *mockCongestionReportRepo) AggregateByStation(_ context.Context, stationID, lineID string, since time.Time) (*repository.CongestionAggregate, error) {
	var sum, count int64
	for _, r := range m.reports {
		if r.StationID != stationID || r.CreatedAt.Before(since) {
			continue
		}
		if lineID != "" && r.LineID != lineID {
			continue
		}
		sum += int64(r.CarLevel)
		count++
	}
	agg := &repository.CongestionAggregate{ReportCount: count}
	if count > 0 {
		agg.AverageLevel = float64(sum) / float64(count)
	}
	return agg, nil
}

func (m *mockCongestionReportRepo) ListByStation(_ context.Context, stationID string, since time.Time, limit int) ([]model.CongestionReport, error) {
	var result []model.CongestionReport
	for i := len(m.reports) - 1; i >= 0 && len(result) < limit; i-- {
		r := m.reports[i]
		if r.StationID == stationID && !r.CreatedAt.Before(since) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockCongestionReportRepo) Delete(_ context.Context, reportID string) (int64, error) {
	for i, r := range m.reports {
		if r.ReportID == reportID {
			m.reports = append(m.reports[:i], m.reports[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockCongestionReportRepo) DeleteByUser(_ context.Context, userID string) error {
	kept := m.reports[:0]
	for _, r := range m.reports {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	m.reports = kept
	return nil
}

// ── Mock FavoriteStationRepository ──

type mockFavoriteStationRepo struct {
	favorites []*model.FavoriteStation
	seq       int
}

func newMockFavoriteStationRepo() *mockFavoriteStationRepo {
	return &mockFavoriteStationRepo{}
}

func (m *mockFavoriteStationRepo) Create(_ context.Context, fav *model.FavoriteStation) error {
	m.seq++
	if fav.FavoriteID == "" {
		fav.FavoriteID = fmt.Sprintf("fav-%d", m.seq)
	}
	fav.CreatedAt = time.Now()
	m.favorites = append(m.favorites, fav)
	return nil
}

func (m *mockFavoriteStationRepo) ListByUser(_ context.Context, userID string) ([]model.FavoriteStation, error) {
	var result []model.FavoriteStation
	for _, f := range m.favorites {
		if f.UserID == userID {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (m *mockFavoriteStationRepo) ExistsByStation(_ context.Context, userID, stationID, lineID string) (bool, error) {
	for _, f := range m.favorites {
		if f.UserID == userID && f.StationID == stationID && f.LineID == lineID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockFavoriteStationRepo) Delete(_ context.Context, userID, favoriteID string) (int64, error) {
	for i, f := range m.favorites {
		if f.FavoriteID == favoriteID && f.UserID == userID {
			m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockFavoriteStationRepo) DeleteByUser(_ context.Context, userID string) error {
	kept := m.favorites[:0]
	for _, f := range m.favorites {
		if f.UserID != userID {
			kept = append(kept, f)
		}
	}
	m.favorites = kept
	return nil
}

// ── 测试用聚合构造 ──

func newTestRepository() *repository.Repository {
	return &repository.Repository{
		User:                 newMockUserRepo(),
		CommuteLog:           newMockCommuteLogRepo(),
		CommutePattern:       newMockCommutePatternRepo(),
		NotificationSettings: newMockNotificationSettingsRepo(),
		CongestionReport:     newMockCongestionReportRepo(),
		FavoriteStation:      newMockFavoriteStationRepo(),
	}
}

// [自证通过] internal/service/mock_repos_test.go
