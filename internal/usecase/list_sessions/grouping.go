package list_sessions

import (
	"sort"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// GroupIntoSessions сворачивает бронирования с одинаковыми (локация, начало, конец) в сессии.
//
// Результат не зависит от порядка входа: бронирования сначала сортируются по
// (начало, локация, конец, id), поэтому состав, тренер ("первый тренер побеждает"
// в порядке id) и выручка стабильны. Недостающие профили заменяются заглушками,
// функция никогда не возвращает ошибку. Выход отсортирован по времени начала.
func GroupIntoSessions(bookings []*domain.Booking, profiles map[int64]domain.Profile) []*domain.Session {
	sorted := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b != nil {
			sorted = append(sorted, b)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		if a.LocationID != b.LocationID {
			return a.LocationID < b.LocationID
		}
		if !a.EndTime.Equal(b.EndTime) {
			return a.EndTime.Before(b.EndTime)
		}
		return a.ID < b.ID
	})

	sessions := make([]*domain.Session, 0)
	index := make(map[domain.SessionKey]*domain.Session)
	seenUsers := make(map[domain.SessionKey]map[int64]struct{})

	for _, b := range sorted {
		key := b.SessionKey()

		s, ok := index[key]
		if !ok {
			s = &domain.Session{
				Key:         key,
				LocationID:  b.LocationID,
				StartTime:   b.StartTime,
				EndTime:     b.EndTime,
				ServiceName: b.ServiceName,
			}
			index[key] = s
			seenUsers[key] = make(map[int64]struct{})
			sessions = append(sessions, s)
		}

		s.BookingIDs = append(s.BookingIDs, b.ID)
		s.Revenue += b.CreditCost

		if _, seen := seenUsers[key][b.UserID]; !seen {
			seenUsers[key][b.UserID] = struct{}{}
			s.UserIDs = append(s.UserIDs, b.UserID)
			s.Participants = append(s.Participants, domain.DisplayNameOf(profiles, b.UserID))
		}

		// Первый тренер побеждает
		if s.CoachID == nil && b.CoachID != nil {
			coachID := *b.CoachID
			s.CoachID = &coachID
			s.CoachName = domain.DisplayNameOf(profiles, coachID)
		}
	}

	return sessions
}

// profileIDs собирает id учеников и тренеров для одного батч-запроса профилей
func profileIDs(bookings []*domain.Booking) []int64 {
	seen := make(map[int64]struct{}, len(bookings))
	ids := make([]int64, 0, len(bookings))
	add := func(id int64) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, b := range bookings {
		add(b.UserID)
		if b.CoachID != nil {
			add(*b.CoachID)
		}
	}
	return ids
}
