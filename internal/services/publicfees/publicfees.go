// Package publicfees собирает агрегированную публичную выдачу по всем аккаунтам.
//
// Выдача материализуется сканом всех леджеров с join по аккаунтам в памяти и
// кешируется с коротким TTL; мутации леджеров сбрасывают кеш.
package publicfees

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/fee-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fee-tracker/internal/models"
	ledgerservice "github.com/magabrotheeeer/fee-tracker/internal/services/ledger"
)

const snapshotTTL = time.Minute

// Repository описывает чтение всех леджеров и аккаунтов для агрегации.
type Repository interface {
	ListLedgers(ctx context.Context) ([]*models.Ledger, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// PublicFeesService отдает состояние взносов всех аккаунтов без аутентификации.
type PublicFeesService struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// NewPublicFeesService создает новый экземпляр PublicFeesService.
func NewPublicFeesService(repo Repository, cache Cache, log *slog.Logger) *PublicFeesService {
	return &PublicFeesService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// All возвращает полную выдачу: имя аккаунта и все группы, записи и отметки.
func (s *PublicFeesService) All(ctx context.Context) ([]models.PublicUserFees, error) {
	var cached []models.PublicUserFees
	found, err := s.cache.Get(ledgerservice.PublicFeesCacheKey, &cached)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", ledgerservice.PublicFeesCacheKey), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	ledgers, err := s.repo.ListLedgers(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	namesByUID := make(map[string]string, len(users))
	for _, u := range users {
		namesByUID[u.UID] = u.UserName
	}

	result := make([]models.PublicUserFees, 0, len(ledgers))
	for _, l := range ledgers {
		fees := models.PublicUserFees{
			UserID:   l.UserUID,
			UserName: namesByUID[l.UserUID],
			Groups:   make([]models.PublicGroup, 0, len(l.Groups)),
		}
		for _, g := range l.Groups {
			group := models.PublicGroup{
				GroupName: g.Name,
				Entries:   make([]models.PublicEntry, 0, len(g.Entries)),
			}
			for _, e := range g.Entries {
				group.Entries = append(group.Entries, models.PublicEntry{
					EntryName:            e.Name,
					MonthlyPaymentStatus: e.MonthlyPaymentStatus,
				})
			}
			fees.Groups = append(fees.Groups, group)
		}
		result = append(result, fees)
	}

	if err := s.cache.Set(ledgerservice.PublicFeesCacheKey, result, snapshotTTL); err != nil {
		s.log.Warn("failed to cache public fees", sl.Err(err))
	}
	return result, nil
}

// Filter оставляет только записи, у которых отметка месяца month равна paid.
// Группы можно ограничить одним именем. Аккаунты без единой подходящей
// записи исключаются целиком.
func (s *PublicFeesService) Filter(ctx context.Context, month int, paid bool, groupName string) ([]models.PublicUserFees, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.PublicUserFees, 0, len(all))
	for _, userFees := range all {
		filtered := models.PublicUserFees{
			UserID:   userFees.UserID,
			UserName: userFees.UserName,
			Groups:   make([]models.PublicGroup, 0, len(userFees.Groups)),
		}
		hasEntries := false
		for _, g := range userFees.Groups {
			if groupName != "" && g.GroupName != groupName {
				continue
			}
			group := models.PublicGroup{
				GroupName: g.GroupName,
				Entries:   make([]models.PublicEntry, 0, len(g.Entries)),
			}
			for _, e := range g.Entries {
				if e.MonthlyPaymentStatus[month] == paid {
					group.Entries = append(group.Entries, e)
				}
			}
			if len(group.Entries) > 0 {
				hasEntries = true
			}
			filtered.Groups = append(filtered.Groups, group)
		}
		if hasEntries {
			result = append(result, filtered)
		}
	}
	return result, nil
}
