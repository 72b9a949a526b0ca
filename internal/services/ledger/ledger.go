// Package ledger содержит бизнес-логику мутаций и чтения документа-леджера.
//
// Каждая мутация перечитывает документ целиком, изменяет его в памяти и
// записывает обратно с проверкой версии; при проигранной гонке попытка
// повторяется один раз со свежей копией.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/fee-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fee-tracker/internal/models"
	"github.com/magabrotheeeer/fee-tracker/internal/rabbitmq"
)

// PublicFeesCacheKey — ключ кеша публичной выдачи, сбрасывается при каждой мутации.
const PublicFeesCacheKey = "publicfees:all"

// LedgerRepository определяет методы для работы с леджерами в хранилище.
type LedgerRepository interface {
	// GetLedger возвращает леджер аккаунта или apperr.ErrNotFound.
	GetLedger(ctx context.Context, userUID string) (*models.Ledger, error)
	// CreateLedger вставляет новый леджер.
	CreateLedger(ctx context.Context, ledger *models.Ledger) error
	// UpdateLedger перезаписывает документ с проверкой версии.
	UpdateLedger(ctx context.Context, ledger *models.Ledger) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// EventPublisher публикует события мутаций. Может быть nil — тогда события
// не отправляются.
type EventPublisher interface {
	Publish(event rabbitmq.LedgerEvent) error
}

// LedgerService реализует операции над леджером одного аккаунта.
type LedgerService struct {
	repo   LedgerRepository
	cache  Cache
	events EventPublisher
	log    *slog.Logger
}

// NewLedgerService создает новый экземпляр LedgerService.
func NewLedgerService(repo LedgerRepository, cache Cache, events EventPublisher, log *slog.Logger) *LedgerService {
	return &LedgerService{
		repo:   repo,
		cache:  cache,
		events: events,
		log:    log,
	}
}

func (s *LedgerService) cacheKey(userUID string) string {
	return fmt.Sprintf("ledger:%s", userUID)
}

// readLedger возвращает леджер из кеша или хранилища.
// Отсутствующий леджер пробрасывается как apperr.ErrNotFound.
func (s *LedgerService) readLedger(ctx context.Context, userUID string) (*models.Ledger, error) {
	var cached *models.Ledger
	key := s.cacheKey(userUID)
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", key), sl.Err(err))
	}
	if found && cached != nil {
		return cached, nil
	}
	ledger, err := s.repo.GetLedger(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(key, ledger, time.Hour); err != nil {
		s.log.Warn("failed to cache ledger", slog.String("key", key), sl.Err(err))
	}
	return ledger, nil
}

// mutate выполняет fn над свежей копией леджера и сохраняет результат.
// Конфликт версии означает параллельную запись — одна повторная попытка.
func (s *LedgerService) mutate(ctx context.Context, userUID string, fn func(*models.Ledger) error) error {
	const maxAttempts = 2
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		ledger, err := s.repo.GetLedger(ctx, userUID)
		if err != nil {
			return err
		}
		if err = fn(ledger); err != nil {
			return err
		}
		err = s.repo.UpdateLedger(ctx, ledger)
		if err == nil {
			s.afterMutation(userUID)
			return nil
		}
		if !errors.Is(err, apperr.ErrConflict) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// afterMutation сбрасывает кеши, зависящие от измененного документа.
func (s *LedgerService) afterMutation(userUID string) {
	if err := s.cache.Invalidate(s.cacheKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate ledger cache", slog.String("user_uid", userUID), sl.Err(err))
	}
	if err := s.cache.Invalidate(PublicFeesCacheKey); err != nil {
		s.log.Warn("failed to invalidate public fees cache", sl.Err(err))
	}
}

func (s *LedgerService) publishEvent(event rabbitmq.LedgerEvent) {
	if s.events == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	if err := s.events.Publish(event); err != nil {
		s.log.Warn("failed to publish ledger event", slog.String("action", event.Action), sl.Err(err))
	}
}

// ListGroups возвращает имена групп аккаунта.
// Отсутствие леджера — не ошибка, а пустой список.
func (s *LedgerService) ListGroups(ctx context.Context, userUID string) ([]string, error) {
	ledger, err := s.readLedger(ctx, userUID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	return ledger.GroupNames(), nil
}

// CreateGroup добавляет пустую группу; леджер создается лениво при первой группе.
// Дубликат имени группы — apperr.ErrConflict.
func (s *LedgerService) CreateGroup(ctx context.Context, userUID, groupName string) error {
	_, err := s.repo.GetLedger(ctx, userUID)
	if errors.Is(err, apperr.ErrNotFound) {
		fresh := models.NewLedger(userUID)
		if err := fresh.AddGroup(groupName); err != nil {
			return err
		}
		err = s.repo.CreateLedger(ctx, fresh)
		if err == nil {
			s.afterMutation(userUID)
			s.publishEvent(rabbitmq.LedgerEvent{UserUID: userUID, Action: "create_group", GroupName: groupName})
			return nil
		}
		if !errors.Is(err, apperr.ErrConflict) {
			return err
		}
		// гонка на первой группе: документ уже есть, идем обычным путем
	} else if err != nil {
		return err
	}

	err = s.mutate(ctx, userUID, func(l *models.Ledger) error {
		return l.AddGroup(groupName)
	})
	if err != nil {
		return err
	}
	s.publishEvent(rabbitmq.LedgerEvent{UserUID: userUID, Action: "create_group", GroupName: groupName})
	return nil
}

// ListEntries возвращает записи группы.
// Отсутствие леджера или группы — пустой список, не ошибка.
func (s *LedgerService) ListEntries(ctx context.Context, userUID, groupName string) ([]models.Entry, error) {
	ledger, err := s.readLedger(ctx, userUID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return []models.Entry{}, nil
		}
		return nil, err
	}
	group := ledger.FindGroup(groupName)
	if group == nil {
		return []models.Entry{}, nil
	}
	return group.Entries, nil
}

// AddEntry добавляет запись с двенадцатью неоплаченными месяцами.
func (s *LedgerService) AddEntry(ctx context.Context, userUID, groupName, entryName string) error {
	err := s.mutate(ctx, userUID, func(l *models.Ledger) error {
		return l.AddEntry(groupName, entryName)
	})
	if err != nil {
		return err
	}
	s.publishEvent(rabbitmq.LedgerEvent{
		UserUID:   userUID,
		Action:    "add_entry",
		GroupName: groupName,
		EntryName: entryName,
	})
	return nil
}

// SetPaymentStatus выставляет отметку одного месяца у записи.
func (s *LedgerService) SetPaymentStatus(ctx context.Context, userUID, groupName, entryName string, month int, paid bool) error {
	err := s.mutate(ctx, userUID, func(l *models.Ledger) error {
		return l.SetPaymentStatus(groupName, entryName, month, paid)
	})
	if err != nil {
		return err
	}
	s.publishEvent(rabbitmq.LedgerEvent{
		UserUID:   userUID,
		Action:    "set_payment_status",
		GroupName: groupName,
		EntryName: entryName,
		Month:     month,
		Paid:      &paid,
	})
	return nil
}

// RemoveEntry удаляет запись из группы; отсутствующая запись — тихий no-op.
func (s *LedgerService) RemoveEntry(ctx context.Context, userUID, groupName, entryName string) error {
	err := s.mutate(ctx, userUID, func(l *models.Ledger) error {
		return l.RemoveEntry(groupName, entryName)
	})
	if err != nil {
		return err
	}
	s.publishEvent(rabbitmq.LedgerEvent{
		UserUID:   userUID,
		Action:    "remove_entry",
		GroupName: groupName,
		EntryName: entryName,
	})
	return nil
}
